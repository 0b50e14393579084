package validate

import (
	"fmt"
	"strings"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/parser"
)

// add records an error for field of row, with the cell reference when the column is known.
func (v *validator) add(table *models.Table, row models.Row, field, value, format string, args ...any) {
	issue := models.Issue{
		Severity: models.SeverityError,
		Sheet:    table.SheetName,
		Row:      row.Line,
		Field:    field,
		Value:    value,
		Message:  fmt.Sprintf(format, args...),
	}
	if col, ok := table.Column(field); ok && row.Line > 0 {
		issue.Cell = parser.CellRef(col.Index, row.Line-1)
	}
	v.issues.Add(issue)
}

// ids collects the trimmed values of field across sheet.
func (v *validator) ids(sheet, field string) map[string]bool {
	out := make(map[string]bool)
	for _, row := range models.RowsOf(v.tables[sheet]) {
		if id := text(row, field, false); id != "" {
			out[id] = true
		}
	}
	return out
}

func text(row models.Row, field string, optional bool) string {
	raw := row.Get(field)
	if optional {
		raw = parser.NormalizeOptional(raw)
	}
	return strings.TrimSpace(parser.FormatValue(raw))
}

func list(row models.Row, field string) []string {
	return parser.SplitList(row.Get(field))
}

// intValue returns the integer in field; false when the cell is empty or unparsable.
func intValue(row models.Row, field string) (int64, bool) {
	v, err := parser.CoerceField(field, row.Get(field), models.TypeInt, true)
	if err != nil || v == nil {
		return 0, false
	}
	i, ok := v.(int64)
	return i, ok
}

func allowedTypes() string {
	parts := make([]string, len(models.ColumnTypes))
	for i, t := range models.ColumnTypes {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func joinLines(lines []int) string {
	parts := make([]string, len(lines))
	for i, l := range lines {
		parts[i] = fmt.Sprint(l)
	}
	return strings.Join(parts, ",")
}
