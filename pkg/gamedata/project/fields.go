package project

import (
	"strings"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/parser"
)

// str returns the trimmed text of field.
func str(r models.Row, field string) string {
	return strings.TrimSpace(parser.FormatValue(r.Get(field)))
}

// raw returns the text of field untouched.
func raw(r models.Row, field string) string {
	return parser.FormatValue(r.Get(field))
}

// optStr is str with placeholder tokens (none, n/a, -) read as empty.
func optStr(r models.Row, field string) string {
	return strings.TrimSpace(parser.FormatValue(parser.NormalizeOptional(r.Get(field))))
}

func strList(r models.Row, field string) []string {
	return parser.SplitList(r.Get(field))
}

func scalar(r models.Row, field string, t models.ColumnType) any {
	v, err := parser.CoerceField(field, r.Get(field), t, true)
	if err != nil {
		return nil
	}
	return v
}

func intOr(r models.Row, field string, def int) int {
	if p := intPtr(r, field); p != nil {
		return *p
	}
	return def
}

func floatOr(r models.Row, field string, def float64) float64 {
	if p := floatPtr(r, field); p != nil {
		return *p
	}
	return def
}

func intPtr(r models.Row, field string) *int {
	v, ok := scalar(r, field, models.TypeInt).(int64)
	if !ok {
		return nil
	}
	i := int(v)
	return &i
}

func floatPtr(r models.Row, field string) *float64 {
	v, ok := scalar(r, field, models.TypeFloat).(float64)
	if !ok {
		return nil
	}
	return &v
}

func boolPtr(r models.Row, field string) *bool {
	v, ok := scalar(r, field, models.TypeBool).(bool)
	if !ok {
		return nil
	}
	return &v
}
