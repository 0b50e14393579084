package parser

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/schema"
	"github.com/xuri/excelize/v2"
	"golang.org/x/sync/errgroup"
)

// Row layout of a typed sheet.
const (
	typedNameRow = 1
	typedTypeRow = 2
	typedDataRow = 3
)

// commentMarker prefixes column names that are excluded from the table.
const commentMarker = "#"

// DetectMode decides the layout of a sheet grid.
//
// A sheet is typed when it has at least three rows, a non-empty field-name row (row 1) and a
// type row (row 2) with at least one cell, all of whose non-empty cells are type markers. A
// single unknown marker or a blank type row makes the whole sheet plain.
func DetectMode(grid [][]any) models.TableMode {
	if len(grid) < typedDataRow {
		return models.ModePlain
	}
	hasName := false
	for _, cell := range grid[typedNameRow] {
		if !IsEmpty(cell) {
			hasName = true
			break
		}
	}
	if !hasName {
		return models.ModePlain
	}
	hasMarker := false
	for _, cell := range grid[typedTypeRow] {
		if IsEmpty(cell) {
			continue
		}
		if _, ok := models.ParseColumnType(strings.TrimSpace(FormatValue(cell))); !ok {
			return models.ModePlain
		}
		hasMarker = true
	}
	if !hasMarker {
		return models.ModePlain
	}
	return models.ModeTyped
}

type columnRef struct {
	models.Column
	optional bool
}

// ReadTable normalizes one sheet grid into a table.
//
// It returns a nil table for an empty sheet. Rows without an id are dropped and reported;
// rows sharing an id keep the values of the last occurrence.
func ReadTable(sheetName string, grid [][]any) (*models.Table, models.IssueList) {
	var issues models.IssueList
	if countNonEmptyCells(grid) == 0 {
		issues.Add(models.Issue{
			Severity: models.SeverityInfo,
			Sheet:    sheetName,
			Message:  "sheet is empty",
		})
		return nil, issues
	}

	mode := DetectMode(grid)
	nameRow, dataRow := 0, 1
	if mode == models.ModeTyped {
		nameRow, dataRow = typedNameRow, typedDataRow
	}

	var cols []columnRef
	for colIdx, cell := range grid[nameRow] {
		name := strings.TrimSpace(FormatValue(cell))
		if name == "" || strings.HasPrefix(name, commentMarker) {
			continue
		}
		colType := models.TypeString
		if mode == models.ModeTyped {
			if t, ok := models.ParseColumnType(strings.TrimSpace(FormatValue(cellAt(grid, typedTypeRow, colIdx)))); ok {
				colType = t
			}
		}
		cols = append(cols, columnRef{
			Column:   models.Column{Name: name, Type: colType, Index: colIdx},
			optional: schema.IsOptional(sheetName, name),
		})
	}

	table := &models.Table{
		SheetName: sheetName,
		Mode:      mode,
		Columns:   make([]models.Column, 0, len(cols)),
		Rows:      []models.Row{},
	}
	for _, c := range cols {
		table.Columns = append(table.Columns, c.Column)
	}
	if len(cols) == 0 {
		issues.Add(models.Issue{
			Severity: models.SeverityWarning,
			Sheet:    sheetName,
			Row:      nameRow + 1,
			Message:  "no columns: field-name row is empty or fully commented out",
		})
		return table, issues
	}
	idCol := cols[0]
	table.IDField = idCol.Name

	byID := make(map[string]int)
	dupLines := make(map[string][]int)
	var dupOrder []string

	for rowIdx := dataRow; rowIdx < len(grid); rowIdx++ {
		line := rowIdx + 1
		empty := true
		for _, c := range cols {
			if !IsEmpty(cellAt(grid, rowIdx, c.Index)) {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		id := strings.TrimSpace(FormatValue(cellAt(grid, rowIdx, idCol.Index)))
		if id == "" {
			issues.Add(models.Issue{
				Severity: models.SeverityError,
				Sheet:    sheetName,
				Row:      line,
				Cell:     CellRef(idCol.Index, rowIdx),
				Field:    idCol.Name,
				Message:  fmt.Sprintf("empty %s; row skipped", idCol.Name),
			})
			continue
		}

		row := models.Row{Line: line, Values: make(map[string]any, len(cols))}
		for _, c := range cols {
			raw := cellAt(grid, rowIdx, c.Index)
			v, err := CoerceField(c.Name, raw, c.Type, c.optional)
			if err != nil {
				var ce *CoercionError
				reason := err.Error()
				if errors.As(err, &ce) {
					reason = ce.Reason
				}
				issues.Add(models.Issue{
					Severity: models.SeverityError,
					Sheet:    sheetName,
					Row:      line,
					Cell:     CellRef(c.Index, rowIdx),
					Field:    c.Name,
					Value:    FormatValue(raw),
					Message:  fmt.Sprintf("cannot parse %s as %s: %q (%s)", c.Name, c.Type, FormatValue(raw), reason),
				})
				v = emptyValue(c.Type)
			}
			row.Values[c.Name] = v
		}
		if idCol.Type == models.TypeString {
			row.Values[idCol.Name] = id
		}

		if pos, seen := byID[id]; seen {
			if _, tracked := dupLines[id]; !tracked {
				dupLines[id] = []int{table.Rows[pos].Line}
				dupOrder = append(dupOrder, id)
			}
			dupLines[id] = append(dupLines[id], line)
			table.Rows[pos] = row
			continue
		}
		byID[id] = len(table.Rows)
		table.Rows = append(table.Rows, row)
	}

	for _, id := range dupOrder {
		lines := dupLines[id]
		issues.Warnf(sheetName, lines[len(lines)-1], idCol.Name, id,
			"duplicate %s=%s on rows %s; last row wins", idCol.Name, id, joinInts(lines))
	}
	return table, issues
}

// ReadTables reads every sheet concurrently with at most workers goroutines.
//
// Tables are keyed by sheet name (empty sheets are absent); issues are sorted by sheet then row
// so the result does not depend on scheduling.
func ReadTables(ctx context.Context, sheets []models.Sheet, workers int) (map[string]*models.Table, models.IssueList, error) {
	type result struct {
		table  *models.Table
		issues models.IssueList
	}
	results := make([]result, len(sheets))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, sheet := range sheets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			t, issues := ReadTable(sheet.Name, sheet.Grid)
			results[i] = result{table: t, issues: issues}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	tables := make(map[string]*models.Table, len(sheets))
	var issues models.IssueList
	for _, r := range results {
		if r.table != nil {
			tables[r.table.SheetName] = r.table
		}
		issues.Merge(r.issues)
	}
	issues.SortBySheet()
	return tables, issues, nil
}

// CellRef formats 0-based coordinates as an A1 reference.
func CellRef(colIdx, rowIdx int) string {
	name, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
	if err != nil {
		return ""
	}
	return name
}

func joinInts(values []int) string {
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, v := range sorted {
		parts[i] = fmt.Sprint(v)
	}
	return strings.Join(parts, ",")
}
