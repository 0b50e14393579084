// Package testfixture builds game data workbooks for tests.
package testfixture

import (
	"bytes"
	"fmt"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/xuri/excelize/v2"
)

// Sheets returns a complete, valid workbook. Balance, Nodes and EventTriggers use the typed
// layout; the other sheets are plain. Each call returns a fresh copy.
func Sheets() []models.Sheet {
	return []models.Sheet{
		{Name: "Meta", Grid: [][]any{
			{"schemaVersion", "dataVersion", "comment"},
			{"1", "2026.10.01", "base set"},
		}},
		{Name: "Balance", Grid: [][]any{
			{"#Balance", nil, nil, nil},
			{"key", "value", "type", "comment"},
			{"string", "string", "string", "string"},
			{"maxPanic", "100", "int", nil},
			{"RandomEventBaseProb", "0.15", "float", "daily chance"},
		}},
		{Name: "Nodes", Grid: [][]any{
			{"#Nodes", nil, nil, nil, nil, nil, nil},
			{"nodeId", "name", "tags", "startLocalPanic", "startPopulation", "startAnomalyIds", "#note"},
			{"string", "string", "string[]", "int", "int", "string[]", "string"},
			{"N1", "Harbor City", "urban;coastal", 2.0, 1000.0, "AN-001", "ignored"},
			{"N2", "Hill Town", nil, nil, "500", nil, nil},
		}},
		{Name: "Anomalies", Grid: [][]any{
			{"anomalyId", "name", "class", "tags", "baseThreat", "investigateDifficulty", "containDifficulty", "manageRisk"},
			{"AN-001", "Statue", "Euclid", "hostile", 3.0, 2.0, 4.0, 1.0},
		}},
		{Name: "TaskDefs", Grid: [][]any{
			{"taskDefId", "taskType", "name", "baseDays", "progressPerDay", "agentSlotsMin", "agentSlotsMax", "yieldKey", "yieldPerDay"},
			{"TD-INV", "Investigate", "Investigate", "3", "0.5", "1", "3", nil, nil},
			{"TD-MAN", "Manage", "Manage", nil, "1", "1", "2", "Money", "2.5"},
		}},
		{Name: "Events", Grid: [][]any{
			{"eventDefId", "source", "causeType", "weight", "title", "desc", "blockPolicy", "defaultAffects", "autoResolveAfterDays", "ignoreApplyMode", "ignoreEffectId"},
			{"EV-001", "RandomDaily", "TaskInvestigate", nil, "Signal", " Strange readings ", "None", "OriginTask", "0", "ApplyDailyKeep", nil},
			{"EV-002", "RandomDaily", "LocalPanic", "3", nil, nil, "BlockOriginTask", "Node;TaskType:Contain", "2", "ApplyOnceThenRemove", "EF-RESUME"},
		}},
		{Name: "EventOptions", Grid: [][]any{
			{"rowId", "eventDefId", "optionId", "text", "resultText", "affects", "effectId"},
			{"OPT-1", "EV-001", "A", "Go", nil, "OriginTask", "EF-001"},
			{"OPT-2", "EV-001", "B", "Wait", nil, nil, nil},
			{"OPT-3", "EV-002", "A", "Resume", nil, "OriginTask", "EF-RESUME"},
		}},
		{Name: "Effects", Grid: [][]any{
			{"effectId", "comment"},
			{"EF-001", "panic up"},
			{"EF-RESUME", nil},
		}},
		{Name: "EffectOps", Grid: [][]any{
			{"rowId", "effectId", "scope", "statKey", "op", "value", "min", "max", "comment"},
			{"OP-1", "EF-001", "Node", "LocalPanic", "Add", "1", "0", "10", nil},
			{"OP-2", "EF-RESUME", "OriginTask", "TaskProgressDelta", "Add", "0.25", "none", nil, nil},
		}},
		{Name: "EventTriggers", Grid: [][]any{
			{"#Triggers", nil, nil, nil, nil, nil, nil, nil, nil, nil, nil},
			{"rowId", "eventDefId", "minDay", "maxDay", "requiresNodeTagsAny", "requiresNodeTagsAll", "requiresAnomalyTagsAny", "requiresSecured", "minLocalPanic", "taskType", "onlyAffectOriginTask"},
			{"string", "string", "int", "int", "string[]", "string[]", "string[]", "bool", "int", "string", "bool"},
			{"TR-1", "EV-001", 1.0, 30.0, "urban", nil, nil, "yes", 0.0, "Investigate", nil},
			{"TR-2", "EV-002", "-", nil, nil, "coastal，urban", nil, nil, 2.0, nil, true},
		}},
		{Name: "Spawn", Grid: [][]any{
			{"day", "count"},
			{"1", "2"},
			{"2", "3"},
		}},
		{Name: "Notes", Grid: nil},
	}
}

// Find returns the sheet named name.
func Find(sheets []models.Sheet, name string) *models.Sheet {
	for i := range sheets {
		if sheets[i].Name == name {
			return &sheets[i]
		}
	}
	return nil
}

// Remove drops the sheet named name.
func Remove(sheets []models.Sheet, name string) []models.Sheet {
	out := sheets[:0]
	for _, s := range sheets {
		if s.Name != name {
			out = append(out, s)
		}
	}
	return out
}

// Set writes value into the data row whose first cell is id, in the column named column.
func Set(sheets []models.Sheet, sheet, id, column string, value any) {
	s := Find(sheets, sheet)
	if s == nil {
		panic(fmt.Sprintf("no sheet %s", sheet))
	}
	col := columnIndex(s.Grid, column)
	for _, row := range s.Grid {
		if len(row) > 0 && row[0] == id {
			row[col] = value
			return
		}
	}
	panic(fmt.Sprintf("no row %s in %s", id, sheet))
}

// Append adds a data row built from values keyed by column name.
func Append(sheets []models.Sheet, sheet string, values map[string]any) {
	s := Find(sheets, sheet)
	if s == nil {
		panic(fmt.Sprintf("no sheet %s", sheet))
	}
	width := len(s.Grid[0])
	row := make([]any, width)
	for name, v := range values {
		row[columnIndex(s.Grid, name)] = v
	}
	s.Grid = append(s.Grid, row)
}

// DropColumn removes the column named column from every row of sheet.
func DropColumn(sheets []models.Sheet, sheet, column string) {
	s := Find(sheets, sheet)
	if s == nil {
		panic(fmt.Sprintf("no sheet %s", sheet))
	}
	col := columnIndex(s.Grid, column)
	for i, row := range s.Grid {
		if col < len(row) {
			s.Grid[i] = append(row[:col:col], row[col+1:]...)
		}
	}
}

// Line returns the 1-based spreadsheet line of the row whose first cell is id.
func Line(sheets []models.Sheet, sheet, id string) int {
	s := Find(sheets, sheet)
	for i, row := range s.Grid {
		if len(row) > 0 && row[0] == id {
			return i + 1
		}
	}
	return 0
}

func columnIndex(grid [][]any, column string) int {
	for r := 0; r < len(grid) && r < 2; r++ {
		for c, cell := range grid[r] {
			if cell == column {
				return c
			}
		}
	}
	panic(fmt.Sprintf("no column %s", column))
}

// WriteXLSX renders sheets as an xlsx workbook.
func WriteXLSX(sheets []models.Sheet) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	const defaultSheet = "Sheet1"
	keepDefault := false
	for _, s := range sheets {
		if s.Name == defaultSheet {
			keepDefault = true
			continue
		}
		if _, err := f.NewSheet(s.Name); err != nil {
			return nil, err
		}
	}
	for _, s := range sheets {
		for r, row := range s.Grid {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					return nil, err
				}
				if err := f.SetCellValue(s.Name, cell, v); err != nil {
					return nil, err
				}
			}
		}
	}
	if !keepDefault {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, err
		}
	}
	return f.WriteToBuffer()
}
