package parser

import (
	"strconv"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/xuri/excelize/v2"
)

// ExtractGrid reads the raw cell grid of a sheet.
//
// Numeric cells become float64, boolean cells bool, everything else string. Empty cells are nil.
// Rows are padded to the width of the widest row so the grid is rectangular.
func ExtractGrid(f *excelize.File, sheetName string) ([][]any, error) {
	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	_, maxRow, _, maxCol := findDataBounds(rows)
	if maxRow < 0 {
		return nil, nil
	}

	grid := make([][]any, maxRow+1)
	for rowIdx := 0; rowIdx <= maxRow; rowIdx++ {
		line := make([]any, maxCol+1)
		if rowIdx < len(rows) {
			for colIdx, text := range rows[rowIdx] {
				if colIdx > maxCol || text == "" {
					continue
				}
				cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return nil, err
				}
				cellType, err := f.GetCellType(sheetName, cellName)
				if err != nil {
					return nil, err
				}
				line[colIdx] = parseValue(text, cellType)
			}
		}
		grid[rowIdx] = line
	}
	return grid, nil
}

// ExtractWorkbook reads every sheet of f in workbook order.
func ExtractWorkbook(f *excelize.File, bookName string) (*models.Workbook, error) {
	wb := &models.Workbook{BookName: bookName}
	for _, name := range f.GetSheetList() {
		grid, err := ExtractGrid(f, name)
		if err != nil {
			return nil, &SheetError{SheetName: name, Err: err}
		}
		wb.Sheets = append(wb.Sheets, models.Sheet{Name: name, Grid: grid})
	}
	return wb, nil
}

// parseValue converts the raw text of a cell according to its stored type.
// Cells without a type attribute are numbers in OOXML; anything that does not parse stays text.
func parseValue(s string, cellType excelize.CellType) any {
	switch cellType {
	case excelize.CellTypeBool:
		if b, err := strconv.ParseBool(s); err == nil {
			return b
		}
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return s
}
