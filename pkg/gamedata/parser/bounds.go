package parser

// findDataBounds finds the bounding box of non-empty cells.
func findDataBounds(rows [][]string) (minRow, maxRow, minCol, maxCol int) {
	minRow, maxRow = -1, -1
	minCol, maxCol = -1, -1

	for rowIdx, row := range rows {
		for colIdx, cell := range row {
			if cell != "" {
				if minRow < 0 || rowIdx < minRow {
					minRow = rowIdx
				}
				if maxRow < 0 || rowIdx > maxRow {
					maxRow = rowIdx
				}
				if minCol < 0 || colIdx < minCol {
					minCol = colIdx
				}
				if maxCol < 0 || colIdx > maxCol {
					maxCol = colIdx
				}
			}
		}
	}

	return
}

// countNonEmptyCells counts non-empty cells of a raw grid.
func countNonEmptyCells(grid [][]any) int {
	count := 0
	for _, row := range grid {
		for _, cell := range row {
			if !IsEmpty(cell) {
				count++
			}
		}
	}
	return count
}

// cellAt returns the cell at (row, col), or nil when outside the grid.
func cellAt(grid [][]any, row, col int) any {
	if row < 0 || row >= len(grid) || col < 0 || col >= len(grid[row]) {
		return nil
	}
	return grid[row][col]
}
