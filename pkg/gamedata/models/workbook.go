package models

// Sheet is one named rectangular grid of raw cells.
//
// Cells hold nil, string, float64, bool or an integer type.
type Sheet struct {
	// Name is the sheet name.
	Name string
	// Grid holds rows of raw cells (0-based).
	Grid [][]any
}

// Workbook is the in-memory source of one run.
type Workbook struct {
	// BookName is the workbook file name (no path).
	BookName string
	// Sheets lists sheets in workbook order.
	Sheets []Sheet
}

// SheetNames returns sheet names in workbook order.
func (w *Workbook) SheetNames() []string {
	names := make([]string, 0, len(w.Sheets))
	for _, s := range w.Sheets {
		names = append(names, s.Name)
	}
	return names
}
