package models

// ColumnType is the declared type of a column.
type ColumnType string

const (
	TypeInt        ColumnType = "int"
	TypeFloat      ColumnType = "float"
	TypeString     ColumnType = "string"
	TypeBool       ColumnType = "bool"
	TypeIntList    ColumnType = "int[]"
	TypeFloatList  ColumnType = "float[]"
	TypeStringList ColumnType = "string[]"
)

// ColumnTypes lists every column type in declaration order.
var ColumnTypes = []ColumnType{
	TypeInt, TypeFloat, TypeString, TypeBool, TypeIntList, TypeFloatList, TypeStringList,
}

// ParseColumnType returns the column type spelled by marker.
func ParseColumnType(marker string) (ColumnType, bool) {
	for _, t := range ColumnTypes {
		if string(t) == marker {
			return t, true
		}
	}
	return "", false
}

// TableMode is the layout a sheet was read with.
type TableMode string

const (
	// ModeTyped has a section row, a field-name row and a type row before the data.
	ModeTyped TableMode = "typed"
	// ModePlain has a single header row and string-only columns.
	ModePlain TableMode = "plain"
)

// Column describes one included column of a table.
type Column struct {
	// Name is the field name from the header row.
	Name string `json:"name"`
	// Type is the declared column type.
	Type ColumnType `json:"type"`
	// Index is the 0-based sheet column the values come from.
	Index int `json:"-"`
}

// Table is the normalized content of one sheet.
type Table struct {
	// SheetName is the workbook sheet the table was read from.
	SheetName string `json:"-"`
	// Mode is the detected layout.
	Mode TableMode `json:"mode"`
	// IDField is the name of the first included column.
	IDField string `json:"idField"`
	// Columns lists included columns in sheet order.
	Columns []Column `json:"columns"`
	// Rows contains data rows with unique IDField values.
	Rows []Row `json:"rows"`
}

// HasColumn reports whether the table declares a column named name.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Column returns the column named name.
func (t *Table) Column(name string) (Column, bool) {
	if t == nil {
		return Column{}, false
	}
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// RowsOf returns the rows of t, tolerating a nil table.
func RowsOf(t *Table) []Row {
	if t == nil {
		return nil
	}
	return t.Rows
}
