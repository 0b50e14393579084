package parser

import "fmt"

// SheetError represents a failure to read the grid of one sheet.
type SheetError struct {
	SheetName string
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("reading sheet %q: %v", e.SheetName, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}
