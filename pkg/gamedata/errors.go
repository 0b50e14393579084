package gamedata

import (
	"errors"
	"fmt"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrInvalidFormat indicates the input file is not a valid xlsx format.
var ErrInvalidFormat = errors.New("invalid xlsx format")

// ValidationError is returned when the workbook has error-level issues.
// No output is written when it occurs.
type ValidationError struct {
	Issues models.IssueList
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s)", e.Issues.Count(models.SeverityError))
}

// ExportError represents a fatal failure in one stage of a run.
type ExportError struct {
	Path  string
	Stage string // "open", "read", "serialize", "write"
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export error for %q (%s): %v", e.Path, e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}

// NewExportError creates a new ExportError.
func NewExportError(path, stage string, err error) *ExportError {
	return &ExportError{
		Path:  path,
		Stage: stage,
		Err:   err,
	}
}
