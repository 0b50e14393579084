package gamedata

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/output"
	"github.com/hszqf/gamedata-go/pkg/gamedata/parser"
	"github.com/hszqf/gamedata-go/pkg/gamedata/project"
	"github.com/hszqf/gamedata-go/pkg/gamedata/validate"
	"github.com/spf13/afero"
	"github.com/xuri/excelize/v2"
)

// Result is the outcome of a run.
type Result struct {
	// Issues lists every diagnostic, reader issues first (sorted by sheet and row).
	Issues models.IssueList
	// Document is nil when Issues has errors.
	Document *models.Document
	// JSON is the serialized document; nil when Document is nil.
	JSON []byte
}

// Open loads every sheet grid of the workbook at path.
func Open(fsys afero.Fs, path string) (*models.Workbook, error) {
	file, err := fsys.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, NewExportError(path, "open", fmt.Errorf("%w: %s", ErrFileNotFound, path))
		}
		return nil, NewExportError(path, "open", err)
	}
	defer file.Close()

	f, err := excelize.OpenReader(file)
	if err != nil {
		return nil, NewExportError(path, "open", fmt.Errorf("%w: %v", ErrInvalidFormat, err))
	}
	defer f.Close()

	wb, err := parser.ExtractWorkbook(f, filepath.Base(path))
	if err != nil {
		return nil, NewExportError(path, "read", err)
	}
	return wb, nil
}

// Run reads, validates, projects and serializes a workbook.
//
// Issues never produce an error; the error return is reserved for fatal failures.
func Run(ctx context.Context, wb *models.Workbook, opts Options) (*Result, error) {
	logger := opts.logger().With("book", wb.BookName)

	tables, issues, err := parser.ReadTables(ctx, wb.Sheets, opts.workers())
	if err != nil {
		return nil, NewExportError(wb.BookName, "read", err)
	}
	for _, name := range wb.SheetNames() {
		if t := tables[name]; t != nil {
			logger.Debug("sheet read", "sheet", name, "mode", t.Mode, "columns", len(t.Columns), "rows", len(t.Rows))
		}
	}

	issues.Merge(validate.Validate(tables, wb.SheetNames()))
	res := &Result{Issues: issues}
	if issues.HasErrors() {
		return res, nil
	}

	domain := project.Project(tables)
	var generic map[string]*models.Table
	if opts.ShouldIncludeTables() {
		generic = tables
	}
	res.Document = output.Assemble(domain, generic)

	res.JSON, err = output.ToJSON(res.Document, opts.Pretty)
	if err != nil {
		return nil, NewExportError(wb.BookName, "serialize", err)
	}

	logger.Info("validation passed",
		"schema", res.Document.Meta.SchemaVersion,
		"dataVersion", res.Document.Meta.DataVersion,
		"events", len(res.Document.Events),
		"options", len(res.Document.EventOptions),
		"effects", len(res.Document.Effects),
		"ops", len(res.Document.EffectOps),
		"triggers", len(res.Document.EventTriggers),
		"tables", len(res.Document.Tables),
	)
	return res, nil
}

// Export runs the pipeline on the workbook at in and writes the document to out.
//
// Nothing is written when validation fails (a *ValidationError is returned) or when
// opts.ValidateOnly is set. The file is written to a temporary sibling and renamed into place.
func Export(ctx context.Context, fsys afero.Fs, in, out string, opts Options) (*Result, error) {
	wb, err := Open(fsys, in)
	if err != nil {
		return nil, err
	}
	res, err := Run(ctx, wb, opts)
	if err != nil {
		return nil, err
	}
	logIssues(opts.logger(), res.Issues)
	if res.Issues.HasErrors() {
		return res, &ValidationError{Issues: res.Issues}
	}
	if opts.ValidateOnly || out == "" {
		return res, nil
	}
	if err := writeAtomic(fsys, out, res.JSON); err != nil {
		return res, NewExportError(out, "write", err)
	}
	opts.logger().Info("document written", "path", out, "bytes", len(res.JSON))
	return res, nil
}

func writeAtomic(fsys afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fsys.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		fsys.Remove(tmpName)
		return err
	}
	if err := fsys.Chmod(tmpName, 0o644); err != nil {
		fsys.Remove(tmpName)
		return err
	}
	if err := fsys.Rename(tmpName, path); err != nil {
		fsys.Remove(tmpName)
		return err
	}
	return nil
}

func logIssues(logger *log.Logger, issues models.IssueList) {
	for _, issue := range issues {
		keyvals := []any{"sheet", issue.Sheet}
		if issue.Row > 0 {
			keyvals = append(keyvals, "row", issue.Row)
		}
		if issue.Cell != "" {
			keyvals = append(keyvals, "cell", issue.Cell)
		}
		switch issue.Severity {
		case models.SeverityError:
			logger.Error(issue.Message, keyvals...)
		case models.SeverityWarning:
			logger.Warn(issue.Message, keyvals...)
		default:
			logger.Info(issue.Message, keyvals...)
		}
	}
}
