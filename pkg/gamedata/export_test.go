package gamedata

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/hszqf/gamedata-go/internal/testfixture"
	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	inPath  = "/data/balance.xlsx"
	outPath = "/build/game_data.json"
)

func writeWorkbook(t *testing.T, fsys afero.Fs, sheets []models.Sheet) {
	t.Helper()
	buf, err := testfixture.WriteXLSX(sheets)
	require.NoError(t, err)
	require.NoError(t, afero.WriteFile(fsys, inPath, buf.Bytes(), 0o644))
}

func quietOptions() Options {
	opts := DefaultOptions()
	opts.Logger = log.New(io.Discard)
	return opts
}

func TestExport(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeWorkbook(t, fsys, testfixture.Sheets())

	res, err := Export(context.Background(), fsys, inPath, outPath, quietOptions())
	require.NoError(t, err)
	require.NotNil(t, res.Document)
	assert.False(t, res.Issues.HasErrors())
	assert.Equal(t, 1, res.Issues.Count(models.SeverityInfo), res.Issues.Strings())

	written, err := afero.ReadFile(fsys, outPath)
	require.NoError(t, err)
	assert.Equal(t, res.JSON, written)

	entries, err := afero.ReadDir(fsys, "/build")
	require.NoError(t, err)
	require.Len(t, entries, 1, "temporary file left behind")
	assert.Equal(t, "game_data.json", entries[0].Name())

	doc := res.Document
	assert.Equal(t, "1", doc.Meta.SchemaVersion)
	assert.Len(t, doc.Nodes, 2)
	assert.Len(t, doc.EventTriggers, 2)
	assert.Equal(t, models.BalanceEntry{Value: "100", Type: "int"}, doc.Balance["maxPanic"])
	assert.Contains(t, doc.Tables, "Spawn")
	assert.NotContains(t, doc.Tables, "Notes")
	assert.Equal(t, models.ModeTyped, doc.Tables["Nodes"].Mode)
	assert.Equal(t, models.ModePlain, doc.Tables["Anomalies"].Mode)
}

func TestExportNumericCellsSurviveXLSX(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeWorkbook(t, fsys, testfixture.Sheets())

	res, err := Export(context.Background(), fsys, inPath, "", quietOptions())
	require.NoError(t, err)

	require.Len(t, res.Document.Anomalies, 1)
	assert.Equal(t, 3, res.Document.Anomalies[0].BaseThreat)
	require.Len(t, res.Document.EventTriggers, 2)
	tr := res.Document.EventTriggers[0]
	require.NotNil(t, tr.MaxDay)
	assert.Equal(t, 30, *tr.MaxDay)
	require.NotNil(t, res.Document.EventTriggers[1].OnlyAffectOriginTask)
	assert.True(t, *res.Document.EventTriggers[1].OnlyAffectOriginTask)
}

func TestExportValidationFailureKeepsOutput(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sheets := testfixture.Sheets()
	testfixture.Set(sheets, "Nodes", "N1", "startAnomalyIds", "AN-001;AN-002")
	writeWorkbook(t, fsys, sheets)
	require.NoError(t, afero.WriteFile(fsys, outPath, []byte("previous"), 0o644))

	res, err := Export(context.Background(), fsys, inPath, outPath, quietOptions())

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "validation failed with 1 error(s)", verr.Error())
	assert.Nil(t, res.Document)
	assert.Nil(t, res.JSON)
	assert.Equal(t, []string{"Nodes[row 4] missing startAnomalyId=AN-002"}, verr.Issues.Errors().Strings())

	written, err := afero.ReadFile(fsys, outPath)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(written))
}

func TestExportValidateOnly(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeWorkbook(t, fsys, testfixture.Sheets())

	opts := quietOptions()
	opts.ValidateOnly = true
	res, err := Export(context.Background(), fsys, inPath, outPath, opts)
	require.NoError(t, err)
	assert.NotEmpty(t, res.JSON)

	exists, err := afero.Exists(fsys, outPath)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestExportWithoutTables(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeWorkbook(t, fsys, testfixture.Sheets())

	opts := quietOptions()
	include := false
	opts.IncludeTables = &include
	res, err := Export(context.Background(), fsys, inPath, outPath, opts)
	require.NoError(t, err)
	assert.Nil(t, res.Document.Tables)
	assert.NotContains(t, string(res.JSON), `"tables"`)
}

func TestExportDeterministicAcrossWorkers(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeWorkbook(t, fsys, testfixture.Sheets())

	var outputs [][]byte
	for _, workers := range []int{1, 3, 16} {
		opts := quietOptions()
		opts.Workers = workers
		opts.Pretty = true
		res, err := Export(context.Background(), fsys, inPath, "", opts)
		require.NoError(t, err)
		outputs = append(outputs, res.JSON)
	}
	for i := 1; i < len(outputs); i++ {
		assert.True(t, bytes.Equal(outputs[0], outputs[i]), "output with worker setting %d differs", i)
	}
}

func TestExportOpenErrors(t *testing.T) {
	fsys := afero.NewMemMapFs()

	_, err := Export(context.Background(), fsys, "/missing.xlsx", outPath, quietOptions())
	assert.ErrorIs(t, err, ErrFileNotFound)
	var exportErr *ExportError
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, "open", exportErr.Stage)

	require.NoError(t, afero.WriteFile(fsys, "/broken.xlsx", []byte("not a zip"), 0o644))
	_, err = Export(context.Background(), fsys, "/broken.xlsx", outPath, quietOptions())
	assert.ErrorIs(t, err, ErrInvalidFormat)
}

func TestExportMissingSheet(t *testing.T) {
	fsys := afero.NewMemMapFs()
	writeWorkbook(t, fsys, testfixture.Remove(testfixture.Sheets(), "EventTriggers"))

	_, err := Export(context.Background(), fsys, inPath, outPath, quietOptions())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"EventTriggers: missing required sheet EventTriggers"}, verr.Issues.Errors().Strings())
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	wb := &models.Workbook{BookName: "b.xlsx", Sheets: testfixture.Sheets()}
	_, err := Run(ctx, wb, quietOptions())
	assert.True(t, errors.Is(err, context.Canceled), "got %v", err)
}

func TestLogIssues(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	var issues models.IssueList
	issues.Errorf("Nodes", 4, "startAnomalyIds", "AN-002", "missing startAnomalyId=%s", "AN-002")
	issues.Add(models.Issue{Severity: models.SeverityInfo, Sheet: "Notes", Message: "sheet is empty"})
	logIssues(logger, issues)

	out := buf.String()
	assert.Contains(t, out, "missing startAnomalyId=AN-002")
	assert.Contains(t, out, "sheet=Nodes")
	assert.Contains(t, out, "row=4")
	assert.Contains(t, out, "sheet is empty")
}

func TestShouldIncludeTables(t *testing.T) {
	assert.True(t, Options{}.ShouldIncludeTables())
	no := false
	assert.False(t, Options{IncludeTables: &no}.ShouldIncludeTables())
}

func TestExportKeepsRowsSharingParent(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sheets := testfixture.Sheets()
	testfixture.Append(sheets, "EffectOps", map[string]any{
		"rowId": "OP-3", "effectId": "EF-001", "scope": "Global", "statKey": "Fear", "op": "Add", "value": "2",
	})
	testfixture.Append(sheets, "EventOptions", map[string]any{
		"rowId": "OPT-4", "eventDefId": "EV-001", "optionId": "C", "text": "Flee",
	})
	writeWorkbook(t, fsys, sheets)

	res, err := Export(context.Background(), fsys, inPath, "", quietOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, res.Issues.Count(models.SeverityWarning), res.Issues.Strings())
	assert.Len(t, res.Document.EventOptions, 4)
	require.Len(t, res.Document.EffectOps, 3)
	assert.Equal(t, "Node", res.Document.EffectOps[0].Scope)
	assert.Equal(t, "Global", res.Document.EffectOps[2].Scope)
}

func TestExportRejectsSheetsWithoutRowID(t *testing.T) {
	fsys := afero.NewMemMapFs()
	sheets := testfixture.Sheets()
	// Rows keyed by their parent id, one option and two ops sharing a parent.
	testfixture.DropColumn(sheets, "EventOptions", "rowId")
	testfixture.DropColumn(sheets, "EffectOps", "rowId")
	testfixture.Append(sheets, "EffectOps", map[string]any{
		"effectId": "EF-001", "scope": "Global", "statKey": "Fear", "op": "Add", "value": "2",
	})
	writeWorkbook(t, fsys, sheets)

	res, err := Export(context.Background(), fsys, inPath, outPath, quietOptions())
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Nil(t, res.Document)
	assert.Equal(t, []string{
		"EventOptions: missing required column rowId",
		"EffectOps: missing required column rowId",
	}, verr.Issues.Errors().Strings())

	exists, err := afero.Exists(fsys, outPath)
	require.NoError(t, err)
	assert.False(t, exists)
}
