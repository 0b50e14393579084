package validate

import (
	"context"
	"testing"

	"github.com/hszqf/gamedata-go/internal/testfixture"
	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, sheets []models.Sheet) models.IssueList {
	t.Helper()
	tables, _, err := parser.ReadTables(context.Background(), sheets, 4)
	require.NoError(t, err)
	names := make([]string, len(sheets))
	for i, s := range sheets {
		names[i] = s.Name
	}
	return Validate(tables, names)
}

func TestValidateFixture(t *testing.T) {
	issues := run(t, testfixture.Sheets())
	assert.Empty(t, issues.Strings())
}

func TestValidateSingleIssue(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]models.Sheet) []models.Sheet
		want    string
		sheet   string
		field   string
		cellRef string
	}{
		{
			name: "dangling start anomaly",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "Nodes", "N1", "startAnomalyIds", "AN-001;AN-002")
				return s
			},
			want:    "Nodes[row 4] missing startAnomalyId=AN-002",
			field:   "startAnomalyIds",
			cellRef: "F4",
		},
		{
			name: "inverted day range",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "EventTriggers", "TR-1", "minDay", 50.0)
				testfixture.Set(s, "EventTriggers", "TR-1", "maxDay", 10.0)
				return s
			},
			want:    "EventTriggers[row 4] invalid day range: 50>10",
			field:   "minDay",
			cellRef: "C4",
		},
		{
			name: "negative panic threshold",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "EventTriggers", "TR-2", "minLocalPanic", -1.0)
				return s
			},
			want:  "EventTriggers[row 5] invalid minLocalPanic: -1 < 0",
			field: "minLocalPanic",
		},
		{
			name: "trigger names unknown event",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "EventTriggers", "TR-1", "eventDefId", "EV-404")
				return s
			},
			want:  "EventTriggers[row 4] missing eventDefId=EV-404",
			field: "eventDefId",
		},
		{
			name: "option names unknown event",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "EventOptions", "OPT-1", "eventDefId", "EV-404")
				return s
			},
			want:    "EventOptions[row 2] missing eventDefId=EV-404",
			field:   "eventDefId",
			cellRef: "B2",
		},
		{
			name: "option names unknown effect",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "EventOptions", "OPT-1", "effectId", "EF-404")
				return s
			},
			want:  "EventOptions[row 2] missing effectId=EF-404",
			field: "effectId",
		},
		{
			name: "option without event",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "EventOptions", "OPT-2", "eventDefId", nil)
				return s
			},
			want:  "EventOptions[row 3] missing eventDefId=",
			field: "eventDefId",
		},
		{
			name: "duplicate option key",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Append(s, "EventOptions", map[string]any{
					"rowId": "OPT-4", "eventDefId": "EV-001", "optionId": "A", "text": "Again",
				})
				return s
			},
			want:  "EventOptions[row 2] duplicate eventDefId+optionId=EV-001/A on rows 2,5",
			field: "eventDefId+optionId",
		},
		{
			name: "unknown anomaly class",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "Anomalies", "AN-001", "class", "Apollyon")
				return s
			},
			want:    `Anomalies[row 2] invalid class "Apollyon" (allowed: Safe, Euclid, Keter, Thaumiel, Neutralized)`,
			field:   "class",
			cellRef: "C2",
		},
		{
			name: "empty required enum",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "Events", "EV-001", "blockPolicy", nil)
				return s
			},
			want:  "Events[row 2] empty blockPolicy (allowed: None, BlockOriginTask, BlockAllTasksOnNode)",
			field: "blockPolicy",
		},
		{
			name: "text in numeric column of plain sheet",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "Anomalies", "AN-001", "baseThreat", "high")
				return s
			},
			want:  `Anomalies[row 2] cannot parse baseThreat as int: "high"`,
			field: "baseThreat",
		},
		{
			name: "unknown scope",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "EffectOps", "OP-1", "scope", "Planet")
				return s
			},
			want:  `EffectOps[row 2] scope: invalid affect scope "Planet" (allowed: OriginTask, Node, Global, TaskType:<Investigate, Contain, Manage>)`,
			field: "scope",
		},
		{
			name: "blocking event cannot resume",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "EffectOps", "OP-2", "op", "Mul")
				return s
			},
			want:  "Events[row 3] blockPolicy BlockOriginTask requires an OriginTask TaskProgressDelta Add op in its effects",
			field: "blockPolicy",
		},
		{
			name: "balance value does not match type",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "Balance", "maxPanic", "value", "lots")
				return s
			},
			want:  `Balance[row 4] balance maxPanic: value "lots" is not a valid int`,
			field: "value",
		},
		{
			name: "unknown balance type",
			mutate: func(s []models.Sheet) []models.Sheet {
				testfixture.Set(s, "Balance", "maxPanic", "type", "decimal")
				return s
			},
			want:  `Balance[row 4] invalid balance type "decimal" (allowed: int, float, string, bool, int[], float[], string[])`,
			field: "type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			issues := run(t, tt.mutate(testfixture.Sheets()))
			require.Len(t, issues, 1, issues.Strings())
			assert.Equal(t, tt.want, issues[0].String())
			assert.Equal(t, models.SeverityError, issues[0].Severity)
			assert.Equal(t, tt.field, issues[0].Field)
			if tt.cellRef != "" {
				assert.Equal(t, tt.cellRef, issues[0].Cell)
			}
		})
	}
}

func TestValidateMissingSheetStops(t *testing.T) {
	sheets := testfixture.Remove(testfixture.Sheets(), "Effects")
	testfixture.Set(sheets, "Anomalies", "AN-001", "class", "Apollyon")

	issues := run(t, sheets)
	assert.Equal(t, []string{"Effects: missing required sheet Effects"}, issues.Strings())
}

func TestValidateEmptyRequiredSheetReportsColumns(t *testing.T) {
	sheets := testfixture.Sheets()
	testfixture.Find(sheets, "Effects").Grid = nil

	issues := run(t, sheets)
	assert.Equal(t, []string{"Effects: missing required column effectId"}, issues.Strings())
}

func TestValidateMissingColumnStops(t *testing.T) {
	sheets := testfixture.Sheets()
	ops := testfixture.Find(sheets, "EffectOps")
	ops.Grid[0][3] = "stat"
	testfixture.Set(sheets, "Nodes", "N1", "startAnomalyIds", "AN-404")

	issues := run(t, sheets)
	require.Len(t, issues, 1)
	assert.Equal(t, "EffectOps: missing required column statKey", issues[0].String())
	assert.Equal(t, "statKey", issues[0].Field)
}

func TestValidateAccumulatesInCheckOrder(t *testing.T) {
	sheets := testfixture.Sheets()
	testfixture.Set(sheets, "Nodes", "N1", "startAnomalyIds", "AN-404")
	testfixture.Set(sheets, "Anomalies", "AN-001", "class", "Apollyon")

	issues := run(t, sheets)
	require.Len(t, issues, 2)
	assert.Equal(t, "class", issues[0].Field)
	assert.Equal(t, "startAnomalyIds", issues[1].Field)
}

func TestValidateOptionalPlaceholders(t *testing.T) {
	sheets := testfixture.Sheets()
	testfixture.Set(sheets, "Events", "EV-001", "ignoreEffectId", "none")
	testfixture.Set(sheets, "EventOptions", "OPT-2", "effectId", "N/A")
	testfixture.Set(sheets, "Events", "EV-001", "source", nil)

	assert.Empty(t, run(t, sheets).Strings())
}

func TestValidateCaseInsensitiveEnums(t *testing.T) {
	sheets := testfixture.Sheets()
	testfixture.Set(sheets, "Anomalies", "AN-001", "class", "euclid")
	testfixture.Set(sheets, "EffectOps", "OP-1", "scope", "node;taskType:manage")

	assert.Empty(t, run(t, sheets).Strings())
}

func TestValidateRequiresRowIDColumn(t *testing.T) {
	sheets := testfixture.Sheets()
	for _, name := range []string{"EventOptions", "EffectOps", "EventTriggers"} {
		testfixture.DropColumn(sheets, name, "rowId")
	}

	issues := run(t, sheets)
	assert.Equal(t, []string{
		"EventOptions: missing required column rowId",
		"EffectOps: missing required column rowId",
		"EventTriggers: missing required column rowId",
	}, issues.Strings())
}

func TestValidateRowIDMustLead(t *testing.T) {
	sheets := testfixture.Sheets()
	options := testfixture.Find(sheets, "EventOptions")
	for _, row := range options.Grid {
		row[0], row[1] = row[1], row[0]
	}

	issues := run(t, sheets)
	require.Len(t, issues, 1, issues.Strings())
	assert.Equal(t, "EventOptions: first column must be rowId, found eventDefId", issues[0].String())
	assert.Equal(t, "rowId", issues[0].Field)
}

func TestValidateRowsSharingParent(t *testing.T) {
	sheets := testfixture.Sheets()
	testfixture.Append(sheets, "EffectOps", map[string]any{
		"rowId": "OP-3", "effectId": "EF-001", "scope": "Global", "statKey": "Fear", "op": "Add", "value": "2",
	})
	testfixture.Append(sheets, "EventOptions", map[string]any{
		"rowId": "OPT-4", "eventDefId": "EV-001", "optionId": "C", "text": "Flee",
	})

	assert.Empty(t, run(t, sheets).Strings())
}
