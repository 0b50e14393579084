// Package validate checks the tables of a workbook against the game data schema.
//
// Checks run in a fixed order. Missing sheets, missing required columns and a wrong leading
// key column stop the run, since later checks address columns by name and expect rows keyed
// by the declared id. All other checks accumulate so one pass reports every problem.
package validate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/parser"
	"github.com/hszqf/gamedata-go/pkg/gamedata/schema"
)

type validator struct {
	tables map[string]*models.Table
	issues models.IssueList
}

// Validate returns every structural issue found in tables.
//
// present lists the sheet names of the workbook, including empty sheets that produced no table.
func Validate(tables map[string]*models.Table, present []string) models.IssueList {
	v := &validator{tables: tables}

	if !v.checkRequiredSheets(present) {
		return v.issues
	}
	if !v.checkRequiredColumns() {
		return v.issues
	}
	v.checkFieldTypes()
	v.checkEnums()
	v.checkForeignKeys()
	v.checkScopes()
	v.checkDuplicateOptions()
	v.checkRanges()
	v.checkBlockOriginTask()
	v.checkBalance()
	return v.issues
}

func (v *validator) checkRequiredSheets(present []string) bool {
	have := make(map[string]bool, len(present))
	for _, name := range present {
		have[name] = true
	}
	ok := true
	for _, name := range schema.RequiredSheets() {
		if !have[name] {
			v.issues.Errorf(name, 0, "", "", "missing required sheet %s", name)
			ok = false
		}
	}
	return ok
}

func (v *validator) checkRequiredColumns() bool {
	ok := true
	for _, sheet := range schema.Sheets {
		if !sheet.Required {
			continue
		}
		table := v.tables[sheet.Name]
		for _, col := range sheet.RequiredColumns() {
			if !table.HasColumn(col) {
				v.issues.Errorf(sheet.Name, 0, col, "", "missing required column %s", col)
				ok = false
			}
		}
		// Rows were keyed by the first column on read; any other leading column may have
		// merged distinct rows.
		if sheet.IDField != "" && table.HasColumn(sheet.IDField) && table.IDField != sheet.IDField {
			v.issues.Errorf(sheet.Name, 0, sheet.IDField, table.IDField,
				"first column must be %s, found %s", sheet.IDField, table.IDField)
			ok = false
		}
	}
	return ok
}

// checkFieldTypes coerces every known field to its schema type. Typed sheets were coerced on
// read already; this catches plain sheets, where every value is text.
func (v *validator) checkFieldTypes() {
	for _, sheet := range schema.Sheets {
		table := v.tables[sheet.Name]
		if table == nil {
			continue
		}
		for _, f := range sheet.Fields {
			if f.Type == models.TypeString || !table.HasColumn(f.Name) {
				continue
			}
			for _, row := range table.Rows {
				raw := row.Get(f.Name)
				if _, err := parser.CoerceField(f.Name, raw, f.Type, f.Optional); err != nil {
					v.add(table, row, f.Name, parser.FormatValue(raw), "cannot parse %s as %s: %q", f.Name, f.Type, parser.FormatValue(raw))
				}
			}
		}
	}
}

func (v *validator) checkEnums() {
	for _, sheet := range schema.Sheets {
		table := v.tables[sheet.Name]
		if table == nil {
			continue
		}
		for _, f := range sheet.Fields {
			if f.Enum == "" || !table.HasColumn(f.Name) {
				continue
			}
			for _, row := range table.Rows {
				value := text(row, f.Name, f.Optional)
				if value == "" {
					if f.Required {
						v.add(table, row, f.Name, "", "empty %s (allowed: %s)", f.Name, schema.Allowed(f.Enum))
					}
					continue
				}
				if _, ok := schema.Canonical(f.Enum, value); !ok {
					v.add(table, row, f.Name, value, "invalid %s %q (allowed: %s)", f.Name, value, schema.Allowed(f.Enum))
				}
			}
		}
	}
}

func (v *validator) checkForeignKeys() {
	anomalies := v.ids(schema.SheetAnomalies, "anomalyId")
	events := v.ids(schema.SheetEvents, "eventDefId")
	effects := v.ids(schema.SheetEffects, "effectId")

	nodes := v.tables[schema.SheetNodes]
	for _, row := range models.RowsOf(nodes) {
		for _, id := range list(row, "startAnomalyIds") {
			if !anomalies[id] {
				v.add(nodes, row, "startAnomalyIds", id, "missing startAnomalyId=%s", id)
			}
		}
	}

	v.requireRef(schema.SheetEventOptions, "eventDefId", events, true)
	v.requireRef(schema.SheetEventOptions, "effectId", effects, false)
	v.requireRef(schema.SheetEventTriggers, "eventDefId", events, true)
	v.requireRef(schema.SheetEvents, "ignoreEffectId", effects, false)
	v.requireRef(schema.SheetEffectOps, "effectId", effects, true)
}

// requireRef reports rows of sheet whose field does not name an id in ids. Empty values are
// dangling too when required is set.
func (v *validator) requireRef(sheet, field string, ids map[string]bool, required bool) {
	table := v.tables[sheet]
	if !table.HasColumn(field) {
		return
	}
	optional := schema.IsOptional(sheet, field)
	for _, row := range table.Rows {
		id := text(row, field, optional)
		if id == "" && !required {
			continue
		}
		if !ids[id] {
			v.add(table, row, field, id, "missing %s=%s", field, id)
		}
	}
}

func (v *validator) checkScopes() {
	v.checkScopeList(schema.SheetEvents, "defaultAffects", false)
	v.checkScopeList(schema.SheetEventOptions, "affects", false)
	v.checkScopeList(schema.SheetEffectOps, "scope", true)
}

func (v *validator) checkScopeList(sheet, field string, required bool) {
	table := v.tables[sheet]
	if !table.HasColumn(field) {
		return
	}
	for _, row := range table.Rows {
		tokens := list(row, field)
		if len(tokens) == 0 {
			if required {
				v.add(table, row, field, "", "empty %s (allowed: %s)", field, schema.AllowedScopes())
			}
			continue
		}
		for _, token := range tokens {
			if _, err := schema.ParseScope(token); err != nil {
				v.add(table, row, field, token, "%s: %v", field, err)
			}
		}
	}
}

func (v *validator) checkDuplicateOptions() {
	table := v.tables[schema.SheetEventOptions]
	if table == nil {
		return
	}
	lines := make(map[string][]int)
	var keys []string
	for _, row := range table.Rows {
		key := text(row, "eventDefId", false) + "/" + text(row, "optionId", false)
		if _, seen := lines[key]; !seen {
			keys = append(keys, key)
		}
		lines[key] = append(lines[key], row.Line)
	}
	sort.Strings(keys)
	for _, key := range keys {
		rows := lines[key]
		if len(rows) < 2 {
			continue
		}
		v.issues.Add(models.Issue{
			Severity: models.SeverityError,
			Sheet:    table.SheetName,
			Row:      rows[0],
			Field:    "eventDefId+optionId",
			Value:    key,
			Message:  fmt.Sprintf("duplicate eventDefId+optionId=%s on rows %s", key, joinLines(rows)),
		})
	}
}

func (v *validator) checkRanges() {
	table := v.tables[schema.SheetEventTriggers]
	for _, row := range models.RowsOf(table) {
		minDay, okMin := intValue(row, "minDay")
		maxDay, okMax := intValue(row, "maxDay")
		if okMin && okMax && minDay > maxDay {
			v.add(table, row, "minDay", fmt.Sprintf("%d>%d", minDay, maxDay), "invalid day range: %d>%d", minDay, maxDay)
		}
		if threshold, ok := intValue(row, "minLocalPanic"); ok && threshold < 0 {
			v.add(table, row, "minLocalPanic", fmt.Sprint(threshold), "invalid minLocalPanic: %d < 0", threshold)
		}
	}
}

// checkBlockOriginTask requires events that block their origin task to carry an effect able
// to push that task forward again.
func (v *validator) checkBlockOriginTask() {
	events := v.tables[schema.SheetEvents]
	if events == nil {
		return
	}

	optionEffects := make(map[string][]string)
	for _, row := range models.RowsOf(v.tables[schema.SheetEventOptions]) {
		if effectID := text(row, "effectId", true); effectID != "" {
			eventID := text(row, "eventDefId", false)
			optionEffects[eventID] = append(optionEffects[eventID], effectID)
		}
	}

	resumes := make(map[string]bool)
	for _, row := range models.RowsOf(v.tables[schema.SheetEffectOps]) {
		if !strings.EqualFold(text(row, "statKey", false), "TaskProgressDelta") {
			continue
		}
		if op, _ := schema.Canonical(schema.EnumEffectOp, text(row, "op", false)); op != "Add" {
			continue
		}
		for _, token := range list(row, "scope") {
			if s, err := schema.ParseScope(token); err == nil && s.Kind == schema.ScopeOriginTask {
				resumes[text(row, "effectId", false)] = true
			}
		}
	}

	for _, row := range events.Rows {
		policy, _ := schema.Canonical(schema.EnumBlockPolicy, text(row, "blockPolicy", false))
		if policy != "BlockOriginTask" {
			continue
		}
		eventID := text(row, "eventDefId", false)
		related := optionEffects[eventID]
		if id := text(row, "ignoreEffectId", true); id != "" {
			related = append(related, id)
		}
		found := false
		for _, id := range related {
			if resumes[id] {
				found = true
				break
			}
		}
		if !found {
			v.add(events, row, "blockPolicy", policy,
				"blockPolicy BlockOriginTask requires an OriginTask TaskProgressDelta Add op in its effects")
		}
	}
}

// checkBalance verifies that each value matches its declared type.
func (v *validator) checkBalance() {
	table := v.tables[schema.SheetBalance]
	for _, row := range models.RowsOf(table) {
		typ := text(row, "type", false)
		if typ == "" {
			continue
		}
		t, ok := models.ParseColumnType(typ)
		if !ok {
			v.add(table, row, "type", typ, "invalid balance type %q (allowed: %s)", typ, allowedTypes())
			continue
		}
		raw := row.Get("value")
		if _, err := parser.Coerce(raw, t); err != nil {
			v.add(table, row, "value", parser.FormatValue(raw), "balance %s: value %q is not a valid %s", text(row, "key", false), parser.FormatValue(raw), t)
		}
	}
}
