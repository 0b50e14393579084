// Package project maps generic sheet tables onto the game's domain records.
//
// Projection never validates: absent numbers become zero, absent lists become empty and
// absent optional strings become "". Event weight is the one non-zero default (1).
package project

import (
	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/schema"
)

// defaultEventWeight keeps events selectable when the weight cell is empty.
const defaultEventWeight = 1

// Result holds every projected domain collection.
type Result struct {
	Meta          models.Meta
	Balance       map[string]models.BalanceEntry
	Nodes         []models.Node
	Anomalies     []models.Anomaly
	TaskDefs      []models.TaskDef
	Events        []models.Event
	EventOptions  []models.EventOption
	Effects       []models.Effect
	EffectOps     []models.EffectOp
	EventTriggers []models.EventTrigger
}

// Project projects every known sheet found in tables. Missing sheets yield empty collections.
func Project(tables map[string]*models.Table) Result {
	return Result{
		Meta:          Meta(tables[schema.SheetMeta]),
		Balance:       Balance(tables[schema.SheetBalance]),
		Nodes:         Nodes(tables[schema.SheetNodes]),
		Anomalies:     Anomalies(tables[schema.SheetAnomalies]),
		TaskDefs:      TaskDefs(tables[schema.SheetTaskDefs]),
		Events:        Events(tables[schema.SheetEvents]),
		EventOptions:  EventOptions(tables[schema.SheetEventOptions]),
		Effects:       Effects(tables[schema.SheetEffects]),
		EffectOps:     EffectOps(tables[schema.SheetEffectOps]),
		EventTriggers: EventTriggers(tables[schema.SheetEventTriggers]),
	}
}

// Meta reads the first row of the Meta sheet.
func Meta(t *models.Table) models.Meta {
	rows := models.RowsOf(t)
	if len(rows) == 0 {
		return models.Meta{}
	}
	r := rows[0]
	return models.Meta{
		SchemaVersion: str(r, "schemaVersion"),
		DataVersion:   str(r, "dataVersion"),
		Comment:       str(r, "comment"),
	}
}

// Balance keys tuning values by their key column. Rows without a key are skipped.
func Balance(t *models.Table) map[string]models.BalanceEntry {
	out := make(map[string]models.BalanceEntry)
	for _, r := range models.RowsOf(t) {
		key := str(r, "key")
		if key == "" {
			continue
		}
		out[key] = models.BalanceEntry{
			Value:   raw(r, "value"),
			Type:    raw(r, "type"),
			Comment: raw(r, "comment"),
		}
	}
	return out
}

// Nodes projects the Nodes sheet. Tag and anomaly lists default to empty.
func Nodes(t *models.Table) []models.Node {
	out := make([]models.Node, 0, len(models.RowsOf(t)))
	for _, r := range models.RowsOf(t) {
		out = append(out, models.Node{
			NodeID:          str(r, "nodeId"),
			Name:            str(r, "name"),
			Tags:            strList(r, "tags"),
			StartLocalPanic: intOr(r, "startLocalPanic", 0),
			StartPopulation: intOr(r, "startPopulation", 0),
			StartAnomalyIDs: strList(r, "startAnomalyIds"),
		})
	}
	return out
}

// Anomalies projects the Anomalies sheet.
func Anomalies(t *models.Table) []models.Anomaly {
	out := make([]models.Anomaly, 0, len(models.RowsOf(t)))
	for _, r := range models.RowsOf(t) {
		out = append(out, models.Anomaly{
			AnomalyID:             str(r, "anomalyId"),
			Name:                  str(r, "name"),
			Class:                 str(r, "class"),
			Tags:                  strList(r, "tags"),
			BaseThreat:            intOr(r, "baseThreat", 0),
			InvestigateDifficulty: intOr(r, "investigateDifficulty", 0),
			ContainDifficulty:     intOr(r, "containDifficulty", 0),
			ManageRisk:            intOr(r, "manageRisk", 0),
		})
	}
	return out
}

// TaskDefs projects the TaskDefs sheet; the has* flags record whether yield cells were set.
func TaskDefs(t *models.Table) []models.TaskDef {
	out := make([]models.TaskDef, 0, len(models.RowsOf(t)))
	for _, r := range models.RowsOf(t) {
		yieldPerDay := floatPtr(r, "yieldPerDay")
		def := models.TaskDef{
			TaskDefID:      str(r, "taskDefId"),
			TaskType:       str(r, "taskType"),
			Name:           str(r, "name"),
			BaseDays:       intOr(r, "baseDays", 0),
			ProgressPerDay: floatOr(r, "progressPerDay", 0),
			AgentSlotsMin:  intOr(r, "agentSlotsMin", 0),
			AgentSlotsMax:  intOr(r, "agentSlotsMax", 0),
			YieldKey:       optStr(r, "yieldKey"),
			HasYieldPerDay: yieldPerDay != nil,
		}
		def.HasYieldKey = def.YieldKey != ""
		if yieldPerDay != nil {
			def.YieldPerDay = *yieldPerDay
		}
		out = append(out, def)
	}
	return out
}

// Events projects the Events sheet. An empty weight reads as 1.
func Events(t *models.Table) []models.Event {
	out := make([]models.Event, 0, len(models.RowsOf(t)))
	for _, r := range models.RowsOf(t) {
		out = append(out, models.Event{
			EventDefID:           str(r, "eventDefId"),
			Source:               str(r, "source"),
			CauseType:            str(r, "causeType"),
			Weight:               intOr(r, "weight", defaultEventWeight),
			Title:                raw(r, "title"),
			Desc:                 raw(r, "desc"),
			BlockPolicy:          str(r, "blockPolicy"),
			DefaultAffects:       strList(r, "defaultAffects"),
			AutoResolveAfterDays: intOr(r, "autoResolveAfterDays", 0),
			IgnoreApplyMode:      optStr(r, "ignoreApplyMode"),
			IgnoreEffectID:       optStr(r, "ignoreEffectId"),
		})
	}
	return out
}

// EventOptions projects the EventOptions sheet in row order.
func EventOptions(t *models.Table) []models.EventOption {
	out := make([]models.EventOption, 0, len(models.RowsOf(t)))
	for _, r := range models.RowsOf(t) {
		out = append(out, models.EventOption{
			EventDefID: str(r, "eventDefId"),
			OptionID:   str(r, "optionId"),
			Text:       raw(r, "text"),
			ResultText: raw(r, "resultText"),
			Affects:    strList(r, "affects"),
			EffectID:   optStr(r, "effectId"),
		})
	}
	return out
}

// Effects projects the Effects sheet.
func Effects(t *models.Table) []models.Effect {
	out := make([]models.Effect, 0, len(models.RowsOf(t)))
	for _, r := range models.RowsOf(t) {
		out = append(out, models.Effect{
			EffectID: str(r, "effectId"),
			Comment:  raw(r, "comment"),
		})
	}
	return out
}

// EffectOps projects the EffectOps sheet. Absent min and max stay nil.
func EffectOps(t *models.Table) []models.EffectOp {
	out := make([]models.EffectOp, 0, len(models.RowsOf(t)))
	for _, r := range models.RowsOf(t) {
		out = append(out, models.EffectOp{
			EffectID: str(r, "effectId"),
			Scope:    str(r, "scope"),
			StatKey:  str(r, "statKey"),
			Op:       str(r, "op"),
			Value:    floatOr(r, "value", 0),
			Min:      floatPtr(r, "min"),
			Max:      floatPtr(r, "max"),
			Comment:  raw(r, "comment"),
		})
	}
	return out
}

// EventTriggers projects the EventTriggers sheet. Absent constraints stay nil.
func EventTriggers(t *models.Table) []models.EventTrigger {
	out := make([]models.EventTrigger, 0, len(models.RowsOf(t)))
	for _, r := range models.RowsOf(t) {
		out = append(out, models.EventTrigger{
			RowID:                  str(r, "rowId"),
			EventDefID:             str(r, "eventDefId"),
			MinDay:                 intPtr(r, "minDay"),
			MaxDay:                 intPtr(r, "maxDay"),
			RequiresNodeTagsAny:    strList(r, "requiresNodeTagsAny"),
			RequiresNodeTagsAll:    strList(r, "requiresNodeTagsAll"),
			RequiresAnomalyTagsAny: strList(r, "requiresAnomalyTagsAny"),
			RequiresSecured:        boolPtr(r, "requiresSecured"),
			MinLocalPanic:          intPtr(r, "minLocalPanic"),
			TaskType:               optStr(r, "taskType"),
			OnlyAffectOriginTask:   boolPtr(r, "onlyAffectOriginTask"),
		})
	}
	return out
}
