// Package schema describes the known sheets of a game data workbook.
package schema

import "github.com/hszqf/gamedata-go/pkg/gamedata/models"

// Sheet names.
const (
	SheetMeta          = "Meta"
	SheetBalance       = "Balance"
	SheetNodes         = "Nodes"
	SheetAnomalies     = "Anomalies"
	SheetTaskDefs      = "TaskDefs"
	SheetEvents        = "Events"
	SheetEventOptions  = "EventOptions"
	SheetEffects       = "Effects"
	SheetEffectOps     = "EffectOps"
	SheetEventTriggers = "EventTriggers"
	SheetNewsDefs      = "NewsDefs"
)

// Field describes one known column.
type Field struct {
	// Name is the column name.
	Name string
	// Type is the kind the value must coerce to.
	Type models.ColumnType
	// Required columns must be present in the sheet header.
	Required bool
	// Optional values are normalized (none, null, n/a, na, -) before coercion.
	Optional bool
	// Enum names the closed value set the field draws from, if any.
	Enum EnumName
}

// Sheet describes one known sheet.
type Sheet struct {
	Name string
	// Required sheets must exist in the workbook.
	Required bool
	// IDField must be the first column, since rows are keyed by it and later duplicates
	// replace earlier rows. Sheets without a natural key use a leading rowId column.
	IDField string
	Fields  []Field
}

// Field returns the field named name.
func (s Sheet) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// RequiredColumns lists the names of required fields in declaration order.
func (s Sheet) RequiredColumns() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

// rowIDField is the leading key column of sheets whose rows share parent ids.
const rowIDField = "rowId"

func req(name string, t models.ColumnType) Field {
	return Field{Name: name, Type: t, Required: true}
}

func opt(name string, t models.ColumnType) Field {
	return Field{Name: name, Type: t, Optional: true}
}

func field(name string, t models.ColumnType) Field {
	return Field{Name: name, Type: t}
}

func enum(f Field, e EnumName) Field {
	f.Enum = e
	return f
}

// Sheets lists the known sheets in export order.
var Sheets = []Sheet{
	{
		Name: SheetMeta, Required: true, IDField: "schemaVersion",
		Fields: []Field{
			req("schemaVersion", models.TypeString),
			req("dataVersion", models.TypeString),
			field("comment", models.TypeString),
		},
	},
	{
		Name: SheetBalance, Required: true, IDField: "key",
		Fields: []Field{
			req("key", models.TypeString),
			req("value", models.TypeString),
			req("type", models.TypeString),
			field("comment", models.TypeString),
		},
	},
	{
		Name: SheetNodes, Required: true, IDField: "nodeId",
		Fields: []Field{
			req("nodeId", models.TypeString),
			req("name", models.TypeString),
			field("tags", models.TypeStringList),
			field("startLocalPanic", models.TypeInt),
			field("startPopulation", models.TypeInt),
			req("startAnomalyIds", models.TypeStringList),
		},
	},
	{
		Name: SheetAnomalies, Required: true, IDField: "anomalyId",
		Fields: []Field{
			req("anomalyId", models.TypeString),
			req("name", models.TypeString),
			enum(req("class", models.TypeString), EnumAnomalyClass),
			field("tags", models.TypeStringList),
			field("baseThreat", models.TypeInt),
			field("investigateDifficulty", models.TypeInt),
			field("containDifficulty", models.TypeInt),
			field("manageRisk", models.TypeInt),
		},
	},
	{
		Name: SheetTaskDefs, Required: true, IDField: "taskDefId",
		Fields: []Field{
			req("taskDefId", models.TypeString),
			enum(req("taskType", models.TypeString), EnumTaskType),
			field("name", models.TypeString),
			field("baseDays", models.TypeInt),
			field("progressPerDay", models.TypeFloat),
			field("agentSlotsMin", models.TypeInt),
			field("agentSlotsMax", models.TypeInt),
			opt("yieldKey", models.TypeString),
			opt("yieldPerDay", models.TypeFloat),
		},
	},
	{
		Name: SheetEvents, Required: true, IDField: "eventDefId",
		Fields: []Field{
			req("eventDefId", models.TypeString),
			enum(field("source", models.TypeString), EnumEventSource),
			enum(req("causeType", models.TypeString), EnumCauseType),
			field("weight", models.TypeInt),
			field("title", models.TypeString),
			field("desc", models.TypeString),
			enum(req("blockPolicy", models.TypeString), EnumBlockPolicy),
			field("defaultAffects", models.TypeStringList),
			field("autoResolveAfterDays", models.TypeInt),
			enum(opt("ignoreApplyMode", models.TypeString), EnumIgnoreApplyMode),
			opt("ignoreEffectId", models.TypeString),
		},
	},
	{
		Name: SheetEventOptions, Required: true, IDField: rowIDField,
		Fields: []Field{
			req(rowIDField, models.TypeString),
			req("eventDefId", models.TypeString),
			req("optionId", models.TypeString),
			field("text", models.TypeString),
			field("resultText", models.TypeString),
			field("affects", models.TypeStringList),
			opt("effectId", models.TypeString),
		},
	},
	{
		Name: SheetEffects, Required: true, IDField: "effectId",
		Fields: []Field{
			req("effectId", models.TypeString),
			field("comment", models.TypeString),
		},
	},
	{
		Name: SheetEffectOps, Required: true, IDField: rowIDField,
		Fields: []Field{
			req(rowIDField, models.TypeString),
			req("effectId", models.TypeString),
			req("scope", models.TypeString),
			req("statKey", models.TypeString),
			enum(req("op", models.TypeString), EnumEffectOp),
			req("value", models.TypeFloat),
			opt("min", models.TypeFloat),
			opt("max", models.TypeFloat),
			field("comment", models.TypeString),
		},
	},
	{
		Name: SheetEventTriggers, Required: true, IDField: rowIDField,
		Fields: []Field{
			req(rowIDField, models.TypeString),
			req("eventDefId", models.TypeString),
			opt("minDay", models.TypeInt),
			opt("maxDay", models.TypeInt),
			field("requiresNodeTagsAny", models.TypeStringList),
			field("requiresNodeTagsAll", models.TypeStringList),
			field("requiresAnomalyTagsAny", models.TypeStringList),
			opt("requiresSecured", models.TypeBool),
			opt("minLocalPanic", models.TypeInt),
			enum(opt("taskType", models.TypeString), EnumTaskType),
			opt("onlyAffectOriginTask", models.TypeBool),
		},
	},
	{
		Name: SheetNewsDefs,
		Fields: []Field{
			enum(opt("source", models.TypeString), EnumEventSource),
		},
	},
}

// Lookup returns the known sheet named name.
func Lookup(name string) (Sheet, bool) {
	for _, s := range Sheets {
		if s.Name == name {
			return s, true
		}
	}
	return Sheet{}, false
}

// IsOptional reports whether column of sheet is a known optional field.
func IsOptional(sheet, column string) bool {
	s, ok := Lookup(sheet)
	if !ok {
		return false
	}
	f, ok := s.Field(column)
	return ok && f.Optional
}

// RequiredSheets lists the sheets every workbook must contain.
func RequiredSheets() []string {
	var out []string
	for _, s := range Sheets {
		if s.Required {
			out = append(out, s.Name)
		}
	}
	return out
}
