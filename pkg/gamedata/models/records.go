package models

// Node is a map location.
type Node struct {
	NodeID          string   `json:"nodeId"`
	Name            string   `json:"name"`
	Tags            []string `json:"tags"`
	StartLocalPanic int      `json:"startLocalPanic"`
	StartPopulation int      `json:"startPopulation"`
	StartAnomalyIDs []string `json:"startAnomalyIds"`
}

// Anomaly is an anomaly definition.
type Anomaly struct {
	AnomalyID             string   `json:"anomalyId"`
	Name                  string   `json:"name"`
	Class                 string   `json:"class"`
	Tags                  []string `json:"tags"`
	BaseThreat            int      `json:"baseThreat"`
	InvestigateDifficulty int      `json:"investigateDifficulty"`
	ContainDifficulty     int      `json:"containDifficulty"`
	ManageRisk            int      `json:"manageRisk"`
}

// TaskDef configures one task type.
type TaskDef struct {
	TaskDefID      string  `json:"taskDefId"`
	TaskType       string  `json:"taskType"`
	Name           string  `json:"name"`
	BaseDays       int     `json:"baseDays"`
	ProgressPerDay float64 `json:"progressPerDay"`
	AgentSlotsMin  int     `json:"agentSlotsMin"`
	AgentSlotsMax  int     `json:"agentSlotsMax"`
	YieldKey       string  `json:"yieldKey"`
	YieldPerDay    float64 `json:"yieldPerDay"`
	// HasYieldKey and HasYieldPerDay tell an explicit zero from an absent cell.
	HasYieldKey    bool `json:"hasYieldKey"`
	HasYieldPerDay bool `json:"hasYieldPerDay"`
}

// Event is an event definition.
type Event struct {
	EventDefID           string   `json:"eventDefId"`
	Source               string   `json:"source"`
	CauseType            string   `json:"causeType"`
	Weight               int      `json:"weight"`
	Title                string   `json:"title"`
	Desc                 string   `json:"desc"`
	BlockPolicy          string   `json:"blockPolicy"`
	DefaultAffects       []string `json:"defaultAffects"`
	AutoResolveAfterDays int      `json:"autoResolveAfterDays"`
	IgnoreApplyMode      string   `json:"ignoreApplyMode"`
	IgnoreEffectID       string   `json:"ignoreEffectId"`
}

// EventOption is one choice of an event.
type EventOption struct {
	EventDefID string   `json:"eventDefId"`
	OptionID   string   `json:"optionId"`
	Text       string   `json:"text"`
	ResultText string   `json:"resultText"`
	Affects    []string `json:"affects"`
	EffectID   string   `json:"effectId"`
}

// Effect groups effect operations.
type Effect struct {
	EffectID string `json:"effectId"`
	Comment  string `json:"comment"`
}

// EffectOp is one stat modification of an effect.
type EffectOp struct {
	EffectID string   `json:"effectId"`
	Scope    string   `json:"scope"`
	StatKey  string   `json:"statKey"`
	Op       string   `json:"op"`
	Value    float64  `json:"value"`
	Min      *float64 `json:"min"`
	Max      *float64 `json:"max"`
	Comment  string   `json:"comment"`
}

// EventTrigger gates when an event may fire. Nil pointers mean "no constraint".
type EventTrigger struct {
	RowID                  string   `json:"rowId"`
	EventDefID             string   `json:"eventDefId"`
	MinDay                 *int     `json:"minDay"`
	MaxDay                 *int     `json:"maxDay"`
	RequiresNodeTagsAny    []string `json:"requiresNodeTagsAny"`
	RequiresNodeTagsAll    []string `json:"requiresNodeTagsAll"`
	RequiresAnomalyTagsAny []string `json:"requiresAnomalyTagsAny"`
	RequiresSecured        *bool    `json:"requiresSecured"`
	MinLocalPanic          *int     `json:"minLocalPanic"`
	TaskType               string   `json:"taskType"`
	OnlyAffectOriginTask   *bool    `json:"onlyAffectOriginTask"`
}
