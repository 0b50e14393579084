package models

// Meta carries the version stamp of a data set.
type Meta struct {
	SchemaVersion string `json:"schemaVersion"`
	DataVersion   string `json:"dataVersion"`
	Comment       string `json:"comment"`
}

// BalanceEntry is one tuning value; Value is kept as text and interpreted by Type at runtime.
type BalanceEntry struct {
	Value   string `json:"value"`
	Type    string `json:"type"`
	Comment string `json:"comment"`
}

// Document is the exported game data.
type Document struct {
	Meta          Meta                    `json:"meta"`
	Balance       map[string]BalanceEntry `json:"balance"`
	Nodes         []Node                  `json:"nodes"`
	Anomalies     []Anomaly               `json:"anomalies"`
	TaskDefs      []TaskDef               `json:"taskDefs"`
	Events        []Event                 `json:"events"`
	EventOptions  []EventOption           `json:"eventOptions"`
	Effects       []Effect                `json:"effects"`
	EffectOps     []EffectOp              `json:"effectOps"`
	EventTriggers []EventTrigger          `json:"eventTriggers"`
	// Tables holds every non-empty sheet in generic form.
	Tables map[string]*Table `json:"tables,omitempty"`
}
