package output

import (
	"errors"
	"sort"

	"github.com/tidwall/gjson"
)

// ErrNotDocument is returned when the input is not an exported document.
var ErrNotDocument = errors.New("input is not a game data document")

// TableSummary describes one generic table read back from a serialized document.
type TableSummary struct {
	Name    string   `json:"name"`
	Mode    string   `json:"mode"`
	IDField string   `json:"idField"`
	Rows    int      `json:"rows"`
	IDs     []string `json:"ids"`
}

// Summary is the re-imported shape of a serialized document.
type Summary struct {
	SchemaVersion string         `json:"schemaVersion"`
	DataVersion   string         `json:"dataVersion"`
	Counts        map[string]int `json:"counts"`
	Tables        []TableSummary `json:"tables"`
}

var collections = []string{
	"nodes", "anomalies", "taskDefs", "events", "eventOptions", "effects", "effectOps", "eventTriggers",
}

// Summarize reads a serialized document back and reports row counts and id sets per table.
func Summarize(data []byte) (*Summary, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrNotDocument
	}
	root := gjson.ParseBytes(data)
	if !root.IsObject() || !root.Get("meta").Exists() {
		return nil, ErrNotDocument
	}

	s := &Summary{
		SchemaVersion: root.Get("meta.schemaVersion").String(),
		DataVersion:   root.Get("meta.dataVersion").String(),
		Counts:        make(map[string]int, len(collections)+1),
	}
	for _, key := range collections {
		s.Counts[key] = len(root.Get(key).Array())
	}
	s.Counts["balance"] = len(root.Get("balance").Map())

	root.Get("tables").ForEach(func(name, table gjson.Result) bool {
		idField := table.Get("idField").String()
		ts := TableSummary{
			Name:    name.String(),
			Mode:    table.Get("mode").String(),
			IDField: idField,
			IDs:     []string{},
		}
		table.Get("rows").ForEach(func(_, row gjson.Result) bool {
			ts.Rows++
			if idField != "" {
				ts.IDs = append(ts.IDs, row.Get(gjson.Escape(idField)).String())
			}
			return true
		})
		s.Tables = append(s.Tables, ts)
		return true
	})
	sort.Slice(s.Tables, func(i, j int) bool { return s.Tables[i].Name < s.Tables[j].Name })
	return s, nil
}
