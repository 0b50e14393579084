// Package output assembles and serializes the exported game data document.
package output

import (
	"bytes"
	"encoding/json"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/hszqf/gamedata-go/pkg/gamedata/project"
)

// Assemble merges the projected domain collections with the generic table dump.
//
// Nil collections are replaced by empty ones so the document always serializes lists as [].
// A nil tables map omits the generic section.
func Assemble(domain project.Result, tables map[string]*models.Table) *models.Document {
	doc := &models.Document{
		Meta:          domain.Meta,
		Balance:       domain.Balance,
		Nodes:         nonNil(domain.Nodes),
		Anomalies:     nonNil(domain.Anomalies),
		TaskDefs:      nonNil(domain.TaskDefs),
		Events:        nonNil(domain.Events),
		EventOptions:  nonNil(domain.EventOptions),
		Effects:       nonNil(domain.Effects),
		EffectOps:     nonNil(domain.EffectOps),
		EventTriggers: nonNil(domain.EventTriggers),
	}
	if doc.Balance == nil {
		doc.Balance = map[string]models.BalanceEntry{}
	}
	if tables != nil {
		doc.Tables = make(map[string]*models.Table, len(tables))
		for name, t := range tables {
			if t != nil {
				doc.Tables[name] = t
			}
		}
	}
	return doc
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// ToJSON serializes a document.
//
// Record fields follow their declared order and map keys are sorted, so identical documents
// always produce identical bytes. Non-ASCII text is written as is.
func ToJSON(doc *models.Document, pretty bool) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IssuesToJSON serializes an issue list for machine consumption.
func IssuesToJSON(issues models.IssueList, pretty bool) ([]byte, error) {
	if issues == nil {
		issues = models.IssueList{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(issues); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
