// Package models defines data structures for game data export.
package models

import (
	"bytes"
	"encoding/json"
)

// Row is a single data line of a sheet mapped by column name.
type Row struct {
	// Line is the spreadsheet line the row was read from (1-based).
	Line int `json:"-"`
	// Values maps column name to coerced cell value.
	Values map[string]any `json:"-"`
}

// Get returns the value stored under column, or nil.
func (r Row) Get(column string) any {
	if r.Values == nil {
		return nil
	}
	return r.Values[column]
}

// Has reports whether the row carries the column at all.
func (r Row) Has(column string) bool {
	_, ok := r.Values[column]
	return ok
}

// MarshalJSON writes the value map only; the source line is not part of the output.
// Text is not HTML-escaped, matching the rest of the document.
func (r Row) MarshalJSON() ([]byte, error) {
	if r.Values == nil {
		return []byte("{}"), nil
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.Values); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
