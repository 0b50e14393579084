package models

import (
	"fmt"
	"sort"
	"strings"
)

// Severity classifies an issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Issue is a structured diagnostic about one schema or data problem.
type Issue struct {
	// Severity decides whether the issue blocks the export.
	Severity Severity `json:"severity"`
	// Sheet is the sheet the issue belongs to.
	Sheet string `json:"sheet"`
	// Row is the 1-based spreadsheet line, or 0 when the issue is not row specific.
	Row int `json:"row,omitempty"`
	// Cell is the A1 reference of the offending cell when known.
	Cell string `json:"cell,omitempty"`
	// Field is the column name involved.
	Field string `json:"field,omitempty"`
	// Value is the offending value as text.
	Value string `json:"value,omitempty"`
	// Message describes the problem.
	Message string `json:"message"`
}

func (i Issue) String() string {
	var b strings.Builder
	b.WriteString(i.Sheet)
	if i.Row > 0 {
		fmt.Fprintf(&b, "[row %d]", i.Row)
	} else {
		b.WriteString(":")
	}
	b.WriteString(" ")
	b.WriteString(i.Message)
	return b.String()
}

// IssueList accumulates issues across pipeline stages.
type IssueList []Issue

// Add appends an issue.
func (l *IssueList) Add(issue Issue) {
	*l = append(*l, issue)
}

// Errorf appends an error-level issue.
func (l *IssueList) Errorf(sheet string, row int, field, value, format string, args ...any) {
	l.Add(Issue{
		Severity: SeverityError,
		Sheet:    sheet,
		Row:      row,
		Field:    field,
		Value:    value,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf appends a warning-level issue.
func (l *IssueList) Warnf(sheet string, row int, field, value, format string, args ...any) {
	l.Add(Issue{
		Severity: SeverityWarning,
		Sheet:    sheet,
		Row:      row,
		Field:    field,
		Value:    value,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Merge appends all issues of other.
func (l *IssueList) Merge(other IssueList) {
	*l = append(*l, other...)
}

// HasErrors reports whether any issue has error severity.
func (l IssueList) HasErrors() bool {
	return l.Count(SeverityError) > 0
}

// Count returns the number of issues with the given severity.
func (l IssueList) Count(severity Severity) int {
	n := 0
	for _, i := range l {
		if i.Severity == severity {
			n++
		}
	}
	return n
}

// Errors returns only the error-level issues.
func (l IssueList) Errors() IssueList {
	var out IssueList
	for _, i := range l {
		if i.Severity == SeverityError {
			out = append(out, i)
		}
	}
	return out
}

// SortBySheet orders issues by sheet name, then row, keeping the relative order of equal keys.
func (l IssueList) SortBySheet() {
	sort.SliceStable(l, func(a, b int) bool {
		if l[a].Sheet != l[b].Sheet {
			return l[a].Sheet < l[b].Sheet
		}
		return l[a].Row < l[b].Row
	})
}

// Strings renders every issue in list order.
func (l IssueList) Strings() []string {
	out := make([]string, len(l))
	for i, issue := range l {
		out[i] = issue.String()
	}
	return out
}
