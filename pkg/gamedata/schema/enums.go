package schema

import (
	"fmt"
	"strings"
)

// EnumName identifies a closed value set.
type EnumName string

const (
	EnumTaskType        EnumName = "taskType"
	EnumEventSource     EnumName = "source"
	EnumCauseType       EnumName = "causeType"
	EnumBlockPolicy     EnumName = "blockPolicy"
	EnumIgnoreApplyMode EnumName = "ignoreApplyMode"
	EnumAnomalyClass    EnumName = "class"
	EnumEffectOp        EnumName = "op"
)

// Values of the closed sets, in canonical spelling.
var enumValues = map[EnumName][]string{
	EnumTaskType:        {"Investigate", "Contain", "Manage"},
	EnumEventSource:     {"RandomDaily"},
	EnumCauseType:       {"TaskInvestigate", "TaskContain", "TaskManage", "Anomaly", "LocalPanic", "Fixed", "Random"},
	EnumBlockPolicy:     {"None", "BlockOriginTask", "BlockAllTasksOnNode"},
	EnumIgnoreApplyMode: {"ApplyOnceThenRemove", "ApplyDailyKeep", "NeverAuto"},
	EnumAnomalyClass:    {"Safe", "Euclid", "Keter", "Thaumiel", "Neutralized"},
	EnumEffectOp:        {"Add", "Mul", "Set", "ClampAdd"},
}

// Values returns the allowed values of e.
func Values(e EnumName) []string {
	return append([]string(nil), enumValues[e]...)
}

// Canonical returns the canonical spelling of raw in e, matching case-insensitively.
func Canonical(e EnumName, raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	for _, v := range enumValues[e] {
		if strings.EqualFold(v, raw) {
			return v, true
		}
	}
	return "", false
}

// Allowed renders the allowed set of e for diagnostics.
func Allowed(e EnumName) string {
	return strings.Join(enumValues[e], ", ")
}

// Affect scope kinds.
const (
	ScopeOriginTask = "OriginTask"
	ScopeNode       = "Node"
	ScopeGlobal     = "Global"
	ScopeTaskType   = "TaskType"
)

var scopeKinds = []string{ScopeOriginTask, ScopeNode, ScopeGlobal}

const taskTypeScopePrefix = ScopeTaskType + ":"

// Scope is one parsed affect-scope token.
type Scope struct {
	// Kind is OriginTask, Node, Global or TaskType.
	Kind string
	// TaskType is set when Kind is TaskType.
	TaskType string
}

func (s Scope) String() string {
	if s.Kind == ScopeTaskType {
		return taskTypeScopePrefix + s.TaskType
	}
	return s.Kind
}

// ParseScope parses one affect-scope token such as "Node" or "TaskType:Contain".
func ParseScope(raw string) (Scope, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Scope{}, fmt.Errorf("affect scope is empty")
	}
	if len(raw) >= len(taskTypeScopePrefix) && strings.EqualFold(raw[:len(taskTypeScopePrefix)], taskTypeScopePrefix) {
		tt, ok := Canonical(EnumTaskType, raw[len(taskTypeScopePrefix):])
		if !ok {
			return Scope{}, fmt.Errorf("invalid task type in scope %q (allowed: %s)", raw, Allowed(EnumTaskType))
		}
		return Scope{Kind: ScopeTaskType, TaskType: tt}, nil
	}
	for _, k := range scopeKinds {
		if strings.EqualFold(k, raw) {
			return Scope{Kind: k}, nil
		}
	}
	return Scope{}, fmt.Errorf("invalid affect scope %q (allowed: %s)", raw, AllowedScopes())
}

// AllowedScopes renders the scope grammar for diagnostics.
func AllowedScopes() string {
	return strings.Join(scopeKinds, ", ") + ", " + taskTypeScopePrefix + "<" + Allowed(EnumTaskType) + ">"
}
