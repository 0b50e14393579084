package parser

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/hszqf/gamedata-go/pkg/gamedata/models"
	"github.com/spf13/cast"
)

// CoercionError reports a cell that cannot be read as its declared type.
type CoercionError struct {
	Field  string
	Raw    any
	Type   models.ColumnType
	Reason string
}

func (e *CoercionError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: cannot parse %s from %q: %s", e.Field, e.Type, FormatValue(e.Raw), e.Reason)
	}
	return fmt.Sprintf("cannot parse %s from %q: %s", e.Type, FormatValue(e.Raw), e.Reason)
}

// isListSeparator matches semicolon, comma and the full-width comma.
func isListSeparator(r rune) bool {
	return r == ';' || r == ',' || r == '，'
}

var absentTokens = map[string]struct{}{
	"none": {}, "null": {}, "n/a": {}, "na": {}, "-": {},
}

// NormalizeOptional trims text and maps placeholder tokens to nil.
func NormalizeOptional(raw any) any {
	s, ok := raw.(string)
	if !ok {
		return raw
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if _, ok := absentTokens[strings.ToLower(s)]; ok {
		return nil
	}
	return s
}

// IsEmpty reports whether a raw cell carries no value.
func IsEmpty(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(v) == ""
	case []string:
		return len(v) == 0
	case []int64:
		return len(v) == 0
	case []float64:
		return len(v) == 0
	}
	return false
}

// Coerce converts a raw cell into the value kind of t.
//
// Empty input yields nil for int, float and bool, "" for string and an empty list for list
// types. Failures are returned as *CoercionError.
func Coerce(raw any, t models.ColumnType) (any, error) {
	if IsEmpty(raw) {
		return emptyValue(t), nil
	}
	switch t {
	case models.TypeInt:
		return coerceInt(raw, t)
	case models.TypeFloat:
		return coerceFloat(raw, t)
	case models.TypeBool:
		return coerceBool(raw, t)
	case models.TypeString:
		return FormatValue(raw), nil
	case models.TypeStringList:
		return SplitList(raw), nil
	case models.TypeIntList:
		parts := SplitList(raw)
		out := make([]int64, 0, len(parts))
		for _, p := range parts {
			v, err := coerceInt(p, t)
			if err != nil {
				return []int64{}, err
			}
			out = append(out, v)
		}
		return out, nil
	case models.TypeFloatList:
		parts := SplitList(raw)
		out := make([]float64, 0, len(parts))
		for _, p := range parts {
			v, err := coerceFloat(p, t)
			if err != nil {
				return []float64{}, err
			}
			out = append(out, v)
		}
		return out, nil
	}
	return nil, &CoercionError{Raw: raw, Type: t, Reason: "unknown column type"}
}

// CoerceField is Coerce with the field name attached to any error.
func CoerceField(field string, raw any, t models.ColumnType, optional bool) (any, error) {
	if optional {
		raw = NormalizeOptional(raw)
	}
	v, err := Coerce(raw, t)
	if ce, ok := err.(*CoercionError); ok {
		ce.Field = field
	}
	return v, err
}

func emptyValue(t models.ColumnType) any {
	switch t {
	case models.TypeString:
		return ""
	case models.TypeStringList:
		return []string{}
	case models.TypeIntList:
		return []int64{}
	case models.TypeFloatList:
		return []float64{}
	}
	return nil
}

func coerceInt(raw any, t models.ColumnType) (int64, error) {
	switch v := raw.(type) {
	case string:
		s := strings.TrimSpace(v)
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return i, nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, &CoercionError{Raw: raw, Type: t, Reason: "not a number"}
		}
		return integral(f, raw, t)
	case float64:
		return integral(v, raw, t)
	case float32:
		return integral(float64(v), raw, t)
	case []string, []int64, []float64:
		return 0, &CoercionError{Raw: raw, Type: t, Reason: "list given for scalar"}
	}
	i, err := cast.ToInt64E(raw)
	if err != nil {
		return 0, &CoercionError{Raw: raw, Type: t, Reason: err.Error()}
	}
	return i, nil
}

func integral(f float64, raw any, t models.ColumnType) (int64, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, &CoercionError{Raw: raw, Type: t, Reason: "not an integer"}
	}
	if f > math.MaxInt64 || f < math.MinInt64 {
		return 0, &CoercionError{Raw: raw, Type: t, Reason: "out of range"}
	}
	return int64(f), nil
}

func coerceFloat(raw any, t models.ColumnType) (float64, error) {
	switch v := raw.(type) {
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, &CoercionError{Raw: raw, Type: t, Reason: "not a number"}
		}
		return f, nil
	case []string, []int64, []float64:
		return 0, &CoercionError{Raw: raw, Type: t, Reason: "list given for scalar"}
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil {
		return 0, &CoercionError{Raw: raw, Type: t, Reason: err.Error()}
	}
	return f, nil
}

func coerceBool(raw any, t models.ColumnType) (bool, error) {
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes":
			return true, nil
		case "0", "false", "no":
			return false, nil
		}
		return false, &CoercionError{Raw: raw, Type: t, Reason: "expected one of 1, true, yes, 0, false, no"}
	}
	f, err := cast.ToFloat64E(raw)
	if err == nil {
		switch f {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
	}
	return false, &CoercionError{Raw: raw, Type: t, Reason: "expected one of 1, true, yes, 0, false, no"}
}

// SplitList splits a list cell and drops empty parts.
func SplitList(raw any) []string {
	switch v := raw.(type) {
	case nil:
		return []string{}
	case []string:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out
	case []int64, []float64:
		return SplitList(FormatValue(raw))
	}
	out := []string{}
	for _, part := range strings.FieldsFunc(FormatValue(raw), isListSeparator) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// FormatValue renders a cell value as text without locale-dependent formatting.
func FormatValue(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(v)
	case []string:
		return strings.Join(v, ";")
	case []int64:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = strconv.FormatInt(n, 10)
		}
		return strings.Join(parts, ";")
	case []float64:
		parts := make([]string, len(v))
		for i, f := range v {
			parts[i] = strconv.FormatFloat(f, 'f', -1, 64)
		}
		return strings.Join(parts, ";")
	}
	return cast.ToString(raw)
}
