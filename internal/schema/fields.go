// Package schema holds the declarative descriptors that drive the console's
// generic form and table components, plus the typed records for every
// resource the developer-panel API exposes. Field kinds are a closed enum so
// adding a new control is a compile-time decision, not a stringly-typed one.
package schema

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FieldKind enumerates the supported form controls.
type FieldKind int

const (
	KindText FieldKind = iota
	KindPassword
	KindNumber
	KindCheckbox
	KindSelect
	KindDateTime
)

func (k FieldKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindPassword:
		return "password"
	case KindNumber:
		return "number"
	case KindCheckbox:
		return "checkbox"
	case KindSelect:
		return "select"
	case KindDateTime:
		return "datetime"
	}
	return fmt.Sprintf("FieldKind(%d)", int(k))
}

// Option is one selectable value of a KindSelect field.
type Option struct {
	Value string
	Label string
}

// NumberConstraints bound a KindNumber field. Min always applies; a zero Max
// means no upper bound.
type NumberConstraints struct {
	Min  float64
	Max  float64
	Step float64
}

// Field describes one form control. Name must match a key in the associated
// Values map (or be absent, defaulting to empty/false). Options is required
// iff Kind == KindSelect; that is a caller contract, not checked defensively.
type Field struct {
	Name        string
	Label       string
	Kind        FieldKind
	Options     []Option
	Constraints *NumberConstraints
	Disabled    bool
}

// Values maps field names to scalar values (string, float64, int, or bool).
// A Values map is never mutated in place: every edit goes through With,
// which returns a shallow-merged copy.
type Values map[string]any

// With returns a copy of v with name set to val. v itself is untouched.
func (v Values) With(name string, val any) Values {
	next := make(Values, len(v)+1)
	for k, old := range v {
		next[k] = old
	}
	next[name] = val
	return next
}

// Clone returns a shallow copy of v.
func (v Values) Clone() Values {
	next := make(Values, len(v))
	for k, val := range v {
		next[k] = val
	}
	return next
}

// String returns the value under name rendered as a string, or "" when the
// key is absent or nil.
func (v Values) String(name string) string {
	return DisplayString(v[name])
}

// Bool returns the value under name as a bool, defaulting to false.
func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

// Float returns the value under name as a float64, accepting the numeric
// types a decoded JSON payload or a form edit can produce.
func (v Values) Float(name string) float64 {
	switch n := v[name].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	}
	return 0
}

// Int returns the value under name truncated to an int.
func (v Values) Int(name string) int {
	return int(v.Float(name))
}

// DisplayString converts an arbitrary cell value to its canonical display
// form. Scalars render directly; times as RFC 3339; string slices joined
// with commas; anything else falls back to its JSON encoding.
func DisplayString(val any) string {
	switch x := val.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		if x {
			return "true"
		}
		return "false"
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.RFC3339)
	case []string:
		return strings.Join(x, ",")
	}
	if data, err := json.Marshal(val); err == nil {
		return string(data)
	}
	return fmt.Sprintf("%v", val)
}
