package domain

import (
	"fmt"
	"math"
	"strings"
)

// Data is a single decoded configuration entry.
// Values come from TOML, YAML or JSON decoders, so numbers may be int, int64
// or float64 and lists may be []any or []string; the getters normalise these.
type Data map[string]any

// Clone returns a deep copy of the entry.
func (d Data) Clone() Data {
	if d == nil {
		return nil
	}
	return cloneMap(d)
}

// Has reports whether key is present with a non-nil value.
func (d Data) Has(key string) bool {
	v, ok := d[key]
	return ok && v != nil
}

// String returns the string value for key, or "" when absent or not a string.
func (d Data) String(key string) string {
	s, ok := d[key].(string)
	if !ok {
		return ""
	}
	return s
}

// Int returns the integer value for key and whether it was present and numeric.
func (d Data) Int(key string) (int, bool) {
	switch v := d[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case uint64:
		if v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}

// IntOr returns the integer value for key or def when absent.
// A present but non-numeric value is a configuration error.
func (d Data) IntOr(key string, def int) (int, error) {
	if !d.Has(key) {
		return def, nil
	}
	n, ok := d.Int(key)
	if !ok {
		return 0, fmt.Errorf("%w: %q must be an integer, got %v", ErrConfig, key, d[key])
	}
	return n, nil
}

// Bool returns the boolean value for key and whether it was present as a bool.
func (d Data) Bool(key string) (bool, bool) {
	b, ok := d[key].(bool)
	return b, ok
}

// Strings returns key as a string list. A single string is a one-element list.
func (d Data) Strings(key string) ([]string, error) {
	switch v := d[key].(type) {
	case nil:
		return nil, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		return []string{v}, nil
	case []string:
		out := make([]string, len(v))
		copy(out, v)
		return out, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: %s[%d] must be a string, got %T", ErrConfig, key, i, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q must be a string or list of strings, got %T", ErrConfig, key, v)
	}
}

// List returns key as a list of raw entries.
func (d Data) List(key string) ([]any, error) {
	switch v := d[key].(type) {
	case nil:
		return nil, nil
	case []any:
		return v, nil
	case []map[string]any:
		out := make([]any, len(v))
		for i, m := range v {
			out[i] = m
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: %q must be a list, got %T", ErrConfig, key, v)
	}
}

// Map returns key as a nested entry.
func (d Data) Map(key string) (Data, bool) {
	return AsData(d[key])
}

// AsData converts a decoded value into Data when it is a map.
func AsData(v any) (Data, bool) {
	switch m := v.(type) {
	case Data:
		return m, true
	case map[string]any:
		return Data(m), true
	case map[any]any:
		out := make(Data, len(m))
		for k, val := range m {
			out[fmt.Sprint(k)] = val
		}
		return out, true
	default:
		return nil, false
	}
}

// IsEmptyValue reports whether a raw configuration entry carries nothing to
// parse: nil, false, the empty string or an empty map or list.
func IsEmptyValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case bool:
		return !x
	case string:
		return x == ""
	case map[string]any:
		return len(x) == 0
	case Data:
		return len(x) == 0
	case map[any]any:
		return len(x) == 0
	case []any:
		return len(x) == 0
	default:
		return false
	}
}

// CloneValue deep copies maps and slices produced by configuration decoders.
// Scalars are returned as is.
func CloneValue(v any) any {
	switch x := v.(type) {
	case Data:
		return cloneMap(x)
	case map[string]any:
		return map[string]any(cloneMap(x))
	case map[any]any:
		out := make(map[any]any, len(x))
		for k, val := range x {
			out[k] = CloneValue(val)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = CloneValue(val)
		}
		return out
	case []map[string]any:
		out := make([]map[string]any, len(x))
		for i, m := range x {
			out[i] = map[string]any(cloneMap(m))
		}
		return out
	case []string:
		out := make([]string, len(x))
		copy(out, x)
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) Data {
	out := make(Data, len(m))
	for k, v := range m {
		out[k] = CloneValue(v)
	}
	return out
}
