package config

import "reflect"

// Configuration holds device-specific settings as a string-keyed map of
// typed values. Construct with New to get normalized values; a zero (nil)
// Configuration is valid and means "no settings".
type Configuration map[string]any

// New creates a Configuration from raw values. The input is deep-copied
// and normalized, so later changes to the source map do not leak in.
// New(nil) returns nil.
func New(values map[string]any) Configuration {
	if values == nil {
		return nil
	}
	cfg := make(Configuration, len(values))
	for k, v := range values {
		cfg[k] = normalizeValue(v)
	}
	return cfg
}

// normalizeValue collapses numeric widths and deep-copies containers.
// Decoders disagree on number types (YAML yields int, JSON float64),
// and equality must not depend on which decoder produced the value.
func normalizeValue(v any) any {
	switch val := v.(type) {
	case int:
		return int64(val)
	case int8:
		return int64(val)
	case int16:
		return int64(val)
	case int32:
		return int64(val)
	case int64:
		return val
	case uint:
		return int64(val)
	case uint8:
		return int64(val)
	case uint16:
		return int64(val)
	case uint32:
		return int64(val)
	case uint64:
		return int64(val)
	case float32:
		return float64(val)
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, elem := range val {
			m[k] = normalizeValue(elem)
		}
		return m
	case []any:
		s := make([]any, len(val))
		for i, elem := range val {
			s[i] = normalizeValue(elem)
		}
		return s
	default:
		// Primitives (string, bool, float64, nil) are already canonical.
		return v
	}
}

// Copy returns an independent deep copy. Copy of nil is nil.
func (c Configuration) Copy() Configuration {
	if c == nil {
		return nil
	}
	cpy := make(Configuration, len(c))
	for k, v := range c {
		cpy[k] = normalizeValue(v)
	}
	return cpy
}

// Equal reports whether two configurations hold the same key set with
// equal values. Key order is irrelevant. A nil Configuration equals an
// empty one here; presence-vs-absence distinctions are the caller's
// concern (thing.Equal checks presence before value equality).
func (c Configuration) Equal(other Configuration) bool {
	if len(c) != len(other) {
		return false
	}
	for k, v := range c {
		ov, ok := other[k]
		if !ok || !valueEqual(v, ov) {
			return false
		}
	}
	return true
}

// valueEqual compares two normalized values, recursing through maps and
// slices. Values must have been normalized (New or Copy) for mixed
// numeric widths to compare equal.
func valueEqual(a, b any) bool {
	switch av := a.(type) {
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, elem := range av {
			belem, ok := bv[k]
			if !ok || !valueEqual(elem, belem) {
				return false
			}
		}
		return true
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i, elem := range av {
			if !valueEqual(elem, bv[i]) {
				return false
			}
		}
		return true
	default:
		// Normalization keeps unrecognised values as-is, so this branch
		// can see uncomparable types like typed slices; DeepEqual never
		// panics on them, == would.
		return reflect.DeepEqual(a, b)
	}
}

// String returns the string value for key, with ok reporting whether the
// key exists and holds a string.
func (c Configuration) String(key string) (string, bool) {
	v, ok := c[key].(string)
	return v, ok
}

// Bool returns the bool value for key.
func (c Configuration) Bool(key string) (bool, bool) {
	v, ok := c[key].(bool)
	return v, ok
}

// Int returns the integer value for key. Values are stored as int64
// after normalization.
func (c Configuration) Int(key string) (int64, bool) {
	v, ok := c[key].(int64)
	return v, ok
}

// Float returns the float value for key.
func (c Configuration) Float(key string) (float64, bool) {
	v, ok := c[key].(float64)
	return v, ok
}
