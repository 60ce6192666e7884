package schedule

import (
	"fmt"
	"strconv"

	"github.com/fallow-md/fallow/pkg/core"
)

// Recognized metadata keys. These exact strings are the compatibility
// contract with already-onboarded notes and must not change.
const (
	KeyInterval     = "interval"
	KeyLastReviewed = "last-reviewed"
	KeyEase         = "ease"
	KeyMethod       = "method"
	KeyContexts     = "contexts"
)

// IsOnboarded reports whether a note is registered with the scheduler.
// The interval key is the marker: a note without it is inert data.
func IsOnboarded(n core.Note) bool {
	_, ok := n.Metadata[KeyInterval]
	return ok
}

// floatField reads a numeric metadata value, tolerating the scalar types
// YAML decoding can produce (int, float64, or a numeric string).
func floatField(md core.Metadata, key string) (float64, bool) {
	v, ok := md[key]
	if !ok || v == nil {
		return 0, false
	}
	switch t := v.(type) {
	case float64:
		return t, true
	case float32:
		return float64(t), true
	case int:
		return float64(t), true
	case int64:
		return float64(t), true
	case uint64:
		return float64(t), true
	case string:
		f, err := strconv.ParseFloat(t, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// stringField reads a string metadata value.
func stringField(md core.Metadata, key string) (string, bool) {
	v, ok := md[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// stringListField reads an ordered list of strings, handling both
// []string and the []interface{} form YAML decoding produces.
// A bare scalar string is treated as a single-element list.
func stringListField(md core.Metadata, key string) []string {
	v, ok := md[key]
	if !ok || v == nil {
		return nil
	}
	switch t := v.(type) {
	case []string:
		return t
	case []interface{}:
		var out []string
		for _, item := range t {
			switch s := item.(type) {
			case string:
				out = append(out, s)
			default:
				out = append(out, fmt.Sprint(s))
			}
		}
		return out
	case string:
		return []string{t}
	default:
		return nil
	}
}

// noteContexts returns the ordered context names a note belongs to.
func noteContexts(n core.Note) []string {
	return stringListField(n.Metadata, KeyContexts)
}
