package core

import (
	"fmt"
	"strconv"
	"strings"

	"provisionhub/models"
)

// FieldValue reads a field from a record. Missing fields and nil records yield nil.
func FieldValue(rec models.Record, key string) any {
	if rec == nil {
		return nil
	}
	return rec[key]
}

// Stringify is the string form used for search, for mixed-type comparison and for default cell rendering.
// nil becomes "", marker arrays are concatenated symbol by symbol.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case bool:
		return strconv.FormatBool(t)
	case int:
		return strconv.Itoa(t)
	case int8, int16, int32, int64:
		n, _ := toInt64(t)
		return strconv.FormatInt(n, 10)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(t)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case []string:
		return strings.Join(t, "")
	case []any:
		var b strings.Builder
		for _, e := range t {
			b.WriteString(Stringify(e))
		}
		return b.String()
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(v)
}

// markers extracts an approval marker array from a field value. Anything that is not an array is no markers.
func markers(v any) []string {
	switch t := v.(type) {
	case []string:
		return t
	case []any:
		out := make([]string, 0, len(t))
		for _, e := range t {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func toInt64(v any) (int64, bool) {
	switch t := v.(type) {
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	}
	return 0, false
}

func toFloat64(v any) (float64, bool) {
	if n, ok := toInt64(v); ok {
		return float64(n), true
	}
	switch t := v.(type) {
	case uint:
		return float64(t), true
	case uint64:
		return float64(t), true
	case float32:
		return float64(t), true
	case float64:
		return t, true
	}
	return 0, false
}
