package docstore

import (
	"reflect"
	"time"
)

// Normalize converts a value into the canonical in-memory shape shared by all
// backends: slices become []any, maps become map[string]any, times are UTC.
// The result never aliases the input.
func Normalize(v any) any {
	switch val := v.(type) {
	case nil:
		return nil
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = Normalize(e)
		}
		return out
	case []string:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = e
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, e := range val {
			out[k] = Normalize(e)
		}
		return out
	case time.Time:
		return val.UTC()
	case *string:
		if val == nil {
			return nil
		}
		return *val
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = Normalize(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return v
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			out[iter.Key().String()] = Normalize(iter.Value().Interface())
		}
		return out
	}
	return v
}

// NormalizeMap applies Normalize to every field of data.
func NormalizeMap(data map[string]any) map[string]any {
	if data == nil {
		return map[string]any{}
	}
	return Normalize(data).(map[string]any)
}

// String returns the string stored under key, or "" when absent or of another type.
func String(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// OptionalString returns nil for absent or null fields.
func OptionalString(data map[string]any, key string) *string {
	s, ok := data[key].(string)
	if !ok {
		return nil
	}
	return &s
}

// Strings returns the string elements of an array field. Non-string elements are skipped.
func Strings(data map[string]any, key string) []string {
	out := []string{}
	switch arr := data[key].(type) {
	case []any:
		for _, e := range arr {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	case []string:
		out = append(out, arr...)
	}
	return out
}

type timeLike interface {
	Time() time.Time
}

// Time reads a timestamp stored as time.Time, an RFC 3339 string or a
// driver type exposing Time(). Unparseable values yield the zero time.
func Time(data map[string]any, key string) time.Time {
	switch v := data[key].(type) {
	case time.Time:
		return v.UTC()
	case string:
		t, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			return time.Time{}
		}
		return t.UTC()
	case timeLike:
		return v.Time().UTC()
	}
	return time.Time{}
}

// Contains reports whether the array field holds value.
func Contains(data map[string]any, key string, value any) bool {
	arr, ok := Normalize(data[key]).([]any)
	if !ok {
		return false
	}
	for _, e := range arr {
		if Equal(e, value) {
			return true
		}
	}
	return false
}

// Equal compares two values after normalization. Numbers compare by value
// so that 1, int64(1) and 1.0 from a JSON round trip are equal.
func Equal(a, b any) bool {
	a, b = Normalize(a), Normalize(b)
	if fa, ok := asFloat(a); ok {
		if fb, ok := asFloat(b); ok {
			return fa == fb
		}
	}
	return reflect.DeepEqual(a, b)
}

func asFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}
