package utils

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt converts various types to int using explicit type switching.
// The boolean result is false when val carries no usable integer.
func ToInt(val any) (int, bool) {
	switch v := val.(type) {
	case nil:
		return 0, false
	case int:
		return v, true
	case int64:
		return int(v), true
	case int32:
		return int(v), true
	case uint:
		return int(v), true
	case uint64:
		return int(v), true
	case uint32:
		return int(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int(v), true
	case float32:
		return ToInt(float64(v))
	case json.Number:
		return ToInt(string(v))
	case string:
		s := strings.TrimSpace(v)
		if s == "" {
			return 0, false
		}
		if i, err := strconv.Atoi(s); err == nil {
			return i, true
		}
		// parseInt semantics: "12.0" and "12abc" still carry a leading integer
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return ToInt(f)
		}
		end := 0
		for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && (s[end] == '-' || s[end] == '+')) {
			end++
		}
		if i, err := strconv.Atoi(s[:end]); err == nil {
			return i, true
		}
		return 0, false
	case []byte:
		return ToInt(string(v))
	default:
		return ToInt(fmt.Sprintf("%v", v))
	}
}

// ToString converts various types to string.
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case json.Number:
		return string(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// ToBool converts various types to bool.
// It handles bool, numeric types (1=true), and strings ("1", "true").
func ToBool(val any) bool {
	switch v := val.(type) {
	case bool:
		return v
	case int, int64, int32, uint, uint64, uint32, float64, float32, json.Number:
		i, _ := ToInt(v)
		return i == 1
	case string:
		return v == "1" || strings.EqualFold(strings.TrimSpace(v), "true")
	case []byte:
		return ToBool(string(v))
	default:
		return false
	}
}

// NullableInt coerces val to an int pointer; anything without an integer becomes nil.
func NullableInt(val any) *int {
	i, ok := ToInt(val)
	if !ok {
		return nil
	}
	return &i
}

// NullableString coerces val to a string pointer; nil and empty strings become nil.
func NullableString(val any) *string {
	s := ToString(val)
	if s == "" {
		return nil
	}
	return &s
}
