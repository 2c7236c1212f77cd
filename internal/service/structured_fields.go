package service

import (
	"strconv"
	"strings"
)

// Helpers for reading model-produced objects. Models routinely return numbers as strings,
// single strings where arrays are expected, or omit optional fields.

func stringField(obj map[string]interface{}, key string) (string, bool) {
	switch value := obj[key].(type) {
	case string:
		return strings.TrimSpace(value), true
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64), true
	default:
		return "", false
	}
}

func stringOr(obj map[string]interface{}, key, fallback string) string {
	if value, ok := stringField(obj, key); ok && value != "" {
		return value
	}
	return fallback
}

func numberField(obj map[string]interface{}, key string) (float64, bool) {
	switch value := obj[key].(type) {
	case float64:
		return value, true
	case int:
		return float64(value), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "/10")), 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func stringSliceField(obj map[string]interface{}, key string) ([]string, bool) {
	switch value := obj[key].(type) {
	case []interface{}:
		items := make([]string, 0, len(value))
		for _, item := range value {
			if text, ok := item.(string); ok && strings.TrimSpace(text) != "" {
				items = append(items, strings.TrimSpace(text))
			}
		}
		return items, true
	case []string:
		return value, true
	case string:
		if strings.TrimSpace(value) == "" {
			return []string{}, true
		}
		return []string{strings.TrimSpace(value)}, true
	default:
		return nil, false
	}
}

func stringSliceOr(obj map[string]interface{}, key string, fallback []string) []string {
	if items, ok := stringSliceField(obj, key); ok {
		return items
	}
	return fallback
}

func objectField(obj map[string]interface{}, key string) (map[string]interface{}, bool) {
	value, ok := obj[key].(map[string]interface{})
	return value, ok
}

func objectSliceField(obj map[string]interface{}, key string) ([]map[string]interface{}, bool) {
	raw, ok := obj[key].([]interface{})
	if !ok {
		return nil, false
	}
	items := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if entry, ok := item.(map[string]interface{}); ok {
			items = append(items, entry)
		}
	}
	return items, true
}

func oneOf(value string, allowed ...string) bool {
	for _, candidate := range allowed {
		if value == candidate {
			return true
		}
	}
	return false
}
