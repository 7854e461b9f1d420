package common

import (
	"fmt"
	"math"
)

// RequiredString extracts a required string argument.
func RequiredString(args map[string]interface{}, name string) (string, error) {
	value, ok := args[name].(string)
	if !ok || value == "" {
		return "", fmt.Errorf("%s is required", name)
	}
	return value, nil
}

// OptionalString extracts an optional string argument, returning "" when absent.
func OptionalString(args map[string]interface{}, name string) string {
	value, _ := args[name].(string)
	return value
}

// RequiredInt extracts a required integer argument. JSON numbers arrive as
// float64; whole values are accepted, anything else is an error.
func RequiredInt(args map[string]interface{}, name string) (int, error) {
	raw, ok := args[name]
	if !ok {
		return 0, fmt.Errorf("%s is required", name)
	}
	switch v := raw.(type) {
	case float64:
		if v != math.Trunc(v) {
			return 0, fmt.Errorf("%s must be an integer", name)
		}
		return int(v), nil
	case int:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be an integer", name)
	}
}

// OptionalInt extracts an optional integer argument, returning fallback
// when absent or not a whole number.
func OptionalInt(args map[string]interface{}, name string, fallback int) int {
	if v, err := RequiredInt(args, name); err == nil {
		return v
	}
	return fallback
}

// OptionalBool extracts an optional boolean argument, returning fallback
// when absent.
func OptionalBool(args map[string]interface{}, name string, fallback bool) bool {
	if value, ok := args[name].(bool); ok {
		return value
	}
	return fallback
}
