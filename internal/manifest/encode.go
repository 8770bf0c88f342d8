package manifest

import (
	"encoding/json"
	"fmt"
	"strings"
)

// encodeScalar renders a replacement string value in the same quoting style
// as the token it replaces.
func encodeScalar(format Format, style byte, value string) (string, error) {
	if format == FormatJSON {
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to encode value: %w", err)
		}
		return string(encoded), nil
	}

	switch style {
	case '"':
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to encode value: %w", err)
		}
		return string(encoded), nil
	case '\'':
		return "'" + strings.ReplaceAll(value, "'", "''") + "'", nil
	default:
		if isPlainSafe(value) {
			return value, nil
		}
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to encode value: %w", err)
		}
		return string(encoded), nil
	}
}

// isPlainSafe reports whether a value can be written as a YAML plain scalar
// without changing its meaning. Version strings always qualify.
func isPlainSafe(value string) bool {
	if value == "" {
		return false
	}
	if strings.ContainsAny(value, ":#{}[],&*!|>'\"%@` \t") {
		return false
	}
	switch value[0] {
	case '-', '?', '~':
		return false
	}
	switch strings.ToLower(value) {
	case "null", "true", "false", "yes", "no", "on", "off":
		return false
	}
	return true
}
