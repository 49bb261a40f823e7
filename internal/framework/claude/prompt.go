package claude

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/spf13/cast"
)

// PickPrompt returns the prompt text from payload and the key it came from.
//
// Keys are checked in order and the first value that is not empty-ish
// (null, false, 0, "", [] or {}) wins, even when it trims down to nothing.
// The winning value is coerced to text: strings as-is, numbers keep their JSON
// literal, booleans become "true" or "false", arrays and objects become
// compact JSON.
func PickPrompt(payload map[string]any, keys []string) (string, string) {
	for _, key := range keys {
		value, ok := payload[key]
		if !ok || isEmptyValue(value) {
			continue
		}

		text, err := coerceText(value)
		if err != nil {
			continue
		}

		return strings.TrimSpace(text), key
	}

	return "", ""
}

func coerceText(value any) (string, error) {
	switch value.(type) {
	case []any, map[string]any:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		if err := enc.Encode(value); err != nil {
			return "", err
		}
		return strings.TrimSuffix(buf.String(), "\n"), nil
	default:
		return cast.ToStringE(value)
	}
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case bool:
		return !v
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case float64:
		return v == 0
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	default:
		return false
	}
}
