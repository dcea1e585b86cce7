package backend

import (
	"encoding/json"
	"errors"
	"strings"
)

// Error is a failed backend call. Message is already resolved for display.
type Error struct {
	Status  int
	Message string
	Body    string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError extracts a *Error from err.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

const maxPlainMessage = 300

// parseErrorMessage resolves, in order: message (string or first array item), messages[0],
// error, details, the raw text body, then fallback.
func parseErrorMessage(body []byte, fallback string) string {
	text := strings.TrimSpace(string(body))
	if text == "" {
		return fallback
	}

	if strings.HasPrefix(text, "{") {
		var payload map[string]json.RawMessage
		if err := json.Unmarshal([]byte(text), &payload); err == nil {
			for _, key := range []string{"message", "messages", "error", "details"} {
				if msg := firstString(payload[key]); msg != "" {
					return msg
				}
			}
			return fallback
		}
	}

	if strings.HasPrefix(text, "\"") {
		var s string
		if err := json.Unmarshal([]byte(text), &s); err == nil && s != "" {
			return s
		}
	}

	if len(text) > maxPlainMessage || strings.HasPrefix(text, "<") {
		return fallback
	}
	return text
}

// firstString reads a JSON string, or the first string of a JSON array.
func firstString(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err == nil && len(list) > 0 {
		return firstString(list[0])
	}
	return ""
}
