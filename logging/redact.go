package logging

import "strings"

// RedactedValue replaces sensitive values in log output.
const RedactedValue = "***redacted***"

// nonObjectPlaceholder stands in for payloads that are not key-value
// objects and therefore cannot be redacted field by field.
const nonObjectPlaceholder = "<non-object json payload>"

var sensitiveHeaderKeys = map[string]struct{}{
	"authorization":       {},
	"proxy-authorization": {},
}

var sensitiveJSONKeys = map[string]struct{}{
	"password":      {},
	"token":         {},
	"access_token":  {},
	"refresh_token": {},
	"secret":        {},
}

// redactHeaders returns a copy of headers with sensitive values
// replaced. Key matching is case-insensitive; keys are preserved as-is.
func redactHeaders(headers map[string]string) map[string]string {
	redacted := make(map[string]string, len(headers))
	for key, value := range headers {
		if _, sensitive := sensitiveHeaderKeys[strings.ToLower(key)]; sensitive {
			redacted[key] = RedactedValue
		} else {
			redacted[key] = value
		}
	}
	return redacted
}

// redactJSONPayload prepares a request payload for logging. Key-value
// objects get sensitive fields redacted; anything else is replaced with
// a fixed placeholder rather than logged verbatim.
func redactJSONPayload(payload interface{}) interface{} {
	switch m := payload.(type) {
	case map[string]interface{}:
		redacted := make(map[string]interface{}, len(m))
		for key, value := range m {
			if _, sensitive := sensitiveJSONKeys[strings.ToLower(key)]; sensitive {
				redacted[key] = RedactedValue
			} else {
				redacted[key] = value
			}
		}
		return redacted
	case map[string]string:
		redacted := make(map[string]interface{}, len(m))
		for key, value := range m {
			if _, sensitive := sensitiveJSONKeys[strings.ToLower(key)]; sensitive {
				redacted[key] = RedactedValue
			} else {
				redacted[key] = value
			}
		}
		return redacted
	default:
		return nonObjectPlaceholder
	}
}
