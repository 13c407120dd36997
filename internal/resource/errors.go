package resource

import "encoding/json"

// MessageKey is the synthetic field name used for errors that are not tied to
// a specific attribute.
const MessageKey = "message"

// Errors maps field names to the human-readable messages the remote service
// returned for them. It reflects only the last attempted operation: every
// call replaces the map wholesale, it is never merged.
type Errors map[string][]string

// IsEmpty reports whether no errors are recorded.
func (e Errors) IsEmpty() bool {
	return len(e) == 0
}

// Field returns the messages recorded for a field, or nil.
func (e Errors) Field(name string) []string {
	return e[name]
}

// DecodeErrors translates a client-fault response body into an error map.
// The service's document shape — field name to array of strings — is passed
// through verbatim. Scalar string values are promoted to one-element lists.
// Bodies that are not a JSON object collapse to a single message under
// MessageKey, so a fault is never silently lost.
func DecodeErrors(body []byte) Errors {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return Errors{MessageKey: {string(body)}}
	}

	errs := make(Errors, len(raw))
	for field, val := range raw {
		var list []string
		if err := json.Unmarshal(val, &list); err == nil {
			errs[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(val, &single); err == nil {
			errs[field] = []string{single}
			continue
		}
		// Nested or numeric value: keep the raw JSON as the message.
		errs[field] = []string{string(val)}
	}
	return errs
}
