package passaporteweb

import (
	"encoding/json"
	"net/http"
)

// decodeAttrs unmarshals a success response body into an attribute map. A
// success status carrying a non-object body is a contract breach, reported as
// an unexpected response.
func decodeAttrs(resp *Response) (map[string]any, error) {
	var attrs map[string]any
	if err := json.Unmarshal(resp.Body, &attrs); err != nil {
		return nil, unexpected(resp)
	}
	return attrs, nil
}

// isValidationStatus reports whether a status carries a validation fault body
// for a write operation. Everything else outside the operation's expected
// success code — including 401/403/404 on writes — is an unexpected response.
func isValidationStatus(status int) bool {
	return status == http.StatusBadRequest || status == http.StatusUnprocessableEntity
}
