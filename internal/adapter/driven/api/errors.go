package api

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ericfisherdev/budgetctl/internal/domain/model"
)

// maxMessageBytes bounds the raw body excerpt kept on unstructured errors.
const maxMessageBytes = 512

// classifyResponse maps a non-2xx response onto the error taxonomy.
//
//	401, 403           -> AuthenticationError
//	other 4xx + fields -> ValidationError
//	5xx                -> ServerError
//	anything else      -> UnknownError
func classifyResponse(method, path string, status int, body []byte) *model.APIError {
	fields, message := decodeErrorPayload(body)

	apiErr := &model.APIError{
		Kind:    model.ErrorKindUnknown,
		Method:  method,
		Path:    path,
		Status:  status,
		Fields:  fields,
		Message: message,
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		apiErr.Kind = model.ErrorKindAuthentication
	case status >= 400 && status < 500:
		if len(fields) > 0 {
			apiErr.Kind = model.ErrorKindValidation
		}
	case status >= 500 && status < 600:
		apiErr.Kind = model.ErrorKindServer
	}

	return apiErr
}

// decodeErrorPayload extracts the server's structured error mapping. A payload
// is structured only when it is a JSON object whose values are all strings;
// those entries are returned unchanged. Otherwise a short message is derived
// from a "message" or "error" member, or from the raw body.
func decodeErrorPayload(body []byte) (map[string]string, string) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil, ""
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal([]byte(trimmed), &raw); err != nil || len(raw) == 0 {
		return nil, truncate(trimmed)
	}

	fields := make(map[string]string, len(raw))
	structured := true
	for key, value := range raw {
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			structured = false
			continue
		}
		fields[key] = s
	}

	if structured {
		return fields, ""
	}

	for _, key := range []string{"message", "error"} {
		if msg, ok := fields[key]; ok && msg != "" {
			return nil, msg
		}
	}
	return nil, truncate(trimmed)
}

func truncate(s string) string {
	if len(s) <= maxMessageBytes {
		return s
	}
	return s[:maxMessageBytes] + "...(truncated)"
}
