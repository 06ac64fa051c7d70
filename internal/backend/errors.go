package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/fekuna/omnipos-backoffice/internal/model"
)

// APIError is a non-2xx answer from the backend. Detail and Message carry
// the body's "detail" and "message" fields when present.
type APIError struct {
	StatusCode int
	Detail     string
	Message    string
}

func (e *APIError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("backend responded %d: %s", e.StatusCode, msg)
}

// Unwrap lets callers test 404s with errors.Is(err, model.ErrNotFound).
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return model.ErrNotFound
	}
	return nil
}

// Detail extracts the most specific backend message from err: the body's
// detail, then its message. It returns "" for anything else.
func Detail(err error) string {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return ""
	}
	if apiErr.Detail != "" {
		return apiErr.Detail
	}
	return apiErr.Message
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
}

func parseError(status int, body []byte) *APIError {
	apiErr := &APIError{StatusCode: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return apiErr
	}
	apiErr.Message = eb.Message
	apiErr.Detail = decodeDetail(eb.Detail)
	return apiErr
}

// decodeDetail accepts a plain string or a list of validation entries with a
// "msg" field.
func decodeDetail(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(raw, &entries); err == nil {
		msgs := make([]string, 0, len(entries))
		for _, e := range entries {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}
	return string(raw)
}
