package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// APIError describes a failed call to the analysis API. It carries both a
// diagnostic for logs and a message fit for end users.
type APIError struct {
	Endpoint       string
	Status         int
	StatusText     string
	BackendMessage string
	IsNetworkError bool

	// cause is the transport error for network failures.
	cause error
}

func (e *APIError) Error() string {
	if e.IsNetworkError {
		msg := "Network request failed"
		if e.cause != nil {
			msg = e.cause.Error()
		}
		return "Network error: " + msg
	}
	msg := e.BackendMessage
	if msg == "" {
		msg = "API request failed"
	}
	return fmt.Sprintf("API error (%d %s): %s", e.Status, e.StatusText, msg)
}

func (e *APIError) Unwrap() error { return e.cause }

// Diagnostic returns the technical description of the failure.
func (e *APIError) Diagnostic() string {
	backend := e.BackendMessage
	if backend == "" {
		backend = "N/A"
	}
	return strings.Join([]string{
		"Endpoint: " + e.Endpoint,
		fmt.Sprintf("Status: %d %s", e.Status, e.StatusText),
		"Backend Message: " + backend,
		fmt.Sprintf("Network Error: %t", e.IsNetworkError),
	}, "\n")
}

// UserMessage returns guidance without technical jargon.
func (e *APIError) UserMessage() string {
	switch {
	case e.IsNetworkError:
		return "Unable to connect to the server. Please check if the backend is running and accessible."
	case e.Status == 0:
		return "Network request failed. This may be due to CORS issues or the server being unavailable."
	case e.Status == http.StatusUnauthorized:
		return "Authentication required. Please log in and try again."
	case e.Status == http.StatusForbidden:
		return "You do not have permission to perform this action."
	case e.Status == http.StatusNotFound:
		return "The requested endpoint was not found: " + e.Endpoint
	case e.Status == http.StatusUnprocessableEntity:
		return e.backendOr("Invalid request data. Please check your input.")
	case e.Status >= 500:
		return e.backendOr("Server error. Please try again later.")
	}
	return e.backendOr(e.Error())
}

func (e *APIError) backendOr(fallback string) string {
	if e.BackendMessage != "" {
		return e.BackendMessage
	}
	return fallback
}

func networkError(endpoint, url string, cause error) *APIError {
	return &APIError{
		Endpoint:       endpoint,
		StatusText:     "Network Error",
		BackendMessage: fmt.Sprintf("Failed to connect to %s. Ensure the backend server is running.", url),
		IsNetworkError: true,
		cause:          cause,
	}
}

func httpError(endpoint string, resp *http.Response, body []byte) *APIError {
	return &APIError{
		Endpoint:       endpoint,
		Status:         resp.StatusCode,
		StatusText:     statusText(resp),
		BackendMessage: backendMessage(body),
	}
}

// statusText extracts the reason phrase, e.g. "Unprocessable Entity".
func statusText(resp *http.Response) string {
	code := fmt.Sprintf("%d ", resp.StatusCode)
	if text, ok := strings.CutPrefix(resp.Status, code); ok {
		return text
	}
	return http.StatusText(resp.StatusCode)
}

// backendMessage picks the server-supplied message from an error body:
// detail, then message, then error, then the whole JSON document. Bodies
// that are not JSON objects are returned as raw text.
func backendMessage(body []byte) string {
	if !json.Valid(body) {
		return string(body)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(body, &obj); err != nil {
		return compact(body)
	}

	if raw, ok := obj["detail"]; ok && !isFalsy(raw) {
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
		return compact(raw)
	}
	for _, field := range []string{"message", "error"} {
		raw, ok := obj[field]
		if !ok || isFalsy(raw) {
			continue
		}
		var s string
		if json.Unmarshal(raw, &s) == nil {
			return s
		}
		return compact(raw)
	}
	return compact(body)
}

func isFalsy(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "null", `""`, "false", "0":
		return true
	}
	return false
}

func compact(raw []byte) string {
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
