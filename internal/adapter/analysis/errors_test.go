package analysis

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		body string
		want string
	}{
		{"detail string", `{"detail":"content too short"}`, "content too short"},
		{"detail structured", `{"detail": [{"loc": ["body","content"], "msg": "field required"}]}`, `[{"loc":["body","content"],"msg":"field required"}]`},
		{"message", `{"message":"bad input"}`, "bad input"},
		{"error", `{"error":"quota exceeded"}`, "quota exceeded"},
		{"detail wins over message", `{"message":"m","detail":"d"}`, "d"},
		{"unknown shape", `{"code": 7}`, `{"code":7}`},
		{"raw text", "upstream timed out", "upstream timed out"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, backendMessage([]byte(tt.body)))
		})
	}
}

func TestAPIError_UserMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  APIError
		want string
	}{
		{"network", APIError{IsNetworkError: true}, "Unable to connect to the server. Please check if the backend is running and accessible."},
		{"status zero", APIError{}, "Network request failed. This may be due to CORS issues or the server being unavailable."},
		{"401", APIError{Status: 401}, "Authentication required. Please log in and try again."},
		{"403", APIError{Status: 403}, "You do not have permission to perform this action."},
		{"404", APIError{Status: 404, Endpoint: "/api/v1/analyze"}, "The requested endpoint was not found: /api/v1/analyze"},
		{"422 passthrough", APIError{Status: 422, BackendMessage: "content: field required"}, "content: field required"},
		{"422 fallback", APIError{Status: 422}, "Invalid request data. Please check your input."},
		{"500 fallback", APIError{Status: 503}, "Server error. Please try again later."},
		{"500 passthrough", APIError{Status: 500, BackendMessage: "model overloaded"}, "model overloaded"},
		{"other", APIError{Status: 409, StatusText: "Conflict"}, "API error (409 Conflict): API request failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.err.UserMessage())
		})
	}
}

func TestAPIError_Diagnostic(t *testing.T) {
	t.Parallel()

	err := &APIError{Endpoint: "/api/v1/analyze", Status: http.StatusBadGateway, StatusText: "Bad Gateway"}
	assert.Equal(t,
		"Endpoint: /api/v1/analyze\nStatus: 502 Bad Gateway\nBackend Message: N/A\nNetwork Error: false",
		err.Diagnostic())
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	net := networkError("/api/v1/analyze", "http://x/api/v1/analyze", errors.New("connection refused"))
	assert.Equal(t, "Network error: connection refused", net.Error())
	assert.Equal(t, "Failed to connect to http://x/api/v1/analyze. Ensure the backend server is running.", net.BackendMessage)

	httpErr := &APIError{Status: 500, StatusText: "Internal Server Error", BackendMessage: "boom"}
	assert.Equal(t, "API error (500 Internal Server Error): boom", httpErr.Error())
}
