package messages

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/rhuss/strom/pkg/api"
)

// mapHTTPError converts a non-2xx response into a completion error. The
// provider's own error message is used when the body carries one.
func mapHTTPError(resp *http.Response) *api.Error {
	message := extractErrorMessage(resp.Body)
	if message == "" {
		message = fmt.Sprintf("HTTP %d", resp.StatusCode)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return api.NewCompletionError("backend rejected credentials: "+message, nil)
	case resp.StatusCode == http.StatusNotFound:
		return api.NewCompletionError("backend endpoint not found: "+message, nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		return api.NewCompletionError("backend rate limit exceeded: "+message, nil)
	case resp.StatusCode >= http.StatusInternalServerError:
		return api.NewCompletionError("backend server error: "+message, nil)
	default:
		return api.NewCompletionError("backend rejected request: "+message, nil)
	}
}

// mapNetworkError converts a transport-level failure into a completion
// error. The cause is preserved for errors.Is checks on context errors.
func mapNetworkError(err error) *api.Error {
	return api.NewCompletionError("backend connection failed", err)
}

// extractErrorMessage pulls the human-readable message out of a Messages
// API error body. Returns the empty string when the body is missing,
// unreadable, or not the expected shape. Reads at most 4KB.
func extractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}
	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var resp errorResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return ""
	}
	if resp.Error.Message == "" {
		return ""
	}
	if resp.Error.Type != "" {
		return resp.Error.Type + ": " + resp.Error.Message
	}
	return resp.Error.Message
}
