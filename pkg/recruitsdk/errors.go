package recruitsdk

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// NetworkHint is the user-facing explanation attached to every NetworkError.
const NetworkHint = "Cannot connect to server. Please ensure the backend server is running and reachable."

// ============================================================================
// Error taxonomy
// ============================================================================

// ServerError means the backend was reached and rejected the request.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
}

// AuthExpiredError is returned for 401 responses. It unwraps to the
// underlying *ServerError so callers matching on ServerError still see it.
type AuthExpiredError struct {
	Server *ServerError
}

func (e *AuthExpiredError) Error() string {
	return "authorization expired: " + e.Server.Message
}

func (e *AuthExpiredError) Unwrap() error { return e.Server }

// NetworkError means no response was received (refused, DNS, timeout).
type NetworkError struct {
	Message string
	Hint    string
	Err     error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Message
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ClientError means the request never left the process: bad input,
// encoding failure, or an undecodable response body.
type ClientError struct {
	Message string
	Err     error
}

func (e *ClientError) Error() string {
	return "client error: " + e.Message
}

func (e *ClientError) Unwrap() error { return e.Err }

// IsAuthExpired reports whether err carries a 401 from the backend.
func IsAuthExpired(err error) bool {
	var ae *AuthExpiredError
	return errors.As(err, &ae)
}

// Message returns the text a page should show in its error banner.
func Message(err error) string {
	if err == nil {
		return ""
	}

	var ae *AuthExpiredError
	if errors.As(err, &ae) {
		return ae.Server.Message
	}
	var se *ServerError
	if errors.As(err, &se) {
		return se.Message
	}
	var ne *NetworkError
	if errors.As(err, &ne) {
		if ne.Hint != "" {
			return ne.Hint
		}
		return ne.Message
	}
	var ce *ClientError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}

// ============================================================================
// Error Parsing Helpers
// ============================================================================

// errorBody is the envelope the backend uses for failures. Either field may be set.
type errorBody struct {
	Error   json.RawMessage `json:"error"`
	Message string          `json:"message"`
}

// parseServerError builds a ServerError from a non-2xx response.
func parseServerError(status int, body []byte) *ServerError {
	return &ServerError{
		Status:  status,
		Message: extractMessage(status, body),
	}
}

// extractMessage prefers a string `error` field, then `message`, then a
// generic fallback naming the status.
func extractMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		var s string
		if len(eb.Error) > 0 && json.Unmarshal(eb.Error, &s) == nil && strings.TrimSpace(s) != "" {
			return s
		}
		if strings.TrimSpace(eb.Message) != "" {
			return eb.Message
		}
	}

	if text := http.StatusText(status); text != "" {
		return fmt.Sprintf("Request failed with status %d (%s)", status, text)
	}
	return fmt.Sprintf("Request failed with status %d", status)
}
