package watson

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	json "github.com/goccy/go-json"
)

// ServiceError is a failure reported by, or on behalf of, a remote service
type ServiceError struct {
	Service    string
	StatusCode int
	Code       string
	Message    string
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: %s (HTTP %d)", e.Service, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Service, e.Message)
}

// NewServiceError creates a new service error
func NewServiceError(service string, statusCode int, code, message string) *ServiceError {
	return &ServiceError{
		Service:    service,
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// IsUnauthorized reports whether err is an authentication failure
func IsUnauthorized(err error) bool {
	var se *ServiceError
	if !errors.As(err, &se) {
		return false
	}
	return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden ||
		se.Code == "missing_credentials"
}

// errorBody covers the error shapes returned by the services:
// {"error":"...","code":400}, {"error":{"description":"...","error_id":"..."}} and
// {"status":"ERROR","statusInfo":"invalid-api-key"}.
type errorBody struct {
	Error       json.RawMessage `json:"error"`
	Description string          `json:"description"`
	StatusInfo  string          `json:"statusInfo"`
}

type nestedError struct {
	Description string `json:"description"`
	ErrorID     string `json:"error_id"`
}

// ParseErrorBody maps an HTTP error response to a ServiceError
func ParseErrorBody(service string, statusCode int, body []byte) *ServiceError {
	code := strings.ReplaceAll(strings.ToLower(http.StatusText(statusCode)), " ", "_")
	if code == "" {
		code = "http_error"
	}
	message := strings.TrimSpace(string(body))

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil {
		switch {
		case len(eb.Error) > 0 && eb.Error[0] == '"':
			var s string
			if json.Unmarshal(eb.Error, &s) == nil && s != "" {
				message = s
			}
		case len(eb.Error) > 0 && eb.Error[0] == '{':
			var ne nestedError
			if json.Unmarshal(eb.Error, &ne) == nil {
				if ne.Description != "" {
					message = ne.Description
				}
				if ne.ErrorID != "" {
					code = ne.ErrorID
				}
			}
		case eb.StatusInfo != "":
			message = eb.StatusInfo
			code = eb.StatusInfo
		case eb.Description != "":
			message = eb.Description
		}
	}

	if message == "" {
		message = http.StatusText(statusCode)
	}
	return NewServiceError(service, statusCode, code, message)
}
