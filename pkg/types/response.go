package types

import "time"

// ErrorTypeInvalidRequest is the type tag of every client error
const ErrorTypeInvalidRequest = "invalid_request_error"

// ErrorResponse is the error envelope returned with 4xx statuses
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a single failure. Param and Code serialize as null
// when unset.
type ErrorDetail struct {
	Message string  `json:"message"`
	Type    string  `json:"type"`
	Param   *string `json:"param"`
	Code    *string `json:"code"`
}

// NewInvalidRequest builds an invalid_request_error envelope. An empty param
// is reported as null.
func NewInvalidRequest(message, param string) ErrorResponse {
	detail := ErrorDetail{
		Message: message,
		Type:    ErrorTypeInvalidRequest,
	}
	if param != "" {
		detail.Param = &param
	}
	return ErrorResponse{Error: detail}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string    `json:"status"`
	Service   string    `json:"service"`
	Version   string    `json:"version"`
	Uptime    int64     `json:"uptime_seconds"`
	Timestamp time.Time `json:"timestamp"`
}
