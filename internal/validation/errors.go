package validation

// ValidationError is a client error tied to one request field
type ValidationError struct {
	Param   string
	Message string
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return e.Message
}

func newError(param, message string) *ValidationError {
	return &ValidationError{Param: param, Message: message}
}
