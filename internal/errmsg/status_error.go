package errmsg

// StatusError is an error that already knows how it is rendered to the
// caller. Code is the machine readable condition the dashboard switches on.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

func NewStatusError(statusCode int, message string) StatusError {
	return StatusError{
		StatusCode: statusCode,
		Message:    message,
	}
}

func NewCodedStatusError(statusCode int, code string, message string) StatusError {
	return StatusError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

func (se StatusError) Error() string {
	return se.Message
}
