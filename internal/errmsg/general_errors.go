package errmsg

import "net/http"

const (
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeMissingField    = "MISSING_FIELD"
)

var (
	InternalServerError = NewStatusError(
		http.StatusInternalServerError,
		"internal server error",
	)
	Unauthenticated = NewCodedStatusError(
		http.StatusUnauthorized,
		CodeUnauthenticated,
		"not authenticated",
	)
	InvalidPayload = NewStatusError(
		http.StatusBadRequest,
		"invalid request payload",
	)
)

type _InternalServerError struct {
	StatusCode int    `json:"statusCode" example:"500"`
	Message    string `json:"message" example:"internal server error"`
}

type _Unauthenticated struct {
	StatusCode int    `json:"statusCode" example:"401"`
	Error      string `json:"error" example:"UNAUTHENTICATED"`
	Message    string `json:"message" example:"not authenticated"`
}

type _InvalidPayload struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Message    string `json:"message" example:"invalid request payload"`
}
