package errmsg

import "net/http"

const (
	CodeInvalidEventTime = "INVALID_EVENT_TIME"
	CodeNoPixelSelected  = "NO_PIXEL_SELECTED"
	CodeDuplicateEvent   = "DUPLICATE_EVENT"
	CodeDeliveryFailed   = "DELIVERY_FAILED"
)

var (
	EventNameRequired = NewCodedStatusError(
		http.StatusBadRequest,
		CodeMissingField,
		"eventName is required",
	)
	EventIDRequired = NewCodedStatusError(
		http.StatusBadRequest,
		CodeMissingField,
		"eventId is required",
	)
	EventSourceURLRequired = NewCodedStatusError(
		http.StatusBadRequest,
		CodeMissingField,
		"eventSourceUrl is required",
	)
	EventTimeInvalid = NewCodedStatusError(
		http.StatusBadRequest,
		CodeInvalidEventTime,
		"eventTime must be an RFC3339 timestamp or unix seconds",
	)
	EventNoPixelSelected = NewCodedStatusError(
		http.StatusBadRequest,
		CodeNoPixelSelected,
		"select a pixel before tracking events",
	)
	EventMissingToken = NewCodedStatusError(
		http.StatusBadRequest,
		CodeMissingToken,
		"access token missing, log out and log back in",
	)
	EventDuplicate = NewCodedStatusError(
		http.StatusConflict,
		CodeDuplicateEvent,
		"event already recorded",
	)
	// EventDeliveryFailed is a partial success: the record exists locally.
	EventDeliveryFailed = NewCodedStatusError(
		http.StatusAccepted,
		CodeDeliveryFailed,
		"event recorded locally, delivery not confirmed",
	)
)

type _EventFieldRequired struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Error      string `json:"error" example:"MISSING_FIELD"`
	Message    string `json:"message" example:"eventId is required"`
}

type _EventNoPixelSelected struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Error      string `json:"error" example:"NO_PIXEL_SELECTED"`
	Message    string `json:"message" example:"select a pixel before tracking events"`
}

type _EventDuplicate struct {
	StatusCode int    `json:"statusCode" example:"409"`
	Error      string `json:"error" example:"DUPLICATE_EVENT"`
	Message    string `json:"message" example:"event already recorded"`
}
