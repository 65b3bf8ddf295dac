package errmsg

import "net/http"

const (
	CodeMissingToken       = "MISSING_TOKEN"
	CodeInvalidToken       = "INVALID_TOKEN"
	CodeMissingPermissions = "MISSING_PERMISSIONS"
	CodeNoPixels           = "NO_PIXELS"
	CodePixelLookupFailed  = "PIXEL_LOOKUP_FAILED"
)

var (
	PixelMissingToken = NewCodedStatusError(
		http.StatusBadRequest,
		CodeMissingToken,
		"access token missing, log out and log back in",
	)
	PixelInvalidToken = NewCodedStatusError(
		http.StatusUnauthorized,
		CodeInvalidToken,
		"access token was rejected by the ad platform, log in again",
	)
	PixelMissingPermissions = NewCodedStatusError(
		http.StatusForbidden,
		CodeMissingPermissions,
		"missing ad account permissions, log in again and grant the requested permissions",
	)
	PixelNoneFound = NewCodedStatusError(
		http.StatusNotFound,
		CodeNoPixels,
		"no pixels were found for your ad accounts",
	)
	PixelLookupFailed = NewCodedStatusError(
		http.StatusBadGateway,
		CodePixelLookupFailed,
		"could not fetch pixels from the ad platform",
	)
	PixelIDRequired = NewCodedStatusError(
		http.StatusBadRequest,
		CodeMissingField,
		"pixelId is required",
	)
)

type _PixelMissingToken struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Error      string `json:"error" example:"MISSING_TOKEN"`
	Message    string `json:"message" example:"access token missing, log out and log back in"`
}

type _PixelMissingPermissions struct {
	StatusCode int    `json:"statusCode" example:"403"`
	Error      string `json:"error" example:"MISSING_PERMISSIONS"`
	Message    string `json:"message" example:"missing ad account permissions, log in again and grant the requested permissions"`
}

type _PixelNoneFound struct {
	StatusCode int    `json:"statusCode" example:"404"`
	Error      string `json:"error" example:"NO_PIXELS"`
	Message    string `json:"message" example:"no pixels were found for your ad accounts"`
}

type _PixelIDRequired struct {
	StatusCode int    `json:"statusCode" example:"400"`
	Error      string `json:"error" example:"MISSING_FIELD"`
	Message    string `json:"message" example:"pixelId is required"`
}
