package errmsg

import "net/http"

// OAuth callback failures. The callback redirects instead of rendering these,
// they exist so the cause is logged with a stable message.
var (
	OAuthStateInvalid = NewStatusError(
		http.StatusBadRequest,
		"oauth state is missing or expired",
	)
	OAuthCodeMissing = NewStatusError(
		http.StatusBadRequest,
		"oauth authorization code is missing",
	)
	OAuthDenied = NewStatusError(
		http.StatusUnauthorized,
		"login was cancelled at the identity provider",
	)
	IdentityProfileInvalid = NewStatusError(
		http.StatusBadGateway,
		"identity provider returned an incomplete profile",
	)
)
