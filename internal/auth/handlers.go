// Package auth serves the OAuth login round trip and session teardown.
package auth

import (
	"pixeltrack/internal/audit"
	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/identity"
	"pixeltrack/internal/oauth"
	"pixeltrack/internal/session"
	"pixeltrack/internal/utils"

	"github.com/gofiber/fiber/v3"
	log "github.com/sirupsen/logrus"
)

type Config struct {
	// SuccessURL receives the browser after a completed login.
	SuccessURL string
	// FailureURL receives the browser after a failed login and after logout.
	FailureURL string
}

type handlers struct {
	provider oauth.Provider
	resolver *identity.Resolver
	sessions *session.Manager
	cfg      Config
}

func (h *handlers) redirect(c fiber.Ctx, to string) error {
	return c.Redirect().Status(fiber.StatusFound).To(to)
}

func (h *handlers) fail(c fiber.Ctx, reason error, cause error) error {
	entry := log.WithField("reason", reason.Error())
	if cause != nil {
		entry = entry.WithError(cause)
	}
	entry.Warn("login failed")

	return h.redirect(c, h.cfg.FailureURL)
}

// loginHandler godoc
// @Summary Start login
// @Description Redirects to the identity provider consent page.
// @Tags Auth
// @Success 302 {string} string "Found"
// @Failure 500 {object} errmsg._InternalServerError
// @Router /auth/login [get]
func (h *handlers) loginHandler(c fiber.Ctx) error {
	state, err := h.sessions.NewState(c)
	if err != nil {
		return utils.StatusError(c, err)
	}

	return h.redirect(c, h.provider.AuthCodeURL(state))
}

// callbackHandler godoc
// @Summary Complete login
// @Description Exchanges the authorization code, resolves the user, opens a session and redirects to the dashboard.
// @Tags Auth
// @Param state query string true "OAuth state"
// @Param code query string true "Authorization code"
// @Success 302 {string} string "Found"
// @Router /auth/callback [get]
func (h *handlers) callbackHandler(c fiber.Ctx) error {
	if c.Query("error") != "" {
		return h.fail(c, errmsg.OAuthDenied, nil)
	}

	valid, err := h.sessions.ConsumeState(c, c.Query("state"))
	if err != nil {
		return h.fail(c, errmsg.OAuthStateInvalid, err)
	}
	if !valid {
		return h.fail(c, errmsg.OAuthStateInvalid, nil)
	}

	code := c.Query("code")
	if code == "" {
		return h.fail(c, errmsg.OAuthCodeMissing, nil)
	}

	profile, accessToken, err := h.provider.Exchange(c, code)
	if err != nil {
		return h.fail(c, errmsg.OAuthDenied, err)
	}

	user, err := h.resolver.ResolveOrCreate(c, profile, accessToken)
	if err != nil {
		return h.fail(c, errmsg.IdentityProfileInvalid, err)
	}

	token, err := h.sessions.Create(c, user.ID)
	if err != nil {
		return h.fail(c, errmsg.InternalServerError, err)
	}

	h.sessions.SetCookie(c, token)

	return h.redirect(c, h.cfg.SuccessURL)
}

// logoutHandler godoc
// @Summary Log out
// @Description Deletes the session and clears the session cookie.
// @Tags Auth
// @Success 302 {string} string "Found"
// @Router /auth/logout [get]
func (h *handlers) logoutHandler(c fiber.Ctx) error {
	token := session.TokenFromRequest(c)

	if token != "" {
		if user, err := h.sessions.Resolve(c, token); err == nil && audit.Em != nil {
			audit.Em.UserLogout(user.ID.Hex())
		}
		if err := h.sessions.Destroy(c, token); err != nil {
			log.WithError(err).Warn("could not delete session")
		}
	}

	h.sessions.ClearCookie(c)

	return h.redirect(c, h.cfg.FailureURL)
}

type tokenStatus struct {
	Message  string `json:"message" example:"token is valid"`
	HasToken bool   `json:"hasToken" example:"true"`
	UserID   string `json:"userId" example:"1001"`
}

// tokenStatusHandler godoc
// @Summary Access token status
// @Description Reports whether the user holds an ad platform access token.
// @Tags Auth
// @Produce json
// @Security SessionAuth
// @Success 200 {object} tokenStatus
// @Failure 401 {object} errmsg._Unauthenticated
// @Router /auth/token [get]
func (h *handlers) tokenStatusHandler(c fiber.Ctx) error {
	user, ok := session.CurrentUser(c)
	if !ok {
		return utils.StatusError(c, errmsg.Unauthenticated)
	}

	return c.JSON(tokenStatus{
		Message:  "token is valid",
		HasToken: user.HasAccessToken(),
		UserID:   user.ExternalID,
	})
}
