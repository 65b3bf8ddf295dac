package auth

import (
	"pixeltrack/internal/identity"
	"pixeltrack/internal/oauth"
	"pixeltrack/internal/session"

	"github.com/gofiber/fiber/v3"
)

func Routes(app fiber.Router, provider oauth.Provider, resolver *identity.Resolver, sessions *session.Manager, cfg Config) {
	h := &handlers{
		provider: provider,
		resolver: resolver,
		sessions: sessions,
		cfg:      cfg,
	}

	auth := app.Group("/auth")

	auth.Get("/login", h.loginHandler)
	auth.Get("/callback", h.callbackHandler)
	auth.Get("/logout", h.logoutHandler)
	auth.Get("/token", sessions.RequireUser(), h.tokenStatusHandler)
}
