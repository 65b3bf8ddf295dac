package session

import (
	"strings"
	"time"

	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/models"
	"pixeltrack/internal/utils"

	"github.com/gofiber/fiber/v3"
	"github.com/pkg/errors"
)

// TokenFromRequest reads the session token from the cookie, falling back to
// an "Authorization: Bearer" header.
func TokenFromRequest(c fiber.Ctx) string {
	if token := strings.TrimSpace(c.Cookies(CookieName)); token != "" {
		return token
	}

	authHeader := c.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer") {
		tokens := strings.Fields(authHeader)
		if len(tokens) == 2 {
			return tokens[1]
		}
	}

	return ""
}

func (m *Manager) SetCookie(c fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(m.ttl),
		HTTPOnly: true,
		Secure:   m.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func (m *Manager) ClearCookie(c fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HTTPOnly: true,
		Secure:   m.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// RequireUser rejects requests without a live session with 401 and stores
// the user in locals otherwise.
func (m *Manager) RequireUser() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := TokenFromRequest(c)
		if token == "" {
			return utils.StatusError(c, errmsg.Unauthenticated)
		}

		user, err := m.Resolve(c, token)
		if errors.Is(err, ErrInvalidSession) {
			return utils.StatusError(c, errmsg.Unauthenticated)
		}
		if err != nil {
			return utils.StatusError(c, err)
		}

		utils.SetLocals(c, utils.LocalUser, user)
		utils.SetLocals(c, utils.LocalUserID, user.ID.Hex())

		return c.Next()
	}
}

// CurrentUser returns the user placed in locals by RequireUser.
func CurrentUser(c fiber.Ctx) (*models.User, bool) {
	user, ok := utils.GetLocals[*models.User](c, utils.LocalUser)
	return user, ok && user != nil
}
