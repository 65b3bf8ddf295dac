package pixels

import (
	"encoding/json"

	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/session"
	"pixeltrack/internal/utils"

	"github.com/gofiber/fiber/v3"
)

type selectRequest struct {
	PixelID string `json:"pixelId"`
}

type handlers struct {
	registry *Registry
}

// getUserHandler godoc
// @Summary Current user
// @Tags Users
// @Produce json
// @Security SessionAuth
// @Success 200 {object} models.User
// @Failure 401 {object} errmsg._Unauthenticated
// @Router /user [get]
func (h *handlers) getUserHandler(c fiber.Ctx) error {
	user, ok := session.CurrentUser(c)
	if !ok {
		return utils.StatusError(c, errmsg.Unauthenticated)
	}
	return c.JSON(user)
}

// listPixelsHandler godoc
// @Summary List available pixels
// @Description Owned pixels across every ad account the user can access. Accounts whose lookup fails are skipped.
// @Tags Pixels
// @Produce json
// @Security SessionAuth
// @Success 200 {array} models.Pixel
// @Failure 400 {object} errmsg._PixelMissingToken
// @Failure 401 {object} errmsg._Unauthenticated
// @Failure 403 {object} errmsg._PixelMissingPermissions
// @Failure 404 {object} errmsg._PixelNoneFound
// @Router /user/pixels [get]
func (h *handlers) listPixelsHandler(c fiber.Ctx) error {
	user, ok := session.CurrentUser(c)
	if !ok {
		return utils.StatusError(c, errmsg.Unauthenticated)
	}

	pixels, err := h.registry.ListAvailable(c, user)
	if err != nil {
		return utils.StatusError(c, err)
	}

	return c.JSON(pixels)
}

// selectPixelHandler godoc
// @Summary Select the active pixel
// @Tags Pixels
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body selectRequest true "Pixel to activate"
// @Success 200 {object} models.User
// @Failure 400 {object} errmsg._PixelIDRequired
// @Failure 401 {object} errmsg._Unauthenticated
// @Router /user/pixel [post]
func (h *handlers) selectPixelHandler(c fiber.Ctx) error {
	user, ok := session.CurrentUser(c)
	if !ok {
		return utils.StatusError(c, errmsg.Unauthenticated)
	}

	var body selectRequest
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return utils.StatusError(c, errmsg.InvalidPayload)
	}

	updated, err := h.registry.Select(c, user, body.PixelID)
	if err != nil {
		return utils.StatusError(c, err)
	}

	return c.JSON(updated)
}
