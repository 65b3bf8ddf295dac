package crm

import (
	"encoding/json"

	"pixeltrack/internal/audit"
	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/models"
	"pixeltrack/internal/session"
	"pixeltrack/internal/utils"

	"github.com/gofiber/fiber/v3"
)

// Routes mounts POST /crm on an already authenticated router.
func Routes(router fiber.Router, forwarder Forwarder) {
	router.Post("/crm", forwardLeadHandler(forwarder))
}

// forwardLeadHandler godoc
// @Summary Forward a lead to the CRM
// @Tags Events
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body models.Lead true "Lead"
// @Success 200 {object} models.LeadAck
// @Failure 400 {object} errmsg._InvalidPayload
// @Failure 401 {object} errmsg._Unauthenticated
// @Router /events/crm [post]
func forwardLeadHandler(forwarder Forwarder) fiber.Handler {
	return func(c fiber.Ctx) error {
		user, ok := session.CurrentUser(c)
		if !ok {
			return utils.StatusError(c, errmsg.Unauthenticated)
		}

		var lead models.Lead
		if err := json.Unmarshal(c.Body(), &lead); err != nil {
			return utils.StatusError(c, errmsg.InvalidPayload)
		}
		Normalize(&lead)

		ack, err := forwarder.Forward(c, lead)
		if err != nil {
			return utils.StatusError(c, err)
		}

		if audit.Em != nil {
			audit.Em.LeadForwarded(user.ID.Hex(), lead)
		}

		return c.JSON(ack)
	}
}
