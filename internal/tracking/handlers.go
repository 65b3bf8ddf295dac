package tracking

import (
	"context"
	"encoding/json"
	"net/http"

	"pixeltrack/internal/errmsg"
	"pixeltrack/internal/models"
	"pixeltrack/internal/session"
	"pixeltrack/internal/utils"
	"pixeltrack/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Subscriber streams a user's recorded events.
type Subscriber interface {
	Subscribe(ctx context.Context, userID string, fn func(event []byte) error) error
}

type handlers struct {
	pipeline *Pipeline
	live     Subscriber
}

type _DeliveryFailed struct {
	StatusCode int          `json:"statusCode" example:"202"`
	Error      string       `json:"error" example:"DELIVERY_FAILED"`
	Message    string       `json:"message" example:"event recorded locally, delivery not confirmed"`
	Event      models.Event `json:"event"`
}

func transportFrom(c fiber.Ctx) Transport {
	return Transport{
		ClientIP:  c.IP(),
		UserAgent: c.Get(fiber.HeaderUserAgent),
		Referer:   c.Get(fiber.HeaderReferer),
		FBC:       c.Cookies("_fbc"),
		FBP:       c.Cookies("_fbp"),
	}
}

// submitEventHandler godoc
// @Summary Record and forward an event
// @Description Stores the event, then forwards it to the conversions endpoint of the selected pixel. Client IP and user agent are taken from the request itself.
// @Tags Events
// @Accept json
// @Produce json
// @Security SessionAuth
// @Param payload body RawEvent true "Event"
// @Success 201 {object} models.Event
// @Success 202 {object} _DeliveryFailed
// @Failure 400 {object} errmsg._EventFieldRequired
// @Failure 400 {object} errmsg._EventNoPixelSelected
// @Failure 401 {object} errmsg._Unauthenticated
// @Failure 409 {object} errmsg._EventDuplicate
// @Failure 500 {object} errmsg._InternalServerError
// @Router /events [post]
func (h *handlers) submitEventHandler(c fiber.Ctx) error {
	user, ok := session.CurrentUser(c)
	if !ok {
		return utils.StatusError(c, errmsg.Unauthenticated)
	}

	var body RawEvent
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return utils.StatusError(c, errmsg.InvalidPayload)
	}

	res, err := h.pipeline.Submit(c, user, transportFrom(c), body)
	if err != nil {
		return utils.StatusError(c, err)
	}

	if !res.Delivered {
		return c.Status(errmsg.EventDeliveryFailed.StatusCode).JSON(
			utils.StatusErrorBody(errmsg.EventDeliveryFailed, fiber.Map{
				"event":    res.Event,
				"delivery": fiber.Map{"status": res.Event.Delivery.Status},
			}),
		)
	}

	return c.Status(http.StatusCreated).JSON(res.Event)
}

// listEventsHandler godoc
// @Summary List recorded events
// @Description Events of the current user, newest first.
// @Tags Events
// @Produce json
// @Security SessionAuth
// @Success 200 {array} models.Event
// @Failure 401 {object} errmsg._Unauthenticated
// @Router /events [get]
func (h *handlers) listEventsHandler(c fiber.Ctx) error {
	user, ok := session.CurrentUser(c)
	if !ok {
		return utils.StatusError(c, errmsg.Unauthenticated)
	}

	events, err := h.pipeline.List(c, user)
	if err != nil {
		return utils.StatusError(c, err)
	}

	return c.JSON(events)
}

// streamEventsHandler godoc
// @Summary Live event stream
// @Description Upgrades to a WebSocket that receives every event the user records from now on.
// @Tags Events
// @Security SessionAuth
// @Success 101 {string} string "Switching Protocols"
// @Failure 401 {object} errmsg._Unauthenticated
// @Router /events/stream [get]
func (h *handlers) streamEventsHandler(c fiber.Ctx) error {
	user, ok := session.CurrentUser(c)
	if !ok {
		return utils.StatusError(c, errmsg.Unauthenticated)
	}

	userID := user.ID.Hex()
	return ws.StreamWebSocket(c, func(ctx context.Context, writer *ws.EventWriter) error {
		return h.live.Subscribe(ctx, userID, writer.Send)
	})
}
