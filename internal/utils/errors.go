package utils

import (
	"errors"

	"pixeltrack/internal/errmsg"

	"github.com/gofiber/fiber/v3"
	log "github.com/sirupsen/logrus"
)

// StatusError renders err for the caller. Anything that is not an
// errmsg.StatusError is logged and replaced with an opaque 500.
func StatusError(c fiber.Ctx, err error) error {
	var se errmsg.StatusError
	if !errors.As(err, &se) {
		log.WithError(err).
			WithField("path", c.Path()).
			Error("unhandled request error")
		se = errmsg.InternalServerError
	}

	return c.Status(se.StatusCode).JSON(StatusErrorBody(se, nil))
}

// StatusErrorBody builds the response map for se, merging extra fields.
func StatusErrorBody(se errmsg.StatusError, extra fiber.Map) fiber.Map {
	body := fiber.Map{
		"message": se.Message,
	}
	if se.Code != "" {
		body["error"] = se.Code
	}
	for k, v := range extra {
		body[k] = v
	}
	return body
}
