// Package logging configures the process-wide logrus logger and provides
// the request logging middleware.
package logging

import (
	"strings"
	"time"

	"pixeltrack/internal/utils"

	"github.com/gofiber/fiber/v3"
	log "github.com/sirupsen/logrus"
)

// Init sets the log level and picks a formatter for the deployment profile.
// Production output is JSON so it can be shipped as-is.
func Init(level string, deployment string) error {
	lvl, err := log.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		return err
	}
	log.SetLevel(lvl)

	if strings.TrimSpace(deployment) == "prod" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	return nil
}

// Middleware logs one line per request once the handler chain has finished.
func Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		fields := log.Fields{
			"method":  c.Method(),
			"path":    c.Path(),
			"status":  c.Response().StatusCode(),
			"latency": time.Since(start).String(),
		}
		if userID, ok := utils.GetLocals[string](c, utils.LocalUserID); ok {
			fields["user"] = userID
		}

		entry := log.WithFields(fields)
		if err != nil {
			entry.WithError(err).Warn("request failed")
			return err
		}
		entry.Debug("request")

		return nil
	}
}
