package tracking

import "github.com/gofiber/fiber/v3"

// Routes mounts the event endpoints and returns the authenticated /events
// group so related features can share it. live may be nil, which leaves out
// the stream endpoint.
func Routes(app fiber.Router, pipeline *Pipeline, live Subscriber, requireUser fiber.Handler) fiber.Router {
	h := &handlers{pipeline: pipeline, live: live}

	events := app.Group("/events", requireUser)

	events.Post("/", h.submitEventHandler)
	events.Get("/", h.listEventsHandler)

	if live != nil {
		events.Get("/stream", h.streamEventsHandler)
	}

	return events
}
