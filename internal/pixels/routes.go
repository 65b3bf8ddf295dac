package pixels

import "github.com/gofiber/fiber/v3"

func Routes(app fiber.Router, registry *Registry, requireUser fiber.Handler) {
	h := &handlers{registry: registry}

	user := app.Group("/user", requireUser)

	user.Get("/", h.getUserHandler)
	user.Get("/pixels", h.listPixelsHandler)
	user.Post("/pixel", h.selectPixelHandler)
}
