package utils

import "github.com/gofiber/fiber/v3"

// Keys under which request scoped values are stored in fiber locals.
const (
	LocalUser   = "user"
	LocalUserID = "userID"
)

func GetLocals[T any](c fiber.Ctx, name string) (T, bool) {
	value, ok := c.Locals(name).(T)
	return value, ok
}

func SetLocals(c fiber.Ctx, name string, data any) {
	c.Locals(name, data)
}
