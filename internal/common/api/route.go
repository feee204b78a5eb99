package api

import "github.com/gofiber/fiber/v2"

// Route is implemented by every feature that mounts HTTP handlers
type Route interface {
	Setup(app *fiber.App)
}
