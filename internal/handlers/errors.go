package handlers

import "github.com/gofiber/fiber/v2"

// errorResponse writes the {"error": message} body shared by every endpoint.
func errorResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": message,
	})
}
