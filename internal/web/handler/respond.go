package handler

import (
	"github.com/gofiber/fiber/v2"
)

// MessageBody is the JSON shape of every non-payload API response.
// Error responses carry only a message; the client surfaces it verbatim.
type MessageBody struct {
	Message string `json:"message"`
}

// Message writes a JSON {message} response with the given status.
func Message(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(MessageBody{Message: message})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusBadRequest, message)
}

// NotFound writes a 404 response with the given message.
func NotFound(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusNotFound, message)
}

// Conflict writes a 409 response with the given message.
func Conflict(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusConflict, message)
}

// ServerError writes a 500 response with a generic message.
func ServerError(c *fiber.Ctx) error {
	return Message(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// ValidationError writes a 422 response with the given message.
func ValidationError(c *fiber.Ctx, message string) error {
	return Message(c, fiber.StatusUnprocessableEntity, message)
}
