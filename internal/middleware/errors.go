package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v3"

	"github.com/rajivgeraev/flippy-motors/internal/apiclient"
)

// ErrorHandler обрабатывает ошибки Fiber и ошибки бэкенда
func ErrorHandler(c fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()

	var fiberErr *fiber.Error
	var apiErr *apiclient.APIError
	switch {
	case errors.As(err, &fiberErr):
		code = fiberErr.Code
	case errors.As(err, &apiErr):
		// Статус бэкенда отдаём как есть
		code = apiErr.Status
		if apiErr.Detail != "" {
			message = apiErr.Detail
		}
	case errors.Is(err, apiclient.ErrTransport):
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		code = fiber.StatusBadGateway
		message = "Backend unavailable"
	default:
		log.Printf("❌ %s %s: %v", c.Method(), c.Path(), err)
		message = "Internal error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error": message,
	})
}
