package middleware

import (
	"errors"

	"campy/logger"
	"campy/utils"

	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts every error returned by a handler into the JSON
// envelope. Internal detail is only exposed when verbose is set.
func ErrorHandler(log *logger.Logger, verbose bool) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal Server Error"
		kind := utils.KindInternal

		var fiberErr *fiber.Error
		if appErr, ok := utils.AsAppError(err); ok {
			status = appErr.Status
			message = appErr.Message
			kind = appErr.Kind
		} else if errors.As(err, &fiberErr) {
			status = fiberErr.Code
			message = fiberErr.Message
		}

		fields := []interface{}{"kind", kind, "status", status, "method", c.Method(), "path", c.Path(), "error", err}
		if status >= fiber.StatusInternalServerError {
			log.Error("request failed", fields...)
		} else {
			log.Debug("request rejected", fields...)
		}

		body := Envelope{Success: false, Message: message}
		if verbose && status >= fiber.StatusInternalServerError {
			body.Error = err.Error()
		}
		return c.Status(status).JSON(body)
	}
}

// NotFound answers unmatched routes.
func NotFound(c *fiber.Ctx) error {
	return JsonResponse(c, fiber.StatusNotFound, false, "Route not found", nil)
}
