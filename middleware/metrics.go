package middleware

import (
	"errors"
	"strconv"
	"time"

	"campy/metrics"
	"campy/utils"

	"github.com/gofiber/fiber/v2"
	fiberutils "github.com/gofiber/fiber/v2/utils"
)

// Metrics records request count and latency per matched route.
func Metrics(m *metrics.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = statusOf(err)
		}

		// label values outlive the request, fasthttp reuses the method buffer
		method := fiberutils.CopyString(c.Method())
		route := fiberutils.CopyString(c.Route().Path)
		m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
		m.HTTPDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
		return err
	}
}

// statusOf mirrors the status ErrorHandler will write for err.
func statusOf(err error) int {
	if appErr, ok := utils.AsAppError(err); ok {
		return appErr.Status
	}
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return fiberErr.Code
	}
	return fiber.StatusInternalServerError
}
