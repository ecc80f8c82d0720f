package progressRoutes

import (
	progressController "campy/controllers/progress"
	progressValidator "campy/validators/progress"

	"github.com/gofiber/fiber/v2"
)

func SetupProgressRoutes(api fiber.Router, ctl *progressController.Controller, requireAuth fiber.Handler) {
	progressGroup := api.Group("/progress")

	// literal prefixes must be registered before /:userId/:courseId
	progressGroup.Get("/user/:userId", ctl.GetAllUserProgress)
	progressGroup.Get("/course/:courseId/stats", ctl.GetCourseStats)
	progressGroup.Get("/:userId/:courseId", ctl.GetProgressByCourse)

	progressGroup.Post("/complete-lesson", requireAuth, progressValidator.CompleteLesson(), ctl.CompleteLesson)
	progressGroup.Post("/reset", requireAuth, progressValidator.ResetProgress(), ctl.ResetProgress)
}
