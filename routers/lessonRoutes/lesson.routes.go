package lessonRoutes

import (
	lessonController "campy/controllers/lesson"
	lessonValidator "campy/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

func SetupLessonRoutes(api fiber.Router, ctl *lessonController.Controller, requireAuth fiber.Handler) {
	lessonGroup := api.Group("/lessons")

	lessonGroup.Get("/", ctl.GetAllLessons)
	lessonGroup.Get("/course/:courseId", ctl.GetLessonsByCourse)
	lessonGroup.Get("/:id", ctl.GetLesson)

	lessonGroup.Post("/", requireAuth, lessonValidator.CreateLesson(), ctl.CreateLesson)
	lessonGroup.Put("/:id", requireAuth, lessonValidator.UpdateLesson(), ctl.UpdateLesson)
	lessonGroup.Delete("/:id", requireAuth, ctl.DeleteLesson)
}
