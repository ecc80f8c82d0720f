package courseRoutes

import (
	courseController "campy/controllers/course"
	userController "campy/controllers/user"
	courseValidator "campy/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up catalog and enrollment routes
func SetupCourseRoutes(api fiber.Router, ctl *courseController.Controller, users *userController.Controller, requireAuth fiber.Handler) {
	courseGroup := api.Group("/courses")

	courseGroup.Get("/", ctl.GetAllCourses)
	courseGroup.Get("/user/:userId", users.GetUserCourses)
	courseGroup.Get("/:id", ctl.GetCourse)

	courseGroup.Post("/", requireAuth, courseValidator.CreateCourse(), ctl.CreateCourse)
	courseGroup.Put("/:id/cancel", requireAuth, ctl.CancelCourse)
	courseGroup.Put("/:id", requireAuth, courseValidator.UpdateCourse(), ctl.UpdateCourse)
	courseGroup.Delete("/:id", requireAuth, ctl.DeleteCourse)

	// Enrollment
	courseGroup.Post("/:courseId/enroll", requireAuth, courseValidator.Enrollment(), ctl.EnrollCourse)
	courseGroup.Post("/:courseId/unenroll", requireAuth, courseValidator.Enrollment(), ctl.UnenrollCourse)
}
