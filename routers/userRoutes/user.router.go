package userRoutes

import (
	userController "campy/controllers/user"
	userValidator "campy/validators/user"

	"github.com/gofiber/fiber/v2"
)

func SetupUserRoutes(api fiber.Router, ctl *userController.Controller, requireAuth fiber.Handler) {
	userGroup := api.Group("/users")

	userGroup.Get("/", ctl.GetAllUsers)
	userGroup.Get("/:id/courses", ctl.GetUserCourses)
	userGroup.Get("/:id", ctl.GetUser)

	userGroup.Post("/", requireAuth, userValidator.CreateUser(), ctl.CreateUser)
	userGroup.Put("/:id", requireAuth, userValidator.UpdateUser(), ctl.UpdateUser)
	userGroup.Delete("/:id", requireAuth, ctl.DeleteUser)
}
