package authRoutes

import (
	authController "campy/controllers/auth"
	authValidator "campy/validators/auth"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthRoutes(api fiber.Router, ctl *authController.Controller, requireAuth fiber.Handler) {
	authGroup := api.Group("/auth")

	authGroup.Post("/sign-up", authValidator.SignUp(), ctl.SignUp)
	authGroup.Post("/sign-in", authValidator.SignIn(), ctl.SignIn)
	authGroup.Post("/sign-out", requireAuth, ctl.SignOut)
}
