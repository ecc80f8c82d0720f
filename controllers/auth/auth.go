package authController

import (
	"campy/middleware"
	"campy/services"
	authValidator "campy/validators/auth"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	auth *services.AuthService
}

func New(auth *services.AuthService) *Controller {
	return &Controller{auth: auth}
}

func (ctl *Controller) SignUp(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSignUp").(*authValidator.SignUpRequest)

	result, err := ctl.auth.Register(c.UserContext(), reqData.Name, reqData.Email, reqData.Password)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully", result)
}

func (ctl *Controller) SignIn(c *fiber.Ctx) error {
	reqData := c.Locals("validatedSignIn").(*authValidator.SignInRequest)

	result, err := ctl.auth.Authenticate(c.UserContext(), reqData.Email, reqData.Password)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signed in successfully", result)
}

// SignOut only acknowledges. Tokens are stateless and expire on their own.
func (ctl *Controller) SignOut(c *fiber.Ctx) error {
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Signed out successfully", nil)
}
