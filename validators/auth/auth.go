package authValidator

import (
	"campy/validators"

	"github.com/gofiber/fiber/v2"
)

type SignUpRequest struct {
	Name     string `json:"name" label:"Name" validate:"required,min=2,max=50"`
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required,min=6"`
}

type SignInRequest struct {
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required"`
}

// SignUp validator middleware
func SignUp() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignUpRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(&reqData.Name, &reqData.Email)
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedSignUp", reqData)
		return c.Next()
	}
}

// SignIn validator middleware
func SignIn() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(SignInRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(&reqData.Email)
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedSignIn", reqData)
		return c.Next()
	}
}
