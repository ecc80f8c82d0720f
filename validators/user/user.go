package userValidator

import (
	"campy/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateUserRequest struct {
	Name     string `json:"name" label:"Name" validate:"required,min=2,max=50"`
	Email    string `json:"email" label:"Email" validate:"required,email"`
	Password string `json:"password" label:"Password" validate:"required,min=6"`
}

type UpdateUserRequest struct {
	Name  *string `json:"name" label:"Name" validate:"omitempty,min=2,max=50"`
	Email *string `json:"email" label:"Email" validate:"omitempty,email"`
	Kudos *int    `json:"kudos" label:"Kudos" validate:"omitempty,min=0"`
}

func CreateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateUserRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(&reqData.Name, &reqData.Email)
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedUser", reqData)
		return c.Next()
	}
}

// UpdateUser accepts any subset of name, email and kudos.
func UpdateUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateUserRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(reqData.Name, reqData.Email)
		// blank values mean "not provided"
		if reqData.Name != nil && *reqData.Name == "" {
			reqData.Name = nil
		}
		if reqData.Email != nil && *reqData.Email == "" {
			reqData.Email = nil
		}
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedUserUpdate", reqData)
		return c.Next()
	}
}
