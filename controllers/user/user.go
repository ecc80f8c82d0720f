package userController

import (
	"campy/middleware"
	"campy/services"
	userValidator "campy/validators/user"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	users *services.UserService
}

func New(users *services.UserService) *Controller {
	return &Controller{users: users}
}

func (ctl *Controller) GetAllUsers(c *fiber.Ctx) error {
	users, err := ctl.users.ListUsers(c.UserContext())
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Users retrieved successfully", users)
}

func (ctl *Controller) GetUser(c *fiber.Ctx) error {
	user, err := ctl.users.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User retrieved successfully", user)
}

func (ctl *Controller) CreateUser(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUser").(*userValidator.CreateUserRequest)

	user, err := ctl.users.CreateUser(c.UserContext(), reqData.Name, reqData.Email, reqData.Password)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User created successfully", fiber.Map{
		"userId": user.ID,
		"name":   user.Name,
		"email":  user.Email,
	})
}

func (ctl *Controller) UpdateUser(c *fiber.Ctx) error {
	reqData := c.Locals("validatedUserUpdate").(*userValidator.UpdateUserRequest)

	user, err := ctl.users.UpdateUser(c.UserContext(), c.Params("id"), services.UserPatch{
		Name:  reqData.Name,
		Email: reqData.Email,
		Kudos: reqData.Kudos,
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User updated successfully", user)
}

func (ctl *Controller) DeleteUser(c *fiber.Ctx) error {
	if err := ctl.users.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User deleted successfully", nil)
}

// GetUserCourses serves both /users/:id/courses and /courses/user/:userId.
func (ctl *Controller) GetUserCourses(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		id = c.Params("userId")
	}
	entries, err := ctl.users.ListEnrolledCourses(c.UserContext(), id)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "User courses retrieved successfully", entries)
}
