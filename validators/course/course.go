package courseValidator

import (
	"campy/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateCourseRequest struct {
	CourseID    string   `json:"courseId" label:"Course ID" validate:"required,max=64"`
	Title       string   `json:"title" label:"Title" validate:"required,min=5,max=100"`
	Description string   `json:"description" label:"Description" validate:"required,min=10,max=500"`
	Duration    int      `json:"duration" label:"Duration" validate:"min=1"`
	Instructor  string   `json:"instructor" label:"Instructor" validate:"required"`
	Price       *float64 `json:"price" label:"Price" validate:"required,gte=0"`
	Category    *string  `json:"category" label:"Category" validate:"omitempty,max=100"`
	Level       string   `json:"level" label:"Level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Thumbnail   *string  `json:"thumbnail" label:"Thumbnail"`
}

type UpdateCourseRequest struct {
	CourseID    *string  `json:"courseId" label:"Course ID" validate:"omitempty,min=1,max=64"`
	Title       *string  `json:"title" label:"Title" validate:"omitempty,min=5,max=100"`
	Description *string  `json:"description" label:"Description" validate:"omitempty,min=10,max=500"`
	Duration    *int     `json:"duration" label:"Duration" validate:"omitempty,min=1"`
	Instructor  *string  `json:"instructor" label:"Instructor" validate:"omitempty,min=1"`
	Price       *float64 `json:"price" label:"Price" validate:"omitempty,gte=0"`
	Category    *string  `json:"category" label:"Category" validate:"omitempty,max=100"`
	Level       *string  `json:"level" label:"Level" validate:"omitempty,oneof=Beginner Intermediate Advanced"`
	Thumbnail   *string  `json:"thumbnail" label:"Thumbnail"`
	IsActive    *bool    `json:"isActive" label:"isActive"`
}

type EnrollmentRequest struct {
	UserID string `json:"userId" label:"User ID" validate:"required"`
}

// CreateCourse validates course creation request
func CreateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCourseRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(&reqData.CourseID, &reqData.Title, &reqData.Description, &reqData.Instructor, reqData.Category)
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// UpdateCourse validates a partial course update
func UpdateCourse() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCourseRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(reqData.CourseID, reqData.Title, reqData.Description, reqData.Instructor, reqData.Category)
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// Enrollment validates the body of enroll and unenroll requests
func Enrollment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(EnrollmentRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(&reqData.UserID)
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedEnrollment", reqData)
		return c.Next()
	}
}
