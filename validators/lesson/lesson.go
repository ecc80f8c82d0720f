package lessonValidator

import (
	"campy/validators"

	"github.com/gofiber/fiber/v2"
)

type CreateLessonRequest struct {
	LessonID string  `json:"lessonId" label:"Lesson ID" validate:"required,max=64"`
	CourseID string  `json:"courseId" label:"Course ID" validate:"required"`
	Title    string  `json:"title" label:"Title" validate:"required,min=3,max=100"`
	Content  string  `json:"content" label:"Content" validate:"required"`
	Duration int     `json:"duration" label:"Duration" validate:"min=1"`
	VideoURL *string `json:"videoUrl" label:"Video URL"`
	Order    int     `json:"order" label:"Order" validate:"min=1"`
}

type UpdateLessonRequest struct {
	LessonID    *string `json:"lessonId" label:"Lesson ID" validate:"omitempty,min=1,max=64"`
	Title       *string `json:"title" label:"Title" validate:"omitempty,min=3,max=100"`
	Content     *string `json:"content" label:"Content" validate:"omitempty,min=1"`
	Duration    *int    `json:"duration" label:"Duration" validate:"omitempty,min=1"`
	VideoURL    *string `json:"videoUrl" label:"Video URL"`
	Order       *int    `json:"order" label:"Order" validate:"omitempty,min=1"`
	IsPublished *bool   `json:"isPublished" label:"isPublished"`
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateLessonRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(&reqData.LessonID, &reqData.CourseID, &reqData.Title)
		if reqData.VideoURL != nil && *reqData.VideoURL == "" {
			reqData.VideoURL = nil
		}
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateLessonRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(reqData.LessonID, reqData.Title)
		if err := validators.Struct(reqData); err != nil {
			return err
		}

		c.Locals("validatedLessonUpdate", reqData)
		return c.Next()
	}
}
