package progressValidator

import (
	"campy/utils"
	"campy/validators"

	"github.com/gofiber/fiber/v2"
)

type CompleteLessonRequest struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
	LessonID string `json:"lessonId"`
}

type ResetProgressRequest struct {
	UserID   string `json:"userId"`
	CourseID string `json:"courseId"`
}

// CompleteLesson requires all three identifiers.
func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CompleteLessonRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(&reqData.UserID, &reqData.CourseID, &reqData.LessonID)
		if reqData.UserID == "" || reqData.CourseID == "" || reqData.LessonID == "" {
			return utils.NewValidationError("userId, courseId, and lessonId are required")
		}

		c.Locals("validatedCompletion", reqData)
		return c.Next()
	}
}

func ResetProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ResetProgressRequest)
		if err := validators.Decode(c, reqData); err != nil {
			return err
		}
		validators.Trim(&reqData.UserID, &reqData.CourseID)
		if reqData.UserID == "" || reqData.CourseID == "" {
			return utils.NewValidationError("userId and courseId are required")
		}

		c.Locals("validatedReset", reqData)
		return c.Next()
	}
}
