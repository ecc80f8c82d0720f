package progressController

import (
	"campy/middleware"
	"campy/services"
	progressValidator "campy/validators/progress"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	progress *services.ProgressService
}

func New(progress *services.ProgressService) *Controller {
	return &Controller{progress: progress}
}

func (ctl *Controller) GetProgressByCourse(c *fiber.Ctx) error {
	progress, err := ctl.progress.GetProgress(c.UserContext(), c.Params("userId"), c.Params("courseId"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress retrieved successfully", progress)
}

func (ctl *Controller) GetAllUserProgress(c *fiber.Ctx) error {
	records, err := ctl.progress.ListUserProgress(c.UserContext(), c.Params("userId"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "All progress retrieved successfully", records)
}

func (ctl *Controller) CompleteLesson(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCompletion").(*progressValidator.CompleteLessonRequest)

	result, err := ctl.progress.CompleteLesson(c.UserContext(), reqData.UserID, reqData.CourseID, reqData.LessonID)
	if err != nil {
		return err
	}
	if result.AlreadyCompleted {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson already completed", result.Progress)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed", result.Progress)
}

func (ctl *Controller) ResetProgress(c *fiber.Ctx) error {
	reqData := c.Locals("validatedReset").(*progressValidator.ResetProgressRequest)

	progress, err := ctl.progress.ResetProgress(c.UserContext(), reqData.UserID, reqData.CourseID)
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress reset successfully", progress)
}

func (ctl *Controller) GetCourseStats(c *fiber.Ctx) error {
	stats, err := ctl.progress.CourseStats(c.UserContext(), c.Params("courseId"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course statistics retrieved successfully", stats)
}
