package lessonController

import (
	"campy/middleware"
	"campy/services"
	lessonValidator "campy/validators/lesson"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	catalog *services.CatalogService
}

func New(catalog *services.CatalogService) *Controller {
	return &Controller{catalog: catalog}
}

func (ctl *Controller) GetAllLessons(c *fiber.Ctx) error {
	lessons, err := ctl.catalog.ListLessons(c.UserContext())
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lessons retrieved successfully", lessons)
}

func (ctl *Controller) GetLessonsByCourse(c *fiber.Ctx) error {
	lessons, err := ctl.catalog.ListLessonsByCourse(c.UserContext(), c.Params("courseId"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course lessons retrieved successfully", lessons)
}

func (ctl *Controller) GetLesson(c *fiber.Ctx) error {
	lesson, err := ctl.catalog.GetLesson(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson retrieved successfully", lesson)
}

func (ctl *Controller) CreateLesson(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLesson").(*lessonValidator.CreateLessonRequest)

	lesson, err := ctl.catalog.CreateLesson(c.UserContext(), services.LessonInput{
		LessonID: reqData.LessonID,
		CourseID: reqData.CourseID,
		Title:    reqData.Title,
		Content:  reqData.Content,
		Duration: reqData.Duration,
		VideoURL: reqData.VideoURL,
		Order:    reqData.Order,
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lesson created successfully", lesson)
}

func (ctl *Controller) UpdateLesson(c *fiber.Ctx) error {
	reqData := c.Locals("validatedLessonUpdate").(*lessonValidator.UpdateLessonRequest)

	lesson, err := ctl.catalog.UpdateLesson(c.UserContext(), c.Params("id"), services.LessonPatch{
		LessonID:    reqData.LessonID,
		Title:       reqData.Title,
		Content:     reqData.Content,
		Duration:    reqData.Duration,
		VideoURL:    reqData.VideoURL,
		Order:       reqData.Order,
		IsPublished: reqData.IsPublished,
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson updated successfully", lesson)
}

func (ctl *Controller) DeleteLesson(c *fiber.Ctx) error {
	if err := ctl.catalog.DeleteLesson(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson deleted successfully", nil)
}
