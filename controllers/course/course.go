package courseController

import (
	"campy/middleware"
	"campy/services"
	courseValidator "campy/validators/course"

	"github.com/gofiber/fiber/v2"
)

type Controller struct {
	catalog    *services.CatalogService
	enrollment *services.EnrollmentService
}

func New(catalog *services.CatalogService, enrollment *services.EnrollmentService) *Controller {
	return &Controller{catalog: catalog, enrollment: enrollment}
}

func (ctl *Controller) GetAllCourses(c *fiber.Ctx) error {
	courses, err := ctl.catalog.ListActiveCourses(c.UserContext())
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses retrieved successfully", courses)
}

func (ctl *Controller) GetCourse(c *fiber.Ctx) error {
	course, err := ctl.catalog.GetCourse(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course retrieved successfully", course)
}

func (ctl *Controller) CreateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourse").(*courseValidator.CreateCourseRequest)

	course, err := ctl.catalog.CreateCourse(c.UserContext(), services.CourseInput{
		CourseID:     reqData.CourseID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Duration:     reqData.Duration,
		InstructorID: reqData.Instructor,
		Price:        *reqData.Price,
		Category:     reqData.Category,
		Level:        reqData.Level,
		Thumbnail:    reqData.Thumbnail,
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully", course)
}

func (ctl *Controller) UpdateCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedCourseUpdate").(*courseValidator.UpdateCourseRequest)

	course, err := ctl.catalog.UpdateCourse(c.UserContext(), c.Params("id"), services.CoursePatch{
		CourseID:     reqData.CourseID,
		Title:        reqData.Title,
		Description:  reqData.Description,
		Duration:     reqData.Duration,
		InstructorID: reqData.Instructor,
		Price:        reqData.Price,
		Category:     reqData.Category,
		Level:        reqData.Level,
		Thumbnail:    reqData.Thumbnail,
		IsActive:     reqData.IsActive,
	})
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully", course)
}

func (ctl *Controller) DeleteCourse(c *fiber.Ctx) error {
	if err := ctl.catalog.DeleteCourse(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully", nil)
}

func (ctl *Controller) CancelCourse(c *fiber.Ctx) error {
	course, err := ctl.catalog.CancelCourse(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course cancelled successfully", course)
}

func (ctl *Controller) EnrollCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEnrollment").(*courseValidator.EnrollmentRequest)

	entry, err := ctl.enrollment.Enroll(c.UserContext(), reqData.UserID, c.Params("courseId"))
	if err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully enrolled in course", fiber.Map{
		"enrollment": entry,
	})
}

func (ctl *Controller) UnenrollCourse(c *fiber.Ctx) error {
	reqData := c.Locals("validatedEnrollment").(*courseValidator.EnrollmentRequest)

	if err := ctl.enrollment.Unenroll(c.UserContext(), reqData.UserID, c.Params("courseId")); err != nil {
		return err
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Successfully unenrolled from course", nil)
}
