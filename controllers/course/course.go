package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/repository"
	"lms/services/payment"
	"lms/services/progression"
)

// Controller serves the learner-facing course surface: catalogue,
// progression views and completion.
type Controller struct {
	content *repository.Content
	engine  *progression.Engine
	gateway *payment.Gateway
}

func NewController(content *repository.Content, engine *progression.Engine, gateway *payment.Gateway) *Controller {
	return &Controller{content: content, engine: engine, gateway: gateway}
}

// ListCourses returns the published catalogue.
func (ctl *Controller) ListCourses(c *fiber.Ctx) error {
	courses, err := ctl.content.ListPublished()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

// GetCourse returns a single published course from the catalogue.
func (ctl *Controller) GetCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)

	course, err := ctl.content.CourseByID(courseID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	if course == nil || !course.IsPublished {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course fetched successfully!", course)
}

// GetCourseModules returns the learner's progression view of a course:
// modules in order with unlock and completion flags.
func (ctl *Controller) GetCourseModules(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	states, err := ctl.engine.GetModulesForCourse(courseID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully!", fiber.Map{
		"modules": states,
	})
}

// GetModuleLectures returns the module's lectures with completion
// flags. Unlock enforcement happens on the course-level view and on
// completion writes.
func (ctl *Controller) GetModuleLectures(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	states, err := ctl.engine.GetLecturesForModule(moduleID, userID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures fetched successfully!", fiber.Map{
		"lectures": states,
	})
}

// CompleteLecture marks a lecture finished for the learner.
func (ctl *Controller) CompleteLecture(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)
	lectureID := c.Locals("lectureID").(uint)

	if err := ctl.engine.CompleteLecture(userID, moduleID, lectureID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture marked as completed!", nil)
}

// MyEnrollments lists the caller's enrollments.
func (ctl *Controller) MyEnrollments(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	enrollments, err := ctl.gateway.Enrollments(userID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrollments fetched successfully!", fiber.Map{
		"enrollments": enrollments,
	})
}
