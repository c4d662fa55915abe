package controllers

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/repository"
	"lms/services/content"
	"lms/services/instructor"
)

// InstructorController covers the authoring surface. Every mutation
// passes the lifecycle gate (verified and approved) before any write.
type InstructorController struct {
	lifecycle *instructor.Lifecycle
	hierarchy *content.Manager
	content   *repository.Content
}

func NewInstructorController(lifecycle *instructor.Lifecycle, hierarchy *content.Manager, contentRepo *repository.Content) *InstructorController {
	return &InstructorController{lifecycle: lifecycle, hierarchy: hierarchy, content: contentRepo}
}

// Apply converts the caller's learner account into a pending
// instructor awaiting admin approval.
func (ctl *InstructorController) Apply(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	if err := ctl.lifecycle.Apply(userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor application submitted.", nil)
}

func (ctl *InstructorController) gate(c *fiber.Ctx) (uint, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return 0, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	if err := ctl.lifecycle.Authorize(userID); err != nil {
		return 0, middleware.ErrorResponse(c, err)
	}
	return userID, nil
}

func (ctl *InstructorController) CreateCourse(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	reqData, ok := c.Locals("validatedCourse").(*CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, cerr := ctl.hierarchy.CreateCourse(userID, content.CourseInput{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        reqData.Price,
		Currency:     reqData.Currency,
		ThumbnailURL: reqData.ThumbnailURL,
	})
	if cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

func (ctl *InstructorController) UpdateCourse(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedCourseUpdate").(*CourseUpdateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, cerr := ctl.hierarchy.UpdateCourse(courseID, userID, content.CourseInput{
		Title:        reqData.Title,
		Description:  reqData.Description,
		Price:        reqData.Price,
		Currency:     reqData.Currency,
		ThumbnailURL: reqData.ThumbnailURL,
	}, reqData.IsPublished)
	if cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

func (ctl *InstructorController) MyCourses(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	courses, cerr := ctl.content.ListByInstructor(userID)
	if cerr != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
	})
}

func (ctl *InstructorController) CreateModule(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedModule").(*ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, cerr := ctl.hierarchy.CreateModule(courseID, userID, reqData.Title, reqData.Description)
	if cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully!", module)
}

func (ctl *InstructorController) UpdateModule(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(uint)
	reqData, ok := c.Locals("validatedModule").(*ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	module, cerr := ctl.hierarchy.UpdateModule(moduleID, userID, reqData.Title, reqData.Description)
	if cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully!", module)
}

func (ctl *InstructorController) DeleteModule(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(uint)
	if cerr := ctl.hierarchy.DeleteModule(moduleID, userID); cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully!", nil)
}

// ReorderModules applies a full permutation of the course's modules.
func (ctl *InstructorController) ReorderModules(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedReorder").(*ReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if cerr := ctl.hierarchy.ReorderModules(courseID, userID, reqData.OrderedIDs); cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules reordered successfully!", nil)
}

func (ctl *InstructorController) CreateLecture(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(uint)
	reqData, ok := c.Locals("validatedLecture").(*LectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lecture, cerr := ctl.hierarchy.CreateLecture(moduleID, userID, reqData.Title, reqData.VideoURL)
	if cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Lecture created successfully!", lecture)
}

func (ctl *InstructorController) UpdateLecture(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	lectureID := c.Locals("lectureID").(uint)
	reqData, ok := c.Locals("validatedLecture").(*LectureRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	lecture, cerr := ctl.hierarchy.UpdateLecture(lectureID, userID, reqData.Title, reqData.VideoURL)
	if cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture updated successfully!", lecture)
}

func (ctl *InstructorController) DeleteLecture(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	lectureID := c.Locals("lectureID").(uint)
	if cerr := ctl.hierarchy.DeleteLecture(lectureID, userID); cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lecture deleted successfully!", nil)
}

// ReorderLectures applies a full permutation of the module's lectures.
func (ctl *InstructorController) ReorderLectures(c *fiber.Ctx) error {
	userID, err := ctl.gate(c)
	if err != nil {
		return err
	}

	moduleID := c.Locals("moduleID").(uint)
	reqData, ok := c.Locals("validatedReorder").(*ReorderRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if cerr := ctl.hierarchy.ReorderLectures(moduleID, userID, reqData.OrderedIDs); cerr != nil {
		return middleware.ErrorResponse(c, cerr)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lectures reordered successfully!", nil)
}
