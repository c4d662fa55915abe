package courseValidator

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	controllers "lms/controllers/course"
	"lms/middleware"
)

// idParam parses a positive integer route parameter into Locals.
func idParam(param, local string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := strings.TrimSpace(c.Params(param))
		if raw == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "ID is required!", nil)
		}

		id, err := strconv.Atoi(raw)
		if err != nil || id <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid ID!", nil)
		}

		c.Locals(local, uint(id))
		return c.Next()
	}
}

func CourseID() fiber.Handler  { return idParam("id", "courseID") }
func ModuleID() fiber.Handler  { return idParam("id", "moduleID") }
func LectureID() fiber.Handler { return idParam("lecture_id", "lectureID") }

// CompleteLecture validates both path ids of the completion route.
func CompleteLecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		moduleID, err := strconv.Atoi(strings.TrimSpace(c.Params("module_id")))
		if err != nil || moduleID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Module ID!", nil)
		}
		lectureID, err := strconv.Atoi(strings.TrimSpace(c.Params("lecture_id")))
		if err != nil || lectureID <= 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid Lecture ID!", nil)
		}

		c.Locals("moduleID", uint(moduleID))
		c.Locals("lectureID", uint(lectureID))
		return c.Next()
	}
}

// Course validates the create-course body.
func Course() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}
		if reqData.Price < 0 {
			errors["price"] = "Price cannot be negative!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// CourseUpdate validates the update-course body.
func CourseUpdate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.CourseUpdateRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if reqData.Price < 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"price": "Price cannot be negative!",
			})
		}

		c.Locals("validatedCourseUpdate", reqData)
		return c.Next()
	}
}

// Module validates the module body used by create and update.
func Module() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Title)) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title is required!",
			})
		}

		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// Lecture validates the lecture body used by create and update.
func Lecture() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.LectureRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(strings.TrimSpace(reqData.Title)) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title is required!",
			})
		}

		c.Locals("validatedLecture", reqData)
		return c.Next()
	}
}

// Reorder validates the full-permutation reorder body. Set membership
// is checked by the hierarchy manager; this only rejects empty input.
func Reorder() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(controllers.ReorderRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if len(reqData.OrderedIDs) == 0 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"ordered_ids": "Ordered ID list is required!",
			})
		}

		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}
