package adminController

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/services/instructor"
)

// Controller exposes the admin side of the instructor lifecycle.
// Routes are guarded by the ADMIN role middleware.
type Controller struct {
	lifecycle *instructor.Lifecycle
}

func NewController(lifecycle *instructor.Lifecycle) *Controller {
	return &Controller{lifecycle: lifecycle}
}

func (ctl *Controller) ListPending(c *fiber.Ctx) error {
	pending, err := ctl.lifecycle.ListPending()
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch pending instructors!", nil)
	}

	for i := range pending {
		pending[i].Password = ""
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending instructors fetched successfully!", fiber.Map{
		"instructors": pending,
	})
}

func (ctl *Controller) Approve(c *fiber.Ctx) error {
	userID := c.Locals("instructorID").(uint)
	if err := ctl.lifecycle.Approve(userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor approved.", nil)
}

func (ctl *Controller) Reject(c *fiber.Ctx) error {
	userID := c.Locals("instructorID").(uint)
	if err := ctl.lifecycle.Reject(userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor rejected.", nil)
}

func (ctl *Controller) Block(c *fiber.Ctx) error {
	userID := c.Locals("instructorID").(uint)
	if err := ctl.lifecycle.Block(userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor blocked.", nil)
}

func (ctl *Controller) Unblock(c *fiber.Ctx) error {
	userID := c.Locals("instructorID").(uint)
	if err := ctl.lifecycle.Unblock(userID); err != nil {
		return middleware.ErrorResponse(c, err)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Instructor unblocked.", nil)
}
