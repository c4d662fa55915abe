package paymentController

import (
	"github.com/gofiber/fiber/v2"

	"lms/middleware"
	"lms/repository"
	"lms/services/payment"
)

// Controller handles checkout: order creation against the provider and
// payment verification leading to enrollment.
type Controller struct {
	gateway *payment.Gateway
	content *repository.Content
}

func NewController(gateway *payment.Gateway, content *repository.Content) *Controller {
	return &Controller{gateway: gateway, content: content}
}

// CreateOrder requests a provider order for a paid course. Nothing is
// persisted locally; abandoning checkout leaves no record.
func (ctl *Controller) CreateOrder(c *fiber.Ctx) error {
	if _, ok := c.Locals("userId").(uint); !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	courseID := c.Locals("courseID").(uint)

	order, err := ctl.gateway.CreateOrder(courseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Order created successfully!", order)
}

// VerifyPayment checks the provider callback signature and, on success,
// records the enrollment. Verification failure never enrolls.
func (ctl *Controller) VerifyPayment(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	reqData, ok := c.Locals("validatedVerifyPayment").(*VerifyPaymentRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctl.gateway.VerifyPayment(reqData.OrderID, reqData.PaymentID, reqData.Signature); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	course, err := ctl.content.CourseByID(reqData.CourseID)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if course == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	enrollment, err := ctl.gateway.ConfirmEnrollment(userID, reqData.CourseID, course.Price)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", enrollment)
}

// VerifyPaymentRequest is the provider callback payload.
type VerifyPaymentRequest struct {
	CourseID  uint   `json:"course_id"`
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}
