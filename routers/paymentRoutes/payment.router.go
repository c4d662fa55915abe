package paymentRoutes

import (
	"github.com/gofiber/fiber/v2"

	paymentController "lms/controllers/payment"
	"lms/middleware"
	paymentValidator "lms/validators/payment"
)

func SetupPaymentRoutes(app *fiber.App, auth *middleware.Auth, ctl *paymentController.Controller) {
	group := app.Group("/payment", auth.RequireAuth)

	group.Post("/order/:id", paymentValidator.CourseID(), ctl.CreateOrder)
	group.Post("/verify", paymentValidator.VerifyPayment(), ctl.VerifyPayment)
}
