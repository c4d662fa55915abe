package authRoutes

import (
	"github.com/gofiber/fiber/v2"

	authController "lms/controllers/auth"
	authValidator "lms/validators/auth"
)

func SetupAuthRoutes(app *fiber.App, ctl *authController.Controller) {
	authGroup := app.Group("/auth")

	authGroup.Post("/signup", authValidator.Signup(), ctl.Signup)
	authGroup.Post("/verify/registration", authValidator.VerifyRegistration(), ctl.VerifyRegistration)
	authGroup.Post("/resend/otp", authValidator.Resend(), ctl.ResendOTP)
	authGroup.Post("/login", authValidator.Login(), ctl.Login)
	authGroup.Post("/refresh", authValidator.Refresh(), ctl.Refresh)
	authGroup.Post("/forgot/password", authValidator.ForgotPassword(), ctl.ForgotPassword)
	authGroup.Patch("/forgot/password/verify", authValidator.VerifyReset(), ctl.VerifyResetOTP)
	authGroup.Patch("/reset/password", authValidator.ResetPassword(), ctl.ResetPassword)
}
