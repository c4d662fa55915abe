package authController

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"

	"lms/middleware"
	"lms/models"
	"lms/repository"
	"lms/services/otp"
	"lms/services/token"
)

// Controller handles registration, login, token rotation and password
// reset. Collaborators are injected; there is no ambient state.
type Controller struct {
	accounts  *repository.Accounts
	otp       *otp.Workflow
	tokens    *token.Service
	clock     token.Clock
	saltRound int
}

func NewController(accounts *repository.Accounts, workflow *otp.Workflow, tokens *token.Service, clock token.Clock, saltRound int) *Controller {
	return &Controller{accounts: accounts, otp: workflow, tokens: tokens, clock: clock, saltRound: saltRound}
}

// Signup starts registration by mailing an OTP to the address. The
// account itself is only created once the code verifies.
func (ctl *Controller) Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctl.otp.RequestCode(reqData.Email, models.PurposeRegistration); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

// VerifyRegistration consumes the registration OTP and creates the
// account.
func (ctl *Controller) VerifyRegistration(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyRegistration").(*VerifyRegistrationRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if _, err := ctl.otp.VerifyCode(reqData.Email, reqData.Code, models.PurposeRegistration); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), ctl.saltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Name:       reqData.Name,
		Email:      reqData.Email,
		Password:   string(hashedPassword),
		Role:       models.RoleLearner,
		IsVerified: true,
	}
	if err := ctl.accounts.Create(&newUser); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	newUser.Password = ""
	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

// ResendOTP regenerates the code for either purpose.
func (ctl *Controller) ResendOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResend").(*ResendRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	if err := ctl.otp.Resend(reqData.Email, reqData.Purpose); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

func (ctl *Controller) Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*LoginRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.accounts.ByEmail(reqData.Email)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	if !user.IsVerified {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Email not verified!", nil)
	}

	if user.AccountStatus == models.StatusBlocked {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Account is blocked!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Wrong Password", nil)
	}

	if err := ctl.accounts.SetLastLogin(user.ID, ctl.clock.Now()); err != nil {
		log.Printf("Error saving last login time: %v", err)
	}

	accessToken, err := ctl.tokens.IssueAccessToken(user.ID, user.Role)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}
	refreshToken, err := ctl.tokens.IssueRefreshToken(user.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	user.Password = ""
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":          user,
		"token":         accessToken,
		"refresh_token": refreshToken,
	})
}

// Refresh rotates the refresh token. A superseded token is rejected,
// which is how replay of a stolen old token surfaces.
func (ctl *Controller) Refresh(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRefresh").(*RefreshRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	accessToken, refreshToken, err := ctl.tokens.Rotate(reqData.RefreshToken)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Token refreshed.", fiber.Map{
		"token":         accessToken,
		"refresh_token": refreshToken,
	})
}

// ForgotPassword mails a reset OTP to an existing account.
func (ctl *Controller) ForgotPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedForgotPassword").(*ForgotPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.accounts.ByEmail(reqData.Email)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Account not found!", nil)
	}

	if err := ctl.otp.RequestCode(reqData.Email, models.PurposePasswordReset); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP sent successfully.", nil)
}

// VerifyResetOTP consumes the reset OTP and returns the single-use
// grant for the follow-up password change.
func (ctl *Controller) VerifyResetOTP(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedVerifyReset").(*VerifyResetRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	grant, err := ctl.otp.VerifyCode(reqData.Email, reqData.Code, models.PurposePasswordReset)
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "OTP verified.", fiber.Map{
		"reset_grant": grant,
	})
}

// ResetPassword changes the password against a live reset grant. The
// grant is consumed whether or not it will be used again.
func (ctl *Controller) ResetPassword(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedResetPassword").(*ResetPasswordRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	user, err := ctl.accounts.ConsumeResetGrant(reqData.Email, reqData.ResetGrant, ctl.clock.Now())
	if err != nil {
		return middleware.ErrorResponse(c, err)
	}
	if user == nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Reset authorization is invalid or expired!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.NewPassword), ctl.saltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	if err := ctl.accounts.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		return middleware.ErrorResponse(c, err)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Password updated successfully.", nil)
}
