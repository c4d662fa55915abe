package middleware

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"lms/apperrors"
)

func JsonResponse(c *fiber.Ctx, statusCode int, status bool, message string, data interface{}) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"status":  status,
		"message": message,
		"data":    data,
	})
}

func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return JsonResponse(c, fiber.StatusUnprocessableEntity, false, "Validation failed!", errors)
}

// ErrorResponse renders a service error. The stable error code goes out
// with the human message; internal causes are logged, never returned.
func ErrorResponse(c *fiber.Ctx, err error) error {
	var e *apperrors.Error
	kind := apperrors.KindOf(err)
	code := apperrors.CodeOf(err)
	message := "Something went wrong!"

	if errors.As(err, &e) {
		message = e.Message
		if e.Err != nil {
			log.Printf("[%s] %v", code, e.Err)
		}
	} else {
		log.Printf("unhandled error: %v", err)
	}

	return c.Status(statusFor(kind)).JSON(fiber.Map{
		"status":  false,
		"message": message,
		"code":    code,
		"data":    nil,
	})
}

func statusFor(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindAuthorization:
		return fiber.StatusForbidden
	case apperrors.KindConflict:
		return fiber.StatusConflict
	case apperrors.KindExternal:
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}
