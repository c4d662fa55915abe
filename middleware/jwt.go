package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"lms/models"
	"lms/services/token"
)

// Auth authenticates requests through the token service. Verified
// claims land in Locals as "userId" and "role".
type Auth struct {
	tokens *token.Service
}

func NewAuth(tokens *token.Service) *Auth {
	return &Auth{tokens: tokens}
}

// RequireAuth checks for a valid bearer token in the request.
func (a *Auth) RequireAuth(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Missing or invalid Authorization header", nil)
	}

	if !strings.HasPrefix(authHeader, "Bearer ") {
		return JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid Authorization header format", nil)
	}

	tokenString := authHeader[len("Bearer "):]

	claims, err := a.tokens.Verify(tokenString)
	if err != nil {
		// Token errors always mean re-authentication, never degradation.
		return ErrorResponse(c, err)
	}

	c.Locals("userId", claims.UserID)
	c.Locals("role", claims.Role)

	return c.Next()
}

// RequireRole gates a route on the caller's role. The switch is
// exhaustive over the closed role set; unknown roles never pass.
func (a *Auth) RequireRole(required models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
		}

		switch role {
		case models.RoleLearner, models.RoleInstructor, models.RoleAdmin:
			if role != required {
				return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
			}
			return c.Next()
		default:
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}
	}
}
