package middleware

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"

	"github.com/cliniccare/clinic-api/models"
	"github.com/cliniccare/clinic-api/scheduler"
)

// Protected resolves the bearer token and stores the caller's identity in
// request locals. Requests with a missing, malformed or expired token never
// reach the handler.
func Protected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   []byte(jwtSecret()),
		ErrorHandler: jwtError,
		SuccessHandler: func(c *fiber.Ctx) error {
			token, ok := c.Locals("user").(*jwt.Token)
			if !ok {
				return unauthorized(c, "No authentication token")
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return unauthorized(c, "Invalid token claims")
			}

			userID, err := extractUserID(claims)
			if err != nil {
				return unauthorized(c, "Invalid user ID in token")
			}
			role, err := extractRole(claims)
			if err != nil {
				return unauthorized(c, "Invalid role in token")
			}

			c.Locals("userID", userID)
			c.Locals("role", role)
			return c.Next()
		},
	})
}

// RequireRole rejects callers whose token role is not in the allowed set.
// The role comes from the verified token, so no account lookup is needed.
func RequireRole(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(models.Role)
		if !ok {
			return unauthorized(c, "User role not found in context")
		}
		for _, r := range roles {
			if role == r {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error": "You don't have the required role to perform this action",
		})
	}
}

// CurrentIdentity rebuilds the engine identity from request locals.
func CurrentIdentity(c *fiber.Ctx) (scheduler.Identity, error) {
	userID, ok := c.Locals("userID").(uint)
	if !ok {
		return scheduler.Identity{}, scheduler.ErrUnauthenticated
	}
	role, ok := c.Locals("role").(models.Role)
	if !ok {
		return scheduler.Identity{}, scheduler.ErrUnauthenticated
	}
	return scheduler.Identity{SubjectID: userID, Role: role}, nil
}

func jwtSecret() string {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "solid_secret_key" // Replace with secure key in production
	}
	return secret
}

// extractUserID handles multiple potential formats of user ID in token
func extractUserID(claims jwt.MapClaims) (uint, error) {
	idVal := claims["id"]
	if idVal == nil {
		return 0, fmt.Errorf("no ID found in claims")
	}

	switch v := idVal.(type) {
	case float64:
		return uint(v), nil
	case string:
		parsed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("could not parse ID string: %v", err)
		}
		return uint(parsed), nil
	default:
		return 0, fmt.Errorf("unsupported ID type: %T", v)
	}
}

// extractRole pulls the role claim and rejects anything outside the closed set.
func extractRole(claims jwt.MapClaims) (models.Role, error) {
	roleVal, ok := claims["role"].(string)
	if !ok {
		return "", fmt.Errorf("no role found in claims")
	}
	role := models.Role(roleVal)
	if !role.Valid() {
		return "", fmt.Errorf("unknown role %q", roleVal)
	}
	return role, nil
}

func unauthorized(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error": message,
	})
}

// jwtError handles JWT errors
func jwtError(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"error":   "Unauthorized",
		"message": "Invalid or expired token",
	})
}
