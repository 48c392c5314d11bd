package middleware

import (
	"strings"

	"go-inventory-ledger/internal/model"
	"go-inventory-ledger/internal/repository"
	"go-inventory-ledger/pkg/jwt"
	"go-inventory-ledger/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocalKey = "current_user"

// CurrentUser returns the identity RequireAuth resolved for this request.
func CurrentUser(c *fiber.Ctx) *model.User {
	user, _ := c.Locals(userLocalKey).(*model.User)
	return user
}

// RequireAuth validates the bearer credential and re-reads the identity fresh
// from the store, so deactivation takes effect immediately without token
// revocation. Inactive identities are treated as not authenticated.
func RequireAuth(users repository.UserRepository, issuer *jwt.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Fail(c, fiber.StatusUnauthorized, "Missing authorization token")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return response.Fail(c, fiber.StatusUnauthorized, "Invalid authorization format. Use: Bearer <token>")
		}

		userID, err := issuer.Verify(parts[1])
		if err != nil {
			return response.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := users.FindByID(userID)
		if err != nil {
			return response.Fail(c, fiber.StatusUnauthorized, "Invalid or expired token")
		}
		if !user.IsActive {
			return response.Fail(c, fiber.StatusUnauthorized, "Account is inactive")
		}

		c.Locals(userLocalKey, user)
		return c.Next()
	}
}

// RequirePermission gates an operation class by the caller's role.
func RequirePermission(perm model.Permission) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if user == nil {
			return response.Fail(c, fiber.StatusUnauthorized, "Missing authorization token")
		}
		if !user.Role.Can(perm) {
			return response.Fail(c, fiber.StatusForbidden, "Forbidden: role "+string(user.Role)+" may not perform this operation")
		}
		return c.Next()
	}
}
