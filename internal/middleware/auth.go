package middleware

import (
	"context"
	"strings"

	"openboard/internal/auth"
	"openboard/internal/models"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth returns middleware that enforces a bearer token on
// protected routes. On success the resolved user ID is stored in
// c.Locals("userID") and in the user context for logging; on failure
// the handler is never invoked.
func RequireAuth(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, ok := bearerToken(c)
		if !ok {
			AuthFailures.WithLabelValues("missing_credential").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewUnauthorizedError("Authorization required"))
		}

		userID, err := tokens.Verify(tokenString)
		if err != nil {
			AuthFailures.WithLabelValues("invalid_token").Inc()
			return models.RespondWithError(c, fiber.StatusUnauthorized, err)
		}

		c.Locals("userID", userID)
		ctx := context.WithValue(c.UserContext(), UserIDKey, userID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer x"
// header.
func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
