package middleware

import (
	"context"
	"strings"

	"bloglist/internal/models"
	"bloglist/internal/token"

	"github.com/gofiber/fiber/v2"
)

// Fiber locals populated by the auth stages.
const (
	TokenLocal = "token"
	UserLocal  = "user"
)

const bearerPrefix = "bearer "

// TokenVerifier validates a raw bearer token.
type TokenVerifier interface {
	Verify(tokenString string) (*token.Claims, error)
}

// UserFinder resolves a token subject to its owner projection. It returns
// nil, nil when the user does not exist.
type UserFinder interface {
	FindSummary(ctx context.Context, id string) (*models.UserSummary, error)
}

// TokenExtractor stores the bearer token from the Authorization header in
// locals. It never rejects a request.
func TokenExtractor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get(fiber.HeaderAuthorization)
		if len(auth) >= len(bearerPrefix) && strings.EqualFold(auth[:len(bearerPrefix)], bearerPrefix) {
			c.Locals(TokenLocal, auth[len(bearerPrefix):])
		}
		return c.Next()
	}
}

// UserExtractor rejects requests without a valid token for an existing user
// and stores that user in locals.
func UserExtractor(verifier TokenVerifier, users UserFinder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw, _ := c.Locals(TokenLocal).(string)
		if raw == "" {
			AuthFailures.WithLabelValues("missing").Inc()
			return models.RespondWithError(c, models.NewUnauthorizedError("token missing"))
		}

		claims, err := verifier.Verify(raw)
		if err != nil {
			AuthFailures.WithLabelValues("invalid").Inc()
			return models.RespondWithError(c, models.NewUnauthorizedError("token invalid"))
		}

		user, err := users.FindSummary(c.UserContext(), claims.UserID)
		if err != nil {
			return err
		}
		if user == nil {
			AuthFailures.WithLabelValues("unknown_user").Inc()
			return models.RespondWithError(c, models.NewUnauthorizedError("user not found"))
		}

		c.Locals(UserLocal, user)
		c.SetUserContext(context.WithValue(c.UserContext(), UserIDKey, user.ID))
		return c.Next()
	}
}

// CurrentUser returns the user stored by UserExtractor.
func CurrentUser(c *fiber.Ctx) (*models.UserSummary, bool) {
	user, ok := c.Locals(UserLocal).(*models.UserSummary)
	return user, ok && user != nil
}
