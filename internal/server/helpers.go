package server

import (
	"context"
	"time"

	"bloglist/internal/middleware"
	"bloglist/internal/models"

	"github.com/gofiber/fiber/v2"
)

const requestTimeout = 5 * time.Second

// requestContext derives the store context for a handler from the request's
// user context so request ids and trace spans flow into repository calls.
func requestContext(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.UserContext(), requestTimeout)
}

// parseBody decodes the JSON request body into dest. Decoding failures are
// reported as validation errors.
func parseBody(c *fiber.Ctx, dest any) error {
	if len(c.Body()) == 0 {
		return nil
	}
	if err := c.BodyParser(dest); err != nil {
		return models.NewValidationError("invalid request body")
	}
	return nil
}

// currentUser returns the user stored by UserExtractor. Routes that call it
// must be mounted behind UserExtractor.
func currentUser(c *fiber.Ctx) (*models.UserSummary, error) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		return nil, models.NewUnauthorizedError("token missing")
	}
	return user, nil
}
