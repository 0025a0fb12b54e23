package server

import (
	"bloglist/internal/models"
	"bloglist/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Login handles POST /api/login
// @Summary User login
// @Description Authenticate with username and password and receive a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{username=string,password=string} true "Login request"
// @Success 200 {object} object{token=string,username=string,name=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req service.LoginInput
	if err := parseBody(c, &req); err != nil {
		// Credentials that cannot be decoded cannot match a user.
		return models.NewUnauthorizedError("invalid username or password")
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	result, err := s.authService.Login(ctx, req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(result)
}
