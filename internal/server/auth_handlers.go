package server

import (
	"threadly/internal/auth"
	"threadly/internal/models"
	"threadly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// Signup godoc
// @Summary Register a new user
// @Description Creates an account and starts a session cookie
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.SignupInput true "Signup data"
// @Success 201 {object} models.AccountView
// @Failure 400 {object} models.ErrorResponse
// @Router /users/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var in service.SignupInput
	if err := parseBody(c, &in); err != nil {
		return s.respondError(c, err)
	}

	user, err := s.userService.Signup(c.UserContext(), in)
	if err != nil {
		return s.respondError(c, err)
	}

	if err := s.startSession(c, user); err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(models.AccountOf(user))
}

// Login godoc
// @Summary Log in
// @Description Verifies credentials and starts a session cookie
// @Tags users
// @Accept json
// @Produce json
// @Param request body service.LoginInput true "Credentials"
// @Success 200 {object} models.AccountView
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /users/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var in service.LoginInput
	if err := parseBody(c, &in); err != nil {
		return s.respondError(c, err)
	}

	user, err := s.userService.Login(c.UserContext(), in)
	if err != nil {
		return s.respondError(c, err)
	}

	if err := s.startSession(c, user); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(models.AccountOf(user))
}

// Logout godoc
// @Summary Log out
// @Description Replaces the session cookie with an expired one. The token itself is not revoked.
// @Tags users
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /users/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c, s.config.CookieSecure)
	return c.JSON(MessageResponse{Message: "Logged out successfully"})
}

func (s *Server) startSession(c *fiber.Ctx, user *models.User) error {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return models.NewInternalError(err)
	}
	auth.SetSessionCookie(c, token, expiresAt, s.config.CookieSecure)
	return nil
}
