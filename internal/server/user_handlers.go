package server

import (
	"threadly/internal/models"
	"threadly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// ToggleFollow godoc
// @Summary Follow or unfollow a user
// @Description Follows the user, or unfollows when already following
// @Tags users
// @Produce json
// @Security CookieAuth
// @Param id path string true "User ID"
// @Success 200 {object} service.FollowResult
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /users/follow/{id} [post]
func (s *Server) ToggleFollow(c *fiber.Ctx, viewer *models.User) error {
	res, err := s.userService.ToggleFollow(c.UserContext(), viewer, c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(res)
}

// UpdateUser godoc
// @Summary Update a profile
// @Description Updates the caller's own profile. Blank fields are ignored.
// @Tags users
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "User ID"
// @Param request body service.UpdateProfileInput true "Profile fields"
// @Success 200 {object} models.AccountView
// @Failure 400 {object} models.ErrorResponse
// @Failure 403 {object} models.ErrorResponse
// @Router /users/update/{id} [post]
func (s *Server) UpdateUser(c *fiber.Ctx, viewer *models.User) error {
	var in service.UpdateProfileInput
	if err := parseBody(c, &in); err != nil {
		return s.respondError(c, err)
	}

	user, err := s.userService.UpdateProfile(c.UserContext(), viewer, c.Params("id"), in)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(models.AccountOf(user))
}

// GetUserProfile godoc
// @Summary Get a profile by username
// @Tags users
// @Produce json
// @Security CookieAuth
// @Param username path string true "Username"
// @Success 200 {object} models.Profile
// @Failure 404 {object} models.ErrorResponse
// @Router /users/profile/{username} [get]
func (s *Server) GetUserProfile(c *fiber.Ctx, _ *models.User) error {
	profile, err := s.userService.GetProfile(c.UserContext(), c.Params("username"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(profile)
}
