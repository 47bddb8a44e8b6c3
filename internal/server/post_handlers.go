package server

import (
	"threadly/internal/models"
	"threadly/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePostResponse wraps a newly created post.
type CreatePostResponse struct {
	Message string           `json:"message"`
	Post    *models.PostView `json:"post"`
}

// ReplyResponse wraps a newly created reply.
type ReplyResponse struct {
	Message string            `json:"message"`
	Reply   *models.ReplyView `json:"reply"`
}

// CreatePost godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param request body service.CreatePostInput true "Post data"
// @Success 201 {object} CreatePostResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /posts/create [post]
func (s *Server) CreatePost(c *fiber.Ctx, viewer *models.User) error {
	var in service.CreatePostInput
	if err := parseBody(c, &in); err != nil {
		return s.respondError(c, err)
	}

	post, err := s.postService.CreatePost(c.UserContext(), viewer, in)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(CreatePostResponse{
		Message: "Post created successfully",
		Post:    post,
	})
}

// GetPost godoc
// @Summary Get a post
// @Description Returns the post with its author, likers and replies
// @Tags posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} models.PostView
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [get]
func (s *Server) GetPost(c *fiber.Ctx) error {
	post, err := s.postService.GetPost(c.UserContext(), c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(post)
}

// DeletePost godoc
// @Summary Delete a post
// @Description Deletes the caller's post together with its likes and replies
// @Tags posts
// @Produce json
// @Security CookieAuth
// @Param id path string true "Post ID"
// @Success 200 {object} MessageResponse
// @Failure 403 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/{id} [delete]
func (s *Server) DeletePost(c *fiber.Ctx, viewer *models.User) error {
	if err := s.postService.DeletePost(c.UserContext(), viewer, c.Params("id")); err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(MessageResponse{Message: "Post deleted successfully"})
}

// LikePost godoc
// @Summary Like or unlike a post
// @Tags posts
// @Produce json
// @Security CookieAuth
// @Param id path string true "Post ID"
// @Success 200 {object} service.LikeResult
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/like/{id} [post]
func (s *Server) LikePost(c *fiber.Ctx, viewer *models.User) error {
	res, err := s.postService.ToggleLike(c.UserContext(), viewer, c.Params("id"))
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(res)
}

// ReplyToPost godoc
// @Summary Reply to a post
// @Tags posts
// @Accept json
// @Produce json
// @Security CookieAuth
// @Param id path string true "Post ID"
// @Param request body service.ReplyInput true "Reply data"
// @Success 201 {object} ReplyResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 404 {object} models.ErrorResponse
// @Router /posts/reply/{id} [post]
func (s *Server) ReplyToPost(c *fiber.Ctx, viewer *models.User) error {
	var in service.ReplyInput
	if err := parseBody(c, &in); err != nil {
		return s.respondError(c, err)
	}

	reply, err := s.postService.Reply(c.UserContext(), viewer, c.Params("id"), in)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(ReplyResponse{
		Message: "Reply added successfully",
		Reply:   reply,
	})
}

// GetFeed godoc
// @Summary Get the caller's feed
// @Description Posts by followed users, newest first
// @Tags posts
// @Produce json
// @Security CookieAuth
// @Param limit query int false "Page size" default(20)
// @Param offset query int false "Offset"
// @Success 200 {array} models.PostView
// @Failure 401 {object} models.ErrorResponse
// @Router /posts/feed [get]
func (s *Server) GetFeed(c *fiber.Ctx, viewer *models.User) error {
	page := parsePagination(c, defaultFeedLimit)

	posts, err := s.postService.Feed(c.UserContext(), viewer, page.Limit, page.Offset)
	if err != nil {
		return s.respondError(c, err)
	}
	return c.JSON(posts)
}
