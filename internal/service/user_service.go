package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"threadly/internal/models"
	"threadly/internal/notifications"
	"threadly/internal/observability"
	"threadly/internal/repository"
	"threadly/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/crypto/bcrypt"
)

// Client-facing messages.
const (
	MsgUserExists         = "User already exists"
	MsgInvalidCredentials = "Invalid username or password"
	MsgSelfFollow         = "You cannot follow/unfollow yourself"
	MsgUpdateForbidden    = "You are not authorized to update this user."
	MsgIdentityTaken      = "Username or email already taken"
)

type UserService struct {
	userRepo   repository.UserRepository
	followRepo repository.FollowRepository
	notifier   *notifications.Notifier
	hashCost   int
}

type SignupInput struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Username string `json:"username" validate:"notblank,max=50"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,bcryptlen"`
}

type LoginInput struct {
	Username string `json:"username" validate:"notblank"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileInput holds optional profile fields. Blank fields are left
// unchanged.
type UpdateProfileInput struct {
	Name       string `json:"name" validate:"omitempty,max=100"`
	Username   string `json:"username" validate:"omitempty,max=50"`
	Email      string `json:"email" validate:"omitempty,email,max=255"`
	Password   string `json:"password" validate:"omitempty,min=6,bcryptlen"`
	Bio        string `json:"bio" validate:"omitempty,max=500"`
	ProfilePic string `json:"profilePic" validate:"omitempty,max=2048"`
}

// FollowResult reports the outcome of a follow toggle.
type FollowResult struct {
	Message string               `json:"message"`
	Outcome models.ToggleOutcome `json:"outcome"`
}

func NewUserService(userRepo repository.UserRepository, followRepo repository.FollowRepository, notifier *notifications.Notifier) *UserService {
	return &UserService{
		userRepo:   userRepo,
		followRepo: followRepo,
		notifier:   notifier,
		hashCost:   bcrypt.DefaultCost,
	}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

func (s *UserService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewValidationError(MsgUserExists)
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewValidationError(MsgUserExists)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", models.NewValidationError(fmt.Sprintf("password must be at most %d bytes long", validation.MaxPasswordBytes))
	}
	if err != nil {
		return "", models.NewInternalError(err)
	}
	return string(hash), nil
}

// Login checks credentials. Unknown usernames and wrong passwords produce the
// same error.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == models.CodeNotFound {
			return nil, models.NewUnauthorizedError(MsgInvalidCredentials)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthorizedError(MsgInvalidCredentials)
	}
	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, viewer *models.User, targetID string, in UpdateProfileInput) (*models.User, error) {
	if viewer.ID != targetID {
		return nil, models.NewForbiddenError(MsgUpdateForbidden)
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)
	in.Password = strings.TrimSpace(in.Password)
	in.Bio = strings.TrimSpace(in.Bio)
	in.ProfilePic = strings.TrimSpace(in.ProfilePic)
	if err := validation.Struct(in); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Username != "" {
		user.Username = in.Username
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Bio != "" {
		user.Bio = in.Bio
	}
	if in.ProfilePic != "" {
		user.ProfilePic = in.ProfilePic
	}
	if in.Password != "" {
		hash, err := s.hashPassword(in.Password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, models.NewValidationError(MsgIdentityTaken)
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, username string) (*models.Profile, error) {
	user, err := s.userRepo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	followers, following, err := s.followRepo.Counts(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &models.Profile{
		AccountView: models.AccountOf(user),
		Followers:   followers,
		Following:   following,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}, nil
}

// ToggleFollow follows targetID, or unfollows it when the edge exists.
// Self-follows are rejected before any lookup.
func (s *UserService) ToggleFollow(ctx context.Context, viewer *models.User, targetID string) (res *FollowResult, err error) {
	if viewer.ID == targetID {
		return nil, models.NewValidationError(MsgSelfFollow)
	}

	ctx, span := observability.StartSpan(ctx, "UserService.ToggleFollow",
		attribute.String("follower.id", viewer.ID),
		attribute.String("following.id", targetID),
	)
	defer func() { observability.EndSpan(span, err) }()

	if _, err := s.userRepo.GetByID(ctx, targetID); err != nil {
		return nil, err
	}

	outcome, err := s.followRepo.Toggle(ctx, viewer.ID, targetID)
	if err != nil {
		return nil, err
	}
	observability.RelationshipToggles.WithLabelValues("follow", string(outcome)).Inc()
	span.SetAttributes(attribute.String("toggle.outcome", string(outcome)))

	if outcome == models.ToggleRemoved {
		return &FollowResult{Message: "Unfollowed successfully", Outcome: outcome}, nil
	}

	if perr := s.notifier.PublishUser(ctx, targetID, notifications.Event{
		Type:          notifications.EventFollowed,
		ActorID:       viewer.ID,
		ActorUsername: viewer.Username,
	}); perr != nil {
		slog.WarnContext(ctx, "failed to publish follow notification", "user_id", targetID, "err", perr)
	}
	return &FollowResult{Message: "Followed successfully", Outcome: outcome}, nil
}
