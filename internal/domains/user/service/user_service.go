package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"yamdb-backend/internal/domains/user/model"
	"yamdb-backend/internal/domains/user/repository"
	"yamdb-backend/internal/infrastructure/queue"
	"yamdb-backend/internal/shared/permissions"
	"yamdb-backend/pkg/jwt"
	"yamdb-backend/pkg/logger"
)

type userService struct {
	repo       repository.UserRepository
	jwtManager *jwt.Manager
	enqueuer   queue.Enqueuer
}

func NewUserService(repo repository.UserRepository, jwtManager *jwt.Manager, enqueuer queue.Enqueuer) UserService {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
		enqueuer:   enqueuer,
	}
}

// generateConfirmationCode returns a random 32-hex-char code.
func generateConfirmationCode() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate confirmation code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

func (s *userService) Signup(ctx context.Context, req model.SignupRequest) (*model.SignupResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByUsername(ctx, req.Username)
	switch {
	case err == nil:
		// Known username: only the exact same identity may re-request
		// a code.
		if u.Email != req.Email {
			return nil, model.ErrUsernameTaken
		}

	case errors.Is(err, model.ErrUserNotFound):
		if _, emailErr := s.repo.GetByEmail(ctx, req.Email); emailErr == nil {
			return nil, model.ErrEmailTaken
		} else if !errors.Is(emailErr, model.ErrUserNotFound) {
			return nil, emailErr
		}

		u = &model.User{
			Username: req.Username,
			Email:    req.Email,
			Role:     permissions.RoleUser,
		}
		// The unique indexes close the create race; a concurrent
		// insert surfaces as a taken-error here.
		if err := s.repo.Create(ctx, u); err != nil {
			return nil, err
		}

	default:
		return nil, err
	}

	code, err := generateConfirmationCode()
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash confirmation code: %w", err)
	}

	now := time.Now()
	if err := s.repo.SetConfirmationCode(ctx, u.ID, string(hash), now, now.Add(model.ConfirmationCodeTTL)); err != nil {
		return nil, err
	}

	// Best-effort notification: a queue outage must not fail signup.
	if err := s.enqueuer.EnqueueConfirmationEmail(ctx, queue.ConfirmationEmailPayload{
		Email:    u.Email,
		Username: u.Username,
		Code:     code,
	}); err != nil {
		logger.Warn("failed to enqueue confirmation email", map[string]interface{}{
			"username": u.Username,
			"error":    err.Error(),
		})
	}

	return &model.SignupResponse{Username: u.Username, Email: u.Email}, nil
}

func (s *userService) IssueToken(ctx context.Context, req model.TokenRequest) (*model.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}

	if u.CodeExpired(time.Now()) {
		return nil, model.ErrExpiredCode
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*u.ConfirmationCodeHash), []byte(req.ConfirmationCode)); err != nil {
		return nil, model.ErrInvalidCode
	}

	token, err := s.jwtManager.GenerateAccessToken(u.ID, u.Username)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	if err := s.repo.MarkConfirmed(ctx, u.ID, time.Now()); err != nil {
		return nil, err
	}

	return &model.TokenResponse{Token: token}, nil
}

func (s *userService) Create(ctx context.Context, req model.CreateUserRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	role := permissions.RoleUser
	if req.Role != nil {
		role = permissions.Role(*req.Role)
	}

	u := &model.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Role:      role,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, err
	}

	return model.NewUserResponse(u), nil
}

func (s *userService) GetByUsername(ctx context.Context, username string) (*model.UserResponse, error) {
	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return model.NewUserResponse(u), nil
}

func (s *userService) List(ctx context.Context, req model.ListUsersRequest) ([]model.UserResponse, int, error) {
	req.Normalize()

	users, total, err := s.repo.List(ctx, req.Search, req.Page, req.Limit)
	if err != nil {
		return nil, 0, err
	}

	out := make([]model.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, *model.NewUserResponse(u))
	}
	return out, total, nil
}

func (s *userService) Update(ctx context.Context, username string, req model.UpdateUserRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	applyUpdate(u, req)

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return model.NewUserResponse(u), nil
}

func (s *userService) Delete(ctx context.Context, username string) error {
	return s.repo.Delete(ctx, username)
}

func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*model.UserResponse, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return model.NewUserResponse(u), nil
}

func (s *userService) UpdateProfile(ctx context.Context, identity permissions.Identity, req model.UpdateUserRequest) (*model.UserResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	// Plain users cannot promote themselves; the role field is
	// silently dropped rather than rejected.
	if req.Role != nil && !identity.CanAssignRole() {
		req.Role = nil
	}

	u, err := s.repo.GetByID(ctx, identity.ID)
	if err != nil {
		return nil, err
	}

	applyUpdate(u, req)

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	return model.NewUserResponse(u), nil
}

func (s *userService) ResolveIdentity(ctx context.Context, userID uuid.UUID) (permissions.Identity, error) {
	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return permissions.Anonymous(), err
	}
	return u.Identity(), nil
}

func applyUpdate(u *model.User, req model.UpdateUserRequest) {
	if req.FirstName != nil {
		u.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		u.LastName = *req.LastName
	}
	if req.Bio != nil {
		u.Bio = *req.Bio
	}
	if req.Role != nil {
		u.Role = permissions.Role(*req.Role)
	}
}
