package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/spec-kit/storefront-service/internal/auth"
	"github.com/spec-kit/storefront-service/internal/config"
	"github.com/spec-kit/storefront-service/internal/domain"
	"github.com/spec-kit/storefront-service/internal/events"
	"github.com/spec-kit/storefront-service/internal/repository"
)

// CreateUserInput carries a registration request.
type CreateUserInput struct {
	Username        string
	Password        string
	ConfirmPassword string
}

// UserService owns identity registration and lookup.
type UserService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
	bcryptCost int
	minLength  int
}

// NewUserService builds the service.
func NewUserService(cfg config.AuthConfig, users repository.UserRepository, dispatcher events.Dispatcher, logger *zap.Logger) *UserService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{
		users:      users,
		dispatcher: dispatcher,
		logger:     logger,
		bcryptCost: cfg.BcryptCost,
		minLength:  cfg.PasswordMinLength,
	}
}

// CreateUser validates the request, hashes the password and stores the user
// together with an empty cart. Nothing is written when validation fails.
func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	username := strings.TrimSpace(in.Username)

	verr := &domain.ValidationError{Fields: map[string]string{}}
	if username == "" {
		verr.Fields["username"] = "is required"
	}
	switch {
	case in.Password == "":
		verr.Fields["password"] = "is required"
	case len(in.Password) < s.minLength:
		verr.Fields["password"] = fmt.Sprintf("must be at least %d characters", s.minLength)
	case len(in.Password) > auth.MaxPasswordBytes:
		verr.Fields["password"] = fmt.Sprintf("must be at most %d bytes", auth.MaxPasswordBytes)
	}
	switch {
	case in.ConfirmPassword == "":
		verr.Fields["confirmPassword"] = "is required"
	case in.Password != "" && in.ConfirmPassword != in.Password:
		verr.Fields["confirmPassword"] = "must match password"
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	if _, err := s.users.GetByUsername(ctx, username); err == nil {
		return nil, domain.NewValidationError("username", "already exists")
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{Username: username, PasswordHash: hash}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil, domain.NewValidationError("username", "already exists")
		}
		return nil, err
	}

	s.logger.Info("user created", zap.Int64("user_id", user.ID), zap.String("username", user.Username))
	publishEvent(ctx, s.dispatcher, s.logger, events.Event{
		Type:     events.EventUserCreated,
		Username: user.Username,
		Payload:  events.UserCreatedPayload{UserID: user.ID, CartID: user.CartID},
	})
	return user, nil
}

// GetByUsername returns the identity or domain.ErrUserNotFound.
func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.users.GetByUsername(ctx, username)
}

// GetByID returns the identity or domain.ErrUserNotFound.
func (s *UserService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	return s.users.GetByID(ctx, id)
}
