// Package auth issues mock sessions over the user table. Plaintext
// passwords, opaque tokens, no expiry: a development stand-in kept apart so
// a real implementation can replace it behind the same surface.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/growthfolio/next-comic-store/internal/domain/repository"
	"github.com/growthfolio/next-comic-store/internal/domain/user"
	"github.com/growthfolio/next-comic-store/pkg/logger"
)

var ErrMissingField = errors.New("name, email and password are required")

type Service struct {
	users  repository.UserRepository
	logger logger.Logger
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterCommand struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Session struct {
	Token string     `json:"token"`
	User  *user.User `json:"user"`
}

func NewService(users repository.UserRepository, log logger.Logger) *Service {
	return &Service{users: users, logger: log}
}

func (s *Service) Login(ctx context.Context, creds Credentials) (*Session, error) {
	if creds.Email == "" || creds.Password == "" {
		return nil, user.ErrInvalidCredentials
	}

	u, err := s.users.FindByEmail(ctx, creds.Email)
	if errors.Is(err, user.ErrNotFound) {
		return nil, user.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if u.Password != creds.Password {
		return nil, user.ErrInvalidCredentials
	}

	s.logger.Info("user logged in", logger.String("user_id", u.ID))
	return &Session{Token: mockToken(u.ID), User: u}, nil
}

func (s *Service) Register(ctx context.Context, cmd RegisterCommand) (*Session, error) {
	if cmd.Name == "" || cmd.Email == "" || cmd.Password == "" {
		return nil, ErrMissingField
	}

	u := &user.User{
		ID:        uuid.NewString(),
		Name:      cmd.Name,
		Email:     cmd.Email,
		Password:  cmd.Password,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", logger.String("user_id", u.ID))
	return &Session{Token: mockToken(u.ID), User: u}, nil
}

func mockToken(userID string) string {
	return fmt.Sprintf("mock-token-%s-%d", userID, time.Now().UnixNano())
}
