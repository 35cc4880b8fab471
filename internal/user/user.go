// Package user owns registration, login and session resolution, and the
// HTTP handlers and middleware built on them.
package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/SergeyParamoshkin/news/internal/model"
	"github.com/SergeyParamoshkin/news/internal/session"
	"github.com/SergeyParamoshkin/news/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("username or password incorrect")
	ErrConflict           = errors.New("username already exists")
	ErrUnauthorized       = errors.New("unauthorized")
)

type Service struct {
	users  store.Users
	tokens session.Issuer
}

func NewService(users store.Users, tokens session.Issuer) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register stores a new account. The password does not matter for the
// conflict check.
func (s *Service) Register(ctx context.Context, username, password string) (model.User, error) {
	u, err := s.users.CreateUser(ctx, model.User{Username: username, Password: password})
	if errors.Is(err, store.ErrConflict) {
		return model.User{}, ErrConflict
	}
	if err != nil {
		return model.User{}, fmt.Errorf("registering %q: %w", username, err)
	}

	return u, nil
}

// Login returns a token for the user whose username and password both
// match exactly. Unknown users and wrong passwords yield the same error.
func (s *Service) Login(ctx context.Context, username, password string) (string, model.User, error) {
	u, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return "", model.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return "", model.User{}, fmt.Errorf("looking up %q: %w", username, err)
	}
	if u.Password != password {
		return "", model.User{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(u)
	if err != nil {
		return "", model.User{}, fmt.Errorf("issuing token: %w", err)
	}

	return token, u, nil
}

// Authenticate resolves a token to an existing user.
func (s *Service) Authenticate(ctx context.Context, token string) (model.User, error) {
	if token == "" {
		return model.User{}, ErrUnauthorized
	}

	id, err := s.tokens.Parse(token)
	if err != nil {
		return model.User{}, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	u, err := s.users.GetUser(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return model.User{}, ErrUnauthorized
	}
	if err != nil {
		return model.User{}, fmt.Errorf("looking up user %d: %w", id, err)
	}

	return u, nil
}

func (s *Service) List(ctx context.Context) ([]model.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *Service) Get(ctx context.Context, id int64) (model.User, error) {
	return s.users.GetUser(ctx, id)
}
