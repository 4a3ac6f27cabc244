// Package services holds the application logic on top of the query layer:
// accounts, moments, comments, and the in-memory events and chat state.
// This file implements AuthService.
package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/dmitrijs2005/baconnect/internal/common"
	"github.com/dmitrijs2005/baconnect/internal/cryptox"
	"github.com/dmitrijs2005/baconnect/internal/logging"
	"github.com/dmitrijs2005/baconnect/internal/models"
	"github.com/dmitrijs2005/baconnect/internal/query"
)

// AuthService registers accounts and tracks the signed-in user.
//
// Without an explicit login the session falls back to any stored user, so a
// device that registered once starts signed in.
type AuthService struct {
	q   *query.Queries
	log logging.Logger

	mu       sync.RWMutex
	username string
}

func NewAuthService(q *query.Queries, log logging.Logger) *AuthService {
	return &AuthService{q: q, log: log.With("module", "auth")}
}

// Register creates an account. Blank fields yield
// common.ErrRequiredFieldsMissing and an existing username
// common.ErrUsernameTaken. Username and email are trimmed.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" || email == "" || strings.TrimSpace(password) == "" {
		return nil, common.ErrRequiredFieldsMissing
	}

	hash, err := cryptox.HashPassword([]byte(password))
	if err != nil {
		return nil, err
	}

	u, err := s.q.InsertUser(ctx, &models.User{Username: username, Email: email, PasswordHash: hash})
	if err != nil {
		return nil, err
	}

	s.setSession(u.Username)
	s.log.Info(ctx, "user registered", "username", u.Username)
	return u, nil
}

// Login verifies the password and makes username the active user.
func (s *AuthService) Login(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.Verify(ctx, username, password)
	if err != nil {
		return nil, err
	}
	s.setSession(u.Username)
	return u, nil
}

// Verify checks credentials without touching the session.
func (s *AuthService) Verify(ctx context.Context, username, password string) (*models.User, error) {
	u, err := s.q.UserByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, common.ErrorNotFound) {
		return nil, common.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	ok, err := cryptox.VerifyPassword(u.PasswordHash, []byte(password))
	if err != nil {
		s.log.Warn(ctx, "stored password hash unreadable", "username", u.Username, "error", err)
		return nil, common.ErrInvalidCredentials
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}
	return u, nil
}

// CurrentUser returns the signed-in user, or common.ErrNoActiveUser.
func (s *AuthService) CurrentUser(ctx context.Context) (*models.User, error) {
	if name := s.session(); name != "" {
		u, err := s.q.UserByUsername(ctx, name)
		if err == nil {
			return u, nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		s.setSession("")
	}

	u, err := s.q.CurrentUser(ctx)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, common.ErrNoActiveUser
	}
	return u, nil
}

// Logout ends the session. With wipe every stored account is deleted.
func (s *AuthService) Logout(ctx context.Context, wipe bool) error {
	s.setSession("")
	if !wipe {
		return nil
	}
	if err := s.q.ClearUsers(ctx); err != nil {
		return err
	}
	s.log.Info(ctx, "local accounts wiped")
	return nil
}

// UpdateProfile saves description and picture of the active user. It
// reports false without writing when nothing changed.
func (s *AuthService) UpdateProfile(ctx context.Context, description, pictureURI string) (bool, error) {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return false, err
	}
	if !u.ProfileChanged(description, pictureURI) {
		return false, nil
	}

	u.Description = description
	u.ProfilePictureURI = pictureURI
	if err := s.q.UpdateUser(ctx, u); err != nil {
		return false, err
	}
	return true, nil
}

// Author returns the name used to sign comments: the active username or
// common.LocalAuthor when nobody is signed in.
func (s *AuthService) Author(ctx context.Context) string {
	u, err := s.CurrentUser(ctx)
	if err != nil {
		return common.LocalAuthor
	}
	return u.Username
}

func (s *AuthService) session() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.username
}

func (s *AuthService) setSession(username string) {
	s.mu.Lock()
	s.username = username
	s.mu.Unlock()
}
