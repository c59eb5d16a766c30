package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Skotchmaster/storefront/internal/events"
	"github.com/Skotchmaster/storefront/internal/models"
	"github.com/Skotchmaster/storefront/internal/repo"
	"github.com/Skotchmaster/storefront/internal/transport"
	pkghash "github.com/Skotchmaster/storefront/pkg/hash"
	"github.com/Skotchmaster/storefront/pkg/logging"
)

type UserService struct {
	Repo   UserStore
	Tokens TokenIssuer
	Events Publisher
}

// SigninResult.Token is empty when no token could be issued.
type SigninResult struct {
	User  *models.User
	Token string
}

func (s *UserService) Signup(ctx context.Context, req transport.SignupRequest) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "user.signup")

	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)
	if email == "" || req.Password == "" || username == "" {
		return nil, fmt.Errorf("%w: email, password and username are required", ErrValidation)
	}

	role := req.UserRole
	if role == "" {
		role = models.RoleUser
	}
	if role != models.RoleUser && role != models.RoleAdmin {
		return nil, fmt.Errorf("%w: %w %q", ErrValidation, ErrInvalidRole, role)
	}

	if _, err := s.Repo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", ErrConflict)
	} else if !errors.Is(err, repo.ErrNotFound) {
		return nil, err
	}

	pwHash, err := pkghash.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	now := time.Now().UTC()
	user := &models.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: pwHash,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Repo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return nil, err
	}

	if token, ok := s.issue(ctx, l, user); ok {
		user.AccessToken = token
	}

	publish(ctx, s.Events, events.TopicUser, user.ID, map[string]any{
		"type": events.UserRegistered, "userID": user.ID, "email": user.Email, "role": user.Role,
	})
	return user, nil
}

func (s *UserService) Signin(ctx context.Context, req transport.SigninRequest) (*SigninResult, error) {
	l := logging.FromContext(ctx).With("svc", "user.signin")

	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}

	user, err := s.Repo.FindUserByEmail(ctx, email)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !pkghash.CheckPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	res := &SigninResult{User: user}
	if token, ok := s.issue(ctx, l, user); ok {
		user.AccessToken = token
		res.Token = token
	}

	publish(ctx, s.Events, events.TopicUser, user.ID, map[string]any{
		"type": events.UserSignedIn, "userID": user.ID, "withToken": res.Token != "",
	})
	return res, nil
}

// issue signs and stores a fresh access token. Any failure is logged and
// reported as ok=false; the account operation itself still succeeds.
func (s *UserService) issue(ctx context.Context, l *slog.Logger, user *models.User) (string, bool) {
	if s.Tokens == nil {
		l.Warn("token_issue_failed", "user_id", user.ID, "reason", "no token issuer configured")
		return "", false
	}
	token, err := s.Tokens.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		l.Warn("token_issue_failed", "user_id", user.ID, "error", err)
		return "", false
	}
	if err := s.Repo.SetAccessToken(ctx, user.ID, token); err != nil {
		l.Warn("token_store_failed", "user_id", user.ID, "error", err)
		return "", false
	}
	return token, true
}

func (s *UserService) GetAllUsers(ctx context.Context) ([]models.User, error) {
	return s.Repo.ListUsers(ctx)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	user, err := s.Repo.GetUser(ctx, id)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}
