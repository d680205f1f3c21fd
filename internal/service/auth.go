package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jonylazarte/ecommerce-page/internal/common"
	"github.com/jonylazarte/ecommerce-page/internal/model"
	"github.com/jonylazarte/ecommerce-page/internal/repository/sessions"
	"github.com/jonylazarte/ecommerce-page/internal/repository/users"
)

const (
	bcryptCost = 12
	sessionTTL = 7 * 24 * time.Hour
)

type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*model.SessionPayload, error)
}

type authService struct {
	users    users.Repository
	sessions sessions.Repository
	secret   []byte
	now      func() time.Time
}

func NewAuthService(u users.Repository, s sessions.Repository, secret string) AuthService {
	return &authService{users: u, sessions: s, secret: []byte(secret), now: time.Now}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register creates the user and logs them in, returning the new user together
// with a session token.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, "", common.ErrEmailTaken
	} else if !errors.Is(err, common.ErrNotFound) {
		return nil, "", err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleUser,
	}
	user, err = s.users.Create(ctx, user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// Login verifies credentials and issues a session. Unknown email and wrong
// password surface the same generic error.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, "", common.ErrInvalidCredentials
		}
		return nil, "", err
	}
	if !CheckPassword(password, user.PasswordHash) {
		return nil, "", common.ErrInvalidCredentials
	}

	token, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

func (s *authService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

type sessionClaims struct {
	jwt.RegisteredClaims
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
}

// issueSession signs a token embedding {user_id, email, role} and persists a
// matching session row with a 7 day expiry.
func (s *authService) issueSession(ctx context.Context, user *model.User) (string, error) {
	now := s.now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(sessionTTL)),
		},
		UserID: user.ID,
		Email:  user.Email,
		Role:   user.Role,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}

	session := &model.Session{
		Token:     token,
		UserID:    user.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}
	return token, nil
}

// ValidateSession resolves a token to its payload. The session row is
// authoritative: a signed token whose row was deleted or expired is rejected
// regardless of its signature.
func (s *authService) ValidateSession(ctx context.Context, token string) (*model.SessionPayload, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidSession
		}
		return nil, err
	}
	if session.ExpiresAt.Before(s.now()) {
		return nil, common.ErrInvalidSession
	}

	claims := &sessionClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		return nil, common.ErrInvalidSession
	}

	return &model.SessionPayload{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
	}, nil
}
