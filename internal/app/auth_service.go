// Package app holds the application services and business logic.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"wellness/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrInvalidCredentials indicates that the provided email or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrInvalidToken indicates a malformed, mis-signed or expired access token.
	ErrInvalidToken = errors.New("invalid or expired token")
	// ErrUserNotFound indicates that the user does not exist.
	ErrUserNotFound = errors.New("user not found")
)

// AuthService handles account management and bearer-token authentication.
type AuthService struct {
	users    domain.UserRepository
	secret   []byte
	tokenTTL time.Duration
}

// NewAuthService creates a new authentication service signing tokens with
// the given secret.
func NewAuthService(users domain.UserRepository, secret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{
		users:    users,
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// SignUp registers a new account. The account id is derived from the
// normalized email, so the same address always maps to the same id.
func (s *AuthService) SignUp(ctx context.Context, name string, age *int, email, password string) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		return nil, inputErrorf("name is required")
	}
	if age != nil && *age < 0 {
		return nil, inputErrorf("age must be zero or positive")
	}
	if !strings.Contains(email, "@") {
		return nil, inputErrorf("invalid email address %q", email)
	}
	if len(password) < 8 {
		return nil, inputErrorf("password must be at least 8 characters")
	}

	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	return s.users.Create(ctx, &domain.User{
		ID:           domain.DeriveUserID(email),
		Name:         name,
		Age:          age,
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	})
}

// Login verifies credentials and issues a signed access token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil || user == nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user.ID)
}

// Authenticate resolves a bearer token to the user it names. ErrInvalidToken
// covers malformed, mis-signed and expired tokens; ErrUserNotFound covers a
// well-formed token whose subject no longer exists.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.User, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, sub)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// UpdateProfile applies a partial profile update; nil fields are unchanged.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, name *string, age *int) (*domain.User, error) {
	if name != nil && (len(*name) < 3 || len(*name) > 100) {
		return nil, inputErrorf("name must be between 3 and 100 characters")
	}
	if age != nil && *age < 0 {
		return nil, inputErrorf("age must be zero or positive")
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if name != nil {
		user.Name = *name
	}
	if age != nil {
		user.Age = age
	}
	return s.users.Update(ctx, user)
}

// LoginWithEmail issues a token for an identity already verified upstream
// (e.g. the SSO callback), provisioning the account on first login. SSO
// accounts carry an empty password hash and cannot log in with a password.
func (s *AuthService) LoginWithEmail(ctx context.Context, email, name string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	if user == nil {
		if name == "" {
			name = email
		}
		user, err = s.users.Create(ctx, &domain.User{
			ID:        domain.DeriveUserID(email),
			Name:      name,
			Email:     email,
			CreatedAt: time.Now().UTC(),
		})
		if errors.Is(err, domain.ErrUserExists) {
			// Lost a provisioning race: fetch the winner.
			user, err = s.users.GetByEmail(ctx, email)
		}
		if err != nil {
			return "", err
		}
		if user == nil {
			return "", ErrUserNotFound
		}
	}
	return s.issueToken(user.ID)
}

// issueToken signs an HS256 JWT whose subject is the user id.
func (s *AuthService) issueToken(userID string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"sub": userID,
		"iat": now.Unix(),
		"exp": now.Add(s.tokenTTL).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}
