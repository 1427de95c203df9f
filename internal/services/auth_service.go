package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/gigboard-dev/gigboard/internal/auth"
	"github.com/gigboard-dev/gigboard/internal/models"
)

var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthService handles signup and credential checks. Session issuance stays
// at the handler boundary.
type AuthService struct {
	users UserStore
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Signup creates a user. Emails are lowercased and trimmed before the
// uniqueness check, which is backed by the store's unique index.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	if !emailPattern.MatchString(email) {
		return nil, fmt.Errorf("%w: invalid email format", ErrInvalidInput)
	}

	if err := auth.ValidatePassword(password); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	passwordHash, err := auth.HashPassword(password)

	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: passwordHash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login checks credentials. Unknown email and wrong password both fail with
// ErrInvalidCredentials so the response cannot be used for enumeration.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", ErrInvalidInput)
	}

	user, err := s.users.FindByEmail(ctx, email)

	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser resolves a user id, e.g. for the dashboard.
func (s *AuthService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	return s.users.FindByID(ctx, id)
}
