package services

import (
	"context"
	"errors"
	"strings"

	"github.com/archivo-digital/apiserver/internal/store"
	"github.com/archivo-digital/apiserver/types"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 6
	passwordHashCost  = 10
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
}

// UserService registers accounts and verifies credentials. It issues no
// session; callers keep whatever authorization state they need.
type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// Signup creates an account with a bcrypt-hashed password.
func (s *UserService) Signup(ctx context.Context, email, password, role string) (types.User, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return types.User{}, clientError(ErrValidation, "email is required")
	}
	if len(password) < minPasswordLength {
		return types.User{}, clientError(ErrValidation, "password must be at least %d characters", minPasswordLength)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return types.User{}, clientError(ErrConflict, "email is already registered")
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return types.User{}, err
	}

	user, err := s.repo.Create(ctx, types.User{
		Email:        email,
		Role:         role,
		PasswordHash: string(hashed),
	})
	if errors.Is(err, store.ErrDuplicate) {
		return types.User{}, clientError(ErrConflict, "email is already registered")
	}
	return user, err
}

// Login returns the account matching email when password verifies against
// its stored hash. The returned user never carries the hash.
func (s *UserService) Login(ctx context.Context, email, password string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, clientError(ErrNotFound, "user not found")
		}
		return types.User{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return types.User{}, clientError(ErrUnauthorized, "incorrect password")
	}

	return types.User{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}
