package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aquatrack/backend-go/internal/auth"
	"github.com/aquatrack/backend-go/internal/domain"
	"github.com/aquatrack/backend-go/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// RegisterInput is the signup form payload.
type RegisterInput struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	DisplayName string `json:"display_name"`
}

// LoginInput is the login form payload.
type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// ErrInvalidCredentials covers both a missing user and a wrong password,
// so login responses never reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

type UserService struct {
	users     repository.UserRepository
	jwtSecret string
	tokenTTL  time.Duration
}

func NewUserService(users repository.UserRepository, jwtSecret string, tokenTTL time.Duration) *UserService {
	return &UserService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, domain.Validationf("an account with this email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: string(hash),
		DisplayName:  strings.TrimSpace(input.DisplayName),
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login checks the credentials and returns the user plus a signed session
// token.
func (s *UserService) Login(ctx context.Context, input LoginInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.GenerateToken(s.jwtSecret, s.tokenTTL, user)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}
