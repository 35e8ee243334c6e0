package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"
	"skirent-backend/internal/security"

	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	repos  repository.Repositories
	tokens security.TokenManager
}

func NewAuthService(repos repository.Repositories, tokens security.TokenManager) AuthService {
	return &authService{repos: repos, tokens: tokens}
}

func (s *authService) Register(ctx context.Context, input RegisterInput) (*domain.User, string, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, "", Validationf("email is required")
	}
	if len(input.Password) < 8 {
		return nil, "", Validationf("password must be at least 8 characters")
	}
	if _, err := s.repos.Users.GetByEmail(ctx, email); err == nil {
		return nil, "", Validationf("email %s is already registered", email)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Email:        email,
		Phone:        input.Phone,
		PasswordHash: string(hash),
		Role:         domain.RoleCustomer,
	}
	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.repos.Users.GetByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateAccessToken(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}
