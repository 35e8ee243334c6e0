package service

import (
	"context"
	"testing"
	"time"

	"skirent-backend/internal/domain"
	"skirent-backend/internal/repository"
	"skirent-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

func newTestTokens() security.TokenManager {
	return security.NewTokenManager("test-secret", time.Hour)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		r := newTestRepos()
		r.users.On("GetByEmail", ctx, "new@skirent.test").Return(nil, repository.ErrNotFound)
		r.users.On("Create", ctx, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*domain.User)
				u.ID = 5
				assert.Equal(t, domain.RoleCustomer, u.Role)
				assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("hunter2hunter2")))
			}).Return(nil)

		svc := NewAuthService(r.bundle(), newTestTokens())
		user, token, err := svc.Register(ctx, RegisterInput{
			FirstName: "Iva",
			Email:     " New@Skirent.Test ",
			Password:  "hunter2hunter2",
		})
		assert.NoError(t, err)
		assert.Equal(t, int32(5), user.ID)
		assert.Equal(t, "new@skirent.test", user.Email)
		assert.NotEmpty(t, token)
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		r := newTestRepos()
		r.users.On("GetByEmail", ctx, "dup@skirent.test").Return(&domain.User{ID: 1}, nil)

		svc := NewAuthService(r.bundle(), newTestTokens())
		_, _, err := svc.Register(ctx, RegisterInput{Email: "dup@skirent.test", Password: "hunter2hunter2"})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})

	t.Run("ShortPassword", func(t *testing.T) {
		r := newTestRepos()
		svc := NewAuthService(r.bundle(), newTestTokens())
		_, _, err := svc.Register(ctx, RegisterInput{Email: "x@skirent.test", Password: "short"})
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("hunter2hunter2"), bcrypt.MinCost)
	stored := &domain.User{ID: 5, Email: "iva@skirent.test", PasswordHash: string(hash), Role: domain.RoleWorker}

	t.Run("Success", func(t *testing.T) {
		r := newTestRepos()
		r.users.On("GetByEmail", ctx, "iva@skirent.test").Return(stored, nil)

		tokens := newTestTokens()
		svc := NewAuthService(r.bundle(), tokens)
		user, token, err := svc.Login(ctx, "iva@skirent.test", "hunter2hunter2")
		assert.NoError(t, err)
		assert.Equal(t, int32(5), user.ID)

		claims, err := tokens.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, int32(5), claims.UserID)
		assert.Equal(t, string(domain.RoleWorker), claims.Role)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		r := newTestRepos()
		r.users.On("GetByEmail", ctx, "iva@skirent.test").Return(stored, nil)

		svc := NewAuthService(r.bundle(), newTestTokens())
		_, _, err := svc.Login(ctx, "iva@skirent.test", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		r := newTestRepos()
		r.users.On("GetByEmail", ctx, "ghost@skirent.test").Return(nil, repository.ErrNotFound)

		svc := NewAuthService(r.bundle(), newTestTokens())
		_, _, err := svc.Login(ctx, "ghost@skirent.test", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
