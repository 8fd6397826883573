package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nmehta6/shopassist/internal/domain"
	"github.com/nmehta6/shopassist/internal/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(userRepo *MockUserRepository) *AuthService {
	jwtManager := security.NewJWTManager("test-secret-key-with-32-chars!!", 15*time.Minute, 7*24*time.Hour)
	return NewAuthService(userRepo, jwtManager)
}

func TestAuthService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("EmailExists", ctx, "meghana@example.com").Return(false, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*domain.User")).Return(nil)

		user, err := svc.Register(ctx, domain.UserCreate{
			Username: "Meghana",
			Email:    "meghana@example.com",
			Password: "correct-horse",
		})
		require.NoError(t, err)

		assert.Equal(t, "Meghana", user.Username)
		assert.Equal(t, RoleCustomer, user.Role)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("correct-horse")))
		userRepo.AssertExpectations(t)
	})

	t.Run("email taken", func(t *testing.T) {
		userRepo := new(MockUserRepository)
		svc := newAuthService(userRepo)

		userRepo.On("EmailExists", ctx, "taken@example.com").Return(true, nil)

		_, err := svc.Register(ctx, domain.UserCreate{
			Username: "Someone",
			Email:    "taken@example.com",
			Password: "correct-horse",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})
}

func TestAuthService_LoginAndRefresh(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           uuid.New(),
		Username:     "Meghana",
		Email:        "meghana@example.com",
		PasswordHash: string(hash),
		Role:         RoleCustomer,
	}

	userRepo.On("GetByEmail", ctx, user.Email).Return(user, nil)
	userRepo.On("GetByID", ctx, user.ID).Return(user, nil)

	tokens, err := svc.Login(ctx, domain.UserLogin{Email: user.Email, Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.AccessToken)
	assert.NotEmpty(t, tokens.RefreshToken)

	refreshed, err := svc.Refresh(ctx, tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	_, err = svc.Login(ctx, domain.UserLogin{Email: user.Email, Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	ctx := context.Background()
	userRepo := new(MockUserRepository)
	svc := newAuthService(userRepo)

	userRepo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, nil)

	_, err := svc.Login(ctx, domain.UserLogin{Email: "nobody@example.com", Password: "whatever"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
