package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/novavoice/novavoice_go_server/internal/model"
	"github.com/novavoice/novavoice_go_server/internal/model/dto"
	"github.com/novavoice/novavoice_go_server/internal/repository"
	"github.com/novavoice/novavoice_go_server/internal/testutil"
)

func setupAuthService(t *testing.T) (*AuthService, *gorm.DB, func()) {
	t.Helper()

	db := testutil.SetupTestDB(t)
	userRepo := repository.NewUserRepository(db)
	service := NewAuthService(userRepo, testConfig())

	cleanup := func() {
		testutil.CleanupTestDB(t, db)
	}

	return service, db, cleanup
}

func TestAuthService_Register(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	resp, err := service.Register(&dto.RegisterRequest{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.NotEmpty(t, resp.User.APIKey)
	assert.Equal(t, model.TierBasic, resp.User.SubscriptionTier)
	assert.Equal(t, 10, resp.User.QuotaInfo.DailyGenerationsLeft)
	assert.False(t, resp.User.QuotaInfo.Unlimited)

	// 密码必须以 bcrypt 哈希落库
	var user model.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
	assert.NotEqual(t, "password123", user.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("password123")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	testutil.TestUser(t, db, testutil.WithEmail("taken@example.com"))

	_, err := service.Register(&dto.RegisterRequest{
		Username: "newuser",
		Email:    "taken@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrEmailExists)
}

func TestAuthService_Register_DuplicateUsername(t *testing.T) {
	service, db, cleanup := setupAuthService(t)
	defer cleanup()

	testutil.TestUser(t, db, testutil.WithUsername("taken"))

	_, err := service.Register(&dto.RegisterRequest{
		Username: "taken",
		Email:    "fresh@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestAuthService_Login(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Register(&dto.RegisterRequest{
		Username: "bob",
		Email:    "bob@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	resp, err := service.Login(&dto.LoginRequest{
		Email:    "bob@example.com",
		Password: "password123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "bob", resp.User.Username)
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Register(&dto.RegisterRequest{
		Username: "carol",
		Email:    "carol@example.com",
		Password: "password123",
	})
	require.NoError(t, err)

	_, err = service.Login(&dto.LoginRequest{
		Email:    "carol@example.com",
		Password: "wrongpassword",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Login_UnknownEmail(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.Login(&dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "password123",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_GetUserByID_NotFound(t *testing.T) {
	service, _, cleanup := setupAuthService(t)
	defer cleanup()

	_, err := service.GetUserByID(99999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
