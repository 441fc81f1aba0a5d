package service

import (
	"testing"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthService(t *testing.T) *AuthService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-0123456789abcdef0123456789"
	cfg.JWT.ExpireTime = time.Hour

	return NewAuthService(repository.NewProfileRepository(db), cfg)
}

func TestRegisterAndLoginRoundTrip(t *testing.T) {
	svc := newAuthService(t)

	profile, err := svc.Register(RegisterRequest{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Password: "correct-horse",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, profile.ID)
	assert.NotEqual(t, "correct-horse", profile.Password)

	resp, err := svc.Login(LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	claims, err := util.ParseJWT(resp.Token, svc.Cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, profile.ID, claims.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)

	_, err := svc.Register(RegisterRequest{FullName: "Ada", Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{FullName: "Other", Email: "ada@example.com", Password: "different-pw"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginRejectsWrongPasswordAndDisabled(t *testing.T) {
	svc := newAuthService(t)

	profile, err := svc.Register(RegisterRequest{FullName: "Ada", Email: "ada@example.com", Password: "correct-horse"})
	require.NoError(t, err)

	_, err = svc.Login(LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	require.NoError(t, svc.ProfileRepo.Deactivate(profile.ID))
	_, err = svc.Login(LoginRequest{Email: "ada@example.com", Password: "correct-horse"})
	assert.ErrorIs(t, err, util.ErrUserDisabled)
}
