package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/d60-Lab/devconnect/internal/model"
	"github.com/d60-Lab/devconnect/internal/repository"
)

func setupAuthService(t *testing.T, ttl time.Duration) AuthService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}))
	return NewAuthService(repository.NewUserRepository(db), "test-secret", ttl)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := setupAuthService(t, time.Hour)

	token, err := svc.IssueToken("user-1")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyTamperedToken(t *testing.T) {
	svc := setupAuthService(t, time.Hour)

	token, err := svc.IssueToken("user-1")
	require.NoError(t, err)

	// 翻转签名的最后一个字符
	tampered := token[:len(token)-1]
	if strings.HasSuffix(token, "A") {
		tampered += "B"
	} else {
		tampered += "A"
	}
	_, err = svc.VerifyToken(tampered)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyGarbageToken(t *testing.T) {
	svc := setupAuthService(t, time.Hour)
	_, err := svc.VerifyToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyExpiredToken(t *testing.T) {
	svc := setupAuthService(t, -time.Minute)
	token, err := svc.IssueToken("user-1")
	require.NoError(t, err)

	_, err = svc.VerifyToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestIssueTokenWithoutSecret(t *testing.T) {
	svc := NewAuthService(nil, "", time.Hour)
	_, err := svc.IssueToken("user-1")
	assert.ErrorIs(t, err, ErrSigningKey)
}

func TestRegisterAndLogin(t *testing.T) {
	svc := setupAuthService(t, time.Hour)
	ctx := context.Background()

	token, err := svc.Register(ctx, "alice", "Alice@Example.com", "secret123")
	require.NoError(t, err)

	userID, err := svc.VerifyToken(token)
	require.NoError(t, err)

	user, err := svc.CurrentUser(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Name)
	assert.Equal(t, "alice@example.com", user.Email)
	assert.Contains(t, user.Avatar, "gravatar.com/avatar/")
	assert.NotEqual(t, "secret123", user.Password)

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, "alice2", "alice@example.com", "secret123")
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("login with correct password", func(t *testing.T) {
		token, err := svc.Login(ctx, "alice@example.com", "secret123")
		require.NoError(t, err)
		got, err := svc.VerifyToken(token)
		require.NoError(t, err)
		assert.Equal(t, userID, got)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "alice@example.com", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "secret123")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
