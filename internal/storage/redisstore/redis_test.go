package redisstore

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/mayukh-auth/internal/config"
	"github.com/magabrotheeeer/mayukh-auth/internal/models"
	"github.com/magabrotheeeer/mayukh-auth/internal/storage"
)

func setupTestStorage(t *testing.T) (*Storage, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	s, err := New(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, mr
}

func TestCreateUser(t *testing.T) {
	s, mr := setupTestStorage(t)
	fixed := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()

	created, err := s.CreateUser(ctx, models.User{Email: "a@x.com", PasswordHash: "h", Role: "user"})
	require.NoError(t, err)
	_, err = uuid.Parse(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", created.Email)
	assert.Equal(t, "user", created.Role)
	assert.Equal(t, fixed, created.CreatedAt)
	assert.True(t, mr.Exists("users:email:a@x.com"))

	_, err = s.CreateUser(ctx, models.User{Email: "a@x.com", PasswordHash: "other", Role: "admin"})
	require.ErrorIs(t, err, storage.ErrUserExists)

	got, err := s.GetUserByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "h", got.PasswordHash)
	assert.Equal(t, "user", got.Role)
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	s, _ := setupTestStorage(t)

	got, err := s.GetUserByEmail(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, got)
}

func TestGetUserByEmail_CorruptedDocument(t *testing.T) {
	s, mr := setupTestStorage(t)
	require.NoError(t, mr.Set("users:email:bad@x.com", "not-json"))

	got, err := s.GetUserByEmail(context.Background(), "bad@x.com")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrUserNotFound)
	assert.Nil(t, got)
}

func TestNew_InvalidAddr(t *testing.T) {
	s, err := New(context.Background(), config.RedisConnection{
		AddressRedis: "127.0.0.1:1",
		DialTimeout:  100 * time.Millisecond,
	})
	assert.Nil(t, s)
	assert.Error(t, err)
}

func TestStoreUnavailable(t *testing.T) {
	s, mr := setupTestStorage(t)
	mr.Close()

	_, err := s.CreateUser(context.Background(), models.User{Email: "a@x.com", PasswordHash: "h", Role: "user"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrUserExists)
}
