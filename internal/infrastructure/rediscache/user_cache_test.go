package rediscache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreyes/auth-service/internal/domain/entity"
	"github.com/dreyes/auth-service/internal/domain/repository"
	"github.com/dreyes/auth-service/internal/infrastructure/memory"
)

func newTestCache(t *testing.T) (*UserCache, *miniredis.Miniredis, *memory.UserRepository) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	repo := memory.NewUserRepository()
	return New(repo, rdb, time.Minute, nil), mr, repo
}

func testUser() *entity.User {
	now := time.Now().UTC().Truncate(time.Second)
	return &entity.User{
		Name:      "Juan Pérez",
		Email:     "juan@example.com",
		Password:  "encrypted",
		Created:   now,
		LastLogin: now,
		Token:     "tok",
		IsActive:  true,
	}
}

func TestCreatePopulatesCache(t *testing.T) {
	cache, mr, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Create(ctx, testUser()))
	assert.True(t, mr.Exists("user:email:juan@example.com"))

	exists, err := cache.ExistsByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetByEmailReadThrough(t *testing.T) {
	cache, mr, repo := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testUser()))
	assert.False(t, mr.Exists("user:email:juan@example.com"))

	u, err := cache.GetByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Juan Pérez", u.Name)

	// Second read is served from the cache.
	assert.True(t, mr.Exists("user:email:juan@example.com"))
	again, err := cache.GetByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.ID, again.ID)
}

func TestGetByEmailMiss(t *testing.T) {
	cache, _, _ := newTestCache(t)
	_, err := cache.GetByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUpdateInvalidates(t *testing.T) {
	cache, mr, _ := newTestCache(t)
	ctx := context.Background()

	u := testUser()
	require.NoError(t, cache.Create(ctx, u))
	require.True(t, mr.Exists("user:email:juan@example.com"))

	u.LastLogin = u.LastLogin.Add(time.Hour)
	require.NoError(t, cache.Update(ctx, u))
	assert.False(t, mr.Exists("user:email:juan@example.com"))

	// Next read repopulates with the fresh record.
	fresh, err := cache.GetByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.Equal(t, u.LastLogin, fresh.LastLogin)
}

func TestCacheEntryExpires(t *testing.T) {
	cache, mr, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Create(ctx, testUser()))
	mr.FastForward(2 * time.Minute)
	assert.False(t, mr.Exists("user:email:juan@example.com"))

	// Store still answers after the entry aged out.
	exists, err := cache.ExistsByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
}
