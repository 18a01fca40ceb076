// Package rediscache decorates a UserRepository with a read-through
// by-email cache. Entries are stored as JSON with a TTL and dropped on
// every write so login's last-login bump is never served stale.
package rediscache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/dreyes/auth-service/internal/domain/entity"
	"github.com/dreyes/auth-service/internal/domain/repository"
	"github.com/dreyes/auth-service/pkg/helpers"
)

type UserCache struct {
	next   repository.UserRepository
	rdb    *redis.Client
	ttl    time.Duration
	logger *logrus.Logger
}

func New(next repository.UserRepository, rdb *redis.Client, ttl time.Duration, logger *logrus.Logger) *UserCache {
	return &UserCache{next: next, rdb: rdb, ttl: ttl, logger: logger}
}

func emailKey(email string) string {
	return "user:email:" + email
}

func (c *UserCache) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var cached entity.User
	if ok, err := helpers.RedisGetJSON(ctx, c.rdb, emailKey(email), &cached); err == nil && ok {
		return true, nil
	}
	// A cache miss says nothing; ask the store.
	return c.next.ExistsByEmail(ctx, email)
}

func (c *UserCache) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	var cached entity.User
	ok, err := helpers.RedisGetJSON(ctx, c.rdb, emailKey(email), &cached)
	if err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("email", email).Warn("user cache read failed")
	}
	if ok {
		return &cached, nil
	}
	u, err := c.next.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	c.store(ctx, u)
	return u, nil
}

func (c *UserCache) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return c.next.GetByID(ctx, id)
}

func (c *UserCache) Create(ctx context.Context, u *entity.User) error {
	if err := c.next.Create(ctx, u); err != nil {
		return err
	}
	c.store(ctx, u)
	return nil
}

func (c *UserCache) Update(ctx context.Context, u *entity.User) error {
	if err := c.next.Update(ctx, u); err != nil {
		return err
	}
	c.invalidate(ctx, u.Email)
	return nil
}

func (c *UserCache) store(ctx context.Context, u *entity.User) {
	if err := helpers.RedisSetJSON(ctx, c.rdb, emailKey(u.Email), u, c.ttl); err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("email", u.Email).Warn("user cache write failed")
	}
}

func (c *UserCache) invalidate(ctx context.Context, email string) {
	if err := helpers.RedisDel(ctx, c.rdb, emailKey(email)); err != nil && c.logger != nil {
		c.logger.WithError(err).WithField("email", email).Warn("user cache invalidation failed")
	}
}

var _ repository.UserRepository = (*UserCache)(nil)
