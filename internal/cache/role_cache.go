package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/ticket-marketplace/internal/domain"
	"github.com/spec-kit/ticket-marketplace/internal/repository"
)

const roleKeyPrefix = "role:"

type cachedRole struct {
	Role    domain.Role `json:"role"`
	IsFraud bool        `json:"is_fraud"`
}

// RoleCache is a read-through cache in front of the role store. The
// authorization guard resolves roles on every request, so lookups are
// served from Redis when possible and fall back to Postgres. Cache
// failures degrade to the store, never to a denied request.
type RoleCache struct {
	client *redis.Client
	users  repository.UserRepository
	ttl    time.Duration
	logger *zap.Logger
}

// NewRoleCache builds the cache. A nil client disables caching.
func NewRoleCache(client *redis.Client, users repository.UserRepository, ttl time.Duration, logger *zap.Logger) *RoleCache {
	return &RoleCache{client: client, users: users, ttl: ttl, logger: logger}
}

// Resolve returns the role-store record for an email. Unknown emails
// surface the store's not-found error untouched.
func (c *RoleCache) Resolve(ctx context.Context, email string) (*domain.User, error) {
	if c.client != nil && c.ttl > 0 {
		raw, err := c.client.Get(ctx, roleKeyPrefix+email).Result()
		if err == nil {
			var cached cachedRole
			if unmarshalErr := json.Unmarshal([]byte(raw), &cached); unmarshalErr == nil {
				return &domain.User{Email: email, Role: cached.Role, IsFraud: cached.IsFraud}, nil
			}
		} else if err != redis.Nil {
			c.logger.Warn("role cache read failed", zap.String("email", email), zap.Error(err))
		}
	}

	user, err := c.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	c.store(ctx, user)
	return user, nil
}

// Invalidate drops a cached role after a role-store mutation.
func (c *RoleCache) Invalidate(ctx context.Context, email string) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, roleKeyPrefix+email).Err(); err != nil {
		c.logger.Warn("role cache invalidation failed", zap.String("email", email), zap.Error(err))
	}
}

func (c *RoleCache) store(ctx context.Context, user *domain.User) {
	if c.client == nil || c.ttl <= 0 {
		return
	}
	payload, err := json.Marshal(cachedRole{Role: user.Role, IsFraud: user.IsFraud})
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, roleKeyPrefix+user.Email, payload, c.ttl).Err(); err != nil {
		c.logger.Warn("role cache write failed", zap.String("email", user.Email), zap.Error(err))
	}
}
