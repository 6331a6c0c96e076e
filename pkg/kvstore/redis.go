package kvstore

import (
	"context"
	"errors"
	"time"

	"github.com/angelmondragon/packfinderz-cart/pkg/redis"
)

type redisClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	CartKey(name string) string
	Ping(ctx context.Context) error
}

// Redis stores values under the client's cart namespace without expiry.
type Redis struct {
	client redisClient
}

func NewRedis(client redisClient) *Redis {
	return &Redis{client: client}
}

func (r *Redis) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.client.CartKey(key))
	if errors.Is(err, redis.ErrNil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.client.CartKey(key), value, 0)
}

func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx)
}
