package confirm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "backoffice:confirm:"

// RedisStore shares pending actions between back-office replicas. The key
// TTL is a cleanup bound only; expiry itself is checked by Service.
type RedisStore struct {
	client redis.UniversalClient
	prefix string
}

func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client, prefix: redisKeyPrefix}
}

func (s *RedisStore) key(token string) string {
	return s.prefix + token
}

func (s *RedisStore) Save(ctx context.Context, p Pending, ttl time.Duration) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode pending confirmation: %w", err)
	}
	return s.client.Set(ctx, s.key(p.Token), payload, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, token string) (Pending, error) {
	raw, err := s.client.Get(ctx, s.key(token)).Bytes()
	return decodePending(raw, err)
}

// Take uses GETDEL so only one replica can win a token.
func (s *RedisStore) Take(ctx context.Context, token string) (Pending, error) {
	raw, err := s.client.GetDel(ctx, s.key(token)).Bytes()
	return decodePending(raw, err)
}

func (s *RedisStore) Delete(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func decodePending(raw []byte, err error) (Pending, error) {
	if errors.Is(err, redis.Nil) {
		return Pending{}, ErrConfirmationNotFound
	}
	if err != nil {
		return Pending{}, err
	}
	var p Pending
	if err := json.Unmarshal(raw, &p); err != nil {
		return Pending{}, fmt.Errorf("decode pending confirmation: %w", err)
	}
	return p, nil
}
