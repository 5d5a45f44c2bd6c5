package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ordermypdf:session:"

// RedisStore keeps session state in Redis so multiple instances share one
// clarification dialogue. TTL is enforced by key expiry.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	timeout time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, timeout: 2 * time.Second}
}

func (s *RedisStore) Get(id string) (*State, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, err := s.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if err != nil {
		return nil, false
	}
	var state State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, false
	}
	return &state, true
}

func (s *RedisStore) Save(state *State) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	raw, err := json.Marshal(state)
	if err != nil {
		return
	}
	s.client.Set(ctx, redisKeyPrefix+state.ID, raw, s.ttl)
}

func (s *RedisStore) Delete(id string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	s.client.Del(ctx, redisKeyPrefix+id)
}
