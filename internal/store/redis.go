package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/robalobadob/wordgrid/internal/game"
	"github.com/robalobadob/wordgrid/internal/keyboard"
)

const redisKeyPrefix = "wordgrid:session:"

// record is the JSON document stored per session.
type record struct {
	ID        string            `json:"id"`
	Grid      game.Snapshot     `json:"grid"`
	Hints     keyboard.Snapshot `json:"hints"`
	Daily     bool              `json:"daily"`
	CreatedAt time.Time         `json:"createdAt"`
}

// RedisStore keeps session snapshots in Redis with a sliding TTL.
// Each Get rebuilds a fresh Session, so listeners do not survive between
// requests.
type RedisStore struct {
	client *redis.Client
	dicts  Dictionaries
	ttl    time.Duration
}

// NewRedisStore uses dicts to rebuild grids on Get.
func NewRedisStore(client *redis.Client, dicts Dictionaries, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, dicts: dicts, ttl: ttl}
}

func (r *RedisStore) Save(ctx context.Context, s *Session) error {
	raw, err := json.Marshal(record{
		ID:        s.ID,
		Grid:      s.Grid.Snapshot(),
		Hints:     s.Hints.Snapshot(),
		Daily:     s.Daily,
		CreatedAt: s.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return r.client.Set(ctx, redisKeyPrefix+s.ID, raw, r.ttl).Err()
}

func (r *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	g, err := game.Restore(rec.Grid, r.dicts.For(rec.Daily))
	if err != nil {
		return nil, fmt.Errorf("restore session %s: %w", id, err)
	}
	s := NewSession(rec.ID, g, keyboard.Restore(rec.Hints), rec.Daily)
	s.CreatedAt = rec.CreatedAt
	return s, nil
}

func (r *RedisStore) Delete(ctx context.Context, id string) error {
	return r.client.Del(ctx, redisKeyPrefix+id).Err()
}
