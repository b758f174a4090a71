package agenda

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// StateRepository persists per-visitor UI state. Entries expire after the
// configured TTL of inactivity; a missing entry simply means a fresh state.
type StateRepository interface {
	Load(ctx context.Context, visitorID string) (*State, error)
	Save(ctx context.Context, visitorID string, s State) error
}

// redisStateRepository implements StateRepository on Redis.
type redisStateRepository struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewStateRepository creates a Redis-backed state repository.
func NewStateRepository(rdb *redis.Client, ttl time.Duration) StateRepository {
	return &redisStateRepository{rdb: rdb, ttl: ttl}
}

// stateKey namespaces visitor state entries.
func stateKey(visitorID string) string {
	return "agenda:state:" + visitorID
}

// Load returns the visitor's state, or nil when none is stored. A corrupt
// entry is dropped and treated as absent rather than failing the page.
func (r *redisStateRepository) Load(ctx context.Context, visitorID string) (*State, error) {
	raw, err := r.rdb.Get(ctx, stateKey(visitorID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading ui state: %w", err)
	}

	var s State
	if err := json.Unmarshal(raw, &s); err != nil {
		slog.Warn("dropping corrupt ui state", slog.Any("error", err))
		return nil, nil
	}
	return &s, nil
}

// Save stores the visitor's state, refreshing its TTL.
func (r *redisStateRepository) Save(ctx context.Context, visitorID string, s State) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("encoding ui state: %w", err)
	}
	if err := r.rdb.Set(ctx, stateKey(visitorID), raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("saving ui state: %w", err)
	}
	return nil
}
