package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/polarbear333/rag-llm-based-recommender/internal/chat"
)

// Store persists visitor chat state in Redis. Each visitor holds one JSON
// blob plus a small flags entry; both carry a sliding idle TTL, so an idle
// visitor's history ages out rather than accumulating forever.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func New(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func stateKey(visitorID string) string { return chat.StorageName + ":" + visitorID }
func flagsKey(visitorID string) string { return chat.StorageName + ":" + visitorID + ":ui" }

func (s *Store) Load(ctx context.Context, visitorID string) (chat.State, bool, error) {
	// GETEX slides the idle TTL on every read.
	blob, err := s.rdb.GetEx(ctx, stateKey(visitorID), s.ttl).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return chat.State{}, false, nil
		}
		return chat.State{}, false, err
	}

	var st chat.State
	if err := json.Unmarshal(blob, &st); err != nil {
		return chat.State{}, false, err
	}
	return st, true, nil
}

func (s *Store) Save(ctx context.Context, visitorID string, st chat.State) error {
	blob, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, stateKey(visitorID), blob, s.ttl).Err()
}

func (s *Store) LoadFlags(ctx context.Context, visitorID string) (chat.Flags, error) {
	blob, err := s.rdb.Get(ctx, flagsKey(visitorID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return chat.Flags{}, nil
		}
		return chat.Flags{}, err
	}
	var f chat.Flags
	if err := json.Unmarshal(blob, &f); err != nil {
		return chat.Flags{}, err
	}
	return f, nil
}

func (s *Store) SaveFlags(ctx context.Context, visitorID string, f chat.Flags) error {
	blob, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, flagsKey(visitorID), blob, s.ttl).Err()
}
