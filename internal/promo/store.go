package promo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DefaultFlagTTL is how long a session stays marked as having seen the popup.
const DefaultFlagTTL = 24 * time.Hour

// FlagStore remembers which visitor sessions have already seen the popup.
type FlagStore interface {
	Seen(ctx context.Context, sessionID string) (bool, error)
	// MarkIfUnseen sets the flag and reports true only for the caller that
	// set it; concurrent callers for one session see exactly one true.
	MarkIfUnseen(ctx context.Context, sessionID string) (bool, error)
}

// MemoryFlagStore keeps flags in process memory. Expired flags are dropped
// lazily on lookup.
type MemoryFlagStore struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewMemoryFlagStore creates an in-memory store; ttl <= 0 keeps flags forever.
func NewMemoryFlagStore(ttl time.Duration) *MemoryFlagStore {
	return &MemoryFlagStore{seen: make(map[string]time.Time), ttl: ttl, now: time.Now}
}

// Seen reports whether the session has a live flag.
func (s *MemoryFlagStore) Seen(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liveLocked(sessionID), nil
}

// MarkIfUnseen sets the flag unless a live one exists.
func (s *MemoryFlagStore) MarkIfUnseen(_ context.Context, sessionID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.liveLocked(sessionID) {
		return false, nil
	}
	s.seen[sessionID] = s.now()
	return true, nil
}

func (s *MemoryFlagStore) liveLocked(sessionID string) bool {
	at, ok := s.seen[sessionID]
	if !ok {
		return false
	}
	if s.ttl > 0 && s.now().Sub(at) >= s.ttl {
		delete(s.seen, sessionID)
		return false
	}
	return true
}

// RedisFlagStore keeps flags in Redis so every API replica agrees.
type RedisFlagStore struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewRedisFlagStore creates a Redis-backed store.
func NewRedisFlagStore(redisClient *redis.Client, ttl time.Duration) *RedisFlagStore {
	if redisClient == nil {
		panic("promo: redis client required")
	}
	return &RedisFlagStore{redis: redisClient, ttl: ttl}
}

func (s *RedisFlagStore) key(sessionID string) string {
	return fmt.Sprintf("exit_intent:%s", sessionID)
}

// Seen reports whether the session key exists.
func (s *RedisFlagStore) Seen(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.redis.Exists(ctx, s.key(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("promo: check flag: %w", err)
	}
	return n > 0, nil
}

// MarkIfUnseen writes the session key with SETNX so only one replica wins.
func (s *RedisFlagStore) MarkIfUnseen(ctx context.Context, sessionID string) (bool, error) {
	set, err := s.redis.SetNX(ctx, s.key(sessionID), "1", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("promo: set flag: %w", err)
	}
	return set, nil
}

var (
	_ FlagStore = (*MemoryFlagStore)(nil)
	_ FlagStore = (*RedisFlagStore)(nil)
)
