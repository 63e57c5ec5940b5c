package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"prd-advisors/internal/models"

	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("SESSION_NOT_FOUND")
	ErrStoreFailed     = errors.New("SESSION_STORE_FAILED")
)

const keyPrefix = "prd:session:"

// Store keeps the last generation of a caller for redisplay and download.
type Store interface {
	Save(ctx context.Context, s *models.Session) error
	Get(ctx context.Context, id string) (*models.Session, error)
}

func Key(id string) string {
	return keyPrefix + id
}

// ==========================
// Memory store
// ==========================

type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
	ttl      time.Duration
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*models.Session),
		ttl:      ttl,
		now:      time.Now,
	}
}

func (m *MemoryStore) Save(ctx context.Context, s *models.Session) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("%w: session id is required", ErrStoreFailed)
	}
	now := m.now()
	stamp(s, now, m.ttl)

	cp := *s
	m.mu.Lock()
	m.pruneLocked(now)
	m.sessions[s.ID] = &cp
	m.mu.Unlock()
	return nil
}

// pruneLocked drops expired sessions that were never read back. m.mu must be held.
func (m *MemoryStore) pruneLocked(now time.Time) {
	for id, s := range m.sessions {
		if s.IsExpired(now) {
			delete(m.sessions, id)
		}
	}
}

// Len reports how many sessions are held, expired ones included.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *MemoryStore) Get(ctx context.Context, id string) (*models.Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if s.IsExpired(m.now()) {
		m.mu.Lock()
		delete(m.sessions, id)
		m.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	cp := *s
	return &cp, nil
}

// ==========================
// Redis store
// ==========================

type RedisStore struct {
	client redis.Cmdable
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client redis.Cmdable, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

func (r *RedisStore) Save(ctx context.Context, s *models.Session) error {
	if s == nil || s.ID == "" {
		return fmt.Errorf("%w: session id is required", ErrStoreFailed)
	}
	stamp(s, r.now(), r.ttl)

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: marshal: %v", ErrStoreFailed, err)
	}
	if err := r.client.Set(ctx, Key(s.ID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}
	return nil
}

func (r *RedisStore) Get(ctx context.Context, id string) (*models.Session, error) {
	val, err := r.client.Get(ctx, Key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreFailed, err)
	}

	var s models.Session
	if err := json.Unmarshal([]byte(val), &s); err != nil {
		return nil, fmt.Errorf("%w: unmarshal: %v", ErrStoreFailed, err)
	}
	return &s, nil
}

func stamp(s *models.Session, now time.Time, ttl time.Duration) {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = now
	}
	if ttl > 0 {
		s.ExpiresAt = s.CreatedAt.Add(ttl)
	}
}
