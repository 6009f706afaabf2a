// File: services/dialogue/store.go
package dialogue

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"farewise/models"

	"github.com/go-redis/redis/v8"
)

// ErrSessionNotFound is returned when a session ID is unknown or expired.
var ErrSessionNotFound = errors.New("session not found")

// SessionStore persists conversation sessions between turns.
type SessionStore interface {
	Get(ctx context.Context, id string) (*models.ConversationSession, error)
	Set(ctx context.Context, session *models.ConversationSession) error
	Delete(ctx context.Context, id string) error
}

const sessionPrefix = "chat:session:"

// RedisSessionStore keeps sessions in Redis with a sliding TTL, so an idle
// conversation expires on its own.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.ConversationSession, error) {
	data, err := s.client.Get(ctx, sessionPrefix+id).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	var session models.ConversationSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, session *models.ConversationSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionPrefix+session.ID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, sessionPrefix+id).Err()
}

// MemorySessionStore is the in-process store used by tests.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.ConversationSession
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.ConversationSession)}
}

func (s *MemorySessionStore) Get(_ context.Context, id string) (*models.ConversationSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	copy := session
	copy.Intent = session.Intent.Clone()
	return &copy, nil
}

func (s *MemorySessionStore) Set(_ context.Context, session *models.ConversationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored := *session
	stored.Intent = session.Intent.Clone()
	s.sessions[session.ID] = stored
	return nil
}

func (s *MemorySessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
