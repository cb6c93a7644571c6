package importer

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrBatchNotFound is returned by Take when no staged batch exists for the
// session handle: it was never staged, already consumed, or expired.
var ErrBatchNotFound = errors.New("no staged batch for session")

// Batch is a parsed, transformed, not-yet-persisted import held between
// preview and confirm.
type Batch struct {
	Rows     []RowValues  `json:"rows"`
	Manual   ManualFields `json:"manual"`
	YearID   int          `json:"year_id"`
	Year     int          `json:"year"`
	StagedAt time.Time    `json:"staged_at"`
}

// Store holds at most one staged batch per session handle. Put overwrites
// any existing batch for the handle (last preview wins). Take atomically
// returns and removes the batch, so a confirm can never commit the same
// batch twice.
type Store interface {
	Put(ctx context.Context, token string, batch *Batch) error
	Take(ctx context.Context, token string) (*Batch, error)
}

// MemoryStore is the in-process staging store, used when Redis is not
// available.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	batches map[string]memoryBatch
}

type memoryBatch struct {
	batch   *Batch
	expires time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		batches: make(map[string]memoryBatch),
	}
}

func (s *MemoryStore) Put(ctx context.Context, token string, batch *Batch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches[token] = memoryBatch{batch: batch, expires: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Take(ctx context.Context, token string) (*Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.batches[token]
	if !ok {
		return nil, ErrBatchNotFound
	}
	delete(s.batches, token)
	if time.Now().After(entry.expires) {
		return nil, ErrBatchNotFound
	}
	return entry.batch, nil
}

// RedisStore keeps staged batches in Redis so a confirm can land on any
// replica. Take uses GETDEL, which is the atomic check-and-clear.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func stagingKey(token string) string {
	return "import:staging:" + token
}

func (s *RedisStore) Put(ctx context.Context, token string, batch *Batch) error {
	data, err := json.Marshal(batch)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, stagingKey(token), data, s.ttl).Err()
}

func (s *RedisStore) Take(ctx context.Context, token string) (*Batch, error) {
	data, err := s.client.GetDel(ctx, stagingKey(token)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrBatchNotFound
	}
	if err != nil {
		return nil, err
	}
	var batch Batch
	if err := json.Unmarshal(data, &batch); err != nil {
		return nil, err
	}
	return &batch, nil
}
