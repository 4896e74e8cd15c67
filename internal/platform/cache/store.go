package cache

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultTTL applies when a store is built without an explicit window.
const DefaultTTL = time.Hour

// EntryStatus describes one cached key as reported by Status.
type EntryStatus struct {
	Key              string  `json:"key"`
	AgeSeconds       float64 `json:"ageSeconds"`
	ExpiresInSeconds float64 `json:"expiresInSeconds"`
	IsExpired        bool    `json:"isExpired"`
}

// Loader produces the payload for a missing key.
type Loader func(context.Context) ([]byte, error)

type entry struct {
	value      []byte
	insertedAt time.Time
}

// Store is a process-local TTL cache of JSON payloads. Expired entries are
// reported as misses and purged on read.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	now     func() time.Time
	flight  singleflight.Group
}

type Option func(*Store)

// WithClock replaces the wall clock, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool) {
	if key == "" {
		return nil, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if s.expired(e, now) {
		s.mu.Lock()
		// Re-check: a concurrent Set may have refreshed the entry.
		if current, still := s.entries[key]; still && s.expired(current, now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

func (s *Store) Set(_ context.Context, key string, value []byte) {
	if key == "" {
		return
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:      value,
		insertedAt: s.now(),
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) bool {
	if key == "" {
		return false
	}

	s.mu.Lock()
	_, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	return ok
}

// Clear drops every entry and returns how many were held.
func (s *Store) Clear(_ context.Context) int {
	s.mu.Lock()
	count := len(s.entries)
	s.entries = make(map[string]entry)
	s.mu.Unlock()
	return count
}

func (s *Store) Status(_ context.Context) []EntryStatus {
	now := s.now()

	s.mu.RLock()
	out := make([]EntryStatus, 0, len(s.entries))
	for key, e := range s.entries {
		age := now.Sub(e.insertedAt)
		remaining := s.ttl - age
		if remaining < 0 {
			remaining = 0
		}
		out = append(out, EntryStatus{
			Key:              key,
			AgeSeconds:       age.Seconds(),
			ExpiresInSeconds: remaining.Seconds(),
			IsExpired:        s.expired(e, now),
		})
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// GetOrLoad returns the cached payload for key, loading it at most once
// across concurrent callers on a miss. The bool reports a cache hit.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader Loader) ([]byte, bool, error) {
	return getOrLoad(ctx, s, &s.flight, key, loader)
}

func (s *Store) expired(e entry, now time.Time) bool {
	return now.Sub(e.insertedAt) >= s.ttl
}

type getSetter interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte)
}

func getOrLoad(ctx context.Context, backend getSetter, flight *singleflight.Group, key string, loader Loader) ([]byte, bool, error) {
	if loader == nil {
		return nil, false, fmt.Errorf("loader is required")
	}
	if key == "" {
		value, err := loader(ctx)
		return value, false, err
	}

	if value, ok := backend.Get(ctx, key); ok {
		return value, true, nil
	}

	ch := flight.DoChan(key, func() (any, error) {
		loadCtx, cancel := sharedLoadContext(ctx)
		defer cancel()

		if cached, ok := backend.Get(loadCtx, key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		if loaded != nil {
			backend.Set(loadCtx, key, loaded)
		}
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, false, res.Err
		}
		value, _ := res.Val.([]byte)
		return value, false, nil
	}
}

// sharedLoadContext keeps the starting caller's values and deadline but not
// its cancellation, so one caller going away does not fail the others
// waiting on the same key.
func sharedLoadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	detached := context.WithoutCancel(ctx)
	if deadline, ok := ctx.Deadline(); ok {
		return context.WithDeadline(detached, deadline)
	}
	return detached, func() {}
}
