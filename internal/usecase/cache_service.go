package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/goals-api/internal/platform/cache"
)

type CacheStatus struct {
	TTLSeconds float64             `json:"ttlSeconds"`
	Count      int                 `json:"count"`
	Entries    []cache.EntryStatus `json:"entries"`
}

// CacheService exposes cache administration to the HTTP layer.
type CacheService struct {
	cache Cache
}

func NewCacheService(c Cache) *CacheService {
	return &CacheService{cache: c}
}

func (s *CacheService) Status(ctx context.Context) CacheStatus {
	entries := s.cache.Status(ctx)
	if entries == nil {
		entries = []cache.EntryStatus{}
	}
	return CacheStatus{
		TTLSeconds: s.cache.TTL().Seconds(),
		Count:      len(entries),
		Entries:    entries,
	}
}

func (s *CacheService) Clear(ctx context.Context) int {
	return s.cache.Clear(ctx)
}

func (s *CacheService) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: cache key is required", ErrInvalidInput)
	}
	if !s.cache.Delete(ctx, key) {
		return fmt.Errorf("%w: cache key=%s", ErrNotFound, key)
	}
	return nil
}
