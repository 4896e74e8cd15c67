package memory

import (
	"context"
	"sync"

	"github.com/riskibarqy/goals-api/internal/domain/league"
)

type LeagueRepository struct {
	mu     sync.RWMutex
	items  map[string]league.League
	orders []string
}

func NewLeagueRepository(leagues []league.League) *LeagueRepository {
	items := make(map[string]league.League, len(leagues))
	orders := make([]string, 0, len(leagues))

	for _, l := range leagues {
		items[l.Key] = l
		orders = append(orders, l.Key)
	}

	return &LeagueRepository{
		items:  items,
		orders: orders,
	}
}

func (r *LeagueRepository) List(_ context.Context) ([]league.League, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]league.League, 0, len(r.orders))
	for _, key := range r.orders {
		out = append(out, r.items[key])
	}

	return out, nil
}

// GetByKey resolves a canonical key or any documented alias.
func (r *LeagueRepository) GetByKey(_ context.Context, key string) (league.League, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if l, ok := r.items[league.NormalizeKey(key)]; ok {
		return l, true, nil
	}
	for _, candidate := range r.orders {
		l := r.items[candidate]
		if l.Matches(key) {
			return l, true, nil
		}
	}

	return league.League{}, false, nil
}
