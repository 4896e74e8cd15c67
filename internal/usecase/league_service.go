package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/goals-api/internal/domain/league"
)

type LeagueService struct {
	leagueRepo league.Repository
}

func NewLeagueService(leagueRepo league.Repository) *LeagueService {
	return &LeagueService{
		leagueRepo: leagueRepo,
	}
}

func (s *LeagueService) ListLeagues(ctx context.Context) ([]league.League, error) {
	leagues, err := s.leagueRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list leagues: %w", err)
	}

	return leagues, nil
}

func (s *LeagueService) AvailableKeys(ctx context.Context) ([]string, error) {
	leagues, err := s.ListLeagues(ctx)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(leagues))
	for _, l := range leagues {
		keys = append(keys, l.Key)
	}
	return keys, nil
}

func (s *LeagueService) Resolve(ctx context.Context, key string) (league.League, error) {
	resolved, err := s.ResolveMany(ctx, []string{key})
	if err != nil {
		return league.League{}, err
	}
	return resolved[0], nil
}

// ResolveMany maps raw keys to leagues, keeping input order and duplicates.
// An empty input selects every league in catalog order.
func (s *LeagueService) ResolveMany(ctx context.Context, keys []string) ([]league.League, error) {
	if len(keys) == 0 {
		return s.ListLeagues(ctx)
	}

	out := make([]league.League, 0, len(keys))
	var invalid []string
	for _, raw := range keys {
		key := strings.TrimSpace(raw)
		l, ok, err := s.leagueRepo.GetByKey(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("get league: %w", err)
		}
		if !ok {
			invalid = append(invalid, key)
			continue
		}
		out = append(out, l)
	}

	if len(invalid) > 0 {
		available, err := s.AvailableKeys(ctx)
		if err != nil {
			return nil, err
		}
		return nil, &UnknownLeagueError{Invalid: invalid, Available: available}
	}

	return out, nil
}
