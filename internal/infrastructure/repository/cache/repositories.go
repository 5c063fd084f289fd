// Package cache wraps the catalog repositories with an in-process TTL cache.
// Only the fixed draw data (groups, teams, matches) is cached; prediction
// repositories are never wrapped, a commit must always hit the store.
package cache

import (
	"context"
	"strings"
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	"github.com/pickemlab/tournament-pickem/internal/domain/match"
	"github.com/pickemlab/tournament-pickem/internal/domain/team"
	basecache "github.com/pickemlab/tournament-pickem/internal/platform/cache"
)

type GroupRepository struct {
	next  group.Repository
	cache *basecache.Store
}

func NewGroupRepository(next group.Repository, cache *basecache.Store) *GroupRepository {
	return &GroupRepository{next: next, cache: cache}
}

func (r *GroupRepository) List(ctx context.Context) ([]group.Group, error) {
	v, err := r.cache.GetOrLoad(ctx, "group:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]group.Group(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]group.Group)
	return append([]group.Group(nil), items...), nil
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	key := "group:id:" + groupID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, groupID)
		if err != nil {
			return nil, err
		}
		return cachedGroupByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return group.Group{}, false, err
	}

	cached, _ := v.(cachedGroupByID)
	return cached.value, cached.exists, nil
}

type cachedGroupByID struct {
	value  group.Group
	exists bool
}

type TeamRepository struct {
	next  team.Repository
	cache *basecache.Store
}

func NewTeamRepository(next team.Repository, cache *basecache.Store) *TeamRepository {
	return &TeamRepository{next: next, cache: cache}
}

func (r *TeamRepository) List(ctx context.Context) ([]team.Team, error) {
	v, err := r.cache.GetOrLoad(ctx, "team:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	key := "team:id:" + teamID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, teamID)
		if err != nil {
			return nil, err
		}
		return cachedTeamByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return team.Team{}, false, err
	}

	cached, _ := v.(cachedTeamByID)
	return cached.value, cached.exists, nil
}

func (r *TeamRepository) GetByIDs(ctx context.Context, teamIDs []string) ([]team.Team, error) {
	key := "team:ids:" + strings.Join(teamIDs, ",")
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.GetByIDs(ctx, teamIDs)
		if err != nil {
			return nil, err
		}
		return append([]team.Team(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]team.Team)
	return append([]team.Team(nil), items...), nil
}

type cachedTeamByID struct {
	value  team.Team
	exists bool
}

// MatchRepository caches the fixture rows but re-derives CanEdit against the
// clock on every read, so a cached match can never report stale editability.
type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
	now   func() time.Time
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache, now: time.Now}
}

// WithClock overrides the editability clock, for tests.
func (r *MatchRepository) WithClock(now func() time.Time) *MatchRepository {
	r.now = now
	return r
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]match.Match(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	now := r.now()
	out := make([]match.Match, 0, len(items))
	for _, m := range items {
		m.CanEdit = m.KickoffAt.After(now)
		out = append(out, m)
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	key := "match:id:" + matchID
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, matchID)
		if err != nil {
			return nil, err
		}
		return cachedMatchByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return match.Match{}, false, err
	}

	cached, _ := v.(cachedMatchByID)
	m := cached.value
	if cached.exists {
		m.CanEdit = m.KickoffAt.After(r.now())
	}

	return m, cached.exists, nil
}

type cachedMatchByID struct {
	value  match.Match
	exists bool
}
