package memory

import (
	"context"
	"sync"

	"github.com/pickemlab/tournament-pickem/internal/domain/team"
)

type TeamRepository struct {
	mu      sync.RWMutex
	ordered []string
	byID    map[string]team.Team
}

func NewTeamRepository(teams []team.Team) *TeamRepository {
	r := &TeamRepository{byID: make(map[string]team.Team, len(teams))}
	for _, item := range teams {
		if _, ok := r.byID[item.ID]; !ok {
			r.ordered = append(r.ordered, item.ID)
		}
		r.byID[item.ID] = item
	}

	return r
}

func (r *TeamRepository) List(_ context.Context) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(r.ordered))
	for _, id := range r.ordered {
		out = append(out, r.byID[id])
	}

	return out, nil
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.byID[teamID]
	return item, ok, nil
}

func (r *TeamRepository) GetByIDs(_ context.Context, teamIDs []string) ([]team.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]team.Team, 0, len(teamIDs))
	for _, id := range teamIDs {
		if item, ok := r.byID[id]; ok {
			out = append(out, item)
		}
	}

	return out, nil
}
