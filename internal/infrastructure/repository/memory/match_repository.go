package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/match"
)

// MatchRepository serves the match catalog and derives CanEdit from kickoff
// versus its clock, so the engine always receives the lock state instead of
// computing it.
type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
	now     func() time.Time
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	return &MatchRepository{
		matches: append([]match.Match(nil), matches...),
		now:     time.Now,
	}
}

// WithClock overrides the editability clock, for tests.
func (r *MatchRepository) WithClock(now func() time.Time) *MatchRepository {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.now = now
	return r
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.now()
	out := make([]match.Match, 0, len(r.matches))
	for _, m := range r.matches {
		m.CanEdit = m.KickoffAt.After(now)
		out = append(out, m)
	}

	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, m := range r.matches {
		if m.ID == matchID {
			m.CanEdit = m.KickoffAt.After(r.now())
			return m, true, nil
		}
	}

	return match.Match{}, false, nil
}
