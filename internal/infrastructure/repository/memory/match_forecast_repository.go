package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemlab/tournament-pickem/internal/domain/matchforecast"
)

type MatchForecastRepository struct {
	mu    sync.RWMutex
	items map[string]matchforecast.Prediction
}

func NewMatchForecastRepository() *MatchForecastRepository {
	return &MatchForecastRepository{items: make(map[string]matchforecast.Prediction)}
}

func (r *MatchForecastRepository) ListByUser(_ context.Context, userID string) ([]matchforecast.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]matchforecast.Prediction, 0)
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchID < out[j].MatchID })

	return out, nil
}

func (r *MatchForecastRepository) GetByUserAndMatch(_ context.Context, userID, matchID string) (matchforecast.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[forecastKey(userID, matchID)]
	return p, ok, nil
}

func (r *MatchForecastRepository) Upsert(_ context.Context, prediction matchforecast.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[forecastKey(prediction.UserID, prediction.MatchID)] = prediction
	return nil
}

// UpsertBatch applies the whole batch under one lock, so readers never see a
// half-applied set.
func (r *MatchForecastRepository) UpsertBatch(_ context.Context, predictions []matchforecast.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range predictions {
		r.items[forecastKey(p.UserID, p.MatchID)] = p
	}

	return nil
}
