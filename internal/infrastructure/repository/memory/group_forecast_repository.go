package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
)

type GroupForecastRepository struct {
	mu    sync.RWMutex
	items map[string]groupforecast.Prediction
}

func NewGroupForecastRepository() *GroupForecastRepository {
	return &GroupForecastRepository{items: make(map[string]groupforecast.Prediction)}
}

func (r *GroupForecastRepository) ListByUser(_ context.Context, userID string) ([]groupforecast.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]groupforecast.Prediction, 0)
	for _, p := range r.items {
		if p.UserID == userID {
			out = append(out, cloneGroupForecast(p))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].GroupID < out[j].GroupID })

	return out, nil
}

func (r *GroupForecastRepository) GetByUserAndGroup(_ context.Context, userID, groupID string) (groupforecast.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[forecastKey(userID, groupID)]
	if !ok {
		return groupforecast.Prediction{}, false, nil
	}

	return cloneGroupForecast(p), true, nil
}

func (r *GroupForecastRepository) Upsert(_ context.Context, prediction groupforecast.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[forecastKey(prediction.UserID, prediction.GroupID)] = cloneGroupForecast(prediction)
	return nil
}

func forecastKey(userID, groupID string) string {
	return userID + "::" + groupID
}

func cloneGroupForecast(p groupforecast.Prediction) groupforecast.Prediction {
	copied := p
	copied.Positions = append([]string(nil), p.Positions...)
	return copied
}
