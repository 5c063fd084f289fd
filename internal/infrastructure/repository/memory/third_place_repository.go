package memory

import (
	"context"
	"sync"

	"github.com/pickemlab/tournament-pickem/internal/domain/thirdplace"
)

type ThirdPlaceRepository struct {
	mu    sync.RWMutex
	items map[string]thirdplace.Prediction
}

func NewThirdPlaceRepository() *ThirdPlaceRepository {
	return &ThirdPlaceRepository{items: make(map[string]thirdplace.Prediction)}
}

func (r *ThirdPlaceRepository) GetByUser(_ context.Context, userID string) (thirdplace.Prediction, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.items[userID]
	if !ok {
		return thirdplace.Prediction{}, false, nil
	}

	return cloneThirdPlace(p), true, nil
}

func (r *ThirdPlaceRepository) Upsert(_ context.Context, prediction thirdplace.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[prediction.UserID] = cloneThirdPlace(prediction)
	return nil
}

func cloneThirdPlace(p thirdplace.Prediction) thirdplace.Prediction {
	copied := p
	copied.AdvancingTeamIDs = append([]string(nil), p.AdvancingTeamIDs...)
	return copied
}
