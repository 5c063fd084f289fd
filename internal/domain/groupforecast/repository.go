package groupforecast

import "context"

// Repository describes group prediction persistence needs from use cases.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
	GetByUserAndGroup(ctx context.Context, userID, groupID string) (Prediction, bool, error)
	Upsert(ctx context.Context, prediction Prediction) error
}
