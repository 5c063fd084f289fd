package thirdplace

import "context"

// Repository describes third-place prediction persistence needs from use
// cases.
type Repository interface {
	GetByUser(ctx context.Context, userID string) (Prediction, bool, error)
	Upsert(ctx context.Context, prediction Prediction) error
}
