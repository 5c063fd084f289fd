package matchforecast

import "context"

// Repository describes match prediction persistence needs from use cases.
// UpsertBatch receives every drafted scoreline in one call; whether the
// backing store applies it atomically is the store's concern, not the
// engine's.
type Repository interface {
	ListByUser(ctx context.Context, userID string) ([]Prediction, error)
	GetByUserAndMatch(ctx context.Context, userID, matchID string) (Prediction, bool, error)
	Upsert(ctx context.Context, prediction Prediction) error
	UpsertBatch(ctx context.Context, predictions []Prediction) error
}
