package group

import "context"

// Repository describes group catalog reads needed by use cases.
type Repository interface {
	List(ctx context.Context) ([]Group, error)
	GetByID(ctx context.Context, groupID string) (Group, bool, error)
}
