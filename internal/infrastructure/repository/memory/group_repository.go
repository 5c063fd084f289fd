package memory

import (
	"context"
	"sync"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
)

type GroupRepository struct {
	mu     sync.RWMutex
	groups []group.Group
}

func NewGroupRepository(groups []group.Group) *GroupRepository {
	return &GroupRepository{groups: append([]group.Group(nil), groups...)}
}

func (r *GroupRepository) List(_ context.Context) ([]group.Group, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]group.Group, 0, len(r.groups))
	for _, g := range r.groups {
		out = append(out, cloneGroup(g))
	}

	return out, nil
}

func (r *GroupRepository) GetByID(_ context.Context, groupID string) (group.Group, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, g := range r.groups {
		if g.ID == groupID {
			return cloneGroup(g), true, nil
		}
	}

	return group.Group{}, false, nil
}

func cloneGroup(g group.Group) group.Group {
	copied := g
	copied.TeamIDs = append([]string(nil), g.TeamIDs...)
	return copied
}
