package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	qb "github.com/pickemlab/tournament-pickem/internal/platform/querybuilder"
)

type GroupRepository struct {
	db *sqlx.DB
}

func NewGroupRepository(db *sqlx.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) List(ctx context.Context) ([]group.Group, error) {
	query, args, err := qb.Select("*").From("groups").
		Where(qb.IsNull("deleted_at")).
		OrderBy("public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select groups query: %w", err)
	}

	var rows []groupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select groups: %w", err)
	}

	out := make([]group.Group, 0, len(rows))
	for _, row := range rows {
		out = append(out, groupFromTableModel(row))
	}

	return out, nil
}

func (r *GroupRepository) GetByID(ctx context.Context, groupID string) (group.Group, bool, error) {
	query, args, err := qb.Select("*").From("groups").
		Where(
			qb.Eq("public_id", groupID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return group.Group{}, false, fmt.Errorf("build get group by id query: %w", err)
	}

	var row groupTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return group.Group{}, false, nil
		}
		return group.Group{}, false, fmt.Errorf("get group %s: %w", groupID, err)
	}

	return groupFromTableModel(row), true, nil
}

func groupFromTableModel(row groupTableModel) group.Group {
	return group.Group{
		ID:      row.PublicID,
		Name:    row.Name,
		TeamIDs: append([]string(nil), row.TeamIDs...),
	}
}
