package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
	qb "github.com/pickemlab/tournament-pickem/internal/platform/querybuilder"
)

const groupPredictionUpsertSuffix = `ON CONFLICT (user_id, group_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
	positions = EXCLUDED.positions,
	points = EXCLUDED.points,
	updated_at = EXCLUDED.updated_at,
	deleted_at = NULL`

type GroupForecastRepository struct {
	db *sqlx.DB
}

func NewGroupForecastRepository(db *sqlx.DB) *GroupForecastRepository {
	return &GroupForecastRepository{db: db}
}

func (r *GroupForecastRepository) ListByUser(ctx context.Context, userID string) ([]groupforecast.Prediction, error) {
	query, args, err := qb.Select("*").From("group_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("group_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select group predictions query: %w", err)
	}

	var rows []groupPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select group predictions for user %s: %w", userID, err)
	}

	out := make([]groupforecast.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, groupPredictionFromTableModel(row))
	}

	return out, nil
}

func (r *GroupForecastRepository) GetByUserAndGroup(ctx context.Context, userID, groupID string) (groupforecast.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("group_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("group_public_id", groupID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return groupforecast.Prediction{}, false, fmt.Errorf("build get group prediction query: %w", err)
	}

	var row groupPredictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return groupforecast.Prediction{}, false, nil
		}
		return groupforecast.Prediction{}, false, fmt.Errorf("get group prediction user=%s group=%s: %w", userID, groupID, err)
	}

	return groupPredictionFromTableModel(row), true, nil
}

func (r *GroupForecastRepository) Upsert(ctx context.Context, prediction groupforecast.Prediction) error {
	query, args, err := qb.InsertInto("group_predictions").
		Columns("public_id", "user_id", "group_public_id", "positions", "points", "created_at", "updated_at").
		Values(
			prediction.ID,
			prediction.UserID,
			prediction.GroupID,
			pq.StringArray(prediction.Positions),
			prediction.Points,
			prediction.CreatedAt,
			prediction.UpdatedAt,
		).
		Suffix(groupPredictionUpsertSuffix).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert group prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert group prediction user=%s group=%s: %w", prediction.UserID, prediction.GroupID, err)
	}

	return nil
}

func groupPredictionFromTableModel(row groupPredictionTableModel) groupforecast.Prediction {
	return groupforecast.Prediction{
		ID:        row.PublicID,
		UserID:    row.UserID,
		GroupID:   row.GroupPublicID,
		Positions: append([]string(nil), row.Positions...),
		Points:    row.Points,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
