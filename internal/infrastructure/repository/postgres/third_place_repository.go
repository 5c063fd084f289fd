package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pickemlab/tournament-pickem/internal/domain/thirdplace"
	qb "github.com/pickemlab/tournament-pickem/internal/platform/querybuilder"
)

const thirdPlacePredictionUpsertSuffix = `ON CONFLICT (user_id) WHERE deleted_at IS NULL
DO UPDATE SET
	advancing_team_ids = EXCLUDED.advancing_team_ids,
	points = EXCLUDED.points,
	updated_at = EXCLUDED.updated_at,
	deleted_at = NULL`

type ThirdPlaceRepository struct {
	db *sqlx.DB
}

func NewThirdPlaceRepository(db *sqlx.DB) *ThirdPlaceRepository {
	return &ThirdPlaceRepository{db: db}
}

func (r *ThirdPlaceRepository) GetByUser(ctx context.Context, userID string) (thirdplace.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("third_place_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return thirdplace.Prediction{}, false, fmt.Errorf("build get third place prediction query: %w", err)
	}

	var row thirdPlacePredictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return thirdplace.Prediction{}, false, nil
		}
		return thirdplace.Prediction{}, false, fmt.Errorf("get third place prediction user=%s: %w", userID, err)
	}

	return thirdPlacePredictionFromTableModel(row), true, nil
}

func (r *ThirdPlaceRepository) Upsert(ctx context.Context, prediction thirdplace.Prediction) error {
	query, args, err := qb.InsertInto("third_place_predictions").
		Columns("public_id", "user_id", "advancing_team_ids", "points", "created_at", "updated_at").
		Values(
			prediction.ID,
			prediction.UserID,
			pq.StringArray(prediction.AdvancingTeamIDs),
			prediction.Points,
			prediction.CreatedAt,
			prediction.UpdatedAt,
		).
		Suffix(thirdPlacePredictionUpsertSuffix).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert third place prediction query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert third place prediction user=%s: %w", prediction.UserID, err)
	}

	return nil
}

func thirdPlacePredictionFromTableModel(row thirdPlacePredictionTableModel) thirdplace.Prediction {
	return thirdplace.Prediction{
		ID:               row.PublicID,
		UserID:           row.UserID,
		AdvancingTeamIDs: append([]string(nil), row.AdvancingTeamIDs...),
		Points:           row.Points,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
