package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/pickemlab/tournament-pickem/internal/domain/matchforecast"
	qb "github.com/pickemlab/tournament-pickem/internal/platform/querybuilder"
)

const matchPredictionUpsertSuffix = `ON CONFLICT (user_id, match_public_id) WHERE deleted_at IS NULL
DO UPDATE SET
	home_score = EXCLUDED.home_score,
	away_score = EXCLUDED.away_score,
	points = EXCLUDED.points,
	updated_at = EXCLUDED.updated_at,
	deleted_at = NULL`

type MatchForecastRepository struct {
	db *sqlx.DB
}

func NewMatchForecastRepository(db *sqlx.DB) *MatchForecastRepository {
	return &MatchForecastRepository{db: db}
}

func (r *MatchForecastRepository) ListByUser(ctx context.Context, userID string) ([]matchforecast.Prediction, error) {
	query, args, err := qb.Select("*").From("match_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("match_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select match predictions query: %w", err)
	}

	var rows []matchPredictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select match predictions for user %s: %w", userID, err)
	}

	out := make([]matchforecast.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchPredictionFromTableModel(row))
	}

	return out, nil
}

func (r *MatchForecastRepository) GetByUserAndMatch(ctx context.Context, userID, matchID string) (matchforecast.Prediction, bool, error) {
	query, args, err := qb.Select("*").From("match_predictions").
		Where(
			qb.Eq("user_id", userID),
			qb.Eq("match_public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return matchforecast.Prediction{}, false, fmt.Errorf("build get match prediction query: %w", err)
	}

	var row matchPredictionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return matchforecast.Prediction{}, false, nil
		}
		return matchforecast.Prediction{}, false, fmt.Errorf("get match prediction user=%s match=%s: %w", userID, matchID, err)
	}

	return matchPredictionFromTableModel(row), true, nil
}

func (r *MatchForecastRepository) Upsert(ctx context.Context, prediction matchforecast.Prediction) error {
	query, args, err := buildMatchPredictionUpsert(prediction)
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert match prediction user=%s match=%s: %w", prediction.UserID, prediction.MatchID, err)
	}

	return nil
}

// UpsertBatch writes every row in one transaction so a failed batch leaves no
// partial scorelines behind.
func (r *MatchForecastRepository) UpsertBatch(ctx context.Context, predictions []matchforecast.Prediction) error {
	if len(predictions) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin match prediction batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, prediction := range predictions {
		query, args, err := buildMatchPredictionUpsert(prediction)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert match prediction user=%s match=%s: %w", prediction.UserID, prediction.MatchID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit match prediction batch tx: %w", err)
	}

	return nil
}

func buildMatchPredictionUpsert(prediction matchforecast.Prediction) (string, []any, error) {
	query, args, err := qb.InsertInto("match_predictions").
		Columns("public_id", "user_id", "match_public_id", "home_score", "away_score", "points", "created_at", "updated_at").
		Values(
			prediction.ID,
			prediction.UserID,
			prediction.MatchID,
			prediction.HomeScore,
			prediction.AwayScore,
			prediction.Points,
			prediction.CreatedAt,
			prediction.UpdatedAt,
		).
		Suffix(matchPredictionUpsertSuffix).
		ToSQL()
	if err != nil {
		return "", nil, fmt.Errorf("build upsert match prediction query: %w", err)
	}

	return query, args, nil
}
