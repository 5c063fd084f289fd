package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/pickemlab/tournament-pickem/internal/domain/match"
	qb "github.com/pickemlab/tournament-pickem/internal/platform/querybuilder"
)

// MatchRepository serves the match catalog. CanEdit is derived from kickoff
// versus the repository clock at read time, never stored.
type MatchRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db, now: time.Now}
}

// WithClock overrides the editability clock, for tests.
func (r *MatchRepository) WithClock(now func() time.Time) *MatchRepository {
	r.now = now
	return r
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(qb.IsNull("deleted_at")).
		OrderBy("kickoff_at", "public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	now := r.now()
	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, matchFromTableModel(row, now))
	}

	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := qb.Select("*").From("matches").
		Where(
			qb.Eq("public_id", matchID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build get match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("get match %s: %w", matchID, err)
	}

	return matchFromTableModel(row, r.now()), true, nil
}

func matchFromTableModel(row matchTableModel, now time.Time) match.Match {
	return match.Match{
		ID:         row.PublicID,
		Stage:      match.Stage(row.Stage),
		GroupID:    row.GroupPublicID,
		HomeTeamID: row.HomeTeamPublicID,
		AwayTeamID: row.AwayTeamPublicID,
		KickoffAt:  row.KickoffAt,
		CanEdit:    row.KickoffAt.After(now),
	}
}
