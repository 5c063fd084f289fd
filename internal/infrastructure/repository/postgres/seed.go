package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/pickemlab/tournament-pickem/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the finals draw into an empty catalog. It is a no-op
// when any group row already exists, so it is safe to run on every startup.
func BootstrapSeed(ctx context.Context, db *sqlx.DB, kickoff time.Time) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM groups WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count groups for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, g := range memory.SeedGroups() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO groups (public_id, name, team_ids)
VALUES (:public_id, :name, :team_ids)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id": g.ID,
			"name":      g.Name,
			"team_ids":  pq.StringArray(g.TeamIDs),
		})
		if err != nil {
			return fmt.Errorf("bind seed group %s query: %w", g.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed group %s: %w", g.ID, err)
		}
	}

	for _, t := range memory.SeedTeams() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO teams (public_id, group_public_id, name, code)
VALUES (:public_id, :group_public_id, :name, :code)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":       t.ID,
			"group_public_id": t.GroupID,
			"name":            t.Name,
			"code":            t.Code,
		})
		if err != nil {
			return fmt.Errorf("bind seed team %s query: %w", t.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, m := range memory.SeedMatches(kickoff) {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO matches (public_id, stage, group_public_id, home_team_public_id, away_team_public_id, kickoff_at)
VALUES (:public_id, :stage, :group_public_id, :home_team_public_id, :away_team_public_id, :kickoff_at)
ON CONFLICT (public_id) DO NOTHING`, map[string]any{
			"public_id":           m.ID,
			"stage":               string(m.Stage),
			"group_public_id":     m.GroupID,
			"home_team_public_id": m.HomeTeamID,
			"away_team_public_id": m.AwayTeamID,
			"kickoff_at":          m.KickoffAt,
		})
		if err != nil {
			return fmt.Errorf("bind seed match %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed match %s: %w", m.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
