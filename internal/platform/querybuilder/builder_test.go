package querybuilder_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	qb "github.com/pickemlab/tournament-pickem/internal/platform/querybuilder"
)

func TestSelectToSQL(t *testing.T) {
	sql, args, err := qb.Select("id", "name").
		From("teams").
		Where(qb.Eq("group_public_id", "grp-a"), qb.IsNull("deleted_at")).
		OrderBy("name ASC").
		Limit(4).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT id, name FROM teams WHERE group_public_id = $1 AND deleted_at IS NULL ORDER BY name ASC LIMIT 4", sql)
	assert.Equal(t, []any{"grp-a"}, args)
}

func TestSelectRequiresTable(t *testing.T) {
	_, _, err := qb.Select("id").ToSQL()
	require.Error(t, err)
}

func TestSelectInCondition(t *testing.T) {
	sql, args, err := qb.Select("public_id").
		From("matches").
		Where(qb.In("public_id", []any{"grp-a-m1", "grp-a-m2"})).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT public_id FROM matches WHERE public_id IN ($1, $2)", sql)
	assert.Equal(t, []any{"grp-a-m1", "grp-a-m2"}, args)
}

func TestSelectInConditionEmptyMatchesNothing(t *testing.T) {
	sql, args, err := qb.Select("public_id").
		From("matches").
		Where(qb.In("public_id", nil)).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "SELECT public_id FROM matches WHERE 1=0", sql)
	assert.Empty(t, args)
}

func TestInsertWithConflictSuffix(t *testing.T) {
	sql, args, err := qb.InsertInto("group_predictions").
		Columns("id", "user_id", "points").
		Values("prd-1", "user-1", 0).
		Suffix("ON CONFLICT (user_id) DO UPDATE SET points = EXCLUDED.points").
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO group_predictions (id, user_id, points) VALUES ($1, $2, $3) ON CONFLICT (user_id) DO UPDATE SET points = EXCLUDED.points", sql)
	assert.Equal(t, []any{"prd-1", "user-1", 0}, args)
}

func TestInsertMultiRow(t *testing.T) {
	sql, args, err := qb.InsertInto("match_predictions").
		Columns("id", "home_score").
		Values("prd-1", 2).
		Values("prd-2", 0).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO match_predictions (id, home_score) VALUES ($1, $2), ($3, $4)", sql)
	assert.Equal(t, []any{"prd-1", 2, "prd-2", 0}, args)
}

func TestInsertRowArityMismatch(t *testing.T) {
	_, _, err := qb.InsertInto("match_predictions").
		Columns("id", "home_score").
		Values("prd-1").
		ToSQL()
	require.Error(t, err)
}

func TestUpdateToSQL(t *testing.T) {
	sql, args, err := qb.Update("third_place_predictions").
		Set("points", 5).
		SetRaw("updated_at", "NOW()").
		Where(qb.Eq("user_id", "user-1"), qb.IsNull("deleted_at")).
		ToSQL()
	require.NoError(t, err)

	assert.Equal(t, "UPDATE third_place_predictions SET points = $1, updated_at = NOW() WHERE user_id = $2 AND deleted_at IS NULL", sql)
	assert.Equal(t, []any{5, "user-1"}, args)
}
