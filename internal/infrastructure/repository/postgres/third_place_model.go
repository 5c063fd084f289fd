package postgres

import (
	"time"

	"github.com/lib/pq"
)

type thirdPlacePredictionTableModel struct {
	ID               int64          `db:"id"`
	PublicID         string         `db:"public_id"`
	UserID           string         `db:"user_id"`
	AdvancingTeamIDs pq.StringArray `db:"advancing_team_ids"`
	Points           int            `db:"points"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}
