package postgres

import (
	"time"

	"github.com/lib/pq"
)

type groupPredictionTableModel struct {
	ID            int64          `db:"id"`
	PublicID      string         `db:"public_id"`
	UserID        string         `db:"user_id"`
	GroupPublicID string         `db:"group_public_id"`
	Positions     pq.StringArray `db:"positions"`
	Points        int            `db:"points"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
	DeletedAt     *time.Time     `db:"deleted_at"`
}
