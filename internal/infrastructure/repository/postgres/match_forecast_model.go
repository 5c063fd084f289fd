package postgres

import "time"

type matchPredictionTableModel struct {
	ID            int64      `db:"id"`
	PublicID      string     `db:"public_id"`
	UserID        string     `db:"user_id"`
	MatchPublicID string     `db:"match_public_id"`
	HomeScore     int        `db:"home_score"`
	AwayScore     int        `db:"away_score"`
	Points        int        `db:"points"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}
