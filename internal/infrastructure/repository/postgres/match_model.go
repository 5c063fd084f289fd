package postgres

import "time"

type matchTableModel struct {
	ID               int64      `db:"id"`
	PublicID         string     `db:"public_id"`
	Stage            string     `db:"stage"`
	GroupPublicID    string     `db:"group_public_id"`
	HomeTeamPublicID string     `db:"home_team_public_id"`
	AwayTeamPublicID string     `db:"away_team_public_id"`
	KickoffAt        time.Time  `db:"kickoff_at"`
	CreatedAt        time.Time  `db:"created_at"`
	UpdatedAt        time.Time  `db:"updated_at"`
	DeletedAt        *time.Time `db:"deleted_at"`
}
