package thirdplace

import (
	"fmt"
	"time"
)

// AdvancingCount is how many third-placed teams reach the knockout stage.
const AdvancingCount = 8

// EligibleTeam is one entry of the computed eligibility pool: the team a user
// ranked third in some group. The pool is ephemeral and recomputed from the
// user's group predictions on every read.
type EligibleTeam struct {
	TeamID    string
	TeamName  string
	GroupName string
}

// Prediction is a user's committed pick of advancing third-placed teams.
// The stored set is only guaranteed to satisfy the eligibility invariant at
// the moment it was committed; the pool can shrink afterwards when upstream
// group predictions change.
type Prediction struct {
	ID               string
	UserID           string
	AdvancingTeamIDs []string
	Points           int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (p Prediction) ValidateBasic() error {
	if p.ID == "" {
		return fmt.Errorf("prediction id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if len(p.AdvancingTeamIDs) != AdvancingCount {
		return fmt.Errorf("prediction must advance exactly %d teams, got %d", AdvancingCount, len(p.AdvancingTeamIDs))
	}

	seen := make(map[string]struct{}, len(p.AdvancingTeamIDs))
	for _, teamID := range p.AdvancingTeamIDs {
		if teamID == "" {
			return fmt.Errorf("advancing team id cannot be empty")
		}
		if _, ok := seen[teamID]; ok {
			return fmt.Errorf("duplicate advancing team %s", teamID)
		}
		seen[teamID] = struct{}{}
	}

	return nil
}
