package match

import (
	"fmt"
	"time"
)

// Stage identifies which phase of the tournament a match belongs to.
type Stage string

const (
	StageGroup      Stage = "group"
	StageRound32    Stage = "round_of_32"
	StageRound16    Stage = "round_of_16"
	StageQuarter    Stage = "quarter_final"
	StageSemi       Stage = "semi_final"
	StageThirdPlace Stage = "third_place_playoff"
	StageFinal      Stage = "final"
)

var AllStages = map[Stage]struct{}{
	StageGroup:      {},
	StageRound32:    {},
	StageRound16:    {},
	StageQuarter:    {},
	StageSemi:       {},
	StageThirdPlace: {},
	StageFinal:      {},
}

// Match is one fixture. CanEdit is derived by the catalog from kickoff time
// versus the clock; the prediction engine never recomputes it.
type Match struct {
	ID         string
	Stage      Stage
	GroupID    string
	HomeTeamID string
	AwayTeamID string
	KickoffAt  time.Time
	CanEdit    bool
}

func (m Match) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("match id is required")
	}
	if _, ok := AllStages[m.Stage]; !ok {
		return fmt.Errorf("unknown match stage: %s", m.Stage)
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match participants are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("match cannot pair a team against itself")
	}

	return nil
}
