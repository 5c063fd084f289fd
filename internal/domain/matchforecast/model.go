package matchforecast

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrMatchLocked   = errors.New("match can no longer be edited")
	ErrNegativeScore = errors.New("score must be a non-negative integer")
)

// Side selects which half of a scoreline a draft edit targets.
type Side string

const (
	SideHome Side = "home"
	SideAway Side = "away"
)

// Prediction is a user's committed scoreline for one match.
type Prediction struct {
	ID        string
	UserID    string
	MatchID   string
	HomeScore int
	AwayScore int
	Points    int
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Prediction) ValidateBasic() error {
	if p.ID == "" {
		return fmt.Errorf("prediction id is required")
	}
	if p.UserID == "" {
		return fmt.Errorf("user id is required")
	}
	if p.MatchID == "" {
		return fmt.Errorf("match id is required")
	}
	if p.HomeScore < 0 || p.AwayScore < 0 {
		return fmt.Errorf("%w: home=%d away=%d", ErrNegativeScore, p.HomeScore, p.AwayScore)
	}

	return nil
}

// ValidateScore checks a single draft score value. There is no upper bound:
// the engine never clamps; capping is a presentation concern.
func ValidateScore(value int) error {
	if value < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeScore, value)
	}
	return nil
}

// ValidateSide rejects anything but the two known scoreline sides.
func ValidateSide(side Side) error {
	switch side {
	case SideHome, SideAway:
		return nil
	default:
		return fmt.Errorf("unknown scoreline side: %q", side)
	}
}
