package groupforecast

import (
	"fmt"
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
)

// Prediction is a user's committed final ordering for one group.
type Prediction struct {
	ID        string
	UserID    string
	GroupID   string
	Positions []string
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
	if p.GroupID == "" {
		return fmt.Errorf("group id is required")
	}
	if len(p.Positions) != group.Size {
		return fmt.Errorf("prediction must rank exactly %d teams, got %d", group.Size, len(p.Positions))
	}

	return nil
}
