package team

import "fmt"

// Team is a national side competing in the tournament.
type Team struct {
	ID      string
	GroupID string
	Name    string
	Code    string
}

func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team id is required")
	}
	if t.GroupID == "" {
		return fmt.Errorf("team group id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("team name is required")
	}

	return nil
}
