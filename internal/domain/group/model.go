package group

import "fmt"

// Size is the number of teams in every tournament group.
const Size = 4

// Group is one first-stage group. Membership is fixed once the draw is
// published.
type Group struct {
	ID      string
	Name    string
	TeamIDs []string
}

func (g Group) Validate() error {
	if g.ID == "" {
		return fmt.Errorf("group id is required")
	}
	if g.Name == "" {
		return fmt.Errorf("group name is required")
	}
	if len(g.TeamIDs) != Size {
		return fmt.Errorf("group must contain exactly %d teams, got %d", Size, len(g.TeamIDs))
	}

	seen := make(map[string]struct{}, len(g.TeamIDs))
	for _, teamID := range g.TeamIDs {
		if teamID == "" {
			return fmt.Errorf("group team id cannot be empty")
		}
		if _, ok := seen[teamID]; ok {
			return fmt.Errorf("duplicate team %s in group %s", teamID, g.ID)
		}
		seen[teamID] = struct{}{}
	}

	return nil
}

// Contains reports whether teamID is a member of the group.
func (g Group) Contains(teamID string) bool {
	for _, id := range g.TeamIDs {
		if id == teamID {
			return true
		}
	}
	return false
}
