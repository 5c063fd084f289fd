package thirdplace

import (
	"errors"
	"fmt"
)

var (
	ErrSelectionFull      = errors.New("selection already holds the maximum number of teams")
	ErrWrongSelectionSize = errors.New("selection size does not match the required count")
	ErrTeamNotEligible    = errors.New("selected team is not in the eligible pool")
)

// Selection is a working set of advancing third-placed teams, bounded by
// AdvancingCount. Insertion order is preserved for display.
type Selection struct {
	ordered []string
	members map[string]struct{}
}

func NewSelection(teamIDs ...string) *Selection {
	s := &Selection{members: make(map[string]struct{}, AdvancingCount)}
	for _, teamID := range teamIDs {
		s.add(teamID)
	}
	return s
}

// Toggle removes teamID when present (always allowed) or adds it when
// absent. Adding to a full selection fails with ErrSelectionFull and leaves
// the selection unchanged.
func (s *Selection) Toggle(teamID string) error {
	if _, ok := s.members[teamID]; ok {
		s.remove(teamID)
		return nil
	}
	if len(s.ordered) >= AdvancingCount {
		return fmt.Errorf("%w: limit=%d", ErrSelectionFull, AdvancingCount)
	}
	s.add(teamID)
	return nil
}

// Contains reports membership.
func (s *Selection) Contains(teamID string) bool {
	_, ok := s.members[teamID]
	return ok
}

// TeamIDs returns the selected team ids in insertion order.
func (s *Selection) TeamIDs() []string {
	return append([]string(nil), s.ordered...)
}

func (s *Selection) Size() int {
	return len(s.ordered)
}

// CanCommit reports whether the selection is exactly at quota with every
// member still eligible.
func (s *Selection) CanCommit(pool []EligibleTeam) bool {
	return s.ValidateForCommit(pool) == nil
}

// ValidateForCommit enforces the commit-time invariant: exactly
// AdvancingCount members, all drawn from pool. The working set can
// legitimately sit below quota after a reconciliation drop, so this check
// belongs at commit time, not only in the UI.
func (s *Selection) ValidateForCommit(pool []EligibleTeam) error {
	if len(s.ordered) != AdvancingCount {
		return fmt.Errorf("%w: required=%d actual=%d", ErrWrongSelectionSize, AdvancingCount, len(s.ordered))
	}

	eligible := make(map[string]struct{}, len(pool))
	for _, e := range pool {
		eligible[e.TeamID] = struct{}{}
	}
	for _, teamID := range s.ordered {
		if _, ok := eligible[teamID]; !ok {
			return fmt.Errorf("%w: team=%s", ErrTeamNotEligible, teamID)
		}
	}

	return nil
}

func (s *Selection) add(teamID string) {
	if teamID == "" {
		return
	}
	if _, ok := s.members[teamID]; ok {
		return
	}
	s.members[teamID] = struct{}{}
	s.ordered = append(s.ordered, teamID)
}

func (s *Selection) remove(teamID string) {
	if _, ok := s.members[teamID]; !ok {
		return
	}
	delete(s.members, teamID)
	for i, id := range s.ordered {
		if id == teamID {
			s.ordered = append(s.ordered[:i], s.ordered[i+1:]...)
			break
		}
	}
}
