package groupforecast

import (
	"errors"
	"fmt"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
)

var (
	ErrInvalidPermutation = errors.New("order is not a permutation of the group's teams")
	ErrIndexOutOfRange    = errors.New("position index out of range")
)

// Tier is what a final group position means for a team's tournament life.
type Tier string

const (
	// TierDirect: positions 1 and 2 advance to the knockout stage outright.
	TierDirect Tier = "direct"
	// TierThirdPlace: position 3 advances only if the team ranks among the
	// best third-placed sides across all groups.
	TierThirdPlace Tier = "third_place_contention"
	// TierEliminated: position 4 is out.
	TierEliminated Tier = "eliminated"
)

// TierForPosition maps a zero-based standings index to its advancement tier.
// The mapping is tournament policy and identical for every group.
func TierForPosition(index int) (Tier, error) {
	switch index {
	case 0, 1:
		return TierDirect, nil
	case 2:
		return TierThirdPlace, nil
	case 3:
		return TierEliminated, nil
	default:
		return "", fmt.Errorf("%w: index=%d", ErrIndexOutOfRange, index)
	}
}

// ValidateOrder checks that positions is exactly a permutation of the group's
// team ids: correct length, no duplicates, no foreign teams. Multiset
// equality, not just length.
func ValidateOrder(positions []string, groupTeamIDs []string) error {
	if len(positions) != group.Size || len(groupTeamIDs) != group.Size {
		return fmt.Errorf("%w: expected %d positions, got %d", ErrInvalidPermutation, group.Size, len(positions))
	}

	remaining := make(map[string]int, group.Size)
	for _, teamID := range groupTeamIDs {
		remaining[teamID]++
	}
	for _, teamID := range positions {
		count, ok := remaining[teamID]
		if !ok || count == 0 {
			return fmt.Errorf("%w: team %s is not placed exactly once", ErrInvalidPermutation, teamID)
		}
		remaining[teamID] = count - 1
	}

	return nil
}

// MoveTeam removes the team at from and reinserts it at to, mutating
// positions in place. Because the element is only relocated within the same
// backing sequence, a valid permutation stays a valid permutation.
func MoveTeam(positions []string, from, to int) error {
	if from < 0 || from >= len(positions) {
		return fmt.Errorf("%w: from=%d len=%d", ErrIndexOutOfRange, from, len(positions))
	}
	if to < 0 || to >= len(positions) {
		return fmt.Errorf("%w: to=%d len=%d", ErrIndexOutOfRange, to, len(positions))
	}
	if from == to {
		return nil
	}

	moved := positions[from]
	if from < to {
		copy(positions[from:], positions[from+1:to+1])
	} else {
		copy(positions[to+1:], positions[to:from])
	}
	positions[to] = moved

	return nil
}
