package thirdplace

import "errors"

var ErrInsufficientEligiblePool = errors.New("eligible pool is too small to commit a third-place prediction")

// Reconciliation is the outcome of diffing a committed selection against the
// current eligibility pool.
type Reconciliation struct {
	// Kept are committed teams still present in the pool, in pool order.
	Kept []EligibleTeam
	// DroppedTeamIDs are committed teams no longer eligible, in committed
	// order. Display metadata for these is gone from the pool and has to be
	// resolved from the catalog by the caller.
	DroppedTeamIDs []string
	// Working is the reconciled selection the user continues editing from:
	// the committed set when nothing was dropped, otherwise the kept subset.
	Working *Selection
}

// HasDrops reports whether reconciliation removed anything from the
// committed selection.
func (r Reconciliation) HasDrops() bool {
	return len(r.DroppedTeamIDs) > 0
}

// Reconcile partitions committedIDs into kept (still in pool) and dropped
// (gone from pool) and builds the working selection. It is a pure function:
// callers must pass the freshest pool on every invocation, never a cached
// one, because upstream group predictions can change between any two calls.
// When teams were dropped the working selection is left under quota rather
// than auto-filled; choosing replacements is the user's call.
func Reconcile(committedIDs []string, pool []EligibleTeam) Reconciliation {
	poolByID := make(map[string]EligibleTeam, len(pool))
	for _, eligible := range pool {
		poolByID[eligible.TeamID] = eligible
	}

	committed := make(map[string]struct{}, len(committedIDs))
	dropped := make([]string, 0)
	for _, teamID := range committedIDs {
		committed[teamID] = struct{}{}
		if _, ok := poolByID[teamID]; !ok {
			dropped = append(dropped, teamID)
		}
	}

	kept := make([]EligibleTeam, 0, len(committedIDs))
	for _, eligible := range pool {
		if _, ok := committed[eligible.TeamID]; ok {
			kept = append(kept, eligible)
		}
	}

	working := NewSelection()
	for _, eligible := range kept {
		working.add(eligible.TeamID)
	}

	return Reconciliation{
		Kept:           kept,
		DroppedTeamIDs: dropped,
		Working:        working,
	}
}
