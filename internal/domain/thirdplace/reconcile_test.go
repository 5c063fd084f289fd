package thirdplace

import "testing"

func poolOf(teamIDs ...string) []EligibleTeam {
	pool := make([]EligibleTeam, 0, len(teamIDs))
	for _, id := range teamIDs {
		pool = append(pool, EligibleTeam{
			TeamID:    id,
			TeamName:  "Team " + id,
			GroupName: "Group " + id,
		})
	}
	return pool
}

func TestReconcile_NoDrops(t *testing.T) {
	committed := []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8"}
	pool := poolOf("T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8", "T9", "T10")

	result := Reconcile(committed, pool)

	if result.HasDrops() {
		t.Fatalf("expected no drops, got %v", result.DroppedTeamIDs)
	}
	if len(result.Kept) != 8 {
		t.Fatalf("expected 8 kept teams, got %d", len(result.Kept))
	}
	if result.Working.Size() != 8 {
		t.Fatalf("expected working selection of 8, got %d", result.Working.Size())
	}
	if !result.Working.CanCommit(pool) {
		t.Fatal("unchanged full selection should be committable")
	}
}

func TestReconcile_DropsShrinkWorkingSelection(t *testing.T) {
	committed := []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8"}
	pool := poolOf("T1", "T3", "T5", "T6", "T7", "T8", "T9", "T10")

	result := Reconcile(committed, pool)

	wantKept := []string{"T1", "T3", "T5", "T6", "T7", "T8"}
	if len(result.Kept) != len(wantKept) {
		t.Fatalf("expected %d kept teams, got %d", len(wantKept), len(result.Kept))
	}
	for i, eligible := range result.Kept {
		if eligible.TeamID != wantKept[i] {
			t.Fatalf("kept[%d]: expected %s, got %s", i, wantKept[i], eligible.TeamID)
		}
	}

	wantDropped := []string{"T2", "T4"}
	if len(result.DroppedTeamIDs) != len(wantDropped) {
		t.Fatalf("expected dropped %v, got %v", wantDropped, result.DroppedTeamIDs)
	}
	for i, teamID := range result.DroppedTeamIDs {
		if teamID != wantDropped[i] {
			t.Fatalf("dropped[%d]: expected %s, got %s", i, wantDropped[i], teamID)
		}
	}

	if result.Working.Size() != 6 {
		t.Fatalf("expected working selection of 6, got %d", result.Working.Size())
	}
	if result.Working.CanCommit(pool) {
		t.Fatal("under-quota selection must not be committable")
	}
	// Under quota, but internally consistent: every survivor still eligible.
	for _, teamID := range result.Working.TeamIDs() {
		found := false
		for _, eligible := range pool {
			if eligible.TeamID == teamID {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("working selection holds ineligible team %s", teamID)
		}
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	committed := []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8"}
	pool := poolOf("T1", "T3", "T5", "T6", "T7", "T8", "T9", "T10")

	first := Reconcile(committed, pool)
	second := Reconcile(committed, pool)

	if len(first.Kept) != len(second.Kept) || len(first.DroppedTeamIDs) != len(second.DroppedTeamIDs) {
		t.Fatalf("reconciliation is not idempotent: %v vs %v", first, second)
	}
	for i := range first.Kept {
		if first.Kept[i].TeamID != second.Kept[i].TeamID {
			t.Fatalf("kept[%d] differs across runs: %s vs %s", i, first.Kept[i].TeamID, second.Kept[i].TeamID)
		}
	}
	for i := range first.DroppedTeamIDs {
		if first.DroppedTeamIDs[i] != second.DroppedTeamIDs[i] {
			t.Fatalf("dropped[%d] differs across runs", i)
		}
	}
}

func TestReconcile_EmptyCommitted(t *testing.T) {
	result := Reconcile(nil, poolOf("T1", "T2", "T3"))

	if result.HasDrops() {
		t.Fatalf("empty committed selection cannot drop anything, got %v", result.DroppedTeamIDs)
	}
	if result.Working.Size() != 0 {
		t.Fatalf("expected empty working selection, got %d", result.Working.Size())
	}
}

func TestReconcile_ReportsAgainstSmallPool(t *testing.T) {
	// Fewer than 8 eligible teams: kept/dropped must still be computed even
	// though committing is impossible against such a pool.
	committed := []string{"T1", "T2", "T3", "T4", "T5", "T6", "T7", "T8"}
	pool := poolOf("T1", "T2", "T3")

	result := Reconcile(committed, pool)

	if len(result.Kept) != 3 {
		t.Fatalf("expected 3 kept teams, got %d", len(result.Kept))
	}
	if len(result.DroppedTeamIDs) != 5 {
		t.Fatalf("expected 5 dropped teams, got %d", len(result.DroppedTeamIDs))
	}
	if result.Working.CanCommit(pool) {
		t.Fatal("selection must not be committable against a pool below quota")
	}
}
