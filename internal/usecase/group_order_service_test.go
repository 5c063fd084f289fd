package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
)

func boardOrder(board GroupBoard) []string {
	out := make([]string, 0, len(board.Entries))
	for _, entry := range board.Entries {
		out = append(out, entry.TeamID)
	}
	return out
}

func TestGroupOrderBeginEditSeedsDrawOrder(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	board, err := f.groupOrder.BeginEdit(ctx, "user-1", "grp-a")
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if !board.Editing {
		t.Fatal("expected board to be in editing state")
	}

	want := []string{"mex", "rsa", "kor", "nor"}
	got := boardOrder(board)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGroupOrderMoveTeamReordersDraft(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	if _, err := f.groupOrder.BeginEdit(ctx, "user-1", "grp-a"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}

	board, err := f.groupOrder.MoveTeam(ctx, "user-1", "grp-a", 0, 2)
	if err != nil {
		t.Fatalf("MoveTeam: %v", err)
	}

	want := []string{"rsa", "kor", "mex", "nor"}
	got := boardOrder(board)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGroupOrderMoveTeamOutOfRangeLeavesDraftUntouched(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	if _, err := f.groupOrder.BeginEdit(ctx, "user-1", "grp-a"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}

	if _, err := f.groupOrder.MoveTeam(ctx, "user-1", "grp-a", 1, 4); !errors.Is(err, groupforecast.ErrIndexOutOfRange) {
		t.Fatalf("expected ErrIndexOutOfRange, got %v", err)
	}

	board, err := f.groupOrder.Board(ctx, "user-1", "grp-a")
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	want := []string{"mex", "rsa", "kor", "nor"}
	got := boardOrder(board)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d after failed move: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGroupOrderMoveTeamRequiresActiveEdit(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.groupOrder.MoveTeam(context.Background(), "user-1", "grp-a", 0, 1)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGroupOrderProposeOrderRejectsNonPermutation(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	cases := map[string][]string{
		"duplicate":    {"mex", "mex", "kor", "nor"},
		"foreign team": {"mex", "rsa", "kor", "bra"},
		"short":        {"mex", "rsa", "kor"},
	}
	for name, positions := range cases {
		if _, err := f.groupOrder.ProposeOrder(ctx, "user-1", "grp-a", positions); !errors.Is(err, groupforecast.ErrInvalidPermutation) {
			t.Fatalf("%s: expected ErrInvalidPermutation, got %v", name, err)
		}
	}
}

func TestGroupOrderCommitPersistsAndClearsDraft(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	if _, err := f.groupOrder.ProposeOrder(ctx, "user-1", "grp-a", []string{"kor", "mex", "nor", "rsa"}); err != nil {
		t.Fatalf("ProposeOrder: %v", err)
	}

	prediction, err := f.groupOrder.Commit(ctx, "user-1", "grp-a")
	if err != nil {
		t.Fatalf("Commit: %v", err)
	}
	if prediction.Positions[0] != "kor" || prediction.Positions[3] != "rsa" {
		t.Fatalf("unexpected committed positions: %v", prediction.Positions)
	}

	board, err := f.groupOrder.Board(ctx, "user-1", "grp-a")
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if board.Editing {
		t.Fatal("draft should be cleared after commit")
	}
	if !board.Committed {
		t.Fatal("board should reflect committed prediction")
	}
	if got := boardOrder(board); got[0] != "kor" {
		t.Fatalf("board should show committed order, got %v", got)
	}
}

func TestGroupOrderCommitWithoutDraftFails(t *testing.T) {
	f := newEngineFixture(t)

	_, err := f.groupOrder.Commit(context.Background(), "user-1", "grp-a")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestGroupOrderCancelEditRevertsToCommitted(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	if _, err := f.groupOrder.ProposeOrder(ctx, "user-1", "grp-a", []string{"kor", "mex", "nor", "rsa"}); err != nil {
		t.Fatalf("ProposeOrder: %v", err)
	}
	if _, err := f.groupOrder.Commit(ctx, "user-1", "grp-a"); err != nil {
		t.Fatalf("Commit: %v", err)
	}

	if _, err := f.groupOrder.BeginEdit(ctx, "user-1", "grp-a"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if _, err := f.groupOrder.MoveTeam(ctx, "user-1", "grp-a", 0, 3); err != nil {
		t.Fatalf("MoveTeam: %v", err)
	}
	if err := f.groupOrder.CancelEdit(ctx, "user-1", "grp-a"); err != nil {
		t.Fatalf("CancelEdit: %v", err)
	}

	board, err := f.groupOrder.Board(ctx, "user-1", "grp-a")
	if err != nil {
		t.Fatalf("Board: %v", err)
	}
	if board.Editing {
		t.Fatal("cancel should end the edit session")
	}
	if got := boardOrder(board); got[0] != "kor" {
		t.Fatalf("board should revert to committed order, got %v", got)
	}
}

func TestGroupOrderBoardTiersFollowPosition(t *testing.T) {
	f := newEngineFixture(t)

	board, err := f.groupOrder.Board(context.Background(), "user-1", "grp-a")
	if err != nil {
		t.Fatalf("Board: %v", err)
	}

	wantTiers := []groupforecast.Tier{
		groupforecast.TierDirect,
		groupforecast.TierDirect,
		groupforecast.TierThirdPlace,
		groupforecast.TierEliminated,
	}
	for i, entry := range board.Entries {
		if entry.Tier != wantTiers[i] {
			t.Fatalf("position %d: got tier %s, want %s", i, entry.Tier, wantTiers[i])
		}
	}
}

func TestGroupOrderDraftsAreIndependentPerGroupAndUser(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	if _, err := f.groupOrder.BeginEdit(ctx, "user-1", "grp-a"); err != nil {
		t.Fatalf("BeginEdit user-1: %v", err)
	}
	if _, err := f.groupOrder.MoveTeam(ctx, "user-1", "grp-a", 0, 3); err != nil {
		t.Fatalf("MoveTeam user-1: %v", err)
	}

	// Same group, different user: no draft exists yet.
	if _, err := f.groupOrder.MoveTeam(ctx, "user-2", "grp-a", 0, 1); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for user-2, got %v", err)
	}

	// Same user, different group: also untouched.
	board, err := f.groupOrder.Board(ctx, "user-1", "grp-b")
	if err != nil {
		t.Fatalf("Board grp-b: %v", err)
	}
	if board.Editing {
		t.Fatal("grp-b should have no active edit")
	}
}

func TestGroupOrderCommitSurfacesBackendRejection(t *testing.T) {
	f := newEngineFixture(t)
	ctx := context.Background()

	failing := &failingGroupForecastRepo{
		Repository: f.groupForecasts,
		upsertErr:  errors.New("storage offline"),
	}
	svc := NewGroupOrderService(f.groupRepo, f.teamRepo, failing, &sequenceIDGen{}, nil)

	if _, err := svc.BeginEdit(ctx, "user-1", "grp-a"); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}

	_, err := svc.Commit(ctx, "user-1", "grp-a")
	if !errors.Is(err, ErrCommitRejected) {
		t.Fatalf("expected ErrCommitRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "storage offline") {
		t.Fatalf("rejection reason should survive verbatim, got %q", err.Error())
	}

	// The draft survives a rejected commit so the user can retry.
	board, boardErr := svc.Board(ctx, "user-1", "grp-a")
	if boardErr != nil {
		t.Fatalf("Board: %v", boardErr)
	}
	if !board.Editing {
		t.Fatal("draft should survive a rejected commit")
	}
}

type failingGroupForecastRepo struct {
	groupforecast.Repository
	upsertErr error
}

func (r *failingGroupForecastRepo) Upsert(ctx context.Context, prediction groupforecast.Prediction) error {
	return r.upsertErr
}
