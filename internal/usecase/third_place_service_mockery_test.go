package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/pickemlab/tournament-pickem/internal/domain/thirdplace"
	"github.com/pickemlab/tournament-pickem/internal/infrastructure/repository/memory"
	thirdplacemock "github.com/pickemlab/tournament-pickem/internal/mocks/domain/thirdplace"
)

type stubEligibility struct {
	pool EligiblePool
	err  error
}

func (s *stubEligibility) EligiblePool(context.Context, string) (EligiblePool, error) {
	return s.pool, s.err
}

func openPoolOf(teamIDs ...string) EligiblePool {
	teams := make([]thirdplace.EligibleTeam, 0, len(teamIDs))
	for _, teamID := range teamIDs {
		teams = append(teams, thirdplace.EligibleTeam{TeamID: teamID})
	}
	return EligiblePool{Teams: teams}
}

func TestThirdPlaceService_Commit_SuccessUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := thirdplacemock.NewRepository(t)
	eligibility := &stubEligibility{pool: openPoolOf(drawThirdSeeds...)}

	service := NewThirdPlaceService(
		predictionRepo,
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewGroupRepository(memory.SeedGroups()),
		eligibility,
		&sequenceIDGen{},
		nil,
	)

	predictionRepo.
		On("GetByUser", mock.Anything, "user-1").
		Return(thirdplace.Prediction{}, false, nil)
	predictionRepo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(p thirdplace.Prediction) bool {
			return p.UserID == "user-1" && len(p.AdvancingTeamIDs) == thirdplace.AdvancingCount
		})).
		Return(nil).
		Once()

	for _, teamID := range drawThirdSeeds[:thirdplace.AdvancingCount] {
		if _, err := service.Toggle(ctx, "user-1", teamID); err != nil {
			t.Fatalf("toggle %s: %v", teamID, err)
		}
	}

	prediction, err := service.Commit(ctx, "user-1")
	if err != nil {
		t.Fatalf("commit third place selection: %v", err)
	}
	if prediction.ID == "" {
		t.Fatal("committed prediction should carry a generated id")
	}
}

func TestThirdPlaceService_Commit_BackendRejectionUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	predictionRepo := thirdplacemock.NewRepository(t)
	eligibility := &stubEligibility{pool: openPoolOf(drawThirdSeeds...)}

	service := NewThirdPlaceService(
		predictionRepo,
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewGroupRepository(memory.SeedGroups()),
		eligibility,
		&sequenceIDGen{},
		nil,
	)

	predictionRepo.
		On("GetByUser", mock.Anything, "user-1").
		Return(thirdplace.Prediction{}, false, nil)
	predictionRepo.
		On("Upsert", mock.Anything, mock.Anything).
		Return(errors.New("prediction quota exceeded for account")).
		Once()

	for _, teamID := range drawThirdSeeds[:thirdplace.AdvancingCount] {
		if _, err := service.Toggle(ctx, "user-1", teamID); err != nil {
			t.Fatalf("toggle %s: %v", teamID, err)
		}
	}

	_, err := service.Commit(ctx, "user-1")
	if !errors.Is(err, ErrCommitRejected) {
		t.Fatalf("expected ErrCommitRejected, got %v", err)
	}
	if !strings.Contains(err.Error(), "prediction quota exceeded for account") {
		t.Fatalf("backend reason should survive verbatim, got %q", err.Error())
	}
}

func TestThirdPlaceService_Commit_GatedPoolUsingMockery(t *testing.T) {
	t.Parallel()

	predictionRepo := thirdplacemock.NewRepository(t)
	eligibility := &stubEligibility{pool: EligiblePool{Reason: "third-place picks open once every group is predicted (3 of 12 done)"}}

	service := NewThirdPlaceService(
		predictionRepo,
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewGroupRepository(memory.SeedGroups()),
		eligibility,
		&sequenceIDGen{},
		nil,
	)

	_, err := service.Commit(context.Background(), "user-1")
	if !errors.Is(err, thirdplace.ErrInsufficientEligiblePool) {
		t.Fatalf("expected ErrInsufficientEligiblePool, got %v", err)
	}
}
