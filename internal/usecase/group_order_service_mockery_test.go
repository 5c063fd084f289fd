package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
	"github.com/pickemlab/tournament-pickem/internal/infrastructure/repository/memory"
	groupforecastmock "github.com/pickemlab/tournament-pickem/internal/mocks/domain/groupforecast"
)

func TestGroupOrderService_Commit_KeepsIdentityOnRecommitUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	forecastRepo := groupforecastmock.NewRepository(t)

	service := NewGroupOrderService(
		memory.NewGroupRepository(memory.SeedGroups()),
		memory.NewTeamRepository(memory.SeedTeams()),
		forecastRepo,
		&sequenceIDGen{},
		nil,
	)

	existing := groupforecast.Prediction{
		ID:        "prd-existing",
		UserID:    "user-1",
		GroupID:   "grp-a",
		Positions: []string{"mex", "rsa", "kor", "nor"},
		Points:    6,
		CreatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
	}

	forecastRepo.
		On("GetByUserAndGroup", mock.Anything, "user-1", "grp-a").
		Return(existing, true, nil)
	forecastRepo.
		On("Upsert", mock.Anything, mock.MatchedBy(func(p groupforecast.Prediction) bool {
			return p.ID == "prd-existing" &&
				p.Points == 6 &&
				p.CreatedAt.Equal(existing.CreatedAt) &&
				p.Positions[0] == "kor"
		})).
		Return(nil).
		Once()

	if _, err := service.ProposeOrder(ctx, "user-1", "grp-a", []string{"kor", "mex", "nor", "rsa"}); err != nil {
		t.Fatalf("propose order: %v", err)
	}

	prediction, err := service.Commit(ctx, "user-1", "grp-a")
	if err != nil {
		t.Fatalf("commit group order: %v", err)
	}
	if prediction.ID != "prd-existing" {
		t.Fatalf("recommit must keep the prediction id, got %s", prediction.ID)
	}
	if prediction.UpdatedAt.Equal(existing.UpdatedAt) {
		t.Fatal("recommit should refresh the update timestamp")
	}
}
