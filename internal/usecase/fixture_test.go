package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	"github.com/pickemlab/tournament-pickem/internal/infrastructure/repository/memory"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
)

// sequenceIDGen issues deterministic ids so tests can assert on them.
type sequenceIDGen struct {
	next int
}

func (g *sequenceIDGen) NewID() (string, error) {
	g.next++
	return fmt.Sprintf("test-id-%d", g.next), nil
}

type engineFixture struct {
	groups  []group.Group
	kickoff time.Time

	groupRepo      *memory.GroupRepository
	teamRepo       *memory.TeamRepository
	matchRepo      *memory.MatchRepository
	groupForecasts *memory.GroupForecastRepository
	matchForecasts *memory.MatchForecastRepository
	thirdPlaceRepo *memory.ThirdPlaceRepository

	eligibility *EligibilityService
	groupOrder  *GroupOrderService
	thirdPlace  *ThirdPlaceService
	matchScore  *MatchScoreService
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	kickoff := time.Now().Add(24 * time.Hour)
	groups := memory.SeedGroups()
	teams := memory.SeedTeams()
	matches := memory.SeedMatches(kickoff)

	f := &engineFixture{
		groups:         groups,
		kickoff:        kickoff,
		groupRepo:      memory.NewGroupRepository(groups),
		teamRepo:       memory.NewTeamRepository(teams),
		matchRepo:      memory.NewMatchRepository(matches),
		groupForecasts: memory.NewGroupForecastRepository(),
		matchForecasts: memory.NewMatchForecastRepository(),
		thirdPlaceRepo: memory.NewThirdPlaceRepository(),
	}

	logger := logging.NewNop()
	idGen := &sequenceIDGen{}

	f.eligibility = NewEligibilityService(f.groupRepo, f.teamRepo, f.groupForecasts, logger)
	f.groupOrder = NewGroupOrderService(f.groupRepo, f.teamRepo, f.groupForecasts, idGen, logger)
	f.thirdPlace = NewThirdPlaceService(f.thirdPlaceRepo, f.teamRepo, f.groupRepo, f.eligibility, idGen, logger)
	f.matchScore = NewMatchScoreService(f.matchRepo, f.teamRepo, f.matchForecasts, idGen, logger)

	return f
}

// predictAllGroups commits the draw order for every group, which opens the
// third-place pool with each group's third seed.
func (f *engineFixture) predictAllGroups(t *testing.T, userID string) {
	t.Helper()

	ctx := context.Background()
	for _, g := range f.groups {
		if _, err := f.groupOrder.BeginEdit(ctx, userID, g.ID); err != nil {
			t.Fatalf("BeginEdit(%s): %v", g.ID, err)
		}
		if _, err := f.groupOrder.Commit(ctx, userID, g.ID); err != nil {
			t.Fatalf("Commit(%s): %v", g.ID, err)
		}
	}
}
