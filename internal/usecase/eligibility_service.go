package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/team"
	"github.com/pickemlab/tournament-pickem/internal/domain/thirdplace"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
)

// EligiblePool is the third-place eligibility snapshot for one user at one
// point in time. Reason is set when the pool is gated shut (not every group
// predicted yet).
type EligiblePool struct {
	Teams  []thirdplace.EligibleTeam
	Reason string
}

// EligibilityProvider recomputes the pool from the current authoritative
// state. Implementations must never serve a cached snapshot: the pool changes
// whenever a group prediction changes.
type EligibilityProvider interface {
	EligiblePool(ctx context.Context, userID string) (EligiblePool, error)
}

// EligibilityService derives the third-place pool from the user's committed
// group orderings: one candidate per group, the team ranked third. The pool
// stays empty until every group has a committed prediction.
type EligibilityService struct {
	groupRepo    group.Repository
	teamRepo     team.Repository
	forecastRepo groupforecast.Repository
	logger       *logging.Logger
}

func NewEligibilityService(
	groupRepo group.Repository,
	teamRepo team.Repository,
	forecastRepo groupforecast.Repository,
	logger *logging.Logger,
) *EligibilityService {
	if logger == nil {
		logger = logging.Default()
	}

	return &EligibilityService{
		groupRepo:    groupRepo,
		teamRepo:     teamRepo,
		forecastRepo: forecastRepo,
		logger:       logger,
	}
}

func (s *EligibilityService) EligiblePool(ctx context.Context, userID string) (EligiblePool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.EligibilityService.EligiblePool")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return EligiblePool{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return EligiblePool{}, fmt.Errorf("list groups: %w", err)
	}

	predictions, err := s.forecastRepo.ListByUser(ctx, userID)
	if err != nil {
		return EligiblePool{}, fmt.Errorf("list group predictions: %w", err)
	}
	predictionByGroup := make(map[string]groupforecast.Prediction, len(predictions))
	for _, p := range predictions {
		predictionByGroup[p.GroupID] = p
	}

	predicted := 0
	for _, g := range groups {
		if _, ok := predictionByGroup[g.ID]; ok {
			predicted++
		}
	}
	if predicted < len(groups) {
		return EligiblePool{
			Reason: fmt.Sprintf("third-place picks open once every group is predicted (%d of %d done)", predicted, len(groups)),
		}, nil
	}

	pool := make([]thirdplace.EligibleTeam, 0, len(groups))
	for _, g := range groups {
		prediction := predictionByGroup[g.ID]
		if len(prediction.Positions) != group.Size {
			return EligiblePool{}, fmt.Errorf("group %s prediction has %d positions", g.ID, len(prediction.Positions))
		}

		thirdTeamID := prediction.Positions[2]
		candidate, found, err := s.teamRepo.GetByID(ctx, thirdTeamID)
		if err != nil {
			return EligiblePool{}, fmt.Errorf("resolve team %s: %w", thirdTeamID, err)
		}
		if !found {
			return EligiblePool{}, fmt.Errorf("%w: team %s from group %s prediction", ErrNotFound, thirdTeamID, g.ID)
		}

		pool = append(pool, thirdplace.EligibleTeam{
			TeamID:    candidate.ID,
			TeamName:  candidate.Name,
			GroupName: g.Name,
		})
	}

	s.logger.DebugContext(ctx, "eligibility pool computed", "user_id", userID, "pool_size", len(pool))

	return EligiblePool{Teams: pool}, nil
}
