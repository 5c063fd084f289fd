package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
)

// Overview is the aggregate read model behind the dashboard: every group
// board, the third-place state, and all match predictions in one payload.
type Overview struct {
	Groups     []GroupBoard
	ThirdPlace ThirdPlaceView
	Matches    []MatchView

	GroupsPredicted int
	GroupsTotal     int
	MatchesDrafted  int
	MatchesTotal    int
	TotalPoints     int
}

// OverviewService fans out to the per-area services and stitches their
// results together. It owns no state of its own.
type OverviewService struct {
	groupRepo  group.Repository
	groupOrder *GroupOrderService
	thirdPlace *ThirdPlaceService
	matchScore *MatchScoreService
	logger     *logging.Logger
}

func NewOverviewService(
	groupRepo group.Repository,
	groupOrder *GroupOrderService,
	thirdPlace *ThirdPlaceService,
	matchScore *MatchScoreService,
	logger *logging.Logger,
) *OverviewService {
	if logger == nil {
		logger = logging.Default()
	}

	return &OverviewService{
		groupRepo:  groupRepo,
		groupOrder: groupOrder,
		thirdPlace: thirdPlace,
		matchScore: matchScore,
		logger:     logger,
	}
}

// Build loads every section of the overview concurrently. Any section error
// fails the whole call; a half-built overview is worse than a retry.
func (s *OverviewService) Build(ctx context.Context, userID string) (Overview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverviewService.Build")
	defer span.End()

	userID, err := cleanUser(userID)
	if err != nil {
		return Overview{}, err
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return Overview{}, fmt.Errorf("list groups: %w", err)
	}

	var (
		boards     = make([]GroupBoard, len(groups))
		thirdPlace ThirdPlaceView
		matches    []MatchView
	)

	workers := pool.New().WithContext(ctx).WithCancelOnError()
	for i, g := range groups {
		i, g := i, g
		workers.Go(func(ctx context.Context) error {
			board, err := s.groupOrder.Board(ctx, userID, g.ID)
			if err != nil {
				return fmt.Errorf("build board group=%s: %w", g.ID, err)
			}
			boards[i] = board
			return nil
		})
	}
	workers.Go(func(ctx context.Context) error {
		view, err := s.thirdPlace.Reconcile(ctx, userID)
		if err != nil {
			return fmt.Errorf("reconcile third place: %w", err)
		}
		thirdPlace = view
		return nil
	})
	workers.Go(func(ctx context.Context) error {
		views, err := s.matchScore.List(ctx, userID)
		if err != nil {
			return fmt.Errorf("list match views: %w", err)
		}
		matches = views
		return nil
	})

	if err := workers.Wait(); err != nil {
		return Overview{}, err
	}

	overview := Overview{
		Groups:      boards,
		ThirdPlace:  thirdPlace,
		Matches:     matches,
		GroupsTotal: len(groups),
	}
	for _, board := range boards {
		if board.Committed {
			overview.GroupsPredicted++
			overview.TotalPoints += board.Points
		}
	}
	for _, view := range matches {
		if view.HasDraft {
			overview.MatchesDrafted++
		}
		if view.HasPrediction {
			overview.TotalPoints += view.Points
		}
	}
	overview.MatchesTotal = len(matches)
	overview.TotalPoints += thirdPlace.Points

	return overview, nil
}
