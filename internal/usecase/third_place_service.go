package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	"github.com/pickemlab/tournament-pickem/internal/domain/team"
	"github.com/pickemlab/tournament-pickem/internal/domain/thirdplace"
	"github.com/pickemlab/tournament-pickem/internal/platform/draft"
	idgen "github.com/pickemlab/tournament-pickem/internal/platform/id"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
)

// DroppedTeamNotice names a committed pick that fell out of the eligibility
// pool, so the caller can render an actionable "choose a replacement"
// message.
type DroppedTeamNotice struct {
	TeamID    string
	TeamName  string
	GroupName string
}

// ThirdPlaceView is the reconciled state of a user's third-place picks
// against the freshest eligibility pool.
type ThirdPlaceView struct {
	Pool          []thirdplace.EligibleTeam
	PoolReason    string
	Selected      []string
	Kept          []thirdplace.EligibleTeam
	Dropped       []DroppedTeamNotice
	RequiredCount int
	CanCommit     bool
	Committed     bool
	Points        int
}

// ThirdPlaceService reconciles committed third-place picks against the
// ever-shifting eligibility pool and manages the working selection.
type ThirdPlaceService struct {
	predictionRepo thirdplace.Repository
	teamRepo       team.Repository
	groupRepo      group.Repository
	eligibility    EligibilityProvider
	selections     *draft.Buffer[[]string]
	idGen          idgen.Generator
	logger         *logging.Logger
	now            func() time.Time
}

func NewThirdPlaceService(
	predictionRepo thirdplace.Repository,
	teamRepo team.Repository,
	groupRepo group.Repository,
	eligibility EligibilityProvider,
	idGen idgen.Generator,
	logger *logging.Logger,
) *ThirdPlaceService {
	if logger == nil {
		logger = logging.Default()
	}

	return &ThirdPlaceService{
		predictionRepo: predictionRepo,
		teamRepo:       teamRepo,
		groupRepo:      groupRepo,
		eligibility:    eligibility,
		selections:     draft.NewBuffer[[]string](),
		idGen:          idGen,
		logger:         logger,
		now:            time.Now,
	}
}

// Reconcile fetches a fresh eligibility pool and diffs the committed
// prediction against it. Kept and dropped are always derived from the
// committed state; the working selection keeps unsaved toggles, minus any
// member the pool no longer contains.
func (s *ThirdPlaceService) Reconcile(ctx context.Context, userID string) (ThirdPlaceView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ThirdPlaceService.Reconcile")
	defer span.End()

	userID, err := cleanUser(userID)
	if err != nil {
		return ThirdPlaceView{}, err
	}

	pool, err := s.eligibility.EligiblePool(ctx, userID)
	if err != nil {
		return ThirdPlaceView{}, fmt.Errorf("fetch eligibility pool: %w", err)
	}

	committed, exists, err := s.predictionRepo.GetByUser(ctx, userID)
	if err != nil {
		return ThirdPlaceView{}, fmt.Errorf("get third-place prediction: %w", err)
	}

	reconciliation := thirdplace.Reconcile(committed.AdvancingTeamIDs, pool.Teams)
	dropped, err := s.resolveDropNotices(ctx, reconciliation.DroppedTeamIDs)
	if err != nil {
		return ThirdPlaceView{}, err
	}
	if reconciliation.HasDrops() {
		s.logger.InfoContext(ctx, "third-place picks dropped by reconciliation",
			"user_id", userID,
			"dropped", reconciliation.DroppedTeamIDs,
			"kept_count", len(reconciliation.Kept),
		)
	}

	selection := s.workingSelection(userID, reconciliation, pool.Teams)

	return ThirdPlaceView{
		Pool:          pool.Teams,
		PoolReason:    pool.Reason,
		Selected:      selection.TeamIDs(),
		Kept:          reconciliation.Kept,
		Dropped:       dropped,
		RequiredCount: thirdplace.AdvancingCount,
		CanCommit:     len(pool.Teams) >= thirdplace.AdvancingCount && selection.CanCommit(pool.Teams),
		Committed:     exists,
		Points:        committed.Points,
	}, nil
}

// Toggle flips one team in the working selection against a fresh pool.
func (s *ThirdPlaceService) Toggle(ctx context.Context, userID, teamID string) (ThirdPlaceView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ThirdPlaceService.Toggle")
	defer span.End()

	userID, teamID, err := cleanUserAndEntity(userID, teamID, "team id")
	if err != nil {
		return ThirdPlaceView{}, err
	}

	view, err := s.Reconcile(ctx, userID)
	if err != nil {
		return ThirdPlaceView{}, err
	}

	selection := thirdplace.NewSelection(view.Selected...)
	if !selection.Contains(teamID) && !poolContains(view.Pool, teamID) {
		return ThirdPlaceView{}, fmt.Errorf("%w: team=%s", thirdplace.ErrTeamNotEligible, teamID)
	}
	if err := selection.Toggle(teamID); err != nil {
		return ThirdPlaceView{}, err
	}

	s.selections.Begin(userID, selection.TeamIDs())

	view.Selected = selection.TeamIDs()
	view.CanCommit = len(view.Pool) >= thirdplace.AdvancingCount && selection.CanCommit(view.Pool)

	return view, nil
}

// CancelEdit throws away unsaved toggles; the next reconcile falls back to
// the committed state.
func (s *ThirdPlaceService) CancelEdit(ctx context.Context, userID string) error {
	_, span := startUsecaseSpan(ctx, "usecase.ThirdPlaceService.CancelEdit")
	defer span.End()

	userID, err := cleanUser(userID)
	if err != nil {
		return err
	}

	s.selections.Cancel(userID)
	return nil
}

// Commit persists the working selection. The cardinality and eligibility
// invariants are enforced here, not just in the UI, because reconciliation
// can legally leave the selection under quota.
func (s *ThirdPlaceService) Commit(ctx context.Context, userID string) (thirdplace.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ThirdPlaceService.Commit")
	defer span.End()

	userID, err := cleanUser(userID)
	if err != nil {
		return thirdplace.Prediction{}, err
	}

	pool, err := s.eligibility.EligiblePool(ctx, userID)
	if err != nil {
		return thirdplace.Prediction{}, fmt.Errorf("fetch eligibility pool: %w", err)
	}
	if len(pool.Teams) < thirdplace.AdvancingCount {
		return thirdplace.Prediction{}, fmt.Errorf("%w: pool=%d required=%d",
			thirdplace.ErrInsufficientEligiblePool, len(pool.Teams), thirdplace.AdvancingCount)
	}

	committed, exists, err := s.predictionRepo.GetByUser(ctx, userID)
	if err != nil {
		return thirdplace.Prediction{}, fmt.Errorf("get third-place prediction: %w", err)
	}

	reconciliation := thirdplace.Reconcile(committed.AdvancingTeamIDs, pool.Teams)
	selection := s.workingSelection(userID, reconciliation, pool.Teams)
	_, revision, hasDraft := s.selections.Get(userID)

	if err := selection.ValidateForCommit(pool.Teams); err != nil {
		return thirdplace.Prediction{}, err
	}

	now := s.now().UTC()
	predictionID := committed.ID
	createdAt := committed.CreatedAt
	if !exists {
		predictionID, err = s.idGen.NewID()
		if err != nil {
			return thirdplace.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
		createdAt = now
	}

	prediction := thirdplace.Prediction{
		ID:               predictionID,
		UserID:           userID,
		AdvancingTeamIDs: selection.TeamIDs(),
		Points:           committed.Points,
		CreatedAt:        createdAt,
		UpdatedAt:        now,
	}
	if err := prediction.ValidateBasic(); err != nil {
		return thirdplace.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.predictionRepo.Upsert(ctx, prediction); err != nil {
		return thirdplace.Prediction{}, fmt.Errorf("%w: %v", ErrCommitRejected, err)
	}

	if hasDraft && !s.selections.Resolve(userID, revision) {
		s.logger.WarnContext(ctx, "third-place selection changed during commit, keeping newer edit state",
			"user_id", userID,
		)
	}

	s.logger.InfoContext(ctx, "third-place prediction committed",
		"user_id", userID,
		"prediction_id", prediction.ID,
		"team_count", len(prediction.AdvancingTeamIDs),
	)

	return prediction, nil
}

// workingSelection returns the user's unsaved selection filtered to the
// current pool, or the reconciled committed selection when no unsaved
// toggles exist.
func (s *ThirdPlaceService) workingSelection(userID string, reconciliation thirdplace.Reconciliation, pool []thirdplace.EligibleTeam) *thirdplace.Selection {
	draftIDs, _, ok := s.selections.Get(userID)
	if !ok {
		return reconciliation.Working
	}

	selection := thirdplace.NewSelection()
	for _, teamID := range draftIDs {
		if poolContains(pool, teamID) {
			_ = selection.Toggle(teamID)
		}
	}

	return selection
}

func (s *ThirdPlaceService) resolveDropNotices(ctx context.Context, droppedIDs []string) ([]DroppedTeamNotice, error) {
	if len(droppedIDs) == 0 {
		return nil, nil
	}

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	groupNameByID := make(map[string]string, len(groups))
	for _, g := range groups {
		groupNameByID[g.ID] = g.Name
	}

	notices := make([]DroppedTeamNotice, 0, len(droppedIDs))
	for _, teamID := range droppedIDs {
		notice := DroppedTeamNotice{TeamID: teamID, TeamName: teamID}
		if t, found, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			return nil, fmt.Errorf("resolve dropped team %s: %w", teamID, err)
		} else if found {
			notice.TeamName = t.Name
			notice.GroupName = groupNameByID[t.GroupID]
		}
		notices = append(notices, notice)
	}

	return notices, nil
}

func poolContains(pool []thirdplace.EligibleTeam, teamID string) bool {
	for _, eligible := range pool {
		if eligible.TeamID == teamID {
			return true
		}
	}
	return false
}
