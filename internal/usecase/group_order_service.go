package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/team"
	"github.com/pickemlab/tournament-pickem/internal/platform/draft"
	idgen "github.com/pickemlab/tournament-pickem/internal/platform/id"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
)

// GroupBoardEntry is one row of a group's predicted table.
type GroupBoardEntry struct {
	TeamID   string
	TeamName string
	TeamCode string
	Position int
	Tier     groupforecast.Tier
}

// GroupBoard is the view state for one group: the draft order while editing,
// otherwise the committed order, otherwise the published draw order.
type GroupBoard struct {
	GroupID   string
	GroupName string
	Entries   []GroupBoardEntry
	Editing   bool
	Committed bool
	Points    int
}

// GroupOrderService owns draft/commit state for per-group final orderings.
type GroupOrderService struct {
	groupRepo    group.Repository
	teamRepo     team.Repository
	forecastRepo groupforecast.Repository
	drafts       *draft.Buffer[[]string]
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewGroupOrderService(
	groupRepo group.Repository,
	teamRepo team.Repository,
	forecastRepo groupforecast.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *GroupOrderService {
	if logger == nil {
		logger = logging.Default()
	}

	return &GroupOrderService{
		groupRepo:    groupRepo,
		teamRepo:     teamRepo,
		forecastRepo: forecastRepo,
		drafts:       draft.NewBuffer[[]string](),
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// Board returns the current view state for one group.
// GroupSummary is one group of the published draw with its member teams, in
// draw order.
type GroupSummary struct {
	GroupID   string
	GroupName string
	Teams     []TeamInfo
}

// TeamInfo is a catalog reference to one team.
type TeamInfo struct {
	TeamID   string
	TeamName string
	TeamCode string
}

// ListGroups returns the published draw. It is user-independent.
func (s *GroupOrderService) ListGroups(ctx context.Context) ([]GroupSummary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupOrderService.ListGroups")
	defer span.End()

	groups, err := s.groupRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}

	teamByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	out := make([]GroupSummary, 0, len(groups))
	for _, g := range groups {
		summary := GroupSummary{
			GroupID:   g.ID,
			GroupName: g.Name,
			Teams:     make([]TeamInfo, 0, len(g.TeamIDs)),
		}
		for _, teamID := range g.TeamIDs {
			t := teamByID[teamID]
			summary.Teams = append(summary.Teams, TeamInfo{
				TeamID:   teamID,
				TeamName: t.Name,
				TeamCode: t.Code,
			})
		}
		out = append(out, summary)
	}

	return out, nil
}

func (s *GroupOrderService) Board(ctx context.Context, userID, groupID string) (GroupBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupOrderService.Board")
	defer span.End()

	userID, groupID, err := cleanUserAndEntity(userID, groupID, "group id")
	if err != nil {
		return GroupBoard{}, err
	}

	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return GroupBoard{}, err
	}

	positions, editing, committed, points, err := s.currentOrder(ctx, userID, g)
	if err != nil {
		return GroupBoard{}, err
	}

	return s.buildBoard(ctx, g, positions, editing, committed, points)
}

// BeginEdit opens (or reopens, overwriting) a draft for the group, seeded
// from the committed prediction when one exists and from the published draw
// order otherwise.
func (s *GroupOrderService) BeginEdit(ctx context.Context, userID, groupID string) (GroupBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupOrderService.BeginEdit")
	defer span.End()

	userID, groupID, err := cleanUserAndEntity(userID, groupID, "group id")
	if err != nil {
		return GroupBoard{}, err
	}

	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return GroupBoard{}, err
	}

	seed := append([]string(nil), g.TeamIDs...)
	prediction, exists, err := s.forecastRepo.GetByUserAndGroup(ctx, userID, groupID)
	if err != nil {
		return GroupBoard{}, fmt.Errorf("get group prediction: %w", err)
	}
	if exists {
		seed = append([]string(nil), prediction.Positions...)
	}

	s.drafts.Begin(orderDraftKey(userID, groupID), seed)

	return s.buildBoard(ctx, g, seed, true, exists, prediction.Points)
}

// MoveTeam relocates one team inside the active draft order.
func (s *GroupOrderService) MoveTeam(ctx context.Context, userID, groupID string, from, to int) (GroupBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupOrderService.MoveTeam")
	defer span.End()

	userID, groupID, err := cleanUserAndEntity(userID, groupID, "group id")
	if err != nil {
		return GroupBoard{}, err
	}

	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return GroupBoard{}, err
	}

	var moveErr error
	_, ok := s.drafts.Update(orderDraftKey(userID, groupID), func(positions *[]string) {
		moveErr = groupforecast.MoveTeam(*positions, from, to)
	})
	if !ok {
		return GroupBoard{}, fmt.Errorf("%w: no active edit for group %s", ErrInvalidInput, groupID)
	}
	if moveErr != nil {
		return GroupBoard{}, moveErr
	}

	positions, _, _ := s.drafts.Get(orderDraftKey(userID, groupID))

	return s.buildBoard(ctx, g, positions, true, false, 0)
}

// ProposeOrder replaces the draft with a full explicit ordering, validating
// the permutation invariant first.
func (s *GroupOrderService) ProposeOrder(ctx context.Context, userID, groupID string, positions []string) (GroupBoard, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupOrderService.ProposeOrder")
	defer span.End()

	userID, groupID, err := cleanUserAndEntity(userID, groupID, "group id")
	if err != nil {
		return GroupBoard{}, err
	}

	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return GroupBoard{}, err
	}

	if err := groupforecast.ValidateOrder(positions, g.TeamIDs); err != nil {
		return GroupBoard{}, err
	}

	ordered := append([]string(nil), positions...)
	s.drafts.Begin(orderDraftKey(userID, groupID), ordered)

	return s.buildBoard(ctx, g, ordered, true, false, 0)
}

// CancelEdit discards the draft and reverts to the committed view.
func (s *GroupOrderService) CancelEdit(ctx context.Context, userID, groupID string) error {
	_, span := startUsecaseSpan(ctx, "usecase.GroupOrderService.CancelEdit")
	defer span.End()

	userID, groupID, err := cleanUserAndEntity(userID, groupID, "group id")
	if err != nil {
		return err
	}

	s.drafts.Cancel(orderDraftKey(userID, groupID))
	return nil
}

// Commit validates the draft order and hands it to the prediction store. A
// backend rejection surfaces as ErrCommitRejected with the reason intact.
// When the draft was canceled or rewritten while the store call was
// outstanding, the stale draft is left alone and only the persisted
// prediction is returned.
func (s *GroupOrderService) Commit(ctx context.Context, userID, groupID string) (groupforecast.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GroupOrderService.Commit")
	defer span.End()

	userID, groupID, err := cleanUserAndEntity(userID, groupID, "group id")
	if err != nil {
		return groupforecast.Prediction{}, err
	}

	g, err := s.getGroup(ctx, groupID)
	if err != nil {
		return groupforecast.Prediction{}, err
	}

	key := orderDraftKey(userID, groupID)
	positions, revision, ok := s.drafts.Get(key)
	if !ok {
		return groupforecast.Prediction{}, fmt.Errorf("%w: no active edit for group %s", ErrInvalidInput, groupID)
	}

	if err := groupforecast.ValidateOrder(positions, g.TeamIDs); err != nil {
		return groupforecast.Prediction{}, err
	}

	now := s.now().UTC()
	existing, exists, err := s.forecastRepo.GetByUserAndGroup(ctx, userID, groupID)
	if err != nil {
		return groupforecast.Prediction{}, fmt.Errorf("get existing group prediction: %w", err)
	}

	predictionID := existing.ID
	createdAt := existing.CreatedAt
	if !exists {
		predictionID, err = s.idGen.NewID()
		if err != nil {
			return groupforecast.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
		createdAt = now
	}

	prediction := groupforecast.Prediction{
		ID:        predictionID,
		UserID:    userID,
		GroupID:   groupID,
		Positions: append([]string(nil), positions...),
		Points:    existing.Points,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if err := prediction.ValidateBasic(); err != nil {
		return groupforecast.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.forecastRepo.Upsert(ctx, prediction); err != nil {
		return groupforecast.Prediction{}, fmt.Errorf("%w: %v", ErrCommitRejected, err)
	}

	if !s.drafts.Resolve(key, revision) {
		s.logger.WarnContext(ctx, "group order draft changed during commit, keeping newer edit state",
			"user_id", userID,
			"group_id", groupID,
		)
	}

	s.logger.InfoContext(ctx, "group order committed",
		"user_id", userID,
		"group_id", groupID,
		"prediction_id", prediction.ID,
	)

	return prediction, nil
}

func (s *GroupOrderService) getGroup(ctx context.Context, groupID string) (group.Group, error) {
	g, exists, err := s.groupRepo.GetByID(ctx, groupID)
	if err != nil {
		return group.Group{}, fmt.Errorf("get group by id: %w", err)
	}
	if !exists {
		return group.Group{}, fmt.Errorf("%w: group=%s", ErrNotFound, groupID)
	}

	return g, nil
}

func (s *GroupOrderService) currentOrder(ctx context.Context, userID string, g group.Group) (positions []string, editing, committed bool, points int, err error) {
	if draftOrder, _, ok := s.drafts.Get(orderDraftKey(userID, g.ID)); ok {
		return draftOrder, true, false, 0, nil
	}

	prediction, exists, err := s.forecastRepo.GetByUserAndGroup(ctx, userID, g.ID)
	if err != nil {
		return nil, false, false, 0, fmt.Errorf("get group prediction: %w", err)
	}
	if exists {
		return prediction.Positions, false, true, prediction.Points, nil
	}

	return g.TeamIDs, false, false, 0, nil
}

func (s *GroupOrderService) buildBoard(ctx context.Context, g group.Group, positions []string, editing, committed bool, points int) (GroupBoard, error) {
	teams, err := s.teamRepo.GetByIDs(ctx, positions)
	if err != nil {
		return GroupBoard{}, fmt.Errorf("resolve board teams: %w", err)
	}
	teamByID := make(map[string]team.Team, len(teams))
	for _, t := range teams {
		teamByID[t.ID] = t
	}

	entries := make([]GroupBoardEntry, 0, len(positions))
	for idx, teamID := range positions {
		tier, err := groupforecast.TierForPosition(idx)
		if err != nil {
			return GroupBoard{}, err
		}
		t, ok := teamByID[teamID]
		if !ok {
			return GroupBoard{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
		entries = append(entries, GroupBoardEntry{
			TeamID:   t.ID,
			TeamName: t.Name,
			TeamCode: t.Code,
			Position: idx + 1,
			Tier:     tier,
		})
	}

	return GroupBoard{
		GroupID:   g.ID,
		GroupName: g.Name,
		Entries:   entries,
		Editing:   editing,
		Committed: committed,
		Points:    points,
	}, nil
}

func orderDraftKey(userID, groupID string) string {
	return userID + "::" + groupID
}

func cleanUser(userID string) (string, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	return userID, nil
}

func cleanUserAndEntity(userID, entityID, entityLabel string) (string, string, error) {
	userID = strings.TrimSpace(userID)
	entityID = strings.TrimSpace(entityID)
	if userID == "" {
		return "", "", fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if entityID == "" {
		return "", "", fmt.Errorf("%w: %s is required", ErrInvalidInput, entityLabel)
	}

	return userID, entityID, nil
}
