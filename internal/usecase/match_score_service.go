package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/pickemlab/tournament-pickem/internal/domain/match"
	"github.com/pickemlab/tournament-pickem/internal/domain/matchforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/team"
	"github.com/pickemlab/tournament-pickem/internal/platform/draft"
	idgen "github.com/pickemlab/tournament-pickem/internal/platform/id"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
)

// ScoreDraft is the uncommitted scoreline for one match.
type ScoreDraft struct {
	Home int
	Away int
}

// MatchView merges a match with the user's committed prediction and any live
// draft.
type MatchView struct {
	MatchID      string
	Stage        match.Stage
	GroupID      string
	HomeTeamID   string
	HomeTeamName string
	AwayTeamID   string
	AwayTeamName string
	KickoffAt    time.Time
	CanEdit      bool

	HasDraft  bool
	DraftHome int
	DraftAway int

	HasPrediction bool
	PredictedHome int
	PredictedAway int
	Points        int
}

// MatchScoreService owns per-match independent draft/commit state for
// scoreline predictions.
type MatchScoreService struct {
	matchRepo    match.Repository
	teamRepo     team.Repository
	forecastRepo matchforecast.Repository
	drafts       *draft.Buffer[ScoreDraft]
	idGen        idgen.Generator
	logger       *logging.Logger
	now          func() time.Time
}

func NewMatchScoreService(
	matchRepo match.Repository,
	teamRepo team.Repository,
	forecastRepo matchforecast.Repository,
	idGen idgen.Generator,
	logger *logging.Logger,
) *MatchScoreService {
	if logger == nil {
		logger = logging.Default()
	}

	return &MatchScoreService{
		matchRepo:    matchRepo,
		teamRepo:     teamRepo,
		forecastRepo: forecastRepo,
		drafts:       draft.NewBuffer[ScoreDraft](),
		idGen:        idGen,
		logger:       logger,
		now:          time.Now,
	}
}

// List returns every match merged with the user's predictions and drafts.
func (s *MatchScoreService) List(ctx context.Context, userID string) ([]MatchView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoreService.List")
	defer span.End()

	userID, err := cleanUser(userID)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	predictions, err := s.forecastRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list match predictions: %w", err)
	}
	predictionByMatch := make(map[string]matchforecast.Prediction, len(predictions))
	for _, p := range predictions {
		predictionByMatch[p.MatchID] = p
	}

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	teamNameByID := make(map[string]string, len(teams))
	for _, t := range teams {
		teamNameByID[t.ID] = t.Name
	}

	views := make([]MatchView, 0, len(matches))
	for _, m := range matches {
		view := MatchView{
			MatchID:      m.ID,
			Stage:        m.Stage,
			GroupID:      m.GroupID,
			HomeTeamID:   m.HomeTeamID,
			HomeTeamName: teamNameByID[m.HomeTeamID],
			AwayTeamID:   m.AwayTeamID,
			AwayTeamName: teamNameByID[m.AwayTeamID],
			KickoffAt:    m.KickoffAt,
			CanEdit:      m.CanEdit,
		}
		if p, ok := predictionByMatch[m.ID]; ok {
			view.HasPrediction = true
			view.PredictedHome = p.HomeScore
			view.PredictedAway = p.AwayScore
			view.Points = p.Points
		}
		if d, _, ok := s.drafts.Get(scoreDraftKey(userID, m.ID)); ok {
			view.HasDraft = true
			view.DraftHome = d.Home
			view.DraftAway = d.Away
		}
		views = append(views, view)
	}

	return views, nil
}

// SetDraftScore updates one side of a match's draft scoreline, creating the
// draft on first touch (seeded from the committed prediction when one
// exists). Values are never clamped; negatives are rejected outright.
func (s *MatchScoreService) SetDraftScore(ctx context.Context, userID, matchID string, side matchforecast.Side, value int) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoreService.SetDraftScore")
	defer span.End()

	userID, matchID, err := cleanUserAndEntity(userID, matchID, "match id")
	if err != nil {
		return err
	}
	if err := matchforecast.ValidateSide(side); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := matchforecast.ValidateScore(value); err != nil {
		return err
	}

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return err
	}
	if !m.CanEdit {
		return fmt.Errorf("%w: match=%s", matchforecast.ErrMatchLocked, matchID)
	}

	key := scoreDraftKey(userID, matchID)
	if _, _, ok := s.drafts.Get(key); !ok {
		seed := ScoreDraft{}
		if p, exists, err := s.forecastRepo.GetByUserAndMatch(ctx, userID, matchID); err != nil {
			return fmt.Errorf("get match prediction: %w", err)
		} else if exists {
			seed = ScoreDraft{Home: p.HomeScore, Away: p.AwayScore}
		}
		s.drafts.Begin(key, seed)
	}

	s.drafts.Update(key, func(d *ScoreDraft) {
		if side == matchforecast.SideHome {
			d.Home = value
		} else {
			d.Away = value
		}
	})

	return nil
}

// CancelEdit discards the draft for one match, leaving others untouched.
func (s *MatchScoreService) CancelEdit(ctx context.Context, userID, matchID string) error {
	_, span := startUsecaseSpan(ctx, "usecase.MatchScoreService.CancelEdit")
	defer span.End()

	userID, matchID, err := cleanUserAndEntity(userID, matchID, "match id")
	if err != nil {
		return err
	}

	s.drafts.Cancel(scoreDraftKey(userID, matchID))
	return nil
}

// CommitSingle persists one drafted scoreline. The match must still be
// editable; a draft canceled while the store call was outstanding keeps the
// newer edit state.
func (s *MatchScoreService) CommitSingle(ctx context.Context, userID, matchID string) (matchforecast.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoreService.CommitSingle")
	defer span.End()

	userID, matchID, err := cleanUserAndEntity(userID, matchID, "match id")
	if err != nil {
		return matchforecast.Prediction{}, err
	}

	m, err := s.getMatch(ctx, matchID)
	if err != nil {
		return matchforecast.Prediction{}, err
	}
	if !m.CanEdit {
		return matchforecast.Prediction{}, fmt.Errorf("%w: match=%s", matchforecast.ErrMatchLocked, matchID)
	}

	key := scoreDraftKey(userID, matchID)
	d, revision, ok := s.drafts.Get(key)
	if !ok {
		return matchforecast.Prediction{}, fmt.Errorf("%w: no draft score for match %s", ErrInvalidInput, matchID)
	}

	prediction, err := s.buildPrediction(ctx, userID, matchID, d)
	if err != nil {
		return matchforecast.Prediction{}, err
	}

	if err := s.forecastRepo.Upsert(ctx, prediction); err != nil {
		return matchforecast.Prediction{}, fmt.Errorf("%w: %v", ErrCommitRejected, err)
	}

	if !s.drafts.Resolve(key, revision) {
		s.logger.WarnContext(ctx, "score draft changed during commit, keeping newer edit state",
			"user_id", userID,
			"match_id", matchID,
		)
	}

	s.logger.InfoContext(ctx, "match score committed",
		"user_id", userID,
		"match_id", matchID,
		"home", prediction.HomeScore,
		"away", prediction.AwayScore,
	)

	return prediction, nil
}

// CommitAllDrafts persists every drafted match in one batch. Matches without
// a draft are simply omitted; a locked match with a draft rejects the whole
// batch so nothing is partially applied. Whether the store applies the batch
// atomically is the store's concern.
func (s *MatchScoreService) CommitAllDrafts(ctx context.Context, userID string) ([]matchforecast.Prediction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchScoreService.CommitAllDrafts")
	defer span.End()

	userID, err := cleanUser(userID)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	type stagedCommit struct {
		key      string
		revision uint64
		matchID  string
		draft    ScoreDraft
	}
	staged := make([]stagedCommit, 0)
	for _, m := range matches {
		key := scoreDraftKey(userID, m.ID)
		d, revision, ok := s.drafts.Get(key)
		if !ok {
			continue
		}
		if !m.CanEdit {
			return nil, fmt.Errorf("%w: match=%s", matchforecast.ErrMatchLocked, m.ID)
		}
		staged = append(staged, stagedCommit{key: key, revision: revision, matchID: m.ID, draft: d})
	}
	if len(staged) == 0 {
		return nil, nil
	}

	predictions := make([]matchforecast.Prediction, 0, len(staged))
	for _, sc := range staged {
		prediction, err := s.buildPrediction(ctx, userID, sc.matchID, sc.draft)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, prediction)
	}

	if err := s.forecastRepo.UpsertBatch(ctx, predictions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCommitRejected, err)
	}

	for _, sc := range staged {
		if !s.drafts.Resolve(sc.key, sc.revision) {
			s.logger.WarnContext(ctx, "score draft changed during batch commit, keeping newer edit state",
				"user_id", userID,
				"match_id", sc.matchID,
			)
		}
	}

	s.logger.InfoContext(ctx, "match scores committed in batch",
		"user_id", userID,
		"match_count", len(predictions),
	)

	return predictions, nil
}

func (s *MatchScoreService) getMatch(ctx context.Context, matchID string) (match.Match, error) {
	m, exists, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}

	return m, nil
}

func (s *MatchScoreService) buildPrediction(ctx context.Context, userID, matchID string, d ScoreDraft) (matchforecast.Prediction, error) {
	now := s.now().UTC()
	existing, exists, err := s.forecastRepo.GetByUserAndMatch(ctx, userID, matchID)
	if err != nil {
		return matchforecast.Prediction{}, fmt.Errorf("get existing match prediction: %w", err)
	}

	predictionID := existing.ID
	createdAt := existing.CreatedAt
	if !exists {
		predictionID, err = s.idGen.NewID()
		if err != nil {
			return matchforecast.Prediction{}, fmt.Errorf("generate prediction id: %w", err)
		}
		createdAt = now
	}

	prediction := matchforecast.Prediction{
		ID:        predictionID,
		UserID:    userID,
		MatchID:   matchID,
		HomeScore: d.Home,
		AwayScore: d.Away,
		Points:    existing.Points,
		CreatedAt: createdAt,
		UpdatedAt: now,
	}
	if err := prediction.ValidateBasic(); err != nil {
		return matchforecast.Prediction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	return prediction, nil
}

func scoreDraftKey(userID, matchID string) string {
	return userID + "::" + matchID
}
