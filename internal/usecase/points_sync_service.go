package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/matchforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/thirdplace"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
)

// ExternalMatchResult is a finished match as reported by the scorekeeper.
type ExternalMatchResult struct {
	MatchID   string
	HomeScore int
	AwayScore int
	Final     bool
}

// ExternalGroupStanding is the official final ordering of one group.
type ExternalGroupStanding struct {
	GroupID        string
	OrderedTeamIDs []string
	Final          bool
}

// ResultsProvider fetches official tournament results. Implemented by the
// scorekeeper HTTP client.
type ResultsProvider interface {
	FetchMatchResults(ctx context.Context) ([]ExternalMatchResult, error)
	FetchGroupStandings(ctx context.Context) ([]ExternalGroupStanding, error)
	FetchThirdPlaceAdvancers(ctx context.Context) ([]string, error)
}

type PointsSyncInput struct {
	UserIDs    []string
	MaxWorkers int
	// DryRun computes points without writing them back.
	DryRun bool
}

type PointsSyncResult struct {
	UserCount    int                   `json:"user_count"`
	TaskCount    int                   `json:"task_count"`
	SuccessCount int                   `json:"success_count"`
	FailedCount  int                   `json:"failed_count"`
	WorkerCount  int                   `json:"worker_count"`
	Tasks        []PointsSyncTaskResult `json:"tasks"`
}

type PointsSyncTaskResult struct {
	UserID     string `json:"user_id"`
	Area       string `json:"area"`
	Status     string `json:"status"`
	Updated    int    `json:"updated"`
	DurationMs int64  `json:"duration_ms"`
	Message    string `json:"message,omitempty"`
}

const (
	pointsSyncStatusSuccess = "success"
	pointsSyncStatusFailed  = "failed"

	pointsSyncAreaMatches    = "match_scores"
	pointsSyncAreaGroups     = "group_orders"
	pointsSyncAreaThirdPlace = "third_place"

	// Scoring weights. Applied uniformly; no per-stage multipliers.
	pointsExactScoreline    = 4
	pointsCorrectOutcome    = 2
	pointsExactGroupSlot    = 2
	pointsPerfectGroupBonus = 2
	pointsPerAdvancer       = 1
)

type pointsSyncTask struct {
	userID string
	area   string
}

// pointsSyncState caches provider fetches so a run hits the scorekeeper once
// per dataset regardless of user count.
type pointsSyncState struct {
	provider ResultsProvider

	resultsOnce sync.Once
	resultsErr  error
	results     map[string]ExternalMatchResult

	standingsOnce sync.Once
	standingsErr  error
	standings     map[string]ExternalGroupStanding

	advancersOnce sync.Once
	advancersErr  error
	advancers     map[string]struct{}
}

// PointsSyncService recomputes stored prediction points from official
// results. Triggered by an internal job endpoint, never by user traffic.
type PointsSyncService struct {
	provider          ResultsProvider
	matchForecastRepo matchforecast.Repository
	groupForecastRepo groupforecast.Repository
	thirdPlaceRepo    thirdplace.Repository
	logger            *logging.Logger
	now               func() time.Time
}

func NewPointsSyncService(
	provider ResultsProvider,
	matchForecastRepo matchforecast.Repository,
	groupForecastRepo groupforecast.Repository,
	thirdPlaceRepo thirdplace.Repository,
	logger *logging.Logger,
) *PointsSyncService {
	if logger == nil {
		logger = logging.Default()
	}

	return &PointsSyncService{
		provider:          provider,
		matchForecastRepo: matchForecastRepo,
		groupForecastRepo: groupForecastRepo,
		thirdPlaceRepo:    thirdPlaceRepo,
		logger:            logger,
		now:               time.Now,
	}
}

func (s *PointsSyncService) Sync(ctx context.Context, input PointsSyncInput) (PointsSyncResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PointsSyncService.Sync")
	defer span.End()

	if s.provider == nil {
		return PointsSyncResult{}, fmt.Errorf("%w: results provider is not configured", ErrDependencyUnavailable)
	}

	userIDs, err := normalizePointsSyncUsers(input.UserIDs)
	if err != nil {
		return PointsSyncResult{}, err
	}

	areas := []string{pointsSyncAreaMatches, pointsSyncAreaGroups, pointsSyncAreaThirdPlace}
	tasks := make([]pointsSyncTask, 0, len(userIDs)*len(areas))
	for _, userID := range userIDs {
		for _, area := range areas {
			tasks = append(tasks, pointsSyncTask{userID: userID, area: area})
		}
	}

	workerCount := normalizePointsSyncWorkerCount(input.MaxWorkers, len(tasks))
	result := PointsSyncResult{
		UserCount:   len(userIDs),
		TaskCount:   len(tasks),
		WorkerCount: workerCount,
		Tasks:       make([]PointsSyncTaskResult, 0, len(tasks)),
	}
	if len(tasks) == 0 {
		return result, nil
	}

	state := &pointsSyncState{provider: s.provider}
	rows := make(chan PointsSyncTaskResult, len(tasks))

	var successCount atomic.Int32
	var failedCount atomic.Int32

	workerPool, err := ants.NewPool(workerCount)
	if err != nil {
		return PointsSyncResult{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	var workers sync.WaitGroup
	for _, task := range tasks {
		task := task
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			start := time.Now()
			row := PointsSyncTaskResult{
				UserID: task.userID,
				Area:   task.area,
			}

			updated, err := s.runPointsSyncTask(ctx, state, task, input.DryRun)
			row.Updated = updated
			row.DurationMs = time.Since(start).Milliseconds()
			if err != nil {
				row.Status = pointsSyncStatusFailed
				row.Message = err.Error()
				failedCount.Add(1)
			} else {
				row.Status = pointsSyncStatusSuccess
				successCount.Add(1)
			}

			rows <- row
		}); err != nil {
			workers.Done()
			return PointsSyncResult{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(rows)

	for row := range rows {
		result.Tasks = append(result.Tasks, row)
	}

	sort.SliceStable(result.Tasks, func(i, j int) bool {
		if result.Tasks[i].UserID != result.Tasks[j].UserID {
			return result.Tasks[i].UserID < result.Tasks[j].UserID
		}
		return result.Tasks[i].Area < result.Tasks[j].Area
	})

	result.SuccessCount = int(successCount.Load())
	result.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "points sync finished",
		"user_count", result.UserCount,
		"task_count", result.TaskCount,
		"success_count", result.SuccessCount,
		"failed_count", result.FailedCount,
		"dry_run", input.DryRun,
	)

	return result, nil
}

func (s *PointsSyncService) runPointsSyncTask(ctx context.Context, state *pointsSyncState, task pointsSyncTask, dryRun bool) (int, error) {
	switch task.area {
	case pointsSyncAreaMatches:
		return s.syncMatchPoints(ctx, state, task.userID, dryRun)
	case pointsSyncAreaGroups:
		return s.syncGroupPoints(ctx, state, task.userID, dryRun)
	case pointsSyncAreaThirdPlace:
		return s.syncThirdPlacePoints(ctx, state, task.userID, dryRun)
	default:
		return 0, fmt.Errorf("unsupported sync area: %s", task.area)
	}
}

func (s *PointsSyncService) syncMatchPoints(ctx context.Context, state *pointsSyncState, userID string, dryRun bool) (int, error) {
	results, err := state.loadMatchResults(ctx)
	if err != nil {
		return 0, err
	}

	predictions, err := s.matchForecastRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list match predictions user=%s: %w", userID, err)
	}

	now := s.now().UTC()
	updated := 0
	for _, p := range predictions {
		result, ok := results[p.MatchID]
		if !ok {
			continue
		}
		points := scoreMatchPrediction(p, result)
		if points == p.Points {
			continue
		}
		p.Points = points
		p.UpdatedAt = now
		if !dryRun {
			if err := s.matchForecastRepo.Upsert(ctx, p); err != nil {
				return updated, fmt.Errorf("update match points user=%s match=%s: %w", userID, p.MatchID, err)
			}
		}
		updated++
	}

	return updated, nil
}

func (s *PointsSyncService) syncGroupPoints(ctx context.Context, state *pointsSyncState, userID string, dryRun bool) (int, error) {
	standings, err := state.loadGroupStandings(ctx)
	if err != nil {
		return 0, err
	}

	predictions, err := s.groupForecastRepo.ListByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("list group predictions user=%s: %w", userID, err)
	}

	now := s.now().UTC()
	updated := 0
	for _, p := range predictions {
		standing, ok := standings[p.GroupID]
		if !ok {
			continue
		}
		points := scoreGroupPrediction(p.Positions, standing.OrderedTeamIDs)
		if points == p.Points {
			continue
		}
		p.Points = points
		p.UpdatedAt = now
		if !dryRun {
			if err := s.groupForecastRepo.Upsert(ctx, p); err != nil {
				return updated, fmt.Errorf("update group points user=%s group=%s: %w", userID, p.GroupID, err)
			}
		}
		updated++
	}

	return updated, nil
}

func (s *PointsSyncService) syncThirdPlacePoints(ctx context.Context, state *pointsSyncState, userID string, dryRun bool) (int, error) {
	advancers, err := state.loadThirdPlaceAdvancers(ctx)
	if err != nil {
		return 0, err
	}
	if len(advancers) == 0 {
		return 0, nil
	}

	p, exists, err := s.thirdPlaceRepo.GetByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("get third place prediction user=%s: %w", userID, err)
	}
	if !exists {
		return 0, nil
	}

	points := 0
	for _, teamID := range p.AdvancingTeamIDs {
		if _, ok := advancers[teamID]; ok {
			points += pointsPerAdvancer
		}
	}
	if points == p.Points {
		return 0, nil
	}

	p.Points = points
	p.UpdatedAt = s.now().UTC()
	if !dryRun {
		if err := s.thirdPlaceRepo.Upsert(ctx, p); err != nil {
			return 0, fmt.Errorf("update third place points user=%s: %w", userID, err)
		}
	}

	return 1, nil
}

func scoreMatchPrediction(p matchforecast.Prediction, result ExternalMatchResult) int {
	if !result.Final {
		return p.Points
	}
	if p.HomeScore == result.HomeScore && p.AwayScore == result.AwayScore {
		return pointsExactScoreline
	}
	if sign(p.HomeScore-p.AwayScore) == sign(result.HomeScore-result.AwayScore) {
		return pointsCorrectOutcome
	}
	return 0
}

func scoreGroupPrediction(predicted, official []string) int {
	points := 0
	exact := 0
	for i := range predicted {
		if i < len(official) && predicted[i] == official[i] {
			exact++
			points += pointsExactGroupSlot
		}
	}
	if len(official) > 0 && exact == len(official) {
		points += pointsPerfectGroupBonus
	}
	return points
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	default:
		return 0
	}
}

func (state *pointsSyncState) loadMatchResults(ctx context.Context) (map[string]ExternalMatchResult, error) {
	state.resultsOnce.Do(func() {
		items, err := state.provider.FetchMatchResults(ctx)
		if err != nil {
			state.resultsErr = fmt.Errorf("fetch match results: %w", err)
			return
		}
		state.results = make(map[string]ExternalMatchResult, len(items))
		for _, item := range items {
			state.results[item.MatchID] = item
		}
	})
	return state.results, state.resultsErr
}

func (state *pointsSyncState) loadGroupStandings(ctx context.Context) (map[string]ExternalGroupStanding, error) {
	state.standingsOnce.Do(func() {
		items, err := state.provider.FetchGroupStandings(ctx)
		if err != nil {
			state.standingsErr = fmt.Errorf("fetch group standings: %w", err)
			return
		}
		state.standings = make(map[string]ExternalGroupStanding, len(items))
		for _, item := range items {
			if !item.Final {
				continue
			}
			state.standings[item.GroupID] = item
		}
	})
	return state.standings, state.standingsErr
}

func (state *pointsSyncState) loadThirdPlaceAdvancers(ctx context.Context) (map[string]struct{}, error) {
	state.advancersOnce.Do(func() {
		items, err := state.provider.FetchThirdPlaceAdvancers(ctx)
		if err != nil {
			state.advancersErr = fmt.Errorf("fetch third place advancers: %w", err)
			return
		}
		state.advancers = make(map[string]struct{}, len(items))
		for _, item := range items {
			state.advancers[item] = struct{}{}
		}
	})
	return state.advancers, state.advancersErr
}

func normalizePointsSyncUsers(raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: user_ids is required", ErrInvalidInput)
	}

	seen := make(map[string]struct{}, len(raw))
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, exists := seen[item]; exists {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: user_ids is required", ErrInvalidInput)
	}

	return out, nil
}

func normalizePointsSyncWorkerCount(value int, taskCount int) int {
	if taskCount <= 0 {
		return 1
	}
	if value <= 0 {
		value = 1
	}
	if value > 4 {
		value = 4
	}
	if value > taskCount {
		value = taskCount
	}
	return value
}
