package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/pickemlab/tournament-pickem/external/scorekeeper"
	"github.com/pickemlab/tournament-pickem/internal/config"
	"github.com/pickemlab/tournament-pickem/internal/domain/group"
	"github.com/pickemlab/tournament-pickem/internal/domain/groupforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/match"
	"github.com/pickemlab/tournament-pickem/internal/domain/matchforecast"
	"github.com/pickemlab/tournament-pickem/internal/domain/team"
	"github.com/pickemlab/tournament-pickem/internal/domain/thirdplace"
	cachedrepo "github.com/pickemlab/tournament-pickem/internal/infrastructure/repository/cache"
	"github.com/pickemlab/tournament-pickem/internal/infrastructure/repository/memory"
	"github.com/pickemlab/tournament-pickem/internal/infrastructure/repository/postgres"
	"github.com/pickemlab/tournament-pickem/internal/interfaces/httpapi"
	"github.com/pickemlab/tournament-pickem/internal/platform/cache"
	idgen "github.com/pickemlab/tournament-pickem/internal/platform/id"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
	"github.com/pickemlab/tournament-pickem/internal/platform/resilience"
	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

const predictionIDPrefix = "prd"

type repositories struct {
	groups         group.Repository
	teams          team.Repository
	matches        match.Repository
	groupForecasts groupforecast.Repository
	matchForecasts matchforecast.Repository
	thirdPlace     thirdplace.Repository
}

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if cfg.CacheEnabled {
		store := cache.NewStore(cfg.CacheTTL)
		repos.groups = cachedrepo.NewGroupRepository(repos.groups, store)
		repos.teams = cachedrepo.NewTeamRepository(repos.teams, store)
		repos.matches = cachedrepo.NewMatchRepository(repos.matches, store)
	}

	idGen := idgen.NewRandomGenerator(predictionIDPrefix)

	groupOrderSvc := usecase.NewGroupOrderService(repos.groups, repos.teams, repos.groupForecasts, idGen, logger)
	eligibilitySvc := usecase.NewEligibilityService(repos.groups, repos.teams, repos.groupForecasts, logger)
	thirdPlaceSvc := usecase.NewThirdPlaceService(repos.thirdPlace, repos.teams, repos.groups, eligibilitySvc, idGen, logger)
	matchScoreSvc := usecase.NewMatchScoreService(repos.matches, repos.teams, repos.matchForecasts, idGen, logger)
	overviewSvc := usecase.NewOverviewService(repos.groups, groupOrderSvc, thirdPlaceSvc, matchScoreSvc, logger)
	pointsSyncSvc := usecase.NewPointsSyncService(
		buildResultsProvider(cfg, logger),
		repos.matchForecasts,
		repos.groupForecasts,
		repos.thirdPlace,
		logger,
	)

	handler := httpapi.NewHandler(groupOrderSvc, thirdPlaceSvc, matchScoreSvc, overviewSvc, pointsSyncSvc, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, error) {
	kickoff := tournamentKickoff(cfg)

	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Info("storage driver", "driver", config.StorageMemory, "kickoff", kickoff)

		return repositories{
			groups:         memory.NewGroupRepository(memory.SeedGroups()),
			teams:          memory.NewTeamRepository(memory.SeedTeams()),
			matches:        memory.NewMatchRepository(memory.SeedMatches(kickoff)),
			groupForecasts: memory.NewGroupForecastRepository(),
			matchForecasts: memory.NewMatchForecastRepository(),
			thirdPlace:     memory.NewThirdPlaceRepository(),
		}, nil
	case config.StoragePostgres:
		db, err := openPostgres(ctx, cfg)
		if err != nil {
			return repositories{}, fmt.Errorf("open postgres: %w", err)
		}
		if err := postgres.BootstrapSeed(ctx, db, kickoff); err != nil {
			return repositories{}, fmt.Errorf("bootstrap seed: %w", err)
		}
		logger.Info("storage driver", "driver", config.StoragePostgres, "database", dbNameFromURL(cfg.DBURL), "kickoff", kickoff)

		return repositories{
			groups:         postgres.NewGroupRepository(db),
			teams:          postgres.NewTeamRepository(db),
			matches:        postgres.NewMatchRepository(db),
			groupForecasts: postgres.NewGroupForecastRepository(db),
			matchForecasts: postgres.NewMatchForecastRepository(db),
			thirdPlace:     postgres.NewThirdPlaceRepository(db),
		}, nil
	default:
		return repositories{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

// tournamentKickoff resolves the shared kickoff of the seeded fixture list.
// Without an explicit TOURNAMENT_KICKOFF the draw stays editable for a day,
// which is what local development wants.
func tournamentKickoff(cfg config.Config) time.Time {
	if !cfg.TournamentKickoff.IsZero() {
		return cfg.TournamentKickoff.UTC()
	}

	return time.Now().UTC().Add(24 * time.Hour).Truncate(time.Minute)
}

func buildResultsProvider(cfg config.Config, logger *logging.Logger) usecase.ResultsProvider {
	if !cfg.ScorekeeperEnabled {
		return disabledResultsProvider{}
	}

	return scorekeeper.NewClient(scorekeeper.ClientConfig{
		BaseURL:    cfg.ScorekeeperBaseURL,
		Token:      cfg.ScorekeeperToken,
		Timeout:    cfg.ScorekeeperTimeout,
		MaxRetries: cfg.ScorekeeperMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.ScorekeeperCircuitEnabled,
			FailureThreshold: cfg.ScorekeeperCircuitFailureCount,
			OpenTimeout:      cfg.ScorekeeperCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.ScorekeeperCircuitHalfOpenMaxReq,
		},
	})
}

// disabledResultsProvider stands in when no scorekeeper is configured. Point
// sync jobs fail with a dependency error instead of silently scoring nothing.
type disabledResultsProvider struct{}

func (disabledResultsProvider) FetchMatchResults(context.Context) ([]usecase.ExternalMatchResult, error) {
	return nil, fmt.Errorf("%w: scorekeeper integration disabled", usecase.ErrDependencyUnavailable)
}

func (disabledResultsProvider) FetchGroupStandings(context.Context) ([]usecase.ExternalGroupStanding, error) {
	return nil, fmt.Errorf("%w: scorekeeper integration disabled", usecase.ErrDependencyUnavailable)
}

func (disabledResultsProvider) FetchThirdPlaceAdvancers(context.Context) ([]string, error) {
	return nil, fmt.Errorf("%w: scorekeeper integration disabled", usecase.ErrDependencyUnavailable)
}
