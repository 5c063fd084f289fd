package httpapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pickemlab/tournament-pickem/internal/infrastructure/repository/memory"
	"github.com/pickemlab/tournament-pickem/internal/interfaces/httpapi"
	idgen "github.com/pickemlab/tournament-pickem/internal/platform/id"
	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

type noResultsProvider struct{}

func (noResultsProvider) FetchMatchResults(context.Context) ([]usecase.ExternalMatchResult, error) {
	return nil, nil
}

func (noResultsProvider) FetchGroupStandings(context.Context) ([]usecase.ExternalGroupStanding, error) {
	return nil, nil
}

func (noResultsProvider) FetchThirdPlaceAdvancers(context.Context) ([]string, error) {
	return nil, nil
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	kickoff := time.Now().Add(24 * time.Hour)
	groupRepo := memory.NewGroupRepository(memory.SeedGroups())
	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches(kickoff))
	groupForecasts := memory.NewGroupForecastRepository()
	matchForecasts := memory.NewMatchForecastRepository()
	thirdPlaceRepo := memory.NewThirdPlaceRepository()

	logger := logging.NewNop()
	idGen := idgen.NewRandomGenerator("prd")

	groupOrder := usecase.NewGroupOrderService(groupRepo, teamRepo, groupForecasts, idGen, logger)
	eligibility := usecase.NewEligibilityService(groupRepo, teamRepo, groupForecasts, logger)
	thirdPlace := usecase.NewThirdPlaceService(thirdPlaceRepo, teamRepo, groupRepo, eligibility, idGen, logger)
	matchScore := usecase.NewMatchScoreService(matchRepo, teamRepo, matchForecasts, idGen, logger)
	overview := usecase.NewOverviewService(groupRepo, groupOrder, thirdPlace, matchScore, logger)
	pointsSync := usecase.NewPointsSyncService(noResultsProvider{}, matchForecasts, groupForecasts, thirdPlaceRepo, logger)

	handler := httpapi.NewHandler(groupOrder, thirdPlace, matchScore, overview, pointsSync, logger)
	return httpapi.NewRouter(handler, logger, []string{"*"}, "job-secret")
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-User-ID", "router-test-user")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var envelope map[string]any
	if rec.Body.Len() > 0 {
		require.NoError(t, sonic.Unmarshal(rec.Body.Bytes(), &envelope))
	}

	return rec, envelope
}

func TestHealthz(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, _ := envelope["data"].(map[string]any)
	assert.Equal(t, "ok", data["status"])
}

func TestListGroupsReturnsDraw(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/groups", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, _ := envelope["data"].([]any)
	require.Len(t, data, 12)

	first, _ := data[0].(map[string]any)
	assert.Equal(t, "grp-a", first["id"])
	teams, _ := first["teams"].([]any)
	assert.Len(t, teams, 4)
}

func TestGroupOrderFlowOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/groups/grp-a/order/edit", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/groups/grp-a/order/move", `{"from":0,"to":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data, _ := envelope["data"].(map[string]any)
	entries, _ := data["entries"].([]any)
	require.Len(t, entries, 4)
	third, _ := entries[2].(map[string]any)
	assert.Equal(t, "mex", third["teamId"])

	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/groups/grp-a/order/commit", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data, _ = envelope["data"].(map[string]any)
	positions, _ := data["positions"].([]any)
	require.Len(t, positions, 4)
	assert.Equal(t, "rsa", positions[0])
}

func TestProposeOrderRejectsBadPermutation(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPost, "/v1/groups/grp-a/order/edit", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := doJSON(t, router, http.MethodPut, "/v1/groups/grp-a/order", `{"positions":["mex","mex","kor","nor"]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	errorObj, _ := envelope["error"].(map[string]any)
	assert.Equal(t, "INVALID_ARGUMENT", errorObj["status"])
}

func TestThirdPlaceGatedPoolConflict(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/third-place/reconciliation", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, _ := envelope["data"].(map[string]any)
	assert.NotEmpty(t, data["poolReason"])

	rec, envelope = doJSON(t, router, http.MethodPost, "/v1/third-place/commit", "")
	require.Equal(t, http.StatusConflict, rec.Code)

	errorObj, _ := envelope["error"].(map[string]any)
	assert.Equal(t, "FAILED_PRECONDITION", errorObj["status"])
}

func TestMatchScoreDraftAndCommitOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPut, "/v1/matches/grp-a-m1/score", `{"side":"home","value":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doJSON(t, router, http.MethodPut, "/v1/matches/grp-a-m1/score", `{"side":"away","value":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/matches/grp-a-m1/commit", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, _ := envelope["data"].(map[string]any)
	assert.Equal(t, float64(2), data["homeScore"])
	assert.Equal(t, float64(1), data["awayScore"])
}

func TestSetDraftScoreRejectsNegativeValue(t *testing.T) {
	router := newTestRouter(t)

	rec, _ := doJSON(t, router, http.MethodPut, "/v1/matches/grp-a-m1/score", `{"side":"home","value":-1}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOverviewEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodGet, "/v1/overview", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data, _ := envelope["data"].(map[string]any)
	assert.Equal(t, float64(12), data["groupsTotal"])
	assert.Equal(t, float64(72), data["matchesTotal"])
}

func TestInternalJobRequiresToken(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-points", strings.NewReader(`{"userIds":["u1"]}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/v1/internal/jobs/sync-points", strings.NewReader(`{"userIds":["u1"]}`))
	req.Header.Set("X-Internal-Job-Token", "job-secret")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownMatchIs404(t *testing.T) {
	router := newTestRouter(t)

	rec, envelope := doJSON(t, router, http.MethodPost, "/v1/matches/zzz/commit", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	errorObj, _ := envelope["error"].(map[string]any)
	assert.Equal(t, "NOT_FOUND", errorObj["status"])
}
