package scorekeeper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"

	"github.com/pickemlab/tournament-pickem/internal/platform/logging"
	"github.com/pickemlab/tournament-pickem/internal/platform/resilience"
	"github.com/pickemlab/tournament-pickem/internal/usecase"
)

const defaultBaseURL = "https://api.scorekeeper.example/v1"

var errScorekeeperTransient = crerr.New("scorekeeper transient failure")

type ClientConfig struct {
	HTTPClient     *http.Client
	BaseURL        string
	Token          string
	Timeout        time.Duration
	MaxRetries     int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client pulls official tournament results from the scorekeeper API. It
// implements usecase.ResultsProvider.
type Client struct {
	httpClient     *http.Client
	baseURL        string
	token          string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &Client{
		httpClient:     httpClient,
		baseURL:        baseURL,
		token:          strings.TrimSpace(cfg.Token),
		maxRetries:     max(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type matchResultRow struct {
	MatchID   string `json:"match_id"`
	HomeScore int    `json:"home_score"`
	AwayScore int    `json:"away_score"`
	Status    string `json:"status"`
}

type groupStandingRow struct {
	GroupID string   `json:"group_id"`
	TeamIDs []string `json:"team_ids"`
	Status  string   `json:"status"`
}

type advancerRow struct {
	TeamID string `json:"team_id"`
}

type matchResultsEnvelope struct {
	Data []matchResultRow `json:"data"`
}

type groupStandingsEnvelope struct {
	Data []groupStandingRow `json:"data"`
}

type advancersEnvelope struct {
	Data []advancerRow `json:"data"`
}

const statusFinal = "final"

func (c *Client) FetchMatchResults(ctx context.Context) ([]usecase.ExternalMatchResult, error) {
	var envelope matchResultsEnvelope
	if err := c.doJSON(ctx, "/results/matches", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch match results: %w", err)
	}

	out := make([]usecase.ExternalMatchResult, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		if strings.TrimSpace(row.MatchID) == "" {
			continue
		}
		out = append(out, usecase.ExternalMatchResult{
			MatchID:   row.MatchID,
			HomeScore: row.HomeScore,
			AwayScore: row.AwayScore,
			Final:     strings.EqualFold(row.Status, statusFinal),
		})
	}

	return out, nil
}

func (c *Client) FetchGroupStandings(ctx context.Context) ([]usecase.ExternalGroupStanding, error) {
	var envelope groupStandingsEnvelope
	if err := c.doJSON(ctx, "/results/groups", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch group standings: %w", err)
	}

	out := make([]usecase.ExternalGroupStanding, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		if strings.TrimSpace(row.GroupID) == "" || len(row.TeamIDs) == 0 {
			continue
		}
		out = append(out, usecase.ExternalGroupStanding{
			GroupID:        row.GroupID,
			OrderedTeamIDs: append([]string(nil), row.TeamIDs...),
			Final:          strings.EqualFold(row.Status, statusFinal),
		})
	}

	return out, nil
}

func (c *Client) FetchThirdPlaceAdvancers(ctx context.Context) ([]string, error) {
	var envelope advancersEnvelope
	if err := c.doJSON(ctx, "/results/third-place", nil, &envelope); err != nil {
		return nil, fmt.Errorf("fetch third-place advancers: %w", err)
	}

	out := make([]string, 0, len(envelope.Data))
	for _, row := range envelope.Data {
		teamID := strings.TrimSpace(row.TeamID)
		if teamID == "" {
			continue
		}
		out = append(out, teamID)
	}

	return out, nil
}

func (c *Client) doJSON(ctx context.Context, path string, query map[string]string, target any) error {
	if c.circuitEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "scorekeeper circuit breaker rejected request", "state", c.breaker.State())
			return fmt.Errorf("%w: results provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	values := url.Values{}
	for key, value := range query {
		values.Set(key, value)
	}

	fullURL := c.baseURL + path
	if encoded := values.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}

	c.logger.DebugContext(ctx, "scorekeeper request", "preview", buildRequestPreview(fullURL, c.token != ""))

	key := path + "?" + values.Encode()
	out, err, _ := c.flight.Do(key, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.circuitEnabled {
			if reqErr != nil && crerr.Is(reqErr, errScorekeeperTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return err
	}

	raw, ok := out.([]byte)
	if !ok {
		return fmt.Errorf("unexpected response payload type %T", out)
	}

	if err := sonic.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("decode scorekeeper payload: %w", err)
	}

	return nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")
		if c.token != "" {
			req.Header.Set("authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = crerr.Wrapf(errScorekeeperTransient, "send request: %v", err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, 2<<20))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = crerr.Wrapf(errScorekeeperTransient, "read response body: %v", readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = crerr.Wrapf(errScorekeeperTransient, "provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			default:
				return nil, fmt.Errorf("provider status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= 500
}

func abbreviateBody(raw []byte) string {
	const limit = 300
	body := strings.TrimSpace(string(raw))
	if len(body) > limit {
		return body[:limit] + "..."
	}
	return body
}

// buildRequestPreview renders a redacted curl line for debug logs.
func buildRequestPreview(fullURL string, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl ")
	_, _ = buf.WriteString(fullURL)
	_, _ = buf.WriteString(" -H 'accept: application/json'")
	if withToken {
		_, _ = buf.WriteString(" -H 'authorization: Bearer ***'")
	}

	return buf.String()
}
