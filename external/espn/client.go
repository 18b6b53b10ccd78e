package espn

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/gamedayhq/gameday/internal/domain/sport"
	"github.com/gamedayhq/gameday/internal/platform/fieldpath"
	"github.com/gamedayhq/gameday/internal/platform/logging"
	"github.com/gamedayhq/gameday/internal/platform/resilience"
	"github.com/gamedayhq/gameday/internal/usecase"
)

const (
	defaultSiteBaseURL = "https://site.api.espn.com/apis/site/v2/sports"
	defaultWebBaseURL  = "https://site.web.api.espn.com/apis/common/v3/sports"

	maxResponseBytes = 6 << 20
)

var errESPNTransient = crerr.New("espn transient failure")

type ClientConfig struct {
	HTTPClient  *http.Client
	SiteBaseURL string
	WebBaseURL  string
	Timeout     time.Duration
	MaxRetries  int
	Logger      *logging.Logger
	Breaker     resilience.BreakerConfig
}

// Client talks to the public ESPN site API. Responses are decoded into
// dynamic documents: the payload shape varies by sport, endpoint and team, so
// all field access happens through fieldpath on the caller side.
type Client struct {
	httpClient     *http.Client
	siteBaseURL    string
	webBaseURL     string
	maxRetries     int
	logger         *logging.Logger
	breaker        *resilience.Breaker
	breakerEnabled bool
	flight         resilience.SingleFlight
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   cfg.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 15 * time.Second
	}

	siteBaseURL := strings.TrimRight(strings.TrimSpace(cfg.SiteBaseURL), "/")
	if siteBaseURL == "" {
		siteBaseURL = defaultSiteBaseURL
	}
	webBaseURL := strings.TrimRight(strings.TrimSpace(cfg.WebBaseURL), "/")
	if webBaseURL == "" {
		webBaseURL = defaultWebBaseURL
	}

	return &Client{
		httpClient:     httpClient,
		siteBaseURL:    siteBaseURL,
		webBaseURL:     webBaseURL,
		maxRetries:     maxInt(cfg.MaxRetries, 0),
		logger:         logger,
		breaker:        resilience.NewBreaker(cfg.Breaker),
		breakerEnabled: cfg.Breaker.Enabled,
	}
}

// Scoreboard fetches the day's events for a sport.
func (c *Client) Scoreboard(ctx context.Context, s sport.Strategy) (fieldpath.Doc, error) {
	return c.getJSON(ctx, c.siteBaseURL, fmt.Sprintf("/%s/scoreboard", s.ProviderPath))
}

// TeamProfile fetches the team identity record.
func (c *Client) TeamProfile(ctx context.Context, s sport.Strategy, teamID string) (fieldpath.Doc, error) {
	return c.getJSON(ctx, c.siteBaseURL, fmt.Sprintf("/%s/teams/%s", s.ProviderPath, teamID))
}

// TeamRoster fetches the roster in whichever of the two encodings upstream
// chooses for this team.
func (c *Client) TeamRoster(ctx context.Context, s sport.Strategy, teamID string) (fieldpath.Doc, error) {
	return c.getJSON(ctx, c.siteBaseURL, fmt.Sprintf("/%s/teams/%s/roster", s.ProviderPath, teamID))
}

// TeamSchedule fetches the team's season schedule.
func (c *Client) TeamSchedule(ctx context.Context, s sport.Strategy, teamID string) (fieldpath.Doc, error) {
	return c.getJSON(ctx, c.siteBaseURL, fmt.Sprintf("/%s/teams/%s/schedule", s.ProviderPath, teamID))
}

// TeamStatistics fetches the ranked season stat categories.
func (c *Client) TeamStatistics(ctx context.Context, s sport.Strategy, teamID string) (fieldpath.Doc, error) {
	return c.getJSON(ctx, c.webBaseURL, fmt.Sprintf("/%s/teams/%s/statistics", s.ProviderPath, teamID))
}

// Athlete fetches a player profile with season stats and game log.
func (c *Client) Athlete(ctx context.Context, s sport.Strategy, playerID string) (fieldpath.Doc, error) {
	return c.getJSON(ctx, c.webBaseURL, fmt.Sprintf("/%s/athletes/%s", s.ProviderPath, playerID))
}

func (c *Client) getJSON(ctx context.Context, base, path string) (fieldpath.Doc, error) {
	if c.breakerEnabled {
		if err := c.breaker.Allow(); err != nil {
			c.logger.WarnContext(ctx, "espn circuit breaker rejected request", "state", c.breaker.State(), "path", path)
			return nil, fmt.Errorf("%w: sports provider is temporarily unavailable", usecase.ErrDependencyUnavailable)
		}
	}

	fullURL := base + path
	out, err, _ := c.flight.Do(fullURL, func() (any, error) {
		raw, reqErr := c.executeRequest(ctx, fullURL)
		if c.breakerEnabled {
			if reqErr != nil && crerr.Is(reqErr, errESPNTransient) {
				c.breaker.RecordFailure()
			} else {
				c.breaker.RecordSuccess()
			}
		}
		return raw, reqErr
	})
	if err != nil {
		return nil, err
	}

	raw, ok := out.([]byte)
	if !ok {
		return nil, fmt.Errorf("unexpected response payload type %T", out)
	}

	var doc fieldpath.Doc
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode provider payload: %w", err)
	}
	return doc, nil
}

func (c *Client) executeRequest(ctx context.Context, fullURL string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errESPNTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
			_ = resp.Body.Close()
			switch {
			case readErr != nil:
				lastErr = fmt.Errorf("%w: read response body: %v", errESPNTransient, readErr)
			case resp.StatusCode >= 200 && resp.StatusCode < 300:
				return raw, nil
			case isRetryableStatus(resp.StatusCode):
				lastErr = fmt.Errorf("%w: provider status=%d body=%s", errESPNTransient, resp.StatusCode, abbreviateBody(raw))
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
		c.logger.WarnContext(ctx, "retrying espn request",
			"url", fullURL, "attempt", attempt+1, "error", lastErr)
	}
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	return status == http.StatusTooManyRequests || status >= http.StatusInternalServerError
}

func abbreviateBody(raw []byte) string {
	const maxLen = 256
	body := strings.TrimSpace(string(raw))
	if len(body) > maxLen {
		return body[:maxLen] + "..."
	}
	return body
}

func maxInt(left, right int) int {
	if left > right {
		return left
	}
	return right
}
