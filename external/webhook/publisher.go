package webhook

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/gamedayhq/gameday/internal/platform/logging"
	"github.com/gamedayhq/gameday/internal/platform/resilience"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type PublisherConfig struct {
	// TargetURL receives the daily pick notification payloads.
	TargetURL string
	Token     string
	Timeout   time.Duration
	Breaker   resilience.BreakerConfig
}

// Publisher POSTs JSON notifications to a configured webhook. Failures are
// the subscriber's problem, not the request path's: callers treat Publish
// errors as log-and-continue.
type Publisher struct {
	client         *fasthttp.Client
	targetURL      string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.Breaker
	breakerEnabled bool
}

func NewPublisher(cfg PublisherConfig, logger *logging.Logger) *Publisher {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &Publisher{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		targetURL:      strings.TrimSpace(cfg.TargetURL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewBreaker(cfg.Breaker),
		breakerEnabled: cfg.Breaker.Enabled,
	}
}

// Enabled reports whether a target is configured; a blank target turns the
// publisher into a no-op.
func (p *Publisher) Enabled() bool {
	return p.targetURL != ""
}

// Publish sends one event payload. The event name rides along in the body and
// an X-Gameday-Event header so subscribers can route without decoding.
func (p *Publisher) Publish(ctx context.Context, event string, payload any) error {
	if !p.Enabled() {
		return nil
	}
	if err := validateTargetURL(p.targetURL); err != nil {
		return crerr.Wrap(err, "invalid webhook target url")
	}
	if p.breakerEnabled {
		if err := p.breaker.Allow(); err != nil {
			p.logger.WarnContext(ctx, "webhook breaker rejected publish",
				"event", event, "state", string(p.breaker.State()))
			return fmt.Errorf("webhook temporarily unavailable: %w", err)
		}
	}

	body := bytebufferpool.Get()
	defer bytebufferpool.Put(body)

	envelope := map[string]any{
		"event":   event,
		"sentAt":  time.Now().UTC().Format(time.RFC3339),
		"payload": payload,
	}
	encoded, err := sonic.Marshal(envelope)
	if err != nil {
		return crerr.Wrap(err, "marshal webhook payload")
	}
	_, _ = body.Write(encoded)

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("webhook.event", event),
			attribute.String("webhook.target_url", p.targetURL),
			attribute.Int("webhook.body_bytes", body.Len()),
		)
	}

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(p.targetURL)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set("X-Gameday-Event", event)
	if p.token != "" {
		req.Header.Set("Authorization", "Bearer "+p.token)
	}
	req.SetBody(body.B)

	err = p.client.DoTimeout(req, resp, p.timeout)
	if err != nil {
		callErr := fmt.Errorf("%w: publish %s to %s: %v", errWebhookTransient, event, p.targetURL, err)
		p.recordResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := strings.TrimSpace(string(resp.Body()))
		if len(raw) > 256 {
			raw = raw[:256] + "...(truncated)"
		}
		callErr := fmt.Errorf("publish %s status=%d body=%s", event, status, raw)
		if isRetryableStatus(status) {
			callErr = fmt.Errorf("%w: %v", errWebhookTransient, callErr)
		}
		p.recordResult(callErr)
		return callErr
	}

	p.logger.InfoContext(ctx, "webhook published", "event", event, "status", status)
	p.recordResult(nil)
	return nil
}

func (p *Publisher) recordResult(err error) {
	if !p.breakerEnabled {
		return
	}
	if err == nil {
		p.breaker.RecordSuccess()
		return
	}
	if crerr.Is(err, errWebhookTransient) {
		p.breaker.RecordFailure()
		return
	}
	p.breaker.RecordSuccess()
}

func validateTargetURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return crerr.Wrapf(err, "parse %q", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return crerr.Newf("%q uses unsupported scheme %q", raw, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return crerr.Newf("%q has empty host", raw)
	}
	return nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}
