package gecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public GeckoTerminal API v2 host.
const DefaultBaseURL = "https://api.geckoterminal.com/api/v2"

// Config controls the upstream client.
type Config struct {
	BaseURL        string
	UserAgent      string
	RequestTimeout time.Duration

	// Upstream politeness. The free tier tolerates roughly 5 requests
	// per second from a single client before throttling.
	RPS   float64
	Burst int

	// Circuit breaker thresholds.
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultConfig returns conservative free-tier settings.
func DefaultConfig() Config {
	return Config{
		BaseURL:         DefaultBaseURL,
		UserAgent:       "RoninTokenDashboard/1.0",
		RequestTimeout:  10 * time.Second,
		RPS:             5,
		Burst:           1,
		BreakerFailures: 8,
		BreakerTimeout:  30 * time.Second,
	}
}

// Client is a GeckoTerminal API v2 client. Every call is rate limited
// and routed through a circuit breaker; an open circuit surfaces as an
// ordinary error so callers fall through to their next strategy.
type Client struct {
	baseURL   string
	userAgent string
	http      *http.Client
	limiter   *rate.Limiter
	breaker   *gobreaker.CircuitBreaker
}

// NewClient builds a Client from config, filling zero values with
// defaults.
func NewClient(cfg Config) *Client {
	def := DefaultConfig()
	if cfg.BaseURL == "" {
		cfg.BaseURL = def.BaseURL
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = def.UserAgent
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = def.RequestTimeout
	}
	if cfg.RPS <= 0 {
		cfg.RPS = def.RPS
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}
	if cfg.BreakerFailures == 0 {
		cfg.BreakerFailures = def.BreakerFailures
	}
	if cfg.BreakerTimeout <= 0 {
		cfg.BreakerTimeout = def.BreakerTimeout
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "geckoterminal",
		Timeout: cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state change")
		},
	})

	return &Client{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		userAgent: cfg.UserAgent,
		http:      &http.Client{Timeout: cfg.RequestTimeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RPS), cfg.Burst),
		breaker:   breaker,
	}
}

// BreakerState reports the current circuit breaker state for health
// reporting.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

// Networks lists the chains known to the aggregator.
func (c *Client) Networks(ctx context.Context) ([]Network, error) {
	var out networksResponse
	if err := c.getJSON(ctx, "/networks", &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// TokenByAddress looks up a token by contract address on a network slug.
// Addresses are lowercased on the wire; the aggregator rejects
// checksummed forms.
func (c *Client) TokenByAddress(ctx context.Context, network, address string) (*Token, error) {
	path := fmt.Sprintf("/networks/%s/tokens/%s", url.PathEscape(network), strings.ToLower(address))

	var out tokenResponse
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	if out.Data == nil {
		return nil, fmt.Errorf("gecko: token %s on %s: empty data payload", address, network)
	}
	return out.Data, nil
}

// SearchPools runs a full-text pool search.
func (c *Client) SearchPools(ctx context.Context, query string) ([]Pool, error) {
	path := "/search/pools?query=" + url.QueryEscape(query)

	var out searchResponse
	if err := c.getJSON(ctx, path, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("gecko: rate limiter: %w", err)
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.fetch(ctx, path)
	})
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body.([]byte), out); err != nil {
		return fmt.Errorf("gecko: decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("gecko: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("gecko request failed")
		return nil, fmt.Errorf("gecko: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		log.Debug().Int("status", resp.StatusCode).Str("path", path).Msg("gecko non-2xx")
		return nil, fmt.Errorf("gecko: %s: HTTP %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("gecko: read body: %w", err)
	}

	log.Debug().Str("path", path).Dur("took", time.Since(start)).Msg("gecko request ok")
	return body, nil
}
