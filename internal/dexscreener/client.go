package dexscreener

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
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public DEX Screener API host.
const DefaultBaseURL = "https://api.dexscreener.com/latest/dex"

// ChainID is DEX Screener's identifier for the Ronin chain.
const ChainID = "ronin"

// TokenRef identifies one side of a trading pair.
type TokenRef struct {
	Address string `json:"address"`
	Name    string `json:"name"`
	Symbol  string `json:"symbol"`
}

// TxnCounts is a buy/sell count pair for one window.
type TxnCounts struct {
	Buys  int `json:"buys"`
	Sells int `json:"sells"`
}

// Liquidity is the pooled liquidity block. Pointer at the use site:
// pairs without liquidity data omit it entirely.
type Liquidity struct {
	USD   float64 `json:"usd"`
	Base  float64 `json:"base"`
	Quote float64 `json:"quote"`
}

// Pair is one trading pair as reported by DEX Screener.
type Pair struct {
	ChainID     string     `json:"chainId"`
	DexID       string     `json:"dexId"`
	URL         string     `json:"url"`
	PairAddress string     `json:"pairAddress"`
	BaseToken   TokenRef   `json:"baseToken"`
	QuoteToken  TokenRef   `json:"quoteToken"`
	PriceNative string     `json:"priceNative"`
	PriceUSD    string     `json:"priceUsd"`
	Liquidity   *Liquidity `json:"liquidity"`
	FDV         float64    `json:"fdv"`
	MarketCap   float64    `json:"marketCap"`

	Txns struct {
		H24 TxnCounts `json:"h24"`
	} `json:"txns"`
	Volume struct {
		H24 float64 `json:"h24"`
	} `json:"volume"`
	PriceChange struct {
		H24 float64 `json:"h24"`
	} `json:"priceChange"`
}

type pairsResponse struct {
	Pairs []Pair `json:"pairs"`
}

// Config controls the DEX Screener client.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	RPS            float64
}

// Client is a best-effort DEX Screener client used to cross-check which
// registry tokens actually have a live Ronin pair.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
}

// NewClient builds a Client, filling zero config values with defaults.
func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 10 * time.Second
	}
	if cfg.RPS <= 0 {
		cfg.RPS = 5
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RPS), 1),
	}
}

// TokenPairs lists all pairs trading a token address, any chain.
func (c *Client) TokenPairs(ctx context.Context, address string) ([]Pair, error) {
	return c.getPairs(ctx, "/tokens/"+strings.ToLower(address))
}

// SearchPairs runs a free-text pair search.
func (c *Client) SearchPairs(ctx context.Context, query string) ([]Pair, error) {
	return c.getPairs(ctx, "/search/?q="+url.QueryEscape(query))
}

// RoninPair returns the first pair on the Ronin chain, if any.
func RoninPair(pairs []Pair) (Pair, bool) {
	for _, p := range pairs {
		if p.ChainID == ChainID {
			return p, true
		}
	}
	return Pair{}, false
}

func (c *Client) getPairs(ctx context.Context, path string) ([]Pair, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("dexscreener: rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("dexscreener: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("dexscreener request failed")
		return nil, fmt.Errorf("dexscreener: %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("dexscreener: %s: HTTP %d", path, resp.StatusCode)
	}

	var out pairsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("dexscreener: decode %s: %w", path, err)
	}
	return out.Pairs, nil
}
