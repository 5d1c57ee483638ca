package pipeline

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/roninwatch/tokendash/internal/cache"
	"github.com/roninwatch/tokendash/internal/gecko"
	"github.com/roninwatch/tokendash/internal/metrics"
	"github.com/roninwatch/tokendash/internal/model"
	"github.com/roninwatch/tokendash/internal/registry"
	"github.com/roninwatch/tokendash/internal/resolver"
	"github.com/roninwatch/tokendash/internal/synth"
)

// DataSource is the metadata tag for the upstream aggregator.
const DataSource = "geckoterminal-api-v2"

// Upstream is the slice of the aggregator client the pipeline needs on
// top of per-token resolution.
type Upstream interface {
	resolver.Source
	Networks(ctx context.Context) ([]gecko.Network, error)
}

// Deps wires a Service. Zero fields get sensible defaults where one
// exists; Upstream is required.
type Deps struct {
	Upstream  Upstream
	Generator *synth.Generator
	Cache     *cache.ResultCache
	Metrics   *metrics.Registry
	Tokens    []registry.Descriptor
	Now       func() time.Time
}

// Service runs the refresh pipeline: registry walk, live resolution with
// synthetic fallback, best-swap enrichment, metadata, result caching.
// Refresh never fails from the caller's point of view; the worst case is
// a fully synthetic batch flagged with an error status.
type Service struct {
	upstream Upstream
	resolver *resolver.Resolver
	gen      *synth.Generator
	cache    *cache.ResultCache
	metrics  *metrics.Registry
	tokens   []registry.Descriptor
	now      func() time.Time

	group singleflight.Group
}

// New builds a Service from deps.
func New(deps Deps) *Service {
	if deps.Generator == nil {
		deps.Generator = synth.New()
	}
	if deps.Cache == nil {
		deps.Cache = cache.New(cache.DefaultTTL)
	}
	if deps.Metrics == nil {
		deps.Metrics = metrics.New()
	}
	if deps.Tokens == nil {
		deps.Tokens = registry.All()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Service{
		upstream: deps.Upstream,
		resolver: resolver.New(deps.Upstream),
		gen:      deps.Generator,
		cache:    deps.Cache,
		metrics:  deps.Metrics,
		tokens:   deps.Tokens,
		now:      deps.Now,
	}
}

// Cache exposes the result cache for health reporting and manual clears.
func (s *Service) Cache() *cache.ResultCache {
	return s.cache
}

// Refresh returns the current token batch, serving from cache when the
// last batch is still within its TTL. Concurrent misses are collapsed
// into one upstream batch via singleflight; followers receive the
// leader's result.
func (s *Service) Refresh(ctx context.Context) *model.TokenResponse {
	if cached, ok := s.cache.Get(); ok {
		s.metrics.CacheHits.Inc()
		return cached
	}

	v, _, _ := s.group.Do("refresh", func() (interface{}, error) {
		// A follower may have queued behind a leader that already
		// repopulated the cache.
		if cached, ok := s.cache.Get(); ok {
			s.metrics.CacheHits.Inc()
			return cached, nil
		}
		s.metrics.CacheMisses.Inc()

		// Once a batch starts it runs to completion. The leader's
		// request disconnecting mid-flight must not fail every upstream
		// call and cache an all-synthetic batch for the TTL window; the
		// upstream client's own timeout still bounds each attempt.
		return s.refresh(context.WithoutCancel(ctx)), nil
	})
	return v.(*model.TokenResponse)
}

// refresh computes a full batch. Any panic below degrades to the
// all-synthetic error response instead of propagating.
func (s *Service) refresh(ctx context.Context) (resp *model.TokenResponse) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("refresh pipeline panicked")
			resp = s.errorResponse(fmt.Errorf("refresh pipeline: %v", r))
		}
	}()

	start := s.now()
	log.Info().Int("tokens", len(s.tokens)).Msg("refreshing token batch")

	roninAvailable := s.probeNetwork(ctx)

	tokens := make([]model.Token, 0, len(s.tokens))
	realCount := 0
	attempted := 0

	// Sequential by design: the client's rate limiter paces the batch to
	// stay inside upstream limits, and output order must match registry
	// order for downstream index correlation.
	for _, desc := range s.tokens {
		attempted++

		fact, ok := s.resolver.Resolve(ctx, desc)
		if ok {
			realCount++
			s.metrics.FetchAttempts.WithLabelValues(fact.Strategy, "live").Inc()
			tokens = append(tokens, s.liveRecord(desc, fact))
			continue
		}

		s.metrics.FetchAttempts.WithLabelValues("none", "synthetic").Inc()
		tokens = append(tokens, s.syntheticRecord(desc, model.SourceSimulation))
	}

	enrichBestSwaps(tokens)

	resp = &model.TokenResponse{
		Tokens:   tokens,
		Metadata: s.metadata(len(tokens), realCount, attempted, roninAvailable),
	}
	s.cache.Put(resp)

	s.metrics.RefreshDuration.Observe(s.now().Sub(start).Seconds())
	s.metrics.Refreshes.WithLabelValues(resp.Metadata.APIStatus).Inc()
	s.metrics.RealTokens.Set(float64(realCount))

	log.Info().
		Int("real", realCount).
		Int("total", len(tokens)).
		Bool("ronin_available", roninAvailable).
		Str("status", resp.Metadata.APIStatus).
		Msg("token batch refreshed")

	return resp
}

// probeNetwork checks whether the aggregator indexes the Ronin chain at
// all. Purely informational: any failure reports false and the batch
// proceeds regardless.
func (s *Service) probeNetwork(ctx context.Context) bool {
	networks, err := s.upstream.Networks(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("network availability probe failed")
		return false
	}

	for _, n := range networks {
		if n.ID == resolver.NetworkPrimary {
			return true
		}
		if strings.Contains(strings.ToLower(n.Attributes.Name), resolver.NetworkPrimary) {
			return true
		}
	}
	return false
}

// liveRecord builds a record from resolved market data. The upstream
// source has no 7d/30d horizons, so those stay synthetic even on a live
// hit.
func (s *Service) liveRecord(desc registry.Descriptor, fact resolver.Fact) model.Token {
	synthetic := s.gen.Changes(desc.Category, desc.Name)
	changes := model.PriceChanges{
		H24: fact.Change24h,
		D7:  synthetic.D7,
		D30: synthetic.D30,
	}

	tok := model.Token{
		Name:         desc.Name,
		Symbol:       desc.Symbol,
		Contract:     desc.Contract,
		Category:     desc.Category,
		Decimals:     desc.Decimals,
		PriceUsd:     fact.PriceUSD,
		PriceChanges: changes,
		Volume24h:    fact.Volume24h,
		Liquidity:    fact.Liquidity,
		MarketCap:    fact.MarketCap,
		FDV:          fact.FDV,
		Txns24h:      estimateTxns(fact.Volume24h, fact.PriceUSD),
		LastUpdated:  s.now().UTC().Format(time.RFC3339),
		IsSimulated:  false,
		Source:       model.SourceGeckoTerminal,
		GeckoID:      fact.GeckoID,
	}
	applyLegacyMirrors(&tok)
	return tok
}

// syntheticRecord builds a fully synthesized record. Volume, liquidity,
// market cap and transaction count are randomized placeholders: they are
// cosmetic and intentionally not deterministic.
func (s *Service) syntheticRecord(desc registry.Descriptor, source string) model.Token {
	price := s.gen.Price(desc.Category, desc.Name)
	changes := s.gen.Changes(desc.Category, desc.Name)

	tok := model.Token{
		Name:         desc.Name,
		Symbol:       desc.Symbol,
		Contract:     desc.Contract,
		Category:     desc.Category,
		Decimals:     desc.Decimals,
		PriceUsd:     price,
		PriceChanges: changes,
		Volume24h:    rand.Float64()*10000 + 1000,
		Liquidity:    rand.Float64()*50000 + 5000,
		MarketCap:    price * (rand.Float64()*500000 + 50000),
		FDV:          0,
		Txns24h:      rand.Intn(50) + 5,
		LastUpdated:  s.now().UTC().Format(time.RFC3339),
		IsSimulated:  true,
		Source:       source,
	}
	applyLegacyMirrors(&tok)
	return tok
}

// errorResponse is the outermost degradation path: every token
// synthesized, no best-swap data, error status. Never cached, so the
// next request retries the real pipeline.
func (s *Service) errorResponse(cause error) *model.TokenResponse {
	tokens := make([]model.Token, 0, len(s.tokens))
	for _, desc := range s.tokens {
		tok := s.syntheticRecord(desc, model.SourceErrorFallback)
		tok.BestSwap = model.BestSwap{H24: model.BestSwapNone, D7: model.BestSwapNone, D30: model.BestSwapNone}
		tokens = append(tokens, tok)
	}

	s.metrics.Refreshes.WithLabelValues(model.StatusError).Inc()

	return &model.TokenResponse{
		Tokens: tokens,
		Metadata: model.Metadata{
			TotalTokens:      len(tokens),
			RealDataTokens:   0,
			SimulatedTokens:  len(tokens),
			LastUpdate:       s.now().UTC().Format(time.RFC3339),
			DataSource:       model.SourceErrorFallback,
			APIStatus:        model.StatusError,
			SupportedPeriods: model.SupportedPeriods,
			Error:            cause.Error(),
		},
	}
}

func (s *Service) metadata(total, real, attempted int, roninAvailable bool) model.Metadata {
	status := model.StatusFallbackMode
	switch {
	case real == total && total > 0:
		status = model.StatusFullSuccess
	case real > 0:
		status = model.StatusPartialSuccess
	}

	rate := 0.0
	if total > 0 {
		rate = float64(real) / float64(total) * 100
	}

	now := s.now().UTC()
	return model.Metadata{
		TotalTokens:           total,
		RealDataTokens:        real,
		SimulatedTokens:       total - real,
		AttemptedFetches:      attempted,
		LastUpdate:            now.Format(time.RFC3339),
		CacheExpiry:           now.Add(s.cache.TTL()).Format(time.RFC3339),
		DataSource:            DataSource,
		RoninNetworkAvailable: roninAvailable,
		SuccessRate:           fmt.Sprintf("%.1f%%", rate),
		APIStatus:             status,
		SupportedPeriods:      model.SupportedPeriods,
	}
}

// estimateTxns derives a naive 24h transaction count from volume at an
// assumed $100-per-trade notional.
func estimateTxns(volume, price float64) int {
	if price <= 0 {
		return 0
	}
	n := math.Floor(volume / (price * 100))
	if n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return int(n)
}

// applyLegacyMirrors fills the flat 24h-horizon fields older dashboard
// builds still read.
func applyLegacyMirrors(tok *model.Token) {
	h24 := tok.PriceChanges.H24
	tok.PriceChange24h = h24
	tok.DiffPercent = h24
	tok.ConversionRate = 1 + h24/100

	switch {
	case h24 > 10:
		tok.Recommendation = "comprar"
	case h24 < -10:
		tok.Recommendation = "vender"
	default:
		tok.Recommendation = "mantener"
	}
}
