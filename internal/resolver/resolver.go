package resolver

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/roninwatch/tokendash/internal/gecko"
	"github.com/roninwatch/tokendash/internal/registry"
)

// Ronin shows up under two slugs on the aggregator depending on listing
// age, so address lookups try both before falling back to search.
const (
	NetworkPrimary   = "ronin"
	NetworkAlternate = "ron"
)

// Strategy labels for metrics and logs.
const (
	StrategyLookupPrimary   = "lookup_primary"
	StrategyLookupAlternate = "lookup_alternate"
	StrategySearch          = "pool_search"
)

// Fact is the live market data resolved for one token. Produced only
// when the upstream payload carried a strictly positive, finite price.
type Fact struct {
	PriceUSD  float64
	Change24h float64
	Volume24h float64
	Liquidity float64
	MarketCap float64
	FDV       float64
	GeckoID   string
	Strategy  string
}

// Source is the slice of the aggregator client the resolver needs.
type Source interface {
	TokenByAddress(ctx context.Context, network, address string) (*gecko.Token, error)
	SearchPools(ctx context.Context, query string) ([]gecko.Pool, error)
}

// Resolver attempts live-data retrieval for single tokens through an
// ordered strategy chain, short-circuiting on first success. It never
// returns an error: any failure anywhere in the chain means "no data"
// and the caller synthesizes instead.
type Resolver struct {
	source Source
}

// New returns a Resolver over the given source.
func New(source Source) *Resolver {
	return &Resolver{source: source}
}

// Resolve runs the strategy chain for one descriptor. The bool result
// reports whether live data was found.
func (r *Resolver) Resolve(ctx context.Context, desc registry.Descriptor) (Fact, bool) {
	for _, network := range []string{NetworkPrimary, NetworkAlternate} {
		strategy := StrategyLookupPrimary
		if network == NetworkAlternate {
			strategy = StrategyLookupAlternate
		}

		tok, err := r.source.TokenByAddress(ctx, network, desc.Contract)
		if err != nil {
			log.Debug().Err(err).Str("symbol", desc.Symbol).Str("network", network).Msg("address lookup failed")
			continue
		}

		if fact, ok := factFromToken(tok, strategy); ok {
			log.Debug().Str("symbol", desc.Symbol).Str("strategy", strategy).Float64("price", fact.PriceUSD).Msg("resolved live")
			return fact, true
		}
	}

	if fact, ok := r.resolveBySearch(ctx, desc); ok {
		return fact, true
	}

	return Fact{}, false
}

// resolveBySearch is the last strategy: full-text pool search by symbol,
// filtered to pools on the Ronin network.
func (r *Resolver) resolveBySearch(ctx context.Context, desc registry.Descriptor) (Fact, bool) {
	pools, err := r.source.SearchPools(ctx, desc.Symbol)
	if err != nil {
		log.Debug().Err(err).Str("symbol", desc.Symbol).Msg("pool search failed")
		return Fact{}, false
	}

	for _, pool := range pools {
		if !onRonin(pool) {
			continue
		}
		if fact, ok := factFromPool(pool); ok {
			log.Debug().Str("symbol", desc.Symbol).Str("pool", pool.ID).Msg("resolved via pool search")
			return fact, true
		}
	}

	return Fact{}, false
}

func onRonin(pool gecko.Pool) bool {
	if pool.Relationships.Network.Data.ID == NetworkPrimary {
		return true
	}
	return strings.Contains(strings.ToLower(pool.Attributes.Name), NetworkPrimary)
}

func factFromToken(tok *gecko.Token, strategy string) (Fact, bool) {
	price, ok := parsePrice(tok.Attributes.PriceUSD)
	if !ok {
		return Fact{}, false
	}

	return Fact{
		PriceUSD:  price,
		Change24h: parseFloat(tok.Attributes.PriceChangePercentage.H24),
		Volume24h: parseFloat(tok.Attributes.VolumeUSD.H24),
		Liquidity: parseFloat(tok.Attributes.TotalReserveInUSD),
		MarketCap: parseFloat(tok.Attributes.MarketCapUSD),
		FDV:       parseFloat(tok.Attributes.FDVUSD),
		GeckoID:   tok.Attributes.CoingeckoCoinID,
		Strategy:  strategy,
	}, true
}

func factFromPool(pool gecko.Pool) (Fact, bool) {
	price, ok := parsePrice(pool.Attributes.BaseTokenPriceUSD)
	if !ok {
		return Fact{}, false
	}

	return Fact{
		PriceUSD:  price,
		Change24h: parseFloat(pool.Attributes.PriceChangePercentage.H24),
		Volume24h: parseFloat(pool.Attributes.VolumeUSD.H24),
		Liquidity: parseFloat(pool.Attributes.ReserveInUSD),
		MarketCap: parseFloat(pool.Attributes.MarketCapUSD),
		FDV:       parseFloat(pool.Attributes.FDVUSD),
		Strategy:  StrategySearch,
	}, true
}

// parsePrice accepts only strictly positive finite prices. A zero,
// negative, NaN, or unparseable price counts as "no real data" even when
// the upstream call nominally succeeded.
func parsePrice(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseFloat(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
