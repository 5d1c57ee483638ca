package dexscreener

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/roninwatch/tokendash/internal/registry"
)

// ReportTTL is the verification report cache window. Listings change
// rarely, so this is much longer than the price cache.
const ReportTTL = 10 * time.Minute

// TokenStatus is the verification result for one registry token.
type TokenStatus struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Contract    string `json:"contract"`
	Listed      bool   `json:"listed"`
	DexID       string `json:"dexId,omitempty"`
	PairAddress string `json:"pairAddress,omitempty"`
	PairURL     string `json:"pairUrl,omitempty"`
	PriceUSD    string `json:"priceUsd,omitempty"`
}

// Report summarizes which registry tokens have a live Ronin pair on
// DEX Screener.
type Report struct {
	Checked     int           `json:"checked"`
	Listed      int           `json:"listed"`
	Tokens      []TokenStatus `json:"tokens"`
	GeneratedAt string        `json:"generatedAt"`
}

// PairSource is the slice of the client the verifier needs.
type PairSource interface {
	TokenPairs(ctx context.Context, address string) ([]Pair, error)
}

// Verifier walks the registry and checks each token for a Ronin pair.
// Reports are cached in a single slot for ReportTTL.
type Verifier struct {
	source PairSource
	tokens []registry.Descriptor
	now    func() time.Time

	mu       sync.Mutex
	report   *Report
	storedAt time.Time
}

// NewVerifier builds a Verifier over the whole registry.
func NewVerifier(source PairSource) *Verifier {
	return &Verifier{
		source: source,
		tokens: registry.All(),
		now:    time.Now,
	}
}

// NewVerifierWith builds a Verifier with explicit tokens and clock, for
// tests.
func NewVerifierWith(source PairSource, tokens []registry.Descriptor, now func() time.Time) *Verifier {
	return &Verifier{source: source, tokens: tokens, now: now}
}

// Verify returns the current verification report, recomputing it when
// the cached one has expired. Lookup failures count as unlisted; the
// report is best effort by construction.
func (v *Verifier) Verify(ctx context.Context) *Report {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.report != nil && v.now().Sub(v.storedAt) < ReportTTL {
		return v.report
	}

	report := &Report{
		Tokens:      make([]TokenStatus, 0, len(v.tokens)),
		GeneratedAt: v.now().UTC().Format(time.RFC3339),
	}

	for _, desc := range v.tokens {
		report.Checked++
		status := TokenStatus{
			Symbol:   desc.Symbol,
			Name:     desc.Name,
			Contract: desc.Contract,
		}

		pairs, err := v.source.TokenPairs(ctx, desc.Contract)
		if err != nil {
			log.Debug().Err(err).Str("symbol", desc.Symbol).Msg("pair lookup failed")
			report.Tokens = append(report.Tokens, status)
			continue
		}

		if pair, ok := RoninPair(pairs); ok {
			status.Listed = true
			status.DexID = pair.DexID
			status.PairAddress = pair.PairAddress
			status.PairURL = pair.URL
			status.PriceUSD = pair.PriceUSD
			report.Listed++
		}
		report.Tokens = append(report.Tokens, status)
	}

	v.report = report
	v.storedAt = v.now()
	return report
}
