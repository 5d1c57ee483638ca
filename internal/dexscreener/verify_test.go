package dexscreener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roninwatch/tokendash/internal/registry"
)

type fakePairSource struct {
	pairs map[string][]Pair // keyed by contract as passed in
	err   error
	calls int
}

func (f *fakePairSource) TokenPairs(ctx context.Context, address string) ([]Pair, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.pairs[address], nil
}

var verifyTokens = []registry.Descriptor{
	{Name: "ALPHA", Symbol: "ALPHA", Contract: "0xAAA", Category: registry.CategoryMetal},
	{Name: "BETA", Symbol: "BETA", Contract: "0xBBB", Category: registry.CategoryGas},
}

func TestVerify_ReportsListedAndUnlisted(t *testing.T) {
	src := &fakePairSource{pairs: map[string][]Pair{
		"0xAAA": {{ChainID: "ronin", DexID: "katana", PairAddress: "0x2", PriceUSD: "0.004", URL: "https://dexscreener.com/ronin/0x2"}},
	}}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifierWith(src, verifyTokens, func() time.Time { return now })

	report := v.Verify(context.Background())

	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 1, report.Listed)
	require.Len(t, report.Tokens, 2)

	alpha := report.Tokens[0]
	assert.True(t, alpha.Listed)
	assert.Equal(t, "katana", alpha.DexID)
	assert.Equal(t, "0.004", alpha.PriceUSD)

	beta := report.Tokens[1]
	assert.False(t, beta.Listed)
	assert.Empty(t, beta.DexID)
}

func TestVerify_LookupErrorCountsAsUnlisted(t *testing.T) {
	src := &fakePairSource{err: errors.New("down")}

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifierWith(src, verifyTokens, func() time.Time { return now })

	report := v.Verify(context.Background())

	assert.Equal(t, 2, report.Checked)
	assert.Equal(t, 0, report.Listed)
}

func TestVerify_ReportIsCached(t *testing.T) {
	src := &fakePairSource{}

	current := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	v := NewVerifierWith(src, verifyTokens, func() time.Time { return current })

	first := v.Verify(context.Background())
	second := v.Verify(context.Background())
	assert.Same(t, first, second)
	assert.Equal(t, len(verifyTokens), src.calls, "second call must not hit the source")

	current = current.Add(ReportTTL)
	third := v.Verify(context.Background())
	assert.NotSame(t, first, third)
}
