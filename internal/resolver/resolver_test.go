package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roninwatch/tokendash/internal/gecko"
	"github.com/roninwatch/tokendash/internal/registry"
)

type fakeSource struct {
	// tokens maps network -> contract -> token.
	tokens map[string]map[string]*gecko.Token
	pools  []gecko.Pool

	lookupErr error
	searchErr error

	lookupCalls []string
	searchCalls []string
}

func (f *fakeSource) TokenByAddress(ctx context.Context, network, address string) (*gecko.Token, error) {
	f.lookupCalls = append(f.lookupCalls, network)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if tok, ok := f.tokens[network][address]; ok {
		return tok, nil
	}
	return nil, errors.New("not found")
}

func (f *fakeSource) SearchPools(ctx context.Context, query string) ([]gecko.Pool, error) {
	f.searchCalls = append(f.searchCalls, query)
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.pools, nil
}

func tokenWithPrice(price string) *gecko.Token {
	tok := &gecko.Token{ID: "ronin_0xabc", Type: "token"}
	tok.Attributes.PriceUSD = price
	tok.Attributes.PriceChangePercentage.H24 = "12.5"
	tok.Attributes.VolumeUSD.H24 = "15000"
	tok.Attributes.TotalReserveInUSD = "42000"
	tok.Attributes.MarketCapUSD = "900000"
	tok.Attributes.FDVUSD = "1100000"
	tok.Attributes.CoingeckoCoinID = "test-coin"
	return tok
}

func roninPool(price string) gecko.Pool {
	var p gecko.Pool
	p.ID = "ronin_pool"
	p.Attributes.Name = "COIN / WRON"
	p.Attributes.BaseTokenPriceUSD = price
	p.Attributes.PriceChangePercentage.H24 = "3.4"
	p.Attributes.VolumeUSD.H24 = "500"
	p.Attributes.ReserveInUSD = "9000"
	p.Relationships.Network.Data.ID = "ronin"
	return p
}

var testDesc = registry.Descriptor{
	Name:     "COIN",
	Symbol:   "COIN",
	Contract: "0xABC",
	Decimals: 18,
	Category: registry.CategoryUtility,
}

func TestResolve_PrimaryLookupSucceeds(t *testing.T) {
	src := &fakeSource{tokens: map[string]map[string]*gecko.Token{
		NetworkPrimary: {"0xABC": tokenWithPrice("0.05")},
	}}
	r := New(src)

	fact, ok := r.Resolve(context.Background(), testDesc)
	require.True(t, ok)

	assert.Equal(t, 0.05, fact.PriceUSD)
	assert.Equal(t, 12.5, fact.Change24h)
	assert.Equal(t, 15000.0, fact.Volume24h)
	assert.Equal(t, 42000.0, fact.Liquidity)
	assert.Equal(t, 900000.0, fact.MarketCap)
	assert.Equal(t, 1100000.0, fact.FDV)
	assert.Equal(t, "test-coin", fact.GeckoID)
	assert.Equal(t, StrategyLookupPrimary, fact.Strategy)

	// Short-circuit: no alternate lookup, no search.
	assert.Equal(t, []string{NetworkPrimary}, src.lookupCalls)
	assert.Empty(t, src.searchCalls)
}

func TestResolve_FallsThroughToAlternateSlug(t *testing.T) {
	src := &fakeSource{tokens: map[string]map[string]*gecko.Token{
		NetworkAlternate: {"0xABC": tokenWithPrice("0.01")},
	}}
	r := New(src)

	fact, ok := r.Resolve(context.Background(), testDesc)
	require.True(t, ok)
	assert.Equal(t, StrategyLookupAlternate, fact.Strategy)
	assert.Equal(t, []string{NetworkPrimary, NetworkAlternate}, src.lookupCalls)
}

func TestResolve_FallsThroughToSearch(t *testing.T) {
	src := &fakeSource{pools: []gecko.Pool{roninPool("0.002")}}
	r := New(src)

	fact, ok := r.Resolve(context.Background(), testDesc)
	require.True(t, ok)
	assert.Equal(t, StrategySearch, fact.Strategy)
	assert.Equal(t, 0.002, fact.PriceUSD)
	assert.Equal(t, 3.4, fact.Change24h)
	assert.Equal(t, []string{"COIN"}, src.searchCalls)
}

func TestResolve_SearchFiltersToRonin(t *testing.T) {
	var other gecko.Pool
	other.ID = "eth_pool"
	other.Attributes.Name = "COIN / WETH"
	other.Attributes.BaseTokenPriceUSD = "99"
	other.Relationships.Network.Data.ID = "eth"

	src := &fakeSource{pools: []gecko.Pool{other, roninPool("0.002")}}
	r := New(src)

	fact, ok := r.Resolve(context.Background(), testDesc)
	require.True(t, ok)
	assert.Equal(t, 0.002, fact.PriceUSD, "must skip the non-ronin pool")
}

func TestResolve_SearchSkipsRoninPoolWithBadPrice(t *testing.T) {
	// A Ronin pool with an unusable price does not end the search; a
	// later Ronin pool with a valid price still resolves.
	src := &fakeSource{pools: []gecko.Pool{roninPool("0"), roninPool("0.002")}}
	r := New(src)

	fact, ok := r.Resolve(context.Background(), testDesc)
	require.True(t, ok)
	assert.Equal(t, 0.002, fact.PriceUSD)
}

func TestResolve_SearchMatchesRoninByName(t *testing.T) {
	pool := roninPool("0.002")
	pool.Relationships.Network.Data.ID = "other-slug"
	pool.Attributes.Name = "COIN / WRON (Ronin)"

	src := &fakeSource{pools: []gecko.Pool{pool}}
	r := New(src)

	_, ok := r.Resolve(context.Background(), testDesc)
	assert.True(t, ok)
}

func TestResolve_AllStrategiesFail(t *testing.T) {
	src := &fakeSource{lookupErr: errors.New("boom"), searchErr: errors.New("boom")}
	r := New(src)

	_, ok := r.Resolve(context.Background(), testDesc)
	assert.False(t, ok)
}

func TestResolve_RejectsInvalidPrices(t *testing.T) {
	for _, price := range []string{"0", "-1", "NaN", "+Inf", "", "garbage"} {
		src := &fakeSource{tokens: map[string]map[string]*gecko.Token{
			NetworkPrimary: {"0xABC": tokenWithPrice(price)},
		}}
		r := New(src)

		_, ok := r.Resolve(context.Background(), testDesc)
		assert.False(t, ok, "price %q must not count as live data", price)
	}
}

func TestParsePrice(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"0.05", 0.05, true},
		{"1e-7", 1e-7, true},
		{"0", 0, false},
		{"-0.01", 0, false},
		{"NaN", 0, false},
		{"Inf", 0, false},
		{"", 0, false},
	}

	for _, tc := range cases {
		got, ok := parsePrice(tc.in)
		assert.Equal(t, tc.ok, ok, "parsePrice(%q)", tc.in)
		if tc.ok {
			assert.Equal(t, tc.want, got, "parsePrice(%q)", tc.in)
		}
	}
}

func TestParseFloat_Defaults(t *testing.T) {
	assert.Equal(t, 0.0, parseFloat("garbage"))
	assert.Equal(t, 0.0, parseFloat("NaN"))
	assert.Equal(t, 12.5, parseFloat("12.5"))
}
