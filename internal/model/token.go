package model

// Source tags reported on every token record. The presentation layer keys
// badge rendering off these exact strings, so they form a closed set.
// SourceManual is never produced here: the dashboard writes it when a user
// pins a manual price client-side, and it round-trips through this type.
const (
	SourceGeckoTerminal = "geckoterminal"
	SourceSimulation    = "realistic-simulation"
	SourceManual        = "manual-override"
	SourceErrorFallback = "error-fallback"
)

// API status values reported in response metadata.
const (
	StatusFullSuccess    = "full-success"
	StatusPartialSuccess = "partial-success"
	StatusFallbackMode   = "fallback-mode"
	StatusError          = "error"
)

// BestSwapNone is the sentinel used when no counterpart token has a
// defined change value for a horizon.
const BestSwapNone = "N/A"

// SupportedPeriods lists the three percent-change horizons every record
// carries, in display order.
var SupportedPeriods = []string{"24h", "7d", "30d"}

// PriceChanges is the three-horizon percent-change vector.
type PriceChanges struct {
	H24 float64 `json:"h24"`
	D7  float64 `json:"d7"`
	D30 float64 `json:"d30"`
}

// BestSwap maps each horizon to the symbol of the counterpart token with
// the highest change in that horizon, or BestSwapNone.
type BestSwap struct {
	H24 string `json:"h24"`
	D7  string `json:"d7"`
	D30 string `json:"d30"`
}

// Token is the enriched per-token record returned to the dashboard.
// Field names and JSON casing are part of the contract with the frontend.
type Token struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Contract string `json:"contract"`
	Category string `json:"category"`
	Decimals int    `json:"decimals"`

	PriceUsd     float64      `json:"priceUsd"`
	PriceChanges PriceChanges `json:"priceChanges"`
	BestSwap     BestSwap     `json:"bestSwap"`

	Volume24h float64 `json:"volume24h"`
	Liquidity float64 `json:"liquidity"`
	MarketCap float64 `json:"marketCap"`
	FDV       float64 `json:"fdv"`
	Txns24h   int     `json:"txns24h"`

	LastUpdated string `json:"lastUpdated"`
	IsSimulated bool   `json:"isSimulated"`
	Source      string `json:"source"`
	GeckoID     string `json:"geckoId,omitempty"`

	// Legacy scalar mirrors of the 24h horizon kept for older dashboard
	// builds. Quantity and TotalValue are filled in client-side.
	PriceChange24h float64 `json:"priceChange24h"`
	DiffPercent    float64 `json:"diffPercent"`
	ConversionRate float64 `json:"conversionRate"`
	Quantity       float64 `json:"quantity"`
	TotalValue     float64 `json:"totalValue"`
	Recommendation string  `json:"recommendation"`
}

// Metadata describes the refresh batch that produced a token set.
type Metadata struct {
	TotalTokens           int      `json:"totalTokens"`
	RealDataTokens        int      `json:"realDataTokens"`
	SimulatedTokens       int      `json:"simulatedTokens"`
	AttemptedFetches      int      `json:"attemptedFetches"`
	LastUpdate            string   `json:"lastUpdate"`
	CacheExpiry           string   `json:"cacheExpiry,omitempty"`
	DataSource            string   `json:"dataSource"`
	RoninNetworkAvailable bool     `json:"roninNetworkAvailable"`
	SuccessRate           string   `json:"successRate,omitempty"`
	APIStatus             string   `json:"apiStatus"`
	SupportedPeriods      []string `json:"supportedPeriods"`
	Error                 string   `json:"error,omitempty"`
}

// TokenResponse is the full payload of GET /api/tokens.
type TokenResponse struct {
	Tokens   []Token  `json:"tokens"`
	Metadata Metadata `json:"metadata"`
}
