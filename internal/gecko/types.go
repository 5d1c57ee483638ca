package gecko

// Wire types for the GeckoTerminal API v2. Numeric fields arrive as
// strings and are parsed at the resolution boundary, not here.

// VolumeUSD is the per-window traded volume block.
type VolumeUSD struct {
	H1  string `json:"h1"`
	H6  string `json:"h6"`
	H24 string `json:"h24"`
}

// PriceChangePercentage is the per-window percent change block.
type PriceChangePercentage struct {
	H1  string `json:"h1"`
	H6  string `json:"h6"`
	H24 string `json:"h24"`
}

// TokenAttributes is the attribute payload of a token lookup.
type TokenAttributes struct {
	Address               string                `json:"address"`
	Name                  string                `json:"name"`
	Symbol                string                `json:"symbol"`
	Decimals              int                   `json:"decimals"`
	TotalSupply           string                `json:"total_supply"`
	CoingeckoCoinID       string                `json:"coingecko_coin_id"`
	PriceUSD              string                `json:"price_usd"`
	FDVUSD                string                `json:"fdv_usd"`
	MarketCapUSD          string                `json:"market_cap_usd"`
	TotalReserveInUSD     string                `json:"total_reserve_in_usd"`
	VolumeUSD             VolumeUSD             `json:"volume_usd"`
	PriceChangePercentage PriceChangePercentage `json:"price_change_percentage"`
}

// Token is one token resource from a lookup response.
type Token struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	Attributes TokenAttributes `json:"attributes"`
}

type tokenResponse struct {
	Data *Token `json:"data"`
}

// NetworkAttributes is the attribute payload of a network resource.
type NetworkAttributes struct {
	Name string `json:"name"`
}

// Network is one supported chain as listed by the aggregator.
type Network struct {
	ID         string            `json:"id"`
	Attributes NetworkAttributes `json:"attributes"`
}

type networksResponse struct {
	Data []Network `json:"data"`
}

// PoolAttributes is the attribute payload of a pool search hit.
type PoolAttributes struct {
	Name                  string                `json:"name"`
	BaseTokenPriceUSD     string                `json:"base_token_price_usd"`
	ReserveInUSD          string                `json:"reserve_in_usd"`
	FDVUSD                string                `json:"fdv_usd"`
	MarketCapUSD          string                `json:"market_cap_usd"`
	VolumeUSD             VolumeUSD             `json:"volume_usd"`
	PriceChangePercentage PriceChangePercentage `json:"price_change_percentage"`
}

// RelRef is a JSON:API relationship reference.
type RelRef struct {
	Data struct {
		ID   string `json:"id"`
		Type string `json:"type"`
	} `json:"data"`
}

// PoolRelationships carries the network and base-token references of a
// pool search hit.
type PoolRelationships struct {
	Network   RelRef `json:"network"`
	BaseToken RelRef `json:"base_token"`
}

// Pool is one pool resource from a search response.
type Pool struct {
	ID            string            `json:"id"`
	Type          string            `json:"type"`
	Attributes    PoolAttributes    `json:"attributes"`
	Relationships PoolRelationships `json:"relationships"`
}

type searchResponse struct {
	Data []Pool `json:"data"`
}
