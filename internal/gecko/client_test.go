package gecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(Config{
		BaseURL: srv.URL,
		RPS:     1000, // don't slow tests down
		Burst:   1000,
	})
}

func TestTokenByAddress_LowercasesAddress(t *testing.T) {
	var gotPath string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Write([]byte(`{"data":{"id":"ronin_0xabc","type":"token","attributes":{"price_usd":"0.05"}}}`))
	})

	tok, err := client.TokenByAddress(context.Background(), "ronin", "0xABCDEF")
	require.NoError(t, err)

	assert.Equal(t, "/networks/ronin/tokens/0xabcdef", gotPath)
	assert.Equal(t, "0.05", tok.Attributes.PriceUSD)
}

func TestTokenByAddress_SetsHeaders(t *testing.T) {
	var accept, userAgent string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		accept = r.Header.Get("Accept")
		userAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`{"data":{"id":"x","type":"token","attributes":{}}}`))
	})

	_, err := client.TokenByAddress(context.Background(), "ronin", "0xABC")
	require.NoError(t, err)

	assert.Equal(t, "application/json", accept)
	assert.Equal(t, "RoninTokenDashboard/1.0", userAgent)
}

func TestTokenByAddress_NonOKStatusIsError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})

	_, err := client.TokenByAddress(context.Background(), "ronin", "0xABC")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}

func TestTokenByAddress_MalformedJSONIsError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [not json`))
	})

	_, err := client.TokenByAddress(context.Background(), "ronin", "0xABC")
	assert.Error(t, err)
}

func TestTokenByAddress_EmptyDataIsError(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":null}`))
	})

	_, err := client.TokenByAddress(context.Background(), "ronin", "0xABC")
	assert.Error(t, err)
}

func TestNetworks_ParsesList(t *testing.T) {
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/networks", r.URL.Path)
		w.Write([]byte(`{"data":[
			{"id":"eth","attributes":{"name":"Ethereum"}},
			{"id":"ronin","attributes":{"name":"Ronin"}}
		]}`))
	})

	networks, err := client.Networks(context.Background())
	require.NoError(t, err)
	require.Len(t, networks, 2)
	assert.Equal(t, "ronin", networks[1].ID)
	assert.Equal(t, "Ronin", networks[1].Attributes.Name)
}

func TestSearchPools_EscapesQuery(t *testing.T) {
	var gotQuery string
	client := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{"data":[{"id":"p1","type":"pool",
			"attributes":{"name":"COIN / WRON","base_token_price_usd":"0.004"},
			"relationships":{"network":{"data":{"id":"ronin","type":"network"}}}}]}`))
	})

	pools, err := client.SearchPools(context.Background(), "A&B C")
	require.NoError(t, err)
	assert.Equal(t, "A&B C", gotQuery)
	require.Len(t, pools, 1)
	assert.Equal(t, "0.004", pools[0].Attributes.BaseTokenPriceUSD)
	assert.Equal(t, "ronin", pools[0].Relationships.Network.Data.ID)
}

func TestClient_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	client := NewClient(Config{
		BaseURL:         srv.URL,
		RPS:             1000,
		Burst:           1000,
		BreakerFailures: 2,
		BreakerTimeout:  time.Minute,
	})

	for i := 0; i < 5; i++ {
		_, err := client.Networks(context.Background())
		assert.Error(t, err)
	}

	// The breaker opened after two consecutive failures; the remaining
	// calls never reached the server.
	assert.Equal(t, 2, hits)
	assert.Equal(t, "open", client.BreakerState())
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, client.baseURL)
	assert.Equal(t, "closed", client.BreakerState())
}
