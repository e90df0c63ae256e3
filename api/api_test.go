package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cosmossdk.io/log"
	"cosmossdk.io/math"
	dbm "github.com/cosmos/cosmos-db"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugawarayuuta/sonnet"

	"github.com/paw-chain/cpamm/app"
	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
	tokentypes "github.com/paw-chain/cpamm/x/token/types"
)

var (
	testPair    = pooltypes.AssetPair{DenomA: "uatom", DenomB: "uosmo"}
	genesisTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	provider    = sdk.AccAddress([]byte("provider____________"))
)

// setupTestNode creates a node whose pool holds reserveA/reserveB
func setupTestNode(t *testing.T, reserveA, reserveB int64) *app.App {
	node, err := app.New(log.NewNopLogger(), dbm.NewMemDB(), testPair)
	require.NoError(t, err)

	gs := app.NewDefaultGenesisState(testPair)
	for _, denom := range []string{testPair.DenomA, testPair.DenomB} {
		token, err := gs.Token(denom)
		require.NoError(t, err)
		token.Balances = []tokentypes.Balance{{Address: provider.String(), Amount: math.NewInt(1_000_000)}}
	}
	require.NoError(t, node.InitChain(gs, genesisTime))

	if reserveA > 0 {
		_, err = node.Deliver(context.Background(), "add_liquidity", genesisTime, func(ctx sdk.Context) error {
			pool := node.PoolKeeper.Address()
			require.NoError(t, node.AssetAKeeper.Approve(ctx, provider, pool, math.NewInt(reserveA)))
			require.NoError(t, node.AssetBKeeper.Approve(ctx, provider, pool, math.NewInt(reserveB)))
			_, err := node.PoolKeeper.AddLiquidity(ctx, provider, testPair.DenomA, testPair.DenomB,
				math.NewInt(reserveA), math.NewInt(reserveB), math.ZeroInt(), math.ZeroInt(),
				provider, genesisTime.Add(time.Hour))
			return err
		})
		require.NoError(t, err)
	}
	return node
}

// setupTestServer creates a test server instance
func setupTestServer(t *testing.T, node *app.App) *Server {
	cfg := DefaultConfig()
	cfg.RateLimitRPS = 1000
	cfg.RateLimitBurst = 1000
	return NewServer(log.NewNopLogger(), node, cfg)
}

func doGet(t *testing.T, s *Server, path string, out interface{}) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	if out != nil {
		require.NoError(t, sonnet.Unmarshal(w.Body.Bytes(), out), w.Body.String())
	}
	return w
}

func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 0, 0))

	var resp HealthResponse
	w := doGet(t, server, "/health", &resp)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "uatom/uosmo", resp.Pair)
	assert.Equal(t, int64(1), resp.Height)
}

func TestGetPool(t *testing.T) {
	node := setupTestNode(t, 1_000, 4_000)
	server := setupTestServer(t, node)

	var resp PoolResponse
	w := doGet(t, server, "/api/pool", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "1000", resp.ReserveA)
	assert.Equal(t, "4000", resp.ReserveB)
	assert.Equal(t, "2000", resp.TotalShares)
	assert.Equal(t, "lp/uatom/uosmo", resp.ShareDenom)
	assert.Equal(t, node.PoolKeeper.Address().String(), resp.Address)
	assert.Equal(t, int64(2), resp.Height)
}

func TestGetReserves_CallerOrder(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 1_000, 4_000))

	var resp ReservesResponse
	w := doGet(t, server, "/api/pool/reserves?denom_a=uosmo&denom_b=uatom", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4000", resp.ReserveA)
	assert.Equal(t, "1000", resp.ReserveB)
}

func TestGetPrice(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 1_000, 4_000))

	var resp PriceResponse
	w := doGet(t, server, "/api/pool/price", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4000000000000000000", resp.Price)
	assert.Equal(t, "1000000000000000000", resp.Scale)
}

func TestGetAmountOut(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 1_000, 1_000))

	var resp AmountOutResponse
	w := doGet(t, server, "/api/pool/amount-out?amount_in=100&token_in=uosmo", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "uatom", resp.TokenOut)
	// floor(100*1000/1100)
	assert.Equal(t, "90", resp.AmountOut)
}

func TestGetQuote(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 1_000, 4_000))

	var resp QuoteResponse
	w := doGet(t, server, "/api/pool/quote?amount_a=10", &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "40", resp.AmountB)
}

func TestGetBalances(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 1_000, 4_000))

	var resp BalancesResponse
	w := doGet(t, server, "/api/balances/"+provider.String(), &resp)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []Coin{
		{Denom: "uatom", Amount: "999000"},
		{Denom: "uosmo", Amount: "996000"},
		{Denom: "lp/uatom/uosmo", Amount: "2000"},
	}, resp.Balances)
	assert.Equal(t, []Coin{
		{Denom: "uatom", Amount: "0"},
		{Denom: "uosmo", Amount: "0"},
	}, resp.PoolAllowances)
}

func TestErrors(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 0, 0))

	tests := []struct {
		name      string
		path      string
		status    int
		codespace string
		abciCode  uint32
	}{
		{"empty pool price", "/api/pool/price", http.StatusConflict, pooltypes.ModuleName, 12},
		{"empty pool amount out", "/api/pool/amount-out?amount_in=5", http.StatusConflict, pooltypes.ModuleName, 12},
		{"foreign denom", "/api/pool/reserves?denom_a=ujuno", http.StatusBadRequest, pooltypes.ModuleName, 2},
		{"foreign input", "/api/pool/amount-out?amount_in=5&token_in=ujuno", http.StatusBadRequest, pooltypes.ModuleName, 3},
		{"negative amount", "/api/pool/amount-out?amount_in=-5", http.StatusBadRequest, pooltypes.ModuleName, 14},
		{"missing amount", "/api/pool/quote", http.StatusBadRequest, pooltypes.ModuleName, 14},
		{"bad address", "/api/balances/nope", http.StatusBadRequest, pooltypes.ModuleName, 15},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var resp ErrorResponse
			w := doGet(t, server, tc.path, &resp)
			assert.Equal(t, tc.status, w.Code)
			assert.Equal(t, tc.codespace, resp.Codespace)
			assert.Equal(t, tc.abciCode, resp.ABCICode)
			assert.NotEmpty(t, resp.RequestID)
		})
	}
}

func TestRequestID(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 0, 0))

	w := doGet(t, server, "/health", nil)
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	require.NoError(t, err)

	id := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, id, w.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid", w.Header().Get(RequestIDHeader))
}

func TestRateLimit(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RateLimitRPS = 1
	cfg.RateLimitBurst = 2
	server := NewServer(log.NewNopLogger(), setupTestNode(t, 0, 0), cfg)

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		codes = append(codes, doGet(t, server, "/health", nil).Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestCORS(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 0, 0))

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://evil.example")
	w = httptest.NewRecorder()
	server.Handler().ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeShutsDownOnCancel(t *testing.T) {
	server := setupTestServer(t, setupTestNode(t, 0, 0))
	server.config.Address = "127.0.0.1:0"

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.ListenAndServe(ctx) }()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
