package api

// ==================== Pool Types ====================

// PoolResponse describes the pool and its committed state
type PoolResponse struct {
	DenomA      string `json:"denom_a"`
	DenomB      string `json:"denom_b"`
	Address     string `json:"address"`
	ShareDenom  string `json:"share_denom"`
	ReserveA    string `json:"reserve_a"`
	ReserveB    string `json:"reserve_b"`
	TotalShares string `json:"total_shares"`
	Height      int64  `json:"height"`
}

// ReservesResponse reports reserves in the requested order
type ReservesResponse struct {
	DenomA   string `json:"denom_a"`
	DenomB   string `json:"denom_b"`
	ReserveA string `json:"reserve_a"`
	ReserveB string `json:"reserve_b"`
}

// PriceResponse reports the spot price of DenomA in units of DenomB, scaled
// by Scale
type PriceResponse struct {
	DenomA string `json:"denom_a"`
	DenomB string `json:"denom_b"`
	Price  string `json:"price"`
	Scale  string `json:"scale"`
}

// AmountOutResponse reports the output of a hypothetical swap
type AmountOutResponse struct {
	TokenIn   string `json:"token_in"`
	TokenOut  string `json:"token_out"`
	AmountIn  string `json:"amount_in"`
	AmountOut string `json:"amount_out"`
}

// QuoteResponse reports the proportional amount of DenomB for AmountA
type QuoteResponse struct {
	DenomA  string `json:"denom_a"`
	DenomB  string `json:"denom_b"`
	AmountA string `json:"amount_a"`
	AmountB string `json:"amount_b"`
}

// ==================== Balance Types ====================

// Coin is an amount of a single denom
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// BalancesResponse lists an account's holdings in every ledger of the pool,
// and the allowance it granted the pool in each asset
type BalancesResponse struct {
	Address        string `json:"address"`
	Balances       []Coin `json:"balances"`
	PoolAllowances []Coin `json:"pool_allowances"`
}

// ==================== Common Response Types ====================

// HealthResponse is the liveness response
type HealthResponse struct {
	Status string `json:"status"`
	Pair   string `json:"pair"`
	Height int64  `json:"height"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code,omitempty"`
	Codespace string `json:"codespace,omitempty"`
	ABCICode  uint32 `json:"abci_code,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}
