// Package keeper implements the pool module keeper.
//
// A Keeper owns exactly one constant-product pool over an immutable asset pair.
// It custodies both assets in a deterministic pool account and issues fungible
// liquidity shares through a share ledger.
//
// # Core Functionality
//
// Liquidity: AddLiquidity fits a deposit to the reserve ratio and mints shares
// (the geometric mean of the amounts for the first deposit). RemoveLiquidity
// burns shares and pays out a truncated proportional part of both reserves.
//
// Swaps: SwapExactTokensForTokens prices a single-hop trade with the zero-fee
// formula amountOut = amountIn * reserveOut / (reserveIn + amountIn).
//
// Reserves: every mutating operation ends with Synchronize, which overwrites the
// stored reserves with the custodied balances. Sync does only that.
//
// # Atomicity and Concurrency
//
// Mutating operations hold the pool write lock and run in a branched context
// that is committed only on success. The asset and share ledgers must write
// through the context they are handed for a failure to roll their effects back.
// Accessors take the read lock.
//
// # Usage Patterns
//
// Adding liquidity:
//
//	res, err := keeper.AddLiquidity(ctx, sender, "uatom", "uosmo", a, b, minA, minB, sender, deadline)
//
// Executing a swap:
//
//	res, err := keeper.SwapExactTokensForTokens(ctx, sender, in, minOut, []string{"uatom", "uosmo"}, sender, deadline)
//
// Querying the price:
//
//	price, err := keeper.GetPrice(ctx, "uatom", "uosmo")
package keeper
