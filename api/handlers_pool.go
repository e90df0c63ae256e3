package api

import (
	"net/http"
	"time"

	"cosmossdk.io/math"
	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
)

// handleHealth reports liveness together with the committed height
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status: "ok",
		Pair:   s.node.Pair().String(),
		Height: s.node.LastBlockHeight(),
	})
}

// handleGetPool returns the pool description and committed state
func (s *Server) handleGetPool(c *gin.Context) {
	var info pooltypes.PoolInfo
	err := s.node.View(time.Now(), func(ctx sdk.Context) error {
		var err error
		info, err = s.node.PoolKeeper.PoolInfo(ctx)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PoolResponse{
		DenomA:      info.Pair.DenomA,
		DenomB:      info.Pair.DenomB,
		Address:     info.Address.String(),
		ShareDenom:  info.ShareDenom,
		ReserveA:    info.Reserves.ReserveA.String(),
		ReserveB:    info.Reserves.ReserveB.String(),
		TotalShares: info.TotalShares.String(),
		Height:      s.node.LastBlockHeight(),
	})
}

// pairParams reads denom_a and denom_b, defaulting to the pool order.
func (s *Server) pairParams(c *gin.Context) (string, string) {
	pair := s.node.Pair()
	return c.DefaultQuery("denom_a", pair.DenomA), c.DefaultQuery("denom_b", pair.DenomB)
}

// handleGetReserves returns the reserves in the requested order
func (s *Server) handleGetReserves(c *gin.Context) {
	denomA, denomB := s.pairParams(c)

	var reserveA, reserveB math.Int
	err := s.node.View(time.Now(), func(ctx sdk.Context) error {
		var err error
		reserveA, reserveB, err = s.node.PoolKeeper.GetReserves(ctx, denomA, denomB)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, ReservesResponse{
		DenomA:   denomA,
		DenomB:   denomB,
		ReserveA: reserveA.String(),
		ReserveB: reserveB.String(),
	})
}

// handleGetPrice returns the scaled spot price of denom_a in denom_b
func (s *Server) handleGetPrice(c *gin.Context) {
	denomA, denomB := s.pairParams(c)

	var price math.Int
	err := s.node.View(time.Now(), func(ctx sdk.Context) error {
		var err error
		price, err = s.node.PoolKeeper.GetPrice(ctx, denomA, denomB)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, PriceResponse{
		DenomA: denomA,
		DenomB: denomB,
		Price:  price.String(),
		Scale:  pooltypes.PriceScale.String(),
	})
}

// handleGetAmountOut quotes a swap of amount_in token_in against the
// committed reserves
func (s *Server) handleGetAmountOut(c *gin.Context) {
	amountIn, err := ValidateAmount(c.Query("amount_in"))
	if err != nil {
		s.writeError(c, pooltypes.ErrInvalidAmount.Wrap(err.Error()))
		return
	}

	pair := s.node.Pair()
	tokenIn := c.DefaultQuery("token_in", pair.DenomA)
	if !pair.Contains(tokenIn) {
		s.writeError(c, pooltypes.ErrInvalidInputAsset.Wrapf("%s is not part of %s", tokenIn, pair))
		return
	}
	tokenOut := pair.DenomB
	if tokenIn == pair.DenomB {
		tokenOut = pair.DenomA
	}

	var amountOut math.Int
	err = s.node.View(time.Now(), func(ctx sdk.Context) error {
		reserveIn, reserveOut, err := s.node.PoolKeeper.GetReserves(ctx, tokenIn, tokenOut)
		if err != nil {
			return err
		}
		amountOut, err = s.node.PoolKeeper.GetAmountOut(amountIn, reserveIn, reserveOut)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, AmountOutResponse{
		TokenIn:   tokenIn,
		TokenOut:  tokenOut,
		AmountIn:  amountIn.String(),
		AmountOut: amountOut.String(),
	})
}

// handleGetQuote returns the deposit of denom_b matching amount_a of denom_a
// at the current reserve ratio
func (s *Server) handleGetQuote(c *gin.Context) {
	amountA, err := ValidateAmount(c.Query("amount_a"))
	if err != nil {
		s.writeError(c, pooltypes.ErrInvalidAmount.Wrap(err.Error()))
		return
	}
	denomA, denomB := s.pairParams(c)

	var amountB math.Int
	err = s.node.View(time.Now(), func(ctx sdk.Context) error {
		reserveA, reserveB, err := s.node.PoolKeeper.GetReserves(ctx, denomA, denomB)
		if err != nil {
			return err
		}
		amountB, err = s.node.PoolKeeper.Quote(amountA, reserveA, reserveB)
		return err
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		DenomA:  denomA,
		DenomB:  denomB,
		AmountA: amountA.String(),
		AmountB: amountB.String(),
	})
}
