package api

import (
	"net/http"
	"time"

	sdk "github.com/cosmos/cosmos-sdk/types"
	"github.com/gin-gonic/gin"

	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
	tokenkeeper "github.com/paw-chain/cpamm/x/token/keeper"
)

// handleGetBalances returns the holdings of an address in both assets and
// the share ledger, plus the allowances it granted the pool
func (s *Server) handleGetBalances(c *gin.Context) {
	addr, err := ValidateAddress(c.Param("address"))
	if err != nil {
		s.writeError(c, pooltypes.ErrInvalidAddress.Wrap(err.Error()))
		return
	}

	resp := BalancesResponse{Address: addr.String()}
	err = s.node.View(time.Now(), func(ctx sdk.Context) error {
		pool := s.node.PoolKeeper.Address()
		for _, k := range []tokenkeeper.Keeper{s.node.AssetAKeeper, s.node.AssetBKeeper, s.node.ShareKeeper} {
			resp.Balances = append(resp.Balances, Coin{Denom: k.Denom(), Amount: k.BalanceOf(ctx, addr).String()})
		}
		for _, k := range []tokenkeeper.Keeper{s.node.AssetAKeeper, s.node.AssetBKeeper} {
			resp.PoolAllowances = append(resp.PoolAllowances, Coin{Denom: k.Denom(), Amount: k.Allowance(ctx, addr, pool).String()})
		}
		return nil
	})
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
