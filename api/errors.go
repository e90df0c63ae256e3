package api

import (
	"net/http"

	errorsmod "cosmossdk.io/errors"
	"github.com/gin-gonic/gin"

	pooltypes "github.com/paw-chain/cpamm/x/pool/types"
	tokentypes "github.com/paw-chain/cpamm/x/token/types"
)

// HTTPStatus maps a module error to the status code the API answers with.
func HTTPStatus(err error) int {
	switch {
	case errorsmod.IsOf(err,
		pooltypes.ErrInvalidAssetPair,
		pooltypes.ErrInvalidInputAsset,
		pooltypes.ErrInvalidOutputAsset,
		pooltypes.ErrInvalidPath,
		pooltypes.ErrInvalidAmount,
		pooltypes.ErrInvalidAddress,
		pooltypes.ErrZeroInput,
		tokentypes.ErrInvalidDenom,
		tokentypes.ErrInvalidAmount,
	):
		return http.StatusBadRequest
	case errorsmod.IsOf(err, pooltypes.ErrNoLiquidity):
		return http.StatusConflict
	case errorsmod.IsOf(err, pooltypes.ErrOverflow):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// writeError answers with the mapped status and the registered error code.
// Internal errors are logged and not echoed.
func (s *Server) writeError(c *gin.Context, err error) {
	status := HTTPStatus(err)
	codespace, code, msg := errorsmod.ABCIInfo(err, false)

	resp := ErrorResponse{
		Error:     msg,
		Code:      http.StatusText(status),
		Codespace: codespace,
		ABCICode:  code,
		RequestID: c.GetString(requestIDKey),
	}
	if status == http.StatusInternalServerError {
		s.logger.Error("query failed", "path", c.Request.URL.Path, "error", err, "request_id", resp.RequestID)
		resp.Error = "internal error"
		resp.Codespace = ""
		resp.ABCICode = 0
	}
	c.AbortWithStatusJSON(status, resp)
}
