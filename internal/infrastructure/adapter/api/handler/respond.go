package handler

import (
	"net/http"

	domainerr "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// httpStatus maps a domain error onto an HTTP status code
func httpStatus(err error) int {
	switch {
	case domainerr.IsInsufficientFundsError(err):
		return http.StatusUnprocessableEntity
	case domainerr.IsInvalidInviteError(err):
		return http.StatusForbidden
	case domainerr.IsNotFoundError(err):
		return http.StatusNotFound
	case domainerr.IsConflictError(err):
		return http.StatusConflict
	default:
		switch domainerr.ErrorCode(err) {
		case domainerr.CodeInvalidAmount, domainerr.CodeInvalidRequest, domainerr.CodeSelfTransfer:
			return http.StatusBadRequest
		case domainerr.CodeStoreUnavailable:
			return http.StatusServiceUnavailable
		default:
			return http.StatusInternalServerError
		}
	}
}

// respondError writes the standardized error body for a domain error
func respondError(c *gin.Context, err error) {
	c.JSON(httpStatus(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	})
}
