package middleware

import (
	"net/http"
	"strings"

	domainerr "github.com/amirhossein-jamali/account-ledger/internal/domain/error"
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/dto"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// AccountNumberKey is the gin context key the authenticated account number
// is stored under
const AccountNumberKey = "accountNumber"

// Auth middleware verifies the bearer token and binds the account number to
// the request context
func Auth(tokens *auth.TokenManager, logger coreport.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Missing Authorization header",
			})
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Authorization header must use the Bearer scheme",
			})
			return
		}

		accountNumber, err := tokens.Verify(tokenString)
		if err != nil {
			logger.Warn("Rejected session token", map[string]any{
				"error": err.Error(),
				"ip":    c.ClientIP(),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrInvalidRequest),
				Message: "Invalid or expired token",
			})
			return
		}

		c.Set(AccountNumberKey, accountNumber)
		c.Next()
	}
}
