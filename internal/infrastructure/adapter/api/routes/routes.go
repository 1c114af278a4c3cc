package routes

import (
	coreport "github.com/amirhossein-jamali/account-ledger/internal/domain/port/core"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/handler"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/api/middleware"
	"github.com/amirhossein-jamali/account-ledger/internal/infrastructure/adapter/auth"
	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all the routes for the API
func SetupRoutes(
	router *gin.Engine,
	accountHandler *handler.AccountHandler,
	transferHandler *handler.TransferHandler,
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
	tokens *auth.TokenManager,
	logger coreport.Logger,
) {
	// Public routes
	router.GET("/health", healthHandler.Health)
	router.POST("/register", accountHandler.Register)
	router.POST("/login", authHandler.Login)

	// Authenticated routes
	session := router.Group("/")
	session.Use(middleware.Auth(tokens, logger))
	{
		// GET /account
		session.GET("/account", accountHandler.GetAccount)

		// POST /transfer
		session.POST("/transfer", transferHandler.Transfer)
	}
}

// SetupMiddlewares configures global middlewares for the API
func SetupMiddlewares(router *gin.Engine, logger coreport.Logger) {
	// Apply middlewares in the correct order
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Logger(logger))
	router.Use(middleware.CORS())
}
