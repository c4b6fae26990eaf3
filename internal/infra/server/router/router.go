// Package router sets up the HTTP routing for the application.
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/envelofy/backend/internal/integration/entrypoint/controller"
	"github.com/envelofy/backend/internal/integration/entrypoint/middleware"
)

// Router holds the Gin engine and controller dependencies.
type Router struct {
	engine                *gin.Engine
	healthController      *controller.HealthController
	authController        *controller.AuthController
	budgetController      *controller.BudgetController
	patternController     *controller.PatternController
	suggestionController  *controller.SuggestionController
	transactionController *controller.TransactionController
	analysisController    *controller.AnalysisController
	loginRateLimiter      *middleware.RateLimiter
	authMiddleware        *middleware.AuthMiddleware
}

// NewRouter creates a new router instance with all dependencies.
func NewRouter(
	healthController *controller.HealthController,
	authController *controller.AuthController,
	budgetController *controller.BudgetController,
	patternController *controller.PatternController,
	suggestionController *controller.SuggestionController,
	transactionController *controller.TransactionController,
	analysisController *controller.AnalysisController,
	loginRateLimiter *middleware.RateLimiter,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		healthController:      healthController,
		authController:        authController,
		budgetController:      budgetController,
		patternController:     patternController,
		suggestionController:  suggestionController,
		transactionController: transactionController,
		analysisController:    analysisController,
		loginRateLimiter:      loginRateLimiter,
		authMiddleware:        authMiddleware,
	}
}

// Setup configures and returns the Gin engine with all routes.
func (r *Router) Setup(environment string) *gin.Engine {
	if environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else if environment == "test" {
		gin.SetMode(gin.TestMode)
	}

	// Default middleware: logger and recovery.
	r.engine = gin.Default()

	r.setupHealthRoutes()
	r.setupAPIRoutes()

	return r.engine
}

// setupHealthRoutes configures health check endpoints.
func (r *Router) setupHealthRoutes() {
	r.engine.GET("/health", r.healthController.Check)
}

// setupAPIRoutes configures the main API routes.
func (r *Router) setupAPIRoutes() {
	v1 := r.engine.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", r.authController.Register)
			auth.POST("/login", r.loginRateLimiter.Middleware(), r.authController.Login)
		}

		authenticated := v1.Group("")
		authenticated.Use(r.authMiddleware.Authenticate())
		{
			authenticated.GET("/accounts", r.budgetController.ListAccounts)
			authenticated.POST("/accounts", r.budgetController.CreateAccount)
			authenticated.GET("/categories", r.budgetController.ListCategories)
			authenticated.POST("/categories", r.budgetController.CreateCategory)
			authenticated.GET("/envelopes", r.budgetController.ListEnvelopes)
			authenticated.POST("/envelopes", r.budgetController.CreateEnvelope)

			authenticated.POST("/suggestions", r.suggestionController.Suggest)

			authenticated.POST("/transactions", r.transactionController.Create)
			authenticated.POST("/transactions/import", r.transactionController.Import)

			authenticated.GET("/patterns", r.patternController.List)
			authenticated.POST("/patterns", r.patternController.Create)
			authenticated.DELETE("/patterns/:id", r.patternController.Delete)

			authenticated.GET("/analysis", r.analysisController.Analyze)
			authenticated.GET("/insights", r.analysisController.ListInsights)
		}
	}
}

// Engine returns the underlying Gin engine.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}
