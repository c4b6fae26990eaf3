// Package dependency provides dependency injection for the application.
package dependency

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/envelofy/backend/config"
	"github.com/envelofy/backend/internal/application/usecase/account"
	"github.com/envelofy/backend/internal/application/usecase/analysis"
	"github.com/envelofy/backend/internal/application/usecase/auth"
	"github.com/envelofy/backend/internal/application/usecase/category"
	"github.com/envelofy/backend/internal/application/usecase/envelope"
	"github.com/envelofy/backend/internal/application/usecase/pattern"
	"github.com/envelofy/backend/internal/application/usecase/transaction"
	"github.com/envelofy/backend/internal/infra/db"
	"github.com/envelofy/backend/internal/infra/server/router"
	"github.com/envelofy/backend/internal/integration/adapters"
	"github.com/envelofy/backend/internal/integration/cache"
	"github.com/envelofy/backend/internal/integration/entrypoint/controller"
	"github.com/envelofy/backend/internal/integration/entrypoint/middleware"
	"github.com/envelofy/backend/internal/integration/persistence"
)

// Injector holds all application dependencies.
type Injector struct {
	Config *config.Config
	DB     *gorm.DB
	Redis  *redis.Client
	Router *router.Router
}

// NewInjector creates a new dependency injector with all dependencies wired.
func NewInjector(cfg *config.Config, gormDB *gorm.DB, redisClient *redis.Client) *Injector {
	// Repositories
	userRepo := persistence.NewUserRepository(gormDB)
	accountRepo := persistence.NewAccountRepository(gormDB)
	categoryRepo := persistence.NewCategoryRepository(gormDB)
	envelopeRepo := persistence.NewEnvelopeRepository(gormDB)
	patternRepo := persistence.NewPatternRepository(gormDB)
	transactionRepo := persistence.NewTransactionRepository(gormDB)
	insightRepo := persistence.NewInsightRepository(gormDB)

	// Adapters and services
	passwordService := adapters.NewPasswordService()
	tokenService := adapters.NewTokenService(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry)
	analysisCache := cache.NewAnalysisCache(redisClient)

	// Auth use cases
	registerUseCase := auth.NewRegisterUserUseCase(userRepo, passwordService, tokenService)
	loginUseCase := auth.NewLoginUserUseCase(userRepo, passwordService, tokenService)

	// Budget structure use cases
	createAccountUseCase := account.NewCreateAccountUseCase(accountRepo)
	listAccountsUseCase := account.NewListAccountsUseCase(accountRepo)
	createCategoryUseCase := category.NewCreateCategoryUseCase(categoryRepo)
	listCategoriesUseCase := category.NewListCategoriesUseCase(categoryRepo)
	createEnvelopeUseCase := envelope.NewCreateEnvelopeUseCase(envelopeRepo, categoryRepo)
	listEnvelopesUseCase := envelope.NewListEnvelopesUseCase(envelopeRepo)

	// Pattern use cases: the classifier and learner share one matcher.
	matcher := pattern.NewMatcher()
	suggestUseCase := pattern.NewSuggestEnvelopesUseCase(
		patternRepo, categoryRepo, envelopeRepo, matcher, cfg.Pattern.MinConfidence)
	learnUseCase := pattern.NewLearnFromTransactionUseCase(patternRepo, envelopeRepo, matcher)
	createPatternUseCase := pattern.NewCreatePatternUseCase(patternRepo, categoryRepo)
	listPatternsUseCase := pattern.NewListPatternsUseCase(patternRepo, categoryRepo)
	deletePatternUseCase := pattern.NewDeletePatternUseCase(patternRepo, categoryRepo)

	// Transaction use cases
	recordTransactionUseCase := transaction.NewRecordTransactionUseCase(
		transactionRepo, accountRepo, envelopeRepo, learnUseCase, analysisCache)
	importTransactionsUseCase := transaction.NewImportTransactionsUseCase(
		transactionRepo, accountRepo, suggestUseCase, analysisCache, cfg.Pattern.ImportMinScore)

	// Analysis use cases
	analyzer := analysis.NewAnalyzer(cfg.Analysis)
	analyzeAccountsUseCase := analysis.NewAnalyzeAccountsUseCase(
		accountRepo, transactionRepo, envelopeRepo, insightRepo, analysisCache, analyzer, cfg.Analysis)
	listInsightsUseCase := analysis.NewListInsightsUseCase(accountRepo, insightRepo)

	// Controllers
	healthController := controller.NewHealthController(
		func() bool {
			sqlDB, err := gormDB.DB()
			if err != nil {
				return false
			}
			return sqlDB.Ping() == nil
		},
		db.RedisHealthCheck(redisClient),
	)
	authController := controller.NewAuthController(registerUseCase, loginUseCase)
	budgetController := controller.NewBudgetController(
		createAccountUseCase, listAccountsUseCase,
		createCategoryUseCase, listCategoriesUseCase,
		createEnvelopeUseCase, listEnvelopesUseCase)
	patternController := controller.NewPatternController(
		createPatternUseCase, listPatternsUseCase, deletePatternUseCase)
	suggestionController := controller.NewSuggestionController(suggestUseCase)
	transactionController := controller.NewTransactionController(
		recordTransactionUseCase, importTransactionsUseCase)
	analysisController := controller.NewAnalysisController(
		analyzeAccountsUseCase, listInsightsUseCase)

	// Middleware. Tests hammer the login endpoint, so the limiter is
	// effectively disabled outside production-like environments.
	var loginRateLimiter *middleware.RateLimiter
	if cfg.Server.Environment == "test" {
		loginRateLimiter = middleware.NewRateLimiterWithConfig(1000, 1*time.Minute)
	} else {
		loginRateLimiter = middleware.NewRateLimiter()
	}
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	r := router.NewRouter(
		healthController,
		authController,
		budgetController,
		patternController,
		suggestionController,
		transactionController,
		analysisController,
		loginRateLimiter,
		authMiddleware,
	)

	return &Injector{
		Config: cfg,
		DB:     gormDB,
		Redis:  redisClient,
		Router: r,
	}
}
