package api

import (
	"github.com/TFMV/ExpenseClassifier/internal/classifier"
	"github.com/TFMV/ExpenseClassifier/internal/expense"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

const (
	// DefaultMaxBodyBytes bounds JSON request bodies when Options leaves it unset.
	DefaultMaxBodyBytes = 1 << 20
	// DefaultMaxImportBytes bounds CSV uploads when Options leaves it unset.
	DefaultMaxImportBytes = 32 << 20
)

type Options struct {
	// RateLimit is requests per second across all clients; 0 disables limiting.
	// The liveness routes / and /healthz are never limited.
	RateLimit      float64
	RateBurst      int
	MaxBodyBytes   int64
	MaxImportBytes int64
}

// NewRouter builds the HTTP engine. expenses may be nil, in which case the
// expense routes are not registered.
func NewRouter(predictor classifier.Predictor, expenses *expense.Service, opts Options) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), RequestLogger(), CORS(), ErrorHandler())

	SetupRoutes(router, predictor, expenses, opts)
	return router
}

func SetupRoutes(router gin.IRouter, predictor classifier.Predictor, expenses *expense.Service, opts Options) {
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if opts.MaxImportBytes <= 0 {
		opts.MaxImportBytes = DefaultMaxImportBytes
	}

	router.GET("/", StatusHandler())
	router.GET("/healthz", HealthCheckHandler())

	// One limiter is shared by every limited route.
	limited := router.Group("")
	if opts.RateLimit > 0 {
		limited.Use(RateLimiter(rate.Limit(opts.RateLimit), opts.RateBurst))
	}

	api := limited.Group("", BodyLimit(opts.MaxBodyBytes))
	api.GET("/categories", CategoriesHandler(predictor))
	api.POST("/predict", PredictHandler(predictor))
	api.POST("/api/ai/predict", PredictHandler(predictor))

	if expenses == nil {
		return
	}
	group := api.Group("/api/expenses")
	group.GET("", ListExpensesHandler(expenses))
	group.POST("", CreateExpenseHandler(expenses))
	group.GET("/:id", GetExpenseHandler(expenses))
	group.PUT("/:id", UpdateExpenseHandler(expenses))
	group.DELETE("/:id", DeleteExpenseHandler(expenses))

	limited.POST("/api/expenses/import", BodyLimit(opts.MaxImportBytes), ImportExpensesHandler(expenses))
}
