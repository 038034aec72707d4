package routes

import (
	"net/http"

	_ "bfinancial_sdk/docs" // swagger docs
	"bfinancial_sdk/internal/adapter/http/handlers"
	"bfinancial_sdk/internal/infrastructure/metrics"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const (
	PathPayments      = "/payments"
	PathCheckouts     = "/checkouts"
	PathVerifications = "/verifications"
)

type Handlers struct {
	Payment      *handlers.PaymentHandler
	Verification *handlers.VerificationHandler
}

type Options struct {
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
}

// NewRouter builds the relay HTTP router.
func NewRouter(h Handlers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	router := gin.New()
	setMiddlewares(router, opts)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	if opts.Gatherer != nil {
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, h.Payment, h.Verification)
	return router
}

func setMiddlewares(router *gin.Engine, opts Options) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		opts.Logger.Error("Recovered from panic", zap.Any("panic", recovered))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	if opts.Metrics != nil {
		router.Use(opts.Metrics.GinMiddleware())
	}
}

func addPingRoutes(rg *gin.RouterGroup) {
	rg.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
}
