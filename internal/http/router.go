package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/guttosm/menu-order-service/internal/metrics"
	"github.com/guttosm/menu-order-service/internal/middleware"
)

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit   int
	RateWindow  time.Duration
	CORSOrigins []string
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:  100,
		RateWindow: time.Minute,
	}
}

// NewRouter creates and configures the Gin router for the menu order
// service. Nil handlers are tolerated: the service then serves only the
// infrastructure routes, matching a start without a database.
func NewRouter(orders *OrderHandler, catalog *CatalogHandler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler)

	api := router.Group("/api")
	registerOrderRoutes(api, orders)
	registerCatalogRoutes(api, catalog)

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "Cache-Control", "X-Requested-With", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(),
		middleware.RequestLogger(),
		middleware.ErrorHandler(),
	)

	if cfg.RateLimit > 0 {
		limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health and metrics routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler) {
	healthHandler.Register(router)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerOrderRoutes registers the order generation and lifecycle routes.
func registerOrderRoutes(api *gin.RouterGroup, orders *OrderHandler) {
	if orders == nil {
		return
	}
	api.POST("/orders/generate", orders.GenerateOrder)
	api.GET("/orders", orders.ListOrders)
	api.GET("/orders/:id", orders.GetOrder)
	api.DELETE("/orders/:id", orders.DeleteOrder)
}

// registerCatalogRoutes registers CRUD routes for the reference data.
func registerCatalogRoutes(api *gin.RouterGroup, catalog *CatalogHandler) {
	if catalog == nil {
		return
	}

	api.GET("/products", catalog.ListProducts)
	api.POST("/products", catalog.CreateProduct)
	api.PUT("/products/:id", catalog.UpdateProduct)
	api.DELETE("/products/:id", catalog.DeleteProduct)

	api.GET("/age-groups", catalog.ListAgeGroups)
	api.POST("/age-groups", catalog.CreateAgeGroup)
	api.PUT("/age-groups/:id", catalog.UpdateAgeGroup)
	api.DELETE("/age-groups/:id", catalog.DeleteAgeGroup)

	api.GET("/product-quantities", catalog.ListProductQuantities)
	api.POST("/product-quantities", catalog.CreateProductQuantity)
	api.PUT("/product-quantities/:id", catalog.UpdateProductQuantity)
	api.DELETE("/product-quantities/:id", catalog.DeleteProductQuantity)

	api.GET("/recipes", catalog.ListRecipes)
	api.POST("/recipes", catalog.CreateRecipe)
	api.PUT("/recipes/:id", catalog.UpdateRecipe)
	api.DELETE("/recipes/:id", catalog.DeleteRecipe)

	api.GET("/days", catalog.ListDays)
	api.GET("/days/:id", catalog.GetDay)
	api.POST("/days", catalog.CreateDay)
	api.PUT("/days/:id", catalog.UpdateDay)
	api.DELETE("/days/:id", catalog.DeleteDay)
}
