package app

import (
	"github.com/guttosm/menu-order-service/config"
	"github.com/guttosm/menu-order-service/internal/http"
)

// RouterComponents holds HTTP handlers and router configuration.
type RouterComponents struct {
	OrderHandler   *http.OrderHandler
	CatalogHandler *http.CatalogHandler
	HealthHandler  *http.HealthHandler
	Config         http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
func InitializeRouter(services *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	healthHandler := http.NewHealthHandler()

	var orderHandler *http.OrderHandler
	var catalogHandler *http.CatalogHandler
	if db != nil && services != nil {
		orderHandler = http.NewOrderHandler(services.Generator, db.Orders)
		catalogHandler = http.NewCatalogHandler(db.Catalog, db.Days)
		healthHandler.RegisterChecker("mongodb", http.HealthCheckerFunc(db.DB.HealthCheck))
	}

	return &RouterComponents{
		OrderHandler:   orderHandler,
		CatalogHandler: catalogHandler,
		HealthHandler:  healthHandler,
		Config: http.RouterConfig{
			RateLimit:   cfg.Server.RateLimit,
			RateWindow:  cfg.Server.RateWindow,
			CORSOrigins: cfg.Server.CORSOrigins,
		},
	}
}
