package app

import (
	"github.com/gin-gonic/gin"

	"github.com/guttosm/menu-order-service/config"
	"github.com/guttosm/menu-order-service/internal/http"
)

// InitializeApp creates and wires all application dependencies and
// returns the ready-to-serve router.
func InitializeApp(cfg config.Config) *gin.Engine {
	InitializeLogger()

	dbComponents := InitializeDatabase(cfg.Database)
	serviceComponents := InitializeServices(dbComponents)
	routerComponents := InitializeRouter(serviceComponents, dbComponents, cfg)

	return http.NewRouter(
		routerComponents.OrderHandler,
		routerComponents.CatalogHandler,
		routerComponents.HealthHandler,
		routerComponents.Config,
	)
}
