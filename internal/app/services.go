package app

import (
	"github.com/guttosm/menu-order-service/internal/service"
)

// ServiceComponents holds business logic services.
type ServiceComponents struct {
	Generator service.OrderGenerator
}

// InitializeServices wires the order generation core to its
// collaborators. Returns nil when no database is available, since the
// generator cannot run without its day, quantity, and order stores.
func InitializeServices(db *DatabaseComponents) *ServiceComponents {
	if db == nil {
		return nil
	}
	return &ServiceComponents{
		Generator: service.NewOrderGeneratorService(db.Days, db.Quantities, db.Orders),
	}
}
