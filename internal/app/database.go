package app

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/menu-order-service/config"
	"github.com/guttosm/menu-order-service/internal/repository"
)

// DatabaseComponents holds the MongoDB connection and the repositories
// built on it.
type DatabaseComponents struct {
	DB         *repository.MongoDB
	Days       *repository.DayRepository
	Quantities *repository.QuantityRepository
	Orders     *repository.OrderRepository
	Catalog    *repository.CatalogRepository
}

// InitializeDatabase connects to MongoDB and creates the repositories.
// Returns nil if the database is disabled or the connection fails; the
// service then serves only its infrastructure routes.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		log.Warn().Msg("MongoDB disabled - API routes will not be registered")
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without database")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	return &DatabaseComponents{
		DB:         db,
		Days:       repository.NewDayRepository(db),
		Quantities: repository.NewQuantityRepository(db),
		Orders:     repository.NewOrderRepository(db),
		Catalog:    repository.NewCatalogRepository(db),
	}
}
