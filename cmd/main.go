// Package main is the entry point for the menu-order-service application.
//
// @title           Menu Order Service API
// @version         1.0.0
// @description     API for generating consolidated purchase orders from
//
//	daily menu selections. Quantities are aggregated per
//	product, package type, and unit of measure across the
//	selected days.
//
// @host      localhost:8080
// @BasePath  /
//
// @tag.name        Orders
// @tag.description Order generation and lifecycle operations
//
// @tag.name        Health
// @tag.description Health check endpoints
package main

import (
	"github.com/rs/zerolog/log"

	"github.com/guttosm/menu-order-service/config"
	"github.com/guttosm/menu-order-service/internal/app"
)

func main() {
	cfg := config.Load()

	router := app.InitializeApp(cfg)
	server := app.NewServer(router, cfg.Server.Port)

	if err := server.Run(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}
