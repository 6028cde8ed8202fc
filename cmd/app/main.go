package main

import (
	"atoll/config"
	"atoll/di"
	"atoll/helper"
	"atoll/shared/logger"

	_ "atoll/docs"

	"github.com/rs/zerolog/log"
)

// @title						Atoll API
// @version					1.0
// @description				Maldives travel agency backend: properties, bookings, packages and CMS.
// @BasePath					/v1
// @securityDefinitions.apikey	BearerAuth
// @in							header
// @name						Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
