package di

import (
	"context"

	"atoll/config"
	"atoll/infras/kafka"
	"atoll/infras/metrics"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/transport/http"
	"atoll/transport/http/middleware"
	"atoll/transport/http/router"

	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// newServer builds the HTTP server and releases the long-lived clients once it stops.
func newServer(
	cfg *config.Config,
	r router.Router,
	app middleware.AppMiddleware,
	authRole middleware.AuthRole,
	m metrics.Metrics,
	publisher kafka.Publisher,
	db *postgres.Connection,
	redisClient *goRedis.Client,
	tracer otel.Otel,
) *http.HTTP {
	server := http.New(cfg, r, app, authRole, m)

	server.OnShutdown(func(ctx context.Context) {
		if err := publisher.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close kafka publisher")
		}

		if err := redisClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis client")
		}

		db.Close()

		if err := tracer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to flush traces")
		}
	})

	return server
}
