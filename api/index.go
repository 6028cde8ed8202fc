package handler

import (
	"net/http"
	"sync"

	"atoll/config"
	"atoll/di"
	"atoll/shared/logger"

	atollHTTP "atoll/transport/http"
)

var (
	server   *atollHTTP.HTTP
	initOnce sync.Once
)

// Handler is the serverless entrypoint; the dependency graph is built once per instance.
func Handler(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	server.ServeHTTP(w, r)
}
