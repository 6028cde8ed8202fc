package dashboard

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/dashboard/model/dto"
	"atoll/internal/domains/dashboard/service"
	"atoll/shared/constant"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/stats", handler.GetStats)
		routerGroup.Get("/content-stats", handler.GetContentStats)
	})
}

// GetStats returns the staff overview counters.
// @Summary Dashboard statistics
// @Description Property, package, booking, review and customer counters. "this_month" covers the last 30 days and "this_week" the last 7.
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Data[dto.StatsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/stats [get]
func (handler *Handler) GetStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStats")
	defer scope.End()

	var stats dto.StatsResponse

	stats, err := handler.service.Stats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, stats)
}

// GetContentStats returns CMS counters with the newest pages and media.
// @Summary Content statistics
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Data[dto.ContentStatsResponse]
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/content-stats [get]
func (handler *Handler) GetContentStats(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetContentStats")
	defer scope.End()

	var stats dto.ContentStatsResponse

	stats, err := handler.service.ContentStats(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get content stats")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, stats)
}
