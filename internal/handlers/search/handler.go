package search

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/search/model/dto"
	"atoll/internal/domains/search/service"
	"atoll/shared/constant"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const requestParamQuery = "q"

type Handler struct {
	service service.Search
	otel    otel.Otel
}

func New(service service.Search, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/search", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.Search)
	})
}

// Search looks up properties, packages and locations by free text.
// @Summary Search the catalog
// @Description Case-insensitive match on property name, description and address, package name and description, and location name, island and atoll. Each list holds at most ten entries.
// @Tags Search
// @Produce json
// @Param q query string true "Search text"
// @Success 200 {object} response.Data[dto.SearchResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/search [get]
func (handler *Handler) Search(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Search")
	defer scope.End()

	var results dto.SearchResponse

	results, err := handler.service.Search(ctx, request.URL.Query().Get(requestParamQuery))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to search")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, results)
}
