package location

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/location/model"
	"atoll/internal/domains/location/model/dto"
	"atoll/internal/domains/location/service"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Location
	otel    otel.Otel
}

func New(service service.Location, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/locations", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateLocation)
		routerGroup.Get("/", handler.GetLocations)
		routerGroup.Get("/{id}", handler.GetLocationByID)
		routerGroup.Patch("/{id}", handler.UpdateLocation)
		routerGroup.Delete("/{id}", handler.DeleteLocation)
	})
}

// CreateLocation handles the creation of a new location.
// @Summary Create a location
// @Description Create an island location properties and packages can refer to.
// @Tags Location
// @Accept json
// @Produce json
// @Param request body dto.CreateLocationRequest true "Create Location Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations [post]
// @Security BearerAuth
func (handler *Handler) CreateLocation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateLocation")
	defer scope.End()

	req := dto.CreateLocationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create location")

		response.WithError(writer, err)

		return
	}

	response.WithCreated(writer, "Location created successfully", id)
}

// GetLocations lists locations.
// @Summary Get all locations
// @Tags Location
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param atoll query string false "Filter by atoll"
// @Param island query string false "Filter by island"
// @Success 200 {object} response.Data[dto.GetLocationsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/locations [get]
func (handler *Handler) GetLocations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	for _, field := range []string{model.FieldName, model.FieldAtoll, model.FieldIsland} {
		if value := request.URL.Query().Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorLike,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	locations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get locations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, locations)
}

// GetLocationByID retrieves a location by its ID.
// @Summary Get a location by ID
// @Tags Location
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} response.Data[dto.LocationResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations/{id} [get]
func (handler *Handler) GetLocationByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLocationByID")
	defer scope.End()

	location, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get location by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, location)
}

// UpdateLocation updates an existing location.
// @Summary Update a location
// @Tags Location
// @Accept json
// @Produce json
// @Param id path string true "Location ID"
// @Param request body dto.UpdateLocationRequest true "Update Location Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateLocation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateLocation")
	defer scope.End()

	req := dto.UpdateLocationRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update location")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Location updated successfully")
}

// DeleteLocation removes a location.
// @Summary Delete a location
// @Tags Location
// @Produce json
// @Param id path string true "Location ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/locations/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLocation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteLocation")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete location")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Location deleted successfully")
}
