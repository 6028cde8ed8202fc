package amenity

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/amenity/model"
	"atoll/internal/domains/amenity/model/dto"
	"atoll/internal/domains/amenity/service"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Amenity
	otel    otel.Otel
}

func New(service service.Amenity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/amenities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAmenity)
		routerGroup.Get("/", handler.GetAmenities)
		routerGroup.Get("/{id}", handler.GetAmenityByID)
		routerGroup.Patch("/{id}", handler.UpdateAmenity)
		routerGroup.Delete("/{id}", handler.DeleteAmenity)
	})
}

// CreateAmenity handles the creation of a new amenity.
// @Summary Create an amenity
// @Description Create an amenity that properties can list.
// @Tags Amenity
// @Accept json
// @Produce json
// @Param request body dto.CreateAmenityRequest true "Create Amenity Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/amenities [post]
// @Security BearerAuth
func (handler *Handler) CreateAmenity(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAmenity")
	defer scope.End()

	req := dto.CreateAmenityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create amenity")

		response.WithError(writer, err)

		return
	}

	response.WithCreated(writer, "Amenity created successfully", id)
}

// GetAmenities lists amenities.
// @Summary Get all amenities
// @Tags Amenity
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Success 200 {object} response.Data[dto.GetAmenitiesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/amenities [get]
func (handler *Handler) GetAmenities(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAmenities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := request.URL.Query().Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	amenities, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get amenities")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, amenities)
}

// GetAmenityByID retrieves an amenity by its ID.
// @Summary Get an amenity by ID
// @Tags Amenity
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} response.Data[dto.AmenityResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/amenities/{id} [get]
func (handler *Handler) GetAmenityByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAmenityByID")
	defer scope.End()

	amenity, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get amenity by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, amenity)
}

// UpdateAmenity updates an existing amenity.
// @Summary Update an amenity
// @Tags Amenity
// @Accept json
// @Produce json
// @Param id path string true "Amenity ID"
// @Param request body dto.UpdateAmenityRequest true "Update Amenity Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/amenities/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAmenity(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAmenity")
	defer scope.End()

	req := dto.UpdateAmenityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update amenity")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Amenity updated successfully")
}

// DeleteAmenity removes an amenity.
// @Summary Delete an amenity
// @Tags Amenity
// @Produce json
// @Param id path string true "Amenity ID"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/amenities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAmenity(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAmenity")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete amenity")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Amenity deleted successfully")
}
