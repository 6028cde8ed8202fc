package availability

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/availability/model"
	"atoll/internal/domains/availability/model/dto"
	"atoll/internal/domains/availability/service"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Availability
	otel    otel.Otel
}

func New(service service.Availability, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/availabilities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateAvailability)
		routerGroup.Get("/", handler.GetAvailabilities)
		routerGroup.Get("/{id}", handler.GetAvailabilityByID)
		routerGroup.Patch("/{id}", handler.UpdateAvailability)
		routerGroup.Delete("/{id}", handler.DeleteAvailability)
	})
}

// CreateAvailability closes a date or overrides its price.
// @Summary Create an availability override
// @Tags Availability
// @Accept json
// @Produce json
// @Param request body dto.CreateAvailabilityRequest true "Create Availability Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availabilities [post]
// @Security BearerAuth
func (handler *Handler) CreateAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateAvailability")
	defer scope.End()

	req := dto.CreateAvailabilityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create availability")

		response.WithError(writer, err)

		return
	}

	response.WithCreated(writer, "Availability created successfully", id)
}

// GetAvailabilities lists availability overrides.
// @Summary Get availability overrides
// @Tags Availability
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param property_id query string false "Filter by property"
// @Param date query string false "Filter by date (YYYY-MM-DD)"
// @Param is_available query boolean false "Filter by availability"
// @Success 200 {object} response.Data[dto.GetAvailabilitiesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availabilities [get]
// @Security BearerAuth
func (handler *Handler) GetAvailabilities(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailabilities")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if propertyID := query.Get(model.FieldPropertyID); propertyID != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldPropertyID,
			Operator: gDto.FilterOperatorEq,
			Value:    propertyID,
			Table:    model.TableName,
		})
	}

	if rawDate := query.Get(model.FieldDate); rawDate != constant.Empty {
		date, err := timezone.ParseDate(rawDate)
		if err != nil {
			response.WithError(writer, failure.BadRequest(err))

			return
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldDate,
			Operator: gDto.FilterOperatorEq,
			Value:    timezone.FormatDate(date),
			Table:    model.TableName,
		})
	}

	if available := shared.ConvertStringToBool(query.Get(model.FieldIsAvailable)); available != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsAvailable,
			Operator: gDto.FilterOperatorEq,
			Value:    *available,
			Table:    model.TableName,
		})
	}

	availabilities, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availabilities")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, availabilities)
}

// GetAvailabilityByID retrieves an availability override.
// @Summary Get an availability override by ID
// @Tags Availability
// @Produce json
// @Param id path string true "Availability ID"
// @Success 200 {object} response.Data[dto.AvailabilityResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availabilities/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetAvailabilityByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetAvailabilityByID")
	defer scope.End()

	availability, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, availability)
}

// UpdateAvailability updates an availability override.
// @Summary Update an availability override
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Availability ID"
// @Param request body dto.UpdateAvailabilityRequest true "Update Availability Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availabilities/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateAvailability")
	defer scope.End()

	req := dto.UpdateAvailabilityRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update availability")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Availability updated successfully")
}

// DeleteAvailability removes an availability override.
// @Summary Delete an availability override
// @Tags Availability
// @Produce json
// @Param id path string true "Availability ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/availabilities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteAvailability")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete availability")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Availability deleted successfully")
}
