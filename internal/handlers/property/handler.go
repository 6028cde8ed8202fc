package property

import (
	"net/http"

	"atoll/infras/otel"
	availabilityDto "atoll/internal/domains/availability/model/dto"
	availabilityService "atoll/internal/domains/availability/service"
	bookingDto "atoll/internal/domains/booking/model/dto"
	bookingService "atoll/internal/domains/booking/service"
	"atoll/internal/domains/property/model"
	"atoll/internal/domains/property/model/dto"
	"atoll/internal/domains/property/service"
	reviewDto "atoll/internal/domains/review/model/dto"
	reviewService "atoll/internal/domains/review/service"
	packageDto "atoll/internal/domains/tourpackage/model/dto"
	packageService "atoll/internal/domains/tourpackage/service"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service             service.Property
	bookingService      bookingService.Booking
	availabilityService availabilityService.Availability
	reviewService       reviewService.Review
	packageService      packageService.Package
	otel                otel.Otel
}

func New(
	service service.Property,
	bookingService bookingService.Booking,
	availabilityService availabilityService.Availability,
	reviewService reviewService.Review,
	packageService packageService.Package,
	otel otel.Otel,
) Handler {
	return Handler{
		service:             service,
		bookingService:      bookingService,
		availabilityService: availabilityService,
		reviewService:       reviewService,
		packageService:      packageService,
		otel:                otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/properties", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateProperty)
		routerGroup.Get("/", handler.GetProperties)
		routerGroup.Get("/{id}", handler.GetPropertyByID)
		routerGroup.Get("/{id}/availability", handler.CheckAvailability)
		routerGroup.Get("/{id}/calendar", handler.GetCalendar)
		routerGroup.Get("/{id}/reviews", handler.GetPropertyReviews)
		routerGroup.Get("/{id}/packages", handler.GetPropertyPackages)
		routerGroup.Patch("/{id}", handler.UpdateProperty)
		routerGroup.Delete("/{id}", handler.DeleteProperty)
		routerGroup.Post("/{id}/images", handler.UploadImages)
		routerGroup.Delete("/{id}/images", handler.DeleteImage)
	})
}

// CreateProperty handles the creation of a new property.
// @Summary Create a property
// @Tags Property
// @Accept json
// @Produce json
// @Param request body dto.CreatePropertyRequest true "Create Property Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties [post]
// @Security BearerAuth
func (handler *Handler) CreateProperty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateProperty")
	defer scope.End()

	req := dto.CreatePropertyRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create property")

		response.WithError(writer, err)

		return
	}

	response.WithCreated(writer, "Property created successfully", id)
}

// GetProperties lists properties.
// @Summary Get all properties
// @Tags Property
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Search by name"
// @Param property_type query string false "Filter by type" Enums(resort, guesthouse, hotel, villa, liveaboard)
// @Param location_id query string false "Filter by location"
// @Param is_featured query boolean false "Filter featured properties"
// @Param min_price query number false "Minimum nightly price"
// @Param max_price query number false "Maximum nightly price"
// @Success 200 {object} response.Data[dto.GetPropertiesResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties [get]
func (handler *Handler) GetProperties(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProperties")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	filterGroup, err := propertyFilter(request)
	if err != nil {
		response.WithError(writer, err)

		return
	}

	properties, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get properties")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, properties)
}

func propertyFilter(request *http.Request) (gDto.FilterGroup, error) {
	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if name := query.Get(model.FieldName); name != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldName,
			Operator: gDto.FilterOperatorLike,
			Value:    name,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldPropertyType, model.FieldLocationID} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if featured := shared.ConvertStringToBool(query.Get(model.FieldIsFeatured)); featured != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsFeatured,
			Operator: gDto.FilterOperatorEq,
			Value:    *featured,
			Table:    model.TableName,
		})
	}

	bounds := []struct {
		param    string
		operator string
	}{
		{param: "min_price", operator: gDto.FilterOperatorGreaterEq},
		{param: "max_price", operator: gDto.FilterOperatorLessEq},
	}

	for _, bound := range bounds {
		raw := query.Get(bound.param)
		if raw == constant.Empty {
			continue
		}

		price, err := shared.ConvertStringToFloat(raw)
		if err != nil {
			return filterGroup, failure.BadRequestFromString(bound.param + " must be a number")
		}

		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  bound.param,
			Field:    model.FieldPricePerNight,
			Operator: bound.operator,
			Value:    price,
			Table:    model.TableName,
		})
	}

	return filterGroup, nil
}

// GetPropertyByID retrieves a property with its amenities.
// @Summary Get a property by ID
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Data[dto.PropertyResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [get]
func (handler *Handler) GetPropertyByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPropertyByID")
	defer scope.End()

	property, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, property)
}

// GetPropertyReviews lists the approved reviews of a property.
// @Summary Get property reviews
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[reviewDto.GetReviewsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/reviews [get]
func (handler *Handler) GetPropertyReviews(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPropertyReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	var reviews reviewDto.GetReviewsResponse

	reviews, err := handler.reviewService.GetForProperty(ctx, queryParams, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property reviews")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, reviews)
}

// GetPropertyPackages lists the tour packages that include a property.
// @Summary Get property packages
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[packageDto.GetPackagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/packages [get]
func (handler *Handler) GetPropertyPackages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPropertyPackages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	var packages packageDto.GetPackagesResponse

	packages, err := handler.packageService.GetByProperty(ctx, queryParams, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property packages")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, packages)
}

// CheckAvailability tells whether a property is free for a stay and what it costs.
// @Summary Check property availability
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Param check_in query string true "Check-in date (YYYY-MM-DD)"
// @Param check_out query string true "Check-out date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[bookingDto.CheckAvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/availability [get]
func (handler *Handler) CheckAvailability(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CheckAvailability")
	defer scope.End()

	query := request.URL.Query()

	res, err := handler.bookingService.CheckAvailability(ctx, bookingDto.CheckAvailabilityRequest{
		PropertyID: chi.URLParam(request, constant.RequestParamID),
		CheckIn:    query.Get(constant.RequestParamCheckIn),
		CheckOut:   query.Get(constant.RequestParamCheckOut),
	})
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to check property availability")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, res)
}

// GetCalendar lists the availability overrides of a property between two dates.
// @Summary Get property calendar
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Param from query string true "First date (YYYY-MM-DD)"
// @Param to query string true "Last date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[[]availabilityDto.AvailabilityResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/calendar [get]
func (handler *Handler) GetCalendar(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	query := request.URL.Query()
	req := availabilityDto.CalendarRequest{
		PropertyID: chi.URLParam(request, constant.RequestParamID),
		From:       query.Get(constant.RequestParamFrom),
		To:         query.Get(constant.RequestParamTo),
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	calendar, err := handler.availabilityService.Calendar(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get property calendar")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, calendar)
}

// UpdateProperty patches a property. amenity_ids, when sent, replaces the amenity list.
// @Summary Update a property
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.UpdatePropertyRequest true "Update Property Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateProperty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateProperty")
	defer scope.End()

	req := dto.UpdatePropertyRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update property")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Property updated successfully")
}

// DeleteProperty removes a property with its bookings and availability.
// @Summary Delete a property
// @Tags Property
// @Produce json
// @Param id path string true "Property ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteProperty(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteProperty")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete property")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Property deleted successfully")
}

// UploadImages stores images in object storage and appends them to the property.
// @Summary Upload property images
// @Tags Property
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Property ID"
// @Param files formData file true "Images (png, jpg, jpeg, webp; up to 5 MB each)"
// @Success 201 {object} response.Data[[]string]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/images [post]
// @Security BearerAuth
func (handler *Handler) UploadImages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImages")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	req := dto.UploadImagesRequest{Files: request.MultipartForm.File[constant.FormFiles]}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	urls, err := handler.service.UploadImages(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload property images")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, urls)
}

// DeleteImage detaches an image from the property and removes it from storage.
// @Summary Delete a property image
// @Tags Property
// @Accept json
// @Produce json
// @Param id path string true "Property ID"
// @Param request body dto.DeleteImageRequest true "Delete Image Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/properties/{id}/images [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	req := dto.DeleteImageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.DeleteImage(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete property image")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Image deleted successfully")
}
