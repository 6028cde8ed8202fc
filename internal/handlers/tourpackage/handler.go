package tourpackage

import (
	"net/http"

	"atoll/infras/otel"
	reviewDto "atoll/internal/domains/review/model/dto"
	reviewService "atoll/internal/domains/review/service"
	"atoll/internal/domains/tourpackage/model"
	"atoll/internal/domains/tourpackage/model/dto"
	"atoll/internal/domains/tourpackage/service"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service       service.Package
	reviewService reviewService.Review
	otel          otel.Otel
}

func New(service service.Package, reviewService reviewService.Review, otel otel.Otel) Handler {
	return Handler{
		service:       service,
		reviewService: reviewService,
		otel:          otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/packages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePackage)
		routerGroup.Get("/", handler.GetPackages)
		routerGroup.Get("/{id}", handler.GetPackageByID)
		routerGroup.Get("/{id}/reviews", handler.GetPackageReviews)
		routerGroup.Patch("/{id}", handler.UpdatePackage)
		routerGroup.Delete("/{id}", handler.DeletePackage)
	})
}

// CreatePackage creates a package together with its child collections.
// @Summary Create a package
// @Description Creates the package, its property links, destinations, itinerary, inclusions, activities and experiences in one transaction.
// @Tags Package
// @Accept json
// @Produce json
// @Param request body dto.CreatePackageRequest true "Create Package Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages [post]
// @Security BearerAuth
func (handler *Handler) CreatePackage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePackage")
	defer scope.End()

	req := dto.CreatePackageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create package")

		response.WithError(writer, err)

		return
	}

	response.WithCreated(writer, "Package created successfully", id)
}

// GetPackages lists packages.
// @Summary Get all packages
// @Tags Package
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param name query string false "Filter by name"
// @Param category query string false "Filter by category"
// @Param difficulty_level query string false "Filter by difficulty"
// @Param is_featured query bool false "Filter featured packages"
// @Success 200 {object} response.Data[dto.GetPackagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/packages [get]
func (handler *Handler) GetPackages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	packages, err := handler.service.GetAll(ctx, queryParams, packageFilter(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get packages")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, packages)
}

func packageFilter(request *http.Request) gDto.FilterGroup {
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

	for _, field := range []string{model.FieldCategory, model.FieldDifficultyLevel} {
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

	return filterGroup
}

// GetPackageByID returns the full package composition.
// @Summary Get a package by ID
// @Tags Package
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Data[dto.PackageResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [get]
func (handler *Handler) GetPackageByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageByID")
	defer scope.End()

	pkg, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, pkg)
}

// GetPackageReviews lists the approved reviews of a package.
// @Summary Get package reviews
// @Tags Package
// @Produce json
// @Param id path string true "Package ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[reviewDto.GetReviewsResponse]
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id}/reviews [get]
func (handler *Handler) GetPackageReviews(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPackageReviews")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	var reviews reviewDto.GetReviewsResponse

	reviews, err := handler.reviewService.GetForPackage(ctx, queryParams, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get package reviews")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, reviews)
}

// UpdatePackage patches a package. A child list present in the body replaces that collection.
// @Summary Update a package
// @Tags Package
// @Accept json
// @Produce json
// @Param id path string true "Package ID"
// @Param request body dto.UpdatePackageRequest true "Update Package Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePackage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePackage")
	defer scope.End()

	req := dto.UpdatePackageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update package")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Package updated successfully")
}

// DeletePackage removes a package and its child rows.
// @Summary Delete a package
// @Tags Package
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/packages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePackage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePackage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete package")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Package deleted successfully")
}
