package redirect

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/redirect/model"
	"atoll/internal/domains/redirect/model/dto"
	"atoll/internal/domains/redirect/service"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	requestParamPath = "path"

	errPathRequired = "path is required"
)

type Handler struct {
	service service.Redirect
	otel    otel.Otel
}

func New(service service.Redirect, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/redirects", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateRedirect)
		routerGroup.Get("/", handler.GetRedirects)
		routerGroup.Get("/resolve", handler.ResolveRedirect)
		routerGroup.Get("/{id}", handler.GetRedirectByID)
		routerGroup.Patch("/{id}", handler.UpdateRedirect)
		routerGroup.Delete("/{id}", handler.DeleteRedirect)
	})
}

// CreateRedirect registers a path redirect.
// @Summary Create a redirect
// @Tags Redirect
// @Accept json
// @Produce json
// @Param request body dto.CreateRedirectRequest true "Create Redirect Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/redirects [post]
// @Security BearerAuth
func (handler *Handler) CreateRedirect(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateRedirect")
	defer scope.End()

	req := dto.CreateRedirectRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create redirect")

		response.WithError(writer, err)

		return
	}

	response.WithCreated(writer, "Redirect created successfully", id)
}

// GetRedirects lists redirects.
// @Summary Get all redirects
// @Tags Redirect
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param from_path query string false "Search by source path"
// @Param locale query string false "Filter by locale" Enums(en, ru, zh)
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetRedirectsResponse]
// @Router /v1/redirects [get]
// @Security BearerAuth
func (handler *Handler) GetRedirects(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRedirects")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if from := query.Get(model.FieldFromPath); from != constant.Empty {
		filterGroup = filterGroup.Add(gDto.Filter{Field: model.FieldFromPath, Operator: gDto.FilterOperatorLike, Value: from, Table: model.TableName})
	}

	if locale := query.Get(model.FieldLocale); locale != constant.Empty {
		filterGroup = filterGroup.Add(gDto.Filter{Field: model.FieldLocale, Operator: gDto.FilterOperatorEq, Value: locale, Table: model.TableName})
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldIsActive)); active != nil {
		filterGroup = filterGroup.Add(gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: *active, Table: model.TableName})
	}

	redirects, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get redirects")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, redirects)
}

// ResolveRedirect tells the site where a path should go, if anywhere.
// @Summary Resolve a path
// @Tags Redirect
// @Produce json
// @Param path query string true "Requested path"
// @Param locale query string false "Locale" Enums(en, ru, zh)
// @Success 200 {object} response.Data[dto.RedirectResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/redirects/resolve [get]
func (handler *Handler) ResolveRedirect(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveRedirect")
	defer scope.End()

	query := request.URL.Query()

	path := query.Get(requestParamPath)
	if path == constant.Empty {
		response.WithError(writer, failure.BadRequestFromString(errPathRequired))

		return
	}

	locale := query.Get(constant.RequestParamLocale)
	if locale != constant.Empty {
		if err := validator.ValidateVar(locale, "locale"); err != nil {
			response.WithError(writer, err)

			return
		}
	}

	redirect, err := handler.service.Resolve(ctx, path, locale)
	if err != nil {
		if !failure.HasCode(err, http.StatusNotFound) {
			scope.TraceError(err)
			log.Error().Err(err).Msg("failed to resolve redirect")
		}

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, redirect)
}

// GetRedirectByID retrieves a redirect by its ID.
// @Summary Get a redirect by ID
// @Tags Redirect
// @Produce json
// @Param id path string true "Redirect ID"
// @Success 200 {object} response.Data[dto.RedirectResponse]
// @Failure 404 {object} response.Error
// @Router /v1/redirects/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetRedirectByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetRedirectByID")
	defer scope.End()

	redirect, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get redirect by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, redirect)
}

// UpdateRedirect patches a redirect.
// @Summary Update a redirect
// @Tags Redirect
// @Accept json
// @Produce json
// @Param id path string true "Redirect ID"
// @Param request body dto.UpdateRedirectRequest true "Update Redirect Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/redirects/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateRedirect(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateRedirect")
	defer scope.End()

	req := dto.UpdateRedirectRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update redirect")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Redirect updated successfully")
}

// DeleteRedirect removes a redirect.
// @Summary Delete a redirect
// @Tags Redirect
// @Produce json
// @Param id path string true "Redirect ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/redirects/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteRedirect(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteRedirect")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete redirect")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Redirect deleted successfully")
}
