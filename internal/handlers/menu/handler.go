package menu

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/menu/model"
	"atoll/internal/domains/menu/model/dto"
	"atoll/internal/domains/menu/service"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Menu
	otel    otel.Otel
}

func New(service service.Menu, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/menus", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateMenu)
		routerGroup.Get("/", handler.GetMenus)
		routerGroup.Get("/slug/{slug}", handler.GetMenuBySlug)
		routerGroup.Get("/{id}", handler.GetMenuByID)
		routerGroup.Patch("/{id}", handler.UpdateMenu)
		routerGroup.Delete("/{id}", handler.DeleteMenu)

		routerGroup.Route("/{id}/items", func(items chi.Router) {
			items.Post("/", handler.CreateItem)
			items.Patch("/{child_id}", handler.UpdateItem)
			items.Delete("/{child_id}", handler.DeleteItem)
		})
	})
}

func fail(writer http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(writer, err)
}

// @Summary Create a menu
// @Tags Menu
// @Accept json
// @Produce json
// @Param request body dto.CreateMenuRequest true "Create Menu Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/menus [post]
// @Security BearerAuth
func (handler *Handler) CreateMenu(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateMenu")
	defer scope.End()

	req := dto.CreateMenuRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		fail(writer, scope, err, "failed to create menu")

		return
	}

	response.WithCreated(writer, "Menu created successfully", id)
}

// @Summary Get all menus
// @Tags Menu
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param locale query string false "Filter by locale" Enums(en, ru, zh)
// @Param is_active query bool false "Filter by active flag"
// @Success 200 {object} response.Data[dto.GetMenusResponse]
// @Router /v1/menus [get]
// @Security BearerAuth
func (handler *Handler) GetMenus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenus")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if locale := query.Get(constant.RequestParamLocale); locale != constant.Empty {
		filterGroup = filterGroup.Add(gDto.Filter{Field: model.FieldLocale, Operator: gDto.FilterOperatorEq, Value: locale, Table: model.TableName})
	}

	if active := shared.ConvertStringToBool(query.Get(model.FieldIsActive)); active != nil {
		filterGroup = filterGroup.Add(gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: *active, Table: model.TableName})
	}

	menus, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		fail(writer, scope, err, "failed to get menus")

		return
	}

	response.WithJSON(writer, http.StatusOK, menus)
}

// GetMenuBySlug serves navigation to the public site: active menus, active items only.
// @Summary Get a menu by slug
// @Tags Menu
// @Produce json
// @Param slug path string true "Menu slug"
// @Success 200 {object} response.Data[dto.MenuResponse]
// @Failure 404 {object} response.Error
// @Router /v1/menus/slug/{slug} [get]
func (handler *Handler) GetMenuBySlug(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuBySlug")
	defer scope.End()

	menu, err := handler.service.GetBySlug(ctx, chi.URLParam(request, constant.RequestParamSlug))
	if err != nil {
		fail(writer, scope, err, "failed to get menu by slug")

		return
	}

	response.WithJSON(writer, http.StatusOK, menu)
}

// @Summary Get a menu by ID
// @Tags Menu
// @Produce json
// @Param id path string true "Menu ID"
// @Success 200 {object} response.Data[dto.MenuResponse]
// @Failure 404 {object} response.Error
// @Router /v1/menus/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMenuByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMenuByID")
	defer scope.End()

	menu, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to get menu by ID")

		return
	}

	response.WithJSON(writer, http.StatusOK, menu)
}

// @Summary Update a menu
// @Tags Menu
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param request body dto.UpdateMenuRequest true "Update Menu Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/menus/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMenu(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMenu")
	defer scope.End()

	req := dto.UpdateMenuRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to update menu")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Menu updated successfully")
}

// @Summary Delete a menu
// @Tags Menu
// @Produce json
// @Param id path string true "Menu ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/menus/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMenu(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMenu")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to delete menu")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Menu deleted successfully")
}

// @Summary Add a menu item
// @Tags Menu Item
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param request body dto.CreateMenuItemRequest true "Create Menu Item Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/menus/{id}/items [post]
// @Security BearerAuth
func (handler *Handler) CreateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateItem")
	defer scope.End()

	req := dto.CreateMenuItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	id, err := handler.service.CreateItem(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to create menu item")

		return
	}

	response.WithCreated(writer, "Menu item created successfully", id)
}

// @Summary Update a menu item
// @Tags Menu Item
// @Accept json
// @Produce json
// @Param id path string true "Menu ID"
// @Param child_id path string true "Menu item ID"
// @Param request body dto.UpdateMenuItemRequest true "Update Menu Item Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/menus/{id}/items/{child_id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateItem")
	defer scope.End()

	req := dto.UpdateMenuItemRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	err := handler.service.UpdateItem(ctx, req, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamChildID))
	if err != nil {
		fail(writer, scope, err, "failed to update menu item")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Menu item updated successfully")
}

// @Summary Delete a menu item
// @Tags Menu Item
// @Produce json
// @Param id path string true "Menu ID"
// @Param child_id path string true "Menu item ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/menus/{id}/items/{child_id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteItem(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteItem")
	defer scope.End()

	if err := handler.service.DeleteItem(ctx, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamChildID)); err != nil {
		fail(writer, scope, err, "failed to delete menu item")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Menu item deleted successfully")
}
