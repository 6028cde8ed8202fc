package page

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/page/model"
	"atoll/internal/domains/page/model/dto"
	"atoll/internal/domains/page/service"
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
	service service.Page
	otel    otel.Otel
}

func New(service service.Page, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/pages", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreatePage)
		routerGroup.Get("/", handler.GetPages)
		routerGroup.Get("/slug/{slug}", handler.GetPageBySlug)
		routerGroup.Get("/{id}", handler.GetPageByID)
		routerGroup.Patch("/{id}", handler.UpdatePage)
		routerGroup.Delete("/{id}", handler.DeletePage)

		routerGroup.Route("/{id}/blocks", func(blocks chi.Router) {
			blocks.Get("/", handler.GetBlocks)
			blocks.Post("/", handler.CreateBlock)
			blocks.Put("/order", handler.ReorderBlocks)
			blocks.Patch("/{child_id}", handler.UpdateBlock)
			blocks.Delete("/{child_id}", handler.DeleteBlock)
		})

		routerGroup.Post("/{id}/publish", handler.PublishPage)
		routerGroup.Post("/{id}/unpublish", handler.UnpublishPage)
		routerGroup.Post("/{id}/archive", handler.ArchivePage)

		routerGroup.Get("/{id}/versions", handler.GetVersions)
		routerGroup.Get("/{id}/versions/{version}", handler.GetVersion)
		routerGroup.Post("/{id}/versions/{version}/restore", handler.RestoreVersion)

		routerGroup.Route("/{id}/reviews", func(reviews chi.Router) {
			reviews.Post("/", handler.RequestReview)
			reviews.Get("/", handler.GetReviews)
			reviews.Patch("/{child_id}", handler.CompleteReview)
		})

		routerGroup.Route("/{id}/threads", func(threads chi.Router) {
			threads.Post("/", handler.CreateThread)
			threads.Get("/", handler.GetThreads)
			threads.Post("/{child_id}/comments", handler.AddComment)
			threads.Post("/{child_id}/resolve", handler.ResolveThread)
			threads.Post("/{child_id}/reopen", handler.ReopenThread)
		})
	})
}

func fail(writer http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)
	log.Error().Err(err).Msg(msg)

	response.WithError(writer, err)
}

// CreatePage creates a draft page. A missing slug is derived from the title.
// @Summary Create a page
// @Tags Page
// @Accept json
// @Produce json
// @Param request body dto.CreatePageRequest true "Create Page Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/pages [post]
// @Security BearerAuth
func (handler *Handler) CreatePage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreatePage")
	defer scope.End()

	req := dto.CreatePageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	id, err := handler.service.Create(ctx, req)
	if err != nil {
		fail(writer, scope, err, "failed to create page")

		return
	}

	response.WithCreated(writer, "Page created successfully", id)
}

// GetPages lists pages for staff, in every status.
// @Summary Get all pages
// @Tags Page
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param title query string false "Filter by title"
// @Param status query string false "Filter by status"
// @Param locale query string false "Filter by locale"
// @Param is_home query bool false "Filter home pages"
// @Success 200 {object} response.Data[dto.GetPagesResponse]
// @Failure 500 {object} response.Error
// @Router /v1/pages [get]
// @Security BearerAuth
func (handler *Handler) GetPages(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	pages, err := handler.service.GetAll(ctx, queryParams, pageFilter(request))
	if err != nil {
		fail(writer, scope, err, "failed to get pages")

		return
	}

	response.WithJSON(writer, http.StatusOK, pages)
}

func pageFilter(request *http.Request) gDto.FilterGroup {
	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if title := query.Get(model.FieldTitle); title != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldTitle,
			Operator: gDto.FilterOperatorLike,
			Value:    title,
			Table:    model.TableName,
		})
	}

	for _, field := range []string{model.FieldStatus, model.FieldLocale} {
		if value := query.Get(field); value != constant.Empty {
			filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    model.TableName,
			})
		}
	}

	if home := shared.ConvertStringToBool(query.Get(model.FieldIsHome)); home != nil {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldIsHome,
			Operator: gDto.FilterOperatorEq,
			Value:    *home,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// GetPageBySlug is the public read of a live page.
// @Summary Get a published page by slug
// @Tags Page
// @Produce json
// @Param slug path string true "Page slug"
// @Param locale query string false "Locale used to pick localized blocks"
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/slug/{slug} [get]
func (handler *Handler) GetPageBySlug(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPageBySlug")
	defer scope.End()

	locale := request.URL.Query().Get(constant.RequestParamLocale)
	if locale != constant.Empty {
		if err := validator.ValidateVar(locale, "locale"); err != nil {
			fail(writer, scope, err, "invalid locale")

			return
		}
	}

	page, err := handler.service.GetBySlug(ctx, chi.URLParam(request, constant.RequestParamSlug), locale)
	if err != nil {
		fail(writer, scope, err, "failed to get page by slug")

		return
	}

	response.WithJSON(writer, http.StatusOK, page)
}

// @Summary Get a page by ID
// @Tags Page
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[dto.PageResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetPageByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetPageByID")
	defer scope.End()

	page, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to get page by ID")

		return
	}

	response.WithJSON(writer, http.StatusOK, page)
}

// @Summary Update a page
// @Tags Page
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param request body dto.UpdatePageRequest true "Update Page Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/pages/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdatePage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdatePage")
	defer scope.End()

	req := dto.UpdatePageRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to update page")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Page updated successfully")
}

// @Summary Delete a page
// @Tags Page
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeletePage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeletePage")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to delete page")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Page deleted successfully")
}

// @Summary Get the blocks of a page
// @Tags Page Block
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[[]dto.BlockResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/blocks [get]
// @Security BearerAuth
func (handler *Handler) GetBlocks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBlocks")
	defer scope.End()

	blocks, err := handler.service.GetBlocks(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to get page blocks")

		return
	}

	response.WithJSON(writer, http.StatusOK, blocks)
}

// CreateBlock adds a block; without an order it goes last.
// @Summary Add a block to a page
// @Tags Page Block
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param request body dto.CreateBlockRequest true "Create Block Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/blocks [post]
// @Security BearerAuth
func (handler *Handler) CreateBlock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBlock")
	defer scope.End()

	req := dto.CreateBlockRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	id, err := handler.service.CreateBlock(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to create page block")

		return
	}

	response.WithCreated(writer, "Block created successfully", id)
}

// @Summary Update a block
// @Tags Page Block
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param child_id path string true "Block ID"
// @Param request body dto.UpdateBlockRequest true "Update Block Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/blocks/{child_id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateBlock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBlock")
	defer scope.End()

	req := dto.UpdateBlockRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	err := handler.service.UpdateBlock(ctx, req, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamChildID))
	if err != nil {
		fail(writer, scope, err, "failed to update page block")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Block updated successfully")
}

// @Summary Delete a block
// @Tags Page Block
// @Produce json
// @Param id path string true "Page ID"
// @Param child_id path string true "Block ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/blocks/{child_id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteBlock(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBlock")
	defer scope.End()

	err := handler.service.DeleteBlock(ctx, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamChildID))
	if err != nil {
		fail(writer, scope, err, "failed to delete page block")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Block deleted successfully")
}

// ReorderBlocks sets the display order. Every block of the page must be listed once.
// @Summary Reorder the blocks of a page
// @Tags Page Block
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param request body dto.ReorderBlocksRequest true "Block IDs in display order"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/blocks/order [put]
// @Security BearerAuth
func (handler *Handler) ReorderBlocks(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ReorderBlocks")
	defer scope.End()

	req := dto.ReorderBlocksRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	if err := handler.service.ReorderBlocks(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to reorder page blocks")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Blocks reordered successfully")
}

// PublishPage snapshots the page as a new version and makes it public.
// @Summary Publish a page
// @Tags Page Workflow
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[dto.VersionResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/publish [post]
// @Security BearerAuth
func (handler *Handler) PublishPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".PublishPage")
	defer scope.End()

	version, err := handler.service.Publish(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to publish page")

		return
	}

	response.WithJSON(writer, http.StatusOK, version)
}

// @Summary Unpublish a page
// @Tags Page Workflow
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/pages/{id}/unpublish [post]
// @Security BearerAuth
func (handler *Handler) UnpublishPage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UnpublishPage")
	defer scope.End()

	if err := handler.service.Unpublish(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to unpublish page")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Page unpublished successfully")
}

// @Summary Archive a page
// @Tags Page Workflow
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/archive [post]
// @Security BearerAuth
func (handler *Handler) ArchivePage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ArchivePage")
	defer scope.End()

	if err := handler.service.Archive(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		fail(writer, scope, err, "failed to archive page")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Page archived successfully")
}

// @Summary List the versions of a page
// @Tags Page Workflow
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[[]dto.VersionResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/versions [get]
// @Security BearerAuth
func (handler *Handler) GetVersions(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVersions")
	defer scope.End()

	versions, err := handler.service.GetVersions(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to get page versions")

		return
	}

	response.WithJSON(writer, http.StatusOK, versions)
}

func versionNumber(request *http.Request) (int, error) {
	number, err := shared.ConvertStringToInt(chi.URLParam(request, constant.RequestParamVersion))
	if err != nil || number < 1 {
		return 0, failure.BadRequestFromString("version must be a positive number")
	}

	return number, nil
}

// @Summary Get a page version
// @Tags Page Workflow
// @Produce json
// @Param id path string true "Page ID"
// @Param version path int true "Version number"
// @Success 200 {object} response.Data[dto.VersionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/versions/{version} [get]
// @Security BearerAuth
func (handler *Handler) GetVersion(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVersion")
	defer scope.End()

	number, err := versionNumber(request)
	if err != nil {
		fail(writer, scope, err, "invalid version number")

		return
	}

	version, err := handler.service.GetVersion(ctx, chi.URLParam(request, constant.RequestParamID), number)
	if err != nil {
		fail(writer, scope, err, "failed to get page version")

		return
	}

	response.WithJSON(writer, http.StatusOK, version)
}

// RestoreVersion copies a version's content and blocks back onto the page without publishing it.
// @Summary Restore a page version
// @Tags Page Workflow
// @Produce json
// @Param id path string true "Page ID"
// @Param version path int true "Version number"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/versions/{version}/restore [post]
// @Security BearerAuth
func (handler *Handler) RestoreVersion(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RestoreVersion")
	defer scope.End()

	number, err := versionNumber(request)
	if err != nil {
		fail(writer, scope, err, "invalid version number")

		return
	}

	if err := handler.service.RestoreVersion(ctx, chi.URLParam(request, constant.RequestParamID), number); err != nil {
		fail(writer, scope, err, "failed to restore page version")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Page version restored successfully")
}

// @Summary Request a review of a page
// @Tags Page Review
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param request body dto.RequestReviewRequest true "Review Request"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/reviews [post]
// @Security BearerAuth
func (handler *Handler) RequestReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".RequestReview")
	defer scope.End()

	req := dto.RequestReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	id, err := handler.service.RequestReview(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to request page review")

		return
	}

	response.WithCreated(writer, "Review requested successfully", id)
}

// @Summary List the reviews of a page
// @Tags Page Review
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[[]dto.ReviewResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/reviews [get]
// @Security BearerAuth
func (handler *Handler) GetReviews(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReviews")
	defer scope.End()

	reviews, err := handler.service.GetReviews(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to get page reviews")

		return
	}

	response.WithJSON(writer, http.StatusOK, reviews)
}

// @Summary Complete a review
// @Tags Page Review
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param child_id path string true "Review ID"
// @Param request body dto.CompleteReviewRequest true "Review outcome"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/pages/{id}/reviews/{child_id} [patch]
// @Security BearerAuth
func (handler *Handler) CompleteReview(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CompleteReview")
	defer scope.End()

	req := dto.CompleteReviewRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	err := handler.service.CompleteReview(ctx, req, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamChildID))
	if err != nil {
		fail(writer, scope, err, "failed to complete page review")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Review completed successfully")
}

// @Summary Open a comment thread on a page
// @Tags Page Comment
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param request body dto.CreateThreadRequest true "Thread"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/threads [post]
// @Security BearerAuth
func (handler *Handler) CreateThread(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateThread")
	defer scope.End()

	req := dto.CreateThreadRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	id, err := handler.service.CreateThread(ctx, req, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to create comment thread")

		return
	}

	response.WithCreated(writer, "Thread created successfully", id)
}

// @Summary List the comment threads of a page
// @Tags Page Comment
// @Produce json
// @Param id path string true "Page ID"
// @Success 200 {object} response.Data[[]dto.ThreadResponse]
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/threads [get]
// @Security BearerAuth
func (handler *Handler) GetThreads(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetThreads")
	defer scope.End()

	threads, err := handler.service.GetThreads(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		fail(writer, scope, err, "failed to get comment threads")

		return
	}

	response.WithJSON(writer, http.StatusOK, threads)
}

// @Summary Comment on a thread
// @Tags Page Comment
// @Accept json
// @Produce json
// @Param id path string true "Page ID"
// @Param child_id path string true "Thread ID"
// @Param request body dto.CreateCommentRequest true "Comment"
// @Success 201 {object} response.Created
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/threads/{child_id}/comments [post]
// @Security BearerAuth
func (handler *Handler) AddComment(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".AddComment")
	defer scope.End()

	req := dto.CreateCommentRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		fail(writer, scope, err, "failed to validate request body")

		return
	}

	id, err := handler.service.AddComment(ctx, req, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamChildID))
	if err != nil {
		fail(writer, scope, err, "failed to add comment")

		return
	}

	response.WithCreated(writer, "Comment added successfully", id)
}

// @Summary Resolve a comment thread
// @Tags Page Comment
// @Produce json
// @Param id path string true "Page ID"
// @Param child_id path string true "Thread ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/threads/{child_id}/resolve [post]
// @Security BearerAuth
func (handler *Handler) ResolveThread(writer http.ResponseWriter, request *http.Request) {
	handler.setResolved(writer, request, true)
}

// @Summary Reopen a comment thread
// @Tags Page Comment
// @Produce json
// @Param id path string true "Page ID"
// @Param child_id path string true "Thread ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/pages/{id}/threads/{child_id}/reopen [post]
// @Security BearerAuth
func (handler *Handler) ReopenThread(writer http.ResponseWriter, request *http.Request) {
	handler.setResolved(writer, request, false)
}

func (handler *Handler) setResolved(writer http.ResponseWriter, request *http.Request, resolved bool) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ResolveThread")
	defer scope.End()

	err := handler.service.ResolveThread(ctx, chi.URLParam(request, constant.RequestParamID), chi.URLParam(request, constant.RequestParamChildID), resolved)
	if err != nil {
		fail(writer, scope, err, "failed to update comment thread")

		return
	}

	msg := "Thread reopened successfully"
	if resolved {
		msg = "Thread resolved successfully"
	}

	response.WithMessage(writer, http.StatusOK, msg)
}
