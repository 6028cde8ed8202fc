package media

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/media/model"
	"atoll/internal/domains/media/model/dto"
	"atoll/internal/domains/media/service"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	formFieldAltText = "alt_text"
	formFieldCaption = "caption"
	formFieldTags    = "tags"

	queryParamTag = "tag"
)

type Handler struct {
	service service.Media
	otel    otel.Otel
}

func New(service service.Media, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/media", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.UploadMedia)
		routerGroup.Post("/base64", handler.UploadBase64)
		routerGroup.Get("/", handler.GetMedia)
		routerGroup.Get("/{id}", handler.GetMediaByID)
		routerGroup.Patch("/{id}", handler.UpdateMedia)
		routerGroup.Delete("/{id}", handler.DeleteMedia)
	})
}

// UploadMedia stores multipart files in the media library.
// @Summary Upload media
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Images (png, jpg, jpeg, webp, gif; up to 5 MB each)"
// @Param alt_text formData string false "Alt text applied to every file"
// @Param caption formData string false "Caption applied to every file"
// @Param tags formData []string false "Tags applied to every file"
// @Success 201 {object} response.Data[[]dto.MediaResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media [post]
// @Security BearerAuth
func (handler *Handler) UploadMedia(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadMedia")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")

		response.WithError(writer, failure.BadRequest(err))

		return
	}

	form := request.MultipartForm

	req := dto.UploadMediaRequest{
		Files:   form.File[constant.FormFiles],
		AltText: request.FormValue(formFieldAltText),
		Caption: request.FormValue(formFieldCaption),
		Tags:    form.Value[formFieldTags],
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)

		response.WithError(writer, err)

		return
	}

	assets, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload media")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, assets)
}

// UploadBase64 stores a single data-URI encoded file.
// @Summary Upload media from a data URI
// @Tags Media
// @Accept json
// @Produce json
// @Param request body dto.UploadBase64Request true "Base64 Upload Request"
// @Success 201 {object} response.Data[dto.MediaResponse]
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/base64 [post]
// @Security BearerAuth
func (handler *Handler) UploadBase64(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadBase64")
	defer scope.End()

	req := dto.UploadBase64Request{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	asset, err := handler.service.UploadBase64(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload media")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusCreated, asset)
}

// GetMedia lists the media library.
// @Summary Get all media
// @Tags Media
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param tag query string false "Filter by tag"
// @Param mime_type query string false "Filter by MIME type"
// @Param file_name query string false "Filter by file name"
// @Success 200 {object} response.Data[dto.GetMediaResponse]
// @Failure 500 {object} response.Error
// @Router /v1/media [get]
// @Security BearerAuth
func (handler *Handler) GetMedia(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMedia")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(request, true)

	media, err := handler.service.GetAll(ctx, queryParams, mediaFilter(request))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get media")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, media)
}

func mediaFilter(request *http.Request) gDto.FilterGroup {
	query := request.URL.Query()
	filterGroup := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}

	if tag := query.Get(queryParamTag); tag != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			ArgName:  queryParamTag,
			Field:    model.FieldTags,
			Operator: gDto.FilterOperatorContains,
			Value:    tag,
			Table:    model.TableName,
		})
	}

	if mimeType := query.Get(model.FieldMimeType); mimeType != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldMimeType,
			Operator: gDto.FilterOperatorEq,
			Value:    mimeType,
			Table:    model.TableName,
		})
	}

	if fileName := query.Get(model.FieldFileName); fileName != constant.Empty {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldFileName,
			Operator: gDto.FilterOperatorLike,
			Value:    fileName,
			Table:    model.TableName,
		})
	}

	return filterGroup
}

// GetMediaByID returns a media asset.
// @Summary Get a media asset by ID
// @Tags Media
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} response.Data[dto.MediaResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetMediaByID(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMediaByID")
	defer scope.End()

	asset, err := handler.service.Get(ctx, chi.URLParam(request, constant.RequestParamID))
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get media by ID")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, asset)
}

// UpdateMedia edits alt text, caption and tags.
// @Summary Update a media asset
// @Tags Media
// @Accept json
// @Produce json
// @Param id path string true "Media ID"
// @Param request body dto.UpdateMediaRequest true "Update Media Request"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateMedia(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateMedia")
	defer scope.End()

	req := dto.UpdateMediaRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.Update(ctx, req, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update media")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Media updated successfully")
}

// DeleteMedia removes an asset and its stored object.
// @Summary Delete a media asset
// @Tags Media
// @Produce json
// @Param id path string true "Media ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/media/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteMedia(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteMedia")
	defer scope.End()

	if err := handler.service.Delete(ctx, chi.URLParam(request, constant.RequestParamID)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete media")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Media deleted successfully")
}
