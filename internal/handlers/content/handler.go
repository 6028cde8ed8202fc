package content

import (
	"net/http"

	"atoll/infras/otel"
	"atoll/internal/domains/content/model/dto"
	"atoll/internal/domains/content/service"
	"atoll/shared/constant"
	"atoll/shared/validator"
	"atoll/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

const (
	sectionKeyTag = "required,max=100,slug"
	localeTag     = "required,locale"
)

type Handler struct {
	service service.Content
	otel    otel.Otel
}

func New(service service.Content, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/content", func(routerGroup chi.Router) {
		routerGroup.Get("/{key}", handler.GetSection)
		routerGroup.Put("/{key}", handler.UpsertSection)
	})

	router.Route("/translations", func(routerGroup chi.Router) {
		routerGroup.Get("/{locale}", handler.GetTranslations)
		routerGroup.Put("/{locale}", handler.UpsertTranslations)
		routerGroup.Delete("/{locale}/{key}", handler.DeleteTranslation)
	})
}

// GetSection returns a site content section such as the homepage hero.
// @Summary Get a content section
// @Description Falls back to the default locale when the section has no copy in the requested one.
// @Tags Content
// @Produce json
// @Param key path string true "Section key"
// @Param locale query string false "Locale"
// @Success 200 {object} response.Data[dto.SectionResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/content/{key} [get]
func (handler *Handler) GetSection(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSection")
	defer scope.End()

	key := chi.URLParam(request, constant.RequestParamKey)
	locale := request.URL.Query().Get(constant.RequestParamLocale)

	err := validator.ValidateVar(key, sectionKeyTag)
	if err == nil && locale != constant.Empty {
		err = validator.ValidateVar(locale, localeTag)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid content section request")

		response.WithError(writer, err)

		return
	}

	section, err := handler.service.GetSection(ctx, key, locale)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get content section")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, section)
}

// @Summary Create or replace a content section
// @Tags Content
// @Accept json
// @Produce json
// @Param key path string true "Section key"
// @Param request body dto.UpsertSectionRequest true "Section"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/content/{key} [put]
// @Security BearerAuth
func (handler *Handler) UpsertSection(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertSection")
	defer scope.End()

	key := chi.URLParam(request, constant.RequestParamKey)
	req := dto.UpsertSectionRequest{}

	err := validator.ValidateVar(key, sectionKeyTag)
	if err == nil {
		err = validator.Validate(request.Body, &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpsertSection(ctx, req, key); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save content section")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Content section saved successfully")
}

// GetTranslations returns every translation of a locale as a key to value map.
// @Summary Get translations
// @Tags Translation
// @Produce json
// @Param locale path string true "Locale"
// @Success 200 {object} response.Data[dto.TranslationsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/translations/{locale} [get]
func (handler *Handler) GetTranslations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetTranslations")
	defer scope.End()

	locale := chi.URLParam(request, constant.RequestParamLocale)

	if err := validator.ValidateVar(locale, localeTag); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("invalid locale")

		response.WithError(writer, err)

		return
	}

	translations, err := handler.service.GetTranslations(ctx, locale)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get translations")

		response.WithError(writer, err)

		return
	}

	response.WithJSON(writer, http.StatusOK, translations)
}

// @Summary Upsert translations
// @Tags Translation
// @Accept json
// @Produce json
// @Param locale path string true "Locale"
// @Param request body dto.UpsertTranslationsRequest true "Translations"
// @Success 200 {object} response.Message
// @Failure 400 {object} response.Error
// @Router /v1/translations/{locale} [put]
// @Security BearerAuth
func (handler *Handler) UpsertTranslations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertTranslations")
	defer scope.End()

	locale := chi.URLParam(request, constant.RequestParamLocale)
	req := dto.UpsertTranslationsRequest{}

	err := validator.ValidateVar(locale, localeTag)
	if err == nil {
		err = validator.Validate(request.Body, &req)
	}

	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(writer, err)

		return
	}

	if err := handler.service.UpsertTranslations(ctx, req, locale); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to save translations")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Translations saved successfully")
}

// @Summary Delete a translation
// @Tags Translation
// @Produce json
// @Param locale path string true "Locale"
// @Param key path string true "Translation key"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/translations/{locale}/{key} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteTranslation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteTranslation")
	defer scope.End()

	locale := chi.URLParam(request, constant.RequestParamLocale)

	if err := handler.service.DeleteTranslation(ctx, locale, chi.URLParam(request, constant.RequestParamKey)); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete translation")

		response.WithError(writer, err)

		return
	}

	response.WithMessage(writer, http.StatusOK, "Translation deleted successfully")
}
