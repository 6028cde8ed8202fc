package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/content/model"
	"atoll/internal/domains/content/model/dto"
	"atoll/internal/domains/content/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheSection      = "content:section"
	cacheTranslations = "content:translations"

	errSectionNotFound     = "content section not found"
	errTranslationNotFound = "translation not found"
)

type Content interface {
	GetSection(ctx context.Context, key, locale string) (dto.SectionResponse, error)
	UpsertSection(ctx context.Context, req dto.UpsertSectionRequest, key string) error
	GetTranslations(ctx context.Context, locale string) (dto.TranslationsResponse, error)
	UpsertTranslations(ctx context.Context, req dto.UpsertTranslationsRequest, locale string) error
	DeleteTranslation(ctx context.Context, locale, key string) error
}

type serviceImpl struct {
	sectionRepo     repository.Section
	translationRepo repository.Translation
	transactor      postgres.Transactor
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	sectionRepo repository.Section,
	translationRepo repository.Translation,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Content {
	return &serviceImpl{
		sectionRepo:     sectionRepo,
		translationRepo: translationRepo,
		transactor:      transactor,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func keyLocaleFilter(table, key, locale string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldKey, Value: key, Operator: gDto.FilterOperatorEq, Table: table},
			gDto.Filter{Field: model.FieldLocale, Value: locale, Operator: gDto.FilterOperatorEq, Table: table},
		},
	}
}

// GetSection returns the section in locale, falling back to the default locale when the
// section has not been translated yet.
func (s *serviceImpl) GetSection(ctx context.Context, key, locale string) (res dto.SectionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetSection")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if locale == constant.Empty {
		locale = constant.DefaultLocale
	}

	cacheKey := shared.BuildCacheKey(cacheSection, key, locale)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for content section")

		return res, nil
	}

	section, err := s.sectionRepo.Get(ctx, keyLocaleFilter(model.SectionTableName, key, locale))
	if err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to get content section")

		return res, fmt.Errorf("failed to get content section: %w", err)
	}

	if section.ID == constant.Empty && locale != constant.DefaultLocale {
		section, err = s.sectionRepo.Get(ctx, keyLocaleFilter(model.SectionTableName, key, constant.DefaultLocale))
		if err != nil {
			log.Error().Err(err).Str("key", key).Msg("failed to get default content section")

			return res, fmt.Errorf("failed to get content section: %w", err)
		}
	}

	if section.ID == constant.Empty {
		return res, failure.NotFound(errSectionNotFound)
	}

	res.FromModel(section)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save content section to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) UpsertSection(ctx context.Context, req dto.UpsertSectionRequest, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertSection")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	locale := req.Locale
	if locale == constant.Empty {
		locale = constant.DefaultLocale
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.sectionRepo.Upsert(ctx, req.ToModel(key, locale, user), model.FieldKey, model.FieldLocale); err != nil {
		log.Error().Err(err).Str("key", key).Msg("failed to save content section")

		return fmt.Errorf("failed to save content section: %w", err)
	}

	// every locale of the key may be serving the default as fallback
	go shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, shared.BuildCacheKey(cacheSection, key, constant.Empty))

	return nil
}

func (s *serviceImpl) GetTranslations(ctx context.Context, locale string) (res dto.TranslationsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetTranslations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheTranslations, locale)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for translations")

		return res, nil
	}

	translations, err := s.translationRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByField(model.FieldLocale, locale, model.TranslationTableName))
	if err != nil {
		log.Error().Err(err).Str("locale", locale).Msg("failed to get translations")

		return res, fmt.Errorf("failed to get translations: %w", err)
	}

	res.FromModels(locale, translations)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save translations to cache")
		}
	}()

	return res, nil
}

// UpsertTranslations writes every key of the request in one transaction; keys not in the
// request are left alone.
func (s *serviceImpl) UpsertTranslations(ctx context.Context, req dto.UpsertTranslationsRequest, locale string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpsertTranslations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	translations := req.ToModels(locale, user)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, translation := range translations {
			if err := s.translationRepo.UpsertTx(ctx, tx, translation, model.FieldLocale, model.FieldKey); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("locale", locale).Msg("failed to save translations")

		return fmt.Errorf("failed to save translations: %w", err)
	}

	log.Info().Str("locale", locale).Int("keys", len(translations)).Msg("translations saved")

	go s.invalidateTranslations(context.WithoutCancel(ctx), locale)

	return nil
}

func (s *serviceImpl) DeleteTranslation(ctx context.Context, locale, key string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteTranslation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := keyLocaleFilter(model.TranslationTableName, key, locale)

	exist, err := s.translationRepo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check translation existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errTranslationNotFound)
	}

	if err = s.translationRepo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("locale", locale).Str("key", key).Msg("failed to delete translation")

		return fmt.Errorf("failed to delete translation: %w", err)
	}

	go s.invalidateTranslations(context.WithoutCancel(ctx), locale)

	return nil
}

func (s *serviceImpl) invalidateTranslations(ctx context.Context, locale string) {
	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheTranslations, locale)); err != nil {
		log.Error().Err(err).Str("locale", locale).Msg("failed to delete translations cache")
	}
}
