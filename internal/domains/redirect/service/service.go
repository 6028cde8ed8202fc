package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/redirect/model"
	"atoll/internal/domains/redirect/model/dto"
	"atoll/internal/domains/redirect/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetRedirect     = "redirect:get"
	cacheResolveRedirect = "redirect:resolve"
	cacheGetAllRedirect  = "redirect:gets"
	cacheCountRedirect   = "redirect:count"

	errRedirectNotFound = "redirect not found"
	errPathTaken        = "a redirect for this path already exists"
	errSamePath         = "from_path and to_path must differ"
	errWindow           = "starts_at must be before ends_at"
)

type Redirect interface {
	Create(ctx context.Context, req dto.CreateRedirectRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetRedirectsResponse, error)
	Get(ctx context.Context, id string) (dto.RedirectResponse, error)
	Resolve(ctx context.Context, path, locale string) (dto.RedirectResponse, error)
	Update(ctx context.Context, req dto.UpdateRedirectRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Redirect
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Redirect, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Redirect {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateRedirectRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	redirect := req.ToModel(user)

	if err = check(redirect); err != nil {
		return constant.Empty, err
	}

	if err = s.repo.Insert(ctx, redirect); err != nil {
		if postgres.IsUniqueViolation(err) {
			return constant.Empty, failure.Conflict(errPathTaken)
		}

		log.Error().Err(err).Msg("failed to insert redirect")

		return constant.Empty, fmt.Errorf("failed to create redirect: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return redirect.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetRedirectsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllRedirect, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for redirects")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get redirects")

		return res, fmt.Errorf("failed to get redirects: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save redirects to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountRedirect, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count redirects")

		return res, fmt.Errorf("failed to count redirects: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save redirect count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.RedirectResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetRedirect, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	redirect, err := s.find(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	res.FromModel(redirect)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save redirect to cache")
		}
	}()

	return res, nil
}

// Resolve finds the redirect serving path. The stored row is cached; the time window
// is checked on every call so a cached redirect still starts and expires on schedule.
func (s *serviceImpl) Resolve(ctx context.Context, path, locale string) (res dto.RedirectResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}.Add(
		gDto.Filter{Field: model.FieldFromPath, Operator: gDto.FilterOperatorEq, Value: path, Table: model.TableName},
		gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
	)

	if locale != constant.Empty {
		filter = filter.Add(gDto.Filter{Field: model.FieldLocale, Operator: gDto.FilterOperatorEq, Value: locale, Table: model.TableName})
	}

	cacheKey := shared.BuildCacheKeyWithQuery(cacheResolveRedirect, gDto.QueryParams{}, filter)

	var redirect model.Redirect

	if err = s.cache.Get(ctx, cacheKey, &redirect); err != nil {
		if redirect, err = s.find(ctx, filter); err != nil {
			return res, err
		}

		go func() {
			c := context.WithoutCancel(ctx)

			if err := s.cache.Save(c, cacheKey, redirect, s.cfg.Cache.TTL); err != nil {
				log.Error().Err(err).Msg("failed to save resolved redirect to cache")
			}
		}()
	}

	if !redirect.Live(timezone.Now()) {
		return res, failure.NotFound(errRedirectNotFound)
	}

	res.FromModel(redirect)

	return res, nil
}

// Update patches a redirect. The merged paths and window are checked before writing.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateRedirectRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.find(ctx, filter)
	if err != nil {
		return err
	}

	if err = check(req.Apply(current)); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if postgres.IsUniqueViolation(err) {
			return failure.Conflict(errPathTaken)
		}

		log.Error().Err(err).Msg("failed to update redirect")

		return fmt.Errorf("failed to update redirect: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if _, err = s.find(ctx, filter); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete redirect")

		return fmt.Errorf("failed to delete redirect: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) find(ctx context.Context, filter gDto.FilterGroup) (model.Redirect, error) {
	redirect, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get redirect")

		return redirect, fmt.Errorf("failed to get redirect: %w", err)
	}

	if redirect.ID == constant.Empty {
		return redirect, failure.NotFound(errRedirectNotFound)
	}

	return redirect, nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllRedirect)
	shared.InvalidateCaches(ctx, s.cache, cacheCountRedirect)
	shared.InvalidateCaches(ctx, s.cache, cacheResolveRedirect)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetRedirect, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete redirect cache")
	}
}

func check(redirect model.Redirect) error {
	if redirect.FromPath == redirect.ToPath {
		return failure.BadRequestFromString(errSamePath)
	}

	if redirect.StartsAt != nil && redirect.EndsAt != nil && !redirect.StartsAt.Before(*redirect.EndsAt) {
		return failure.BadRequestFromString(errWindow)
	}

	return nil
}
