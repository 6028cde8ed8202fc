package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/amenity/model"
	"atoll/internal/domains/amenity/model/dto"
	"atoll/internal/domains/amenity/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAmenity    = "amenity:get"
	cacheGetAllAmenity = "amenity:gets"

	errDuplicateName = "amenity with this name already exists"
)

type Amenity interface {
	Create(ctx context.Context, req dto.CreateAmenityRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAmenitiesResponse, error)
	Get(ctx context.Context, id string) (dto.AmenityResponse, error)
	Update(ctx context.Context, req dto.UpdateAmenityRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Amenity
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Amenity, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Amenity {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAmenityRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	amenity := req.ToModel(user)

	if err = s.repo.Insert(ctx, amenity); err != nil {
		if postgres.IsUniqueViolation(err) {
			return constant.Empty, failure.Conflict(errDuplicateName)
		}

		log.Error().Err(err).Msg("failed to insert amenity")

		return constant.Empty, fmt.Errorf("failed to create amenity: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return amenity.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAmenitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAmenity, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for amenities")

		return res, nil
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count amenities")

		return res, fmt.Errorf("failed to count amenities: %w", err)
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get amenities")

		return res, fmt.Errorf("failed to get amenities: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save amenities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AmenityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetAmenity, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	amenity, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get amenity")

		return res, fmt.Errorf("failed to get amenity: %w", err)
	}

	if amenity.ID == constant.Empty {
		return res, failure.NotFound("amenity not found") // nolint:wrapcheck
	}

	res.FromModel(amenity)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save amenity to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAmenityRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check amenity existence: %w", err)
	}

	if !exist {
		return failure.NotFound("amenity not found")
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if postgres.IsUniqueViolation(err) {
			return failure.Conflict(errDuplicateName)
		}

		log.Error().Err(err).Msg("failed to update amenity")

		return fmt.Errorf("failed to update amenity: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

// Delete also drops the amenity from every property through the join table cascade.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check amenity existence: %w", err)
	}

	if !exist {
		return failure.NotFound("amenity not found")
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete amenity")

		return fmt.Errorf("failed to delete amenity: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllAmenity)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetAmenity, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete amenity cache")
	}
}
