package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	propertyModel "atoll/internal/domains/property/model"
	propertyRepo "atoll/internal/domains/property/repository"
	"atoll/internal/domains/review/model"
	"atoll/internal/domains/review/model/dto"
	"atoll/internal/domains/review/repository"
	packageModel "atoll/internal/domains/tourpackage/model"
	packageRepo "atoll/internal/domains/tourpackage/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetReview    = "review:get"
	cacheGetAllReview = "review:gets"
	cacheCountReview  = "review:count"

	errReviewNotFound   = "review not found"
	errPropertyNotFound = "property not found"
	errPackageNotFound  = "package not found"
)

type Review interface {
	Create(ctx context.Context, req dto.CreateReviewRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error)
	GetForProperty(ctx context.Context, req gDto.QueryParams, propertyID string) (dto.GetReviewsResponse, error)
	GetForPackage(ctx context.Context, req gDto.QueryParams, packageID string) (dto.GetReviewsResponse, error)
	Get(ctx context.Context, id string) (dto.ReviewResponse, error)
	SetApproval(ctx context.Context, req dto.ApprovalRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo         repository.Review
	propertyRepo propertyRepo.Property
	packageRepo  packageRepo.Package
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	repo repository.Review,
	propertyRepo propertyRepo.Property,
	packageRepo packageRepo.Package,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Review {
	return &serviceImpl{
		repo:         repo,
		propertyRepo: propertyRepo,
		packageRepo:  packageRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Create stores an unapproved review after checking the reviewed property or package exists.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateReviewRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.checkTarget(ctx, req); err != nil {
		return constant.Empty, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	review := req.ToModel(user)

	if err = s.repo.Insert(ctx, review); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return constant.Empty, failure.BadRequestFromString("reviewed property or package does not exist")
		}

		log.Error().Err(err).Msg("failed to insert review")

		return constant.Empty, fmt.Errorf("failed to create review: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return review.ID, nil
}

func (s *serviceImpl) checkTarget(ctx context.Context, req dto.CreateReviewRequest) error {
	if req.PropertyID != nil {
		exist, err := s.propertyRepo.Exist(ctx, shared.FilterByID(*req.PropertyID, propertyModel.FieldID, propertyModel.TableName))
		if err != nil {
			return fmt.Errorf("failed to check property existence: %w", err)
		}

		if !exist {
			return failure.NotFound(errPropertyNotFound)
		}

		return nil
	}

	exist, err := s.packageRepo.Exist(ctx, shared.FilterByID(*req.PackageID, packageModel.FieldID, packageModel.TableName))
	if err != nil {
		return fmt.Errorf("failed to check package existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errPackageNotFound)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetReviewsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllReview, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for reviews")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get reviews")

		return res, fmt.Errorf("failed to get reviews: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save reviews to cache")
		}
	}()

	return res, nil
}

// GetForProperty lists the approved reviews of a property, newest first.
func (s *serviceImpl) GetForProperty(ctx context.Context, req gDto.QueryParams, propertyID string) (dto.GetReviewsResponse, error) {
	return s.GetAll(ctx, newestFirst(req), approvedFor(model.FieldPropertyID, propertyID))
}

// GetForPackage lists the approved reviews of a package, newest first.
func (s *serviceImpl) GetForPackage(ctx context.Context, req gDto.QueryParams, packageID string) (dto.GetReviewsResponse, error) {
	return s.GetAll(ctx, newestFirst(req), approvedFor(model.FieldPackageID, packageID))
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountReview, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count reviews")

		return res, fmt.Errorf("failed to count reviews: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.ReviewResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetReview, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	review, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get review")

		return res, fmt.Errorf("failed to get review: %w", err)
	}

	if review.ID == constant.Empty {
		return res, failure.NotFound(errReviewNotFound)
	}

	res.FromModel(review)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save review to cache")
		}
	}()

	return res, nil
}

// SetApproval approves a review or takes it back out of the public listings.
func (s *serviceImpl) SetApproval(ctx context.Context, req dto.ApprovalRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".SetApproval")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check review existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errReviewNotFound)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update review approval")

		return fmt.Errorf("failed to update review: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check review existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errReviewNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete review")

		return fmt.Errorf("failed to delete review: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllReview)
	shared.InvalidateCaches(ctx, s.cache, cacheCountReview)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetReview, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete review cache")
	}
}

func approvedFor(field, id string) gDto.FilterGroup {
	return gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: field, Value: id, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldApproved, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		},
	}
}

func newestFirst(req gDto.QueryParams) gDto.QueryParams {
	req.SortBy = constant.FieldCreatedAt
	req.SortDir = gDto.SortDirDesc

	return req
}
