package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/customer/model"
	"atoll/internal/domains/customer/model/dto"
	"atoll/internal/domains/customer/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/password"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetCustomer    = "customer:get"
	cacheGetAllCustomer = "customer:gets"
	cacheCountCustomer  = "customer:count"

	errCustomerNotFound = "customer not found"
	errEmailRegistered  = "email already registered"
	errStaffRole        = "only a superadmin can grant staff roles"
)

type Customer interface {
	Create(ctx context.Context, req dto.CreateCustomerRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetCustomersResponse, error)
	Get(ctx context.Context, id string) (dto.CustomerResponse, error)
	Update(ctx context.Context, req dto.UpdateCustomerRequest, id string) error
	Delete(ctx context.Context, id string) error
	GetProfile(ctx context.Context) (dto.CustomerResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) error
}

type serviceImpl struct {
	repo  repository.Customer
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Customer, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Customer {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateCustomerRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Role != constant.Empty && req.Role != constant.RoleCustomer {
		if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role != constant.RoleSuperAdmin {
			return constant.Empty, failure.Forbidden(errStaffRole)
		}
	}

	exists, err := s.repo.Exist(ctx, shared.FilterByField(model.FieldEmail, req.Email, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check if customer exists")

		return constant.Empty, fmt.Errorf("failed to check if customer exists: %w", err)
	}

	if exists {
		return constant.Empty, failure.Conflict(errEmailRegistered)
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return constant.Empty, fmt.Errorf("failed to hash password: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	customer := req.ToModel(user, hashedPassword)

	if err = s.repo.Insert(ctx, customer); err != nil {
		if postgres.IsUniqueViolation(err) {
			return constant.Empty, failure.Conflict(errEmailRegistered)
		}

		log.Error().Err(err).Msg("failed to create customer")

		return constant.Empty, fmt.Errorf("failed to create customer: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return customer.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetCustomersResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllCustomer, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customers")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get customers")

		return res, fmt.Errorf("failed to get customers: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customers to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountCustomer, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count customers")

		return res, fmt.Errorf("failed to count customers: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetCustomer, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for customer")

		return res, nil
	}

	res, err = s.get(ctx, id)
	if err != nil {
		return res, err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save customer to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (res dto.CustomerResponse, err error) {
	customer, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get customer")

		return res, fmt.Errorf("failed to get customer: %w", err)
	}

	if customer.ID == constant.Empty {
		return res, failure.NotFound(errCustomerNotFound) // nolint:wrapcheck
	}

	res.FromModel(customer)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateCustomerRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Role != nil && *req.Role != constant.RoleCustomer {
		if role, _ := ctx.Value(constant.ContextKeyUserRole).(string); role != constant.RoleSuperAdmin {
			return failure.Forbidden(errStaffRole)
		}
	}

	return s.update(ctx, req, id)
}

func (s *serviceImpl) update(ctx context.Context, req any, id string) error {
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check customer existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errCustomerNotFound)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update customer")

		return fmt.Errorf("failed to update customer: %w", err)
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
		return fmt.Errorf("failed to check customer existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errCustomerNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete customer")

		return fmt.Errorf("failed to delete customer: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

// GetProfile reads the caller's own record, bypassing the cache.
func (s *serviceImpl) GetProfile(ctx context.Context) (res dto.CustomerResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if id == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	return s.get(ctx, id)
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	id, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if id == constant.Empty {
		return failure.Unauthorized("authentication required")
	}

	return s.update(ctx, req, id)
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllCustomer)
	shared.InvalidateCaches(ctx, s.cache, cacheCountCustomer)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetCustomer, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete customer cache")
	}
}
