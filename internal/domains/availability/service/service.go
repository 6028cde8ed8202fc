package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/availability/model"
	"atoll/internal/domains/availability/model/dto"
	"atoll/internal/domains/availability/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllAvailability = "availability:gets"
	cacheCountAvailability  = "availability:count"

	maxCalendarDays = 366

	errAvailabilityNotFound = "availability not found"
)

type Availability interface {
	Create(ctx context.Context, req dto.CreateAvailabilityRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetAvailabilitiesResponse, error)
	Get(ctx context.Context, id string) (dto.AvailabilityResponse, error)
	Update(ctx context.Context, req dto.UpdateAvailabilityRequest, id string) error
	Delete(ctx context.Context, id string) error
	Calendar(ctx context.Context, req dto.CalendarRequest) ([]dto.AvailabilityResponse, error)
}

type serviceImpl struct {
	repo  repository.Availability
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Availability, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Availability {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateAvailabilityRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	date, err := timezone.ParseDate(req.Date)
	if err != nil {
		return constant.Empty, failure.BadRequest(err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	availability := req.ToModel(user, date)

	if err = s.repo.Insert(ctx, availability); err != nil {
		switch {
		case postgres.IsUniqueViolation(err):
			return constant.Empty, failure.Conflict("availability for this property and date already exists")
		case postgres.IsForeignKeyViolation(err):
			return constant.Empty, failure.BadRequestFromString("property does not exist")
		}

		log.Error().Err(err).Msg("failed to insert availability")

		return constant.Empty, fmt.Errorf("failed to create availability: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx))

	return availability.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetAvailabilitiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllAvailability, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	countKey := shared.BuildCacheKeyWithQuery(cacheCountAvailability, req, filter)

	var total int
	if err = s.cache.Get(ctx, countKey, &total); err != nil {
		total, err = s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count availabilities")

			return res, fmt.Errorf("failed to count availabilities: %w", err)
		}
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get availabilities")

		return res, fmt.Errorf("failed to get availabilities: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, countKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availability count to cache")
		}

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save availabilities to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	availability, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get availability")

		return res, fmt.Errorf("failed to get availability: %w", err)
	}

	if availability.ID == constant.Empty {
		return res, failure.NotFound(errAvailabilityNotFound)
	}

	res.FromModel(availability)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateAvailabilityRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check availability existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errAvailabilityNotFound)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Msg("failed to update availability")

		return fmt.Errorf("failed to update availability: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx))

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check availability existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errAvailabilityNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete availability")

		return fmt.Errorf("failed to delete availability: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx))

	return nil
}

// Calendar lists the overrides of one property between two dates, inclusive.
func (s *serviceImpl) Calendar(ctx context.Context, req dto.CalendarRequest) (res []dto.AvailabilityResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Calendar")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	from, err := timezone.ParseDate(req.From)
	if err != nil {
		return nil, failure.BadRequest(err)
	}

	to, err := timezone.ParseDate(req.To)
	if err != nil {
		return nil, failure.BadRequest(err)
	}

	days := timezone.DaysBetween(from, to)
	if days < 0 {
		return nil, failure.BadRequestFromString("from must not be after to")
	}

	if days > maxCalendarDays {
		return nil, failure.BadRequestFromString(fmt.Sprintf("date range must not exceed %d days", maxCalendarDays))
	}

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldPropertyID, Value: req.PropertyID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{ArgName: "date_from", Field: model.FieldDate, Value: timezone.FormatDate(from), Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName},
			gDto.Filter{ArgName: "date_to", Field: model.FieldDate, Value: timezone.FormatDate(to), Operator: gDto.FilterOperatorLessEq, Table: model.TableName},
		},
	}

	models, err := s.repo.GetAll(ctx, gDto.QueryParams{SortBy: model.FieldDate, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		log.Error().Err(err).Str("property_id", req.PropertyID).Msg("failed to get availability calendar")

		return nil, fmt.Errorf("failed to get availability calendar: %w", err)
	}

	res = make([]dto.AvailabilityResponse, len(models))
	for i, availability := range models {
		res[i].FromModel(availability)
	}

	return res, nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllAvailability)
	shared.InvalidateCaches(ctx, s.cache, cacheCountAvailability)
}
