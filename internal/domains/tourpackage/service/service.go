package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/tourpackage/model"
	"atoll/internal/domains/tourpackage/model/dto"
	"atoll/internal/domains/tourpackage/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	cacheGetPackage    = "package:get"
	cacheGetAllPackage = "package:gets"
	cacheCountPackage  = "package:count"

	errPackageNotFound      = "package not found"
	errUnknownReference     = "property or location does not exist"
	errExperienceInActivity = "activities cannot use the experience category, send them as experiences"
	errDateRange            = "start_date must not be after end_date"
	errGroupSize            = "group_size_min must not exceed group_size_max"
)

type Package interface {
	Create(ctx context.Context, req dto.CreatePackageRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPackagesResponse, error)
	GetByProperty(ctx context.Context, req gDto.QueryParams, propertyID string) (dto.GetPackagesResponse, error)
	Get(ctx context.Context, id string) (dto.PackageResponse, error)
	Update(ctx context.Context, req dto.UpdatePackageRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo            repository.Package
	propertyRepo    repository.Property
	destinationRepo repository.Destination
	itineraryRepo   repository.Itinerary
	inclusionRepo   repository.Inclusion
	activityRepo    repository.Activity
	transactor      postgres.Transactor
	cfg             *config.Config
	cache           cache.RedisCache
	otel            otel.Otel
}

func New(
	repo repository.Package,
	propertyRepo repository.Property,
	destinationRepo repository.Destination,
	itineraryRepo repository.Itinerary,
	inclusionRepo repository.Inclusion,
	activityRepo repository.Activity,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Package {
	return &serviceImpl{
		repo:            repo,
		propertyRepo:    propertyRepo,
		destinationRepo: destinationRepo,
		itineraryRepo:   itineraryRepo,
		inclusionRepo:   inclusionRepo,
		activityRepo:    activityRepo,
		transactor:      transactor,
		cfg:             cfg,
		cache:           cache,
		otel:            otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePackageRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = checkActivityCategories(req.Activities); err != nil {
		return constant.Empty, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	pkg, err := req.ToModel(user)
	if err != nil {
		return constant.Empty, failure.BadRequest(err)
	}

	if err = checkRanges(pkg.StartDate, pkg.EndDate, pkg.GroupSizeMin, pkg.GroupSizeMax); err != nil {
		return constant.Empty, err
	}

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, pkg); err != nil {
			return err
		}

		w := writer{svc: s, tx: tx, packageID: pkg.ID, resolver: newActivityResolver(nil, req.Activities)}

		return w.write(ctx, children{
			PropertyIDs:  &req.PropertyIDs,
			Destinations: &req.Destinations,
			Itinerary:    &req.Itinerary,
			Inclusions:   &req.Inclusions,
			Activities:   &req.Activities,
			Experiences:  &req.Experiences,
		}, false)
	})
	if err != nil {
		return constant.Empty, s.mapWriteError(err, "failed to create package")
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return pkg.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPackage, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for packages")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get packages")

		return res, fmt.Errorf("failed to get packages: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save packages to cache")
		}
	}()

	return res, nil
}

// GetByProperty lists the packages that include the property. An unknown property has no packages.
func (s *serviceImpl) GetByProperty(ctx context.Context, req gDto.QueryParams, propertyID string) (res dto.GetPackagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByProperty")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	links, err := s.propertyRepo.GetAll(ctx, gDto.QueryParams{},
		shared.FilterByField(model.FieldPropertyID, propertyID, model.PropertyTableName), model.FieldPackageID)
	if err != nil {
		log.Error().Err(err).Str("property_id", propertyID).Msg("failed to get property packages")

		return res, fmt.Errorf("failed to get property packages: %w", err)
	}

	if len(links) == 0 {
		res.FromModels(nil, 0, req.Limit)

		return res, nil
	}

	ids := make([]string, len(links))
	for i, link := range links {
		ids[i] = link.PackageID
	}

	return s.GetAll(ctx, req, gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.TableName},
		},
	})
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPackage, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count packages")

		return res, fmt.Errorf("failed to count packages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package count to cache")
		}
	}()

	return res, nil
}

// Get assembles the package detail; the child collections are loaded concurrently.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PackageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetPackage, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for package")

		return res, nil
	}

	pkg, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get package")

		return res, fmt.Errorf("failed to get package: %w", err)
	}

	if pkg.ID == constant.Empty {
		return res, failure.NotFound(errPackageNotFound) // nolint:wrapcheck
	}

	composition := dto.Composition{Package: pkg}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		composition.Properties, err = s.propertyRepo.GetAll(gctx, gDto.QueryParams{}, childFilter(id, model.PropertyTableName))
		return err
	})

	g.Go(func() (err error) {
		composition.Destinations, err = s.destinationRepo.GetAll(gctx, orderBy(model.FieldPosition), childFilter(id, model.DestinationTableName))
		return err
	})

	g.Go(func() (err error) {
		composition.Itinerary, err = s.itineraryRepo.GetAll(gctx, orderBy(model.FieldDay), childFilter(id, model.ItineraryTableName))
		return err
	})

	g.Go(func() (err error) {
		composition.Inclusions, err = s.inclusionRepo.GetAll(gctx, gDto.QueryParams{}, childFilter(id, model.InclusionTableName))
		return err
	})

	g.Go(func() (err error) {
		composition.Activities, err = s.activityRepo.GetAll(gctx, orderBy(model.FieldName), childFilter(id, model.ActivityTableName))
		return err
	})

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to get package composition")

		return res, fmt.Errorf("failed to get package composition: %w", err)
	}

	res.FromComposition(composition)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save package to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePackageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Activities != nil {
		if err = checkActivityCategories(*req.Activities); err != nil {
			return err
		}
	}

	var payload []dto.ActivityRequest
	if req.Activities != nil {
		payload = *req.Activities
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter, model.FieldID, model.FieldStartDate, model.FieldEndDate, model.FieldGroupSizeMin, model.FieldGroupSizeMax)
		if err != nil {
			return err
		}

		if current.ID == constant.Empty {
			return failure.NotFound(errPackageNotFound)
		}

		if err := checkPatchedRanges(current, req); err != nil {
			return err
		}

		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), filter); err != nil {
			return err
		}

		var existing []model.Activity

		if req.Itinerary != nil && referencesActivities(*req.Itinerary) {
			existing, err = s.activityRepo.GetAllTx(ctx, tx, gDto.QueryParams{}, childFilter(id, model.ActivityTableName))
			if err != nil {
				return err
			}
		}

		w := writer{svc: s, tx: tx, packageID: id, resolver: newActivityResolver(existing, payload)}

		return w.write(ctx, children{
			PropertyIDs:  req.PropertyIDs,
			Destinations: req.Destinations,
			Itinerary:    req.Itinerary,
			Inclusions:   req.Inclusions,
			Activities:   req.Activities,
			Experiences:  req.Experiences,
		}, true)
	})
	if err != nil {
		return s.mapWriteError(err, "failed to update package")
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

// Delete removes the package; child rows go with it through ON DELETE CASCADE.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check package existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errPackageNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete package")

		return fmt.Errorf("failed to delete package: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) mapWriteError(err error, msg string) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	if postgres.IsForeignKeyViolation(err) {
		return failure.BadRequestFromString(errUnknownReference)
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllPackage)
	shared.InvalidateCaches(ctx, s.cache, cacheCountPackage)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetPackage, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete package cache")
	}
}

func checkActivityCategories(activities []dto.ActivityRequest) error {
	for _, activity := range activities {
		if shared.NormalizeName(activity.Category) == model.CategoryExperience {
			return failure.BadRequestFromString(errExperienceInActivity)
		}
	}

	return nil
}

func checkRanges(start, end *time.Time, minSize, maxSize int) error {
	if start != nil && end != nil && start.After(*end) {
		return failure.BadRequestFromString(errDateRange)
	}

	if minSize > 0 && maxSize > 0 && minSize > maxSize {
		return failure.BadRequestFromString(errGroupSize)
	}

	return nil
}

// checkPatchedRanges validates the ranges as they will be after the patch is applied.
func checkPatchedRanges(current model.Package, req dto.UpdatePackageRequest) error {
	start, end := current.StartDate, current.EndDate

	if req.StartDate != nil {
		date, err := timezone.ParseDate(*req.StartDate)
		if err != nil {
			return failure.BadRequest(err)
		}

		start = &date
	}

	if req.EndDate != nil {
		date, err := timezone.ParseDate(*req.EndDate)
		if err != nil {
			return failure.BadRequest(err)
		}

		end = &date
	}

	minSize, maxSize := current.GroupSizeMin, current.GroupSizeMax
	if req.GroupSizeMin != nil {
		minSize = *req.GroupSizeMin
	}

	if req.GroupSizeMax != nil {
		maxSize = *req.GroupSizeMax
	}

	return checkRanges(start, end, minSize, maxSize)
}

func referencesActivities(days []dto.ItineraryRequest) bool {
	for _, day := range days {
		if len(day.ActivityIDs) > 0 {
			return true
		}
	}

	return false
}

func childFilter(packageID, table string) gDto.FilterGroup {
	return shared.FilterByID(packageID, model.FieldPackageID, table)
}

func orderBy(column string) gDto.QueryParams {
	return gDto.QueryParams{SortBy: column, SortDir: gDto.SortDirAsc}
}
