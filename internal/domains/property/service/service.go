package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"mime/multipart"
	"slices"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/infras/s3"
	"atoll/internal/domains/property/model"
	"atoll/internal/domains/property/model/dto"
	"atoll/internal/domains/property/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetProperty    = "property:get"
	cacheGetAllProperty = "property:gets"
	cacheCountProperty  = "property:count"

	errPropertyNotFound = "property not found"
	errUnknownReference = "location or amenity does not exist"
)

type Property interface {
	Create(ctx context.Context, req dto.CreatePropertyRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPropertiesResponse, error)
	Get(ctx context.Context, id string) (dto.PropertyResponse, error)
	Update(ctx context.Context, req dto.UpdatePropertyRequest, id string) error
	Delete(ctx context.Context, id string) error
	UploadImages(ctx context.Context, req dto.UploadImagesRequest, id string) ([]string, error)
	DeleteImage(ctx context.Context, req dto.DeleteImageRequest, id string) error
}

type serviceImpl struct {
	repo        repository.Property
	amenityRepo repository.PropertyAmenity
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
	s3          s3.S3
}

func New(
	repo repository.Property,
	amenityRepo repository.PropertyAmenity,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
	s3 s3.S3,
) Property {
	return &serviceImpl{
		repo:        repo,
		amenityRepo: amenityRepo,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
		s3:          s3,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePropertyRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	property := req.ToModel(user)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, property); err != nil {
			return err
		}

		return s.amenityRepo.InsertBulkTx(ctx, tx, dto.AmenityModels(property.ID, req.AmenityIDs))
	})
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return constant.Empty, failure.BadRequestFromString(errUnknownReference)
		}

		log.Error().Err(err).Msg("failed to create property")

		return constant.Empty, fmt.Errorf("failed to create property: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return property.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPropertiesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllProperty, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for properties")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get properties")

		return res, fmt.Errorf("failed to get properties: %w", err)
	}

	ids := make([]string, len(models))
	for i, property := range models {
		ids[i] = property.ID
	}

	amenities, err := s.amenityRepo.GetAll(ctx, gDto.QueryParams{}, gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{Field: model.FieldPropertyID, Value: ids, Operator: gDto.FilterOperatorIn, Table: model.AmenityTableName},
		},
	})
	if err != nil {
		log.Error().Err(err).Msg("failed to get property amenities")

		return res, fmt.Errorf("failed to get property amenities: %w", err)
	}

	res.FromModels(models, amenities, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save properties to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountProperty, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count properties")

		return res, fmt.Errorf("failed to count properties: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property count to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PropertyResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetProperty, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for property")

		return res, nil
	}

	property, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property")

		return res, fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return res, failure.NotFound(errPropertyNotFound) // nolint:wrapcheck
	}

	amenities, err := s.amenityRepo.GetAll(ctx, gDto.QueryParams{}, shared.FilterByID(id, model.FieldPropertyID, model.AmenityTableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get property amenities")

		return res, fmt.Errorf("failed to get property amenities: %w", err)
	}

	res.FromModel(property, amenities)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save property to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePropertyRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter, model.FieldID)
		if err != nil {
			return err
		}

		if current.ID == constant.Empty {
			return failure.NotFound(errPropertyNotFound)
		}

		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), filter); err != nil {
			return err
		}

		if req.AmenityIDs == nil {
			return nil
		}

		linkFilter := shared.FilterByID(id, model.FieldPropertyID, model.AmenityTableName)
		if err := s.amenityRepo.DeleteTx(ctx, tx, linkFilter); err != nil {
			return err
		}

		return s.amenityRepo.InsertBulkTx(ctx, tx, dto.AmenityModels(id, *req.AmenityIDs))
	})
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return failure.BadRequestFromString(errUnknownReference)
		}

		log.Error().Err(err).Str("id", id).Msg("failed to update property")

		return err
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

// Delete cascades to bookings, availability, amenity and package links. Stored
// images are removed from object storage afterwards.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	property, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldImages)
	if err != nil {
		return fmt.Errorf("failed to get property: %w", err)
	}

	if property.ID == constant.Empty {
		return failure.NotFound(errPropertyNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete property")

		return fmt.Errorf("failed to delete property: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateCaches(c, id)
		s.deleteObjects(c, property.Images)
	}()

	return nil
}

func (s *serviceImpl) UploadImages(ctx context.Context, req dto.UploadImagesRequest, id string) (urls []string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadImages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to check property existence: %w", err)
	}

	if !exist {
		return nil, failure.NotFound(errPropertyNotFound)
	}

	for _, header := range req.Files {
		url, err := s.upload(ctx, header)
		if err != nil {
			s.deleteObjects(ctx, urls)

			return nil, err
		}

		urls = append(urls, url)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter, model.FieldID, model.FieldImages)
		if err != nil {
			return err
		}

		images := append([]string{}, current.Images...)

		return s.repo.UpdateTx(ctx, tx, imageFields(append(images, urls...), user), filter)
	})
	if err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to attach property images")
		s.deleteObjects(context.WithoutCancel(ctx), urls)

		return nil, fmt.Errorf("failed to attach property images: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return urls, nil
}

func (s *serviceImpl) upload(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	url, err := s.s3.Upload(ctx, model.ImageDirectory, s3.NewObjectName(header.Filename), header.Header.Get(constant.RequestHeaderContentType), file)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("failed to upload property image")

		return constant.Empty, fmt.Errorf("failed to upload image: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) DeleteImage(ctx context.Context, req dto.DeleteImageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteImage")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter, model.FieldID, model.FieldImages)
		if err != nil {
			return err
		}

		if current.ID == constant.Empty {
			return failure.NotFound(errPropertyNotFound)
		}

		if !slices.Contains(current.Images, req.URL) {
			return failure.NotFound("image not found")
		}

		images := slices.DeleteFunc(append([]string{}, current.Images...), func(url string) bool {
			return url == req.URL
		})

		return s.repo.UpdateTx(ctx, tx, imageFields(images, user), filter)
	})
	if err != nil {
		return err
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateCaches(c, id)
		s.deleteObjects(c, []string{req.URL})
	}()

	return nil
}

func imageFields(images []string, user string) map[string]any {
	return map[string]any{
		model.FieldImages:        pq.StringArray(images),
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}
}

func (s *serviceImpl) deleteObjects(ctx context.Context, urls []string) {
	for _, url := range urls {
		objectName := s.s3.ObjectNameFromURL(model.ImageDirectory, url)
		if objectName == constant.Empty {
			continue
		}

		if err := s.s3.Delete(ctx, model.ImageDirectory, objectName); err != nil {
			log.Error().Err(err).Str("url", url).Msg("failed to delete property image")
		}
	}
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllProperty)
	shared.InvalidateCaches(ctx, s.cache, cacheCountProperty)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetProperty, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete property cache")
	}
}
