package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/s3"
	"atoll/internal/domains/media/model"
	"atoll/internal/domains/media/model/dto"
	"atoll/internal/domains/media/repository"
	"atoll/shared"
	"atoll/shared/base64"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetMedia    = "media:get"
	cacheGetAllMedia = "media:gets"
	cacheCountMedia  = "media:count"

	errMediaNotFound = "media not found"
)

var ErrDeleteObjects = errors.New("failed to delete objects from storage")

type Media interface {
	Upload(ctx context.Context, req dto.UploadMediaRequest) ([]dto.MediaResponse, error)
	UploadBase64(ctx context.Context, req dto.UploadBase64Request) (dto.MediaResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMediaResponse, error)
	Get(ctx context.Context, id string) (dto.MediaResponse, error)
	Update(ctx context.Context, req dto.UpdateMediaRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Media
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
	s3    s3.S3
}

func New(repo repository.Media, cfg *config.Config, cache cache.RedisCache, otel otel.Otel, s3 s3.S3) Media {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
		s3:    s3,
	}
}

// Upload stores every file and records one asset per file. Objects already stored are
// removed again when a later file or the insert fails.
func (s *serviceImpl) Upload(ctx context.Context, req dto.UploadMediaRequest) (res []dto.MediaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Upload")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	assets := make([]dto.Asset, 0, len(req.Files))
	urls := make([]string, 0, len(req.Files))

	for _, header := range req.Files {
		url, err := s.upload(ctx, header)
		if err != nil {
			s.deleteObjects(context.WithoutCancel(ctx), urls)

			return nil, err
		}

		urls = append(urls, url)
		assets = append(assets, dto.Asset{
			FileName: filepath.Base(header.Filename),
			URL:      url,
			MimeType: header.Header.Get(constant.RequestHeaderContentType),
			Size:     header.Size,
			AltText:  req.AltText,
			Caption:  req.Caption,
			Tags:     req.Tags,
		})
	}

	models := make([]model.MediaAsset, len(assets))
	for i, asset := range assets {
		models[i] = asset.ToModel(user)
	}

	if err = s.repo.InsertBulk(ctx, models); err != nil {
		log.Error().Err(err).Msg("failed to record media assets")
		s.deleteObjects(context.WithoutCancel(ctx), urls)

		return nil, fmt.Errorf("failed to record media assets: %w", err)
	}

	res = make([]dto.MediaResponse, len(models))
	for i, m := range models {
		res[i].FromModel(m)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return res, nil
}

func (s *serviceImpl) upload(ctx context.Context, header *multipart.FileHeader) (string, error) {
	file, err := header.Open()
	if err != nil {
		return constant.Empty, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	url, err := s.s3.Upload(ctx, model.Directory, s3.NewObjectName(header.Filename), header.Header.Get(constant.RequestHeaderContentType), file)
	if err != nil {
		log.Error().Err(err).Str("file", header.Filename).Msg("failed to upload media")

		return constant.Empty, fmt.Errorf("failed to upload file: %w", err)
	}

	return url, nil
}

func (s *serviceImpl) UploadBase64(ctx context.Context, req dto.UploadBase64Request) (res dto.MediaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UploadBase64")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	contentType, data, err := base64.Decode(req.Data)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	fileName := req.FileName
	if fileName == constant.Empty {
		fileName = "upload" + base64.Extension(contentType)
	}

	url, err := s.s3.UploadBytes(ctx, model.Directory, s3.NewObjectName(fileName), contentType, data)
	if err != nil {
		log.Error().Err(err).Msg("failed to upload media")

		return res, fmt.Errorf("failed to upload file: %w", err)
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	asset := dto.Asset{
		FileName: filepath.Base(fileName),
		URL:      url,
		MimeType: contentType,
		Size:     int64(len(data)),
		AltText:  req.AltText,
		Caption:  req.Caption,
		Tags:     req.Tags,
	}.ToModel(user)

	if err = s.repo.Insert(ctx, asset); err != nil {
		log.Error().Err(err).Msg("failed to record media asset")
		s.deleteObjects(context.WithoutCancel(ctx), []string{url})

		return res, fmt.Errorf("failed to record media asset: %w", err)
	}

	res.FromModel(asset)

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMediaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMedia, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for media")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get media")

		return res, fmt.Errorf("failed to get media: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save media to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountMedia, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count media")

		return total, fmt.Errorf("failed to count media: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save media count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MediaResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetMedia, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for media asset")

		return res, nil
	}

	asset, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get media asset")

		return res, fmt.Errorf("failed to get media asset: %w", err)
	}

	if asset.ID == constant.Empty {
		return res, failure.NotFound(errMediaNotFound)
	}

	res.FromModel(asset)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save media asset to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMediaRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to check media existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errMediaNotFound)
	}

	if req.Tags != nil {
		tags := pq.StringArray(shared.DedupeNames(*req.Tags))
		req.Tags = &tags
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to update media asset")

		return fmt.Errorf("failed to update media asset: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

// Delete removes the record first; the stored object follows asynchronously.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	asset, err := s.repo.Get(ctx, filter, model.FieldID, model.FieldURL)
	if err != nil {
		return fmt.Errorf("failed to get media asset: %w", err)
	}

	if asset.ID == constant.Empty {
		return failure.NotFound(errMediaNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete media asset")

		return fmt.Errorf("failed to delete media asset: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		s.invalidateCaches(c, id)
		s.deleteObjects(c, []string{asset.URL})
	}()

	return nil
}

func (s *serviceImpl) deleteObjects(ctx context.Context, urls []string) {
	var failed int

	for _, url := range urls {
		objectName := s.s3.ObjectNameFromURL(model.Directory, url)
		if objectName == constant.Empty {
			log.Warn().Str("url", url).Msg("failed to extract object name from URL")

			continue
		}

		if err := s.s3.Delete(ctx, model.Directory, objectName); err != nil {
			log.Error().Err(err).Str("objectName", objectName).Msg("failed to delete media object")

			failed++
		}
	}

	if failed > 0 {
		log.Error().Err(ErrDeleteObjects).Int("count", failed).Msg("media objects left in storage")
	}
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllMedia)
	shared.InvalidateCaches(ctx, s.cache, cacheCountMedia)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetMedia, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete media cache")
	}
}
