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
	"atoll/internal/domains/page/model"
	"atoll/internal/domains/page/model/dto"
	"atoll/internal/domains/page/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

const (
	cacheGetPage    = "page:get"
	cacheGetAllPage = "page:gets"
	cacheCountPage  = "page:count"
	cacheSlugPage   = "page:slug"

	maxSlugAttempts = 100

	errPageNotFound   = "page not found"
	errSlugTaken      = "a page with this slug already exists"
	errPublishWindow  = "publish date must be before unpublish date"
	errSlugExhausted  = "could not derive a free slug from the title"
	errParentNotFound = "parent page does not exist"
	errParentSelf     = "a page cannot be its own parent"
)

type Page interface {
	Create(ctx context.Context, req dto.CreatePageRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPagesResponse, error)
	Get(ctx context.Context, id string) (dto.PageResponse, error)
	GetBySlug(ctx context.Context, slug, locale string) (dto.PageResponse, error)
	Update(ctx context.Context, req dto.UpdatePageRequest, id string) error
	Delete(ctx context.Context, id string) error

	GetBlocks(ctx context.Context, pageID string) ([]dto.BlockResponse, error)
	CreateBlock(ctx context.Context, req dto.CreateBlockRequest, pageID string) (string, error)
	UpdateBlock(ctx context.Context, req dto.UpdateBlockRequest, pageID, blockID string) error
	DeleteBlock(ctx context.Context, pageID, blockID string) error
	ReorderBlocks(ctx context.Context, req dto.ReorderBlocksRequest, pageID string) error

	Publish(ctx context.Context, id string) (dto.VersionResponse, error)
	Unpublish(ctx context.Context, id string) error
	Archive(ctx context.Context, id string) error
	GetVersions(ctx context.Context, pageID string) ([]dto.VersionResponse, error)
	GetVersion(ctx context.Context, pageID string, number int) (dto.VersionResponse, error)
	RestoreVersion(ctx context.Context, pageID string, number int) error

	RequestReview(ctx context.Context, req dto.RequestReviewRequest, pageID string) (string, error)
	CompleteReview(ctx context.Context, req dto.CompleteReviewRequest, pageID, reviewID string) error
	GetReviews(ctx context.Context, pageID string) ([]dto.ReviewResponse, error)

	CreateThread(ctx context.Context, req dto.CreateThreadRequest, pageID string) (string, error)
	GetThreads(ctx context.Context, pageID string) ([]dto.ThreadResponse, error)
	AddComment(ctx context.Context, req dto.CreateCommentRequest, pageID, threadID string) (string, error)
	ResolveThread(ctx context.Context, pageID, threadID string, resolved bool) error
}

type serviceImpl struct {
	repo        repository.Page
	blockRepo   repository.Block
	versionRepo repository.Version
	reviewRepo  repository.Review
	threadRepo  repository.Thread
	commentRepo repository.Comment
	transactor  postgres.Transactor
	cfg         *config.Config
	cache       cache.RedisCache
	otel        otel.Otel
}

func New(
	repo repository.Page,
	blockRepo repository.Block,
	versionRepo repository.Version,
	reviewRepo repository.Review,
	threadRepo repository.Thread,
	commentRepo repository.Comment,
	transactor postgres.Transactor,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Page {
	return &serviceImpl{
		repo:        repo,
		blockRepo:   blockRepo,
		versionRepo: versionRepo,
		reviewRepo:  reviewRepo,
		threadRepo:  threadRepo,
		commentRepo: commentRepo,
		transactor:  transactor,
		cfg:         cfg,
		cache:       cache,
		otel:        otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePageRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = checkWindow(req.PublishAt, req.UnpublishAt); err != nil {
		return constant.Empty, err
	}

	if err = s.checkParent(ctx, req.ParentID, constant.Empty); err != nil {
		return constant.Empty, err
	}

	slug, err := s.resolveSlug(ctx, req.Slug, req.Title)
	if err != nil {
		return constant.Empty, err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	page := req.ToModel(user, slug)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		if err := s.repo.InsertTx(ctx, tx, page); err != nil {
			return err
		}

		if page.IsHome {
			return s.demoteHome(ctx, tx, page.ID, page.Locale, user)
		}

		return nil
	})
	if err != nil {
		return constant.Empty, mapWriteError(err, "failed to create page")
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return page.ID, nil
}

// resolveSlug rejects a taken explicit slug; a slug derived from the title gets the
// first free numeric suffix instead.
func (s *serviceImpl) resolveSlug(ctx context.Context, explicit, title string) (string, error) {
	if explicit != constant.Empty {
		taken, err := s.slugTaken(ctx, explicit, constant.Empty)
		if err != nil {
			return constant.Empty, err
		}

		if taken {
			return constant.Empty, failure.Conflict(errSlugTaken)
		}

		return explicit, nil
	}

	base := dto.Slugify(title)
	if base == constant.Empty {
		base = model.EntityName
	}

	for n := range maxSlugAttempts {
		candidate := dto.SlugCandidate(base, n)

		taken, err := s.slugTaken(ctx, candidate, constant.Empty)
		if err != nil {
			return constant.Empty, err
		}

		if !taken {
			return candidate, nil
		}
	}

	return constant.Empty, failure.Conflict(errSlugExhausted)
}

func (s *serviceImpl) slugTaken(ctx context.Context, slug, exceptID string) (bool, error) {
	filter := shared.FilterByField(model.FieldSlug, slug, model.TableName)
	if exceptID != constant.Empty {
		filter = filter.Add(gDto.Filter{
			Field:    model.FieldID,
			Value:    exceptID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	taken, err := s.repo.Exist(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}

	return taken, nil
}

func (s *serviceImpl) checkParent(ctx context.Context, parentID *string, id string) error {
	if parentID == nil {
		return nil
	}

	if *parentID == id {
		return failure.BadRequestFromString(errParentSelf)
	}

	exist, err := s.repo.Exist(ctx, shared.FilterByID(*parentID, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check parent page: %w", err)
	}

	if !exist {
		return failure.BadRequestFromString(errParentNotFound)
	}

	return nil
}

// demoteHome clears is_home on every other page of locale.
func (s *serviceImpl) demoteHome(ctx context.Context, tx *sqlx.Tx, id, locale, user string) error {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{Field: model.FieldLocale, Value: locale, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldIsHome, Value: true, Operator: gDto.FilterOperatorEq, Table: model.TableName},
			gDto.Filter{Field: model.FieldID, Value: id, Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
		},
	}

	return s.repo.UpdateTx(ctx, tx, map[string]any{
		model.FieldIsHome:        false,
		constant.FieldModifiedAt: timezone.Now(),
		constant.FieldModifiedBy: user,
	}, filter)
}

func checkWindow(publishAt, unpublishAt *time.Time) error {
	if publishAt != nil && unpublishAt != nil && !publishAt.Before(*unpublishAt) {
		return failure.BadRequestFromString(errPublishWindow)
	}

	return nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllPage, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for pages")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	pages, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get pages")

		return res, fmt.Errorf("failed to get pages: %w", err)
	}

	res.FromModels(pages, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save pages to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (total int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountPage, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &total); err == nil {
		return total, nil
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count pages")

		return total, fmt.Errorf("failed to count pages: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, total, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save page count to cache")
		}
	}()

	return total, nil
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetPage, id)

	var composition dto.Composition

	if err = s.cache.Get(ctx, cacheKey, &composition); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for page")

		return composition.Response(), nil
	}

	composition, err = s.compose(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return res, err
	}

	go s.saveComposition(context.WithoutCancel(ctx), cacheKey, composition)

	return composition.Response(), nil
}

// GetBySlug serves the public view: only a published page inside its publish window,
// with the blocks meant for locale. An empty locale means the page's own locale.
func (s *serviceImpl) GetBySlug(ctx context.Context, slug, locale string) (res dto.PageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheSlugPage, slug)

	var composition dto.Composition

	if err = s.cache.Get(ctx, cacheKey, &composition); err != nil {
		composition, err = s.compose(ctx, shared.FilterByField(model.FieldSlug, slug, model.TableName))
		if err != nil {
			return res, err
		}

		go s.saveComposition(context.WithoutCancel(ctx), cacheKey, composition)
	}

	if !composition.Page.Live(timezone.Now()) {
		return res, failure.NotFound(errPageNotFound)
	}

	if locale == constant.Empty {
		locale = composition.Page.Locale
	}

	return composition.ForLocale(locale).Response(), nil
}

func (s *serviceImpl) compose(ctx context.Context, filter gDto.FilterGroup) (res dto.Composition, err error) {
	page, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get page")

		return res, fmt.Errorf("failed to get page: %w", err)
	}

	if page.ID == constant.Empty {
		return res, failure.NotFound(errPageNotFound)
	}

	blocks, err := s.blockRepo.GetAll(ctx, blockOrder, shared.FilterByField(model.FieldPageID, page.ID, model.BlockTableName))
	if err != nil {
		log.Error().Err(err).Str("page", page.ID).Msg("failed to get page blocks")

		return res, fmt.Errorf("failed to get page blocks: %w", err)
	}

	return dto.Composition{Page: page, Blocks: blocks}, nil
}

func (s *serviceImpl) saveComposition(ctx context.Context, cacheKey string, composition dto.Composition) {
	if err := s.cache.Save(ctx, cacheKey, composition, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save page to cache")
	}
}

// Update patches a page. The publish window is checked against the stored bounds for
// whichever side the patch leaves out.
func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePageRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Slug != nil {
		taken, err := s.slugTaken(ctx, *req.Slug, id)
		if err != nil {
			return err
		}

		if taken {
			return failure.Conflict(errSlugTaken)
		}
	}

	if err = s.checkParent(ctx, req.ParentID, id); err != nil {
		return err
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	err = s.transactor.WithTransaction(ctx, func(ctx context.Context, tx *sqlx.Tx) error {
		current, err := s.repo.GetForUpdateTx(ctx, tx, filter, model.FieldID, model.FieldLocale, model.FieldPublishAt, model.FieldUnpublishAt)
		if err != nil {
			return err
		}

		if current.ID == constant.Empty {
			return failure.NotFound(errPageNotFound)
		}

		publishAt, unpublishAt := current.PublishAt, current.UnpublishAt
		if req.PublishAt != nil {
			publishAt = req.PublishAt
		}

		if req.UnpublishAt != nil {
			unpublishAt = req.UnpublishAt
		}

		if err := checkWindow(publishAt, unpublishAt); err != nil {
			return err
		}

		if err := s.repo.UpdateTx(ctx, tx, shared.TransformFields(req, user), filter); err != nil {
			return err
		}

		if req.IsHome != nil && *req.IsHome {
			locale := current.Locale
			if req.Locale != nil {
				locale = *req.Locale
			}

			return s.demoteHome(ctx, tx, id, locale, user)
		}

		return nil
	})
	if err != nil {
		return mapWriteError(err, "failed to update page")
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensurePage(ctx, id); err != nil {
		return err
	}

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete page")

		return fmt.Errorf("failed to delete page: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) ensurePage(ctx context.Context, id string) error {
	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		return fmt.Errorf("failed to check page existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errPageNotFound)
	}

	return nil
}

// mapWriteError keeps failures raised inside a transaction and turns constraint
// violations into client errors.
func mapWriteError(err error, msg string) error {
	var fail *failure.Failure
	if errors.As(err, &fail) {
		return err
	}

	if postgres.IsUniqueViolation(err) {
		return failure.Conflict(errSlugTaken)
	}

	if postgres.IsForeignKeyViolation(err) {
		return failure.BadRequestFromString("referenced page, block or media does not exist")
	}

	log.Error().Err(err).Msg(msg)

	return fmt.Errorf("%s: %w", msg, err)
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllPage)
	shared.InvalidateCaches(ctx, s.cache, cacheCountPage)
	shared.InvalidateCaches(ctx, s.cache, cacheSlugPage)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetPage, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete page cache")
	}
}
