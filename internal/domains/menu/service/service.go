package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"

	"atoll/config"
	"atoll/infras/otel"
	"atoll/infras/postgres"
	"atoll/internal/domains/menu/model"
	"atoll/internal/domains/menu/model/dto"
	"atoll/internal/domains/menu/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetMenu    = "menu:get"
	cacheSlugMenu   = "menu:slug"
	cacheGetAllMenu = "menu:gets"
	cacheCountMenu  = "menu:count"

	errMenuNotFound   = "menu not found"
	errItemNotFound   = "menu item not found"
	errSlugTaken      = "menu slug already taken"
	errParentNotFound = "parent item not found in this menu"
	errParentIsSelf   = "an item cannot be its own parent"
	errParentCycle    = "parent item cannot be a descendant of the item"
)

var itemOrder = gDto.QueryParams{SortBy: model.FieldPosition, SortDir: gDto.SortDirAsc}

type Menu interface {
	Create(ctx context.Context, req dto.CreateMenuRequest) (string, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMenusResponse, error)
	Get(ctx context.Context, id string) (dto.MenuResponse, error)
	GetBySlug(ctx context.Context, slug string) (dto.MenuResponse, error)
	Update(ctx context.Context, req dto.UpdateMenuRequest, id string) error
	Delete(ctx context.Context, id string) error
	CreateItem(ctx context.Context, req dto.CreateMenuItemRequest, menuID string) (string, error)
	UpdateItem(ctx context.Context, req dto.UpdateMenuItemRequest, menuID, itemID string) error
	DeleteItem(ctx context.Context, menuID, itemID string) error
}

type serviceImpl struct {
	repo     repository.Menu
	itemRepo repository.Item
	cfg      *config.Config
	cache    cache.RedisCache
	otel     otel.Otel
}

func New(repo repository.Menu, itemRepo repository.Item, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Menu {
	return &serviceImpl{
		repo:     repo,
		itemRepo: itemRepo,
		cfg:      cfg,
		cache:    cache,
		otel:     otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateMenuRequest) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	menu := req.ToModel(user)

	if err = s.repo.Insert(ctx, menu); err != nil {
		if postgres.IsUniqueViolation(err) {
			return constant.Empty, failure.Conflict(errSlugTaken)
		}

		log.Error().Err(err).Msg("failed to insert menu")

		return constant.Empty, fmt.Errorf("failed to create menu: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), constant.Empty)

	return menu.ID, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetMenusResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKeyWithQuery(cacheGetAllMenu, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menus")

		return res, nil
	}

	total, err := s.count(ctx, req, filter)
	if err != nil {
		return res, err
	}

	models, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menus")

		return res, fmt.Errorf("failed to get menus: %w", err)
	}

	res.FromModels(models, total, req.Limit)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menus to cache")
		}
	}()

	return res, nil
}

func (s *serviceImpl) count(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res int, err error) {
	cacheKey := shared.BuildCacheKeyWithQuery(cacheCountMenu, req, filter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	res, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count menus")

		return res, fmt.Errorf("failed to count menus: %w", err)
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save menu count to cache")
		}
	}()

	return res, nil
}

// Get returns a menu with its full item tree, inactive items included.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.MenuResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheGetMenu, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for menu")

		return res, nil
	}

	res, err = s.compose(ctx, shared.FilterByID(id, model.FieldID, model.TableName), false)
	if err != nil {
		return res, err
	}

	go s.save(context.WithoutCancel(ctx), cacheKey, res)

	return res, nil
}

// GetBySlug returns an active menu with only its active items, for rendering navigation.
func (s *serviceImpl) GetBySlug(ctx context.Context, slug string) (res dto.MenuResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetBySlug")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	cacheKey := shared.BuildCacheKey(cacheSlugMenu, slug)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		return res, nil
	}

	filter := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}.Add(
		gDto.Filter{Field: model.FieldSlug, Operator: gDto.FilterOperatorEq, Value: slug, Table: model.TableName},
		gDto.Filter{Field: model.FieldIsActive, Operator: gDto.FilterOperatorEq, Value: true, Table: model.TableName},
	)

	res, err = s.compose(ctx, filter, true)
	if err != nil {
		return res, err
	}

	go s.save(context.WithoutCancel(ctx), cacheKey, res)

	return res, nil
}

func (s *serviceImpl) compose(ctx context.Context, filter gDto.FilterGroup, activeOnly bool) (res dto.MenuResponse, err error) {
	menu, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu")

		return res, fmt.Errorf("failed to get menu: %w", err)
	}

	if menu.ID == constant.Empty {
		return res, failure.NotFound(errMenuNotFound)
	}

	items, err := s.itemRepo.GetAll(ctx, itemOrder, shared.FilterByField(model.FieldMenuID, menu.ID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Str("menu", menu.ID).Msg("failed to get menu items")

		return res, fmt.Errorf("failed to get menu items: %w", err)
	}

	res.FromModel(menu)
	res.Items = dto.BuildTree(items, activeOnly)

	return res, nil
}

func (s *serviceImpl) save(ctx context.Context, cacheKey string, res dto.MenuResponse) {
	if err := s.cache.Save(ctx, cacheKey, res, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save menu to cache")
	}
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateMenuRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	if err = s.ensureMenu(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, user), filter); err != nil {
		if postgres.IsUniqueViolation(err) {
			return failure.Conflict(errSlugTaken)
		}

		log.Error().Err(err).Msg("failed to update menu")

		return fmt.Errorf("failed to update menu: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

// Delete removes a menu. Its items go with it.
func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.ensureMenu(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete menu")

		return fmt.Errorf("failed to delete menu: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), id)

	return nil
}

func (s *serviceImpl) CreateItem(ctx context.Context, req dto.CreateMenuItemRequest, menuID string) (id string, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".CreateItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	item := req.ToModel(menuID, user)

	if err = s.ensureMenu(ctx, menuID); err != nil {
		return constant.Empty, err
	}

	if item.ParentID != nil {
		var items []model.MenuItem

		if items, err = s.menuItems(ctx, menuID); err != nil {
			return constant.Empty, err
		}

		if err = checkParent(items, item.ID, *item.ParentID); err != nil {
			return constant.Empty, err
		}
	}

	if err = s.itemRepo.Insert(ctx, item); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return constant.Empty, failure.BadRequestFromString(errParentNotFound)
		}

		log.Error().Err(err).Msg("failed to insert menu item")

		return constant.Empty, fmt.Errorf("failed to create menu item: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), menuID)

	return item.ID, nil
}

// UpdateItem patches an item of the menu. A new parent must belong to the same menu and
// must not sit below the item, so the tree stays acyclic.
func (s *serviceImpl) UpdateItem(ctx context.Context, req dto.UpdateMenuItemRequest, menuID, itemID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)

	items, err := s.menuItems(ctx, menuID)
	if err != nil {
		return err
	}

	if _, ok := findItem(items, itemID); !ok {
		return failure.NotFound(errItemNotFound)
	}

	if req.ParentID != nil && *req.ParentID != constant.Empty {
		if err = checkParent(items, itemID, *req.ParentID); err != nil {
			return err
		}
	}

	if err = s.itemRepo.Update(ctx, req.Fields(user), itemFilter(menuID, itemID)); err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return failure.BadRequestFromString(errParentNotFound)
		}

		log.Error().Err(err).Msg("failed to update menu item")

		return fmt.Errorf("failed to update menu item: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), menuID)

	return nil
}

// DeleteItem removes an item and, through the parent key, everything nested under it.
func (s *serviceImpl) DeleteItem(ctx context.Context, menuID, itemID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".DeleteItem")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	item, err := s.itemRepo.Get(ctx, itemFilter(menuID, itemID))
	if err != nil {
		log.Error().Err(err).Msg("failed to get menu item")

		return fmt.Errorf("failed to get menu item: %w", err)
	}

	if item.ID == constant.Empty {
		return failure.NotFound(errItemNotFound)
	}

	if err = s.itemRepo.Delete(ctx, itemFilter(menuID, itemID)); err != nil {
		log.Error().Err(err).Msg("failed to delete menu item")

		return fmt.Errorf("failed to delete menu item: %w", err)
	}

	go s.invalidateCaches(context.WithoutCancel(ctx), menuID)

	return nil
}

func (s *serviceImpl) ensureMenu(ctx context.Context, id string) error {
	exist, err := s.repo.Exist(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to check menu existence")

		return fmt.Errorf("failed to check menu existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errMenuNotFound)
	}

	return nil
}

func (s *serviceImpl) menuItems(ctx context.Context, menuID string) ([]model.MenuItem, error) {
	items, err := s.itemRepo.GetAll(ctx, itemOrder, shared.FilterByField(model.FieldMenuID, menuID, model.ItemTableName))
	if err != nil {
		log.Error().Err(err).Str("menu", menuID).Msg("failed to get menu items")

		return nil, fmt.Errorf("failed to get menu items: %w", err)
	}

	return items, nil
}

func (s *serviceImpl) invalidateCaches(ctx context.Context, id string) {
	shared.InvalidateCaches(ctx, s.cache, cacheGetAllMenu)
	shared.InvalidateCaches(ctx, s.cache, cacheCountMenu)
	shared.InvalidateCaches(ctx, s.cache, cacheSlugMenu)

	if id == constant.Empty {
		return
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(cacheGetMenu, id)); err != nil {
		log.Error().Err(err).Str("id", id).Msg("failed to delete menu cache")
	}
}

func itemFilter(menuID, itemID string) gDto.FilterGroup {
	return gDto.FilterGroup{Operator: gDto.FilterGroupOperatorAnd}.Add(
		gDto.Filter{Field: model.FieldID, Operator: gDto.FilterOperatorEq, Value: itemID, Table: model.ItemTableName},
		gDto.Filter{Field: model.FieldMenuID, Operator: gDto.FilterOperatorEq, Value: menuID, Table: model.ItemTableName},
	)
}

func findItem(items []model.MenuItem, id string) (model.MenuItem, bool) {
	for _, item := range items {
		if item.ID == id {
			return item, true
		}
	}

	return model.MenuItem{}, false
}

// checkParent walks up from parentID; reaching itemID means the move would close a loop.
func checkParent(items []model.MenuItem, itemID, parentID string) error {
	if parentID == itemID {
		return failure.BadRequestFromString(errParentIsSelf)
	}

	current, ok := findItem(items, parentID)
	if !ok {
		return failure.BadRequestFromString(errParentNotFound)
	}

	for steps := 0; current.ParentID != nil && steps <= len(items); steps++ {
		if *current.ParentID == itemID {
			return failure.BadRequestFromString(errParentCycle)
		}

		if current, ok = findItem(items, *current.ParentID); !ok {
			return nil
		}
	}

	return nil
}
