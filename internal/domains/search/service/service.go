package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"atoll/config"
	"atoll/infras/otel"
	locationModel "atoll/internal/domains/location/model"
	locationRepo "atoll/internal/domains/location/repository"
	propertyModel "atoll/internal/domains/property/model"
	propertyRepo "atoll/internal/domains/property/repository"
	"atoll/internal/domains/search/model/dto"
	packageModel "atoll/internal/domains/tourpackage/model"
	packageRepo "atoll/internal/domains/tourpackage/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	cacheSearch = "search:query"

	// ResultLimit caps each result list.
	ResultLimit    = 10
	maxQueryLength = 100

	errQueryRequired = "Search query is required"
	errQueryTooLong  = "search query must be at most 100 characters"
)

type Search interface {
	Search(ctx context.Context, query string) (dto.SearchResponse, error)
}

type serviceImpl struct {
	propertyRepo propertyRepo.Property
	packageRepo  packageRepo.Package
	locationRepo locationRepo.Location
	cfg          *config.Config
	cache        cache.RedisCache
	otel         otel.Otel
}

func New(
	propertyRepo propertyRepo.Property,
	packageRepo packageRepo.Package,
	locationRepo locationRepo.Location,
	cfg *config.Config,
	cache cache.RedisCache,
	otel otel.Otel,
) Search {
	return &serviceImpl{
		propertyRepo: propertyRepo,
		packageRepo:  packageRepo,
		locationRepo: locationRepo,
		cfg:          cfg,
		cache:        cache,
		otel:         otel,
	}
}

// Search matches the query case-insensitively against properties, packages and locations.
// Each list holds at most ResultLimit entries. Results are cached for the configured TTL.
func (s *serviceImpl) Search(ctx context.Context, query string) (res dto.SearchResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Search")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query = strings.TrimSpace(query)

	switch {
	case query == constant.Empty:
		return res, failure.BadRequestFromString(errQueryRequired)
	case utf8.RuneCountInString(query) > maxQueryLength:
		return res, failure.BadRequestFromString(errQueryTooLong)
	}

	params := gDto.QueryParams{Page: 1, Limit: ResultLimit}
	propertyFilter := matchAny(query, propertyModel.TableName, propertyModel.FieldName, "description", "address")
	cacheKey := shared.BuildCacheKeyWithQuery(cacheSearch, params, propertyFilter)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for search")

		return res, nil
	}

	var (
		properties []propertyModel.Property
		packages   []packageModel.Package
		locations  []locationModel.Location
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		properties, err = s.propertyRepo.GetAll(gctx, params, propertyFilter)
		if err != nil {
			return fmt.Errorf("failed to search properties: %w", err)
		}

		return nil
	})

	g.Go(func() (err error) {
		packages, err = s.packageRepo.GetAll(gctx, params, matchAny(query, packageModel.TableName, packageModel.FieldName, "description"))
		if err != nil {
			return fmt.Errorf("failed to search packages: %w", err)
		}

		return nil
	})

	g.Go(func() (err error) {
		locations, err = s.locationRepo.GetAll(gctx, params, matchAny(query, locationModel.TableName,
			locationModel.FieldName, locationModel.FieldIsland, locationModel.FieldAtoll))
		if err != nil {
			return fmt.Errorf("failed to search locations: %w", err)
		}

		return nil
	})

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Str("query", query).Msg("failed to search catalog")

		return res, err
	}

	res.FromModels(query, properties, packages, locations)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, s.cfg.Cache.TTL); err != nil {
			log.Error().Err(err).Msg("failed to save search results to cache")
		}
	}()

	return res, nil
}

// matchAny ORs a LIKE filter per field. Arg names are distinct so every field binds the same value.
func matchAny(query, table string, fields ...string) gDto.FilterGroup {
	group := gDto.FilterGroup{Operator: gDto.FilterGroupOperatorOr}

	for _, field := range fields {
		group.Filters = append(group.Filters, gDto.Filter{
			ArgName:  "q_" + field,
			Field:    field,
			Operator: gDto.FilterOperatorLike,
			Value:    query,
			Table:    table,
		})
	}

	return group
}
