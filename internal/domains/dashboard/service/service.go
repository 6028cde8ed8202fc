package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"

	"atoll/config"
	"atoll/infras/otel"
	bookingModel "atoll/internal/domains/booking/model"
	bookingRepo "atoll/internal/domains/booking/repository"
	customerModel "atoll/internal/domains/customer/model"
	customerRepo "atoll/internal/domains/customer/repository"
	"atoll/internal/domains/dashboard/model/dto"
	mediaDto "atoll/internal/domains/media/model/dto"
	mediaRepo "atoll/internal/domains/media/repository"
	menuRepo "atoll/internal/domains/menu/repository"
	pageModel "atoll/internal/domains/page/model"
	pageDto "atoll/internal/domains/page/model/dto"
	pageRepo "atoll/internal/domains/page/repository"
	propertyModel "atoll/internal/domains/property/model"
	propertyRepo "atoll/internal/domains/property/repository"
	redirectRepo "atoll/internal/domains/redirect/repository"
	reviewRepo "atoll/internal/domains/review/repository"
	packageModel "atoll/internal/domains/tourpackage/model"
	packageRepo "atoll/internal/domains/tourpackage/repository"
	"atoll/shared"
	"atoll/shared/cache"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/timezone"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	cacheStats        = "dashboard:stats"
	cacheContentStats = "dashboard:content"

	weekDays    = 7
	monthDays   = 30
	recentLimit = 5
)

type Dashboard interface {
	Stats(ctx context.Context) (dto.StatsResponse, error)
	ContentStats(ctx context.Context) (dto.ContentStatsResponse, error)
}

// Repositories groups the read sides the dashboard aggregates over.
type Repositories struct {
	Property propertyRepo.Property
	Package  packageRepo.Package
	Booking  bookingRepo.Booking
	Review   reviewRepo.Review
	Customer customerRepo.Customer
	Page     pageRepo.Page
	Media    mediaRepo.Media
	Menu     menuRepo.Menu
	Redirect redirectRepo.Redirect
}

type serviceImpl struct {
	repos Repositories
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repos Repositories, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Dashboard {
	return &serviceImpl{
		repos: repos,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// Stats gathers catalog, booking, review and customer counters concurrently.
// "This month" means the last 30 days and "this week" the last 7.
func (s *serviceImpl) Stats(ctx context.Context) (res dto.StatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Stats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheStats, &res); err == nil {
		return res, nil
	}

	now := timezone.Now()
	lastWeek := now.AddDate(0, 0, -weekDays)
	lastMonth := now.AddDate(0, 0, -monthDays)

	g, gctx := errgroup.WithContext(ctx)

	counters := []struct {
		target *int
		count  func(context.Context, gDto.FilterGroup) (int, error)
		filter gDto.FilterGroup
	}{
		{&res.Properties.Total, s.repos.Property.Count, gDto.FilterGroup{}},
		{&res.Properties.Featured, s.repos.Property.Count, shared.FilterByField(propertyModel.FieldIsFeatured, true, propertyModel.TableName)},
		{&res.Properties.ThisMonth, s.repos.Property.Count, createdSince(lastMonth, propertyModel.TableName)},
		{&res.Packages.Total, s.repos.Package.Count, gDto.FilterGroup{}},
		{&res.Packages.Featured, s.repos.Package.Count, shared.FilterByField(packageModel.FieldIsFeatured, true, packageModel.TableName)},
		{&res.Packages.ThisMonth, s.repos.Package.Count, createdSince(lastMonth, packageModel.TableName)},
		{&res.Bookings.ThisMonth, s.repos.Booking.Count, createdSince(lastMonth, bookingModel.TableName)},
		{&res.Customers.Total, s.repos.Customer.Count, gDto.FilterGroup{}},
		{&res.Customers.ThisMonth, s.repos.Customer.Count, createdSince(lastMonth, customerModel.TableName)},
	}

	for _, counter := range counters {
		g.Go(func() error {
			total, err := counter.count(gctx, counter.filter)
			if err != nil {
				return fmt.Errorf("failed to count dashboard figures: %w", err)
			}

			*counter.target = total

			return nil
		})
	}

	g.Go(func() error {
		summary, err := s.repos.Booking.Summary(gctx, lastWeek)
		if err != nil {
			return fmt.Errorf("failed to summarize bookings: %w", err)
		}

		res.Bookings.Total = summary.Total
		res.Bookings.Pending = summary.Pending
		res.Bookings.Confirmed = summary.Confirmed
		res.Bookings.ThisWeek = summary.Recent
		res.Bookings.Revenue = summary.Revenue

		return nil
	})

	g.Go(func() error {
		stats, err := s.repos.Review.Stats(gctx, lastMonth)
		if err != nil {
			return fmt.Errorf("failed to summarize reviews: %w", err)
		}

		res.Reviews = dto.ReviewStats{
			Total:         stats.Total,
			Approved:      stats.Approved,
			AverageRating: stats.AverageRating,
			ThisMonth:     stats.Recent,
		}

		return nil
	})

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to build dashboard stats")

		return dto.StatsResponse{}, err
	}

	res.LastUpdated = timezone.Format(now, time.RFC3339)

	go s.save(context.WithoutCancel(ctx), cacheStats, res)

	return res, nil
}

// ContentStats counts CMS content and lists the newest pages and media.
func (s *serviceImpl) ContentStats(ctx context.Context) (res dto.ContentStatsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ContentStats")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.cache.Get(ctx, cacheContentStats, &res); err == nil {
		return res, nil
	}

	g, gctx := errgroup.WithContext(ctx)

	counters := []struct {
		target *int
		count  func(context.Context, gDto.FilterGroup) (int, error)
		filter gDto.FilterGroup
	}{
		{&res.TotalPages, s.repos.Page.Count, gDto.FilterGroup{}},
		{&res.PublishedPages, s.repos.Page.Count, shared.FilterByField(pageModel.FieldStatus, pageModel.StatusPublished, pageModel.TableName)},
		{&res.DraftPages, s.repos.Page.Count, shared.FilterByField(pageModel.FieldStatus, pageModel.StatusDraft, pageModel.TableName)},
		{&res.TotalMedia, s.repos.Media.Count, gDto.FilterGroup{}},
		{&res.TotalMenus, s.repos.Menu.Count, gDto.FilterGroup{}},
		{&res.TotalRedirects, s.repos.Redirect.Count, gDto.FilterGroup{}},
	}

	for _, counter := range counters {
		g.Go(func() error {
			total, err := counter.count(gctx, counter.filter)
			if err != nil {
				return fmt.Errorf("failed to count content: %w", err)
			}

			*counter.target = total

			return nil
		})
	}

	newest := gDto.QueryParams{Page: 1, Limit: recentLimit, SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirDesc}

	g.Go(func() error {
		pages, err := s.repos.Page.GetAll(gctx, newest, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to get recent pages: %w", err)
		}

		res.RecentPages = make([]pageDto.PageResponse, len(pages))
		for i, page := range pages {
			res.RecentPages[i].FromModel(page)
		}

		return nil
	})

	g.Go(func() error {
		assets, err := s.repos.Media.GetAll(gctx, newest, gDto.FilterGroup{})
		if err != nil {
			return fmt.Errorf("failed to get recent media: %w", err)
		}

		res.RecentMedia = make([]mediaDto.MediaResponse, len(assets))
		for i, asset := range assets {
			res.RecentMedia[i].FromModel(asset)
		}

		return nil
	})

	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("failed to build content stats")

		return dto.ContentStatsResponse{}, err
	}

	go s.save(context.WithoutCancel(ctx), cacheContentStats, res)

	return res, nil
}

func (s *serviceImpl) save(ctx context.Context, cacheKey string, value any) {
	if err := s.cache.Save(ctx, cacheKey, value, s.cfg.Cache.TTL); err != nil {
		log.Error().Err(err).Str("cacheKey", cacheKey).Msg("failed to save dashboard figures to cache")
	}
}

func createdSince(since time.Time, table string) gDto.FilterGroup {
	return gDto.FilterGroup{Filters: []any{
		gDto.Filter{Field: constant.FieldCreatedAt, Operator: gDto.FilterOperatorGreaterEq, Value: since, Table: table},
	}}
}
