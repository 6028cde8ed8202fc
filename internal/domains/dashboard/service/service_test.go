package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"atoll/config"
	"atoll/infras/otel/mocks"
	bookingMocks "atoll/internal/domains/booking/mocks"
	bookingModel "atoll/internal/domains/booking/model"
	customerMocks "atoll/internal/domains/customer/mocks"
	"atoll/internal/domains/dashboard/model/dto"
	"atoll/internal/domains/dashboard/service"
	mediaMocks "atoll/internal/domains/media/mocks"
	mediaModel "atoll/internal/domains/media/model"
	menuMocks "atoll/internal/domains/menu/mocks"
	pageMocks "atoll/internal/domains/page/mocks"
	pageModel "atoll/internal/domains/page/model"
	propertyMocks "atoll/internal/domains/property/mocks"
	redirectMocks "atoll/internal/domains/redirect/mocks"
	reviewMocks "atoll/internal/domains/review/mocks"
	reviewModel "atoll/internal/domains/review/model"
	packageMocks "atoll/internal/domains/tourpackage/mocks"
	cacheMocks "atoll/shared/cache/mocks"
	gDto "atoll/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	properties *propertyMocks.MockProperty
	packages   *packageMocks.MockPackage
	bookings   *bookingMocks.MockBooking
	reviews    *reviewMocks.MockReview
	customers  *customerMocks.MockCustomer
	pages      *pageMocks.MockPage
	media      *mediaMocks.MockMedia
	menus      *menuMocks.MockMenu
	redirects  *redirectMocks.MockRedirect
	cache      *cacheMocks.MockRedisCache
	svc        service.Dashboard
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		properties: propertyMocks.NewMockProperty(ctrl),
		packages:   packageMocks.NewMockPackage(ctrl),
		bookings:   bookingMocks.NewMockBooking(ctrl),
		reviews:    reviewMocks.NewMockReview(ctrl),
		customers:  customerMocks.NewMockCustomer(ctrl),
		pages:      pageMocks.NewMockPage(ctrl),
		media:      mediaMocks.NewMockMedia(ctrl),
		menus:      menuMocks.NewMockMenu(ctrl),
		redirects:  redirectMocks.NewMockRedirect(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(service.Repositories{
		Property: f.properties,
		Package:  f.packages,
		Booking:  f.bookings,
		Review:   f.reviews,
		Customer: f.customers,
		Page:     f.pages,
		Media:    f.media,
		Menu:     f.menus,
		Redirect: f.redirects,
	}, cfg, f.cache, mocks.NewOtel())

	return f
}

// counts answers Count by matching a fragment of the rendered where clause.
// An empty fragment matches an unfiltered count.
func counts(t *testing.T, byFragment map[string]int) func(context.Context, gDto.FilterGroup) (int, error) {
	return func(_ context.Context, filter gDto.FilterGroup) (int, error) {
		where, _ := filter.GetWhereClause()

		for fragment, total := range byFragment {
			if fragment == "" && where == "" {
				return total, nil
			}

			if fragment != "" && strings.Contains(where, fragment) {
				return total, nil
			}
		}

		t.Errorf("unexpected count filter %q", where)

		return 0, nil
	}
}

func TestDashboardService_Stats(t *testing.T) {
	t.Run("aggregates every source", func(t *testing.T) {
		f := newFixture(t)
		before := time.Now()

		f.cache.EXPECT().Get(gomock.Any(), "dashboard:stats", gomock.Any()).Return(errors.New("miss"))
		f.properties.EXPECT().Count(gomock.Any(), gomock.Any()).Times(3).
			DoAndReturn(counts(t, map[string]int{"": 12, "properties.is_featured": 3, "properties.created_at": 2}))
		f.packages.EXPECT().Count(gomock.Any(), gomock.Any()).Times(3).
			DoAndReturn(counts(t, map[string]int{"": 8, "packages.is_featured": 1, "packages.created_at": 4}))
		f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).
			DoAndReturn(counts(t, map[string]int{"bookings.created_at": 9}))
		f.customers.EXPECT().Count(gomock.Any(), gomock.Any()).Times(2).
			DoAndReturn(counts(t, map[string]int{"": 40, "customers.created_at": 6}))
		f.bookings.EXPECT().Summary(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, since time.Time) (bookingModel.Summary, error) {
				assert.WithinDuration(t, before.AddDate(0, 0, -7), since, time.Minute)

				return bookingModel.Summary{Total: 20, Pending: 5, Confirmed: 11, Recent: 3, Revenue: 4500.5}, nil
			})
		f.reviews.EXPECT().Stats(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, since time.Time) (reviewModel.Stats, error) {
				assert.WithinDuration(t, before.AddDate(0, 0, -30), since, time.Minute)

				return reviewModel.Stats{Total: 15, Approved: 10, Recent: 4, AverageRating: 4.5}, nil
			})
		f.cache.EXPECT().Save(gomock.Any(), "dashboard:stats", gomock.Any(), 60).Return(nil)

		res, err := f.svc.Stats(context.Background())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, dto.CatalogStats{Total: 12, Featured: 3, ThisMonth: 2}, res.Properties)
		assert.Equal(t, dto.CatalogStats{Total: 8, Featured: 1, ThisMonth: 4}, res.Packages)
		assert.Equal(t, dto.BookingStats{Total: 20, Pending: 5, Confirmed: 11, ThisWeek: 3, ThisMonth: 9, Revenue: 4500.5}, res.Bookings)
		assert.Equal(t, dto.ReviewStats{Total: 15, Approved: 10, AverageRating: 4.5, ThisMonth: 4}, res.Reviews)
		assert.Equal(t, dto.CustomerStats{Total: 40, ThisMonth: 6}, res.Customers)
		assert.NotEmpty(t, res.LastUpdated)
	})

	t.Run("served from cache", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "dashboard:stats", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				value.(*dto.StatsResponse).Customers.Total = 7

				return nil
			})

		res, err := f.svc.Stats(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 7, res.Customers.Total)
	})

	t.Run("source failure", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.properties.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
		f.packages.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
		f.bookings.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
		f.customers.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil).AnyTimes()
		f.bookings.EXPECT().Summary(gomock.Any(), gomock.Any()).Return(bookingModel.Summary{}, nil).AnyTimes()
		f.reviews.EXPECT().Stats(gomock.Any(), gomock.Any()).Return(reviewModel.Stats{}, assert.AnError)

		res, err := f.svc.Stats(context.Background())

		require.ErrorIs(t, err, assert.AnError)
		assert.Equal(t, dto.StatsResponse{}, res)
	})
}

func TestDashboardService_ContentStats(t *testing.T) {
	t.Run("counts content and lists the newest", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "dashboard:content", gomock.Any()).Return(errors.New("miss"))
		f.pages.EXPECT().Count(gomock.Any(), gomock.Any()).Times(3).
			DoAndReturn(counts(t, map[string]int{"": 10, "pages.status": 0}))
		f.media.EXPECT().Count(gomock.Any(), gomock.Any()).Return(25, nil)
		f.menus.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
		f.redirects.EXPECT().Count(gomock.Any(), gomock.Any()).Return(4, nil)
		f.pages.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]pageModel.Page, error) {
				assert.Equal(t, gDto.QueryParams{Page: 1, Limit: 5, SortBy: "created_at", SortDir: gDto.SortDirDesc}, params)

				return []pageModel.Page{{ID: "page-1", Title: "About"}}, nil
			})
		f.media.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]mediaModel.MediaAsset{{ID: "media-1", FileName: "lagoon.jpg"}}, nil)
		f.cache.EXPECT().Save(gomock.Any(), "dashboard:content", gomock.Any(), 60).Return(nil)

		res, err := f.svc.ContentStats(context.Background())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 10, res.TotalPages)
		assert.Equal(t, 25, res.TotalMedia)
		assert.Equal(t, 2, res.TotalMenus)
		assert.Equal(t, 4, res.TotalRedirects)
		require.Len(t, res.RecentPages, 1)
		assert.Equal(t, "About", res.RecentPages[0].Title)
		require.Len(t, res.RecentMedia, 1)
		assert.Equal(t, "lagoon.jpg", res.RecentMedia[0].FileName)
	})

	t.Run("splits pages by status", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.pages.EXPECT().Count(gomock.Any(), gomock.Any()).Times(3).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				_, args := filter.GetWhereClause()

				switch args["status"] {
				case pageModel.StatusPublished:
					return 6, nil
				case pageModel.StatusDraft:
					return 3, nil
				}

				return 10, nil
			})
		f.media.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.menus.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.redirects.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		f.pages.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.media.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.ContentStats(context.Background())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 10, res.TotalPages)
		assert.Equal(t, 6, res.PublishedPages)
		assert.Equal(t, 3, res.DraftPages)
		assert.Empty(t, res.RecentPages)
	})
}
