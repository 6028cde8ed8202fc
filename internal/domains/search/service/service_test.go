package service_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"atoll/config"
	"atoll/infras/otel/mocks"
	locationMocks "atoll/internal/domains/location/mocks"
	locationModel "atoll/internal/domains/location/model"
	propertyMocks "atoll/internal/domains/property/mocks"
	propertyModel "atoll/internal/domains/property/model"
	"atoll/internal/domains/search/model/dto"
	"atoll/internal/domains/search/service"
	packageMocks "atoll/internal/domains/tourpackage/mocks"
	packageModel "atoll/internal/domains/tourpackage/model"
	cacheMocks "atoll/shared/cache/mocks"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	properties *propertyMocks.MockProperty
	packages   *packageMocks.MockPackage
	locations  *locationMocks.MockLocation
	cache      *cacheMocks.MockRedisCache
	svc        service.Search
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		properties: propertyMocks.NewMockProperty(ctrl),
		packages:   packageMocks.NewMockPackage(ctrl),
		locations:  locationMocks.NewMockLocation(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.properties, f.packages, f.locations, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestSearchService_Search(t *testing.T) {
	t.Run("matches every catalog", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.properties.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]propertyModel.Property, error) {
				where, args := filter.GetWhereClause()

				assert.Equal(t, service.ResultLimit, params.Limit)
				assert.Equal(t,
					`(LOWER(properties.name) LIKE LOWER(:q_name) ESCAPE '\'  OR `+
						`LOWER(properties.description) LIKE LOWER(:q_description) ESCAPE '\'  OR `+
						`LOWER(properties.address) LIKE LOWER(:q_address) ESCAPE '\' )`,
					where)
				assert.Equal(t, map[string]any{"q_name": "%Maafushi%", "q_description": "%Maafushi%", "q_address": "%Maafushi%"}, args)

				return []propertyModel.Property{{ID: "p-1", Name: "Maafushi Inn"}}, nil
			})
		f.packages.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]packageModel.Package, error) {
				where, _ := filter.GetWhereClause()

				assert.Contains(t, where, "LOWER(packages.name) LIKE LOWER(:q_name)")
				assert.Contains(t, where, "LOWER(packages.description) LIKE LOWER(:q_description)")

				return []packageModel.Package{{ID: "pkg-1", Name: "Maafushi Escape"}}, nil
			})
		f.locations.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]locationModel.Location, error) {
				where, _ := filter.GetWhereClause()

				assert.Contains(t, where, "LOWER(locations.island) LIKE LOWER(:q_island)")
				assert.Contains(t, where, "LOWER(locations.atoll) LIKE LOWER(:q_atoll)")

				return nil, nil
			})
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil)

		res, err := f.svc.Search(context.Background(), "  Maafushi ")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "Maafushi", res.Query)
		require.Len(t, res.Properties, 1)
		assert.Equal(t, "Maafushi Inn", res.Properties[0].Name)
		require.Len(t, res.Packages, 1)
		assert.NotNil(t, res.Locations)
		assert.Empty(t, res.Locations)
	})

	t.Run("cached results skip the database", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, key string, value any) error {
				assert.True(t, strings.HasPrefix(key, "search:query"))

				*value.(*dto.SearchResponse) = dto.SearchResponse{Query: "veli"}

				return nil
			})

		res, err := f.svc.Search(context.Background(), "veli")

		require.NoError(t, err)
		assert.Equal(t, "veli", res.Query)
	})

	t.Run("one failing catalog fails the search", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.properties.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		f.packages.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("connection reset"))
		f.locations.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := f.svc.Search(context.Background(), "reef")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to search packages")
	})

	invalid := []struct {
		name    string
		query   string
		message string
	}{
		{name: "empty", query: "", message: "Search query is required"},
		{name: "blank", query: "   ", message: "Search query is required"},
		{name: "too long", query: strings.Repeat("a", 101), message: "search query must be at most 100 characters"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Search(context.Background(), tt.query)

			require.Error(t, err)
			assert.True(t, failure.HasCode(err, http.StatusBadRequest))
			assert.Equal(t, tt.message, err.Error())
		})
	}
}
