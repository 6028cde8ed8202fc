package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"atoll/config"
	"atoll/infras/otel/mocks"
	"atoll/infras/postgres"
	pgMocks "atoll/infras/postgres/mocks"
	s3Mocks "atoll/infras/s3/mocks"
	propertyMocks "atoll/internal/domains/property/mocks"
	"atoll/internal/domains/property/model"
	"atoll/internal/domains/property/model/dto"
	"atoll/internal/domains/property/service"
	cacheMocks "atoll/shared/cache/mocks"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo        *propertyMocks.MockProperty
	amenityRepo *propertyMocks.MockPropertyAmenity
	transactor  *pgMocks.MockTransactor
	cache       *cacheMocks.MockRedisCache
	s3          *s3Mocks.MockS3
	svc         service.Property
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        propertyMocks.NewMockProperty(ctrl),
		amenityRepo: propertyMocks.NewMockPropertyAmenity(ctrl),
		transactor:  pgMocks.NewMockTransactor(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
		s3:          s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.amenityRepo, f.transactor, cfg, f.cache, mocks.NewOtel(), f.s3)

	f.transactor.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
			return fn(ctx, nil)
		}).
		AnyTimes()

	return f
}

func TestPropertyService_Create(t *testing.T) {
	req := dto.CreatePropertyRequest{
		Name:          "Coral Garden Guesthouse",
		Description:   "Beach-front rooms",
		PropertyType:  model.PropertyTypeGuesthouse,
		PricePerNight: 85,
		AmenityIDs:    []string{"a-1", "a-2"},
	}

	t.Run("inserts property and amenity links in one transaction", func(t *testing.T) {
		f := newFixture(t)

		var propertyID string

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, property model.Property) error {
				propertyID = property.ID
				assert.Equal(t, 85.0, property.PricePerNight)
				assert.NotNil(t, property.Images)

				return nil
			})
		f.amenityRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, links []model.PropertyAmenity) error {
				require.Len(t, links, 2)
				assert.Equal(t, propertyID, links[0].PropertyID)
				assert.Equal(t, "a-2", links[1].AmenityID)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		id, err := f.svc.Create(context.Background(), req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, propertyID, id)
	})

	t.Run("unknown amenity is a bad request", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.amenityRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		_, err := f.svc.Create(context.Background(), req)

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})
}

func TestPropertyService_Update(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).Return(model.Property{}, nil)

		err := f.svc.Update(context.Background(), dto.UpdatePropertyRequest{Name: "x"}, "missing")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("amenity list present replaces links", func(t *testing.T) {
		f := newFixture(t)
		amenities := []string{}

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).Return(model.Property{ID: "p-1"}, nil)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.amenityRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.amenityRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(0)).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.cache.EXPECT().Delete(gomock.Any(), "property:get:p-1").Return(nil)

		err := f.svc.Update(context.Background(), dto.UpdatePropertyRequest{AmenityIDs: &amenities}, "p-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("amenity list absent keeps links", func(t *testing.T) {
		f := newFixture(t)
		price := 120.0

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).Return(model.Property{ID: "p-1"}, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 120.0, fields[model.FieldPricePerNight])

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Update(context.Background(), dto.UpdatePropertyRequest{PricePerNight: &price}, "p-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}

func TestPropertyService_GetAll(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(2, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Property{{ID: "p-1"}, {ID: "p-2"}}, nil)
	f.amenityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.PropertyAmenity{
		{PropertyID: "p-2", AmenityID: "a-1", AmenityName: "Wifi"},
	}, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := f.svc.GetAll(context.Background(), params, gDto.FilterGroup{})

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	require.Len(t, res.Properties, 2)
	assert.Empty(t, res.Properties[0].Amenities)
	assert.Equal(t, "Wifi", res.Properties[1].Amenities[0].Name)
}

func TestPropertyService_DeleteImage(t *testing.T) {
	const url = "https://cdn.example.com/property/abc.jpg"

	t.Run("image not attached", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Property{ID: "p-1", Images: pq.StringArray{"https://cdn.example.com/property/other.jpg"}}, nil)

		err := f.svc.DeleteImage(context.Background(), dto.DeleteImageRequest{URL: url}, "p-1")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("removes url and object", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Property{ID: "p-1", Images: pq.StringArray{url}}, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Empty(t, fields[model.FieldImages])

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.s3.EXPECT().ObjectNameFromURL(model.ImageDirectory, url).Return("abc.jpg")
		f.s3.EXPECT().Delete(gomock.Any(), model.ImageDirectory, "abc.jpg").Return(nil)

		err := f.svc.DeleteImage(context.Background(), dto.DeleteImageRequest{URL: url}, "p-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
