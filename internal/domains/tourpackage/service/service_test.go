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
	packageMocks "atoll/internal/domains/tourpackage/mocks"
	"atoll/internal/domains/tourpackage/model"
	"atoll/internal/domains/tourpackage/model/dto"
	"atoll/internal/domains/tourpackage/service"
	cacheMocks "atoll/shared/cache/mocks"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo            *packageMocks.MockPackage
	propertyRepo    *packageMocks.MockProperty
	destinationRepo *packageMocks.MockDestination
	itineraryRepo   *packageMocks.MockItinerary
	inclusionRepo   *packageMocks.MockInclusion
	activityRepo    *packageMocks.MockActivity
	cache           *cacheMocks.MockRedisCache
	svc             service.Package
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:            packageMocks.NewMockPackage(ctrl),
		propertyRepo:    packageMocks.NewMockProperty(ctrl),
		destinationRepo: packageMocks.NewMockDestination(ctrl),
		itineraryRepo:   packageMocks.NewMockItinerary(ctrl),
		inclusionRepo:   packageMocks.NewMockInclusion(ctrl),
		activityRepo:    packageMocks.NewMockActivity(ctrl),
		cache:           cacheMocks.NewMockRedisCache(ctrl),
	}

	transactor := pgMocks.NewMockTransactor(ctrl)
	transactor.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
			return fn(ctx, nil)
		}).
		AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, f.propertyRepo, f.destinationRepo, f.itineraryRepo, f.inclusionRepo, f.activityRepo, transactor, cfg, f.cache, mocks.NewOtel())

	return f
}

func (f fixture) expectLock(current model.Package) {
	f.repo.EXPECT().
		GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(),
			model.FieldID, model.FieldStartDate, model.FieldEndDate, model.FieldGroupSizeMin, model.FieldGroupSizeMax).
		Return(current, nil)
}

func (f fixture) expectInvalidation() {
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func whereOf(filter gDto.FilterGroup) string {
	where, _ := filter.GetWhereClause()

	return where
}

func TestPackageService_Create(t *testing.T) {
	newRequest := func() dto.CreatePackageRequest {
		return dto.CreatePackageRequest{
			Name:        "Island Hopper",
			Description: "Five days across the atoll",
			Price:       1200,
			PropertyIDs: []string{"p-1"},
			Destinations: []dto.DestinationRequest{
				{LocationID: "l-1", DurationDays: 2},
				{LocationID: "l-2"},
				{LocationID: "l-3", DurationDays: 1},
			},
			Activities: []dto.ActivityRequest{
				{Name: "Snorkeling"},
				{Name: "Island Hopping", Category: "water"},
			},
			Experiences: []dto.ActivityRequest{
				{Name: "Sandbank Dinner", Category: "dining"},
			},
			Itinerary: []dto.ItineraryRequest{
				{Day: 1, Title: "Arrival", Activities: []string{"snorkeling"}, ActivityIDs: []string{"1", "2", "9"}},
			},
			Inclusions: []dto.InclusionRequest{
				{Category: model.InclusionIncluded, Item: "Breakfast"},
			},
		}
	}

	t.Run("writes the package and every child in one transaction", func(t *testing.T) {
		f := newFixture(t)

		var packageID string

		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, pkg model.Package) error {
				packageID = pkg.ID
				assert.Equal(t, 1, pkg.Duration)
				assert.Equal(t, model.DifficultyEasy, pkg.DifficultyLevel)
				assert.Equal(t, 1, pkg.GroupSizeMin)
				assert.Equal(t, 10, pkg.GroupSizeMax)

				return nil
			})
		f.propertyRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, links []model.PackageProperty) error {
				require.Len(t, links, 1)
				assert.Equal(t, packageID, links[0].PackageID)

				return nil
			})
		f.activityRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, activities []model.Activity) error {
				require.Len(t, activities, 2)
				assert.Equal(t, "water", activities[1].Category)
				assert.True(t, activities[0].Included)

				return nil
			})
		f.activityRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, activities []model.Activity) error {
				require.Len(t, activities, 1)
				assert.Equal(t, model.CategoryExperience, activities[0].Category)

				return nil
			})
		f.destinationRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, destinations []model.Destination) error {
				require.Len(t, destinations, 3)

				for i, destination := range destinations {
					assert.Equal(t, i, destination.Position)
				}

				assert.Equal(t, 1, destinations[1].DurationDays)

				return nil
			})
		f.itineraryRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, days []model.ItineraryDay) error {
				require.Len(t, days, 1)
				assert.Equal(t, []string{"snorkeling", "Island Hopping"}, []string(days[0].Activities))

				return nil
			})
		f.inclusionRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		id, err := f.svc.Create(context.Background(), newRequest())

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, packageID, id)
	})

	t.Run("experience category in activities is rejected", func(t *testing.T) {
		f := newFixture(t)
		req := newRequest()
		req.Activities = append(req.Activities, dto.ActivityRequest{Name: "Dolphin Cruise", Category: "Experience"})

		_, err := f.svc.Create(context.Background(), req)

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("start after end is rejected", func(t *testing.T) {
		f := newFixture(t)
		req := newRequest()
		req.StartDate = "2025-06-10"
		req.EndDate = "2025-06-01"

		_, err := f.svc.Create(context.Background(), req)

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("unknown location rolls back as bad request", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.propertyRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.activityRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.destinationRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		_, err := f.svc.Create(context.Background(), newRequest())

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})
}

func TestPackageService_Update(t *testing.T) {
	current := model.Package{ID: "pkg-1", GroupSizeMin: 2, GroupSizeMax: 8}

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)
		f.expectLock(model.Package{})

		err := f.svc.Update(context.Background(), dto.UpdatePackageRequest{Name: "x"}, "missing")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("activities replace keeps experience rows", func(t *testing.T) {
		f := newFixture(t)
		activities := []dto.ActivityRequest{{Name: "Kayaking"}}

		f.expectLock(current)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.activityRepo.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
				assert.Contains(t, whereOf(filter), "package_activities.category != :category")

				return nil
			})
		f.activityRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(1)).Return(nil)
		f.expectInvalidation()

		err := f.svc.Update(context.Background(), dto.UpdatePackageRequest{Activities: &activities}, "pkg-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("experiences replace touches only experience rows", func(t *testing.T) {
		f := newFixture(t)
		experiences := []dto.ActivityRequest{}

		f.expectLock(current)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.activityRepo.EXPECT().
			DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
				assert.Contains(t, whereOf(filter), "package_activities.category = :category")

				return nil
			})
		f.activityRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(0)).Return(nil)
		f.expectInvalidation()

		err := f.svc.Update(context.Background(), dto.UpdatePackageRequest{Experiences: &experiences}, "pkg-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("itinerary resolves existing activity ids", func(t *testing.T) {
		f := newFixture(t)
		itinerary := []dto.ItineraryRequest{
			{Day: 2, Title: "Lagoon day", Activities: []string{"kayaking"}, ActivityIDs: []string{"act-1", "act-2", "3"}},
		}

		gomock.InOrder(
			f.repo.EXPECT().
				GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(current, nil),
			f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil),
			f.activityRepo.EXPECT().
				GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Activity, error) {
					assert.Equal(t, "(package_activities.package_id = :package_id)", whereOf(filter))

					return []model.Activity{
						{ID: "act-1", Name: "Kayaking"},
						{ID: "act-2", Name: "Sunset Cruise"},
					}, nil
				}),
		)
		f.itineraryRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.itineraryRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, days []model.ItineraryDay) error {
				require.Len(t, days, 1)
				assert.Equal(t, "pkg-1", days[0].PackageID)
				assert.Equal(t, []string{"kayaking", "Sunset Cruise"}, []string(days[0].Activities))

				return nil
			})
		f.expectInvalidation()

		err := f.svc.Update(context.Background(), dto.UpdatePackageRequest{Itinerary: &itinerary}, "pkg-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("itinerary mixes stored ids and payload positions", func(t *testing.T) {
		f := newFixture(t)
		activities := []dto.ActivityRequest{{Name: "Night Fishing"}, {Name: "Dolphin Watch"}}
		itinerary := []dto.ItineraryRequest{
			{Day: 1, Title: "Open water", ActivityIDs: []string{"2", "act-1", "7", "1"}},
			{Day: 2, Title: "Rest", ActivityIDs: []string{"act-9"}},
		}

		f.expectLock(current)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.activityRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Activity{{ID: "act-1", Name: "Kayaking"}}, nil)
		f.activityRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.activityRepo.EXPECT().InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(2)).Return(nil)
		f.itineraryRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.itineraryRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, days []model.ItineraryDay) error {
				require.Len(t, days, 2)
				assert.Equal(t, []string{"Dolphin Watch", "Kayaking", "Night Fishing"}, []string(days[0].Activities))
				assert.Empty(t, days[1].Activities)

				return nil
			})
		f.expectInvalidation()

		err := f.svc.Update(context.Background(), dto.UpdatePackageRequest{Activities: &activities, Itinerary: &itinerary}, "pkg-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("destinations are replaced as a whole", func(t *testing.T) {
		f := newFixture(t)
		destinations := []dto.DestinationRequest{
			{LocationID: "l-4", DurationDays: 3},
			{LocationID: "l-5"},
			{LocationID: "l-6", DurationDays: 1},
		}

		f.expectLock(current)
		f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		gomock.InOrder(
			f.destinationRepo.EXPECT().
				DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) error {
					where, args := filter.GetWhereClause()

					assert.Equal(t, "(package_destinations.package_id = :package_id)", where)
					assert.Equal(t, "pkg-1", args[model.FieldPackageID])

					return nil
				}),
			f.destinationRepo.EXPECT().
				InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Len(len(destinations))).
				DoAndReturn(func(_ context.Context, _ *sqlx.Tx, rows []model.Destination) error {
					for i, row := range rows {
						assert.Equal(t, "pkg-1", row.PackageID)
						assert.Equal(t, destinations[i].LocationID, row.LocationID)
					}

					return nil
				}),
		)
		f.expectInvalidation()

		err := f.svc.Update(context.Background(), dto.UpdatePackageRequest{Destinations: &destinations}, "pkg-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("absent collections are untouched", func(t *testing.T) {
		f := newFixture(t)
		price := 950.0

		f.expectLock(current)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 950.0, fields[model.FieldPrice])

				return nil
			})
		f.expectInvalidation()

		err := f.svc.Update(context.Background(), dto.UpdatePackageRequest{Price: &price}, "pkg-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})

	t.Run("group size checked against stored bounds", func(t *testing.T) {
		f := newFixture(t)
		minSize := 12

		f.expectLock(current)

		err := f.svc.Update(context.Background(), dto.UpdatePackageRequest{GroupSizeMin: &minSize}, "pkg-1")

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})
}

func TestPackageService_GetByProperty(t *testing.T) {
	params := gDto.QueryParams{Page: 1, Limit: 10}

	t.Run("lists the linked packages", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().
			GetAll(gomock.Any(), gDto.QueryParams{}, gomock.Any(), model.FieldPackageID).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.PackageProperty, error) {
				assert.Equal(t, "(package_properties.property_id = :property_id)", whereOf(filter))

				return []model.PackageProperty{{PackageID: "pkg-1"}, {PackageID: "pkg-2"}}, nil
			})
		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss")).Times(2)
		f.repo.EXPECT().
			Count(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
				where, args := filter.GetWhereClause()

				assert.Equal(t, "(packages.id IN (:id_0, :id_1) )", where)
				assert.Equal(t, map[string]any{"id_0": "pkg-1", "id_1": "pkg-2"}, args)

				return 2, nil
			})
		f.repo.EXPECT().GetAll(gomock.Any(), params, gomock.Any()).Return([]model.Package{{ID: "pkg-1"}, {ID: "pkg-2"}}, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.GetByProperty(context.Background(), params, "p-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, res.TotalData)
		assert.Len(t, res.Packages, 2)
	})

	t.Run("property without packages", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetByProperty(context.Background(), params, "p-404")

		require.NoError(t, err)
		assert.Zero(t, res.TotalData)
		assert.Empty(t, res.Packages)
	})
}

func TestPackageService_Get(t *testing.T) {
	t.Run("assembles the composition", func(t *testing.T) {
		f := newFixture(t)
		start := time.Date(2025, 6, 1, 0, 0, 0, 0, timezone.GetLocation())

		f.cache.EXPECT().Get(gomock.Any(), "package:get:pkg-1", gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{ID: "pkg-1", Name: "Island Hopper", StartDate: &start}, nil)
		f.propertyRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.PackageProperty{
			{PackageID: "pkg-1", PropertyID: "p-1", PropertyName: "Coral Garden"},
		}, nil)
		f.destinationRepo.EXPECT().
			GetAll(gomock.Any(), gDto.QueryParams{SortBy: model.FieldPosition, SortDir: gDto.SortDirAsc}, gomock.Any()).
			Return([]model.Destination{{ID: "d-1", LocationName: "Maafushi", Position: 0}}, nil)
		f.itineraryRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.ItineraryDay{
			{ID: "i-1", Day: 1, Activities: pq.StringArray{"SNORKELING", "Beach Walk"}},
		}, nil)
		f.inclusionRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Inclusion{}, nil)
		f.activityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return([]model.Activity{
			{ID: "a-1", Name: "Snorkeling"},
			{ID: "a-2", Name: "Sandbank Dinner", Category: model.CategoryExperience},
		}, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Get(context.Background(), "pkg-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "2025-06-01", res.StartDate)
		assert.Equal(t, "Coral Garden", res.Properties[0].Name)
		assert.Len(t, res.Activities, 1)
		assert.Len(t, res.Experiences, 1)
		require.Len(t, res.Itinerary, 1)
		require.Len(t, res.Itinerary[0].ActivityDetails, 1)
		assert.Equal(t, "a-1", res.Itinerary[0].ActivityDetails[0].ID)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("child load failure", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Package{ID: "pkg-1"}, nil)
		f.propertyRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		f.destinationRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("db down")).AnyTimes()
		f.itineraryRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		f.inclusionRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
		f.activityRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()

		_, err := f.svc.Get(context.Background(), "pkg-1")

		assert.Error(t, err)
	})
}

func TestPackageService_Delete(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("deletes and invalidates", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.expectInvalidation()

		err := f.svc.Delete(context.Background(), "pkg-1")

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
	})
}
