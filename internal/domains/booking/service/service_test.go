package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"atoll/config"
	kafkaMocks "atoll/infras/kafka/mocks"
	metricsMocks "atoll/infras/metrics/mocks"
	"atoll/infras/otel/mocks"
	"atoll/infras/postgres"
	pgMocks "atoll/infras/postgres/mocks"
	bookingMocks "atoll/internal/domains/booking/mocks"
	"atoll/internal/domains/booking/model"
	"atoll/internal/domains/booking/model/dto"
	"atoll/internal/domains/booking/service"
	propertyMocks "atoll/internal/domains/property/mocks"
	propertyModel "atoll/internal/domains/property/model"
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

const (
	propertyID = "6f1c1d1e-8d4e-4d6b-9a55-0c3e5b1a2f10"
	topic      = "atoll.booking.events"
)

type fixture struct {
	repo         *bookingMocks.MockBooking
	propertyRepo *propertyMocks.MockProperty
	transactor   *pgMocks.MockTransactor
	cache        *cacheMocks.MockRedisCache
	publisher    *kafkaMocks.MockPublisher
	svc          service.Booking
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:         bookingMocks.NewMockBooking(ctrl),
		propertyRepo: propertyMocks.NewMockProperty(ctrl),
		transactor:   pgMocks.NewMockTransactor(ctrl),
		cache:        cacheMocks.NewMockRedisCache(ctrl),
		publisher:    kafkaMocks.NewMockPublisher(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.App.Currency = "USD"
	cfg.Kafka.Topics.Booking = topic

	f.svc = service.New(f.repo, f.propertyRepo, f.transactor, cfg, f.cache, mocks.NewOtel(), f.publisher, metricsMocks.NewMetrics())

	f.transactor.EXPECT().
		WithTransaction(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn postgres.TxFunc) error {
			return fn(ctx, nil)
		}).
		AnyTimes()

	return f
}

func date(value string) time.Time {
	parsed, err := timezone.ParseDate(value)
	if err != nil {
		panic(err)
	}

	return parsed
}

func customerContext(id, email string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)
	ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, email)

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleCustomer)
}

func staffContext() context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "admin-1")

	return context.WithValue(ctx, constant.ContextKeyUserRole, constant.RoleAdmin)
}

func TestBookingService_CheckAvailability(t *testing.T) {
	property := propertyModel.Property{ID: propertyID, Name: "Sunset Villa", PricePerNight: 100}

	t.Run("free dates are priced per night", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(property, nil)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		res, err := f.svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
			PropertyID: propertyID,
			CheckIn:    "2025-01-10",
			CheckOut:   "2025-01-13",
		})

		require.NoError(t, err)
		assert.True(t, res.IsAvailable)
		assert.Equal(t, 3, res.Nights)
		assert.Equal(t, 300.0, res.TotalPrice)
		assert.Equal(t, 100.0, res.PricePerNight)
		assert.Equal(t, "Sunset Villa", res.PropertyName)
		assert.Equal(t, "USD", res.Currency)
		assert.Equal(t, "2025-01-10", res.CheckIn)
		assert.Equal(t, "2025-01-13", res.CheckOut)
	})

	t.Run("overlapping active booking blocks the stay", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(property, nil)
		f.repo.EXPECT().
			Exist(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (bool, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "bookings.check_in_date < :req_check_out")
				assert.Contains(t, where, "bookings.check_out_date > :req_check_in")
				assert.Contains(t, where, "bookings.status IN (:status_0, :status_1)")
				assert.Equal(t, "2025-02-06", args["req_check_out"])
				assert.Equal(t, "2025-02-04", args["req_check_in"])
				assert.Equal(t, "pending", args["status_0"])
				assert.Equal(t, "confirmed", args["status_1"])

				return true, nil
			})

		res, err := f.svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
			PropertyID: propertyID,
			CheckIn:    "2025-02-04",
			CheckOut:   "2025-02-06",
		})

		require.NoError(t, err)
		assert.False(t, res.IsAvailable)
		assert.Equal(t, 2, res.Nights)
	})

	invalid := []struct {
		name     string
		checkIn  string
		checkOut string
		message  string
	}{
		{name: "same day", checkIn: "2025-01-10", checkOut: "2025-01-10", message: "check-out date must be after check-in date"},
		{name: "reversed", checkIn: "2025-01-12", checkOut: "2025-01-10", message: "check-out date must be after check-in date"},
		{name: "missing", checkIn: "2025-01-10", checkOut: "", message: "check_in and check_out dates are required"},
		{name: "malformed", checkIn: "10/01/2025", checkOut: "2025-01-12", message: "Invalid date format. Use YYYY-MM-DD"},
		{name: "longer than a year", checkIn: "2025-01-10", checkOut: "2026-01-11", message: "stay cannot be longer than 365 nights"},
		{name: "four centuries", checkIn: "1700-01-01", checkOut: "2100-01-01", message: "stay cannot be longer than 365 nights"},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
				PropertyID: propertyID,
				CheckIn:    tt.checkIn,
				CheckOut:   tt.checkOut,
			})

			require.Error(t, err)
			assert.True(t, failure.HasCode(err, http.StatusBadRequest))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	t.Run("unknown property", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(propertyModel.Property{}, nil)

		_, err := f.svc.CheckAvailability(context.Background(), dto.CheckAvailabilityRequest{
			PropertyID: propertyID,
			CheckIn:    "2025-01-10",
			CheckOut:   "2025-01-11",
		})

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestBookingService_Create(t *testing.T) {
	req := dto.CreateBookingRequest{
		PropertyID:    propertyID,
		CustomerName:  "Aisha Ibrahim",
		CustomerEmail: "aisha@example.com",
		CheckInDate:   "2025-03-01",
		CheckOutDate:  "2025-03-05",
	}
	images := pq.StringArray{"https://cdn.example.com/property/villa.jpg"}
	property := propertyModel.Property{ID: propertyID, Name: "Sunset Villa", PricePerNight: 120, Images: images}

	t.Run("locks the property and inserts a pending booking", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(property, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				assert.Equal(t, model.StatusPending, booking.Status)
				assert.Equal(t, 480.0, booking.TotalPrice)
				assert.Equal(t, 1, booking.NumberOfGuests)
				require.NotNil(t, booking.CustomerID)
				assert.Equal(t, "customer-1", *booking.CustomerID)

				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), topic, gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.Create(customerContext("customer-1", "aisha@example.com"), req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 4, res.Nights)
		assert.Equal(t, 480.0, res.TotalPrice)
		assert.Equal(t, "Sunset Villa", res.Property.Name)
		assert.Equal(t, images[0], *res.Property.Image)
	})

	t.Run("anonymous booking is not linked to a customer", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(property, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, booking model.Booking) error {
				assert.Nil(t, booking.CustomerID)

				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), topic, gomock.Any()).Return(errors.New("broker down"))
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		_, err := f.svc.Create(context.Background(), req)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("overlap inside the transaction rejects the booking", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(property, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
		assert.Equal(t, "property is not available for the selected dates", err.Error())
	})

	t.Run("exclusion constraint violation is reported as unavailable", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(property, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: constant.PqErrorCodeExclusionViolation})

		_, err := f.svc.Create(context.Background(), req)

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("unknown property", func(t *testing.T) {
		f := newFixture(t)

		f.propertyRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(propertyModel.Property{}, nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("total above the price column range is rejected", func(t *testing.T) {
		f := newFixture(t)

		luxury := property
		luxury.PricePerNight = 9_000_000_000

		f.propertyRepo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(luxury, nil)
		f.repo.EXPECT().ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(context.Background(), req)

		require.Error(t, err)
		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
		assert.Equal(t, "total price exceeds the maximum allowed amount", err.Error())
	})

	t.Run("stay longer than a year never reaches the database", func(t *testing.T) {
		f := newFixture(t)

		long := req
		long.CheckOutDate = "2026-03-02"

		_, err := f.svc.Create(context.Background(), long)

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("check-out before check-in never reaches the database", func(t *testing.T) {
		f := newFixture(t)

		bad := req
		bad.CheckOutDate = "2025-02-27"

		_, err := f.svc.Create(context.Background(), bad)

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})
}

func TestBookingService_Get(t *testing.T) {
	owner := "customer-1"
	booking := model.Booking{
		ID:            "b-1",
		PropertyID:    propertyID,
		CustomerID:    &owner,
		CustomerEmail: "aisha@example.com",
		CheckInDate:   date("2025-03-01"),
		CheckOutDate:  date("2025-03-03"),
		Status:        model.StatusConfirmed,
	}

	t.Run("owner reads own booking", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), "booking:get:b-1", gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.cache.EXPECT().Save(gomock.Any(), "booking:get:b-1", gomock.Any(), 60).Return(nil)

		res, err := f.svc.Get(customerContext(owner, "aisha@example.com"), "b-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 2, res.Nights)
		assert.Equal(t, "2025-03-01", res.CheckInDate)
	})

	t.Run("matching email without the account link gets not found", func(t *testing.T) {
		f := newFixture(t)

		anonymous := booking
		anonymous.CustomerID = nil

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(anonymous, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Get(customerContext("customer-2", "aisha@example.com"), "b-1")

		time.Sleep(10 * time.Millisecond)

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("another customer gets not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(booking, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Get(customerContext("customer-2", "someone@example.com"), "b-1")

		time.Sleep(10 * time.Millisecond)

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		_, err := f.svc.Get(staffContext(), "b-404")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestBookingService_GetMine(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Count(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, filter gDto.FilterGroup) (int, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, "(bookings.customer_id = :customer_id)", where)
			assert.Equal(t, map[string]any{"customer_id": "customer-1"}, args)

			return 1, nil
		})
	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
			assert.Equal(t, constant.FieldCreatedAt, params.SortBy)
			assert.Equal(t, gDto.SortDirDesc, params.SortDir)

			return []model.Booking{{ID: "b-1"}}, nil
		})

	res, err := f.svc.GetMine(customerContext("customer-1", "aisha@example.com"), gDto.QueryParams{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Len(t, res.Bookings, 1)
}

func TestBookingService_GetMineWithoutAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.GetMine(context.Background(), gDto.QueryParams{Page: 1, Limit: 10})

	assert.True(t, failure.HasCode(err, http.StatusUnauthorized))
}

func TestBookingService_UpdateStatus(t *testing.T) {
	cancelled := model.Booking{
		ID:           "b-1",
		PropertyID:   propertyID,
		CheckInDate:  date("2025-02-01"),
		CheckOutDate: date("2025-02-05"),
		Status:       model.StatusCancelled,
	}

	t.Run("re-activating checks overlap excluding itself", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.propertyRepo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(propertyModel.Property{ID: propertyID}, nil)
		f.repo.EXPECT().
			ExistTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, filter gDto.FilterGroup) (bool, error) {
				where, args := filter.GetWhereClause()

				assert.Contains(t, where, "bookings.id != :id")
				assert.Equal(t, "b-1", args["id"])

				return true, nil
			})

		err := f.svc.UpdateStatus(staffContext(), dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "b-1")

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("moving between inactive statuses skips the overlap check", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(cancelled, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusCompleted, fields[model.FieldStatus])
				assert.Equal(t, "admin-1", fields[constant.FieldModifiedBy])

				return nil
			})
		f.publisher.EXPECT().Publish(gomock.Any(), topic, gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)

		err := f.svc.UpdateStatus(staffContext(), dto.UpdateStatusRequest{Status: model.StatusCompleted}, "b-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.UpdateStatus(staffContext(), dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "b-404")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestBookingService_Cancel(t *testing.T) {
	owner := "customer-1"

	tests := []struct {
		name      string
		status    model.Status
		ctx       context.Context
		anonymous bool
		wantErr   int
	}{
		{name: "owner cancels pending booking", status: model.StatusPending, ctx: customerContext(owner, "a@example.com")},
		{name: "staff cancels confirmed booking", status: model.StatusConfirmed, ctx: staffContext()},
		{name: "already cancelled", status: model.StatusCancelled, ctx: staffContext(), wantErr: http.StatusBadRequest},
		{name: "completed", status: model.StatusCompleted, ctx: staffContext(), wantErr: http.StatusBadRequest},
		{name: "not the owner", status: model.StatusPending, ctx: customerContext("customer-9", "z@example.com"), wantErr: http.StatusNotFound},
		{
			name:      "unrelated account with the booking email",
			status:    model.StatusPending,
			ctx:       customerContext("customer-42", "victim@example.com"),
			anonymous: true,
			wantErr:   http.StatusNotFound,
		},
		{name: "staff cancels anonymous booking", status: model.StatusPending, ctx: staffContext(), anonymous: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			current := model.Booking{ID: "b-1", CustomerID: &owner, CustomerEmail: "a@example.com", Status: tt.status}
			if tt.anonymous {
				current.CustomerID = nil
				current.CustomerEmail = "victim@example.com"
			}

			f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(current, nil)

			if tt.wantErr == 0 {
				f.repo.EXPECT().UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
				f.publisher.EXPECT().Publish(gomock.Any(), topic, gomock.Any()).Return(nil)
				f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
				f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := f.svc.Cancel(tt.ctx, "b-1")

			time.Sleep(10 * time.Millisecond)

			if tt.wantErr == 0 {
				require.NoError(t, err)

				return
			}

			assert.True(t, failure.HasCode(err, tt.wantErr))
		})
	}
}

func TestBookingService_Summary(t *testing.T) {
	f := newFixture(t)

	f.repo.EXPECT().
		Summary(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, since time.Time) (model.Summary, error) {
			assert.WithinDuration(t, timezone.Now().AddDate(0, 0, -30), since, time.Minute)

			return model.Summary{Total: 7, Pending: 2, Confirmed: 3, Completed: 1, Cancelled: 1, Recent: 4, Revenue: 1500}, nil
		})

	res, err := f.svc.Summary(staffContext())

	require.NoError(t, err)
	assert.Equal(t, 7, res.TotalBookings)
	assert.Equal(t, 3, res.ConfirmedBookings)
	assert.Equal(t, 4, res.RecentBookings)
	assert.Equal(t, 1500.0, res.TotalRevenue)
	assert.NotEmpty(t, res.LastUpdated)
}

func TestBookingService_Delete(t *testing.T) {
	t.Run("missing booking", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Delete(staffContext(), "b-404")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("deletes and clears caches", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.cache.EXPECT().Delete(gomock.Any(), "booking:get:b-1").Return(nil)

		err := f.svc.Delete(staffContext(), "b-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})
}
