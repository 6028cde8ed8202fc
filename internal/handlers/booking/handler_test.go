package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atoll/infras/otel/mocks"
	"atoll/internal/domains/booking/model"
	"atoll/internal/domains/booking/model/dto"
	bookingMocks "atoll/internal/domains/booking/service/mocks"
	"atoll/internal/handlers/booking"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*bookingMocks.MockBooking, chi.Router) {
	service := bookingMocks.NewMockBooking(gomock.NewController(t))
	router := chi.NewRouter()

	handler := booking.New(service, mocks.NewOtel())
	handler.Router(router)

	return service, router
}

func serve(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

func TestHandler_CreateBooking(t *testing.T) {
	propertyID := uuid.NewString()

	valid := `{"property_id":"` + propertyID + `","customer_name":"Aminath","customer_email":"aminath@example.com",` +
		`"check_in_date":"2025-02-01","check_out_date":"2025-02-04","number_of_guests":2}`

	t.Run("created", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
				assert.Equal(t, propertyID, req.PropertyID)
				assert.Equal(t, 2, req.NumberOfGuests)

				return dto.BookingResponse{ID: "b-1", Nights: 3, TotalPrice: 300, Status: model.StatusPending}, nil
			})

		recorder := serve(router, http.MethodPost, "/bookings", valid)

		require.Equal(t, http.StatusCreated, recorder.Code)

		var body struct {
			Data dto.BookingResponse `json:"data"`
		}

		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&body))
		assert.Equal(t, "b-1", body.Data.ID)
		assert.Equal(t, model.StatusPending, body.Data.Status)
	})

	t.Run("invalid body never reaches the service", func(t *testing.T) {
		_, router := setup(t)

		recorder := serve(router, http.MethodPost, "/bookings", `{"property_id":"p-1","check_in_date":"01/02/2025"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("overlapping stay is rejected", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			Return(dto.BookingResponse{}, failure.BadRequestFromString("property is not available for the selected dates"))

		recorder := serve(router, http.MethodPost, "/bookings", valid)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "not available")
	})
}

func TestHandler_GetBookings(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, 2, params.Page)
			assert.Contains(t, where, "bookings.status = :status")
			assert.NotContains(t, where, "property_id")
			assert.Equal(t, "confirmed", args["status"])

			return dto.GetBookingsResponse{TotalData: 0}, nil
		})

	recorder := serve(router, http.MethodGet, "/bookings?page=2&status=confirmed", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_UpdateBookingStatus(t *testing.T) {
	t.Run("unknown status", func(t *testing.T) {
		_, router := setup(t)

		recorder := serve(router, http.MethodPatch, "/bookings/b-1/status", `{"status":"lost"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("forwards the path id", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().
			UpdateStatus(gomock.Any(), dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "b-1").
			Return(nil)

		recorder := serve(router, http.MethodPatch, "/bookings/b-1/status", `{"status":"confirmed"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestHandler_CancelBooking(t *testing.T) {
	t.Run("cancelled", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().Cancel(gomock.Any(), "b-1").Return(nil)

		recorder := serve(router, http.MethodPost, "/bookings/b-1/cancel", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Booking cancelled successfully")
	})

	t.Run("someone else's booking", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().Cancel(gomock.Any(), "b-2").Return(failure.NotFound("booking not found"))

		recorder := serve(router, http.MethodPost, "/bookings/b-2/cancel", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_GetSummary(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().Summary(gomock.Any()).Return(dto.SummaryResponse{TotalBookings: 7, TotalRevenue: 1250}, nil)

	recorder := serve(router, http.MethodGet, "/bookings/summary", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"total_bookings":7`)
}
