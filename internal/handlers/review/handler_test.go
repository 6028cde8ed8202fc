package review_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atoll/infras/otel/mocks"
	"atoll/internal/domains/review/model/dto"
	reviewMocks "atoll/internal/domains/review/service/mocks"
	"atoll/internal/handlers/review"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*reviewMocks.MockReview, chi.Router) {
	service := reviewMocks.NewMockReview(gomock.NewController(t))
	router := chi.NewRouter()

	handler := review.New(service, mocks.NewOtel())
	handler.Router(router)

	return service, router
}

func serve(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

func TestHandler_CreateReview(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreateReviewRequest) (string, error) {
				require.NotNil(t, req.PropertyID)
				assert.Equal(t, "p-1", *req.PropertyID)
				assert.Equal(t, 5, req.Rating)

				return "r-1", nil
			})

		recorder := serve(router, http.MethodPost, "/reviews", `{"property_id":"p-1","name":"Ali","rating":5,"comment":"Great stay"}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("two targets never reach the service", func(t *testing.T) {
		_, router := setup(t)

		recorder := serve(router, http.MethodPost, "/reviews",
			`{"property_id":"p-1","package_id":"pkg-1","name":"Ali","rating":5,"comment":"Great"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown target", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", failure.NotFound("property not found"))

		recorder := serve(router, http.MethodPost, "/reviews", `{"property_id":"p-404","name":"Ali","rating":2,"comment":"Hmm"}`)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_GetReviews(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetReviewsResponse, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, "(reviews.package_id = :package_id AND reviews.approved = :approved)", where)
			assert.Equal(t, false, args["approved"])

			return dto.GetReviewsResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/reviews?package_id=pkg-1&approved=false", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_SetApproval(t *testing.T) {
	t.Run("approves", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().
			SetApproval(gomock.Any(), gomock.Any(), "r-1").
			DoAndReturn(func(_ context.Context, req dto.ApprovalRequest, _ string) error {
				require.NotNil(t, req.Approved)
				assert.True(t, *req.Approved)

				return nil
			})

		recorder := serve(router, http.MethodPatch, "/reviews/r-1/approval", `{"approved":true}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("missing flag", func(t *testing.T) {
		_, router := setup(t)

		recorder := serve(router, http.MethodPatch, "/reviews/r-1/approval", `{}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
