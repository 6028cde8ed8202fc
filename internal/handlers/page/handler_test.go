package page_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atoll/infras/otel/mocks"
	"atoll/internal/domains/page/model/dto"
	pageMocks "atoll/internal/domains/page/service/mocks"
	"atoll/internal/handlers/page"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*pageMocks.MockPage, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := pageMocks.NewMockPage(ctrl)
	router := chi.NewRouter()

	handler := page.New(svc, mocks.NewOtel())
	handler.Router(router)

	return svc, router
}

func serve(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(recorder, request)

	return recorder
}

func TestHandler_CreatePage(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.CreatePageRequest) (string, error) {
				assert.Equal(t, "About", req.Title)

				return "p-1", nil
			})

		recorder := serve(router, http.MethodPost, "/pages", `{"title":"About"}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"p-1"`)
	})

	t.Run("bad slug", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPost, "/pages", `{"title":"About","slug":"About Us"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("slug conflict", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", failure.Conflict("a page with this slug already exists"))

		recorder := serve(router, http.MethodPost, "/pages", `{"title":"About","slug":"about"}`)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestHandler_GetPages(t *testing.T) {
	svc, router := newRouter(t)
	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPagesResponse, error) {
			where, args := filter.GetWhereClause()

			assert.Contains(t, where, "pages.status = :status")
			assert.Contains(t, where, "pages.is_home = :is_home")
			assert.Equal(t, true, args["is_home"])

			return dto.GetPagesResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/pages?status=published&is_home=true", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetPageBySlug(t *testing.T) {
	t.Run("passes the locale through", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().GetBySlug(gomock.Any(), "about", "ru").Return(dto.PageResponse{ID: "p-1"}, nil)

		recorder := serve(router, http.MethodGet, "/pages/slug/about?locale=ru", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("unknown locale", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodGet, "/pages/slug/about?locale=xx", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("not live", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().GetBySlug(gomock.Any(), "draft", "").Return(dto.PageResponse{}, failure.NotFound("page not found"))

		recorder := serve(router, http.MethodGet, "/pages/slug/draft", "")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}

func TestHandler_ReorderBlocks(t *testing.T) {
	t.Run("duplicate ids are rejected before the service", func(t *testing.T) {
		_, router := newRouter(t)
		id := "6f1d2b9c-4a51-4f0e-9a63-0b6f5a1c2d3e"

		recorder := serve(router, http.MethodPut, "/pages/p-1/blocks/order", `{"block_ids":["`+id+`","`+id+`"]}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("reordered", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().ReorderBlocks(gomock.Any(), gomock.Any(), "p-1").Return(nil)

		recorder := serve(router, http.MethodPut, "/pages/p-1/blocks/order",
			`{"block_ids":["6f1d2b9c-4a51-4f0e-9a63-0b6f5a1c2d3e","0c7e8d1a-2b3c-4d5e-8f90-a1b2c3d4e5f6"]}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestHandler_PublishPage(t *testing.T) {
	svc, router := newRouter(t)
	svc.EXPECT().Publish(gomock.Any(), "p-1").Return(dto.VersionResponse{VersionNumber: 2}, nil)

	recorder := serve(router, http.MethodPost, "/pages/p-1/publish", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"version_number":2`)
}

func TestHandler_GetVersion(t *testing.T) {
	t.Run("numeric version", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().GetVersion(gomock.Any(), "p-1", 3).Return(dto.VersionResponse{VersionNumber: 3}, nil)

		recorder := serve(router, http.MethodGet, "/pages/p-1/versions/3", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("non numeric version", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodGet, "/pages/p-1/versions/latest", "")

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("restore", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().RestoreVersion(gomock.Any(), "p-1", 1).Return(nil)

		recorder := serve(router, http.MethodPost, "/pages/p-1/versions/1/restore", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestHandler_CompleteReview(t *testing.T) {
	t.Run("pending is not an outcome", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPatch, "/pages/p-1/reviews/r-1", `{"status":"pending"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("approved", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().CompleteReview(gomock.Any(), gomock.Any(), "p-1", "r-1").Return(nil)

		recorder := serve(router, http.MethodPatch, "/pages/p-1/reviews/r-1", `{"status":"approved","comments":"ship it"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestHandler_Threads(t *testing.T) {
	t.Run("resolve", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().ResolveThread(gomock.Any(), "p-1", "t-1", true).Return(nil)

		recorder := serve(router, http.MethodPost, "/pages/p-1/threads/t-1/resolve", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("reopen", func(t *testing.T) {
		svc, router := newRouter(t)
		svc.EXPECT().ResolveThread(gomock.Any(), "p-1", "t-1", false).Return(nil)

		recorder := serve(router, http.MethodPost, "/pages/p-1/threads/t-1/reopen", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("comment needs content", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPost, "/pages/p-1/threads/t-1/comments", `{"mentions":["ayu"]}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}
