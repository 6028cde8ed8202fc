package menu_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atoll/infras/otel/mocks"
	"atoll/internal/domains/menu/model/dto"
	menuMocks "atoll/internal/domains/menu/service/mocks"
	"atoll/internal/handlers/menu"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*menuMocks.MockMenu, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := menuMocks.NewMockMenu(ctrl)
	router := chi.NewRouter()

	handler := menu.New(svc, mocks.NewOtel())
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

func TestHandler_CreateMenu(t *testing.T) {
	t.Run("created", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), dto.CreateMenuRequest{Name: "Main", Slug: "main"}).Return("menu-1", nil)

		recorder := serve(router, http.MethodPost, "/menus", `{"name":"Main","slug":"main"}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
	})

	t.Run("invalid slug never reaches the service", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPost, "/menus", `{"name":"Main","slug":"Main Menu"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("taken slug", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", failure.Conflict("menu slug already taken"))

		recorder := serve(router, http.MethodPost, "/menus", `{"name":"Main","slug":"main"}`)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestHandler_GetMenus(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMenusResponse, error) {
			where, args := filter.GetWhereClause()

			assert.Equal(t, "(menus.locale = :locale AND menus.is_active = :is_active)", where)
			assert.Equal(t, map[string]any{"locale": "ru", "is_active": true}, args)

			return dto.GetMenusResponse{}, nil
		})

	recorder := serve(router, http.MethodGet, "/menus?locale=ru&is_active=true", "")

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestHandler_GetMenuBySlug(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		GetBySlug(gomock.Any(), "main").
		Return(dto.MenuResponse{ID: "menu-1", Slug: "main", Items: []dto.MenuItemResponse{{ID: "home", Title: "Home"}}}, nil)

	recorder := serve(router, http.MethodGet, "/menus/slug/main", "")

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"title":"Home"`)
}

func TestHandler_Items(t *testing.T) {
	t.Run("update passes both ids", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			UpdateItem(gomock.Any(), gomock.Any(), "menu-1", "item-2").
			DoAndReturn(func(_ context.Context, req dto.UpdateMenuItemRequest, _, _ string) error {
				require.NotNil(t, req.ParentID)
				assert.Empty(t, *req.ParentID)

				return nil
			})

		recorder := serve(router, http.MethodPatch, "/menus/menu-1/items/item-2", `{"parent_id":""}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("cycle is a bad request", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().
			UpdateItem(gomock.Any(), gomock.Any(), "menu-1", "item-2").
			Return(failure.BadRequestFromString("parent item cannot be a descendant of the item"))

		recorder := serve(router, http.MethodPatch, "/menus/menu-1/items/item-2", `{"parent_id":"item-3"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown link type", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := serve(router, http.MethodPost, "/menus/menu-1/items", `{"title":"Mail","link_type":"mailto"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("delete", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().DeleteItem(gomock.Any(), "menu-1", "item-2").Return(nil)

		recorder := serve(router, http.MethodDelete, "/menus/menu-1/items/item-2", "")

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
