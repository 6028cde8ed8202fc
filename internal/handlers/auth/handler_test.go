package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"atoll/infras/otel/mocks"
	"atoll/internal/domains/auth/model/dto"
	authMocks "atoll/internal/domains/auth/service/mocks"
	"atoll/internal/handlers/auth"
	"atoll/shared/failure"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func setup(t *testing.T) (*authMocks.MockAuth, chi.Router) {
	service := authMocks.NewMockAuth(gomock.NewController(t))
	router := chi.NewRouter()

	handler := auth.New(service, mocks.NewOtel())
	handler.Router(router)

	return service, router
}

func post(router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(method, target, strings.NewReader(body)))

	return recorder
}

func TestHandler_Register(t *testing.T) {
	t.Run("returns a token pair", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().
			Register(gomock.Any(), dto.RegisterRequest{Email: "ibrahim@example.com", Password: "atoll2025", Name: "Ibrahim"}).
			Return(dto.AuthResponse{AccessToken: "access", RefreshToken: "refresh", TokenType: "Bearer"}, nil)

		recorder := post(router, http.MethodPost, "/auth/register",
			`{"email":"ibrahim@example.com","password":"atoll2025","name":"Ibrahim"}`)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"access_token":"access"`)
	})

	t.Run("email already registered", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().Register(gomock.Any(), gomock.Any()).Return(dto.AuthResponse{}, failure.Conflict("email is already registered"))

		recorder := post(router, http.MethodPost, "/auth/register",
			`{"email":"ibrahim@example.com","password":"atoll2025","name":"Ibrahim"}`)

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		_, router := setup(t)

		recorder := post(router, http.MethodPost, "/auth/register", `{"email":"ibrahim@example.com","password":"atoll2025"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "name is required")
	})
}

func TestHandler_Login(t *testing.T) {
	t.Run("wrong credentials", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().Login(gomock.Any(), gomock.Any()).Return(dto.AuthResponse{}, failure.Unauthorized("invalid email or password"))

		recorder := post(router, http.MethodPost, "/auth/login", `{"email":"ibrahim@example.com","password":"nope"}`)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, router := setup(t)

		recorder := post(router, http.MethodPost, "/auth/login", `{"email":`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_RefreshToken(t *testing.T) {
	service, router := setup(t)

	service.EXPECT().
		RefreshToken(gomock.Any(), dto.RefreshTokenRequest{RefreshToken: "refresh"}).
		Return(dto.AuthResponse{AccessToken: "rotated"}, nil)

	recorder := post(router, http.MethodPost, "/auth/refresh", `{"refresh_token":"refresh"}`)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "rotated")
}

func TestHandler_ChangePassword(t *testing.T) {
	t.Run("same password rejected before the service", func(t *testing.T) {
		_, router := setup(t)

		recorder := post(router, http.MethodPatch, "/auth/password", `{"current_password":"atoll2025","new_password":"atoll2025"}`)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("changed", func(t *testing.T) {
		service, router := setup(t)

		service.EXPECT().
			ChangePassword(gomock.Any(), dto.ChangePasswordRequest{CurrentPassword: "atoll2025", NewPassword: "lagoon2026"}).
			Return(nil)

		recorder := post(router, http.MethodPatch, "/auth/password", `{"current_password":"atoll2025","new_password":"lagoon2026"}`)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
