package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"atoll/config"
	"atoll/infras/jwt"
	jwtMocks "atoll/infras/jwt/mocks"
	"atoll/infras/otel/mocks"
	"atoll/internal/domains/auth/model/dto"
	"atoll/internal/domains/auth/service"
	customerMocks "atoll/internal/domains/customer/mocks"
	customerModel "atoll/internal/domains/customer/model"
	"atoll/shared/constant"
	"atoll/shared/failure"
	"atoll/shared/password"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo *customerMocks.MockCustomer
	jwt  *jwtMocks.MockJWT
	svc  service.Auth
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo: customerMocks.NewMockCustomer(ctrl),
		jwt:  jwtMocks.NewMockJWT(ctrl),
	}

	f.svc = service.New(f.repo, &config.Config{}, mocks.NewOtel(), f.jwt)

	return f
}

func hashed(t *testing.T, plain string) string {
	hash, err := password.Hash(plain)
	require.NoError(t, err)

	return hash
}

var tokenPair = &jwt.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token", TokenType: "Bearer", ExpiresIn: 900}

func TestAuthService_Register(t *testing.T) {
	req := dto.RegisterRequest{Email: "aisha@example.com", Password: "lagoon2025", Name: "Aisha"}

	t.Run("creates a customer and signs in", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, customer customerModel.Customer) error {
				assert.Equal(t, constant.RoleCustomer, customer.Role)
				assert.NotEqual(t, "lagoon2025", customer.Password)

				return nil
			})
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), gomock.Any(), "aisha@example.com", constant.RoleCustomer).Return(tokenPair, nil)

		res, err := f.svc.Register(context.Background(), req)

		require.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		require.NotNil(t, res.Customer)
		assert.Equal(t, "Aisha", res.Customer.Name)
	})

	t.Run("weak password", func(t *testing.T) {
		f := newFixture(t)
		weak := req
		weak.Password = "password"

		_, err := f.svc.Register(context.Background(), weak)

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("email taken", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Register(context.Background(), req)

		assert.True(t, failure.HasCode(err, http.StatusConflict))
	})

	t.Run("email taken concurrently", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := f.svc.Register(context.Background(), req)

		assert.True(t, failure.HasCode(err, http.StatusConflict))
	})
}

func TestAuthService_Login(t *testing.T) {
	customer := customerModel.Customer{
		ID:       "c-1",
		Email:    "aisha@example.com",
		Password: hashed(t, "lagoon2025"),
		Role:     constant.RoleCustomer,
		Active:   true,
	}

	tests := []struct {
		name     string
		password string
		stored   customerModel.Customer
		wantCode int
	}{
		{name: "unknown email", password: "lagoon2025", stored: customerModel.Customer{}, wantCode: http.StatusUnauthorized},
		{name: "wrong password", password: "reef2025", stored: customer, wantCode: http.StatusUnauthorized},
		{name: "inactive account", password: "lagoon2025", stored: func() customerModel.Customer {
			inactive := customer
			inactive.Active = false

			return inactive
		}(), wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.stored, nil)

			_, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: customer.Email, Password: tt.password})

			assert.True(t, failure.HasCode(err, tt.wantCode))
		})
	}

	t.Run("success stamps last login", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(customer, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "c-1", customer.Email, constant.RoleCustomer).Return(tokenPair, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				assert.Contains(t, fields, customerModel.FieldLastLogin)

				return errors.New("write failed")
			})

		res, err := f.svc.Login(context.Background(), dto.LoginRequest{Email: customer.Email, Password: "lagoon2025"})

		require.NoError(t, err)
		assert.Equal(t, "refresh-token", res.RefreshToken)
	})
}

func TestAuthService_RefreshToken(t *testing.T) {
	t.Run("invalid token", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "bad", jwt.RefreshToken).Return(nil, jwt.ErrInvalidToken)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "bad"})

		assert.True(t, failure.HasCode(err, http.StatusUnauthorized))
	})

	t.Run("deactivated customer", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "good", jwt.RefreshToken).Return(&jwt.Claims{UserID: "c-1"}, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(customerModel.Customer{ID: "c-1"}, nil)

		_, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})

		assert.True(t, failure.HasCode(err, http.StatusUnauthorized))
	})

	t.Run("rotates the pair with the stored role", func(t *testing.T) {
		f := newFixture(t)

		f.jwt.EXPECT().ValidateToken(gomock.Any(), "good", jwt.RefreshToken).Return(&jwt.Claims{UserID: "c-1", Role: constant.RoleCustomer}, nil)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(customerModel.Customer{ID: "c-1", Email: "a@b.c", Role: constant.RoleAdmin, Active: true}, nil)
		f.jwt.EXPECT().GenerateTokenPair(gomock.Any(), "c-1", "a@b.c", constant.RoleAdmin).Return(tokenPair, nil)

		res, err := f.svc.RefreshToken(context.Background(), dto.RefreshTokenRequest{RefreshToken: "good"})

		require.NoError(t, err)
		assert.Equal(t, "access-token", res.AccessToken)
		assert.Nil(t, res.Customer)
	})
}

func TestAuthService_ChangePassword(t *testing.T) {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, "c-1")
	stored := customerModel.Customer{ID: "c-1", Password: hashed(t, "lagoon2025")}

	t.Run("wrong current password", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), customerModel.FieldID, customerModel.FieldPassword).Return(stored, nil)

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "nope", NewPassword: "atoll2026"})

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("stores a new hash", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), customerModel.FieldID, customerModel.FieldPassword).Return(stored, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ any) error {
				hash, ok := fields[customerModel.FieldPassword].(string)
				require.True(t, ok)
				assert.NoError(t, password.Verify("atoll2026", hash))

				return nil
			})

		err := f.svc.ChangePassword(ctx, dto.ChangePasswordRequest{CurrentPassword: "lagoon2025", NewPassword: "atoll2026"})

		assert.NoError(t, err)
	})

	t.Run("anonymous caller", func(t *testing.T) {
		f := newFixture(t)

		err := f.svc.ChangePassword(context.Background(), dto.ChangePasswordRequest{})

		assert.True(t, failure.HasCode(err, http.StatusUnauthorized))
	})
}
