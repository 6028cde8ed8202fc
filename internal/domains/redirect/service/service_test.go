package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"atoll/config"
	"atoll/infras/otel/mocks"
	redirectMocks "atoll/internal/domains/redirect/mocks"
	"atoll/internal/domains/redirect/model"
	"atoll/internal/domains/redirect/model/dto"
	"atoll/internal/domains/redirect/service"
	cacheMocks "atoll/shared/cache/mocks"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo  *redirectMocks.MockRedirect
	cache *cacheMocks.MockRedisCache
	svc   service.Redirect
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  redirectMocks.NewMockRedirect(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel())

	return f
}

func at(offset time.Duration) *time.Time {
	value := time.Now().Add(offset)

	return &value
}

func TestRedirectService_Create(t *testing.T) {
	t.Run("defaults to a permanent english redirect", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, redirect model.Redirect) error {
				assert.Equal(t, http.StatusMovedPermanently, redirect.StatusCode)
				assert.Equal(t, "en", redirect.Locale)
				assert.True(t, redirect.IsActive)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(3)

		id, err := f.svc.Create(context.Background(), dto.CreateRedirectRequest{FromPath: "/old-villas", ToPath: "/villas"})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	invalid := []struct {
		name    string
		req     dto.CreateRedirectRequest
		message string
	}{
		{
			name:    "loop onto itself",
			req:     dto.CreateRedirectRequest{FromPath: "/same", ToPath: "/same"},
			message: "from_path and to_path must differ",
		},
		{
			name:    "window ends before it starts",
			req:     dto.CreateRedirectRequest{FromPath: "/sale", ToPath: "/offers", StartsAt: at(time.Hour), EndsAt: at(-time.Hour)},
			message: "starts_at must be before ends_at",
		},
	}

	for _, tt := range invalid {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			_, err := f.svc.Create(context.Background(), tt.req)

			require.Error(t, err)
			assert.True(t, failure.HasCode(err, http.StatusBadRequest))
			assert.Equal(t, tt.message, err.Error())
		})
	}

	t.Run("path already redirected", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeUniqueViolation})

		_, err := f.svc.Create(context.Background(), dto.CreateRedirectRequest{FromPath: "/a", ToPath: "/b"})

		assert.True(t, failure.HasCode(err, http.StatusConflict))
	})
}

func TestRedirectService_Resolve(t *testing.T) {
	t.Run("live redirect", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().
			Get(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Redirect, error) {
				where, args := filter.GetWhereClause()

				assert.Equal(t, "(redirects.from_path = :from_path AND redirects.is_active = :is_active AND redirects.locale = :locale)", where)
				assert.Equal(t, map[string]any{"from_path": "/old", "is_active": true, "locale": "ru"}, args)

				return model.Redirect{ID: "r-1", FromPath: "/old", ToPath: "/new", StatusCode: 302, IsActive: true, StartsAt: at(-time.Hour)}, nil
			})
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), 60).Return(nil)

		res, err := f.svc.Resolve(context.Background(), "/old", "ru")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "/new", res.ToPath)
		assert.Equal(t, 302, res.StatusCode)
	})

	t.Run("cached redirect that has since expired", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().
			Get(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, value any) error {
				*value.(*model.Redirect) = model.Redirect{ID: "r-1", FromPath: "/old", ToPath: "/new", IsActive: true, EndsAt: at(-time.Minute)}

				return nil
			})

		_, err := f.svc.Resolve(context.Background(), "/old", "")

		require.Error(t, err)
		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("unknown path", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Redirect{}, nil)

		_, err := f.svc.Resolve(context.Background(), "/nowhere", "")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestRedirectService_Update(t *testing.T) {
	t.Run("patch that points a redirect at itself", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Redirect{ID: "r-1", FromPath: "/old", ToPath: "/new"}, nil)

		err := f.svc.Update(context.Background(), dto.UpdateRedirectRequest{ToPath: "/old"}, "r-1")

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("new end before the stored start", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Redirect{ID: "r-1", FromPath: "/old", ToPath: "/new", StartsAt: at(time.Hour)}, nil)

		err := f.svc.Update(context.Background(), dto.UpdateRedirectRequest{EndsAt: at(0)}, "r-1")

		require.Error(t, err)
		assert.Equal(t, "starts_at must be before ends_at", err.Error())
	})

	t.Run("success", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Redirect{ID: "r-1", FromPath: "/old", ToPath: "/new"}, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, 302, fields[model.FieldStatusCode])
				assert.NotContains(t, fields, model.FieldFromPath)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(3)
		f.cache.EXPECT().Delete(gomock.Any(), "redirect:get:r-1").Return(nil)

		err := f.svc.Update(context.Background(), dto.UpdateRedirectRequest{StatusCode: 302}, "r-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Redirect{}, nil)

		err := f.svc.Update(context.Background(), dto.UpdateRedirectRequest{StatusCode: 302}, "r-9")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}
