package service_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"atoll/config"
	"atoll/infras/otel/mocks"
	"atoll/infras/postgres"
	pgMocks "atoll/infras/postgres/mocks"
	pageMocks "atoll/internal/domains/page/mocks"
	"atoll/internal/domains/page/model"
	"atoll/internal/domains/page/model/dto"
	"atoll/internal/domains/page/service"
	cacheMocks "atoll/shared/cache/mocks"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"
	"atoll/shared/timezone"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	repo        *pageMocks.MockPage
	blockRepo   *pageMocks.MockBlock
	versionRepo *pageMocks.MockVersion
	reviewRepo  *pageMocks.MockReview
	threadRepo  *pageMocks.MockThread
	commentRepo *pageMocks.MockComment
	cache       *cacheMocks.MockRedisCache
	svc         service.Page
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:        pageMocks.NewMockPage(ctrl),
		blockRepo:   pageMocks.NewMockBlock(ctrl),
		versionRepo: pageMocks.NewMockVersion(ctrl),
		reviewRepo:  pageMocks.NewMockReview(ctrl),
		threadRepo:  pageMocks.NewMockThread(ctrl),
		commentRepo: pageMocks.NewMockComment(ctrl),
		cache:       cacheMocks.NewMockRedisCache(ctrl),
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

	f.svc = service.New(f.repo, f.blockRepo, f.versionRepo, f.reviewRepo, f.threadRepo, f.commentRepo, transactor, cfg, f.cache, mocks.NewOtel())

	return f
}

func (f fixture) expectInvalidation() {
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(3)
	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
}

func (f fixture) expectPage(exist bool) {
	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(exist, nil)
}

func editorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "editor-1")
}

func TestPageService_Create(t *testing.T) {
	t.Run("derives a free slug from the title", func(t *testing.T) {
		f := newFixture(t)

		gomock.InOrder(
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil),
			f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil),
		)
		f.repo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, page model.Page) error {
				assert.Equal(t, "about-us-2", page.Slug)
				assert.Equal(t, "/about-us-2/", page.Path)
				assert.Equal(t, model.StatusDraft, page.Status)
				assert.Equal(t, 1, page.Version)
				assert.Equal(t, "editor-1", page.CreatedBy)

				return nil
			})
		f.expectInvalidation()

		id, err := f.svc.Create(editorContext(), dto.CreatePageRequest{Title: "About Us!"})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("rejects a taken explicit slug", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.Create(editorContext(), dto.CreatePageRequest{Title: "About", Slug: "about"})

		assert.True(t, failure.HasCode(err, http.StatusConflict))
	})

	t.Run("rejects an inverted publish window", func(t *testing.T) {
		f := newFixture(t)
		start := time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)
		end := start.Add(-time.Hour)

		_, err := f.svc.Create(editorContext(), dto.CreatePageRequest{Title: "Promo", PublishAt: &start, UnpublishAt: &end})

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("demotes the previous home page of the locale", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		f.repo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldIsHome])

				where, args := filter.GetWhereClause()
				assert.Contains(t, where, "pages.is_home = :is_home")
				assert.Equal(t, "id", args["locale"])

				return nil
			})
		f.expectInvalidation()

		_, err := f.svc.Create(editorContext(), dto.CreatePageRequest{Title: "Beranda", Locale: "id", IsHome: true})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("unknown parent is a bad request", func(t *testing.T) {
		f := newFixture(t)
		parent := "0d3c6a8e-8a54-4b8e-9d7a-3e0c9a1b2c3d"
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.Create(editorContext(), dto.CreatePageRequest{Title: "Child", ParentID: &parent})

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})
}

func TestPageService_GetBySlug(t *testing.T) {
	past := timezone.Now().Add(-time.Hour)
	future := timezone.Now().Add(time.Hour)

	blocks := []model.Block{
		{ID: "b-1", Type: model.BlockText, Position: 0},
		{ID: "b-2", Type: model.BlockText, Position: 1, LocaleOverride: "id"},
		{ID: "b-3", Type: model.BlockImage, Position: 2, LocaleOverride: "en"},
	}

	t.Run("serves a live page with the blocks of the locale", func(t *testing.T) {
		f := newFixture(t)
		page := model.Page{ID: "p-1", Slug: "about", Status: model.StatusPublished, Locale: "en", PublishAt: &past}

		f.cache.EXPECT().Get(gomock.Any(), "page:slug:about", gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(page, nil)
		f.blockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(blocks, nil)
		f.cache.EXPECT().Save(gomock.Any(), "page:slug:about", gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.GetBySlug(context.Background(), "about", "id")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		require.Len(t, res.Blocks, 2)
		assert.Equal(t, "b-1", res.Blocks[0].ID)
		assert.Equal(t, "b-2", res.Blocks[1].ID)
	})

	t.Run("defaults to the page locale", func(t *testing.T) {
		f := newFixture(t)
		page := model.Page{ID: "p-1", Slug: "about", Status: model.StatusPublished, Locale: "en"}

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(page, nil)
		f.blockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(blocks, nil)
		f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.GetBySlug(context.Background(), "about", constant.Empty)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		require.Len(t, res.Blocks, 2)
		assert.Equal(t, "b-3", res.Blocks[1].ID)
	})

	t.Run("hides drafts and pages outside their window", func(t *testing.T) {
		for name, page := range map[string]model.Page{
			"draft":     {ID: "p-1", Status: model.StatusDraft},
			"scheduled": {ID: "p-1", Status: model.StatusPublished, PublishAt: &future},
			"expired":   {ID: "p-1", Status: model.StatusPublished, UnpublishAt: &past},
		} {
			t.Run(name, func(t *testing.T) {
				f := newFixture(t)

				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(page, nil)
				f.blockRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)
				f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

				_, err := f.svc.GetBySlug(context.Background(), "about", "en")

				time.Sleep(10 * time.Millisecond)

				assert.True(t, failure.HasCode(err, http.StatusNotFound))
			})
		}
	})

	t.Run("missing slug", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Page{}, nil)

		_, err := f.svc.GetBySlug(context.Background(), "nope", "en")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestPageService_Update(t *testing.T) {
	t.Run("slug held by another page", func(t *testing.T) {
		f := newFixture(t)
		slug := "contact"
		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		err := f.svc.Update(editorContext(), dto.UpdatePageRequest{Slug: &slug}, "p-1")

		assert.True(t, failure.HasCode(err, http.StatusConflict))
	})

	t.Run("window is checked against the stored bound", func(t *testing.T) {
		f := newFixture(t)
		stored := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		publishAt := stored.Add(time.Hour)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(),
				model.FieldID, model.FieldLocale, model.FieldPublishAt, model.FieldUnpublishAt).
			Return(model.Page{ID: "p-1", Locale: "en", UnpublishAt: &stored}, nil)

		err := f.svc.Update(editorContext(), dto.UpdatePageRequest{PublishAt: &publishAt}, "p-1")

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("writes only the given fields", func(t *testing.T) {
		f := newFixture(t)
		title := "Contact"

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Page{ID: "p-1", Locale: "en"}, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Contact", fields[model.FieldTitle])
				assert.NotContains(t, fields, model.FieldSlug)
				assert.Equal(t, "editor-1", fields[constant.FieldModifiedBy])

				return nil
			})
		f.expectInvalidation()

		err := f.svc.Update(editorContext(), dto.UpdatePageRequest{Title: &title}, "p-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("missing page", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(model.Page{}, nil)

		err := f.svc.Update(editorContext(), dto.UpdatePageRequest{}, "p-1")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestPageService_Delete(t *testing.T) {
	f := newFixture(t)
	f.expectPage(false)

	err := f.svc.Delete(editorContext(), "p-1")

	assert.True(t, failure.HasCode(err, http.StatusNotFound))
}

func TestPageService_CreateBlock(t *testing.T) {
	t.Run("appends after existing blocks", func(t *testing.T) {
		f := newFixture(t)
		f.expectPage(true)
		f.blockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
		f.blockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, block model.Block) error {
				assert.Equal(t, 3, block.Position)
				assert.Equal(t, "p-1", block.PageID)
				assert.JSONEq(t, `{}`, string(block.Data))

				return nil
			})
		f.expectInvalidation()

		_, err := f.svc.CreateBlock(editorContext(), dto.CreateBlockRequest{Type: model.BlockQuote}, "p-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("explicit order skips counting", func(t *testing.T) {
		f := newFixture(t)
		order := 0
		f.expectPage(true)
		f.blockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, block model.Block) error {
				assert.Equal(t, 0, block.Position)

				return nil
			})
		f.expectInvalidation()

		_, err := f.svc.CreateBlock(editorContext(), dto.CreateBlockRequest{Type: model.BlockCTA, Order: &order}, "p-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})
}

func TestPageService_UpdateBlock(t *testing.T) {
	f := newFixture(t)
	f.blockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := f.svc.UpdateBlock(editorContext(), dto.UpdateBlockRequest{}, "p-1", "b-9")

	assert.True(t, failure.HasCode(err, http.StatusNotFound))
}

func TestPageService_ReorderBlocks(t *testing.T) {
	lock := func(f fixture) {
		f.repo.EXPECT().
			GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).
			Return(model.Page{ID: "p-1"}, nil)
		f.blockRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).
			Return([]model.Block{{ID: "b-1"}, {ID: "b-2"}, {ID: "b-3"}}, nil)
	}

	t.Run("renumbers in the given order", func(t *testing.T) {
		f := newFixture(t)
		lock(f)

		positions := map[string]int{}
		f.blockRepo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, filter gDto.FilterGroup) error {
				_, args := filter.GetWhereClause()
				positions[args["id"].(string)] = fields[model.FieldPosition].(int)

				return nil
			}).
			Times(3)
		f.expectInvalidation()

		err := f.svc.ReorderBlocks(editorContext(), dto.ReorderBlocksRequest{BlockIDs: []string{"b-3", "b-1", "b-2"}}, "p-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, map[string]int{"b-3": 0, "b-1": 1, "b-2": 2}, positions)
	})

	t.Run("partial list is rejected", func(t *testing.T) {
		f := newFixture(t)
		lock(f)

		err := f.svc.ReorderBlocks(editorContext(), dto.ReorderBlocksRequest{BlockIDs: []string{"b-1", "b-2"}}, "p-1")

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("foreign block is rejected", func(t *testing.T) {
		f := newFixture(t)
		lock(f)

		err := f.svc.ReorderBlocks(editorContext(), dto.ReorderBlocksRequest{BlockIDs: []string{"b-1", "b-2", "b-4"}}, "p-1")

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})
}

func TestPageService_Publish(t *testing.T) {
	t.Run("bumps the version and snapshots the page", func(t *testing.T) {
		f := newFixture(t)
		page := model.Page{ID: "p-1", Title: "About", Content: "Hello", Status: model.StatusDraft, Version: 2, SeoTitle: "About Atoll"}

		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(page, nil)
		f.blockRepo.EXPECT().
			GetAllTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Block{{ID: "b-1", Type: model.BlockText, Position: 0, Data: types.JSONText(`{"text":"hi"}`)}}, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusPublished, fields[model.FieldStatus])
				assert.Equal(t, 3, fields[model.FieldVersion])

				return nil
			})
		f.versionRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, version model.Version) error {
				assert.Equal(t, 3, version.VersionNumber)
				assert.Equal(t, "Hello", version.Content)

				var blocks []dto.BlockSnapshot
				require.NoError(t, json.Unmarshal(version.BlocksData, &blocks))
				require.Len(t, blocks, 1)
				assert.JSONEq(t, `{"text":"hi"}`, string(blocks[0].Data))

				return nil
			})
		f.expectInvalidation()

		res, err := f.svc.Publish(editorContext(), "p-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, 3, res.VersionNumber)
		assert.Equal(t, "editor-1", res.CreatedBy)
	})

	t.Run("missing page", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(model.Page{}, nil)

		_, err := f.svc.Publish(editorContext(), "p-1")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestPageService_Unpublish(t *testing.T) {
	t.Run("returns a published page to draft", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldStatus).
			Return(model.Page{ID: "p-1", Status: model.StatusPublished}, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.StatusDraft, fields[model.FieldStatus])

				return nil
			})
		f.expectInvalidation()

		err := f.svc.Unpublish(editorContext(), "p-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("draft cannot be unpublished", func(t *testing.T) {
		f := newFixture(t)
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldStatus).
			Return(model.Page{ID: "p-1", Status: model.StatusDraft}, nil)

		err := f.svc.Unpublish(editorContext(), "p-1")

		assert.True(t, failure.HasCode(err, http.StatusConflict))
	})
}

func TestPageService_Archive(t *testing.T) {
	f := newFixture(t)
	f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldStatus).
		Return(model.Page{ID: "p-1", Status: model.StatusDraft}, nil)
	f.repo.EXPECT().
		UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
			assert.Equal(t, model.StatusArchived, fields[model.FieldStatus])

			return nil
		})
	f.expectInvalidation()

	err := f.svc.Archive(editorContext(), "p-1")

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
}

func TestPageService_GetVersions(t *testing.T) {
	f := newFixture(t)
	f.expectPage(true)
	f.versionRepo.EXPECT().
		GetAll(gomock.Any(), gDto.QueryParams{SortBy: model.FieldVersionNumber, SortDir: gDto.SortDirDesc}, gomock.Any()).
		Return([]model.Version{{ID: "v-2", VersionNumber: 2}, {ID: "v-1", VersionNumber: 1}}, nil)

	res, err := f.svc.GetVersions(context.Background(), "p-1")

	require.NoError(t, err)
	require.Len(t, res, 2)
	assert.Equal(t, 2, res[0].VersionNumber)
	assert.JSONEq(t, `[]`, string(res[0].BlocksData))
}

func TestPageService_GetVersion(t *testing.T) {
	f := newFixture(t)
	f.versionRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Version{}, nil)

	_, err := f.svc.GetVersion(context.Background(), "p-1", 7)

	assert.True(t, failure.HasCode(err, http.StatusNotFound))
}

func TestPageService_RestoreVersion(t *testing.T) {
	t.Run("writes the snapshot back and replaces the blocks", func(t *testing.T) {
		f := newFixture(t)
		version := model.Version{
			ID:            "v-1",
			PageID:        "p-1",
			VersionNumber: 1,
			Title:         "Old title",
			Content:       "Old content",
			BlocksData:    types.JSONText(`[{"type":"text","order":0,"data":{"text":"a"}},{"type":"quote","order":1,"data":{}}]`),
			SeoData:       types.JSONText(`{"seo_title":"Old SEO","robots":"noindex"}`),
		}

		f.versionRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(version, nil)
		f.repo.EXPECT().GetForUpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldID).Return(model.Page{ID: "p-1"}, nil)
		f.repo.EXPECT().
			UpdateTx(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, "Old title", fields[model.FieldTitle])
				assert.Equal(t, "noindex", fields[model.FieldRobots])
				assert.NotContains(t, fields, model.FieldStatus)
				assert.NotContains(t, fields, model.FieldVersion)

				return nil
			})
		f.blockRepo.EXPECT().DeleteTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.blockRepo.EXPECT().
			InsertBulkTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, blocks []model.Block) error {
				require.Len(t, blocks, 2)
				assert.Equal(t, model.BlockQuote, blocks[1].Type)
				assert.Equal(t, 1, blocks[1].Position)
				assert.Equal(t, "p-1", blocks[0].PageID)

				return nil
			})
		f.expectInvalidation()

		err := f.svc.RestoreVersion(editorContext(), "p-1", 1)

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("unknown version", func(t *testing.T) {
		f := newFixture(t)
		f.versionRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Version{}, nil)

		err := f.svc.RestoreVersion(editorContext(), "p-1", 4)

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestPageService_Reviews(t *testing.T) {
	t.Run("request stores a pending review", func(t *testing.T) {
		f := newFixture(t)
		f.expectPage(true)
		f.reviewRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, review model.Review) error {
				assert.Equal(t, model.ReviewPending, review.Status)
				assert.Equal(t, "reviewer-1", review.ReviewerID)

				return nil
			})

		id, err := f.svc.RequestReview(editorContext(), dto.RequestReviewRequest{ReviewerID: "reviewer-1"}, "p-1")

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("unknown reviewer is a bad request", func(t *testing.T) {
		f := newFixture(t)
		f.expectPage(true)
		f.reviewRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(&pq.Error{Code: constant.PqErrorCodeFkViolation})

		_, err := f.svc.RequestReview(editorContext(), dto.RequestReviewRequest{ReviewerID: "ghost"}, "p-1")

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("complete stamps the outcome", func(t *testing.T) {
		f := newFixture(t)
		f.reviewRepo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldStatus).
			Return(model.Review{ID: "r-1", Status: model.ReviewPending}, nil)
		f.reviewRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, model.ReviewApproved, fields[model.FieldStatus])
				assert.Equal(t, "looks good", fields[model.FieldComments])
				assert.IsType(t, time.Time{}, fields[model.FieldCompletedAt])

				return nil
			})

		err := f.svc.CompleteReview(editorContext(), dto.CompleteReviewRequest{Status: model.ReviewApproved, Comments: "looks good"}, "p-1", "r-1")

		require.NoError(t, err)
	})

	t.Run("a completed review cannot be completed again", func(t *testing.T) {
		f := newFixture(t)
		f.reviewRepo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldStatus).
			Return(model.Review{ID: "r-1", Status: model.ReviewRejected}, nil)

		err := f.svc.CompleteReview(editorContext(), dto.CompleteReviewRequest{Status: model.ReviewApproved}, "p-1", "r-1")

		assert.True(t, failure.HasCode(err, http.StatusConflict))
	})
}

func TestPageService_Threads(t *testing.T) {
	t.Run("creates a thread with its first comment", func(t *testing.T) {
		f := newFixture(t)
		blockID := "b-1"
		f.expectPage(true)
		f.blockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.threadRepo.EXPECT().InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.commentRepo.EXPECT().
			InsertTx(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ *sqlx.Tx, comment model.Comment) error {
				assert.Equal(t, "editor-1", comment.AuthorID)
				assert.Equal(t, []string{"maya"}, []string(comment.Mentions))

				return nil
			})

		id, err := f.svc.CreateThread(editorContext(), dto.CreateThreadRequest{
			Title:   "Hero copy",
			BlockID: &blockID,
			Comment: &dto.CreateCommentRequest{Content: "Too long?", Mentions: []string{"maya", "Maya"}},
		}, "p-1")

		require.NoError(t, err)
		assert.NotEmpty(t, id)
	})

	t.Run("block of another page is rejected", func(t *testing.T) {
		f := newFixture(t)
		blockID := "b-x"
		f.expectPage(true)
		f.blockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.svc.CreateThread(editorContext(), dto.CreateThreadRequest{Title: "Hero", BlockID: &blockID}, "p-1")

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})

	t.Run("lists threads with their comments", func(t *testing.T) {
		f := newFixture(t)
		f.expectPage(true)
		f.threadRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			Return([]model.Thread{{ID: "t-1"}, {ID: "t-2"}}, nil)
		f.commentRepo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Comment, error) {
				where, _ := filter.GetWhereClause()
				assert.Contains(t, where, "comments.thread_id IN")

				return []model.Comment{
					{ID: "c-1", ThreadID: "t-2"},
					{ID: "c-2", ThreadID: "t-1"},
					{ID: "c-3", ThreadID: "t-2"},
				}, nil
			})

		res, err := f.svc.GetThreads(context.Background(), "p-1")

		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Len(t, res[0].Comments, 1)
		require.Len(t, res[1].Comments, 2)
		assert.Equal(t, "c-3", res[1].Comments[1].ID)
	})

	t.Run("no threads skips the comment lookup", func(t *testing.T) {
		f := newFixture(t)
		f.expectPage(true)
		f.threadRepo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := f.svc.GetThreads(context.Background(), "p-1")

		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("comment on a thread of another page", func(t *testing.T) {
		f := newFixture(t)
		f.threadRepo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID).Return(model.Thread{}, nil)

		_, err := f.svc.AddComment(editorContext(), dto.CreateCommentRequest{Content: "hi"}, "p-1", "t-9")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})

	t.Run("reopen clears the resolution time", func(t *testing.T) {
		f := newFixture(t)
		f.threadRepo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID).Return(model.Thread{ID: "t-1"}, nil)
		f.threadRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, false, fields[model.FieldIsResolved])
				assert.Nil(t, fields[model.FieldResolvedAt])

				return nil
			})

		require.NoError(t, f.svc.ResolveThread(editorContext(), "p-1", "t-1", false))
	})

	t.Run("resolve stamps the resolution time", func(t *testing.T) {
		f := newFixture(t)
		f.threadRepo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID).Return(model.Thread{ID: "t-1"}, nil)
		f.threadRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, true, fields[model.FieldIsResolved])
				assert.IsType(t, time.Time{}, fields[model.FieldResolvedAt])

				return nil
			})

		require.NoError(t, f.svc.ResolveThread(editorContext(), "p-1", "t-1", true))
	})
}
