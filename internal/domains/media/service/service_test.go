package service_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"atoll/config"
	"atoll/infras/otel/mocks"
	s3Mocks "atoll/infras/s3/mocks"
	mediaMocks "atoll/internal/domains/media/mocks"
	"atoll/internal/domains/media/model"
	"atoll/internal/domains/media/model/dto"
	"atoll/internal/domains/media/service"
	cacheMocks "atoll/shared/cache/mocks"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	"atoll/shared/failure"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const pngDataURI = "data:image/png;base64,iVBORw0KGgo="

type fixture struct {
	repo  *mediaMocks.MockMedia
	cache *cacheMocks.MockRedisCache
	s3    *s3Mocks.MockS3
	svc   service.Media
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:  mediaMocks.NewMockMedia(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
		s3:    s3Mocks.NewMockS3(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	f.svc = service.New(f.repo, cfg, f.cache, mocks.NewOtel(), f.s3)

	return f
}

func editorContext() context.Context {
	return context.WithValue(context.Background(), constant.ContextKeyUserID, "editor-1")
}

// fileHeaders builds real multipart headers so Open works on them.
func fileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	for _, name := range names {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, constant.FormFiles, name))
		header.Set(constant.RequestHeaderContentType, "image/png")

		part, err := writer.CreatePart(header)
		require.NoError(t, err)

		_, err = part.Write([]byte("png-bytes"))
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	request := httptest.NewRequest(http.MethodPost, "/v1/media", body)
	request.Header.Set(constant.RequestHeaderContentType, writer.FormDataContentType())
	require.NoError(t, request.ParseMultipartForm(constant.RequestMaxMemory))

	return request.MultipartForm.File[constant.FormFiles]
}

func TestMediaService_Upload(t *testing.T) {
	t.Run("stores every file and records the assets", func(t *testing.T) {
		f := newFixture(t)
		files := fileHeaders(t, "Beach.PNG", "reef.png")

		f.s3.EXPECT().
			Upload(gomock.Any(), model.Directory, gomock.Any(), "image/png", gomock.Any()).
			Return("https://cdn.example.com/media/a.png", nil)
		f.s3.EXPECT().
			Upload(gomock.Any(), model.Directory, gomock.Any(), "image/png", gomock.Any()).
			Return("https://cdn.example.com/media/b.png", nil)
		f.repo.EXPECT().
			InsertBulk(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, assets []model.MediaAsset) error {
				require.Len(t, assets, 2)
				assert.Equal(t, "Beach.PNG", assets[0].FileName)
				assert.Equal(t, pq.StringArray{"beach"}, assets[0].Tags)
				assert.Equal(t, "editor-1", assets[1].CreatedBy)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.Upload(editorContext(), dto.UploadMediaRequest{Files: files, Tags: []string{"beach", "Beach"}})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		require.Len(t, res, 2)
		assert.Equal(t, "https://cdn.example.com/media/b.png", res[1].URL)
	})

	t.Run("removes stored objects when a later upload fails", func(t *testing.T) {
		f := newFixture(t)
		files := fileHeaders(t, "a.png", "b.png")

		f.s3.EXPECT().Upload(gomock.Any(), model.Directory, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/media/a.png", nil)
		f.s3.EXPECT().Upload(gomock.Any(), model.Directory, gomock.Any(), gomock.Any(), gomock.Any()).
			Return(constant.Empty, errors.New("bucket unavailable"))
		f.s3.EXPECT().ObjectNameFromURL(model.Directory, "https://cdn.example.com/media/a.png").Return("a.png")
		f.s3.EXPECT().Delete(gomock.Any(), model.Directory, "a.png").Return(nil)

		_, err := f.svc.Upload(editorContext(), dto.UploadMediaRequest{Files: files})

		require.Error(t, err)
	})

	t.Run("removes stored objects when recording fails", func(t *testing.T) {
		f := newFixture(t)
		files := fileHeaders(t, "a.png")

		f.s3.EXPECT().Upload(gomock.Any(), model.Directory, gomock.Any(), gomock.Any(), gomock.Any()).
			Return("https://cdn.example.com/media/a.png", nil)
		f.repo.EXPECT().InsertBulk(gomock.Any(), gomock.Any()).Return(errors.New("db down"))
		f.s3.EXPECT().ObjectNameFromURL(model.Directory, gomock.Any()).Return("a.png")
		f.s3.EXPECT().Delete(gomock.Any(), model.Directory, "a.png").Return(nil)

		_, err := f.svc.Upload(editorContext(), dto.UploadMediaRequest{Files: files})

		require.Error(t, err)
	})
}

func TestMediaService_UploadBase64(t *testing.T) {
	t.Run("decodes the payload and names the file by its type", func(t *testing.T) {
		f := newFixture(t)

		f.s3.EXPECT().
			UploadBytes(gomock.Any(), model.Directory, gomock.Any(), "image/png", gomock.Any()).
			DoAndReturn(func(_ context.Context, _, name, _ string, data []byte) (string, error) {
				assert.Contains(t, name, ".png")
				assert.NotEmpty(t, data)

				return "https://cdn.example.com/media/x.png", nil
			})
		f.repo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, asset model.MediaAsset) error {
				assert.Equal(t, "upload.png", asset.FileName)
				assert.Equal(t, "image/png", asset.MimeType)
				assert.Positive(t, asset.Size)

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)

		res, err := f.svc.UploadBase64(editorContext(), dto.UploadBase64Request{Data: pngDataURI, AltText: "logo"})

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
		assert.Equal(t, "logo", res.AltText)
	})

	t.Run("rejects a malformed payload", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.svc.UploadBase64(editorContext(), dto.UploadBase64Request{Data: "data:image/png;base64,@@@"})

		assert.True(t, failure.HasCode(err, http.StatusBadRequest))
	})
}

func TestMediaService_GetAll(t *testing.T) {
	f := newFixture(t)
	params := gDto.QueryParams{Page: 1, Limit: 10}
	filter := gDto.FilterGroup{Filters: []any{
		gDto.Filter{ArgName: "tag", Field: model.FieldTags, Value: "beach", Operator: gDto.FilterOperatorContains, Table: model.TableName},
	}}

	f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss")).Times(2)
	f.repo.EXPECT().Count(gomock.Any(), filter).Return(1, nil)
	f.repo.EXPECT().GetAll(gomock.Any(), params, filter).Return([]model.MediaAsset{{ID: "m-1"}}, nil)
	f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(2)

	res, err := f.svc.GetAll(context.Background(), params, filter)

	time.Sleep(10 * time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "m-1", res.Media[0].ID)
}

func TestMediaService_Get(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.MediaAsset{}, nil)

		_, err := f.svc.Get(context.Background(), "missing")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestMediaService_Update(t *testing.T) {
	t.Run("dedupes tags and writes explicit empties", func(t *testing.T) {
		f := newFixture(t)
		caption := ""
		tags := pq.StringArray{"Lagoon", "lagoon", "villa"}

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				assert.Equal(t, pq.StringArray{"Lagoon", "villa"}, fields[model.FieldTags])
				assert.Equal(t, "", fields["caption"])

				return nil
			})
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.Update(editorContext(), dto.UpdateMediaRequest{Caption: &caption, Tags: &tags}, "m-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := f.svc.Update(editorContext(), dto.UpdateMediaRequest{}, "missing")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}

func TestMediaService_Delete(t *testing.T) {
	t.Run("removes the record and the stored object", func(t *testing.T) {
		f := newFixture(t)
		url := "https://cdn.example.com/media/abc.jpg"

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), model.FieldID, model.FieldURL).Return(model.MediaAsset{ID: "m-1", URL: url}, nil)
		f.repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
		f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).Times(2)
		f.cache.EXPECT().Delete(gomock.Any(), "media:get:m-1").Return(nil)
		f.s3.EXPECT().ObjectNameFromURL(model.Directory, url).Return("abc.jpg")
		f.s3.EXPECT().Delete(gomock.Any(), model.Directory, "abc.jpg").Return(nil)

		err := f.svc.Delete(context.Background(), "m-1")

		time.Sleep(10 * time.Millisecond)

		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		f := newFixture(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(model.MediaAsset{}, nil)

		err := f.svc.Delete(context.Background(), "missing")

		assert.True(t, failure.HasCode(err, http.StatusNotFound))
	})
}
