package media_test

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"atoll/infras/otel/mocks"
	"atoll/internal/domains/media/model/dto"
	mediaMocks "atoll/internal/domains/media/service/mocks"
	"atoll/internal/handlers/media"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newRouter(t *testing.T) (*mediaMocks.MockMedia, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := mediaMocks.NewMockMedia(ctrl)
	router := chi.NewRouter()

	handler := media.New(svc, mocks.NewOtel())
	handler.Router(router)

	return svc, router
}

func multipartBody(t *testing.T, contentType string, tags ...string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="lagoon.gif"`, constant.FormFiles))
	header.Set(constant.RequestHeaderContentType, contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)

	_, err = part.Write([]byte("GIF89a"))
	require.NoError(t, err)

	for _, tag := range tags {
		require.NoError(t, writer.WriteField("tags", tag))
	}

	require.NoError(t, writer.WriteField("alt_text", "Lagoon at dusk"))
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func TestHandler_UploadMedia(t *testing.T) {
	t.Run("passes files and form fields through", func(t *testing.T) {
		svc, router := newRouter(t)
		body, contentType := multipartBody(t, "image/gif", "lagoon", "sunset")

		svc.EXPECT().
			Upload(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req dto.UploadMediaRequest) ([]dto.MediaResponse, error) {
				assert.Len(t, req.Files, 1)
				assert.Equal(t, "Lagoon at dusk", req.AltText)
				assert.Equal(t, []string{"lagoon", "sunset"}, req.Tags)

				return []dto.MediaResponse{{ID: "m-1"}}, nil
			})

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/media", body)
		request.Header.Set(constant.RequestHeaderContentType, contentType)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Contains(t, recorder.Body.String(), `"m-1"`)
	})

	t.Run("rejects unsupported types", func(t *testing.T) {
		_, router := newRouter(t)
		body, contentType := multipartBody(t, "application/pdf")

		recorder := httptest.NewRecorder()
		request := httptest.NewRequest(http.MethodPost, "/media", body)
		request.Header.Set(constant.RequestHeaderContentType, contentType)
		router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestHandler_UploadBase64(t *testing.T) {
	_, router := newRouter(t)

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/media/base64", strings.NewReader(`{"data":"data:text/plain;base64,aGVsbG8="}`))
	request.Header.Set(constant.RequestHeaderContentType, "application/json")
	router.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestHandler_GetMedia(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetMediaResponse, error) {
			where, args := filter.GetWhereClause()

			assert.Contains(t, where, ":tag = ANY(media_assets.tags)")
			assert.Contains(t, where, "media_assets.mime_type = :mime_type")
			assert.Equal(t, "beach", args["tag"])

			return dto.GetMediaResponse{}, nil
		})

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/media?tag=beach&mime_type=image/png", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}
