package dto_test

import (
	"testing"

	"atoll/internal/domains/media/model"
	"atoll/internal/domains/media/model/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestAsset_ToModel(t *testing.T) {
	asset := dto.Asset{
		FileName: "beach.jpg",
		URL:      "https://cdn.example.com/media/abc.jpg",
		MimeType: "image/jpeg",
		Size:     2048,
		AltText:  "White sand beach",
		Tags:     []string{"beach", "Beach", " ", "maldives"},
	}

	result := asset.ToModel("editor-id")

	assert.NotEmpty(t, result.ID)
	assert.Equal(t, asset.URL, result.URL)
	assert.Equal(t, int64(2048), result.Size)
	assert.Equal(t, pq.StringArray{"beach", "maldives"}, result.Tags)
	assert.Equal(t, "editor-id", result.CreatedBy)
	assert.False(t, result.CreatedAt.IsZero())
}

func TestMediaResponse_FromModel(t *testing.T) {
	now := timezone.Now()

	var response dto.MediaResponse
	response.FromModel(model.MediaAsset{
		ID:       "m-1",
		FileName: "reef.png",
		URL:      "https://cdn.example.com/media/reef.png",
		MimeType: "image/png",
		Caption:  "House reef",
		Metadata: gModel.Metadata{CreatedAt: now, ModifiedAt: now, CreatedBy: "u", ModifiedBy: "u"},
	})

	assert.Equal(t, "m-1", response.ID)
	assert.Equal(t, "House reef", response.Caption)
	assert.NotNil(t, response.Tags)
	assert.Empty(t, response.Tags)
	assert.Equal(t, "u", response.CreatedBy)
}

func TestGetMediaResponse_FromModels(t *testing.T) {
	var response dto.GetMediaResponse
	response.FromModels([]model.MediaAsset{{ID: "a"}, {ID: "b"}}, 15, 10)

	assert.Equal(t, 15, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Media, 2)
	assert.Equal(t, "b", response.Media[1].ID)
}

func TestGetMediaResponse_FromModels_EmptyList(t *testing.T) {
	var response dto.GetMediaResponse
	response.FromModels(nil, 0, 10)

	assert.Equal(t, 1, response.TotalPage)
	assert.Empty(t, response.Media)
}
