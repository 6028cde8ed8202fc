package dto

import (
	"mime/multipart"

	"atoll/internal/domains/media/model"
	"atoll/shared"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type UploadMediaRequest struct {
	Files   []*multipart.FileHeader `swaggerignore:"true" validate:"required,min=1,max=10,dive,mimetypes=image/png image/jpg image/jpeg image/webp image/gif,maxfilesize=5"`
	AltText string                  `validate:"omitempty,max=255"`
	Caption string                  `validate:"omitempty,max=500"`
	Tags    []string                `validate:"omitempty,dive,min=1,max=50"`
}

// UploadBase64Request carries a single file as a `data:<type>;base64,...` URI.
type UploadBase64Request struct {
	Data     string   `json:"data"      validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp image/gif,maxfilesize=5"`
	FileName string   `json:"file_name" validate:"omitempty,max=255"`
	AltText  string   `json:"alt_text"  validate:"omitempty,max=255"`
	Caption  string   `json:"caption"   validate:"omitempty,max=500"`
	Tags     []string `json:"tags"      validate:"omitempty,dive,min=1,max=50"`
}

// Asset is the stored-object description shared by both upload paths.
type Asset struct {
	FileName string
	URL      string
	MimeType string
	Size     int64
	AltText  string
	Caption  string
	Tags     []string
}

func (a Asset) ToModel(user string) model.MediaAsset {
	now := timezone.Now()

	tags := shared.DedupeNames(a.Tags)

	return model.MediaAsset{
		ID:       uuid.NewString(),
		FileName: a.FileName,
		URL:      a.URL,
		MimeType: a.MimeType,
		Size:     a.Size,
		AltText:  a.AltText,
		Caption:  a.Caption,
		Tags:     pq.StringArray(tags),
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateMediaRequest struct {
	AltText *string         `db:"alt_text" json:"alt_text" validate:"omitempty,max=255"`
	Caption *string         `db:"caption"  json:"caption"  validate:"omitempty,max=500"`
	Tags    *pq.StringArray `db:"tags"     json:"tags"     swaggertype:"array,string" validate:"omitempty,dive,min=1,max=50"`
}

type MediaResponse struct {
	ID       string   `json:"id"`
	FileName string   `json:"file_name"`
	URL      string   `json:"url"`
	MimeType string   `json:"mime_type"`
	Size     int64    `json:"size"`
	AltText  string   `json:"alt_text"`
	Caption  string   `json:"caption"`
	Tags     []string `json:"tags"`
	gDto.Metadata
}

func (r *MediaResponse) FromModel(m model.MediaAsset) {
	r.ID = m.ID
	r.FileName = m.FileName
	r.URL = m.URL
	r.MimeType = m.MimeType
	r.Size = m.Size
	r.AltText = m.AltText
	r.Caption = m.Caption
	r.Tags = append([]string{}, m.Tags...)
	r.Metadata.FromModel(m.Metadata)
}

type GetMediaResponse struct {
	Media     []MediaResponse `json:"media"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetMediaResponse) FromModels(models []model.MediaAsset, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Media = make([]MediaResponse, len(models))
	for i, m := range models {
		r.Media[i].FromModel(m)
	}
}
