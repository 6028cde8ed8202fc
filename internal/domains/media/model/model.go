package model

import (
	"atoll/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "media_assets"
	EntityName = "media"

	// Directory is the object storage prefix for library uploads.
	Directory = "media"

	FieldID       = "id"
	FieldFileName = "file_name"
	FieldURL      = "url"
	FieldMimeType = "mime_type"
	FieldTags     = "tags"
	FieldAltText  = "alt_text"
)

type MediaAsset struct {
	ID       string         `db:"id"`
	FileName string         `db:"file_name"`
	URL      string         `db:"url"`
	MimeType string         `db:"mime_type"`
	Size     int64          `db:"size"`
	AltText  string         `db:"alt_text"`
	Caption  string         `db:"caption"`
	Tags     pq.StringArray `db:"tags"`
	model.Metadata
}
