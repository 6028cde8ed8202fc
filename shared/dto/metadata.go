package dto

import (
	"atoll/shared/constant"
	"atoll/shared/model"
	"atoll/shared/timezone"
)

// Metadata is the audit block every response carries, rendered in the app timezone.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	ModifiedAt string `json:"modified_at"`
	CreatedBy  string `json:"created_by,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	*m = Metadata{
		CreatedBy:  source.CreatedBy,
		ModifiedBy: source.ModifiedBy,
	}

	if !source.CreatedAt.IsZero() {
		m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	}

	if !source.ModifiedAt.IsZero() {
		m.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	}
}
