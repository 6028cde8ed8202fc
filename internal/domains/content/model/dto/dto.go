package dto

import (
	"maps"
	"slices"

	"atoll/internal/domains/content/model"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
)

type UpsertSectionRequest struct {
	Locale string         `json:"locale" validate:"omitempty,locale"`
	Data   types.JSONText `json:"data"   validate:"required"         swaggertype:"object"`
}

func (r *UpsertSectionRequest) ToModel(key, locale, user string) model.Section {
	return model.Section{
		ID:       uuid.NewString(),
		Key:      key,
		Locale:   locale,
		Data:     r.Data,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

type SectionResponse struct {
	Key    string         `json:"key"`
	Locale string         `json:"locale"`
	Data   types.JSONText `json:"data" swaggertype:"object"`
	gDto.Metadata
}

func (r *SectionResponse) FromModel(m model.Section) {
	r.Key = m.Key
	r.Locale = m.Locale
	r.Data = m.Data
	r.Metadata.FromModel(m.Metadata)
}

type UpsertTranslationsRequest struct {
	Translations map[string]string `json:"translations" validate:"required,min=1,dive,keys,min=1,max=200,endkeys,max=5000"`
}

// ToModels returns one row per key, ordered by key.
func (r *UpsertTranslationsRequest) ToModels(locale, user string) []model.Translation {
	now := timezone.Now()
	keys := slices.Sorted(maps.Keys(r.Translations))

	res := make([]model.Translation, len(keys))
	for i, key := range keys {
		res[i] = model.Translation{
			ID:       uuid.NewString(),
			Locale:   locale,
			Key:      key,
			Value:    r.Translations[key],
			Metadata: gModel.NewMetadata(now, user),
		}
	}

	return res
}

type TranslationsResponse struct {
	Locale       string            `json:"locale"`
	Translations map[string]string `json:"translations"`
}

func (r *TranslationsResponse) FromModels(locale string, models []model.Translation) {
	r.Locale = locale
	r.Translations = make(map[string]string, len(models))

	for _, m := range models {
		r.Translations[m.Key] = m.Value
	}
}
