package model

import (
	"atoll/shared/model"

	"github.com/jmoiron/sqlx/types"
)

const (
	SectionTableName      = "content_sections"
	SectionEntityName     = "content_section"
	TranslationTableName  = "translations"
	TranslationEntityName = "translation"

	FieldID     = "id"
	FieldKey    = "key"
	FieldLocale = "locale"
	FieldData   = "data"
	FieldValue  = "value"
)

// Section is a keyed block of site copy, such as the homepage hero, stored per locale.
type Section struct {
	ID     string         `db:"id"`
	Key    string         `db:"key"`
	Locale string         `db:"locale"`
	Data   types.JSONText `db:"data"`
	model.Metadata
}

type Translation struct {
	ID     string `db:"id"`
	Locale string `db:"locale"`
	Key    string `db:"key"`
	Value  string `db:"value"`
	model.Metadata
}
