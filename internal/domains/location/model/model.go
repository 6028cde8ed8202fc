package model

import "atoll/shared/model"

const (
	TableName  = "locations"
	EntityName = "location"

	FieldID          = "id"
	FieldName        = "name"
	FieldIsland      = "island"
	FieldAtoll       = "atoll"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldDescription = "description"
)

type Location struct {
	ID          string   `db:"id"`
	Name        string   `db:"name"`
	Island      string   `db:"island"`
	Atoll       string   `db:"atoll"`
	Latitude    *float64 `db:"latitude"`
	Longitude   *float64 `db:"longitude"`
	Description string   `db:"description"`
	model.Metadata
}
