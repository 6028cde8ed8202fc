package model

import (
	"time"

	"atoll/shared/model"
)

const (
	TableName  = "availabilities"
	EntityName = "availability"

	FieldID            = "id"
	FieldPropertyID    = "property_id"
	FieldDate          = "date"
	FieldIsAvailable   = "is_available"
	FieldPriceOverride = "price_override"
)

// Availability overrides a single night of a property: it can close the date or
// change its price.
type Availability struct {
	ID            string    `db:"id"`
	PropertyID    string    `db:"property_id"`
	PropertyName  string    `column:"name"       db:"property_name" table:"properties"`
	Date          time.Time `db:"date"`
	IsAvailable   bool      `db:"is_available"`
	PriceOverride *float64  `db:"price_override"`
	Notes         string    `db:"notes"`
	model.Metadata
}

func (Availability) GetJoinQuery() string {
	return "JOIN properties ON properties.id = availabilities.property_id"
}
