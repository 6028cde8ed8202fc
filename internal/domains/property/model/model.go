package model

import (
	"atoll/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "properties"
	EntityName = "property"

	FieldID            = "id"
	FieldName          = "name"
	FieldPropertyType  = "property_type"
	FieldLocationID    = "location_id"
	FieldPricePerNight = "price_per_night"
	FieldIsFeatured    = "is_featured"
	FieldImages        = "images"

	AmenityTableName  = "property_amenities"
	AmenityEntityName = "property_amenity"

	FieldPropertyID = "property_id"
	FieldAmenityID  = "amenity_id"

	ImageDirectory = "property"
)

type PropertyType string

const (
	PropertyTypeResort     PropertyType = "resort"
	PropertyTypeGuesthouse PropertyType = "guesthouse"
	PropertyTypeHotel      PropertyType = "hotel"
	PropertyTypeVilla      PropertyType = "villa"
	PropertyTypeLiveaboard PropertyType = "liveaboard"
)

func (t PropertyType) IsValid() bool {
	switch t {
	case PropertyTypeResort, PropertyTypeGuesthouse, PropertyTypeHotel, PropertyTypeVilla, PropertyTypeLiveaboard:
		return true
	default:
		return false
	}
}

type Property struct {
	ID             string         `db:"id"`
	Name           string         `db:"name"`
	Description    string         `db:"description"`
	PropertyType   PropertyType   `db:"property_type"`
	LocationID     *string        `db:"location_id"`
	LocationName   *string        `column:"name"               db:"location_name" table:"locations"`
	Address        string         `db:"address"`
	WhatsappNumber string         `db:"whatsapp_number"`
	PricePerNight  float64        `db:"price_per_night"`
	IsFeatured     bool           `db:"is_featured"`
	Images         pq.StringArray `db:"images"`
	model.Metadata
}

func (Property) GetJoinQuery() string {
	return "LEFT JOIN locations ON locations.id = properties.location_id"
}

type PropertyAmenity struct {
	PropertyID  string `db:"property_id"`
	AmenityID   string `db:"amenity_id"`
	AmenityName string `column:"name" db:"amenity_name" table:"amenities"`
	AmenityIcon string `column:"icon" db:"amenity_icon" table:"amenities"`
}

func (PropertyAmenity) GetJoinQuery() string {
	return "JOIN amenities ON amenities.id = property_amenities.amenity_id"
}
