package model

import (
	"time"

	"atoll/shared/model"

	"github.com/lib/pq"
)

const (
	TableName  = "packages"
	EntityName = "package"

	FieldID              = "id"
	FieldName            = "name"
	FieldCategory        = "category"
	FieldIsFeatured      = "is_featured"
	FieldDifficultyLevel = "difficulty_level"
	FieldPrice           = "price"
	FieldStartDate       = "start_date"
	FieldEndDate         = "end_date"
	FieldGroupSizeMin    = "group_size_min"
	FieldGroupSizeMax    = "group_size_max"

	FieldPackageID  = "package_id"
	FieldPropertyID = "property_id"
	FieldPosition   = "position"
	FieldDay        = "day"

	PropertyTableName     = "package_properties"
	PropertyEntityName    = "package_property"
	DestinationTableName  = "package_destinations"
	DestinationEntityName = "package_destination"
	ItineraryTableName    = "package_itineraries"
	ItineraryEntityName   = "package_itinerary"
	InclusionTableName    = "package_inclusions"
	InclusionEntityName   = "package_inclusion"
	ActivityTableName     = "package_activities"
	ActivityEntityName    = "package_activity"

	// CategoryExperience marks activity rows managed through the experiences list.
	CategoryExperience = "experience"
)

type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyModerate    Difficulty = "moderate"
	DifficultyChallenging Difficulty = "challenging"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyModerate, DifficultyChallenging:
		return true
	default:
		return false
	}
}

type InclusionCategory string

const (
	InclusionIncluded InclusionCategory = "included"
	InclusionExcluded InclusionCategory = "excluded"
	InclusionOptional InclusionCategory = "optional"
)

func (c InclusionCategory) IsValid() bool {
	switch c {
	case InclusionIncluded, InclusionExcluded, InclusionOptional:
		return true
	default:
		return false
	}
}

type Package struct {
	ID                    string         `db:"id"`
	Name                  string         `db:"name"`
	Description           string         `db:"description"`
	DetailedDescription   string         `db:"detailed_description"`
	Price                 float64        `db:"price"`
	OriginalPrice         *float64       `db:"original_price"`
	DiscountPercentage    *float64       `db:"discount_percentage"`
	Duration              int            `db:"duration"`
	IsFeatured            bool           `db:"is_featured"`
	StartDate             *time.Time     `db:"start_date"`
	EndDate               *time.Time     `db:"end_date"`
	Category              string         `db:"category"`
	DifficultyLevel       Difficulty     `db:"difficulty_level"`
	GroupSizeMin          int            `db:"group_size_min"`
	GroupSizeMax          int            `db:"group_size_max"`
	AccommodationType     string         `db:"accommodation_type"`
	RoomType              string         `db:"room_type"`
	MealPlan              string         `db:"meal_plan"`
	TransportationDetails string         `db:"transportation_details"`
	AirportTransfers      bool           `db:"airport_transfers"`
	BestTimeToVisit       string         `db:"best_time_to_visit"`
	WeatherInfo           string         `db:"weather_info"`
	WhatToBring           pq.StringArray `db:"what_to_bring"`
	ImportantNotes        pq.StringArray `db:"important_notes"`
	BookingTerms          string         `db:"booking_terms"`
	CancellationPolicy    string         `db:"cancellation_policy"`
	PaymentTerms          string         `db:"payment_terms"`
	Images                pq.StringArray `db:"images"`
	model.Metadata
}

type PackageProperty struct {
	PackageID     string  `db:"package_id"`
	PropertyID    string  `db:"property_id"`
	PropertyName  string  `column:"name"            db:"property_name"   table:"properties"`
	PropertyType  string  `column:"property_type"   db:"property_type"   table:"properties"`
	PricePerNight float64 `column:"price_per_night" db:"price_per_night" table:"properties"`
}

func (PackageProperty) GetJoinQuery() string {
	return "JOIN properties ON properties.id = package_properties.property_id"
}

type Destination struct {
	ID           string         `db:"id"`
	PackageID    string         `db:"package_id"`
	LocationID   string         `db:"location_id"`
	LocationName string         `column:"name"  db:"location_name"  table:"locations"`
	Island       string         `column:"island" db:"location_island" table:"locations"`
	DurationDays int            `db:"duration_days"`
	Description  string         `db:"description"`
	Highlights   pq.StringArray `db:"highlights"`
	Activities   pq.StringArray `db:"activities"`
	Position     int            `db:"position"`
}

func (Destination) GetJoinQuery() string {
	return "JOIN locations ON locations.id = package_destinations.location_id"
}

// ItineraryDay keeps activity names, not ids; details are matched by name when read.
type ItineraryDay struct {
	ID             string         `db:"id"`
	PackageID      string         `db:"package_id"`
	Day            int            `db:"day"`
	Title          string         `db:"title"`
	Description    string         `db:"description"`
	Activities     pq.StringArray `db:"activities"`
	Meals          pq.StringArray `db:"meals"`
	Accommodation  string         `db:"accommodation"`
	Transportation string         `db:"transportation"`
}

type Inclusion struct {
	ID          string            `db:"id"`
	PackageID   string            `db:"package_id"`
	Category    InclusionCategory `db:"category"`
	Item        string            `db:"item"`
	Description string            `db:"description"`
	Icon        string            `db:"icon"`
}

type Activity struct {
	ID          string     `db:"id"`
	PackageID   string     `db:"package_id"`
	Name        string     `db:"name"`
	Description string     `db:"description"`
	Duration    string     `db:"duration"`
	Difficulty  Difficulty `db:"difficulty"`
	Category    string     `db:"category"`
	Included    bool       `db:"included"`
	Price       string     `db:"price"`
}
