package model

import "atoll/shared/model"

const (
	TableName  = "reviews"
	EntityName = "review"

	FieldID         = "id"
	FieldPropertyID = "property_id"
	FieldPackageID  = "package_id"
	FieldRating     = "rating"
	FieldApproved   = "approved"

	MinRating = 1
	MaxRating = 5
)

// Review rates either a property or a package, never both.
type Review struct {
	ID         string  `db:"id"`
	PropertyID *string `db:"property_id"`
	PackageID  *string `db:"package_id"`
	Name       string  `db:"name"`
	Rating     int     `db:"rating"`
	Comment    string  `db:"comment"`
	Approved   bool    `db:"approved"`
	model.Metadata
}

type Stats struct {
	Total         int     `db:"total"`
	Approved      int     `db:"approved"`
	Recent        int     `db:"recent"`
	AverageRating float64 `db:"average_rating"`
}
