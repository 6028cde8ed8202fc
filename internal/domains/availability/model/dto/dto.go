package dto

import (
	"time"

	"atoll/internal/domains/availability/model"
	"atoll/shared"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

type CreateAvailabilityRequest struct {
	PropertyID    string   `json:"property_id"    validate:"required,uuid"`
	Date          string   `json:"date"           validate:"required,date"`
	IsAvailable   *bool    `json:"is_available"`
	PriceOverride *float64 `json:"price_override" validate:"omitempty,gt=0"`
	Notes         string   `json:"notes"          validate:"omitempty,max=500"`
}

func (c *CreateAvailabilityRequest) ToModel(user string, date time.Time) model.Availability {
	available := true
	if c.IsAvailable != nil {
		available = *c.IsAvailable
	}

	return model.Availability{
		ID:            uuid.NewString(),
		PropertyID:    c.PropertyID,
		Date:          date,
		IsAvailable:   available,
		PriceOverride: c.PriceOverride,
		Notes:         c.Notes,
		Metadata:      gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateAvailabilityRequest struct {
	IsAvailable   *bool    `db:"is_available"   json:"is_available"`
	PriceOverride *float64 `db:"price_override" json:"price_override" validate:"omitempty,gt=0"`
	Notes         *string  `db:"notes"          json:"notes"          validate:"omitempty,max=500"`
}

type AvailabilityResponse struct {
	ID            string   `json:"id"`
	PropertyID    string   `json:"property_id"`
	PropertyName  string   `json:"property_name"`
	Date          string   `json:"date"`
	IsAvailable   bool     `json:"is_available"`
	PriceOverride *float64 `json:"price_override"`
	Notes         string   `json:"notes"`
	gDto.Metadata
}

func (r *AvailabilityResponse) FromModel(model model.Availability) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.PropertyName = model.PropertyName
	r.Date = timezone.FormatDate(model.Date)
	r.IsAvailable = model.IsAvailable
	r.PriceOverride = model.PriceOverride
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetAvailabilitiesResponse struct {
	Availabilities []AvailabilityResponse `json:"availabilities"`
	TotalPage      int                    `json:"total_page"`
	TotalData      int                    `json:"total_data"`
}

func (r *GetAvailabilitiesResponse) FromModels(models []model.Availability, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Availabilities = make([]AvailabilityResponse, len(models))
	for i, mod := range models {
		r.Availabilities[i].FromModel(mod)
	}
}

// CalendarRequest bounds the public per-property listing; both ends are inclusive.
type CalendarRequest struct {
	PropertyID string `validate:"required"`
	From       string `json:"from" validate:"required,date"`
	To         string `json:"to"   validate:"required,date"`
}
