package dto

import (
	"atoll/internal/domains/location/model"
	"atoll/shared"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

type CreateLocationRequest struct {
	Name        string   `json:"name"        validate:"required,max=100"`
	Island      string   `json:"island"      validate:"required,max=100"`
	Atoll       string   `json:"atoll"       validate:"required,max=100"`
	Latitude    *float64 `json:"latitude"    validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `json:"longitude"   validate:"omitempty,min=-180,max=180"`
	Description string   `json:"description" validate:"omitempty"`
}

func (c *CreateLocationRequest) ToModel(user string) model.Location {
	return model.Location{
		ID:          uuid.NewString(),
		Name:        c.Name,
		Island:      c.Island,
		Atoll:       c.Atoll,
		Latitude:    c.Latitude,
		Longitude:   c.Longitude,
		Description: c.Description,
		Metadata:    gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateLocationRequest struct {
	Name        string   `db:"name"        json:"name"        validate:"omitempty,max=100"`
	Island      string   `db:"island"      json:"island"      validate:"omitempty,max=100"`
	Atoll       string   `db:"atoll"       json:"atoll"       validate:"omitempty,max=100"`
	Latitude    *float64 `db:"latitude"    json:"latitude"    validate:"omitempty,min=-90,max=90"`
	Longitude   *float64 `db:"longitude"   json:"longitude"   validate:"omitempty,min=-180,max=180"`
	Description *string  `db:"description" json:"description" validate:"omitempty"`
}

type LocationResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Island      string   `json:"island"`
	Atoll       string   `json:"atoll"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description string   `json:"description"`
	gDto.Metadata
}

func (r *LocationResponse) FromModel(model model.Location) {
	r.ID = model.ID
	r.Name = model.Name
	r.Island = model.Island
	r.Atoll = model.Atoll
	r.Latitude = model.Latitude
	r.Longitude = model.Longitude
	r.Description = model.Description
	r.Metadata.FromModel(model.Metadata)
}

type GetLocationsResponse struct {
	Locations []LocationResponse `json:"locations"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetLocationsResponse) FromModels(models []model.Location, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Locations = make([]LocationResponse, len(models))
	for i, mod := range models {
		r.Locations[i].FromModel(mod)
	}
}
