package dto

import (
	"atoll/internal/domains/amenity/model"
	"atoll/shared"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

type CreateAmenityRequest struct {
	Name string `json:"name" validate:"required,max=100"`
	Icon string `json:"icon" validate:"omitempty,max=50"`
}

func (c *CreateAmenityRequest) ToModel(user string) model.Amenity {
	return model.Amenity{
		ID:       uuid.NewString(),
		Name:     c.Name,
		Icon:     c.Icon,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateAmenityRequest struct {
	Name string  `db:"name" json:"name" validate:"omitempty,max=100"`
	Icon *string `db:"icon" json:"icon" validate:"omitempty,max=50"`
}

type AmenityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	gDto.Metadata
}

func (r *AmenityResponse) FromModel(model model.Amenity) {
	r.ID = model.ID
	r.Name = model.Name
	r.Icon = model.Icon
	r.Metadata.FromModel(model.Metadata)
}

type GetAmenitiesResponse struct {
	Amenities []AmenityResponse `json:"amenities"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetAmenitiesResponse) FromModels(models []model.Amenity, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Amenities = make([]AmenityResponse, len(models))
	for i, mod := range models {
		r.Amenities[i].FromModel(mod)
	}
}
