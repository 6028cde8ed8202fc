package dto

import (
	"mime/multipart"

	"atoll/internal/domains/property/model"
	"atoll/shared"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type CreatePropertyRequest struct {
	Name           string             `json:"name"            validate:"required,max=200"`
	Description    string             `json:"description"     validate:"required"`
	PropertyType   model.PropertyType `json:"property_type"   validate:"required,enum"`
	LocationID     *string            `json:"location_id"     validate:"omitempty,uuid"`
	Address        string             `json:"address"         validate:"omitempty"`
	WhatsappNumber string             `json:"whatsapp_number" validate:"omitempty,max=20"`
	PricePerNight  float64            `json:"price_per_night" validate:"required,gt=0"`
	IsFeatured     bool               `json:"is_featured"`
	Images         []string           `json:"images"          validate:"omitempty,dive,url"`
	AmenityIDs     []string           `json:"amenity_ids"     validate:"omitempty,unique,dive,uuid"`
}

func (c *CreatePropertyRequest) ToModel(user string) model.Property {
	images := c.Images
	if images == nil {
		images = []string{}
	}

	return model.Property{
		ID:             uuid.NewString(),
		Name:           c.Name,
		Description:    c.Description,
		PropertyType:   c.PropertyType,
		LocationID:     c.LocationID,
		Address:        c.Address,
		WhatsappNumber: c.WhatsappNumber,
		PricePerNight:  c.PricePerNight,
		IsFeatured:     c.IsFeatured,
		Images:         pq.StringArray(images),
		Metadata:       gModel.NewMetadata(timezone.Now(), user),
	}
}

// UpdatePropertyRequest patches the fields that are set. AmenityIDs, when present,
// replaces the whole amenity list.
type UpdatePropertyRequest struct {
	Name           string              `db:"name"            json:"name"            validate:"omitempty,max=200"`
	Description    *string             `db:"description"     json:"description"     validate:"omitempty"`
	PropertyType   *model.PropertyType `db:"property_type"   json:"property_type"   validate:"omitempty,enum"`
	LocationID     *string             `db:"location_id"     json:"location_id"     validate:"omitempty,uuid"`
	Address        *string             `db:"address"         json:"address"         validate:"omitempty"`
	WhatsappNumber *string             `db:"whatsapp_number" json:"whatsapp_number" validate:"omitempty,max=20"`
	PricePerNight  *float64            `db:"price_per_night" json:"price_per_night" validate:"omitempty,gt=0"`
	IsFeatured     *bool               `db:"is_featured"     json:"is_featured"`
	AmenityIDs     *[]string           `json:"amenity_ids"   validate:"omitempty,unique,dive,uuid"`
}

func AmenityModels(propertyID string, amenityIDs []string) []model.PropertyAmenity {
	links := make([]model.PropertyAmenity, len(amenityIDs))
	for i, amenityID := range amenityIDs {
		links[i] = model.PropertyAmenity{PropertyID: propertyID, AmenityID: amenityID}
	}

	return links
}

type UploadImagesRequest struct {
	Files []*multipart.FileHeader `validate:"required,min=1,max=10,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

type DeleteImageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

type AmenityResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

type PropertyResponse struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	PropertyType   string            `json:"property_type"`
	LocationID     *string           `json:"location_id"`
	LocationName   *string           `json:"location_name"`
	Address        string            `json:"address"`
	WhatsappNumber string            `json:"whatsapp_number"`
	PricePerNight  float64           `json:"price_per_night"`
	IsFeatured     bool              `json:"is_featured"`
	Images         []string          `json:"images"`
	Amenities      []AmenityResponse `json:"amenities"`
	gDto.Metadata
}

func (r *PropertyResponse) FromModel(model model.Property, amenities []model.PropertyAmenity) {
	r.ID = model.ID
	r.Name = model.Name
	r.Description = model.Description
	r.PropertyType = string(model.PropertyType)
	r.LocationID = model.LocationID
	r.LocationName = model.LocationName
	r.Address = model.Address
	r.WhatsappNumber = model.WhatsappNumber
	r.PricePerNight = model.PricePerNight
	r.IsFeatured = model.IsFeatured
	r.Images = append([]string{}, model.Images...)
	r.Metadata.FromModel(model.Metadata)

	r.Amenities = make([]AmenityResponse, 0, len(amenities))
	for _, amenity := range amenities {
		r.Amenities = append(r.Amenities, AmenityResponse{
			ID:   amenity.AmenityID,
			Name: amenity.AmenityName,
			Icon: amenity.AmenityIcon,
		})
	}
}

type GetPropertiesResponse struct {
	Properties []PropertyResponse `json:"properties"`
	TotalPage  int                `json:"total_page"`
	TotalData  int                `json:"total_data"`
}

func (r *GetPropertiesResponse) FromModels(models []model.Property, amenities []model.PropertyAmenity, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	byProperty := make(map[string][]model.PropertyAmenity, len(models))
	for _, amenity := range amenities {
		byProperty[amenity.PropertyID] = append(byProperty[amenity.PropertyID], amenity)
	}

	r.Properties = make([]PropertyResponse, len(models))
	for i, mod := range models {
		r.Properties[i].FromModel(mod, byProperty[mod.ID])
	}
}
