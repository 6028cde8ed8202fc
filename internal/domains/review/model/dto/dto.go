package dto

import (
	"strings"

	"atoll/internal/domains/review/model"
	"atoll/shared"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	PropertyID *string `json:"property_id" validate:"required_without=PackageID,excluded_with=PackageID"`
	PackageID  *string `json:"package_id"  validate:"required_without=PropertyID,excluded_with=PropertyID"`
	Name       string  `json:"name"        validate:"required,max=100"`
	Rating     int     `json:"rating"      validate:"required,min=1,max=5"`
	Comment    string  `json:"comment"     validate:"required,max=2000"`
}

// ToModel builds an unapproved review; staff approve it before it is listed publicly.
func (c *CreateReviewRequest) ToModel(user string) model.Review {
	return model.Review{
		ID:         uuid.NewString(),
		PropertyID: c.PropertyID,
		PackageID:  c.PackageID,
		Name:       strings.TrimSpace(c.Name),
		Rating:     c.Rating,
		Comment:    strings.TrimSpace(c.Comment),
		Metadata:   gModel.NewMetadata(timezone.Now(), user),
	}
}

type ApprovalRequest struct {
	Approved *bool `db:"approved" json:"approved" validate:"required"`
}

type ReviewResponse struct {
	ID         string  `json:"id"`
	PropertyID *string `json:"property_id"`
	PackageID  *string `json:"package_id"`
	Name       string  `json:"name"`
	Rating     int     `json:"rating"`
	Comment    string  `json:"comment"`
	Approved   bool    `json:"approved"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(model model.Review) {
	r.ID = model.ID
	r.PropertyID = model.PropertyID
	r.PackageID = model.PackageID
	r.Name = model.Name
	r.Rating = model.Rating
	r.Comment = model.Comment
	r.Approved = model.Approved
	r.Metadata.FromModel(model.Metadata)
}

type GetReviewsResponse struct {
	Reviews   []ReviewResponse `json:"reviews"`
	TotalPage int              `json:"total_page"`
	TotalData int              `json:"total_data"`
}

func (r *GetReviewsResponse) FromModels(models []model.Review, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reviews = make([]ReviewResponse, len(models))
	for i, mod := range models {
		r.Reviews[i].FromModel(mod)
	}
}
