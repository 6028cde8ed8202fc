package dto

import (
	"cmp"
	"strings"
	"time"

	"atoll/internal/domains/redirect/model"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

type CreateRedirectRequest struct {
	FromPath   string     `json:"from_path"   validate:"required,max=500,startswith=/"`
	ToPath     string     `json:"to_path"     validate:"required,max=500"`
	StatusCode int        `json:"status_code" validate:"omitempty,oneof=301 302"`
	Locale     string     `json:"locale"      validate:"omitempty,locale"`
	IsActive   *bool      `json:"is_active"   validate:"omitempty"`
	StartsAt   *time.Time `json:"starts_at"   validate:"omitempty"`
	EndsAt     *time.Time `json:"ends_at"     validate:"omitempty"`
}

func (c *CreateRedirectRequest) ToModel(user string) model.Redirect {
	redirect := model.Redirect{
		ID:         uuid.NewString(),
		FromPath:   strings.TrimSpace(c.FromPath),
		ToPath:     strings.TrimSpace(c.ToPath),
		StatusCode: cmp.Or(c.StatusCode, model.StatusPermanent),
		Locale:     cmp.Or(c.Locale, constant.DefaultLocale),
		IsActive:   true,
		StartsAt:   c.StartsAt,
		EndsAt:     c.EndsAt,
		Metadata:   gModel.NewMetadata(timezone.Now(), user),
	}

	if c.IsActive != nil {
		redirect.IsActive = *c.IsActive
	}

	return redirect
}

type UpdateRedirectRequest struct {
	FromPath   string     `db:"from_path"   json:"from_path"   validate:"omitempty,max=500,startswith=/"`
	ToPath     string     `db:"to_path"     json:"to_path"     validate:"omitempty,max=500"`
	StatusCode int        `db:"status_code" json:"status_code" validate:"omitempty,oneof=301 302"`
	Locale     string     `db:"locale"      json:"locale"      validate:"omitempty,locale"`
	IsActive   *bool      `db:"is_active"   json:"is_active"   validate:"omitempty"`
	StartsAt   *time.Time `db:"starts_at"   json:"starts_at"   validate:"omitempty"`
	EndsAt     *time.Time `db:"ends_at"     json:"ends_at"     validate:"omitempty"`
}

// Apply overlays the patch on the stored redirect so the merged result can be checked.
func (u *UpdateRedirectRequest) Apply(current model.Redirect) model.Redirect {
	current.FromPath = cmp.Or(strings.TrimSpace(u.FromPath), current.FromPath)
	current.ToPath = cmp.Or(strings.TrimSpace(u.ToPath), current.ToPath)

	if u.StartsAt != nil {
		current.StartsAt = u.StartsAt
	}

	if u.EndsAt != nil {
		current.EndsAt = u.EndsAt
	}

	return current
}

type RedirectResponse struct {
	ID         string     `json:"id"`
	FromPath   string     `json:"from_path"`
	ToPath     string     `json:"to_path"`
	StatusCode int        `json:"status_code"`
	Locale     string     `json:"locale"`
	IsActive   bool       `json:"is_active"`
	StartsAt   *time.Time `json:"starts_at"`
	EndsAt     *time.Time `json:"ends_at"`
	gDto.Metadata
}

func (r *RedirectResponse) FromModel(model model.Redirect) {
	r.ID = model.ID
	r.FromPath = model.FromPath
	r.ToPath = model.ToPath
	r.StatusCode = model.StatusCode
	r.Locale = model.Locale
	r.IsActive = model.IsActive
	r.StartsAt = model.StartsAt
	r.EndsAt = model.EndsAt
	r.Metadata.FromModel(model.Metadata)
}

type GetRedirectsResponse struct {
	Redirects []RedirectResponse `json:"redirects"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetRedirectsResponse) FromModels(models []model.Redirect, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Redirects = make([]RedirectResponse, len(models))
	for i, mod := range models {
		r.Redirects[i].FromModel(mod)
	}
}
