package model

import (
	"net/http"
	"time"

	"atoll/shared/model"
)

const (
	TableName  = "redirects"
	EntityName = "redirect"

	FieldID         = "id"
	FieldFromPath   = "from_path"
	FieldToPath     = "to_path"
	FieldStatusCode = "status_code"
	FieldLocale     = "locale"
	FieldIsActive   = "is_active"
	FieldStartsAt   = "starts_at"
	FieldEndsAt     = "ends_at"

	StatusPermanent = http.StatusMovedPermanently
	StatusTemporary = http.StatusFound
)

type Redirect struct {
	ID         string     `db:"id"`
	FromPath   string     `db:"from_path"`
	ToPath     string     `db:"to_path"`
	StatusCode int        `db:"status_code"`
	Locale     string     `db:"locale"`
	IsActive   bool       `db:"is_active"`
	StartsAt   *time.Time `db:"starts_at"`
	EndsAt     *time.Time `db:"ends_at"`
	model.Metadata
}

// Live reports whether the redirect applies at now: active, started, and not yet ended.
func (r Redirect) Live(now time.Time) bool {
	if !r.IsActive {
		return false
	}

	if r.StartsAt != nil && now.Before(*r.StartsAt) {
		return false
	}

	return r.EndsAt == nil || now.Before(*r.EndsAt)
}
