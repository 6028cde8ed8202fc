package model

import "atoll/shared/model"

const (
	TableName  = "menus"
	EntityName = "menu"

	ItemTableName  = "menu_items"
	ItemEntityName = "menu item"

	FieldID       = "id"
	FieldName     = "name"
	FieldSlug     = "slug"
	FieldLocale   = "locale"
	FieldIsActive = "is_active"

	FieldMenuID   = "menu_id"
	FieldParentID = "parent_id"
	FieldPosition = "position"
	FieldTitle    = "title"
)

type LinkType string

const (
	LinkTypeExternal LinkType = "external"
	LinkTypeInternal LinkType = "internal"
	LinkTypeAnchor   LinkType = "anchor"
)

func (t LinkType) IsValid() bool {
	switch t {
	case LinkTypeExternal, LinkTypeInternal, LinkTypeAnchor:
		return true
	default:
		return false
	}
}

type Menu struct {
	ID       string `db:"id"`
	Name     string `db:"name"`
	Slug     string `db:"slug"`
	Locale   string `db:"locale"`
	IsActive bool   `db:"is_active"`
	model.Metadata
}

// MenuItem is one link of a menu. Items nest through ParentID and sort by Position.
type MenuItem struct {
	ID          string   `db:"id"`
	MenuID      string   `db:"menu_id"`
	ParentID    *string  `db:"parent_id"`
	Title       string   `db:"title"`
	URL         string   `db:"url"`
	LinkType    LinkType `db:"link_type"`
	LinkValue   string   `db:"link_value"`
	Position    int      `db:"position"`
	IsActive    bool     `db:"is_active"`
	TargetBlank bool     `db:"target_blank"`
	Target      string   `db:"target"`
	model.Metadata
}
