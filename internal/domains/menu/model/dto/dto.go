package dto

import (
	"cmp"
	"slices"
	"strings"

	"atoll/internal/domains/menu/model"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
)

const defaultURL = "#"

type CreateMenuRequest struct {
	Name     string `json:"name"      validate:"required,max=100"`
	Slug     string `json:"slug"      validate:"required,max=100,slug"`
	Locale   string `json:"locale"    validate:"omitempty,locale"`
	IsActive *bool  `json:"is_active" validate:"omitempty"`
}

func (c *CreateMenuRequest) ToModel(user string) model.Menu {
	menu := model.Menu{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(c.Name),
		Slug:     c.Slug,
		Locale:   cmp.Or(c.Locale, constant.DefaultLocale),
		IsActive: true,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}

	if c.IsActive != nil {
		menu.IsActive = *c.IsActive
	}

	return menu
}

type UpdateMenuRequest struct {
	Name     string `db:"name"      json:"name"      validate:"omitempty,max=100"`
	Slug     string `db:"slug"      json:"slug"      validate:"omitempty,max=100,slug"`
	Locale   string `db:"locale"    json:"locale"    validate:"omitempty,locale"`
	IsActive *bool  `db:"is_active" json:"is_active" validate:"omitempty"`
}

type CreateMenuItemRequest struct {
	ParentID    *string        `json:"parent_id"    validate:"omitempty"`
	Title       string         `json:"title"        validate:"required,max=100"`
	URL         string         `json:"url"          validate:"omitempty,max=500"`
	LinkType    model.LinkType `json:"link_type"    validate:"omitempty,enum"`
	LinkValue   string         `json:"link_value"   validate:"omitempty,max=500"`
	Position    int            `json:"position"     validate:"omitempty,min=0"`
	IsActive    *bool          `json:"is_active"    validate:"omitempty"`
	TargetBlank bool           `json:"target_blank" validate:"omitempty"`
	Target      string         `json:"target"       validate:"omitempty,max=50"`
}

func (c *CreateMenuItemRequest) ToModel(menuID, user string) model.MenuItem {
	item := model.MenuItem{
		ID:          uuid.NewString(),
		MenuID:      menuID,
		ParentID:    c.ParentID,
		Title:       strings.TrimSpace(c.Title),
		URL:         cmp.Or(strings.TrimSpace(c.URL), defaultURL),
		LinkType:    cmp.Or(c.LinkType, model.LinkTypeExternal),
		LinkValue:   c.LinkValue,
		Position:    c.Position,
		IsActive:    true,
		TargetBlank: c.TargetBlank,
		Target:      c.Target,
		Metadata:    gModel.NewMetadata(timezone.Now(), user),
	}

	if c.ParentID != nil && *c.ParentID == constant.Empty {
		item.ParentID = nil
	}

	if c.IsActive != nil {
		item.IsActive = *c.IsActive
	}

	return item
}

// UpdateMenuItemRequest patches an item. An empty parent_id moves the item to the top level.
type UpdateMenuItemRequest struct {
	ParentID    *string        `db:"parent_id"    json:"parent_id"    validate:"omitempty"`
	Title       string         `db:"title"        json:"title"        validate:"omitempty,max=100"`
	URL         string         `db:"url"          json:"url"          validate:"omitempty,max=500"`
	LinkType    model.LinkType `db:"link_type"    json:"link_type"    validate:"omitempty,enum"`
	LinkValue   *string        `db:"link_value"   json:"link_value"   validate:"omitempty,max=500"`
	Position    *int           `db:"position"     json:"position"     validate:"omitempty,min=0"`
	IsActive    *bool          `db:"is_active"    json:"is_active"    validate:"omitempty"`
	TargetBlank *bool          `db:"target_blank" json:"target_blank" validate:"omitempty"`
	Target      *string        `db:"target"       json:"target"       validate:"omitempty,max=50"`
}

// Fields builds the update map, turning an empty parent_id into NULL.
func (u *UpdateMenuItemRequest) Fields(user string) map[string]any {
	fields := shared.TransformFields(u, user)

	if u.ParentID != nil && *u.ParentID == constant.Empty {
		fields[model.FieldParentID] = nil
	}

	return fields
}

type MenuItemResponse struct {
	ID          string             `json:"id"`
	ParentID    *string            `json:"parent_id"`
	Title       string             `json:"title"`
	URL         string             `json:"url"`
	LinkType    string             `json:"link_type"`
	LinkValue   string             `json:"link_value"`
	Position    int                `json:"position"`
	IsActive    bool               `json:"is_active"`
	TargetBlank bool               `json:"target_blank"`
	Target      string             `json:"target"`
	Children    []MenuItemResponse `json:"children"`
}

func (r *MenuItemResponse) FromModel(model model.MenuItem) {
	r.ID = model.ID
	r.ParentID = model.ParentID
	r.Title = model.Title
	r.URL = model.URL
	r.LinkType = string(model.LinkType)
	r.LinkValue = model.LinkValue
	r.Position = model.Position
	r.IsActive = model.IsActive
	r.TargetBlank = model.TargetBlank
	r.Target = model.Target
	r.Children = []MenuItemResponse{}
}

// BuildTree nests items under their parents, ordered by position then title.
// With activeOnly, inactive items are dropped along with everything below them.
func BuildTree(items []model.MenuItem, activeOnly bool) []MenuItemResponse {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b model.MenuItem) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.Title, b.Title))
	})

	children := make(map[string][]model.MenuItem, len(sorted))
	known := make(map[string]bool, len(sorted))

	for _, item := range sorted {
		known[item.ID] = true
	}

	for _, item := range sorted {
		parent := constant.Empty
		if item.ParentID != nil && known[*item.ParentID] {
			parent = *item.ParentID
		}

		children[parent] = append(children[parent], item)
	}

	return branch(children, constant.Empty, activeOnly, map[string]bool{})
}

func branch(children map[string][]model.MenuItem, parent string, activeOnly bool, seen map[string]bool) []MenuItemResponse {
	res := []MenuItemResponse{}

	for _, item := range children[parent] {
		if (activeOnly && !item.IsActive) || seen[item.ID] {
			continue
		}

		seen[item.ID] = true

		var node MenuItemResponse
		node.FromModel(item)
		node.Children = branch(children, item.ID, activeOnly, seen)

		res = append(res, node)
	}

	return res
}

type MenuResponse struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Slug     string             `json:"slug"`
	Locale   string             `json:"locale"`
	IsActive bool               `json:"is_active"`
	Items    []MenuItemResponse `json:"items,omitempty"`
	gDto.Metadata
}

func (r *MenuResponse) FromModel(model model.Menu) {
	r.ID = model.ID
	r.Name = model.Name
	r.Slug = model.Slug
	r.Locale = model.Locale
	r.IsActive = model.IsActive
	r.Metadata.FromModel(model.Metadata)
}

type GetMenusResponse struct {
	Menus     []MenuResponse `json:"menus"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetMenusResponse) FromModels(models []model.Menu, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Menus = make([]MenuResponse, len(models))
	for i, mod := range models {
		r.Menus[i].FromModel(mod)
	}
}
