package dto_test

import (
	"testing"

	"atoll/internal/domains/menu/model"
	"atoll/internal/domains/menu/model/dto"
	"atoll/shared/validator"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](value T) *T {
	return &value
}

func TestCreateMenuRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		req     dto.CreateMenuRequest
		wantErr bool
	}{
		{name: "minimal", req: dto.CreateMenuRequest{Name: "Main", Slug: "main-nav"}},
		{name: "with locale", req: dto.CreateMenuRequest{Name: "Main", Slug: "main-nav", Locale: "ru"}},
		{name: "missing slug", req: dto.CreateMenuRequest{Name: "Main"}, wantErr: true},
		{name: "slug with spaces", req: dto.CreateMenuRequest{Name: "Main", Slug: "Main Nav"}, wantErr: true},
		{name: "unsupported locale", req: dto.CreateMenuRequest{Name: "Main", Slug: "main", Locale: "fr"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateStruct(&tt.req)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateMenuItemRequest_Validate(t *testing.T) {
	assert.NoError(t, validator.ValidateStruct(&dto.CreateMenuItemRequest{Title: "Home", LinkType: model.LinkTypeAnchor}))
	assert.Error(t, validator.ValidateStruct(&dto.CreateMenuItemRequest{Title: "Home", LinkType: "mailto"}))
	assert.Error(t, validator.ValidateStruct(&dto.CreateMenuItemRequest{Title: "Home", Position: -1}))
	assert.Error(t, validator.ValidateStruct(&dto.CreateMenuItemRequest{}))
}

func TestCreateMenuRequest_ToModel(t *testing.T) {
	menu := (&dto.CreateMenuRequest{Name: " Footer ", Slug: "footer"}).ToModel("admin-1")

	assert.NotEmpty(t, menu.ID)
	assert.Equal(t, "Footer", menu.Name)
	assert.Equal(t, "en", menu.Locale)
	assert.True(t, menu.IsActive)
	assert.Equal(t, "admin-1", menu.CreatedBy)

	hidden := (&dto.CreateMenuRequest{Name: "Draft", Slug: "draft", Locale: "zh", IsActive: ptr(false)}).ToModel("admin-1")

	assert.Equal(t, "zh", hidden.Locale)
	assert.False(t, hidden.IsActive)
}

func TestCreateMenuItemRequest_ToModel(t *testing.T) {
	item := (&dto.CreateMenuItemRequest{Title: " Villas ", ParentID: ptr("")}).ToModel("menu-1", "admin-1")

	assert.Equal(t, "menu-1", item.MenuID)
	assert.Equal(t, "Villas", item.Title)
	assert.Equal(t, "#", item.URL)
	assert.Equal(t, model.LinkTypeExternal, item.LinkType)
	assert.Nil(t, item.ParentID)
	assert.True(t, item.IsActive)
}

func TestUpdateMenuItemRequest_Fields(t *testing.T) {
	t.Run("empty parent moves the item to the top", func(t *testing.T) {
		fields := (&dto.UpdateMenuItemRequest{ParentID: ptr(""), Position: ptr(0)}).Fields("admin-1")

		value, ok := fields[model.FieldParentID]
		require.True(t, ok)
		assert.Nil(t, value)
		assert.Equal(t, 0, fields[model.FieldPosition])
	})

	t.Run("untouched parent stays out of the update", func(t *testing.T) {
		fields := (&dto.UpdateMenuItemRequest{Title: "Stays"}).Fields("admin-1")

		assert.NotContains(t, fields, model.FieldParentID)
		assert.Equal(t, "Stays", fields[model.FieldTitle])
	})
}

func TestBuildTree(t *testing.T) {
	items := []model.MenuItem{
		{ID: "stays", Title: "Stays", Position: 1, IsActive: true},
		{ID: "home", Title: "Home", Position: 0, IsActive: true},
		{ID: "villas", ParentID: ptr("stays"), Title: "Villas", Position: 2, IsActive: true},
		{ID: "resorts", ParentID: ptr("stays"), Title: "Resorts", Position: 1, IsActive: true},
		{ID: "hidden", Title: "Hidden", Position: 2, IsActive: false},
		{ID: "under-hidden", ParentID: ptr("hidden"), Title: "Under hidden", IsActive: true},
		{ID: "orphan", ParentID: ptr("gone"), Title: "Orphan", Position: 3, IsActive: true},
	}

	t.Run("nests and orders every item", func(t *testing.T) {
		tree := dto.BuildTree(items, false)

		require.Len(t, tree, 4)
		assert.Equal(t, []string{"home", "stays", "hidden", "orphan"}, ids(tree))
		assert.Equal(t, []string{"resorts", "villas"}, ids(tree[1].Children))
		assert.Equal(t, []string{"under-hidden"}, ids(tree[2].Children))
		assert.Empty(t, tree[0].Children)
	})

	t.Run("active only drops inactive branches", func(t *testing.T) {
		tree := dto.BuildTree(items, true)

		assert.Equal(t, []string{"home", "stays", "orphan"}, ids(tree))
	})

	t.Run("a loop in stored data does not recurse forever", func(t *testing.T) {
		loop := []model.MenuItem{
			{ID: "a", ParentID: ptr("b"), Title: "A", IsActive: true},
			{ID: "b", ParentID: ptr("a"), Title: "B", IsActive: true},
		}

		assert.Empty(t, dto.BuildTree(loop, false))
	})
}

func ids(nodes []dto.MenuItemResponse) []string {
	res := make([]string, len(nodes))
	for i, node := range nodes {
		res[i] = node.ID
	}

	return res
}
