package dto_test

import (
	"testing"
	"time"

	"atoll/internal/domains/page/model"
	"atoll/internal/domains/page/model/dto"

	"github.com/jmoiron/sqlx/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{title: "About Us", want: "about-us"},
		{title: "  Island -- Hopping  Tours ", want: "island-hopping-tours"},
		{title: "Bali & Lombok: 2026!", want: "bali-lombok-2026"},
		{title: "Café Menu", want: "caf-menu"},
		{title: "!!!", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, dto.Slugify(tt.title))
		})
	}
}

func TestSlugCandidate(t *testing.T) {
	assert.Equal(t, "about", dto.SlugCandidate("about", 0))
	assert.Equal(t, "about-1", dto.SlugCandidate("about", 1))
	assert.Equal(t, "about-12", dto.SlugCandidate("about", 12))
}

func TestCreatePageRequest_ToModel(t *testing.T) {
	req := dto.CreatePageRequest{Title: "Contact"}
	page := req.ToModel("editor-1", "contact")

	assert.Equal(t, model.StatusDraft, page.Status)
	assert.Equal(t, "en", page.Locale)
	assert.Equal(t, model.DefaultRobots, page.Robots)
	assert.Equal(t, model.DefaultTemplate, page.Template)
	assert.Equal(t, "/contact/", page.Path)
	assert.Equal(t, 1, page.Version)
	assert.JSONEq(t, `{}`, string(page.JSONLD))
}

func TestPage_Live(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	before := now.Add(-time.Hour)
	after := now.Add(time.Hour)

	tests := []struct {
		name string
		page model.Page
		want bool
	}{
		{name: "published without window", page: model.Page{Status: model.StatusPublished}, want: true},
		{name: "draft", page: model.Page{Status: model.StatusDraft}, want: false},
		{name: "archived", page: model.Page{Status: model.StatusArchived}, want: false},
		{name: "not yet started", page: model.Page{Status: model.StatusPublished, PublishAt: &after}, want: false},
		{name: "inside window", page: model.Page{Status: model.StatusPublished, PublishAt: &before, UnpublishAt: &after}, want: true},
		{name: "ended", page: model.Page{Status: model.StatusPublished, UnpublishAt: &before}, want: false},
		{name: "ends exactly now", page: model.Page{Status: model.StatusPublished, UnpublishAt: &now}, want: false},
		{name: "starts exactly now", page: model.Page{Status: model.StatusPublished, PublishAt: &now}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Live(now))
		})
	}
}

func TestComposition_ForLocale(t *testing.T) {
	composition := dto.Composition{
		Page: model.Page{ID: "p-1"},
		Blocks: []model.Block{
			{ID: "shared"},
			{ID: "english", LocaleOverride: "en"},
			{ID: "indonesian", LocaleOverride: "id"},
		},
	}

	filtered := composition.ForLocale("id")

	require.Len(t, filtered.Blocks, 2)
	assert.Equal(t, "shared", filtered.Blocks[0].ID)
	assert.Equal(t, "indonesian", filtered.Blocks[1].ID)
	assert.Len(t, composition.Blocks, 3)

	res := filtered.Response()
	assert.Equal(t, "p-1", res.ID)
	assert.Len(t, res.Blocks, 2)
}

func TestCreateBlockRequest_ToModel(t *testing.T) {
	order := 5

	appended := (&dto.CreateBlockRequest{Type: model.BlockText}).ToModel("p-1", 2, "editor-1")
	placed := (&dto.CreateBlockRequest{Type: model.BlockText, Order: &order}).ToModel("p-1", 2, "editor-1")

	assert.Equal(t, 2, appended.Position)
	assert.Equal(t, 5, placed.Position)
	assert.JSONEq(t, `{}`, string(appended.VisibilityRules))
}

func TestVersionSnapshotRoundTrip(t *testing.T) {
	ogImage := "7a1c2b3d-0000-4000-8000-000000000001"
	page := model.Page{
		ID:              "p-1",
		Title:           "Villas",
		Content:         "Our villas",
		MetaDescription: "Private villas",
		SeoTitle:        "Villas in Bali",
		Robots:          "index, follow",
		JSONLD:          types.JSONText(`{"@type":"WebPage"}`),
		OgImageID:       &ogImage,
	}
	blocks := []model.Block{
		{ID: "b-1", Type: model.BlockText, Position: 0, Data: types.JSONText(`{"text":"welcome"}`), LocaleOverride: "en"},
		{ID: "b-2", Type: model.BlockGallery, Position: 1, ExperimentID: "exp-a"},
	}

	version, err := dto.NewVersion(page, blocks, 4, "editor-1")
	require.NoError(t, err)

	assert.Equal(t, 4, version.VersionNumber)
	assert.Equal(t, "p-1", version.PageID)
	assert.Equal(t, "Villas", version.Title)

	fields, restored, err := dto.Restore(version, "editor-2")
	require.NoError(t, err)

	assert.Equal(t, "Our villas", fields[model.FieldContent])
	assert.Equal(t, "Villas in Bali", fields[model.FieldSeoTitle])
	assert.Equal(t, &ogImage, fields[model.FieldOgImageID])
	assert.JSONEq(t, `{"@type":"WebPage"}`, string(fields[model.FieldJSONLD].(types.JSONText)))

	require.Len(t, restored, 2)
	assert.NotEqual(t, "b-1", restored[0].ID)
	assert.Equal(t, "p-1", restored[0].PageID)
	assert.Equal(t, "en", restored[0].LocaleOverride)
	assert.JSONEq(t, `{"text":"welcome"}`, string(restored[0].Data))
	assert.Equal(t, model.BlockGallery, restored[1].Type)
	assert.Equal(t, 1, restored[1].Position)
	assert.Equal(t, "exp-a", restored[1].ExperimentID)
	assert.Equal(t, "editor-2", restored[1].CreatedBy)
}

func TestRestoreRejectsCorruptSnapshot(t *testing.T) {
	_, _, err := dto.Restore(model.Version{BlocksData: types.JSONText(`{"not":"a list"}`)}, "editor-1")

	assert.Error(t, err)
}

func TestCreateCommentRequest_ToModel(t *testing.T) {
	comment := (&dto.CreateCommentRequest{Content: "ok", Mentions: []string{"ayu", "", "AYU", "budi"}}).ToModel("t-1", "editor-1")

	assert.Equal(t, []string{"ayu", "budi"}, []string(comment.Mentions))
	assert.Equal(t, "editor-1", comment.AuthorID)
}
