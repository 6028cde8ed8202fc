package dto

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"atoll/internal/domains/page/model"
	"atoll/shared"
	"atoll/shared/constant"
	gDto "atoll/shared/dto"
	gModel "atoll/shared/model"
	"atoll/shared/timezone"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

var (
	slugInvalidChars = regexp.MustCompile(`[^a-z0-9\s-]`)
	slugWhitespace   = regexp.MustCompile(`\s+`)
	slugDashes       = regexp.MustCompile(`-+`)

	emptyObject = types.JSONText("{}")
	emptyList   = types.JSONText("[]")
)

// Slugify lowercases title, drops everything but letters, digits, spaces and dashes,
// and joins words with single dashes.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugInvalidChars.ReplaceAllString(slug, constant.Empty)
	slug = slugWhitespace.ReplaceAllString(slug, "-")
	slug = slugDashes.ReplaceAllString(slug, "-")

	return strings.Trim(slug, "-")
}

// SlugCandidate is the n-th alternative for a taken slug; 0 is the slug itself.
func SlugCandidate(base string, n int) string {
	if n == 0 {
		return base
	}

	return fmt.Sprintf("%s-%d", base, n)
}

// DefaultPath is the path a page gets when none is given.
func DefaultPath(slug string) string {
	return "/" + slug + "/"
}

func jsonOrDefault(value, fallback types.JSONText) types.JSONText {
	if len(value) == 0 {
		return fallback
	}

	return value
}

func formatTime(value *time.Time) *string {
	if value == nil {
		return nil
	}

	formatted := timezone.Format(*value, constant.DateFormat)

	return &formatted
}

type CreatePageRequest struct {
	Title           string         `json:"title"            validate:"required,max=200"`
	Slug            string         `json:"slug"             validate:"omitempty,max=200,slug"`
	Content         string         `json:"content"`
	MetaDescription string         `json:"meta_description"`
	MetaKeywords    string         `json:"meta_keywords"    validate:"omitempty,max=500"`
	Status          model.Status   `json:"status"           validate:"omitempty,enum"`
	Locale          string         `json:"locale"           validate:"omitempty,locale"`
	IsHome          bool           `json:"is_home"`
	SeoTitle        string         `json:"seo_title"        validate:"omitempty,max=200"`
	SeoDescription  string         `json:"seo_description"`
	CanonicalURL    string         `json:"canonical_url"    validate:"omitempty,url"`
	Robots          string         `json:"robots"           validate:"omitempty,max=100"`
	JSONLD          types.JSONText `json:"json_ld"          swaggertype:"object"`
	OgTitle         string         `json:"og_title"         validate:"omitempty,max=200"`
	OgImageID       *string        `json:"og_image_id"      validate:"omitempty,uuid"`
	PublishAt       *time.Time     `json:"publish_at"`
	UnpublishAt     *time.Time     `json:"unpublish_at"`
	Template        string         `json:"template"         validate:"omitempty,max=100"`
	ParentID        *string        `json:"parent_id"        validate:"omitempty,uuid"`
	Path            string         `json:"path"             validate:"omitempty,max=500"`
}

// ToModel builds a version 1 page under slug. Status, locale, robots, template and
// path fall back to their defaults when empty.
func (r *CreatePageRequest) ToModel(user, slug string) model.Page {
	status := r.Status
	if status == constant.Empty {
		status = model.StatusDraft
	}

	locale := r.Locale
	if locale == constant.Empty {
		locale = constant.DefaultLocale
	}

	robots := r.Robots
	if robots == constant.Empty {
		robots = model.DefaultRobots
	}

	template := r.Template
	if template == constant.Empty {
		template = model.DefaultTemplate
	}

	path := r.Path
	if path == constant.Empty {
		path = DefaultPath(slug)
	}

	return model.Page{
		ID:              uuid.NewString(),
		Title:           r.Title,
		Slug:            slug,
		Content:         r.Content,
		MetaDescription: r.MetaDescription,
		MetaKeywords:    r.MetaKeywords,
		Status:          status,
		Locale:          locale,
		IsHome:          r.IsHome,
		SeoTitle:        r.SeoTitle,
		SeoDescription:  r.SeoDescription,
		CanonicalURL:    r.CanonicalURL,
		Robots:          robots,
		JSONLD:          jsonOrDefault(r.JSONLD, emptyObject),
		OgTitle:         r.OgTitle,
		OgImageID:       r.OgImageID,
		PublishAt:       r.PublishAt,
		UnpublishAt:     r.UnpublishAt,
		Template:        template,
		ParentID:        r.ParentID,
		Path:            path,
		Version:         1,
		Metadata:        gModel.NewMetadata(timezone.Now(), user),
	}
}

// UpdatePageRequest patches a page. Status moves only through publish, unpublish and archive.
type UpdatePageRequest struct {
	Title           *string         `db:"title"            json:"title"            validate:"omitempty,min=1,max=200"`
	Slug            *string         `db:"slug"             json:"slug"             validate:"omitempty,max=200,slug"`
	Content         *string         `db:"content"          json:"content"`
	MetaDescription *string         `db:"meta_description" json:"meta_description"`
	MetaKeywords    *string         `db:"meta_keywords"    json:"meta_keywords"    validate:"omitempty,max=500"`
	Locale          *string         `db:"locale"           json:"locale"           validate:"omitempty,locale"`
	IsHome          *bool           `db:"is_home"          json:"is_home"`
	SeoTitle        *string         `db:"seo_title"        json:"seo_title"        validate:"omitempty,max=200"`
	SeoDescription  *string         `db:"seo_description"  json:"seo_description"`
	CanonicalURL    *string         `db:"canonical_url"    json:"canonical_url"    validate:"omitempty,url"`
	Robots          *string         `db:"robots"           json:"robots"           validate:"omitempty,max=100"`
	JSONLD          *types.JSONText `db:"json_ld"          json:"json_ld"          swaggertype:"object"`
	OgTitle         *string         `db:"og_title"         json:"og_title"         validate:"omitempty,max=200"`
	OgImageID       *string         `db:"og_image_id"      json:"og_image_id"      validate:"omitempty,uuid"`
	PublishAt       *time.Time      `db:"publish_at"       json:"publish_at"`
	UnpublishAt     *time.Time      `db:"unpublish_at"     json:"unpublish_at"`
	Template        *string         `db:"template"         json:"template"         validate:"omitempty,max=100"`
	ParentID        *string         `db:"parent_id"        json:"parent_id"        validate:"omitempty,uuid"`
	Path            *string         `db:"path"             json:"path"             validate:"omitempty,max=500"`
}

type BlockResponse struct {
	ID              string         `json:"id"`
	PageID          string         `json:"page_id"`
	Type            string         `json:"type"`
	Order           int            `json:"order"`
	Data            types.JSONText `json:"data"             swaggertype:"object"`
	ExperimentID    string         `json:"experiment_id"`
	LocaleOverride  string         `json:"locale_override"`
	VisibilityRules types.JSONText `json:"visibility_rules" swaggertype:"object"`
	gDto.Metadata
}

func (r *BlockResponse) FromModel(m model.Block) {
	r.ID = m.ID
	r.PageID = m.PageID
	r.Type = string(m.Type)
	r.Order = m.Position
	r.Data = jsonOrDefault(m.Data, emptyObject)
	r.ExperimentID = m.ExperimentID
	r.LocaleOverride = m.LocaleOverride
	r.VisibilityRules = jsonOrDefault(m.VisibilityRules, emptyObject)
	r.Metadata.FromModel(m.Metadata)
}

func BlockResponses(blocks []model.Block) []BlockResponse {
	res := make([]BlockResponse, len(blocks))
	for i, block := range blocks {
		res[i].FromModel(block)
	}

	return res
}

type PageResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	Slug            string          `json:"slug"`
	Content         string          `json:"content"`
	MetaDescription string          `json:"meta_description"`
	MetaKeywords    string          `json:"meta_keywords"`
	Status          string          `json:"status"`
	Locale          string          `json:"locale"`
	IsHome          bool            `json:"is_home"`
	SeoTitle        string          `json:"seo_title"`
	SeoDescription  string          `json:"seo_description"`
	CanonicalURL    string          `json:"canonical_url"`
	Robots          string          `json:"robots"`
	JSONLD          types.JSONText  `json:"json_ld"          swaggertype:"object"`
	OgTitle         string          `json:"og_title"`
	OgImageID       *string         `json:"og_image_id"`
	PublishAt       *string         `json:"publish_at"`
	UnpublishAt     *string         `json:"unpublish_at"`
	Template        string          `json:"template"`
	ParentID        *string         `json:"parent_id"`
	Path            string          `json:"path"`
	Version         int             `json:"version"`
	Blocks          []BlockResponse `json:"blocks,omitempty"`
	gDto.Metadata
}

func (r *PageResponse) FromModel(m model.Page) {
	r.ID = m.ID
	r.Title = m.Title
	r.Slug = m.Slug
	r.Content = m.Content
	r.MetaDescription = m.MetaDescription
	r.MetaKeywords = m.MetaKeywords
	r.Status = string(m.Status)
	r.Locale = m.Locale
	r.IsHome = m.IsHome
	r.SeoTitle = m.SeoTitle
	r.SeoDescription = m.SeoDescription
	r.CanonicalURL = m.CanonicalURL
	r.Robots = m.Robots
	r.JSONLD = jsonOrDefault(m.JSONLD, emptyObject)
	r.OgTitle = m.OgTitle
	r.OgImageID = m.OgImageID
	r.PublishAt = formatTime(m.PublishAt)
	r.UnpublishAt = formatTime(m.UnpublishAt)
	r.Template = m.Template
	r.ParentID = m.ParentID
	r.Path = m.Path
	r.Version = m.Version
	r.Metadata.FromModel(m.Metadata)
}

type GetPagesResponse struct {
	Pages     []PageResponse `json:"pages"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetPagesResponse) FromModels(models []model.Page, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Pages = make([]PageResponse, len(models))
	for i, m := range models {
		r.Pages[i].FromModel(m)
	}
}

// Composition is a page with its blocks in display order.
type Composition struct {
	Page   model.Page    `json:"page"`
	Blocks []model.Block `json:"blocks"`
}

// ForLocale keeps the blocks without an override plus those overridden to locale.
func (c Composition) ForLocale(locale string) Composition {
	blocks := make([]model.Block, 0, len(c.Blocks))

	for _, block := range c.Blocks {
		if block.LocaleOverride == constant.Empty || block.LocaleOverride == locale {
			blocks = append(blocks, block)
		}
	}

	c.Blocks = blocks

	return c
}

func (c Composition) Response() PageResponse {
	var res PageResponse

	res.FromModel(c.Page)
	res.Blocks = BlockResponses(c.Blocks)

	return res
}

type CreateBlockRequest struct {
	Type            model.BlockType `json:"type"             validate:"required,enum"`
	Order           *int            `json:"order"            validate:"omitempty,min=0"`
	Data            types.JSONText  `json:"data"             swaggertype:"object"`
	ExperimentID    string          `json:"experiment_id"    validate:"omitempty,max=100"`
	LocaleOverride  string          `json:"locale_override"  validate:"omitempty,locale"`
	VisibilityRules types.JSONText  `json:"visibility_rules" swaggertype:"object"`
}

func (r *CreateBlockRequest) ToModel(pageID string, position int, user string) model.Block {
	if r.Order != nil {
		position = *r.Order
	}

	return model.Block{
		ID:              uuid.NewString(),
		PageID:          pageID,
		Type:            r.Type,
		Position:        position,
		Data:            jsonOrDefault(r.Data, emptyObject),
		ExperimentID:    r.ExperimentID,
		LocaleOverride:  r.LocaleOverride,
		VisibilityRules: jsonOrDefault(r.VisibilityRules, emptyObject),
		Metadata:        gModel.NewMetadata(timezone.Now(), user),
	}
}

type UpdateBlockRequest struct {
	Type            *model.BlockType `db:"type"             json:"type"             validate:"omitempty,enum"`
	Order           *int             `db:"position"         json:"order"            validate:"omitempty,min=0"`
	Data            *types.JSONText  `db:"data"             json:"data"             swaggertype:"object"`
	ExperimentID    *string          `db:"experiment_id"    json:"experiment_id"    validate:"omitempty,max=100"`
	LocaleOverride  *string          `db:"locale_override"  json:"locale_override"  validate:"omitempty,locale"`
	VisibilityRules *types.JSONText  `db:"visibility_rules" json:"visibility_rules" swaggertype:"object"`
}

type ReorderBlocksRequest struct {
	BlockIDs []string `json:"block_ids" validate:"required,min=1,unique,dive,uuid"`
}

// BlockSnapshot is a block as stored inside a version's blocks_data.
type BlockSnapshot struct {
	Type            model.BlockType `json:"type"`
	Order           int             `json:"order"`
	Data            types.JSONText  `json:"data"`
	ExperimentID    string          `json:"experiment_id,omitempty"`
	LocaleOverride  string          `json:"locale_override,omitempty"`
	VisibilityRules types.JSONText  `json:"visibility_rules"`
}

// SeoSnapshot is the SEO part of a page as stored inside a version's seo_data.
type SeoSnapshot struct {
	SeoTitle       string         `json:"seo_title"`
	SeoDescription string         `json:"seo_description"`
	CanonicalURL   string         `json:"canonical_url"`
	Robots         string         `json:"robots"`
	JSONLD         types.JSONText `json:"json_ld"`
	OgTitle        string         `json:"og_title"`
	OgImageID      *string        `json:"og_image_id"`
}

// NewVersion snapshots page and its blocks as version number.
func NewVersion(page model.Page, blocks []model.Block, number int, user string) (model.Version, error) {
	snapshots := make([]BlockSnapshot, len(blocks))
	for i, block := range blocks {
		snapshots[i] = BlockSnapshot{
			Type:            block.Type,
			Order:           block.Position,
			Data:            jsonOrDefault(block.Data, emptyObject),
			ExperimentID:    block.ExperimentID,
			LocaleOverride:  block.LocaleOverride,
			VisibilityRules: jsonOrDefault(block.VisibilityRules, emptyObject),
		}
	}

	blocksData, err := json.Marshal(snapshots)
	if err != nil {
		return model.Version{}, fmt.Errorf("failed to encode blocks snapshot: %w", err)
	}

	seoData, err := json.Marshal(SeoSnapshot{
		SeoTitle:       page.SeoTitle,
		SeoDescription: page.SeoDescription,
		CanonicalURL:   page.CanonicalURL,
		Robots:         page.Robots,
		JSONLD:         jsonOrDefault(page.JSONLD, emptyObject),
		OgTitle:        page.OgTitle,
		OgImageID:      page.OgImageID,
	})
	if err != nil {
		return model.Version{}, fmt.Errorf("failed to encode seo snapshot: %w", err)
	}

	return model.Version{
		ID:              uuid.NewString(),
		PageID:          page.ID,
		VersionNumber:   number,
		Title:           page.Title,
		Content:         page.Content,
		MetaDescription: page.MetaDescription,
		MetaKeywords:    page.MetaKeywords,
		BlocksData:      types.JSONText(blocksData),
		SeoData:         types.JSONText(seoData),
		Metadata:        gModel.NewMetadata(timezone.Now(), user),
	}, nil
}

// Restore decodes a version into the page fields to write back and the blocks to recreate.
func Restore(version model.Version, user string) (map[string]any, []model.Block, error) {
	var seo SeoSnapshot

	if err := json.Unmarshal(jsonOrDefault(version.SeoData, emptyObject), &seo); err != nil {
		return nil, nil, fmt.Errorf("failed to decode seo snapshot: %w", err)
	}

	var snapshots []BlockSnapshot

	if err := json.Unmarshal(jsonOrDefault(version.BlocksData, emptyList), &snapshots); err != nil {
		return nil, nil, fmt.Errorf("failed to decode blocks snapshot: %w", err)
	}

	now := timezone.Now()

	fields := map[string]any{
		model.FieldTitle:           version.Title,
		model.FieldContent:         version.Content,
		model.FieldMetaDescription: version.MetaDescription,
		model.FieldMetaKeywords:    version.MetaKeywords,
		model.FieldSeoTitle:        seo.SeoTitle,
		model.FieldSeoDescription:  seo.SeoDescription,
		model.FieldCanonicalURL:    seo.CanonicalURL,
		model.FieldRobots:          seo.Robots,
		model.FieldJSONLD:          jsonOrDefault(seo.JSONLD, emptyObject),
		model.FieldOgTitle:         seo.OgTitle,
		model.FieldOgImageID:       seo.OgImageID,
		constant.FieldModifiedAt:   now,
		constant.FieldModifiedBy:   user,
	}

	blocks := make([]model.Block, len(snapshots))
	for i, snapshot := range snapshots {
		blocks[i] = model.Block{
			ID:              uuid.NewString(),
			PageID:          version.PageID,
			Type:            snapshot.Type,
			Position:        snapshot.Order,
			Data:            jsonOrDefault(snapshot.Data, emptyObject),
			ExperimentID:    snapshot.ExperimentID,
			LocaleOverride:  snapshot.LocaleOverride,
			VisibilityRules: jsonOrDefault(snapshot.VisibilityRules, emptyObject),
			Metadata:        gModel.NewMetadata(now, user),
		}
	}

	return fields, blocks, nil
}

type VersionResponse struct {
	ID              string         `json:"id"`
	PageID          string         `json:"page_id"`
	VersionNumber   int            `json:"version_number"`
	Title           string         `json:"title"`
	Content         string         `json:"content"`
	MetaDescription string         `json:"meta_description"`
	MetaKeywords    string         `json:"meta_keywords"`
	BlocksData      types.JSONText `json:"blocks_data" swaggertype:"array,object"`
	SeoData         types.JSONText `json:"seo_data"    swaggertype:"object"`
	CreatedAt       string         `json:"created_at"`
	CreatedBy       string         `json:"created_by"`
}

func (r *VersionResponse) FromModel(m model.Version) {
	r.ID = m.ID
	r.PageID = m.PageID
	r.VersionNumber = m.VersionNumber
	r.Title = m.Title
	r.Content = m.Content
	r.MetaDescription = m.MetaDescription
	r.MetaKeywords = m.MetaKeywords
	r.BlocksData = jsonOrDefault(m.BlocksData, emptyList)
	r.SeoData = jsonOrDefault(m.SeoData, emptyObject)
	r.CreatedAt = timezone.Format(m.CreatedAt, constant.DateFormat)
	r.CreatedBy = m.CreatedBy
}

type RequestReviewRequest struct {
	ReviewerID string     `json:"reviewer_id" validate:"required,uuid"`
	DueDate    *time.Time `json:"due_date"`
}

func (r *RequestReviewRequest) ToModel(pageID, user string) model.Review {
	return model.Review{
		ID:         uuid.NewString(),
		PageID:     pageID,
		ReviewerID: r.ReviewerID,
		Status:     model.ReviewPending,
		DueDate:    r.DueDate,
		Metadata:   gModel.NewMetadata(timezone.Now(), user),
	}
}

type CompleteReviewRequest struct {
	Status   model.ReviewStatus `json:"status"   validate:"required,enum"`
	Comments string             `json:"comments"`
}

type ReviewResponse struct {
	ID          string  `json:"id"`
	PageID      string  `json:"page_id"`
	ReviewerID  string  `json:"reviewer_id"`
	Status      string  `json:"status"`
	Comments    string  `json:"comments"`
	DueDate     *string `json:"due_date"`
	CompletedAt *string `json:"completed_at"`
	gDto.Metadata
}

func (r *ReviewResponse) FromModel(m model.Review) {
	r.ID = m.ID
	r.PageID = m.PageID
	r.ReviewerID = m.ReviewerID
	r.Status = string(m.Status)
	r.Comments = m.Comments
	r.DueDate = formatTime(m.DueDate)
	r.CompletedAt = formatTime(m.CompletedAt)
	r.Metadata.FromModel(m.Metadata)
}

type CreateCommentRequest struct {
	Content  string   `json:"content"  validate:"required"`
	Mentions []string `json:"mentions" validate:"omitempty,dive,min=1,max=100"`
}

func (r *CreateCommentRequest) ToModel(threadID, user string) model.Comment {
	return model.Comment{
		ID:       uuid.NewString(),
		ThreadID: threadID,
		AuthorID: user,
		Content:  r.Content,
		Mentions: pq.StringArray(shared.DedupeNames(r.Mentions)),
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

// CreateThreadRequest opens a thread, optionally anchored to a block and seeded with a first comment.
type CreateThreadRequest struct {
	Title   string                `json:"title"    validate:"required,max=200"`
	BlockID *string               `json:"block_id" validate:"omitempty,uuid"`
	Comment *CreateCommentRequest `json:"comment"`
}

func (r *CreateThreadRequest) ToModel(pageID, user string) model.Thread {
	return model.Thread{
		ID:       uuid.NewString(),
		PageID:   pageID,
		BlockID:  r.BlockID,
		Title:    r.Title,
		Metadata: gModel.NewMetadata(timezone.Now(), user),
	}
}

type CommentResponse struct {
	ID       string   `json:"id"`
	ThreadID string   `json:"thread_id"`
	AuthorID string   `json:"author_id"`
	Content  string   `json:"content"`
	Mentions []string `json:"mentions"`
	gDto.Metadata
}

func (r *CommentResponse) FromModel(m model.Comment) {
	r.ID = m.ID
	r.ThreadID = m.ThreadID
	r.AuthorID = m.AuthorID
	r.Content = m.Content
	r.Mentions = append([]string{}, m.Mentions...)
	r.Metadata.FromModel(m.Metadata)
}

type ThreadResponse struct {
	ID         string            `json:"id"`
	PageID     string            `json:"page_id"`
	BlockID    *string           `json:"block_id"`
	Title      string            `json:"title"`
	IsResolved bool              `json:"is_resolved"`
	ResolvedAt *string           `json:"resolved_at"`
	Comments   []CommentResponse `json:"comments"`
	gDto.Metadata
}

func (r *ThreadResponse) FromModel(m model.Thread, comments []model.Comment) {
	r.ID = m.ID
	r.PageID = m.PageID
	r.BlockID = m.BlockID
	r.Title = m.Title
	r.IsResolved = m.IsResolved
	r.ResolvedAt = formatTime(m.ResolvedAt)
	r.Metadata.FromModel(m.Metadata)

	r.Comments = make([]CommentResponse, len(comments))
	for i, comment := range comments {
		r.Comments[i].FromModel(comment)
	}
}
