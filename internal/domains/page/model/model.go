package model

import (
	"time"

	"atoll/shared/model"

	"github.com/jmoiron/sqlx/types"
	"github.com/lib/pq"
)

const (
	TableName  = "pages"
	EntityName = "page"

	FieldID          = "id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldStatus      = "status"
	FieldLocale      = "locale"
	FieldIsHome      = "is_home"
	FieldPublishAt   = "publish_at"
	FieldUnpublishAt = "unpublish_at"
	FieldVersion     = "version"
	FieldPath        = "path"

	FieldContent         = "content"
	FieldMetaDescription = "meta_description"
	FieldMetaKeywords    = "meta_keywords"
	FieldSeoTitle        = "seo_title"
	FieldSeoDescription  = "seo_description"
	FieldCanonicalURL    = "canonical_url"
	FieldRobots          = "robots"
	FieldJSONLD          = "json_ld"
	FieldOgTitle         = "og_title"
	FieldOgImageID       = "og_image_id"

	FieldPageID        = "page_id"
	FieldPosition      = "position"
	FieldVersionNumber = "version_number"
	FieldThreadID      = "thread_id"
	FieldIsResolved    = "is_resolved"
	FieldResolvedAt    = "resolved_at"
	FieldCompletedAt   = "completed_at"
	FieldComments      = "comments"
	FieldCreatedAt     = "created_at"

	BlockTableName    = "page_blocks"
	BlockEntityName   = "page_block"
	VersionTableName  = "page_versions"
	VersionEntityName = "page_version"
	ReviewTableName   = "page_reviews"
	ReviewEntityName  = "page_review"
	ThreadTableName   = "comment_threads"
	ThreadEntityName  = "comment_thread"
	CommentTableName  = "comments"
	CommentEntityName = "comment"

	DefaultRobots   = "index, follow"
	DefaultTemplate = "default"
)

type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusDraft, StatusPublished, StatusArchived:
		return true
	default:
		return false
	}
}

type BlockType string

const (
	BlockText    BlockType = "text"
	BlockImage   BlockType = "image"
	BlockGallery BlockType = "gallery"
	BlockVideo   BlockType = "video"
	BlockQuote   BlockType = "quote"
	BlockCTA     BlockType = "cta"
)

func (t BlockType) IsValid() bool {
	switch t {
	case BlockText, BlockImage, BlockGallery, BlockVideo, BlockQuote, BlockCTA:
		return true
	default:
		return false
	}
}

type ReviewStatus string

const (
	ReviewPending          ReviewStatus = "pending"
	ReviewApproved         ReviewStatus = "approved"
	ReviewRejected         ReviewStatus = "rejected"
	ReviewChangesRequested ReviewStatus = "changes_requested"
)

// IsValid accepts only outcomes; pending is the state a review starts in.
func (s ReviewStatus) IsValid() bool {
	switch s {
	case ReviewApproved, ReviewRejected, ReviewChangesRequested:
		return true
	default:
		return false
	}
}

type Page struct {
	ID              string         `db:"id"`
	Title           string         `db:"title"`
	Slug            string         `db:"slug"`
	Content         string         `db:"content"`
	MetaDescription string         `db:"meta_description"`
	MetaKeywords    string         `db:"meta_keywords"`
	Status          Status         `db:"status"`
	Locale          string         `db:"locale"`
	IsHome          bool           `db:"is_home"`
	SeoTitle        string         `db:"seo_title"`
	SeoDescription  string         `db:"seo_description"`
	CanonicalURL    string         `db:"canonical_url"`
	Robots          string         `db:"robots"`
	JSONLD          types.JSONText `db:"json_ld"`
	OgTitle         string         `db:"og_title"`
	OgImageID       *string        `db:"og_image_id"`
	PublishAt       *time.Time     `db:"publish_at"`
	UnpublishAt     *time.Time     `db:"unpublish_at"`
	Template        string         `db:"template"`
	ParentID        *string        `db:"parent_id"`
	Path            string         `db:"path"`
	Version         int            `db:"version"`
	model.Metadata
}

// Live reports whether a published page is inside its publish window at now.
func (p Page) Live(now time.Time) bool {
	if p.Status != StatusPublished {
		return false
	}

	if p.PublishAt != nil && now.Before(*p.PublishAt) {
		return false
	}

	return p.UnpublishAt == nil || now.Before(*p.UnpublishAt)
}

type Block struct {
	ID              string         `db:"id"`
	PageID          string         `db:"page_id"`
	Type            BlockType      `db:"type"`
	Position        int            `db:"position"`
	Data            types.JSONText `db:"data"`
	ExperimentID    string         `db:"experiment_id"`
	LocaleOverride  string         `db:"locale_override"`
	VisibilityRules types.JSONText `db:"visibility_rules"`
	model.Metadata
}

type Version struct {
	ID              string         `db:"id"`
	PageID          string         `db:"page_id"`
	VersionNumber   int            `db:"version_number"`
	Title           string         `db:"title"`
	Content         string         `db:"content"`
	MetaDescription string         `db:"meta_description"`
	MetaKeywords    string         `db:"meta_keywords"`
	BlocksData      types.JSONText `db:"blocks_data"`
	SeoData         types.JSONText `db:"seo_data"`
	model.Metadata
}

type Review struct {
	ID          string       `db:"id"`
	PageID      string       `db:"page_id"`
	ReviewerID  string       `db:"reviewer_id"`
	Status      ReviewStatus `db:"status"`
	Comments    string       `db:"comments"`
	DueDate     *time.Time   `db:"due_date"`
	CompletedAt *time.Time   `db:"completed_at"`
	model.Metadata
}

type Thread struct {
	ID         string     `db:"id"`
	PageID     string     `db:"page_id"`
	BlockID    *string    `db:"block_id"`
	Title      string     `db:"title"`
	IsResolved bool       `db:"is_resolved"`
	ResolvedAt *time.Time `db:"resolved_at"`
	model.Metadata
}

type Comment struct {
	ID       string         `db:"id"`
	ThreadID string         `db:"thread_id"`
	AuthorID string         `db:"author_id"`
	Content  string         `db:"content"`
	Mentions pq.StringArray `db:"mentions"`
	model.Metadata
}
