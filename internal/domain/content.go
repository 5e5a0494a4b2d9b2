package domain

import (
	"time"

	"github.com/google/uuid"
)

// ContentStatus represents the publication status of a content item
type ContentStatus string

const (
	StatusDraft   ContentStatus = "draft"
	StatusPending ContentStatus = "pending"
	StatusPublish ContentStatus = "publish"
	StatusPrivate ContentStatus = "private"
	StatusTrash   ContentStatus = "trash"
)

// Content represents a single content item (post, page, attachment, ...)
type Content struct {
	ID        uuid.UUID     `db:"id"`
	Type      string        `db:"type"`
	Status    ContentStatus `db:"status"`
	Title     string        `db:"title"`
	Slug      string        `db:"slug"`
	AuthorID  *uuid.UUID    `db:"author_id"`
	ParentID  *uuid.UUID    `db:"parent_id"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type ContentTable struct {
	ID        string
	Type      string
	Status    string
	Title     string
	Slug      string
	AuthorID  string
	ParentID  string
	CreatedAt string
	UpdatedAt string
}

func GetContentTable() ContentTable {
	return ContentTable{
		ID:        "id",
		Type:      "type",
		Status:    "status",
		Title:     "title",
		Slug:      "slug",
		AuthorID:  "author_id",
		ParentID:  "parent_id",
		CreatedAt: "created_at",
		UpdatedAt: "updated_at",
	}
}

func (ContentTable) TableName() string {
	return "content"
}

// NewContent creates a new draft content item
func NewContent(contentType, title, slug string) *Content {
	now := time.Now()
	return &Content{
		ID:        uuid.New(),
		Type:      contentType,
		Status:    StatusDraft,
		Title:     title,
		Slug:      slug,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ContentQuery carries the finalized builder exports plus paging to the
// content repository. The maps are the plain structures produced by the
// querybuilder package.
type ContentQuery struct {
	ContentType  string
	Status       ContentStatus
	Meta         map[string]any
	Tax          map[string]any
	Relationship map[string]any
	Orderby      map[string]any
	Page         int
	Size         int
}

// ContentResult is the aggregated outcome of a content query.
type ContentResult struct {
	Items []*Content `json:"items"`
	Total int64      `json:"total"`
}
