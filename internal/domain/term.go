package domain

import "github.com/google/uuid"

// Term represents a taxonomy term assigned to content items
type Term struct {
	ID       int64      `db:"id"`
	Taxonomy string     `db:"taxonomy"`
	Slug     string     `db:"slug"`
	Name     string     `db:"name"`
	ParentID *int64     `db:"parent_id"`
	OwnerID  *uuid.UUID `db:"owner_id"`
}

type TermTable struct {
	ID       string
	Taxonomy string
	Slug     string
	Name     string
	ParentID string
	OwnerID  string
}

func GetTermTable() TermTable {
	return TermTable{
		ID:       "id",
		Taxonomy: "taxonomy",
		Slug:     "slug",
		Name:     "name",
		ParentID: "parent_id",
		OwnerID:  "owner_id",
	}
}

func (TermTable) TableName() string {
	return "terms"
}

// TermRelationshipTable maps content items to terms.
type TermRelationshipTable struct {
	ContentID string
	TermID    string
}

func GetTermRelationshipTable() TermRelationshipTable {
	return TermRelationshipTable{
		ContentID: "content_id",
		TermID:    "term_id",
	}
}

func (TermRelationshipTable) TableName() string {
	return "term_relationships"
}

// ContentRelationshipTable stores directed edges between content items.
type ContentRelationshipTable struct {
	FromID string
	ToID   string
	Type   string
}

func GetContentRelationshipTable() ContentRelationshipTable {
	return ContentRelationshipTable{
		FromID: "from_id",
		ToID:   "to_id",
		Type:   "type",
	}
}

func (ContentRelationshipTable) TableName() string {
	return "content_relationships"
}

// ContentMetaTable stores key/value metadata per content item.
type ContentMetaTable struct {
	ContentID string
	MetaKey   string
	MetaValue string
}

func GetContentMetaTable() ContentMetaTable {
	return ContentMetaTable{
		ContentID: "content_id",
		MetaKey:   "meta_key",
		MetaValue: "meta_value",
	}
}

func (ContentMetaTable) TableName() string {
	return "content_meta"
}
