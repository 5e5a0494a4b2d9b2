package query

import (
	"context"

	"github.com/arraypress/contentquery/internal/domain"
)

// MetaClause is one meta condition of an incoming query request.
type MetaClause struct {
	Key     string      `json:"key"`
	Value   interface{} `json:"value"`
	Compare string      `json:"compare"`
	Type    string      `json:"type"`
}

// TaxClause is one taxonomy condition of an incoming query request.
type TaxClause struct {
	Taxonomy        string        `json:"taxonomy"`
	Field           string        `json:"field"`
	Operator        string        `json:"operator"`
	Terms           []interface{} `json:"terms"`
	ExcludeChildren bool          `json:"exclude_children"`
}

// RelClause is one relationship condition of an incoming query request.
type RelClause struct {
	Type       string        `json:"type"`
	Direction  string        `json:"direction"`
	Items      []interface{} `json:"items"`
	NoRelation bool          `json:"no_relation"`
}

// OrderClause is one ordering field of an incoming query request.
type OrderClause struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// Request is a full content query as received over the API.
type Request struct {
	ContentType string `json:"content_type"`
	Status      string `json:"status"`

	Meta         []MetaClause `json:"meta"`
	MetaRelation string       `json:"meta_relation"`

	Tax         []TaxClause `json:"tax"`
	TaxRelation string      `json:"tax_relation"`

	Relationship []RelClause `json:"relationship"`
	RelRelation  string      `json:"rel_relation"`

	Orderby     []OrderClause `json:"orderby"`
	Order       string        `json:"order"`
	RandomOrder bool          `json:"random_order"`

	Page int `json:"page"`
	Size int `json:"size"`
}

// IQueryService runs content queries assembled from builder clauses
type IQueryService interface {
	// Search runs the query, serving repeated requests from the transient
	// cache
	Search(ctx context.Context, req Request) (*domain.ContentResult, error)

	// InvalidateCache drops every cached query result
	InvalidateCache(ctx context.Context) error
}
