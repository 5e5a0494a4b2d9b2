package query

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/arraypress/contentquery/internal/config"
	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/domain"
	"github.com/arraypress/contentquery/internal/querybuilder"
)

const cacheKeyPrefix = "query:"

var _ IQueryService = &queryService{}

type queryService struct {
	contentPort secondary.ContentPort
	transients  secondary.TransientPort
	cfg         *config.TransientCfg
	logger      primary.Logger
}

func NewQueryService(
	contentPort secondary.ContentPort,
	transients secondary.TransientPort,
	cfg *config.TransientCfg,
	logger primary.Logger,
) IQueryService {
	return &queryService{
		contentPort: contentPort,
		transients:  transients,
		cfg:         cfg,
		logger:      logger,
	}
}

func (s *queryService) Search(ctx context.Context, req Request) (*domain.ContentResult, error) {
	contentQuery := s.assemble(req)

	var cacheKey string
	if !req.RandomOrder {
		// random ordering must not be pinned by the cache
		cacheKey, _ = s.cacheKey(contentQuery)
	}
	if cacheKey != "" {
		if cached, cacheErr := s.transients.Get(ctx, cacheKey); cacheErr == nil && cached != nil {
			var result domain.ContentResult
			if json.Unmarshal(cached, &result) == nil {
				return &result, nil
			}
			// a stale or unreadable entry falls through to a fresh query
		}
	}

	result, queryErr := s.contentPort.Query(ctx, contentQuery)
	if queryErr != nil {
		return nil, queryErr
	}

	if cacheKey != "" {
		if encoded, encErr := json.Marshal(result); encErr == nil {
			if cacheErr := s.transients.Set(ctx, cacheKey, encoded, s.cfg.QueryTTL); cacheErr != nil {
				s.logger.Warn("Failed to cache query result", "error", cacheErr)
			}
		}
	}

	return result, nil
}

func (s *queryService) InvalidateCache(ctx context.Context) error {
	return s.transients.DeleteByPrefix(ctx, cacheKeyPrefix)
}

// assemble feeds the request clauses through the fluent builders and
// collects the finalized exports.
func (s *queryService) assemble(req Request) domain.ContentQuery {
	metaQuery := querybuilder.NewMetaQuery()
	for _, clause := range req.Meta {
		compare := querybuilder.Compare(clause.Compare)
		if compare == "" {
			compare = querybuilder.CompareEquals
		}
		metaQuery.Add(clause.Key, clause.Value, compare, querybuilder.ValueType(clause.Type))
	}
	if req.MetaRelation != "" {
		metaQuery.SetRelation(req.MetaRelation)
	}

	taxQuery := querybuilder.NewTaxQuery()
	for _, clause := range req.Tax {
		field := querybuilder.TermField(clause.Field)
		if field == "" {
			field = querybuilder.FieldTermID
		}
		operator := querybuilder.TaxOperator(clause.Operator)
		if operator == "" {
			operator = querybuilder.TaxIn
		}
		taxQuery.Add(clause.Taxonomy, field, operator, clause.Terms...)
		if clause.ExcludeChildren {
			taxQuery.ExcludeChildren()
		}
	}
	if req.TaxRelation != "" {
		taxQuery.SetRelation(req.TaxRelation)
	}

	relQuery := querybuilder.NewRelationshipQuery()
	for _, clause := range req.Relationship {
		if clause.NoRelation {
			relQuery.NoRelation(clause.Type)
			continue
		}
		direction := querybuilder.EdgeDirection(clause.Direction)
		if direction == "" {
			direction = querybuilder.DirectionAny
		}
		relQuery.Add(clause.Type, direction, clause.Items...)
	}
	if req.RelRelation != "" {
		relQuery.SetRelation(req.RelRelation)
	}

	orderby := querybuilder.NewOrderby()
	for _, clause := range req.Orderby {
		if clause.Order != "" {
			orderby.AddWithOrder(clause.Field, querybuilder.Direction(clause.Order))
			continue
		}
		orderby.Add(clause.Field)
	}
	if req.Order != "" {
		orderby.SetOrder(querybuilder.Direction(req.Order))
	}
	if req.RandomOrder {
		orderby.Rand()
	}

	return domain.ContentQuery{
		ContentType:  req.ContentType,
		Status:       domain.ContentStatus(req.Status),
		Meta:         metaQuery.Export(),
		Tax:          taxQuery.Export(),
		Relationship: relQuery.Export(),
		Orderby:      orderby.Export(),
		Page:         req.Page,
		Size:         req.Size,
	}
}

// cacheKey derives a stable transient key from the assembled query.
func (s *queryService) cacheKey(q domain.ContentQuery) (string, error) {
	encoded, err := json.Marshal(q)
	if err != nil {
		return "", fmt.Errorf("failed to derive cache key: %w", err)
	}
	sum := sha256.Sum256(encoded)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
