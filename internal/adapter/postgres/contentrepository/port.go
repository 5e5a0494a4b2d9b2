// Package contentrepository is the PostgreSQL content port.
package contentrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jmoiron/sqlx"

	"github.com/arraypress/contentquery/internal/adapter/postgres/querycompiler"
	"github.com/arraypress/contentquery/internal/core/ports/primary"
	"github.com/arraypress/contentquery/internal/core/ports/secondary"
	"github.com/arraypress/contentquery/internal/domain"
)

var _ secondary.ContentPort = &contentRepo{}

var (
	contentTbl = domain.GetContentTable()
	metaTbl    = domain.GetContentMetaTable()
)

// contentColumns lists the content columns in insert/select order.
var contentColumns = []string{
	contentTbl.ID,
	contentTbl.Type,
	contentTbl.Status,
	contentTbl.Title,
	contentTbl.Slug,
	contentTbl.AuthorID,
	contentTbl.ParentID,
	contentTbl.CreatedAt,
	contentTbl.UpdatedAt,
}

func prefixedColumns(alias string) string {
	out := make([]string, len(contentColumns))
	for i, col := range contentColumns {
		out[i] = alias + "." + col
	}
	return strings.Join(out, ", ")
}

type contentRepo struct {
	db     *sqlx.DB
	logger primary.Logger
}

// New creates a new PostgreSQL content repository
func New(db *sqlx.DB, logger primary.Logger) secondary.ContentPort {
	return &contentRepo{
		db:     db,
		logger: logger,
	}
}

func (r *contentRepo) Save(ctx context.Context, item *domain.Content) error {
	updatable := []string{
		contentTbl.Type, contentTbl.Status, contentTbl.Title, contentTbl.Slug,
		contentTbl.AuthorID, contentTbl.ParentID, contentTbl.UpdatedAt,
	}
	assignments := make([]string, len(updatable))
	for i, col := range updatable {
		assignments[i] = col + " = EXCLUDED." + col
	}
	query := fmt.Sprintf(
		`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) ON CONFLICT (%s) DO UPDATE SET %s`,
		contentTbl.TableName(),
		strings.Join(contentColumns, ", "),
		contentTbl.ID,
		strings.Join(assignments, ", "),
	)
	_, err := r.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.Type,
		item.Status,
		item.Title,
		item.Slug,
		item.AuthorID,
		item.ParentID,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save content item", "error", err)
		return fmt.Errorf("failed to save content item: %w", err)
	}
	return nil
}

func (r *contentRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Content, error) {
	var item domain.Content
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(contentColumns, ", "), contentTbl.TableName(), contentTbl.ID)
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &item, nil
}

// Query compiles the finalized builder exports into one SELECT plus a
// COUNT over the same WHERE clause.
func (r *contentRepo) Query(ctx context.Context, q domain.ContentQuery) (*domain.ContentResult, error) {
	whereClause, args, err := r.buildWhere(q)
	if err != nil {
		return nil, err
	}

	orderClause, err := querycompiler.CompileOrderby(q.Orderby)
	if err != nil {
		return nil, err
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	size := q.Size
	if size < 1 || size > 500 {
		size = 50
	}

	var sb strings.Builder
	sb.WriteString("SELECT " + prefixedColumns("c") + " FROM " + contentTbl.TableName() + " c")
	sb.WriteString(whereClause)
	if orderClause != "" {
		sb.WriteString(" ")
		sb.WriteString(orderClause)
	}
	sb.WriteString(" LIMIT ? OFFSET ?")

	selectArgs := append(append([]any{}, args...), size, (page-1)*size)
	selectSQL := sqlx.Rebind(sqlx.DOLLAR, sb.String())

	items := make([]*domain.Content, 0, size)
	if err := r.db.SelectContext(ctx, &items, selectSQL, selectArgs...); err != nil {
		r.logger.Error("Failed to query content", "error", err)
		return nil, fmt.Errorf("failed to query content: %w", err)
	}

	countSQL := sqlx.Rebind(sqlx.DOLLAR, "SELECT COUNT(*) FROM "+contentTbl.TableName()+" c"+whereClause)
	var total int64
	if err := r.db.GetContext(ctx, &total, countSQL, args...); err != nil {
		r.logger.Error("Failed to count content", "error", err)
		return nil, fmt.Errorf("failed to count content: %w", err)
	}

	return &domain.ContentResult{Items: items, Total: total}, nil
}

// buildWhere assembles the WHERE clause from the fixed filters and the
// three condition exports, AND-joined at the top level.
func (r *contentRepo) buildWhere(q domain.ContentQuery) (string, []any, error) {
	parts := make([]string, 0, 5)
	var args []any

	if q.ContentType != "" {
		parts = append(parts, "c."+contentTbl.Type+" = ?")
		args = append(args, q.ContentType)
	}
	if q.Status != "" {
		parts = append(parts, "c."+contentTbl.Status+" = ?")
		args = append(args, q.Status)
	}

	metaClause, metaArgs, err := querycompiler.CompileMeta(q.Meta)
	if err != nil {
		return "", nil, err
	}
	if metaClause != "" {
		parts = append(parts, metaClause)
		args = append(args, metaArgs...)
	}

	taxClause, taxArgs, err := querycompiler.CompileTax(q.Tax)
	if err != nil {
		return "", nil, err
	}
	if taxClause != "" {
		parts = append(parts, taxClause)
		args = append(args, taxArgs...)
	}

	relClause, relArgs, err := querycompiler.CompileRelationship(q.Relationship)
	if err != nil {
		return "", nil, err
	}
	if relClause != "" {
		parts = append(parts, relClause)
		args = append(args, relArgs...)
	}

	if len(parts) == 0 {
		return "", nil, nil
	}
	return " WHERE " + strings.Join(parts, " AND "), args, nil
}

func (r *contentRepo) SetMeta(ctx context.Context, id uuid.UUID, key, value string) error {
	query := fmt.Sprintf(
		`INSERT INTO %s (%s, %s, %s) VALUES ($1, $2, $3) ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s`,
		metaTbl.TableName(), metaTbl.ContentID, metaTbl.MetaKey, metaTbl.MetaValue,
		metaTbl.ContentID, metaTbl.MetaKey, metaTbl.MetaValue, metaTbl.MetaValue,
	)
	if _, err := r.db.ExecContext(ctx, query, id, key, value); err != nil {
		r.logger.Error("Failed to set content meta", "contentId", id, "key", key, "error", err)
		return fmt.Errorf("failed to set content meta: %w", err)
	}
	return nil
}

func (r *contentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	deleteMeta := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, metaTbl.TableName(), metaTbl.ContentID)
	if _, err := tx.ExecContext(ctx, deleteMeta, id); err != nil {
		return fmt.Errorf("failed to delete content meta: %w", err)
	}
	deleteItem := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, contentTbl.TableName(), contentTbl.ID)
	if _, err := tx.ExecContext(ctx, deleteItem, id); err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}
	return tx.Commit()
}
