// Package querycompiler translates the plain structures exported by the
// querybuilder package into SQL fragments over the content schema. The
// builders are permissive on purpose; this is the boundary where shapes
// the engine cannot translate become errors.
package querycompiler

import (
	"fmt"
	"strings"

	"github.com/arraypress/contentquery/internal/domain"
	"github.com/arraypress/contentquery/internal/static/errs"
)

// query fragments use ? placeholders; repositories rebind to the dollar
// style before execution.

// the table layouts drive every generated identifier
var (
	contentTbl    = domain.GetContentTable()
	metaTbl       = domain.GetContentMetaTable()
	termTbl       = domain.GetTermTable()
	termRelTbl    = domain.GetTermRelationshipTable()
	contentRelTbl = domain.GetContentRelationshipTable()
)

var (
	metaSub = fmt.Sprintf("SELECT 1 FROM %s m WHERE m.%s = c.%s AND m.%s = ?",
		metaTbl.TableName(), metaTbl.ContentID, contentTbl.ID, metaTbl.MetaKey)
	metaValueCol = "m." + metaTbl.MetaValue

	taxExistsSub = fmt.Sprintf("SELECT 1 FROM %s tr JOIN %s t ON t.%s = tr.%s WHERE tr.%s = c.%s AND t.%s = ?",
		termRelTbl.TableName(), termTbl.TableName(), termTbl.ID, termRelTbl.TermID,
		termRelTbl.ContentID, contentTbl.ID, termTbl.Taxonomy)
)

// termMatch wraps a term-id subquery into the membership check against the
// relationship table.
func termMatch(sub string) string {
	return fmt.Sprintf("EXISTS (SELECT 1 FROM %s tr WHERE tr.%s = c.%s AND tr.%s IN (%s))",
		termRelTbl.TableName(), termRelTbl.ContentID, contentTbl.ID, termRelTbl.TermID, sub)
}

// CompileMeta turns a meta-query export into a WHERE fragment. Each entry
// becomes an EXISTS subquery against content_meta, joined by the exported
// relation.
func CompileMeta(export map[string]any) (string, []any, error) {
	conditions, relation, err := splitExport(export)
	if err != nil || len(conditions) == 0 {
		return "", nil, err
	}

	parts := make([]string, 0, len(conditions))
	args := make([]any, 0, len(conditions)*2)
	for _, entry := range conditions {
		part, entryArgs, err := compileMetaEntry(entry)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, part)
		args = append(args, entryArgs...)
	}
	return joinParts(parts, relation), args, nil
}

func compileMetaEntry(entry map[string]any) (string, []any, error) {
	key, _ := entry["key"].(string)
	compare, _ := entry["compare"].(string)

	valueExpr, err := metaValueExpr(entry)
	if err != nil {
		return "", nil, err
	}

	sub := metaSub
	args := []any{key}

	switch compare {
	case "EXISTS":
		return "EXISTS (" + sub + ")", args, nil
	case "NOT EXISTS":
		return "NOT EXISTS (" + sub + ")", args, nil
	case "=", "!=":
		args = append(args, entry["value"])
		return fmt.Sprintf("EXISTS (%s AND %s %s ?)", sub, valueExpr, compare), args, nil
	case "LIKE", "NOT LIKE":
		args = append(args, likePattern(entry["value"]))
		return fmt.Sprintf("EXISTS (%s AND %s %s ?)", sub, valueExpr, compare), args, nil
	case "IN", "NOT IN":
		values, ok := entry["value"].([]any)
		if !ok {
			return "", nil, errs.BadInValue
		}
		if len(values) == 0 {
			// empty IN can never match; empty NOT IN excludes nothing
			if compare == "IN" {
				return "1=0", nil, nil
			}
			return "1=1", nil, nil
		}
		args = append(args, values...)
		return fmt.Sprintf("EXISTS (%s AND %s %s (%s))", sub, valueExpr, compare, placeholders(len(values))), args, nil
	case "BETWEEN", "NOT BETWEEN":
		bounds, ok := entry["value"].([]any)
		if !ok || len(bounds) != 2 {
			return "", nil, errs.BadBetweenValue
		}
		args = append(args, bounds[0], bounds[1])
		return fmt.Sprintf("EXISTS (%s AND %s %s ? AND ?)", sub, valueExpr, compare), args, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", errs.UnsupportedCompare, compare)
	}
}

// metaValueExpr applies the optional type hint as a cast over the stored
// text value.
func metaValueExpr(entry map[string]any) (string, error) {
	hint, ok := entry["type"].(string)
	if !ok || hint == "" || hint == "CHAR" || hint == "BINARY" {
		return metaValueCol, nil
	}
	switch hint {
	case "NUMERIC", "SIGNED", "UNSIGNED":
		return "CAST(" + metaValueCol + " AS NUMERIC)", nil
	case "DATE":
		return "CAST(" + metaValueCol + " AS DATE)", nil
	case "DATETIME":
		return "CAST(" + metaValueCol + " AS TIMESTAMP)", nil
	default:
		return "", fmt.Errorf("%w: %q", errs.UnsupportedTypeHint, hint)
	}
}

// CompileTax turns a tax-query export into a WHERE fragment. Term matching
// with include_children walks the term hierarchy through a recursive CTE.
func CompileTax(export map[string]any) (string, []any, error) {
	conditions, relation, err := splitExport(export)
	if err != nil || len(conditions) == 0 {
		return "", nil, err
	}

	parts := make([]string, 0, len(conditions))
	var args []any
	for _, entry := range conditions {
		part, entryArgs, err := compileTaxEntry(entry)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, part)
		args = append(args, entryArgs...)
	}
	return joinParts(parts, relation), args, nil
}

func compileTaxEntry(entry map[string]any) (string, []any, error) {
	taxonomy, _ := entry["taxonomy"].(string)
	operator, _ := entry["operator"].(string)

	existsSub := taxExistsSub

	switch operator {
	case "EXISTS":
		return "EXISTS (" + existsSub + ")", []any{taxonomy}, nil
	case "NOT EXISTS":
		return "NOT EXISTS (" + existsSub + ")", []any{taxonomy}, nil
	}

	terms, ok := entry["terms"].([]any)
	if !ok {
		return "", nil, errs.BadInValue
	}
	if len(terms) == 0 {
		if operator == "NOT IN" {
			return "1=1", nil, nil
		}
		return "1=0", nil, nil
	}

	field, _ := entry["field"].(string)
	includeChildren, _ := entry["include_children"].(bool)

	switch operator {
	case "IN", "NOT IN":
		sub, args, err := termSetSub(taxonomy, field, terms, includeChildren)
		if err != nil {
			return "", nil, err
		}
		clause := termMatch(sub)
		if operator == "NOT IN" {
			clause = "NOT " + clause
		}
		return clause, args, nil
	case "AND":
		// the item must carry every listed term
		parts := make([]string, 0, len(terms))
		var args []any
		for _, term := range terms {
			sub, subArgs, err := termSetSub(taxonomy, field, []any{term}, includeChildren)
			if err != nil {
				return "", nil, err
			}
			parts = append(parts, termMatch(sub))
			args = append(args, subArgs...)
		}
		return "(" + strings.Join(parts, " AND ") + ")", args, nil
	default:
		return "", nil, fmt.Errorf("%w: %q", errs.UnsupportedTaxOp, operator)
	}
}

// termSetSub builds the subquery resolving the referenced terms to ids,
// expanding to descendant terms when includeChildren is set.
func termSetSub(taxonomy, field string, terms []any, includeChildren bool) (string, []any, error) {
	col := "t0." + termTbl.ID
	switch field {
	case "", "term_id":
	case "slug":
		col = "t0." + termTbl.Slug
	case "name":
		col = "t0." + termTbl.Name
	default:
		return "", nil, fmt.Errorf("unknown term field %q", field)
	}

	args := []any{taxonomy}
	args = append(args, terms...)
	base := fmt.Sprintf("SELECT t0.%s FROM %s t0 WHERE t0.%s = ? AND %s IN (%s)",
		termTbl.ID, termTbl.TableName(), termTbl.Taxonomy, col, placeholders(len(terms)))
	if !includeChildren {
		return base, args, nil
	}
	sub := fmt.Sprintf(
		"WITH RECURSIVE tt AS (%s UNION ALL SELECT tc.%s FROM %s tc JOIN tt ON tc.%s = tt.%s) SELECT %s FROM tt",
		base, termTbl.ID, termTbl.TableName(), termTbl.ParentID, termTbl.ID, termTbl.ID,
	)
	return sub, args, nil
}

// CompileRelationship turns a relationship-query export into a WHERE
// fragment over the content_relationships edge table.
func CompileRelationship(export map[string]any) (string, []any, error) {
	conditions, relation, err := splitExport(export)
	if err != nil || len(conditions) == 0 {
		return "", nil, err
	}

	parts := make([]string, 0, len(conditions))
	var args []any
	for _, entry := range conditions {
		part, entryArgs, err := compileRelationshipEntry(entry)
		if err != nil {
			return "", nil, err
		}
		parts = append(parts, part)
		args = append(args, entryArgs...)
	}
	return joinParts(parts, relation), args, nil
}

func compileRelationshipEntry(entry map[string]any) (string, []any, error) {
	relType, _ := entry["type"].(string)

	if noRel, _ := entry["no_relation"].(bool); noRel {
		clause := fmt.Sprintf("NOT EXISTS (SELECT 1 FROM %s r WHERE r.%s = ? AND (r.%s = c.%s OR r.%s = c.%s))",
			contentRelTbl.TableName(), contentRelTbl.Type,
			contentRelTbl.FromID, contentTbl.ID, contentRelTbl.ToID, contentTbl.ID)
		return clause, []any{relType}, nil
	}

	direction, _ := entry["direction"].(string)
	items, _ := entry["items"].([]any)

	edge := func(anchor, target string) (string, []any) {
		sub := fmt.Sprintf("SELECT 1 FROM %s r WHERE r.%s = ? AND r.%s = c.%s",
			contentRelTbl.TableName(), contentRelTbl.Type, anchor, contentTbl.ID)
		args := []any{relType}
		if len(items) > 0 {
			sub += fmt.Sprintf(" AND r.%s IN (%s)", target, placeholders(len(items)))
			args = append(args, items...)
		}
		return "EXISTS (" + sub + ")", args
	}

	switch direction {
	case "to":
		clause, args := edge(contentRelTbl.FromID, contentRelTbl.ToID)
		return clause, args, nil
	case "from":
		clause, args := edge(contentRelTbl.ToID, contentRelTbl.FromID)
		return clause, args, nil
	case "any":
		toClause, toArgs := edge(contentRelTbl.FromID, contentRelTbl.ToID)
		fromClause, fromArgs := edge(contentRelTbl.ToID, contentRelTbl.FromID)
		return "(" + toClause + " OR " + fromClause + ")", append(toArgs, fromArgs...), nil
	default:
		return "", nil, fmt.Errorf("%w: %q", errs.BadDirection, direction)
	}
}

// orderColumns is the whitelist of orderable content columns, keyed by the
// column names the table layout declares.
var orderColumns = map[string]string{
	contentTbl.ID:        "c." + contentTbl.ID,
	contentTbl.Title:     "c." + contentTbl.Title,
	contentTbl.Slug:      "c." + contentTbl.Slug,
	contentTbl.Status:    "c." + contentTbl.Status,
	contentTbl.Type:      "c." + contentTbl.Type,
	contentTbl.CreatedAt: "c." + contentTbl.CreatedAt,
	contentTbl.UpdatedAt: "c." + contentTbl.UpdatedAt,
}

// CompileOrderby turns an orderby export into an ORDER BY clause, empty
// when nothing was requested.
func CompileOrderby(export map[string]any) (string, error) {
	if len(export) == 0 {
		return "", nil
	}
	if mode, ok := export["orderby"].(string); ok {
		if mode != "rand" {
			return "", fmt.Errorf("%w: %q", errs.UnknownOrderField, mode)
		}
		return "ORDER BY RANDOM()", nil
	}

	globalDir := "ASC"
	if dir, ok := export["order"].(string); ok {
		globalDir = dir
	}

	entries, ok := export["orderby"].([]map[string]any)
	if !ok {
		// a bare global direction orders by nothing
		return "", nil
	}

	parts := make([]string, 0, len(entries))
	for _, entry := range entries {
		field, _ := entry["field"].(string)
		col, known := orderColumns[field]
		if !known {
			return "", fmt.Errorf("%w: %q", errs.UnknownOrderField, field)
		}
		dir := globalDir
		if own, ok := entry["order"].(string); ok {
			dir = own
		}
		if dir != "ASC" && dir != "DESC" {
			dir = "ASC"
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "ORDER BY " + strings.Join(parts, ", "), nil
}

// splitExport pulls the entries and the relation out of a builder export.
// The relation defaults to AND when absent; anything other than AND/OR is
// rejected here rather than in the builders.
func splitExport(export map[string]any) ([]map[string]any, string, error) {
	if len(export) == 0 {
		return nil, "", nil
	}
	relation := "AND"
	if rel, ok := export["relation"].(string); ok {
		if rel != "AND" && rel != "OR" {
			return nil, "", fmt.Errorf("%w: %q", errs.UnsupportedRelation, rel)
		}
		relation = rel
	}
	conditions, _ := export["conditions"].([]map[string]any)
	return conditions, relation, nil
}

func joinParts(parts []string, relation string) string {
	if len(parts) == 1 {
		return parts[0]
	}
	return "(" + strings.Join(parts, " "+relation+" ") + ")"
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}

// likePattern escapes LIKE wildcards in the value and wraps it for a
// contains match.
func likePattern(value any) string {
	s := fmt.Sprintf("%v", value)
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return "%" + s + "%"
}
