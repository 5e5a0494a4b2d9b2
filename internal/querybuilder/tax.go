package querybuilder

// TermField selects which term attribute the condition terms refer to.
type TermField string

const (
	FieldTermID TermField = "term_id"
	FieldSlug   TermField = "slug"
	FieldName   TermField = "name"
)

// TaxOperator is the per-clause operator of a taxonomy condition.
type TaxOperator string

const (
	TaxIn        TaxOperator = "IN"
	TaxNotIn     TaxOperator = "NOT IN"
	TaxAnd       TaxOperator = "AND"
	TaxExists    TaxOperator = "EXISTS"
	TaxNotExists TaxOperator = "NOT EXISTS"
)

// TaxQuery accumulates taxonomy term conditions. Each entry names a
// taxonomy, the term field the values refer to, the terms themselves and a
// clause operator. Child terms are included by default, matching the host
// engine's behavior.
type TaxQuery struct {
	set conditionSet
}

func NewTaxQuery() *TaxQuery {
	return &TaxQuery{}
}

func (q *TaxQuery) Add(taxonomy string, field TermField, operator TaxOperator, terms ...any) *TaxQuery {
	entry := map[string]any{
		"taxonomy":         taxonomy,
		"field":            string(field),
		"operator":         string(operator),
		"include_children": true,
	}
	if operator != TaxExists && operator != TaxNotExists {
		entry["terms"] = toAnySlice(terms)
	}
	q.set.append(entry)
	return q
}

func (q *TaxQuery) In(taxonomy string, terms ...any) *TaxQuery {
	return q.Add(taxonomy, FieldTermID, TaxIn, terms...)
}

func (q *TaxQuery) NotIn(taxonomy string, terms ...any) *TaxQuery {
	return q.Add(taxonomy, FieldTermID, TaxNotIn, terms...)
}

// AllOf requires the item to carry every one of the given terms.
func (q *TaxQuery) AllOf(taxonomy string, terms ...any) *TaxQuery {
	return q.Add(taxonomy, FieldTermID, TaxAnd, terms...)
}

func (q *TaxQuery) Exists(taxonomy string) *TaxQuery {
	return q.Add(taxonomy, FieldTermID, TaxExists)
}

func (q *TaxQuery) NotExists(taxonomy string) *TaxQuery {
	return q.Add(taxonomy, FieldTermID, TaxNotExists)
}

// ExcludeChildren turns off child-term matching on the most recently added
// clause. Calling it on an empty builder is a no-op.
func (q *TaxQuery) ExcludeChildren() *TaxQuery {
	if n := len(q.set.conditions); n > 0 {
		q.set.conditions[n-1]["include_children"] = false
	}
	return q
}

func (q *TaxQuery) SetRelation(relation string) *TaxQuery {
	q.set.setRelation(relation)
	return q
}

func (q *TaxQuery) Clear() *TaxQuery {
	q.set.clear()
	return q
}

func (q *TaxQuery) Export() map[string]any {
	return q.set.export()
}

// SimpleTaxIn is the one-shot form of In.
func SimpleTaxIn(taxonomy string, terms ...any) map[string]any {
	return NewTaxQuery().In(taxonomy, terms...).Export()
}
