package querybuilder

// MetaQuery accumulates meta-field condition entries and exports the plain
// structure consumed by the query engine. All mutating methods return the
// builder so calls can be chained:
//
//	q := querybuilder.NewMetaQuery().
//		Equals("status", "approved").
//		Between("price", 10, 50)
//	clause := q.Export()
type MetaQuery struct {
	set conditionSet
}

func NewMetaQuery() *MetaQuery {
	return &MetaQuery{}
}

// Add appends a condition entry. The field name is taken as given and the
// value shape is the caller's contract with the engine; pass an empty
// valueType to omit the type hint.
func (q *MetaQuery) Add(field string, value any, compare Compare, valueType ValueType) *MetaQuery {
	entry := map[string]any{
		"key":     field,
		"compare": string(compare),
	}
	if compare != CompareExists && compare != CompareNotExists {
		entry["value"] = value
	}
	if valueType != "" {
		entry["type"] = string(valueType)
	}
	q.set.append(entry)
	return q
}

func (q *MetaQuery) Equals(field string, value any) *MetaQuery {
	return q.Add(field, value, CompareEquals, "")
}

func (q *MetaQuery) NotEquals(field string, value any) *MetaQuery {
	return q.Add(field, value, CompareNotEquals, "")
}

func (q *MetaQuery) In(field string, values ...any) *MetaQuery {
	return q.Add(field, toAnySlice(values), CompareIn, "")
}

func (q *MetaQuery) NotIn(field string, values ...any) *MetaQuery {
	return q.Add(field, toAnySlice(values), CompareNotIn, "")
}

func (q *MetaQuery) Like(field string, value any) *MetaQuery {
	return q.Add(field, value, CompareLike, "")
}

func (q *MetaQuery) NotLike(field string, value any) *MetaQuery {
	return q.Add(field, value, CompareNotLike, "")
}

// Between fixes the NUMERIC type hint along with the operator: range bounds
// compare numerically, where the default string collation would order "9"
// after "10". Use Add with an explicit hint for a non-numeric range.
func (q *MetaQuery) Between(field string, low, high any) *MetaQuery {
	return q.Add(field, []any{low, high}, CompareBetween, TypeNumeric)
}

// NotBetween carries the same NUMERIC hint as Between.
func (q *MetaQuery) NotBetween(field string, low, high any) *MetaQuery {
	return q.Add(field, []any{low, high}, CompareNotBetween, TypeNumeric)
}

func (q *MetaQuery) Exists(field string) *MetaQuery {
	return q.Add(field, nil, CompareExists, "")
}

func (q *MetaQuery) NotExists(field string) *MetaQuery {
	return q.Add(field, nil, CompareNotExists, "")
}

// SetRelation overrides the default relation applied across entries.
// Input is case-insensitive and stored uppercased.
func (q *MetaQuery) SetRelation(relation string) *MetaQuery {
	q.set.setRelation(relation)
	return q
}

// Clear returns the builder to its initial empty state.
func (q *MetaQuery) Clear() *MetaQuery {
	q.set.clear()
	return q
}

// Export finalizes the accumulated entries. See conditionSet.export for the
// relation default rule. The returned structure is an independent copy.
func (q *MetaQuery) Export() map[string]any {
	return q.set.export()
}

// SimpleEquals builds, fills and exports a one-condition query in one call.
func SimpleEquals(field string, value any) map[string]any {
	return NewMetaQuery().Equals(field, value).Export()
}

func SimpleIn(field string, values ...any) map[string]any {
	return NewMetaQuery().In(field, values...).Export()
}

func SimpleBetween(field string, low, high any) map[string]any {
	return NewMetaQuery().Between(field, low, high).Export()
}

func SimpleExists(field string) map[string]any {
	return NewMetaQuery().Exists(field).Export()
}
