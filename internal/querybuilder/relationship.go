package querybuilder

// EdgeDirection selects which side of a relationship edge the queried item
// occupies.
type EdgeDirection string

const (
	DirectionTo   EdgeDirection = "to"
	DirectionFrom EdgeDirection = "from"
	DirectionAny  EdgeDirection = "any"
)

// RelationshipQuery accumulates directional graph-edge conditions. Entries
// carry a direction instead of a compare operator; NoRelation adds a
// negative condition matching items with no edges of the given type.
type RelationshipQuery struct {
	set conditionSet
}

func NewRelationshipQuery() *RelationshipQuery {
	return &RelationshipQuery{}
}

// Add appends an edge condition: the item must have an edge of relType in
// the given direction to one of the listed items. An empty items list
// matches any edge of that type and direction.
func (q *RelationshipQuery) Add(relType string, direction EdgeDirection, items ...any) *RelationshipQuery {
	entry := map[string]any{
		"type":      relType,
		"direction": string(direction),
	}
	if len(items) > 0 {
		entry["items"] = toAnySlice(items)
	}
	q.set.append(entry)
	return q
}

func (q *RelationshipQuery) To(relType string, items ...any) *RelationshipQuery {
	return q.Add(relType, DirectionTo, items...)
}

func (q *RelationshipQuery) From(relType string, items ...any) *RelationshipQuery {
	return q.Add(relType, DirectionFrom, items...)
}

func (q *RelationshipQuery) Any(relType string, items ...any) *RelationshipQuery {
	return q.Add(relType, DirectionAny, items...)
}

// NoRelation matches items that have no edges of relType in either
// direction.
func (q *RelationshipQuery) NoRelation(relType string) *RelationshipQuery {
	q.set.append(map[string]any{
		"type":        relType,
		"no_relation": true,
	})
	return q
}

func (q *RelationshipQuery) SetRelation(relation string) *RelationshipQuery {
	q.set.setRelation(relation)
	return q
}

func (q *RelationshipQuery) Clear() *RelationshipQuery {
	q.set.clear()
	return q
}

func (q *RelationshipQuery) Export() map[string]any {
	return q.set.export()
}
