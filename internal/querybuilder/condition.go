package querybuilder

import "strings"

// Compare is the comparison operator carried by a single condition entry.
type Compare string

const (
	CompareEquals     Compare = "="
	CompareNotEquals  Compare = "!="
	CompareIn         Compare = "IN"
	CompareNotIn      Compare = "NOT IN"
	CompareLike       Compare = "LIKE"
	CompareNotLike    Compare = "NOT LIKE"
	CompareBetween    Compare = "BETWEEN"
	CompareNotBetween Compare = "NOT BETWEEN"
	CompareExists     Compare = "EXISTS"
	CompareNotExists  Compare = "NOT EXISTS"
)

// ValueType hints how the downstream engine should cast the stored value
// before comparing it.
type ValueType string

const (
	TypeChar     ValueType = "CHAR"
	TypeNumeric  ValueType = "NUMERIC"
	TypeBinary   ValueType = "BINARY"
	TypeDate     ValueType = "DATE"
	TypeDatetime ValueType = "DATETIME"
	TypeSigned   ValueType = "SIGNED"
	TypeUnsigned ValueType = "UNSIGNED"
)

type Relation string

const (
	RelationAnd Relation = "AND"
	RelationOr  Relation = "OR"
)

// conditionSet holds the accumulated condition entries and the optional
// relation shared by the meta, tax and relationship builders. The
// default-relation-on-export rule lives here and nowhere else.
type conditionSet struct {
	conditions []map[string]any
	relation   Relation
}

func (s *conditionSet) append(entry map[string]any) {
	s.conditions = append(s.conditions, entry)
}

// setRelation stores the relation normalized to uppercase. Input is taken
// as given beyond the normalization; the engine owns validation.
func (s *conditionSet) setRelation(relation string) {
	s.relation = Relation(strings.ToUpper(relation))
}

func (s *conditionSet) clear() {
	s.conditions = nil
	s.relation = ""
}

// export finalizes the set into a plain structure. An explicitly set
// relation is always included; otherwise AND is injected into the output
// only when more than one entry exists. The internal relation field is
// never touched, so re-exporting after further adds re-evaluates the rule.
func (s *conditionSet) export() map[string]any {
	out := make(map[string]any)
	if s.relation != "" {
		out["relation"] = string(s.relation)
	} else if len(s.conditions) > 1 {
		out["relation"] = string(RelationAnd)
	}
	if len(s.conditions) > 0 {
		out["conditions"] = copyConditions(s.conditions)
	}
	return out
}

// copyConditions detaches the exported entries from the builder's own
// state so that neither side observes mutations of the other.
func copyConditions(conditions []map[string]any) []map[string]any {
	out := make([]map[string]any, len(conditions))
	for i, entry := range conditions {
		out[i] = copyEntry(entry)
	}
	return out
}

func copyEntry(entry map[string]any) map[string]any {
	cp := make(map[string]any, len(entry))
	for k, v := range entry {
		if list, ok := v.([]any); ok {
			vals := make([]any, len(list))
			copy(vals, list)
			cp[k] = vals
			continue
		}
		cp[k] = v
	}
	return cp
}

func toAnySlice(values []any) []any {
	out := make([]any, len(values))
	copy(out, values)
	return out
}
