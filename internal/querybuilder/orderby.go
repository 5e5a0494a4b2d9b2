package querybuilder

import "strings"

// Direction is an ordering direction.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// OrderbyRandom is the value exported under "orderby" when random ordering
// is selected.
const OrderbyRandom = "rand"

// Orderby accumulates ordering fields. A global default direction can be
// set separately from per-field directions; entries without their own
// direction fall back to the global one in the engine. Random mode
// discards everything else and exports just {"orderby": "rand"}.
type Orderby struct {
	entries []map[string]any
	order   Direction
	random  bool
}

func NewOrderby() *Orderby {
	return &Orderby{}
}

// Add appends an ordering field without a per-field direction.
func (o *Orderby) Add(field string) *Orderby {
	o.entries = append(o.entries, map[string]any{"field": field})
	return o
}

// AddWithOrder appends an ordering field with its own direction.
func (o *Orderby) AddWithOrder(field string, direction Direction) *Orderby {
	o.entries = append(o.entries, map[string]any{
		"field": field,
		"order": string(normalizeDirection(direction)),
	})
	return o
}

// SetOrder sets the global default direction. Case-insensitive, stored
// normalized; anything other than DESC becomes ASC.
func (o *Orderby) SetOrder(direction Direction) *Orderby {
	o.order = normalizeDirection(direction)
	return o
}

// Rand switches the builder to random ordering. Previously added fields
// and the global direction are not exported while random mode is active.
func (o *Orderby) Rand() *Orderby {
	o.random = true
	return o
}

func (o *Orderby) Clear() *Orderby {
	o.entries = nil
	o.order = ""
	o.random = false
	return o
}

func (o *Orderby) Export() map[string]any {
	if o.random {
		return map[string]any{"orderby": OrderbyRandom}
	}
	out := make(map[string]any)
	if len(o.entries) > 0 {
		out["orderby"] = copyConditions(o.entries)
	}
	if o.order != "" {
		out["order"] = string(o.order)
	}
	return out
}

func normalizeDirection(direction Direction) Direction {
	if strings.EqualFold(string(direction), string(Desc)) {
		return Desc
	}
	return Asc
}
