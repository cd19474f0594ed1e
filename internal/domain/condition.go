package domain

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// Condition is a diagnostic descriptor summarizing the identifiers and
// names a failed lookup or conflict check was evaluated against. It is
// rendered into "not found" and conflict messages and must never carry
// secret material.
type Condition struct {
	ids   []uuid.UUID
	names []string
}

// EmptyCondition returns a condition with no identifiers or names.
func EmptyCondition() Condition {
	return Condition{}
}

// ConditionWithID returns a condition holding a single identifier.
func ConditionWithID(id uuid.UUID) Condition {
	return Condition{ids: []uuid.UUID{id}}
}

// ConditionWithIDs returns a condition holding the given identifiers in order.
func ConditionWithIDs(ids []uuid.UUID) Condition {
	c := Condition{ids: make([]uuid.UUID, len(ids))}
	copy(c.ids, ids)
	return c
}

// ConditionWithName returns a condition holding a single name.
func ConditionWithName(name string) Condition {
	return Condition{names: []string{name}}
}

// ConditionWithNames returns a condition holding the given names in order.
func ConditionWithNames(names []string) Condition {
	c := Condition{names: make([]string, len(names))}
	copy(c.names, names)
	return c
}

// IsEmpty reports whether the condition holds no identifiers and no names.
func (c Condition) IsEmpty() bool {
	return len(c.ids) == 0 && len(c.names) == 0
}

// String renders the condition in its diagnostic form:
//
//	""                  for an empty condition
//	"[id=X]"            for a single identifier
//	"[ids=[X,Y]]"       for multiple identifiers, insertion order preserved
//	"[name=N]"          for a single name
//	"[names=[A,B]]"     for multiple names
//
// When both identifiers and names are present, names follow the
// identifiers separated by a comma, e.g. "[id=X,name=N]".
func (c Condition) String() string {
	if c.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("[")

	switch len(c.ids) {
	case 0:
	case 1:
		b.WriteString("id=")
		b.WriteString(c.ids[0].String())
	default:
		parts := make([]string, len(c.ids))
		for i, id := range c.ids {
			parts[i] = id.String()
		}
		b.WriteString("ids=[")
		b.WriteString(strings.Join(parts, ","))
		b.WriteString("]")
	}

	switch len(c.names) {
	case 0:
	case 1:
		if len(c.ids) > 0 {
			b.WriteString(",")
		}
		b.WriteString("name=")
		b.WriteString(c.names[0])
	default:
		if len(c.ids) > 0 {
			b.WriteString(",")
		}
		b.WriteString("names=[")
		b.WriteString(strings.Join(c.names, ","))
		b.WriteString("]")
	}

	b.WriteString("]")
	return b.String()
}

// conditionJSON is the serialized shape of a Condition.
type conditionJSON struct {
	IDs   []string `json:"ids"`
	Names []string `json:"names"`
}

// MarshalJSON serializes the condition as {"ids":[...],"names":[...]}
// with both arrays always present.
func (c Condition) MarshalJSON() ([]byte, error) {
	out := conditionJSON{
		IDs:   make([]string, len(c.ids)),
		Names: make([]string, len(c.names)),
	}
	for i, id := range c.ids {
		out.IDs[i] = id.String()
	}
	copy(out.Names, c.names)
	return json.Marshal(out)
}
