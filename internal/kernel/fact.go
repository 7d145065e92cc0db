package kernel

import (
	"fmt"
	"strings"
)

// Fact is an immutable record conforming to a template: the template
// name plus one value per declared slot, in declaration order. Facts
// are identified by template name + slot values; asserting an identical
// fact twice is a no-op at the store.
type Fact struct {
	template *Template
	values   []Value // aligned with template slot order
	key      string
}

// NewFact validates values against the template and constructs a fact.
// Every declared slot must be present; extra slots are rejected.
func NewFact(t *Template, values map[string]Value) (Fact, error) {
	if t == nil {
		return Fact{}, fmt.Errorf("nil template")
	}
	if len(values) != len(t.slots) {
		for name := range values {
			if _, ok := t.index[name]; !ok {
				return Fact{}, fmt.Errorf("template %s has no slot %q", t.name, name)
			}
		}
		for _, slot := range t.slots {
			if _, ok := values[slot.Name]; !ok {
				return Fact{}, fmt.Errorf("template %s fact is missing slot %q", t.name, slot.Name)
			}
		}
	}

	ordered := make([]Value, len(t.slots))
	for i, slot := range t.slots {
		v, ok := values[slot.Name]
		if !ok {
			return Fact{}, fmt.Errorf("template %s fact is missing slot %q", t.name, slot.Name)
		}
		if err := t.checkValue(slot.Name, v); err != nil {
			return Fact{}, err
		}
		ordered[i] = v
	}

	return Fact{template: t, values: ordered, key: factKey(t, ordered)}, nil
}

func factKey(t *Template, ordered []Value) string {
	var b strings.Builder
	b.WriteString(t.name)
	b.WriteByte('(')
	for i, slot := range t.slots {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte('(')
		b.WriteString(slot.Name)
		b.WriteByte(' ')
		b.WriteString(ordered[i].String())
		b.WriteByte(')')
	}
	b.WriteByte(')')
	return b.String()
}

// Template returns the name of the template this fact conforms to.
func (f Fact) Template() string {
	if f.template == nil {
		return ""
	}
	return f.template.name
}

// Value returns the value of the named slot.
func (f Fact) Value(slot string) (Value, bool) {
	if f.template == nil {
		return Value{}, false
	}
	i, ok := f.template.index[slot]
	if !ok {
		return Value{}, false
	}
	return f.values[i], true
}

// Key returns the fact's identity string, used for duplicate detection.
func (f Fact) Key() string { return f.key }

// String returns the fact in deftemplate-style notation.
func (f Fact) String() string { return f.key }
