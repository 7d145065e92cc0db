// Package kernel implements a small forward-chaining inference engine:
// typed fact templates, a working-memory fact store, declarative rules
// with positive and negated-existential conditions, and a fixpoint
// execution loop with declaration-order conflict resolution.
package kernel

import "fmt"

// SlotType enumerates the value types a template slot can hold.
type SlotType int

const (
	// SlotString holds arbitrary string data (names, free text).
	SlotString SlotType = iota
	// SlotSymbol holds one value out of a closed, declared set.
	SlotSymbol
	// SlotNumber holds a numeric value.
	SlotNumber
)

// String returns the human-readable slot type name.
func (t SlotType) String() string {
	switch t {
	case SlotString:
		return "string"
	case SlotSymbol:
		return "symbol"
	case SlotNumber:
		return "number"
	default:
		return fmt.Sprintf("slottype(%d)", int(t))
	}
}

// SlotDef declares one slot of a template: its name, type, and for
// symbol slots the closed set of allowed values.
type SlotDef struct {
	Name    string
	Type    SlotType
	Allowed []string // symbol slots only
}

// Template is the schema facts of one kind conform to. Templates are
// built once at engine construction and never mutated afterwards.
type Template struct {
	name  string
	slots []SlotDef
	index map[string]int
}

// NewTemplate validates and constructs a template. Slot names must be
// unique, symbol slots must declare a non-empty allowed-value set, and
// non-symbol slots must not declare one.
func NewTemplate(name string, slots ...SlotDef) (*Template, error) {
	if name == "" {
		return nil, &BuildError{Subject: "template", Reason: "template name must not be empty"}
	}
	if len(slots) == 0 {
		return nil, &BuildError{Subject: name, Reason: "template must declare at least one slot"}
	}

	index := make(map[string]int, len(slots))
	for i, slot := range slots {
		if slot.Name == "" {
			return nil, &BuildError{Subject: name, Reason: fmt.Sprintf("slot %d has empty name", i)}
		}
		if _, dup := index[slot.Name]; dup {
			return nil, &BuildError{Subject: name, Reason: fmt.Sprintf("duplicate slot %q", slot.Name)}
		}
		switch slot.Type {
		case SlotSymbol:
			if len(slot.Allowed) == 0 {
				return nil, &BuildError{Subject: name, Reason: fmt.Sprintf("symbol slot %q declares no allowed values", slot.Name)}
			}
			seen := make(map[string]struct{}, len(slot.Allowed))
			for _, v := range slot.Allowed {
				if _, dup := seen[v]; dup {
					return nil, &BuildError{Subject: name, Reason: fmt.Sprintf("symbol slot %q repeats allowed value %q", slot.Name, v)}
				}
				seen[v] = struct{}{}
			}
		case SlotString, SlotNumber:
			if len(slot.Allowed) != 0 {
				return nil, &BuildError{Subject: name, Reason: fmt.Sprintf("%s slot %q must not declare allowed values", slot.Type, slot.Name)}
			}
		default:
			return nil, &BuildError{Subject: name, Reason: fmt.Sprintf("slot %q has unknown type %d", slot.Name, int(slot.Type))}
		}
		index[slot.Name] = i
	}

	return &Template{name: name, slots: slots, index: index}, nil
}

// MustTemplate is NewTemplate that panics on error; for static
// knowledge-base definitions whose validity is covered by tests.
func MustTemplate(name string, slots ...SlotDef) *Template {
	t, err := NewTemplate(name, slots...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the template name.
func (t *Template) Name() string { return t.name }

// Slots returns the declared slots in order.
func (t *Template) Slots() []SlotDef {
	out := make([]SlotDef, len(t.slots))
	copy(out, t.slots)
	return out
}

// Slot looks up a slot definition by name.
func (t *Template) Slot(name string) (SlotDef, bool) {
	i, ok := t.index[name]
	if !ok {
		return SlotDef{}, false
	}
	return t.slots[i], true
}

// checkValue verifies that v is a legal value for the named slot.
func (t *Template) checkValue(slot string, v Value) error {
	def, ok := t.Slot(slot)
	if !ok {
		return fmt.Errorf("template %s has no slot %q", t.name, slot)
	}
	switch def.Type {
	case SlotString:
		if v.Kind() != ValueString {
			return fmt.Errorf("template %s slot %q wants a string, got %s", t.name, slot, v.Kind())
		}
	case SlotNumber:
		if v.Kind() != ValueNumber {
			return fmt.Errorf("template %s slot %q wants a number, got %s", t.name, slot, v.Kind())
		}
	case SlotSymbol:
		if v.Kind() != ValueSymbol {
			return fmt.Errorf("template %s slot %q wants a symbol, got %s", t.name, slot, v.Kind())
		}
		for _, allowed := range def.Allowed {
			if v.Text() == allowed {
				return nil
			}
		}
		return fmt.Errorf("template %s slot %q does not allow symbol %q", t.name, slot, v.Text())
	}
	return nil
}
