package kernel

import "fmt"

// RuleBase is the ordered, immutable collection of rule definitions.
// Declaration order encodes priority: the agenda always scans rules in
// the order they were declared. A rule base exposes iteration and
// template lookup, nothing else, once built.
type RuleBase struct {
	templates map[string]*Template
	rules     []Rule
}

// NewRuleBase validates templates and rules and builds the knowledge
// base. Validation failures are build-time errors: an unbound variable
// in an action or negated condition, a literal outside a symbol slot's
// allowed set, an unknown template or slot, a type-mismatched literal.
// Any violation refuses construction entirely.
func NewRuleBase(templates []*Template, rules []Rule) (*RuleBase, error) {
	if len(templates) == 0 {
		return nil, &BuildError{Subject: "rulebase", Reason: "no templates declared"}
	}

	byName := make(map[string]*Template, len(templates))
	for _, t := range templates {
		if t == nil {
			return nil, &BuildError{Subject: "rulebase", Reason: "nil template"}
		}
		if _, dup := byName[t.name]; dup {
			return nil, &BuildError{Subject: t.name, Reason: "duplicate template"}
		}
		byName[t.name] = t
	}

	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		if r.Name == "" {
			return nil, &BuildError{Subject: "rulebase", Reason: "rule with empty name"}
		}
		if _, dup := seen[r.Name]; dup {
			return nil, &BuildError{Subject: r.Name, Reason: "duplicate rule name"}
		}
		seen[r.Name] = struct{}{}

		if err := validateRule(byName, r); err != nil {
			return nil, err
		}
	}

	rb := &RuleBase{templates: byName, rules: make([]Rule, len(rules))}
	copy(rb.rules, rules)
	return rb, nil
}

// validateRule checks one rule against the declared templates.
func validateRule(templates map[string]*Template, r Rule) error {
	if len(r.When) == 0 {
		return &BuildError{Subject: r.Name, Reason: "rule declares no positive conditions"}
	}

	// Variables bound by positive conditions, left to right.
	bound := make(map[string]struct{})
	for i, cond := range r.When {
		if err := validatePattern(templates, r.Name, fmt.Sprintf("condition %d", i+1), cond, nil); err != nil {
			return err
		}
		for _, term := range cond.Terms {
			if term.isVar {
				bound[term.name] = struct{}{}
			}
		}
	}

	if r.Unless != nil {
		if err := validatePattern(templates, r.Name, "negated condition", *r.Unless, bound); err != nil {
			return err
		}
	}

	if r.Then.Template == "" {
		return &BuildError{Subject: r.Name, Reason: "rule declares no action"}
	}
	t, ok := templates[r.Then.Template]
	if !ok {
		return &BuildError{Subject: r.Name, Reason: fmt.Sprintf("action references unknown template %q", r.Then.Template)}
	}
	for _, slot := range t.slots {
		if _, ok := r.Then.Terms[slot.Name]; !ok {
			return &BuildError{Subject: r.Name, Reason: fmt.Sprintf("action leaves template %s slot %q unset", t.name, slot.Name)}
		}
	}
	for slot, term := range r.Then.Terms {
		if _, ok := t.Slot(slot); !ok {
			return &BuildError{Subject: r.Name, Reason: fmt.Sprintf("action references unknown slot %q of template %s", slot, t.name)}
		}
		if term.isVar {
			if _, ok := bound[term.name]; !ok {
				return &BuildError{Subject: r.Name, Reason: fmt.Sprintf("action uses variable %q not bound by any positive condition", term.name)}
			}
			continue
		}
		if err := t.checkValue(slot, term.value); err != nil {
			return &BuildError{Subject: r.Name, Reason: err.Error()}
		}
	}

	return nil
}

// validatePattern checks a condition pattern. When bound is non-nil the
// pattern may only use variables already bound (negated conditions);
// positive conditions may introduce new ones.
func validatePattern(templates map[string]*Template, rule, where string, p Pattern, bound map[string]struct{}) error {
	t, ok := templates[p.Template]
	if !ok {
		return &BuildError{Subject: rule, Reason: fmt.Sprintf("%s references unknown template %q", where, p.Template)}
	}
	for slot, term := range p.Terms {
		if _, ok := t.Slot(slot); !ok {
			return &BuildError{Subject: rule, Reason: fmt.Sprintf("%s references unknown slot %q of template %s", where, slot, t.name)}
		}
		if term.isVar {
			if term.name == "" {
				return &BuildError{Subject: rule, Reason: fmt.Sprintf("%s has a variable with empty name", where)}
			}
			if bound != nil {
				if _, ok := bound[term.name]; !ok {
					return &BuildError{Subject: rule, Reason: fmt.Sprintf("%s uses variable %q not bound by any positive condition", where, term.name)}
				}
			}
			continue
		}
		if err := t.checkValue(slot, term.value); err != nil {
			return &BuildError{Subject: rule, Reason: fmt.Sprintf("%s: %s", where, err)}
		}
	}
	return nil
}

// Rules returns the rules in declared (priority) order.
func (rb *RuleBase) Rules() []Rule {
	out := make([]Rule, len(rb.rules))
	copy(out, rb.rules)
	return out
}

// Len returns the number of rules.
func (rb *RuleBase) Len() int { return len(rb.rules) }

// Template looks up a declared template by name.
func (rb *RuleBase) Template(name string) (*Template, bool) {
	t, ok := rb.templates[name]
	return t, ok
}
