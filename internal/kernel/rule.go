package kernel

import (
	"fmt"
	"sort"
	"strings"
)

// Term is one slot constraint inside a pattern or action: either a
// literal value that must match exactly, or a variable that binds to
// (or substitutes) the matched fact's slot value.
type Term struct {
	isVar bool
	name  string // variable name
	value Value  // literal
}

// Lit constructs a literal term.
func Lit(v Value) Term { return Term{value: v} }

// Var constructs a variable term. The same variable name appearing in
// several conditions of one rule must bind to the same value across all
// of them (a join constraint).
func Var(name string) Term { return Term{isVar: true, name: name} }

// IsVar reports whether the term is a variable.
func (t Term) IsVar() bool { return t.isVar }

// Literal returns the term's literal value; ok is false for variables.
func (t Term) Literal() (Value, bool) {
	if t.isVar {
		return Value{}, false
	}
	return t.value, true
}

// Pattern constrains facts of one template: per slot, a literal to
// match or a variable to bind. Slots not mentioned match any value.
type Pattern struct {
	Template string
	Terms    map[string]Term
}

// Action asserts exactly one new fact whose slot values come from the
// rule's bound variables and literal terms.
type Action struct {
	Template string
	Terms    map[string]Term
}

// Rule is an ordered list of positive conditions, at most one
// negated-existential condition, and an action. A rule's priority is
// its position in the rule base: earlier-declared rules fire first
// whenever several rules are simultaneously satisfiable.
type Rule struct {
	Name string
	Doc  string
	// When are the positive conditions, matched left to right.
	When []Pattern
	// Unless, when non-nil, suppresses the rule for a binding as long
	// as a fact matching the pattern exists. Variables in it must be
	// bound by the positive conditions.
	Unless *Pattern
	// Then is the single fact assertion the rule performs on firing.
	Then Action
}

// Binding maps a rule's variable names to the concrete values matched
// from facts. Scoped to a single match attempt.
type Binding map[string]Value

// clone copies a binding before extending it down another branch of
// the match.
func (b Binding) clone() Binding {
	nb := make(Binding, len(b)+1)
	for k, v := range b {
		nb[k] = v
	}
	return nb
}

// key renders the binding canonically (variables sorted) so fired
// instances can be recorded and deduplicated.
func (b Binding) key() string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	var sb strings.Builder
	for i, name := range names {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(name)
		sb.WriteByte('=')
		sb.WriteString(b[name].String())
	}
	return sb.String()
}

// instanceKey identifies a (rule, binding) activation.
func instanceKey(r *Rule, b Binding) string {
	return fmt.Sprintf("%s[%s]", r.Name, b.key())
}
