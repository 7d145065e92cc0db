package kernel

// firedSet records (rule, binding) activations that already fired, so
// no instance ever fires twice.
type firedSet map[string]struct{}

func (fs firedSet) has(r *Rule, b Binding) bool {
	_, ok := fs[instanceKey(r, b)]
	return ok
}

func (fs firedSet) add(r *Rule, b Binding) {
	fs[instanceKey(r, b)] = struct{}{}
}

// nextFirable scans the rule base in declared order and returns the
// first rule with a surviving binding that has not fired yet, together
// with that binding. It re-matches every rule from scratch on each
// call: after any side effect the highest-priority still-satisfiable
// rule must win, so nothing from a previous scan can be trusted.
// The third return value is false at fixpoint.
func nextFirable(rb *RuleBase, s *Store, fired firedSet) (*Rule, Binding, bool) {
	for i := range rb.rules {
		r := &rb.rules[i]
		for _, b := range candidates(r, s) {
			if fired.has(r, b) {
				continue
			}
			return r, b, true
		}
	}
	return nil, nil, false
}
