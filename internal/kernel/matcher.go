package kernel

// candidates computes every binding of the rule's variables that
// jointly satisfies its positive conditions against the current store,
// then filters out bindings whose negated-existential condition is
// present. Matching is an ordered left-to-right conjunctive join: each
// condition either narrows a partial binding or discards it, so shared
// variables across conditions must agree.
//
// The negated condition is evaluated here, against the store as it is
// at the moment of the call, never against a snapshot. The agenda
// re-invokes the matcher after every firing, which is what lets a
// higher-priority rule's freshly asserted fact suppress lower-priority
// rules for the same binding within the same run.
func candidates(r *Rule, s *Store) []Binding {
	partial := []Binding{{}}
	for i := range r.When {
		partial = extend(&r.When[i], s, partial)
		if len(partial) == 0 {
			return nil
		}
	}

	if r.Unless == nil {
		return dedup(partial)
	}

	var surviving []Binding
	for _, b := range partial {
		constraints := ground(r.Unless, b)
		if !s.Exists(r.Unless.Template, constraints) {
			surviving = append(surviving, b)
		}
	}
	return dedup(surviving)
}

// extend matches one positive condition against the store, growing each
// partial binding once per matching fact. Bindings that cannot be
// extended are dropped (backtracking happens implicitly: a dead branch
// simply contributes no successors).
func extend(p *Pattern, s *Store, partial []Binding) []Binding {
	var next []Binding
	for _, b := range partial {
		constraints := ground(p, b)
		for _, f := range s.Query(p.Template, constraints) {
			nb := b.clone()
			consistent := true
			for slot, term := range p.Terms {
				if !term.isVar {
					continue
				}
				v, _ := f.Value(slot)
				if prev, bound := nb[term.name]; bound {
					// Same variable twice in one pattern must agree.
					if !prev.Equal(v) {
						consistent = false
						break
					}
					continue
				}
				nb[term.name] = v
			}
			if consistent {
				next = append(next, nb)
			}
		}
	}
	return next
}

// ground turns a pattern into store constraints: literals pass through,
// variables already bound substitute their value, unbound variables
// impose no constraint (they will bind from the matched fact).
func ground(p *Pattern, b Binding) map[string]Value {
	constraints := make(map[string]Value, len(p.Terms))
	for slot, term := range p.Terms {
		if term.isVar {
			if v, ok := b[term.name]; ok {
				constraints[slot] = v
			}
			continue
		}
		constraints[slot] = term.value
	}
	return constraints
}

// dedup removes duplicate bindings, preserving first-seen order so the
// agenda's "first surviving binding" choice stays deterministic.
func dedup(bindings []Binding) []Binding {
	if len(bindings) < 2 {
		return bindings
	}
	seen := make(map[string]struct{}, len(bindings))
	out := bindings[:0]
	for _, b := range bindings {
		k := b.key()
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, b)
	}
	return out
}
