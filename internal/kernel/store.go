package kernel

// Store is the working memory: the set of currently asserted facts.
// It is exclusively owned by one engine run at a time; callers that
// diagnose concurrently must use one store per goroutine or serialize
// access above this layer.
type Store struct {
	facts []Fact
	seen  map[string]struct{}
}

// NewStore returns an empty working memory.
func NewStore() *Store {
	return &Store{seen: make(map[string]struct{})}
}

// Assert inserts the fact unless an identical one (same template, same
// slot values) already exists. It reports whether insertion occurred;
// re-asserting a duplicate is defined behavior, not an error.
func (s *Store) Assert(f Fact) bool {
	if _, dup := s.seen[f.key]; dup {
		return false
	}
	s.seen[f.key] = struct{}{}
	s.facts = append(s.facts, f)
	return true
}

// Reset removes all facts. Called at the start of each diagnosis so no
// facts leak across subjects.
func (s *Store) Reset() {
	s.facts = s.facts[:0]
	s.seen = make(map[string]struct{})
}

// Len returns the number of asserted facts.
func (s *Store) Len() int { return len(s.facts) }

// Facts returns a copy of all asserted facts in insertion order.
func (s *Store) Facts() []Fact {
	out := make([]Fact, len(s.facts))
	copy(out, s.facts)
	return out
}

// Query returns all facts of the given template whose slots equal the
// given constraint values; slots absent from constraints match any
// value. Results come back in insertion order.
func (s *Store) Query(template string, constraints map[string]Value) []Fact {
	var out []Fact
	for _, f := range s.facts {
		if s.matches(f, template, constraints) {
			out = append(out, f)
		}
	}
	return out
}

// Exists reports whether Query would return at least one fact. Used to
// evaluate negated-existential conditions, always against the current
// store state.
func (s *Store) Exists(template string, constraints map[string]Value) bool {
	for _, f := range s.facts {
		if s.matches(f, template, constraints) {
			return true
		}
	}
	return false
}

func (s *Store) matches(f Fact, template string, constraints map[string]Value) bool {
	if f.Template() != template {
		return false
	}
	for slot, want := range constraints {
		got, ok := f.Value(slot)
		if !ok || !got.Equal(want) {
			return false
		}
	}
	return true
}
