package kernel

import (
	"fmt"

	"go.uber.org/zap"
)

// DefaultMaxIterations bounds the fixpoint loop. The triage rule set is
// acyclic so the guard never trips in practice; it exists to fail fast
// if a future rule-base change introduces a cycle.
const DefaultMaxIterations = 1000

// Engine drives the assert → match → fire → re-match loop over one
// working memory and one rule base. An engine is single-threaded: it
// must not be shared between concurrent runs (use one engine per
// goroutine, or serialize above this layer).
type Engine struct {
	store *Store
	rules *RuleBase
	log   *zap.Logger
	max   int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger injects a logger for firing traces. Defaults to a no-op.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithMaxIterations overrides the fixpoint iteration guard.
func WithMaxIterations(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.max = n
		}
	}
}

// NewEngine constructs an engine owning a fresh, empty store.
func NewEngine(rb *RuleBase, opts ...Option) *Engine {
	e := &Engine{
		store: NewStore(),
		rules: rb,
		log:   zap.NewNop(),
		max:   DefaultMaxIterations,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Store exposes the engine's working memory for result extraction.
func (e *Engine) Store() *Store { return e.store }

// Reset clears the working memory.
func (e *Engine) Reset() { e.store.Reset() }

// Assert validates values against the named template and inserts the
// resulting fact. It reports whether insertion occurred (false for an
// identical duplicate).
func (e *Engine) Assert(template string, values map[string]Value) (bool, error) {
	t, ok := e.rules.Template(template)
	if !ok {
		return false, fmt.Errorf("kernel: unknown template %q", template)
	}
	f, err := NewFact(t, values)
	if err != nil {
		return false, err
	}
	return e.store.Assert(f), nil
}

// Run drives the loop to fixpoint and returns how many rule instances
// fired. Each step re-asks the agenda for the highest-priority
// satisfiable instance, fires it (asserting its action's fact), records
// it, and repeats until the agenda reports none. The iteration guard
// converts a cyclic rule base into ErrMaxIterations instead of an
// infinite loop.
func (e *Engine) Run() (int, error) {
	fired := make(firedSet)
	count := 0
	for {
		r, b, ok := nextFirable(e.rules, e.store, fired)
		if !ok {
			// Quiescent: no instance left to fire.
			e.log.Debug("fixpoint reached", zap.Int("fired", count), zap.Int("facts", e.store.Len()))
			return count, nil
		}
		if count >= e.max {
			return count, fmt.Errorf("%w after %d firings; rule base likely contains a cycle", ErrMaxIterations, count)
		}

		f, err := e.actionFact(r, b)
		if err != nil {
			// Unreachable for a validated rule base; surfaced rather
			// than swallowed in case of a kernel defect.
			return count, fmt.Errorf("kernel: rule %s action: %w", r.Name, err)
		}

		inserted := e.store.Assert(f)
		fired.add(r, b)
		count++

		e.log.Debug("rule fired",
			zap.String("rule", r.Name),
			zap.String("fact", f.Key()),
			zap.Bool("inserted", inserted))
	}
}

// actionFact builds the fact a rule's action asserts, substituting
// bound variables into the action's terms.
func (e *Engine) actionFact(r *Rule, b Binding) (Fact, error) {
	t, ok := e.rules.Template(r.Then.Template)
	if !ok {
		return Fact{}, fmt.Errorf("unknown template %q", r.Then.Template)
	}
	values := make(map[string]Value, len(r.Then.Terms))
	for slot, term := range r.Then.Terms {
		if term.isVar {
			v, bound := b[term.name]
			if !bound {
				return Fact{}, fmt.Errorf("variable %q unbound", term.name)
			}
			values[slot] = v
			continue
		}
		values[slot] = term.value
	}
	return NewFact(t, values)
}
