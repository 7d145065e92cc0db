package kernel

import "testing"

// matcherFixture builds two templates joined by a subject name and a
// populated store for join tests.
func matcherFixture(t *testing.T) (*RuleBase, *Store) {
	t.Helper()
	symptom, err := NewTemplate("symptom",
		SlotDef{Name: "name", Type: SlotString},
		SlotDef{Name: "kind", Type: SlotSymbol, Allowed: []string{"fever", "cough"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	contact, err := NewTemplate("contact",
		SlotDef{Name: "name", Type: SlotString},
		SlotDef{Name: "exposed", Type: SlotSymbol, Allowed: []string{"yes", "no"}},
	)
	if err != nil {
		t.Fatal(err)
	}
	verdict, err := NewTemplate("verdict",
		SlotDef{Name: "name", Type: SlotString},
	)
	if err != nil {
		t.Fatal(err)
	}

	rb, err := NewRuleBase([]*Template{symptom, contact, verdict}, nil)
	if err != nil {
		t.Fatal(err)
	}

	s := NewStore()
	add := func(tmpl *Template, values map[string]Value) {
		f, err := NewFact(tmpl, values)
		if err != nil {
			t.Fatal(err)
		}
		s.Assert(f)
	}
	add(symptom, map[string]Value{"name": String("alice"), "kind": Symbol("fever")})
	add(symptom, map[string]Value{"name": String("bob"), "kind": Symbol("fever")})
	add(symptom, map[string]Value{"name": String("bob"), "kind": Symbol("cough")})
	add(contact, map[string]Value{"name": String("bob"), "exposed": Symbol("yes")})

	return rb, s
}

func TestCandidatesJoinOnSharedVariable(t *testing.T) {
	_, s := matcherFixture(t)

	// fever AND exposed must agree on the subject: only bob qualifies.
	r := Rule{
		Name: "fever-and-exposed",
		When: []Pattern{
			{Template: "symptom", Terms: map[string]Term{
				"name": Var("n"), "kind": Lit(Symbol("fever")),
			}},
			{Template: "contact", Terms: map[string]Term{
				"name": Var("n"), "exposed": Lit(Symbol("yes")),
			}},
		},
	}

	got := candidates(&r, s)
	if len(got) != 1 {
		t.Fatalf("candidates() returned %d bindings, want 1", len(got))
	}
	if v := got[0]["n"]; v.Text() != "bob" {
		t.Fatalf("binding n = %s, want bob", v.Text())
	}
}

func TestCandidatesBacktracking(t *testing.T) {
	_, s := matcherFixture(t)

	// First condition produces alice and bob; the second can only be
	// extended for bob. Alice's partial binding is discarded, not kept
	// half-bound.
	r := Rule{
		Name: "fever-then-cough",
		When: []Pattern{
			{Template: "symptom", Terms: map[string]Term{
				"name": Var("n"), "kind": Lit(Symbol("fever")),
			}},
			{Template: "symptom", Terms: map[string]Term{
				"name": Var("n"), "kind": Lit(Symbol("cough")),
			}},
		},
	}

	got := candidates(&r, s)
	if len(got) != 1 {
		t.Fatalf("candidates() returned %d bindings, want 1", len(got))
	}
	if v := got[0]["n"]; v.Text() != "bob" {
		t.Fatalf("binding n = %s, want bob", v.Text())
	}
}

func TestCandidatesNoMatch(t *testing.T) {
	_, s := matcherFixture(t)

	r := Rule{
		Name: "never",
		When: []Pattern{{
			Template: "contact",
			Terms:    map[string]Term{"exposed": Lit(Symbol("no"))},
		}},
	}
	if got := candidates(&r, s); len(got) != 0 {
		t.Fatalf("candidates() returned %d bindings, want 0", len(got))
	}
}

func TestCandidatesNegationAgainstCurrentState(t *testing.T) {
	rb, s := matcherFixture(t)

	r := Rule{
		Name: "fever-unless-verdict",
		When: []Pattern{{
			Template: "symptom",
			Terms:    map[string]Term{"name": Var("n"), "kind": Lit(Symbol("fever"))},
		}},
		Unless: &Pattern{
			Template: "verdict",
			Terms:    map[string]Term{"name": Var("n")},
		},
	}

	if got := candidates(&r, s); len(got) != 2 {
		t.Fatalf("candidates() before verdict = %d bindings, want 2", len(got))
	}

	// Asserting a verdict for bob must suppress bob's binding on the
	// very next evaluation: the negation reads the current store, not
	// a snapshot.
	verdict, _ := rb.Template("verdict")
	f, err := NewFact(verdict, map[string]Value{"name": String("bob")})
	if err != nil {
		t.Fatal(err)
	}
	s.Assert(f)

	got := candidates(&r, s)
	if len(got) != 1 {
		t.Fatalf("candidates() after verdict = %d bindings, want 1", len(got))
	}
	if v := got[0]["n"]; v.Text() != "alice" {
		t.Fatalf("surviving binding n = %s, want alice", v.Text())
	}
}

func TestCandidatesDeduplicates(t *testing.T) {
	_, s := matcherFixture(t)

	// Bob has two symptom facts; a condition binding only the name
	// matches both but must yield one binding per distinct value set.
	r := Rule{
		Name: "any-symptom",
		When: []Pattern{{
			Template: "symptom",
			Terms:    map[string]Term{"name": Var("n")},
		}},
	}
	got := candidates(&r, s)
	if len(got) != 2 {
		t.Fatalf("candidates() returned %d bindings, want 2 (alice, bob)", len(got))
	}
}
