package kernel

import "testing"

func testTemplate(t *testing.T) *Template {
	t.Helper()
	tmpl, err := NewTemplate("subject",
		SlotDef{Name: "name", Type: SlotString},
		SlotDef{Name: "fever", Type: SlotSymbol, Allowed: []string{"yes", "no"}},
	)
	if err != nil {
		t.Fatalf("NewTemplate() error = %v", err)
	}
	return tmpl
}

func testFact(t *testing.T, tmpl *Template, name, fever string) Fact {
	t.Helper()
	f, err := NewFact(tmpl, map[string]Value{
		"name":  String(name),
		"fever": Symbol(fever),
	})
	if err != nil {
		t.Fatalf("NewFact() error = %v", err)
	}
	return f
}

func TestStoreAssertDuplicate(t *testing.T) {
	tmpl := testTemplate(t)
	s := NewStore()

	if !s.Assert(testFact(t, tmpl, "alice", "yes")) {
		t.Fatal("first Assert() = false, want true")
	}
	if s.Assert(testFact(t, tmpl, "alice", "yes")) {
		t.Fatal("duplicate Assert() = true, want false")
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}

	// Different slot values are a different fact.
	if !s.Assert(testFact(t, tmpl, "alice", "no")) {
		t.Fatal("Assert() with different values = false, want true")
	}
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
}

func TestStoreReset(t *testing.T) {
	tmpl := testTemplate(t)
	s := NewStore()
	s.Assert(testFact(t, tmpl, "alice", "yes"))
	s.Assert(testFact(t, tmpl, "bob", "no"))

	s.Reset()

	if s.Len() != 0 {
		t.Fatalf("Len() after Reset = %d, want 0", s.Len())
	}
	// A fact identical to a pre-reset one inserts cleanly.
	if !s.Assert(testFact(t, tmpl, "alice", "yes")) {
		t.Fatal("Assert() after Reset = false, want true")
	}
}

func TestStoreQuery(t *testing.T) {
	tmpl := testTemplate(t)
	s := NewStore()
	s.Assert(testFact(t, tmpl, "alice", "yes"))
	s.Assert(testFact(t, tmpl, "bob", "no"))
	s.Assert(testFact(t, tmpl, "carol", "yes"))

	got := s.Query("subject", map[string]Value{"fever": Symbol("yes")})
	if len(got) != 2 {
		t.Fatalf("Query(fever=yes) returned %d facts, want 2", len(got))
	}
	// Insertion order.
	if name, _ := got[0].Value("name"); name.Text() != "alice" {
		t.Errorf("first match = %s, want alice", name.Text())
	}
	if name, _ := got[1].Value("name"); name.Text() != "carol" {
		t.Errorf("second match = %s, want carol", name.Text())
	}

	if got := s.Query("subject", nil); len(got) != 3 {
		t.Fatalf("unconstrained Query returned %d facts, want 3", len(got))
	}
	if got := s.Query("nosuch", nil); len(got) != 0 {
		t.Fatalf("Query(unknown template) returned %d facts, want 0", len(got))
	}
}

func TestStoreExists(t *testing.T) {
	tmpl := testTemplate(t)
	s := NewStore()

	if s.Exists("subject", nil) {
		t.Fatal("Exists() on empty store = true")
	}

	s.Assert(testFact(t, tmpl, "alice", "yes"))

	if !s.Exists("subject", map[string]Value{"name": String("alice")}) {
		t.Fatal("Exists(name=alice) = false, want true")
	}
	if s.Exists("subject", map[string]Value{"name": String("bob")}) {
		t.Fatal("Exists(name=bob) = true, want false")
	}
	if s.Exists("subject", map[string]Value{"name": String("alice"), "fever": Symbol("no")}) {
		t.Fatal("Exists(name=alice, fever=no) = true, want false")
	}
}

func TestNewFactValidation(t *testing.T) {
	tmpl := testTemplate(t)

	cases := []struct {
		name   string
		values map[string]Value
	}{
		{"missing slot", map[string]Value{"name": String("alice")}},
		{"unknown slot", map[string]Value{"name": String("alice"), "fever": Symbol("yes"), "extra": String("x")}},
		{"symbol outside allowed set", map[string]Value{"name": String("alice"), "fever": Symbol("maybe")}},
		{"wrong kind for string slot", map[string]Value{"name": Number(1), "fever": Symbol("yes")}},
		{"wrong kind for symbol slot", map[string]Value{"name": String("alice"), "fever": String("yes")}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewFact(tmpl, tc.values); err == nil {
				t.Fatal("NewFact() error = nil, want error")
			}
		})
	}
}
