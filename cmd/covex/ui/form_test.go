package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"covex/internal/triage"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func update(m FormModel, msgs ...tea.Msg) FormModel {
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(FormModel)
	}
	return m
}

func TestFormDefaultsToAllNo(t *testing.T) {
	m := NewForm()
	m = update(m, key("A"), key("n"), key("n")) // type a name

	// Walk to submit and confirm.
	for i := 0; i <= len(questions); i++ {
		m = update(m, key("tab"))
	}
	m = update(m, key("enter"))

	p, ok := m.Patient()
	if !ok {
		t.Fatal("Patient() ok = false after submit")
	}
	if p.Name != "Ann" {
		t.Fatalf("Name = %q, want Ann", p.Name)
	}
	for _, a := range []triage.Answer{p.Fever, p.Cough, p.BreathingDifficulty, p.Fatigue, p.LossOfTasteSmell, p.ContactWithPositive} {
		if a != triage.No {
			t.Fatalf("answer = %q, want no", a)
		}
	}
}

func TestFormToggleAnswers(t *testing.T) {
	m := NewForm()
	m = update(m, key("B"), key("o"), key("b"))

	// First question (fever): answer yes.
	m = update(m, key("tab"), key("y"))
	// Second question (cough): toggle with space.
	m = update(m, key("tab"), key(" "))

	// Walk the rest to submit.
	for i := 2; i <= len(questions); i++ {
		m = update(m, key("tab"))
	}
	m = update(m, key("enter"))

	p, ok := m.Patient()
	if !ok {
		t.Fatal("Patient() ok = false after submit")
	}
	if p.Fever != triage.Yes {
		t.Errorf("Fever = %q, want yes", p.Fever)
	}
	if p.Cough != triage.Yes {
		t.Errorf("Cough = %q, want yes", p.Cough)
	}
	if p.BreathingDifficulty != triage.No {
		t.Errorf("BreathingDifficulty = %q, want no", p.BreathingDifficulty)
	}
}

func TestFormRequiresName(t *testing.T) {
	m := NewForm()
	for i := 0; i <= len(questions); i++ {
		m = update(m, key("tab"))
	}
	m = update(m, key("enter"))

	if _, ok := m.Patient(); ok {
		t.Fatal("Patient() ok = true without a name")
	}
	if !strings.Contains(m.View(), "Please enter patient name") {
		t.Fatal("missing name error not shown")
	}
}

func TestFormAbort(t *testing.T) {
	m := NewForm()
	m = update(m, key("Z"), key("esc"))
	if _, ok := m.Patient(); ok {
		t.Fatal("Patient() ok = true after abort")
	}
}

func TestFormViewListsQuestions(t *testing.T) {
	view := NewForm().View()
	for _, q := range questions {
		if !strings.Contains(view, q.prompt) {
			t.Errorf("view missing question %q", q.prompt)
		}
	}
	if !strings.Contains(view, "COVID-19 Diagnosis Expert System") {
		t.Error("view missing title")
	}
}

func TestRenderDiagnosisIncludesFields(t *testing.T) {
	out := RenderDiagnosis(triage.Diagnosis{
		PatientName:    "Ann",
		Result:         "HIGH RISK for COVID-19",
		Recommendation: "URGENT: Get PCR test immediately.",
		RiskLevel:      triage.RiskHigh,
	})
	for _, want := range []string{"Ann", "HIGH RISK for COVID-19", "URGENT", "HIGH", "Disclaimer"} {
		if !strings.Contains(out, want) {
			t.Errorf("rendered card missing %q", want)
		}
	}
}
