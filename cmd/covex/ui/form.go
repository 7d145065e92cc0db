package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"covex/internal/triage"
)

// question is one yes/no observation prompt.
type question struct {
	prompt string
	apply  func(*triage.Patient, triage.Answer)
}

var questions = []question{
	{"Do you have fever (>=37.8C/100F)?",
		func(p *triage.Patient, a triage.Answer) { p.Fever = a }},
	{"Do you have a persistent cough?",
		func(p *triage.Patient, a triage.Answer) { p.Cough = a }},
	{"Do you have difficulty breathing or shortness of breath?",
		func(p *triage.Patient, a triage.Answer) { p.BreathingDifficulty = a }},
	{"Are you experiencing unusual tiredness or fatigue?",
		func(p *triage.Patient, a triage.Answer) { p.Fatigue = a }},
	{"Have you lost your sense of taste or smell?",
		func(p *triage.Patient, a triage.Answer) { p.LossOfTasteSmell = a }},
	{"Have you been in close contact with a confirmed COVID-19 case?",
		func(p *triage.Patient, a triage.Answer) { p.ContactWithPositive = a }},
}

// submitIndex is the focus position of the submit button; positions
// 0..len(questions) are the name field and the questions.
var submitIndex = len(questions) + 1

// FormModel is the interactive assessment form: a name field, one
// yes/no toggle per observation, and a submit button.
type FormModel struct {
	name      textinput.Model
	answers   []triage.Answer
	focus     int
	errMsg    string
	submitted bool
	aborted   bool
}

// NewForm constructs the form with every answer defaulting to no.
func NewForm() FormModel {
	name := textinput.New()
	name.Placeholder = "Patient name"
	name.CharLimit = 64
	name.Focus()

	answers := make([]triage.Answer, len(questions))
	for i := range answers {
		answers[i] = triage.No
	}

	return FormModel{name: name, answers: answers}
}

// Init implements tea.Model.
func (m FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		m.aborted = true
		return m, tea.Quit

	case "tab", "down":
		return m.moveFocus(1), nil

	case "shift+tab", "up":
		return m.moveFocus(-1), nil

	case "enter":
		if m.focus == submitIndex {
			if strings.TrimSpace(m.name.Value()) == "" {
				m.errMsg = "Please enter patient name"
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
		return m.moveFocus(1), nil

	case "left", "right", " ":
		if q := m.focus - 1; q >= 0 && q < len(questions) {
			m.answers[q] = toggle(m.answers[q])
			return m, nil
		}

	case "y":
		if q := m.focus - 1; q >= 0 && q < len(questions) {
			m.answers[q] = triage.Yes
			return m, nil
		}

	case "n":
		if q := m.focus - 1; q >= 0 && q < len(questions) {
			m.answers[q] = triage.No
			return m, nil
		}
	}

	if m.focus == 0 {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

func toggle(a triage.Answer) triage.Answer {
	if a == triage.Yes {
		return triage.No
	}
	return triage.Yes
}

func (m FormModel) moveFocus(delta int) FormModel {
	m.errMsg = ""
	m.focus += delta
	if m.focus < 0 {
		m.focus = submitIndex
	}
	if m.focus > submitIndex {
		m.focus = 0
	}
	if m.focus == 0 {
		m.name.Focus()
	} else {
		m.name.Blur()
	}
	return m
}

// View implements tea.Model.
func (m FormModel) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("COVID-19 Diagnosis Expert System"))
	b.WriteByte('\n')
	b.WriteString(SubtitleStyle.Render("Please answer the following questions about your symptoms"))
	b.WriteString("\n\n")

	label := "  Patient Name:"
	if m.focus == 0 {
		label = FocusedStyle.Render("> Patient Name:")
	}
	fmt.Fprintf(&b, "%s %s\n\n", label, m.name.View())

	for i, q := range questions {
		prompt := "  " + q.prompt
		if m.focus == i+1 {
			prompt = FocusedStyle.Render("> " + q.prompt)
		}
		fmt.Fprintf(&b, "%s\n      %s\n", prompt, renderAnswer(m.answers[i]))
	}

	submit := "  [ Get Diagnosis ]"
	if m.focus == submitIndex {
		submit = FocusedStyle.Render("> [ Get Diagnosis ]")
	}
	b.WriteByte('\n')
	b.WriteString(submit)
	b.WriteByte('\n')

	if m.errMsg != "" {
		b.WriteByte('\n')
		b.WriteString(ErrorStyle.Render(m.errMsg))
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.WriteString(SubtitleStyle.Render("tab/arrows: move  y/n/space: answer  enter: submit  esc: quit"))
	b.WriteByte('\n')
	b.WriteString(DisclaimerStyle.Render(Disclaimer))
	b.WriteByte('\n')

	return b.String()
}

func renderAnswer(a triage.Answer) string {
	yes, no := "( ) Yes", "( ) No"
	if a == triage.Yes {
		yes = "(x) Yes"
	} else {
		no = "(x) No"
	}
	return yes + "   " + no
}

// Patient returns the completed observation record; ok is false when
// the form was aborted or never submitted.
func (m FormModel) Patient() (triage.Patient, bool) {
	if !m.submitted || m.aborted {
		return triage.Patient{}, false
	}
	p := triage.Patient{Name: strings.TrimSpace(m.name.Value())}
	for i, q := range questions {
		q.apply(&p, m.answers[i])
	}
	return p, true
}
