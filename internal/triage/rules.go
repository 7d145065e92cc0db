package triage

import "covex/internal/kernel"

// varName is the shared subject variable joining every condition of a
// rule to one patient.
const varName = "name"

// rules declares the knowledge base in priority order: declaration
// order is absolute precedence, so the critical rule is first and the
// low-risk default is last. Every rule except the first carries a
// negated-existential guard on an existing diagnosis for the same
// patient; the first needs none because nothing can outrank it.
func rules() []kernel.Rule {
	name := kernel.Var(varName)
	yes := kernel.Lit(kernel.Symbol(string(Yes)))
	noDiagnosisYet := &kernel.Pattern{
		Template: tmplDiagnosis,
		Terms:    map[string]kernel.Term{slotPatientName: name},
	}

	diagnose := func(result, recommendation string, risk RiskLevel) kernel.Action {
		return kernel.Action{
			Template: tmplDiagnosis,
			Terms: map[string]kernel.Term{
				slotPatientName:    name,
				slotResult:         kernel.Lit(kernel.String(result)),
				slotRecommendation: kernel.Lit(kernel.String(recommendation)),
				slotRiskLevel:      kernel.Lit(kernel.Symbol(string(risk))),
			},
		}
	}

	return []kernel.Rule{
		{
			Name: "critical-case",
			Doc:  "Detects critical cases requiring immediate medical attention",
			When: []kernel.Pattern{{
				Template: tmplPatient,
				Terms: map[string]kernel.Term{
					slotName:                name,
					slotFever:               yes,
					slotCough:               yes,
					slotBreathingDifficulty: yes,
					slotFatigue:             yes,
				},
			}},
			Then: diagnose(
				"CRITICAL - Severe COVID-19 Symptoms",
				"EMERGENCY: Seek immediate medical attention. Call emergency services. Severe respiratory distress detected.",
				RiskCritical,
			),
		},
		{
			Name: "high-risk-covid-breathing",
			Doc:  "Detects high-risk COVID-19 cases with breathing issues",
			When: []kernel.Pattern{{
				Template: tmplPatient,
				Terms: map[string]kernel.Term{
					slotName:                name,
					slotFever:               yes,
					slotCough:               yes,
					slotBreathingDifficulty: yes,
				},
			}},
			Unless: noDiagnosisYet,
			Then: diagnose(
				"HIGH RISK for COVID-19",
				"URGENT: Get PCR test immediately. Self-isolate. Contact healthcare provider. Monitor oxygen levels.",
				RiskHigh,
			),
		},
		{
			Name: "high-risk-covid-taste-smell",
			Doc:  "Detects high-risk COVID-19 cases with loss of taste or smell",
			When: []kernel.Pattern{{
				Template: tmplPatient,
				Terms: map[string]kernel.Term{
					slotName:             name,
					slotFever:            yes,
					slotCough:            yes,
					slotLossOfTasteSmell: yes,
				},
			}},
			Unless: noDiagnosisYet,
			Then: diagnose(
				"HIGH RISK for COVID-19",
				"URGENT: Get PCR test immediately. Self-isolate. Contact healthcare provider. Monitor symptoms closely.",
				RiskHigh,
			),
		},
		{
			Name: "medium-risk-fever-fatigue",
			Doc:  "Detects medium-risk cases with fever and fatigue",
			When: []kernel.Pattern{{
				Template: tmplPatient,
				Terms: map[string]kernel.Term{
					slotName:    name,
					slotFever:   yes,
					slotFatigue: yes,
				},
			}},
			Unless: noDiagnosisYet,
			Then: diagnose(
				"MEDIUM RISK for COVID-19",
				"Get tested for COVID-19. Self-monitor symptoms. Avoid contact with others. Rest and stay hydrated.",
				RiskMedium,
			),
		},
		{
			Name: "medium-risk-cough-fatigue",
			Doc:  "Detects medium-risk cases with cough and fatigue",
			When: []kernel.Pattern{{
				Template: tmplPatient,
				Terms: map[string]kernel.Term{
					slotName:    name,
					slotCough:   yes,
					slotFatigue: yes,
				},
			}},
			Unless: noDiagnosisYet,
			Then: diagnose(
				"MEDIUM RISK for COVID-19",
				"Get tested for COVID-19. Self-monitor symptoms. Avoid contact with others. Rest and stay hydrated.",
				RiskMedium,
			),
		},
		{
			Name: "medium-risk-contact-fever",
			Doc:  "Detects medium-risk cases with contact history and fever",
			When: []kernel.Pattern{{
				Template: tmplPatient,
				Terms: map[string]kernel.Term{
					slotName:                name,
					slotContactWithPositive: yes,
					slotFever:               yes,
				},
			}},
			Unless: noDiagnosisYet,
			Then: diagnose(
				"MEDIUM RISK for COVID-19",
				"Get tested for COVID-19 due to exposure. Self-isolate until test results. Monitor symptoms daily.",
				RiskMedium,
			),
		},
		{
			Name: "medium-risk-contact-cough",
			Doc:  "Detects medium-risk cases with contact history and cough",
			When: []kernel.Pattern{{
				Template: tmplPatient,
				Terms: map[string]kernel.Term{
					slotName:                name,
					slotContactWithPositive: yes,
					slotCough:               yes,
				},
			}},
			Unless: noDiagnosisYet,
			Then: diagnose(
				"MEDIUM RISK for COVID-19",
				"Get tested for COVID-19 due to exposure. Self-isolate until test results. Monitor symptoms daily.",
				RiskMedium,
			),
		},
		{
			Name: "low-risk-assessment",
			Doc:  "Provides assessment for low-risk cases",
			When: []kernel.Pattern{{
				Template: tmplPatient,
				Terms:    map[string]kernel.Term{slotName: name},
			}},
			Unless: noDiagnosisYet,
			Then: diagnose(
				"LOW RISK for COVID-19",
				"Symptoms appear mild. Continue monitoring. Practice good hygiene. Consult doctor if symptoms worsen.",
				RiskLow,
			),
		},
	}
}

// RuleInfo is a read-only view of one knowledge-base rule, for the
// rules inspection command.
type RuleInfo struct {
	Priority  int
	Name      string
	Doc       string
	RiskLevel RiskLevel
}

// Rules returns the knowledge base in priority order.
func (s *System) Rules() []RuleInfo {
	defs := rules()
	out := make([]RuleInfo, len(defs))
	for i, r := range defs {
		out[i] = RuleInfo{
			Priority:  i + 1,
			Name:      r.Name,
			Doc:       r.Doc,
			RiskLevel: ruleRisk(r),
		}
	}
	return out
}

// ruleRisk extracts the risk level a rule's action asserts. Always a
// literal in this knowledge base.
func ruleRisk(r kernel.Rule) RiskLevel {
	term, ok := r.Then.Terms[slotRiskLevel]
	if !ok {
		return RiskUnknown
	}
	v, ok := term.Literal()
	if !ok {
		return RiskUnknown
	}
	return RiskLevel(v.Text())
}
