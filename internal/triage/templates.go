// Package triage is the COVID-19 symptom triage expert system: a fixed
// knowledge base of templates and rules over the kernel inference
// engine, behind a single Diagnose entry point.
package triage

import "covex/internal/kernel"

// Template and slot names of the knowledge base.
const (
	tmplPatient   = "patient"
	tmplDiagnosis = "diagnosis"

	slotName                = "name"
	slotFever               = "fever"
	slotCough               = "cough"
	slotBreathingDifficulty = "breathing-difficulty"
	slotFatigue             = "fatigue"
	slotLossOfTasteSmell    = "loss-of-taste-smell"
	slotContactWithPositive = "contact-with-positive"

	slotPatientName    = "patient-name"
	slotResult         = "result"
	slotRecommendation = "recommendation"
	slotRiskLevel      = "risk-level"
)

var yesNo = []string{string(Yes), string(No)}

// templates declares the two fact schemas: the patient observation
// record and the diagnosis the rules produce. The diagnosis risk-level
// set excludes "unknown": that level is reserved for the fallback
// result and never asserted as a fact.
func templates() []*kernel.Template {
	patient := kernel.MustTemplate(tmplPatient,
		kernel.SlotDef{Name: slotName, Type: kernel.SlotString},
		kernel.SlotDef{Name: slotFever, Type: kernel.SlotSymbol, Allowed: yesNo},
		kernel.SlotDef{Name: slotCough, Type: kernel.SlotSymbol, Allowed: yesNo},
		kernel.SlotDef{Name: slotBreathingDifficulty, Type: kernel.SlotSymbol, Allowed: yesNo},
		kernel.SlotDef{Name: slotFatigue, Type: kernel.SlotSymbol, Allowed: yesNo},
		kernel.SlotDef{Name: slotLossOfTasteSmell, Type: kernel.SlotSymbol, Allowed: yesNo},
		kernel.SlotDef{Name: slotContactWithPositive, Type: kernel.SlotSymbol, Allowed: yesNo},
	)

	diagnosis := kernel.MustTemplate(tmplDiagnosis,
		kernel.SlotDef{Name: slotPatientName, Type: kernel.SlotString},
		kernel.SlotDef{Name: slotResult, Type: kernel.SlotString},
		kernel.SlotDef{Name: slotRecommendation, Type: kernel.SlotString},
		kernel.SlotDef{Name: slotRiskLevel, Type: kernel.SlotSymbol, Allowed: []string{
			string(RiskLow), string(RiskMedium), string(RiskHigh), string(RiskCritical),
		}},
	)

	return []*kernel.Template{patient, diagnosis}
}
