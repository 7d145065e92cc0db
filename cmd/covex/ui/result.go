package ui

import (
	"fmt"
	"strings"

	"covex/internal/triage"
)

// RenderDiagnosis renders the assessment outcome as a bordered card
// with the risk level color-coded by severity.
func RenderDiagnosis(d triage.Diagnosis) string {
	risk := RiskStyle(d.RiskLevel)

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n\n", LabelStyle.Render("Patient:"), d.PatientName)
	fmt.Fprintf(&b, "%s %s\n\n", LabelStyle.Render("Diagnosis:"), risk.Render(d.Result))
	fmt.Fprintf(&b, "%s\n%s\n\n", LabelStyle.Render("Recommendation:"), d.Recommendation)
	fmt.Fprintf(&b, "%s %s", LabelStyle.Render("Risk Level:"), risk.Render(strings.ToUpper(string(d.RiskLevel))))

	return CardStyle.BorderForeground(riskColor(d.RiskLevel)).Render(b.String()) +
		"\n" + DisclaimerStyle.Render(Disclaimer)
}
