package services

import "strings"

// ClassificationNominal is the classification of a measurement with no
// findings.
const ClassificationNominal = "nominal"

// Water-quality finding labels. The label carries the severity tag.
const (
	FindingCriticalAcid    = "critical-acid"
	FindingCriticalBase    = "critical-base"
	FindingWarningLowPH    = "warning-low"
	FindingWarningHighPH   = "warning-high"
	FindingCriticalAmmonia = "critical-ammonia"
	FindingWarningAmmonia  = "warning-ammonia"
	FindingCriticalOxygen  = "critical-oxygen"
	FindingWarningOxygen   = "warning-oxygen"
)

const findingSeparator = " | "

// Classify derives the quality-alert classification from raw water-quality
// readings. Thresholds are evaluated independently per parameter and the
// firing findings are concatenated in evaluation order, without reordering
// or deduplication. It is pure and deterministic: the result is written into
// the measurement record once and never recomputed.
func Classify(ph, ammonia, oxygen float64) string {
	var findings []string

	switch {
	case ph < 6.0:
		findings = append(findings, FindingCriticalAcid)
	case ph > 9.0:
		findings = append(findings, FindingCriticalBase)
	case ph < 6.5:
		findings = append(findings, FindingWarningLowPH)
	case ph > 8.5:
		findings = append(findings, FindingWarningHighPH)
	}

	switch {
	case ammonia > 0.05:
		findings = append(findings, FindingCriticalAmmonia)
	case ammonia >= 0.02:
		findings = append(findings, FindingWarningAmmonia)
	}

	switch {
	case oxygen < 3:
		findings = append(findings, FindingCriticalOxygen)
	case oxygen < 5:
		findings = append(findings, FindingWarningOxygen)
	}

	if len(findings) == 0 {
		return ClassificationNominal
	}
	return strings.Join(findings, findingSeparator)
}

// HasFinding reports whether a stored classification contains any critical
// or warning finding.
func HasFinding(classification string) bool {
	return strings.Contains(classification, "critical") || strings.Contains(classification, "warning")
}
