// Package analysis provides the pure trust calculations of the engine:
// safety-score computation, status evaluation and badge eligibility.
// Everything here is deterministic and free of I/O so it can be called from
// any request context, cached, and unit-tested without fixtures.
package analysis

import (
	"festago/backend/internal/config"
	"festago/backend/internal/models"
)

// severityWeights maps a severity to the penalty weight stamped onto a
// violation record at creation time.
var severityWeights = map[models.Severity]int{
	models.SeverityLow:      5,
	models.SeverityMedium:   15,
	models.SeverityHigh:     30,
	models.SeverityCritical: 50,
}

// GetWeight returns the penalty weight for a given severity.
// It returns 0 if the severity is not recognized.
func GetWeight(severity models.Severity) int {
	return severityWeights[severity]
}

// SeverityForCategory derives a report's severity from its category. Unknown
// categories fall back to low so a malformed category can never inflate
// severity.
func SeverityForCategory(category models.ReportCategory) models.Severity {
	if sev, ok := config.ReportSeverities[category]; ok {
		return sev
	}
	return models.SeverityLow
}

// ValidCategory reports whether the category belongs to the closed set.
func ValidCategory(category models.ReportCategory) bool {
	_, ok := config.ReportSeverities[category]
	return ok
}
