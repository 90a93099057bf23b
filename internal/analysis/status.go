package analysis

import (
	"festago/backend/internal/config"
	"festago/backend/internal/models"
)

// ReportState is the unresolved-report picture for one actor at evaluation
// time, counted inside the same transaction as the evaluation.
type ReportState struct {
	// Unresolved counts all reports in a non-terminal status, any severity.
	Unresolved int
	// UnresolvedHigh counts unresolved reports of exactly high severity.
	UnresolvedHigh int
	// EscalatedCritical counts critical reports that review escalated.
	EscalatedCritical int
	// RecentContactViolations counts contact-sharing violations inside the
	// rolling window.
	RecentContactViolations int
}

// EvaluateStatus derives the actor's status from the current score and
// report state. This is a pure re-evaluation: status is never advanced
// incrementally, so a missed event can never leave it stale.
//
// The score bands give one candidate state; unresolved reports impose a
// floor (any report → at least warning, high severity → at least probation,
// escalated critical or repeated contact sharing → suspended). The more
// severe of the two wins. A merely pending critical report therefore floors
// at warning — it already carries its score penalty — and forces suspension
// only once review escalates it.
func EvaluateStatus(score float64, reports ReportState) models.ActorStatus {
	byScore := statusForScore(score)
	floor := reportFloor(reports)
	if floor.Rank() > byScore.Rank() {
		return floor
	}
	return byScore
}

func statusForScore(score float64) models.ActorStatus {
	switch {
	case score >= config.SafeMinScore:
		return models.StatusSafe
	case score >= config.WarningMinScore:
		return models.StatusWarning
	case score >= config.ProbationMinScore:
		return models.StatusProbation
	default:
		return models.StatusSuspended
	}
}

func reportFloor(r ReportState) models.ActorStatus {
	switch {
	case r.EscalatedCritical > 0 || r.RecentContactViolations >= config.ContactViolationLimit:
		return models.StatusSuspended
	case r.UnresolvedHigh > 0:
		return models.StatusProbation
	case r.Unresolved > 0:
		return models.StatusWarning
	default:
		return models.StatusSafe
	}
}

// SuspensionReasonFor picks the recorded reason for a status-driven
// suspension, preferring the report state that forced it over score bands.
func SuspensionReasonFor(score float64, reports ReportState, cancellationRate float64) models.SuspensionReason {
	switch {
	case reports.RecentContactViolations >= config.ContactViolationLimit:
		return models.SuspensionContactSharing
	case reports.EscalatedCritical > 0:
		return models.SuspensionReports
	case cancellationRate > config.CancellationGraceRate:
		return models.SuspensionExcessiveCancellations
	default:
		return models.SuspensionLowRating
	}
}
