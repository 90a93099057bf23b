package analysis_test

import (
	"testing"

	"festago/backend/internal/analysis"
	"festago/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

// TestStatusScoreBands checks the plain score-driven bands with no reports.
func TestStatusScoreBands(t *testing.T) {
	cases := []struct {
		score float64
		want  models.ActorStatus
	}{
		{100, models.StatusSafe},
		{80, models.StatusSafe},
		{79.9, models.StatusWarning},
		{60, models.StatusWarning},
		{59.9, models.StatusProbation},
		{40, models.StatusProbation},
		{39.9, models.StatusSuspended},
		{0, models.StatusSuspended},
	}
	for _, tc := range cases {
		got := analysis.EvaluateStatus(tc.score, analysis.ReportState{})
		assert.Equal(t, tc.want, got, "score %.1f", tc.score)
	}
}

// TestStatusPendingCriticalReportYieldsWarning is the intake scenario: one
// pending critical report drops the score to 80, and the unresolved-report
// floor demotes the actor to warning — not suspended, no suspension record.
func TestStatusPendingCriticalReportYieldsWarning(t *testing.T) {
	score := analysis.Score(0, 0, 1, 0, 0, 1.0)
	assert.Equal(t, 80.0, score)

	status := analysis.EvaluateStatus(score, analysis.ReportState{
		Unresolved: 1, // the pending critical report
	})
	assert.Equal(t, models.StatusWarning, status)
}

// TestStatusUnresolvedHighFloorsProbation verifies a high-severity report
// floors the state at probation even with a top score.
func TestStatusUnresolvedHighFloorsProbation(t *testing.T) {
	status := analysis.EvaluateStatus(95, analysis.ReportState{
		Unresolved:     1,
		UnresolvedHigh: 1,
	})
	assert.Equal(t, models.StatusProbation, status)
}

// TestStatusEscalatedCriticalSuspends verifies an escalated critical report
// forces suspension regardless of score.
func TestStatusEscalatedCriticalSuspends(t *testing.T) {
	status := analysis.EvaluateStatus(100, analysis.ReportState{
		EscalatedCritical: 1,
	})
	assert.Equal(t, models.StatusSuspended, status)
}

// TestStatusRepeatedContactSharingSuspends verifies three contact-sharing
// violations inside the window force suspension.
func TestStatusRepeatedContactSharingSuspends(t *testing.T) {
	status := analysis.EvaluateStatus(100, analysis.ReportState{
		RecentContactViolations: 3,
	})
	assert.Equal(t, models.StatusSuspended, status)

	status = analysis.EvaluateStatus(100, analysis.ReportState{
		RecentContactViolations: 2,
	})
	assert.Equal(t, models.StatusSafe, status)
}

// TestStatusDegradedActorOnProbation is the behavioral scenario: rating 3.0
// over 20 reviews, 65% completion, 35% cancellation, no reports → 58,
// probation.
func TestStatusDegradedActorOnProbation(t *testing.T) {
	score := analysis.Score(3.0, 20, 0, 0, 0.35, 0.65)
	assert.Equal(t, 58.0, score)

	status := analysis.EvaluateStatus(score, analysis.ReportState{})
	assert.Equal(t, models.StatusProbation, status)
}

// TestStatusScoreOutranksWeakerFloor verifies the worse of the two signals
// wins when the score band is already more severe than the report floor.
func TestStatusScoreOutranksWeakerFloor(t *testing.T) {
	status := analysis.EvaluateStatus(30, analysis.ReportState{Unresolved: 1})
	assert.Equal(t, models.StatusSuspended, status)
}

func TestSuspensionReasonFor(t *testing.T) {
	reason := analysis.SuspensionReasonFor(20, analysis.ReportState{RecentContactViolations: 3}, 0)
	assert.Equal(t, models.SuspensionContactSharing, reason)

	reason = analysis.SuspensionReasonFor(20, analysis.ReportState{EscalatedCritical: 1}, 0)
	assert.Equal(t, models.SuspensionReports, reason)

	reason = analysis.SuspensionReasonFor(30, analysis.ReportState{}, 0.5)
	assert.Equal(t, models.SuspensionExcessiveCancellations, reason)

	reason = analysis.SuspensionReasonFor(30, analysis.ReportState{}, 0)
	assert.Equal(t, models.SuspensionLowRating, reason)
}
