package config

import (
	"time"

	"festago/backend/internal/models"
)

const (
	// Score
	InitialScore = 100.0
	MinScore     = 0.0
	MaxScore     = 100.0

	// Rating penalty: 6 points per star below 5.0, only once the actor has
	// enough reviews for the average to mean anything.
	RatingPenaltyPerStar = 6.0
	RatingPenaltyCap     = 30.0
	RatingMinCount       = 5
	RatingIdeal          = 5.0

	// Report penalty
	CriticalReportPenalty = 20.0
	HighReportPenalty     = 10.0
	ReportPenaltyCap      = 40.0

	// Behavioral penalties
	CancellationGraceRate  = 0.10
	CancellationPenaltyCap = 15.0
	CompletionTargetRate   = 0.90
	CompletionPenaltyCap   = 15.0
	BehaviorPenaltyScale   = 100.0

	// Status thresholds
	SafeMinScore      = 80.0
	WarningMinScore   = 60.0
	ProbationMinScore = 40.0

	// Suspension via repeated contact sharing
	ContactViolationLimit  = 3
	ContactViolationWindow = 30 * 24 * time.Hour

	// Pipeline retry budget for lost compare-and-set races.
	PipelineMaxRetries = 3

	// Badges
	TopRatedMinAvg        = 4.8
	TopRatedMinReviews    = 50
	ReliableMinCompletion = 0.95
	ReliableMinBookings   = 20
	VeteranMinAge         = 365 * 24 * time.Hour
	VeteranMinBookings    = 10
	FavoriteMinCompleted  = 100
	FavoriteMinAvg        = 4.5
)

// ReportSeverities maps every report category to its derived severity. The
// mapping is fixed: severity is never accepted from the caller.
var ReportSeverities = map[models.ReportCategory]models.Severity{
	models.ReportViolence:       models.SeverityCritical,
	models.ReportSafetyThreat:   models.SeverityCritical,
	models.ReportFraud:          models.SeverityCritical,
	models.ReportUnderage:       models.SeverityCritical,
	models.ReportHarassment:     models.SeverityHigh,
	models.ReportHateSpeech:     models.SeverityHigh,
	models.ReportScam:           models.SeverityHigh,
	models.ReportFakeProfile:    models.SeverityHigh,
	models.ReportContactSharing: models.SeverityHigh,
	models.ReportNoShow:         models.SeverityMedium,
	models.ReportPoorQuality:    models.SeverityMedium,
	models.ReportInappropriate:  models.SeverityMedium,
	models.ReportPaymentDispute: models.SeverityMedium,
	models.ReportSpam:           models.SeverityLow,
	models.ReportOther:          models.SeverityLow,
}
