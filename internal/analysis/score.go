package analysis

import "festago/backend/internal/config"

// Score computes the safety score in [0,100] from an actor's aggregates.
//
// The formula is fixed-point and order matters for reproducibility:
// start at 100, subtract the rating, report, cancellation and completion
// penalties, each capped individually BEFORE summing, then clamp the result.
func Score(ratingAvg float64, ratingCount, criticalReports, highReports int, cancellationRate, completionRate float64) float64 {
	score := config.InitialScore

	score -= ratingPenalty(ratingAvg, ratingCount)
	score -= reportPenalty(criticalReports, highReports)
	score -= cancellationPenalty(cancellationRate)
	score -= completionPenalty(completionRate)

	return clamp(score, config.MinScore, config.MaxScore)
}

func ratingPenalty(avg float64, count int) float64 {
	if count < config.RatingMinCount || avg >= config.RatingIdeal {
		return 0
	}
	// Out-of-range upstream values are clamped, never rejected.
	if avg < 0 {
		avg = 0
	}
	penalty := config.RatingPenaltyPerStar * (config.RatingIdeal - avg)
	return min(penalty, config.RatingPenaltyCap)
}

func reportPenalty(critical, high int) float64 {
	if critical < 0 {
		critical = 0
	}
	if high < 0 {
		high = 0
	}
	penalty := config.CriticalReportPenalty*float64(critical) + config.HighReportPenalty*float64(high)
	return min(penalty, config.ReportPenaltyCap)
}

func cancellationPenalty(rate float64) float64 {
	rate = clamp(rate, 0, 1)
	if rate <= config.CancellationGraceRate {
		return 0
	}
	penalty := config.BehaviorPenaltyScale * (rate - config.CancellationGraceRate)
	return min(penalty, config.CancellationPenaltyCap)
}

func completionPenalty(rate float64) float64 {
	rate = clamp(rate, 0, 1)
	if rate >= config.CompletionTargetRate {
		return 0
	}
	penalty := config.BehaviorPenaltyScale * (config.CompletionTargetRate - rate)
	return min(penalty, config.CompletionPenaltyCap)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
