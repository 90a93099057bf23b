package analysis

import (
	"time"

	"festago/backend/internal/config"
	"festago/backend/internal/models"
)

// EvaluateBadges returns every badge the actor currently qualifies for.
// Badge sets are append-only: the caller awards badges from this result that
// the actor does not hold yet and never removes earned ones, so a dip below
// a threshold does not silently strip a badge.
func EvaluateBadges(actor *models.Actor, now time.Time) []models.BadgeType {
	var earned []models.BadgeType

	if actor.RatingAvg >= config.TopRatedMinAvg && actor.RatingCount >= config.TopRatedMinReviews {
		earned = append(earned, models.BadgeTopRated)
	}
	if actor.CompletionRate() >= config.ReliableMinCompletion && actor.TotalBookings >= config.ReliableMinBookings {
		earned = append(earned, models.BadgeReliable)
	}
	if now.Sub(actor.CreatedAt) >= config.VeteranMinAge && actor.TotalBookings >= config.VeteranMinBookings {
		earned = append(earned, models.BadgeVeteran)
	}
	if actor.CompletedBookings >= config.FavoriteMinCompleted && actor.RatingAvg >= config.FavoriteMinAvg {
		earned = append(earned, models.BadgeCommunityFavorite)
	}

	return earned
}
