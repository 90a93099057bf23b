package analysis_test

import (
	"testing"
	"time"

	"festago/backend/internal/analysis"
	"festago/backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateBadgesTopRated(t *testing.T) {
	actor := &models.Actor{RatingAvg: 4.9, RatingCount: 60, CreatedAt: time.Now()}
	badges := analysis.EvaluateBadges(actor, time.Now())
	assert.Contains(t, badges, models.BadgeTopRated)

	actor.RatingCount = 49
	badges = analysis.EvaluateBadges(actor, time.Now())
	assert.NotContains(t, badges, models.BadgeTopRated)
}

func TestEvaluateBadgesReliable(t *testing.T) {
	actor := &models.Actor{
		TotalBookings:     40,
		CompletedBookings: 39, // 97.5% completion
		CreatedAt:         time.Now(),
	}
	badges := analysis.EvaluateBadges(actor, time.Now())
	assert.Contains(t, badges, models.BadgeReliable)

	actor.CompletedBookings = 36 // 90%
	badges = analysis.EvaluateBadges(actor, time.Now())
	assert.NotContains(t, badges, models.BadgeReliable)
}

func TestEvaluateBadgesVeteran(t *testing.T) {
	created := time.Now().Add(-400 * 24 * time.Hour)
	actor := &models.Actor{CreatedAt: created, TotalBookings: 12, CompletedBookings: 12}
	badges := analysis.EvaluateBadges(actor, time.Now())
	assert.Contains(t, badges, models.BadgeVeteran)

	young := &models.Actor{CreatedAt: time.Now().Add(-30 * 24 * time.Hour), TotalBookings: 12}
	badges = analysis.EvaluateBadges(young, time.Now())
	assert.NotContains(t, badges, models.BadgeVeteran)
}

// TestEvaluateBadgesFreshActorEarnsNothing keeps badge evaluation quiet for
// brand new accounts.
func TestEvaluateBadgesFreshActorEarnsNothing(t *testing.T) {
	actor := &models.Actor{CreatedAt: time.Now()}
	assert.Empty(t, analysis.EvaluateBadges(actor, time.Now()))
}
