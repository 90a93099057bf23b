package models

import "time"

// BadgeType is the closed set of reputation badges.
type BadgeType string

const (
	BadgeTopRated          BadgeType = "top_rated"
	BadgeReliable          BadgeType = "reliable"
	BadgeVeteran           BadgeType = "veteran"
	BadgeCommunityFavorite BadgeType = "community_favorite"
)

// Badge is one earned reputation marker. The set per actor is append-only:
// the engine never revokes a badge, only explicit admin action does.
type Badge struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID   string    `gorm:"type:text;not null;uniqueIndex:idx_actor_badge" json:"actor_id"`
	Type      BadgeType `gorm:"type:text;not null;uniqueIndex:idx_actor_badge" json:"type"`
	AwardedAt time.Time `json:"awarded_at"`
}
