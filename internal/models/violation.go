package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ViolationCategory classifies a recorded policy infraction.
type ViolationCategory string

const (
	ViolationContactSharing       ViolationCategory = "contact_sharing"
	ViolationSpam                 ViolationCategory = "spam"
	ViolationInappropriateContent ViolationCategory = "inappropriate_content"
	ViolationNoShow               ViolationCategory = "no_show"
	ViolationFraud                ViolationCategory = "fraud"
	ViolationHarassment           ViolationCategory = "harassment"
)

// Violation is an immutable, append-only infraction record against an actor.
// Rows are only ever created, never updated or deleted.
type Violation struct {
	ID          string            `gorm:"primaryKey" json:"id"` // UUID
	ActorID     string            `gorm:"type:text;not null;index" json:"actor_id"`
	Category    ViolationCategory `gorm:"type:text;not null;index" json:"category"`
	Severity    Severity          `gorm:"type:text;not null" json:"severity"`
	// Weight is the severity-implied penalty weight, fixed at creation.
	Weight      int    `gorm:"not null;default:0" json:"weight"`
	Description string `gorm:"type:text" json:"description"`
	// SourceRef optionally points at the message or report that triggered
	// the violation.
	SourceRef string    `gorm:"type:text" json:"source_ref,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (v *Violation) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	return
}

// ScoreHistory keeps one row per safety-score recompute for audit purposes.
type ScoreHistory struct {
	ID        uint        `gorm:"primaryKey;autoIncrement" json:"id"`
	ActorID   string      `gorm:"type:text;not null;index" json:"actor_id"`
	Score     float64     `gorm:"not null" json:"score"`
	Status    ActorStatus `gorm:"type:text;not null" json:"status"`
	CreatedAt time.Time   `gorm:"index" json:"created_at"`
}
