package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SuspensionReason explains why an actor was put under restriction.
type SuspensionReason string

const (
	SuspensionLowRating              SuspensionReason = "low_rating"
	SuspensionContactSharing         SuspensionReason = "contact_sharing"
	SuspensionExcessiveCancellations SuspensionReason = "excessive_cancellations"
	SuspensionReports                SuspensionReason = "reports"
	SuspensionFraud                  SuspensionReason = "fraud"
)

// Suspension is one restriction entry for an actor. At most one row per actor
// may be active (EndedAt == nil and Active == true) at a time; lifting a
// suspension closes the row instead of deleting it, so the table doubles as
// the suspension history.
type Suspension struct {
	ID      string           `gorm:"primaryKey" json:"id"` // UUID
	ActorID string           `gorm:"type:text;not null;index" json:"actor_id"`
	Reason  SuspensionReason `gorm:"type:text;not null" json:"reason"`
	Details string           `gorm:"type:text" json:"details"`

	// Probation opens a pending-review row with the actor still active;
	// a full suspension additionally deactivates the actor.
	Active     bool       `gorm:"not null;default:true;index" json:"active"`
	Appealable bool       `gorm:"not null;default:true" json:"appealable"`
	StartedAt  time.Time  `json:"started_at"`
	EndedAt    *time.Time `json:"ended_at,omitempty"` // nil = indefinite, pending review

	LiftedBy   string `gorm:"type:text" json:"lifted_by,omitempty"`
	LiftedNote string `gorm:"type:text" json:"lifted_note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Suspension) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.StartedAt.IsZero() {
		s.StartedAt = time.Now()
	}
	return
}

// AppealStatus is the review state of an appeal.
type AppealStatus string

const (
	AppealStatusPending  AppealStatus = "pending"
	AppealStatusApproved AppealStatus = "approved"
	AppealStatusRejected AppealStatus = "rejected"
)

// Appeal is an actor-initiated request to lift an active suspension. Only one
// pending appeal may exist per suspension.
type Appeal struct {
	ID           string       `gorm:"primaryKey" json:"id"` // UUID
	ActorID      string       `gorm:"type:text;not null;index" json:"actor_id"`
	SuspensionID string       `gorm:"type:text;not null;index" json:"suspension_id"`
	Message      string       `gorm:"type:text;not null" json:"message"`
	Status       AppealStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	ReviewerID   string       `gorm:"type:text" json:"reviewer_id,omitempty"`
	ReviewNote   string       `gorm:"type:text" json:"review_note,omitempty"`
	ReviewedAt   *time.Time   `json:"reviewed_at,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (a *Appeal) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}
