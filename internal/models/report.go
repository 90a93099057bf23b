package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ReportCategory is the closed set of reasons a user can report another actor.
type ReportCategory string

const (
	ReportViolence       ReportCategory = "violence"
	ReportSafetyThreat   ReportCategory = "safety_threat"
	ReportFraud          ReportCategory = "fraud"
	ReportUnderage       ReportCategory = "underage"
	ReportHarassment     ReportCategory = "harassment"
	ReportHateSpeech     ReportCategory = "hate_speech"
	ReportScam           ReportCategory = "scam"
	ReportFakeProfile    ReportCategory = "fake_profile"
	ReportContactSharing ReportCategory = "contact_sharing"
	ReportNoShow         ReportCategory = "no_show"
	ReportPoorQuality    ReportCategory = "poor_quality"
	ReportInappropriate  ReportCategory = "inappropriate_content"
	ReportPaymentDispute ReportCategory = "payment_dispute"
	ReportSpam           ReportCategory = "spam"
	ReportOther          ReportCategory = "other"
)

// ReportStatus is the lifecycle state of a report. Transitions are
// forward-only; resolved, dismissed and escalated are terminal.
type ReportStatus string

const (
	ReportStatusPending       ReportStatus = "pending"
	ReportStatusInvestigating ReportStatus = "investigating"
	ReportStatusResolved      ReportStatus = "resolved"
	ReportStatusDismissed     ReportStatus = "dismissed"
	ReportStatusEscalated     ReportStatus = "escalated"
)

// Terminal reports whether no further transition may leave this status.
func (s ReportStatus) Terminal() bool {
	return s == ReportStatusResolved || s == ReportStatusDismissed || s == ReportStatusEscalated
}

// Unresolved is the inverse of Terminal and is what status evaluation counts.
func (s ReportStatus) Unresolved() bool { return !s.Terminal() }

// Report is a user-submitted complaint about another actor.
type Report struct {
	ID           string    `gorm:"primaryKey" json:"id"` // UUID
	ReporterID   string    `gorm:"type:text;not null;index" json:"reporter_id"`
	ReporterRole ActorRole `gorm:"type:text;not null" json:"reporter_role"`
	ReportedID   string    `gorm:"type:text;not null;index" json:"reported_id"`
	ReportedRole ActorRole `gorm:"type:text;not null" json:"reported_role"`

	Category ReportCategory `gorm:"type:text;not null" json:"category"`
	// Severity is derived from Category on intake; it is never taken from
	// the caller.
	Severity Severity `gorm:"type:text;not null;index" json:"severity"`
	Reason   string   `gorm:"type:text" json:"reason"`

	// Optional links back into the surrounding application.
	BookingID      string `gorm:"type:text" json:"booking_id,omitempty"`
	ReviewID       string `gorm:"type:text" json:"review_id,omitempty"`
	ConversationID string `gorm:"type:text" json:"conversation_id,omitempty"`
	// ViolationID points at the violation this report produced, if any.
	ViolationID string `gorm:"type:text" json:"violation_id,omitempty"`

	EvidenceRefs pq.StringArray `gorm:"type:text[]" json:"evidence_refs,omitempty"`
	ActionsTaken pq.StringArray `gorm:"type:text[]" json:"actions_taken,omitempty"`

	Status         ReportStatus `gorm:"type:text;not null;default:'pending';index" json:"status"`
	AssigneeID     string       `gorm:"type:text" json:"assignee_id,omitempty"`
	ResolutionNote string       `gorm:"type:text" json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time   `json:"resolved_at,omitempty"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// Incident is the lightweight fast-path record emitted for critical reports,
// distinct from the report itself. Creation is idempotent per report.
type Incident struct {
	ID         uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	ReportID   string         `gorm:"type:text;not null;uniqueIndex" json:"report_id"`
	ReportedID string         `gorm:"type:text;not null;index" json:"reported_id"`
	Category   ReportCategory `gorm:"type:text;not null" json:"category"`
	NotifiedAt *time.Time     `json:"notified_at,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
