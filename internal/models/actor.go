package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ActorStatus is the safety lifecycle state of an account.
type ActorStatus string

const (
	StatusSafe      ActorStatus = "safe"
	StatusWarning   ActorStatus = "warning"
	StatusProbation ActorStatus = "probation"
	StatusSuspended ActorStatus = "suspended"
)

// Rank orders statuses by severity (safe < warning < probation < suspended).
func (s ActorStatus) Rank() int {
	switch s {
	case StatusWarning:
		return 1
	case StatusProbation:
		return 2
	case StatusSuspended:
		return 3
	default:
		return 0
	}
}

// ActorRole distinguishes the two sides of the marketplace.
type ActorRole string

const (
	RoleClient   ActorRole = "client"
	RoleSupplier ActorRole = "supplier"
)

// Actor is the trust record for a marketplace account (client or supplier).
// It is created on registration and carries the safety score, the derived
// status, and the behavioral aggregates the score is computed from.
type Actor struct {
	ID   string    `gorm:"primaryKey" json:"id"` // UUID
	Role ActorRole `gorm:"type:text;not null;default:'client'" json:"role"`

	// SafetyScore is in [0,100]; new accounts start at 100.
	SafetyScore float64     `gorm:"not null;default:100" json:"safety_score"`
	Status      ActorStatus `gorm:"type:text;not null;default:'safe';index" json:"status"`
	// LastObservedStatus is the idempotency stamp for status entry side
	// effects: an entry action fires only when the freshly evaluated status
	// differs from this field.
	LastObservedStatus ActorStatus `gorm:"type:text;not null;default:'safe'" json:"-"`
	IsActive           bool        `gorm:"not null;default:true" json:"is_active"`

	ViolationCount  int        `gorm:"not null;default:0" json:"violation_count"`
	WarningCount    int        `gorm:"not null;default:0" json:"warning_count"`
	LastViolationAt *time.Time `json:"last_violation_at,omitempty"`
	LastWarningAt   *time.Time `json:"last_warning_at,omitempty"`

	// Rating aggregate, maintained from reviewSubmitted events.
	RatingAvg   float64 `gorm:"not null;default:0" json:"rating_avg"`
	RatingCount int     `gorm:"not null;default:0" json:"rating_count"`

	// Booking aggregate, maintained from bookingOutcomeChanged events.
	CompletedBookings int `gorm:"not null;default:0" json:"completed_bookings"`
	CancelledBookings int `gorm:"not null;default:0" json:"cancelled_bookings"`
	TotalBookings     int `gorm:"not null;default:0" json:"total_bookings"`

	// Version guards the read-modify-write cycle on this row. Every update
	// must go through a compare-and-set on this column.
	Version int `gorm:"not null;default:0" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate generates a UUID for the actor if none is set.
func (a *Actor) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return
}

// CancellationRate returns cancelled/total, or 0 when the actor has no bookings.
func (a *Actor) CancellationRate() float64 {
	if a.TotalBookings == 0 {
		return 0
	}
	return float64(a.CancelledBookings) / float64(a.TotalBookings)
}

// CompletionRate returns completed/total. With no bookings it returns 1.0 so
// that a fresh account carries no completion penalty.
func (a *Actor) CompletionRate() float64 {
	if a.TotalBookings == 0 {
		return 1.0
	}
	return float64(a.CompletedBookings) / float64(a.TotalBookings)
}
