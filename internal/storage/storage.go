// Package storage persists the trust engine's records in PostgreSQL and keeps
// the hot-path flags and the incident queue in Redis.
package storage

import (
	"context"
	"time"

	"festago/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ReportCounts is the unresolved-report picture for one actor, counted in the
// same transaction as the evaluation that consumes it.
type ReportCounts struct {
	Unresolved         int
	UnresolvedHigh     int
	UnresolvedCritical int
	EscalatedCritical  int
}

type Storage interface {
	// Transaction runs fn against a Storage bound to one database
	// transaction. Every read-modify-write of an actor record goes through
	// this.
	Transaction(fn func(Storage) error) error

	GetActorByID(id string) (*models.Actor, error)
	SaveActorIfNotExists(id string, role models.ActorRole) (*models.Actor, error)
	// UpdateActorCAS writes the actor back only if its version column still
	// matches, bumping the version. A lost race returns a conflict.
	UpdateActorCAS(actor *models.Actor) error

	SaveViolation(v *models.Violation) error
	CountRecentViolations(actorID string, category models.ViolationCategory, since time.Time) (int, error)
	SaveScoreHistory(h *models.ScoreHistory) error

	SaveReport(r *models.Report) error
	GetReportByID(id string) (*models.Report, error)
	UpdateReport(r *models.Report) error
	CountReports(actorID string) (ReportCounts, error)

	GetActiveSuspension(actorID string) (*models.Suspension, error)
	SaveSuspension(s *models.Suspension) error
	UpdateSuspension(s *models.Suspension) error

	GetPendingAppeal(suspensionID string) (*models.Appeal, error)
	GetAppealByID(id string) (*models.Appeal, error)
	SaveAppeal(a *models.Appeal) error
	UpdateAppeal(a *models.Appeal) error

	GetBadges(actorID string) ([]models.Badge, error)
	AwardBadge(actorID string, badge models.BadgeType) error

	SaveIncident(i *models.Incident) error
	GetUnnotifiedIncidents(limit int) ([]models.Incident, error)
	MarkIncidentNotified(reportID string) error

	// Redis-backed fast paths.
	SetSuspendedFlag(actorID string, suspended bool) error
	GetSuspendedFlag(actorID string) (suspended, found bool, err error)
	EnqueueIncident(reportID string) error
	DequeueIncident(timeout time.Duration) (string, error)
	AckIncident(reportID string) error
	RequeueIncident(reportID string) error
	PublishIncident(payload []byte) error
	SubscribeIncidents() *redis.PubSub
}

type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

// Transaction runs fn against a Service bound to a database transaction.
// Redis operations inside fn go straight through; only the SQL writes are
// transactional.
func (s *Service) Transaction(fn func(Storage) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Service{DB: tx, Redis: s.Redis, Ctx: s.Ctx})
	})
}
