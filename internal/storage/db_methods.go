package storage

import (
	"errors"
	"log"
	"time"

	"festago/backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrVersionConflict is returned when a compare-and-set update lost the race
// against a concurrent writer. The caller retries the whole pipeline.
var ErrVersionConflict = errors.New("actor version conflict")

// GetActorByID loads one actor record from PostgreSQL.
func (s *Service) GetActorByID(id string) (*models.Actor, error) {
	var actor models.Actor
	err := s.DB.Where("id = ?", id).First(&actor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &actor, nil
}

// SaveActorIfNotExists creates the trust record on the actor's first scoring
// event. Registration itself happens outside this engine.
func (s *Service) SaveActorIfNotExists(id string, role models.ActorRole) (*models.Actor, error) {
	var actor models.Actor
	defaults := models.Actor{
		ID:                 id,
		Role:               role,
		SafetyScore:        100,
		Status:             models.StatusSafe,
		LastObservedStatus: models.StatusSafe,
		IsActive:           true,
	}

	result := s.DB.Where("id = ?", id).FirstOrCreate(&actor, defaults)
	if result.Error != nil {
		log.Printf("ERROR: Failed to save actor %s on first contact: %v", id, result.Error)
		return nil, result.Error
	}
	if result.RowsAffected > 0 {
		log.Printf("INFO: New trust record created for actor %s (%s).", actor.ID, role)
	}
	return &actor, nil
}

// UpdateActorCAS writes the actor back guarded by its version column. A
// concurrent writer that got there first makes this return ErrVersionConflict
// so the caller can re-run the whole evaluation, never reapply a stale delta.
func (s *Service) UpdateActorCAS(actor *models.Actor) error {
	current := actor.Version
	actor.Version = current + 1

	result := s.DB.Model(&models.Actor{}).
		Where("id = ? AND version = ?", actor.ID, current).
		Select("*").Omit("id", "created_at").
		Updates(actor)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		actor.Version = current
		return ErrVersionConflict
	}
	return nil
}

// SaveViolation appends one immutable violation record.
func (s *Service) SaveViolation(v *models.Violation) error {
	if err := s.DB.Create(v).Error; err != nil {
		log.Printf("ERROR: Failed to save violation for actor %s: %v", v.ActorID, err)
		return err
	}
	return nil
}

// CountRecentViolations counts violations of one category inside the rolling
// window, used for the repeated-contact-sharing suspension rule.
func (s *Service) CountRecentViolations(actorID string, category models.ViolationCategory, since time.Time) (int, error) {
	var count int64
	err := s.DB.Model(&models.Violation{}).
		Where("actor_id = ? AND category = ? AND created_at >= ?", actorID, category, since).
		Count(&count).Error
	return int(count), err
}

func (s *Service) SaveScoreHistory(h *models.ScoreHistory) error {
	return s.DB.Create(h).Error
}

func (s *Service) SaveReport(r *models.Report) error {
	if r.Status == "" {
		r.Status = models.ReportStatusPending
	}
	if err := s.DB.Create(r).Error; err != nil {
		log.Printf("ERROR: Failed to save report against %s: %v", r.ReportedID, err)
		return err
	}
	return nil
}

func (s *Service) GetReportByID(id string) (*models.Report, error) {
	var report models.Report
	err := s.DB.Where("id = ?", id).First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (s *Service) UpdateReport(r *models.Report) error {
	return s.DB.Save(r).Error
}

// CountReports aggregates the reported actor's unresolved and escalated
// reports by severity for the status evaluation.
func (s *Service) CountReports(actorID string) (ReportCounts, error) {
	var counts ReportCounts
	open := []models.ReportStatus{models.ReportStatusPending, models.ReportStatusInvestigating}

	type row struct {
		Severity models.Severity
		N        int
	}
	var rows []row
	err := s.DB.Model(&models.Report{}).
		Select("severity, count(*) as n").
		Where("reported_id = ? AND status IN ?", actorID, open).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return counts, err
	}
	for _, r := range rows {
		counts.Unresolved += r.N
		switch r.Severity {
		case models.SeverityHigh:
			counts.UnresolvedHigh += r.N
		case models.SeverityCritical:
			counts.UnresolvedCritical += r.N
		}
	}

	var escalated int64
	err = s.DB.Model(&models.Report{}).
		Where("reported_id = ? AND status = ? AND severity = ?",
			actorID, models.ReportStatusEscalated, models.SeverityCritical).
		Count(&escalated).Error
	if err != nil {
		return counts, err
	}
	counts.EscalatedCritical = int(escalated)
	return counts, nil
}

// GetActiveSuspension returns the actor's single active suspension, or nil
// without error when there is none.
func (s *Service) GetActiveSuspension(actorID string) (*models.Suspension, error) {
	var susp models.Suspension
	err := s.DB.Where("actor_id = ? AND active = ?", actorID, true).First(&susp).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &susp, nil
}

func (s *Service) SaveSuspension(susp *models.Suspension) error {
	return s.DB.Create(susp).Error
}

func (s *Service) UpdateSuspension(susp *models.Suspension) error {
	return s.DB.Save(susp).Error
}

// GetPendingAppeal returns the open appeal for a suspension, or nil without
// error when there is none.
func (s *Service) GetPendingAppeal(suspensionID string) (*models.Appeal, error) {
	var appeal models.Appeal
	err := s.DB.Where("suspension_id = ? AND status = ?", suspensionID, models.AppealStatusPending).
		First(&appeal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}

func (s *Service) GetAppealByID(id string) (*models.Appeal, error) {
	var appeal models.Appeal
	err := s.DB.Where("id = ?", id).First(&appeal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &appeal, nil
}

func (s *Service) SaveAppeal(a *models.Appeal) error {
	return s.DB.Create(a).Error
}

func (s *Service) UpdateAppeal(a *models.Appeal) error {
	return s.DB.Save(a).Error
}

func (s *Service) GetBadges(actorID string) ([]models.Badge, error) {
	var badges []models.Badge
	err := s.DB.Where("actor_id = ?", actorID).Order("awarded_at asc").Find(&badges).Error
	return badges, err
}

// AwardBadge inserts the badge if the actor does not hold it yet. Duplicate
// awards are silently ignored, keeping the set append-only and idempotent.
func (s *Service) AwardBadge(actorID string, badge models.BadgeType) error {
	b := models.Badge{ActorID: actorID, Type: badge, AwardedAt: time.Now()}
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&b).Error
}

// SaveIncident persists the fast-path incident record. The unique index on
// report_id makes creation idempotent per report.
func (s *Service) SaveIncident(i *models.Incident) error {
	return s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(i).Error
}

// GetUnnotifiedIncidents returns incidents the notifier has not confirmed
// yet, oldest first. The sweep re-delivers anything a crash left behind.
func (s *Service) GetUnnotifiedIncidents(limit int) ([]models.Incident, error) {
	var incidents []models.Incident
	err := s.DB.Where("notified_at IS NULL").Order("created_at asc").Limit(limit).Find(&incidents).Error
	return incidents, err
}

func (s *Service) MarkIncidentNotified(reportID string) error {
	return s.DB.Model(&models.Incident{}).
		Where("report_id = ?", reportID).
		Update("notified_at", time.Now()).Error
}
