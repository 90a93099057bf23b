// Package report handles abuse-report intake and the report lifecycle.
// Severity is always derived from the category on the server; the caller
// never supplies it. Critical reports additionally raise a fast-path incident
// that bypasses the normal resolution queue.
package report

import (
	"errors"
	"log"
	"time"

	"festago/backend/internal/analysis"
	"festago/backend/internal/models"
	"festago/backend/internal/storage"
	"festago/backend/internal/trust"
)

var (
	// ErrSelfReport rejects a report whose reporter and target are the same
	// actor.
	ErrSelfReport = errors.New("reporter and reported actor are the same")
	// ErrUnknownCategory rejects a category outside the closed set.
	ErrUnknownCategory = errors.New("unknown report category")
	// ErrTerminalReport rejects a transition out of a terminal status.
	ErrTerminalReport = errors.New("report is in a terminal status")
	// ErrInvalidTransition rejects a backward lifecycle move.
	ErrInvalidTransition = errors.New("invalid report status transition")
)

// Service handles the business logic for reports.
type Service struct {
	Storage storage.Storage
	Trust   *trust.Service
}

// NewService creates a new report service.
func NewService(s storage.Storage, t *trust.Service) *Service {
	return &Service{Storage: s, Trust: t}
}

// Submission is the caller-supplied part of a report. Severity is absent on
// purpose.
type Submission struct {
	ReporterID     string
	ReporterRole   models.ActorRole
	ReportedID     string
	ReportedRole   models.ActorRole
	Category       models.ReportCategory
	Reason         string
	EvidenceRefs   []string
	BookingID      string
	ReviewID       string
	ConversationID string
}

// Submit validates and persists a new report, derives its severity, raises
// the critical-incident fast path when warranted, and re-evaluates the
// reported actor's standing.
func (s *Service) Submit(sub Submission) (*models.Report, error) {
	if sub.ReporterID == "" || sub.ReportedID == "" {
		return nil, trust.ErrInvalidActor
	}
	if sub.ReporterID == sub.ReportedID {
		return nil, ErrSelfReport
	}
	if !analysis.ValidCategory(sub.Category) {
		return nil, ErrUnknownCategory
	}

	rep := &models.Report{
		ReporterID:     sub.ReporterID,
		ReporterRole:   sub.ReporterRole,
		ReportedID:     sub.ReportedID,
		ReportedRole:   sub.ReportedRole,
		Category:       sub.Category,
		Severity:       analysis.SeverityForCategory(sub.Category),
		Reason:         sub.Reason,
		EvidenceRefs:   sub.EvidenceRefs,
		BookingID:      sub.BookingID,
		ReviewID:       sub.ReviewID,
		ConversationID: sub.ConversationID,
		Status:         models.ReportStatusPending,
	}

	err := s.Storage.Transaction(func(st storage.Storage) error {
		if _, err := st.SaveActorIfNotExists(sub.ReporterID, sub.ReporterRole); err != nil {
			return err
		}
		if _, err := st.SaveActorIfNotExists(sub.ReportedID, sub.ReportedRole); err != nil {
			return err
		}
		if err := st.SaveReport(rep); err != nil {
			return err
		}
		if rep.Severity == models.SeverityCritical {
			// The incident row commits with the report so the fast path
			// survives a crash before the queue push.
			return st.SaveIncident(&models.Incident{
				ReportID:   rep.ID,
				ReportedID: rep.ReportedID,
				Category:   rep.Category,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if rep.Severity == models.SeverityCritical {
		// Fire-and-forget relative to the report write. A failed push is
		// recovered by the incident worker's database sweep.
		go func(reportID string) {
			if err := s.Storage.EnqueueIncident(reportID); err != nil {
				log.Printf("ERROR: failed to enqueue incident for report %s: %v", reportID, err)
			}
		}(rep.ID)
	}

	if _, err := s.Trust.Reevaluate(rep.ReportedID); err != nil {
		log.Printf("ERROR: re-evaluation after report %s failed: %v", rep.ID, err)
	}
	return rep, nil
}

// StartInvestigation moves a pending report to investigating and assigns it.
func (s *Service) StartInvestigation(reportID, assigneeID string) (*models.Report, error) {
	return s.transition(reportID, models.ReportStatusInvestigating, func(rep *models.Report) error {
		if rep.Status != models.ReportStatusPending {
			return ErrInvalidTransition
		}
		rep.AssigneeID = assigneeID
		return nil
	})
}

// Resolve closes a report as actioned. A non-empty actions list confirms the
// infraction: a violation is recorded against the reported actor and linked
// back to the report.
func (s *Service) Resolve(reportID, reviewerID, note string, actions []string) (*models.Report, error) {
	rep, err := s.transition(reportID, models.ReportStatusResolved, func(rep *models.Report) error {
		rep.AssigneeID = reviewerID
		rep.ResolutionNote = note
		rep.ActionsTaken = actions
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(actions) > 0 {
		violation, err := s.Trust.RecordViolation(rep.ReportedID,
			violationCategoryFor(rep.Category), rep.Severity,
			"confirmed report: "+note, rep.ID)
		if err != nil {
			return nil, err
		}
		rep.ViolationID = violation.ID
		if err := s.Storage.UpdateReport(rep); err != nil {
			return nil, err
		}
	}
	return rep, nil
}

// Dismiss closes a report without action.
func (s *Service) Dismiss(reportID, reviewerID, note string) (*models.Report, error) {
	return s.transition(reportID, models.ReportStatusDismissed, func(rep *models.Report) error {
		rep.AssigneeID = reviewerID
		rep.ResolutionNote = note
		return nil
	})
}

// Escalate is terminal-upward: it is reachable from any non-terminal status
// and routes the report out of the normal queue.
func (s *Service) Escalate(reportID, reviewerID, note string) (*models.Report, error) {
	return s.transition(reportID, models.ReportStatusEscalated, func(rep *models.Report) error {
		rep.AssigneeID = reviewerID
		rep.ResolutionNote = note
		return nil
	})
}

// transition applies one forward lifecycle move and re-evaluates the reported
// actor afterwards so unresolved-report floors stay accurate.
func (s *Service) transition(reportID string, to models.ReportStatus, apply func(*models.Report) error) (*models.Report, error) {
	var rep *models.Report

	err := s.Storage.Transaction(func(st storage.Storage) error {
		var err error
		rep, err = st.GetReportByID(reportID)
		if err != nil {
			return err
		}
		if rep.Status.Terminal() {
			return ErrTerminalReport
		}
		if err := apply(rep); err != nil {
			return err
		}
		rep.Status = to
		if to.Terminal() {
			now := time.Now()
			rep.ResolvedAt = &now
		}
		return st.UpdateReport(rep)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.Trust.Reevaluate(rep.ReportedID); err != nil {
		log.Printf("ERROR: re-evaluation after report %s transition failed: %v", rep.ID, err)
	}
	return rep, nil
}

// violationCategoryFor maps a confirmed report category onto the violation
// taxonomy.
func violationCategoryFor(category models.ReportCategory) models.ViolationCategory {
	switch category {
	case models.ReportContactSharing:
		return models.ViolationContactSharing
	case models.ReportSpam:
		return models.ViolationSpam
	case models.ReportNoShow:
		return models.ViolationNoShow
	case models.ReportFraud, models.ReportScam, models.ReportPaymentDispute, models.ReportFakeProfile:
		return models.ViolationFraud
	case models.ReportHarassment, models.ReportHateSpeech, models.ReportViolence, models.ReportSafetyThreat:
		return models.ViolationHarassment
	default:
		return models.ViolationInappropriateContent
	}
}
