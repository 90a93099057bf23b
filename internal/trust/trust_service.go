// Package trust implements the scoring pipeline of the safety engine: it is
// the only write path for violation records, re-derives the safety score and
// account status after every signal, and executes the entry side effects of
// status changes.
package trust

import (
	"errors"
	"log"
	"time"

	"festago/backend/internal/analysis"
	"festago/backend/internal/config"
	"festago/backend/internal/models"
	"festago/backend/internal/storage"
)

// Service runs the violation → score → status pipeline for one actor at a
// time. All mutations of an actor record go through a versioned
// compare-and-set; a lost race re-runs the whole pipeline.
type Service struct {
	Storage storage.Storage
}

// NewService creates a new trust service.
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// SafetyStatus is the read surface consumed by the surrounding application
// for UI gating.
type SafetyStatus struct {
	ActorID string             `json:"actor_id"`
	Score   float64            `json:"score"`
	Status  models.ActorStatus `json:"status"`
	Badges  []models.BadgeType `json:"badges"`
}

// RecordViolation appends an immutable violation record against the actor,
// bumps the violation counters, and re-runs the scoring pipeline — all inside
// one transaction. This is the only path that may create a violation record.
func (s *Service) RecordViolation(actorID string, category models.ViolationCategory, severity models.Severity, description, sourceRef string) (*models.Violation, error) {
	violation := &models.Violation{
		ActorID:     actorID,
		Category:    category,
		Severity:    severity,
		Weight:      analysis.GetWeight(severity),
		Description: description,
		SourceRef:   sourceRef,
	}

	_, err := s.refresh(actorID, func(st storage.Storage, actor *models.Actor) error {
		if err := st.SaveViolation(violation); err != nil {
			return err
		}
		now := time.Now()
		actor.ViolationCount++
		actor.LastViolationAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return violation, nil
}

// ApplyReview folds a submitted review into the actor's rating aggregate and
// re-evaluates score and status.
func (s *Service) ApplyReview(actorID string, rating float64) (*models.Actor, error) {
	if rating < 0 {
		rating = 0
	}
	if rating > 5 {
		rating = 5
	}
	return s.refresh(actorID, func(st storage.Storage, actor *models.Actor) error {
		total := actor.RatingAvg*float64(actor.RatingCount) + rating
		actor.RatingCount++
		actor.RatingAvg = total / float64(actor.RatingCount)
		return nil
	})
}

// BookingOutcome is the terminal state of a booking as reported by the
// booking subsystem.
type BookingOutcome string

const (
	BookingCompleted BookingOutcome = "completed"
	BookingCancelled BookingOutcome = "cancelled"
	BookingNoShow    BookingOutcome = "no_show"
)

// ApplyBookingOutcome folds a finished booking into the behavioral aggregates
// and re-evaluates score and status.
func (s *Service) ApplyBookingOutcome(actorID string, outcome BookingOutcome) (*models.Actor, error) {
	switch outcome {
	case BookingCompleted, BookingCancelled, BookingNoShow:
	default:
		return nil, ErrUnknownOutcome
	}

	return s.refresh(actorID, func(st storage.Storage, actor *models.Actor) error {
		actor.TotalBookings++
		switch outcome {
		case BookingCompleted:
			actor.CompletedBookings++
		case BookingCancelled:
			actor.CancelledBookings++
		}
		// A no-show counts against completion without counting as a
		// cancellation.
		return nil
	})
}

// Reevaluate re-runs the pipeline without mutating aggregates. Called after
// report lifecycle changes so cleared or escalated reports take effect.
func (s *Service) Reevaluate(actorID string) (*models.Actor, error) {
	return s.refresh(actorID, nil)
}

// GetSafetyStatus returns the score, status and badge set for one actor.
func (s *Service) GetSafetyStatus(actorID string) (*SafetyStatus, error) {
	actor, err := s.Storage.GetActorByID(actorID)
	if err != nil {
		return nil, err
	}
	badges, err := s.Storage.GetBadges(actorID)
	if err != nil {
		return nil, err
	}
	types := make([]models.BadgeType, 0, len(badges))
	for _, b := range badges {
		types = append(types, b.Type)
	}
	return &SafetyStatus{ActorID: actor.ID, Score: actor.SafetyScore, Status: actor.Status, Badges: types}, nil
}

// CanMessage reports whether the actor may use the chat, derived from
// status != suspended. The Redis flag answers the hot path; a cache miss
// falls back to the actor record.
func (s *Service) CanMessage(actorID string) (bool, error) {
	suspended, found, err := s.Storage.GetSuspendedFlag(actorID)
	if err != nil {
		log.Printf("ERROR: suspended-flag lookup failed for %s: %v", actorID, err)
	} else if found {
		return !suspended, nil
	}

	actor, err := s.Storage.GetActorByID(actorID)
	if err != nil {
		return false, err
	}
	return actor.Status != models.StatusSuspended, nil
}

// refresh is the atomic read-modify-write at the heart of the engine: load
// the actor, apply the mutation, recount reports and recent violations,
// recompute score and status, fire entry side effects once, and write the
// actor back under a version check. On a lost race the whole cycle retries.
func (s *Service) refresh(actorID string, mutate func(storage.Storage, *models.Actor) error) (*models.Actor, error) {
	var result *models.Actor

	for attempt := 0; ; attempt++ {
		err := s.Storage.Transaction(func(st storage.Storage) error {
			actor, err := st.GetActorByID(actorID)
			if errors.Is(err, storage.ErrNotFound) {
				// First scoring event for this account: the engine creates
				// its trust record on demand.
				actor, err = st.SaveActorIfNotExists(actorID, models.RoleClient)
			}
			if err != nil {
				return err
			}

			if mutate != nil {
				if err := mutate(st, actor); err != nil {
					return err
				}
			}

			counts, err := st.CountReports(actorID)
			if err != nil {
				return err
			}
			recent, err := st.CountRecentViolations(actorID, models.ViolationContactSharing,
				time.Now().Add(-config.ContactViolationWindow))
			if err != nil {
				return err
			}

			score := analysis.Score(actor.RatingAvg, actor.RatingCount,
				counts.UnresolvedCritical, counts.UnresolvedHigh,
				actor.CancellationRate(), actor.CompletionRate())
			state := analysis.ReportState{
				Unresolved:              counts.Unresolved,
				UnresolvedHigh:          counts.UnresolvedHigh,
				EscalatedCritical:       counts.EscalatedCritical,
				RecentContactViolations: recent,
			}
			status := analysis.EvaluateStatus(score, state)

			// A standing full suspension only lifts through Reactivate,
			// never through re-evaluation alone.
			if !actor.IsActive && status != models.StatusSuspended {
				if held, err := st.GetActiveSuspension(actorID); err != nil {
					return err
				} else if held != nil {
					status = models.StatusSuspended
				}
			}

			actor.SafetyScore = score
			actor.Status = status

			if status != actor.LastObservedStatus {
				if err := s.applyEntryEffects(st, actor, state); err != nil {
					return err
				}
			}
			actor.LastObservedStatus = status

			if err := st.UpdateActorCAS(actor); err != nil {
				return err
			}
			if err := st.SaveScoreHistory(&models.ScoreHistory{ActorID: actorID, Score: score, Status: status}); err != nil {
				return err
			}

			for _, badge := range analysis.EvaluateBadges(actor, time.Now()) {
				if err := st.AwardBadge(actorID, badge); err != nil {
					return err
				}
			}

			result = actor
			return nil
		})

		if errors.Is(err, storage.ErrVersionConflict) {
			if attempt < config.PipelineMaxRetries {
				continue
			}
			return nil, err
		}
		if err != nil {
			return nil, err
		}
		break
	}

	if err := s.Storage.SetSuspendedFlag(actorID, result.Status == models.StatusSuspended); err != nil {
		log.Printf("ERROR: failed to update suspended flag for %s: %v", actorID, err)
	}
	return result, nil
}

// applyEntryEffects fires the side effects of entering a status. The caller
// only invokes this when the evaluated status differs from the last observed
// one, which keeps each effect from firing twice for the same entry.
func (s *Service) applyEntryEffects(st storage.Storage, actor *models.Actor, state analysis.ReportState) error {
	switch actor.Status {
	case models.StatusWarning:
		now := time.Now()
		actor.WarningCount++
		actor.LastWarningAt = &now
		// Coming up from probation: the pending-review record closes here,
		// not only on a full recovery to safe.
		if err := closeReviewRecord(st, actor.ID); err != nil {
			return err
		}

	case models.StatusProbation:
		// Open a pending-review suspension record; the actor stays active.
		active, err := st.GetActiveSuspension(actor.ID)
		if err != nil {
			return err
		}
		if active == nil {
			susp := &models.Suspension{
				ActorID:    actor.ID,
				Reason:     analysis.SuspensionReasonFor(actor.SafetyScore, state, actor.CancellationRate()),
				Details:    "placed under probation pending review",
				Appealable: true,
			}
			if err := st.SaveSuspension(susp); err != nil {
				return err
			}
		}

	case models.StatusSuspended:
		active, err := st.GetActiveSuspension(actor.ID)
		if err != nil {
			return err
		}
		reason := analysis.SuspensionReasonFor(actor.SafetyScore, state, actor.CancellationRate())
		if active != nil {
			active.Reason = reason
			active.Details = "suspended by safety evaluation"
			if err := st.UpdateSuspension(active); err != nil {
				return err
			}
		} else {
			susp := &models.Suspension{
				ActorID:    actor.ID,
				Reason:     reason,
				Details:    "suspended by safety evaluation",
				Appealable: true,
			}
			if err := st.SaveSuspension(susp); err != nil {
				return err
			}
		}
		actor.IsActive = false
		log.Printf("INFO: actor %s suspended (%s), score %.1f", actor.ID, reason, actor.SafetyScore)

	case models.StatusSafe:
		if err := closeReviewRecord(st, actor.ID); err != nil {
			return err
		}
	}
	return nil
}

// closeReviewRecord ends the actor's pending-review suspension record, if one
// is open. Only entries into warning or safe call this; a full suspension
// never reaches either because refresh pins deactivated actors to suspended.
func closeReviewRecord(st storage.Storage, actorID string) error {
	active, err := st.GetActiveSuspension(actorID)
	if err != nil {
		return err
	}
	if active == nil {
		return nil
	}
	now := time.Now()
	active.Active = false
	active.EndedAt = &now
	active.LiftedBy = "system"
	active.LiftedNote = "status recovered"
	return st.UpdateSuspension(active)
}
