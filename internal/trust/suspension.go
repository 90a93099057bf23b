package trust

import (
	"errors"
	"log"
	"strings"
	"time"

	"festago/backend/internal/analysis"
	"festago/backend/internal/config"
	"festago/backend/internal/models"
	"festago/backend/internal/storage"
)

// Suspend places the actor under an explicit suspension. The call is
// idempotent: a second suspension while one is active only refreshes the
// details, it never duplicates the record. Deactivation and the suspension
// row commit in the same transaction so neither can exist without the other.
func (s *Service) Suspend(actorID string, reason models.SuspensionReason, details string) (*models.Suspension, error) {
	var result *models.Suspension

	err := s.Storage.Transaction(func(st storage.Storage) error {
		actor, err := st.GetActorByID(actorID)
		if err != nil {
			return err
		}

		active, err := st.GetActiveSuspension(actorID)
		if err != nil {
			return err
		}
		if active != nil {
			active.Reason = reason
			active.Details = details
			if err := st.UpdateSuspension(active); err != nil {
				return err
			}
			result = active
		} else {
			susp := &models.Suspension{
				ActorID:    actorID,
				Reason:     reason,
				Details:    details,
				Appealable: true,
			}
			if err := st.SaveSuspension(susp); err != nil {
				return err
			}
			result = susp
		}

		actor.IsActive = false
		actor.Status = models.StatusSuspended
		actor.LastObservedStatus = models.StatusSuspended
		return st.UpdateActorCAS(actor)
	})
	if err != nil {
		return nil, err
	}

	if err := s.Storage.SetSuspendedFlag(actorID, true); err != nil {
		log.Printf("ERROR: failed to cache suspension for %s: %v", actorID, err)
	}
	return result, nil
}

// Reactivate lifts the active suspension: the record is closed (never
// deleted), the actor becomes active again, and the status is re-derived
// from the unchanged score. There is no free reset — the actor earns score
// back through subsequent good behavior.
func (s *Service) Reactivate(actorID, reviewerID, note string) error {
	err := s.Storage.Transaction(func(st storage.Storage) error {
		return reactivate(st, actorID, reviewerID, note)
	})
	if err != nil {
		return err
	}

	if err := s.Storage.SetSuspendedFlag(actorID, false); err != nil {
		log.Printf("ERROR: failed to clear suspension flag for %s: %v", actorID, err)
	}
	return nil
}

// reactivate closes the active suspension and restores the actor inside the
// caller's transaction.
func reactivate(st storage.Storage, actorID, reviewerID, note string) error {
	actor, err := st.GetActorByID(actorID)
	if err != nil {
		return err
	}

	active, err := st.GetActiveSuspension(actorID)
	if err != nil {
		return err
	}
	if active == nil {
		return ErrNoActiveSuspension
	}

	now := time.Now()
	active.Active = false
	active.EndedAt = &now
	active.LiftedBy = reviewerID
	active.LiftedNote = note
	if err := st.UpdateSuspension(active); err != nil {
		return err
	}

	status := analysis.EvaluateStatus(actor.SafetyScore, analysis.ReportState{})
	if status == models.StatusSuspended {
		// The reviewer's lift stands even against a rock-bottom score;
		// the actor stays on probation until the score recovers.
		status = models.StatusProbation
	}
	actor.IsActive = true
	actor.Status = status
	actor.LastObservedStatus = status
	return st.UpdateActorCAS(actor)
}

// SubmitAppeal opens an appeal against the actor's active suspension. The
// uniqueness check runs inside the same transaction as the insert, so two
// racing submissions cannot both go through. A pending appeal never
// reactivates the account by itself.
func (s *Service) SubmitAppeal(actorID, message string) (*models.Appeal, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	var appeal *models.Appeal
	err := s.Storage.Transaction(func(st storage.Storage) error {
		active, err := st.GetActiveSuspension(actorID)
		if err != nil {
			return err
		}
		if active == nil {
			return ErrNoActiveSuspension
		}
		if !active.Appealable {
			return ErrNotAppealable
		}

		pending, err := st.GetPendingAppeal(active.ID)
		if err != nil {
			return err
		}
		if pending != nil {
			return ErrAppealAlreadyPending
		}

		appeal = &models.Appeal{
			ActorID:      actorID,
			SuspensionID: active.ID,
			Message:      message,
			Status:       models.AppealStatusPending,
		}
		return st.SaveAppeal(appeal)
	})
	if err != nil {
		return nil, err
	}
	return appeal, nil
}

// ResolveAppeal records the reviewer's decision. Approval and reactivation
// commit in one transaction, so an approved appeal can never leave the
// suspension standing; rejection leaves it standing on purpose. A lost
// version race re-runs the whole resolution.
func (s *Service) ResolveAppeal(appealID, reviewerID string, approve bool, note string) (*models.Appeal, error) {
	var appeal *models.Appeal

	for attempt := 0; ; attempt++ {
		err := s.Storage.Transaction(func(st storage.Storage) error {
			var err error
			appeal, err = st.GetAppealByID(appealID)
			if err != nil {
				return err
			}
			if appeal.Status != models.AppealStatusPending {
				return ErrAppealNotPending
			}

			now := time.Now()
			appeal.ReviewerID = reviewerID
			appeal.ReviewNote = note
			appeal.ReviewedAt = &now
			if approve {
				appeal.Status = models.AppealStatusApproved
			} else {
				appeal.Status = models.AppealStatusRejected
			}
			if err := st.UpdateAppeal(appeal); err != nil {
				return err
			}

			if approve {
				err := reactivate(st, appeal.ActorID, reviewerID, "appeal approved: "+note)
				// A suspension already lifted by an operator does not block
				// the approval itself.
				if err != nil && !errors.Is(err, ErrNoActiveSuspension) {
					return err
				}
			}
			return nil
		})

		if errors.Is(err, storage.ErrVersionConflict) && attempt < config.PipelineMaxRetries {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	if approve {
		if err := s.Storage.SetSuspendedFlag(appeal.ActorID, false); err != nil {
			log.Printf("ERROR: failed to clear suspension flag for %s: %v", appeal.ActorID, err)
		}
	}
	return appeal, nil
}
