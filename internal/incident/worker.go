// Package incident delivers the critical-report fast path: a Redis-backed
// queue feeds notifiers (ops Telegram channel, live websocket feed) with
// at-least-once semantics, idempotent per report. Delivery is decoupled from
// report persistence so a slow notifier can never block intake.
package incident

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"festago/backend/internal/models"

	"github.com/redis/go-redis/v9"
)

// Store is the slice of the storage surface the incident fast path needs.
// Keeping it narrow lets the worker and feed be tested without the full
// storage service.
type Store interface {
	GetReportByID(id string) (*models.Report, error)
	GetUnnotifiedIncidents(limit int) ([]models.Incident, error)
	MarkIncidentNotified(reportID string) error
	EnqueueIncident(reportID string) error
	DequeueIncident(timeout time.Duration) (string, error)
	AckIncident(reportID string) error
	RequeueIncident(reportID string) error
	PublishIncident(payload []byte) error
	SubscribeIncidents() *redis.PubSub
}

// Payload is the wire form of one incident, published to the live feed and
// handed to notifiers.
type Payload struct {
	ReportID   string                `json:"report_id"`
	ReportedID string                `json:"reported_id"`
	ReporterID string                `json:"reporter_id"`
	Category   models.ReportCategory `json:"category"`
	Severity   models.Severity       `json:"severity"`
	Reason     string                `json:"reason,omitempty"`
	CreatedAt  time.Time             `json:"created_at"`
}

// Notifier delivers one incident to a downstream channel. A returned error
// requeues the incident for another attempt.
type Notifier interface {
	Notify(p Payload) error
}

const (
	dequeueTimeout = 5 * time.Second
	sweepInterval  = time.Minute
	sweepBatch     = 50
)

// Worker consumes the incident queue and sweeps the database for incidents a
// crash or failed enqueue left undelivered.
type Worker struct {
	Storage   Store
	Notifiers []Notifier
}

func NewWorker(s Store, notifiers ...Notifier) *Worker {
	return &Worker{Storage: s, Notifiers: notifiers}
}

// Run blocks until ctx is done.
func (w *Worker) Run(ctx context.Context) {
	log.Println("Incident worker started.")

	sweep := time.NewTicker(sweepInterval)
	defer sweep.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Incident worker stopped.")
			return
		case <-sweep.C:
			w.sweepUnnotified()
		default:
			reportID, err := w.Storage.DequeueIncident(dequeueTimeout)
			if err != nil {
				log.Printf("ERROR: incident dequeue failed: %v", err)
				time.Sleep(time.Second)
				continue
			}
			if reportID == "" {
				continue
			}
			w.handle(reportID)
		}
	}
}

// sweepUnnotified re-queues incidents whose delivery was never confirmed.
func (w *Worker) sweepUnnotified() {
	incidents, err := w.Storage.GetUnnotifiedIncidents(sweepBatch)
	if err != nil {
		log.Printf("ERROR: incident sweep failed: %v", err)
		return
	}
	for _, inc := range incidents {
		if err := w.Storage.EnqueueIncident(inc.ReportID); err != nil {
			log.Printf("ERROR: failed to re-enqueue incident %s: %v", inc.ReportID, err)
		}
	}
}

func (w *Worker) handle(reportID string) {
	rep, err := w.Storage.GetReportByID(reportID)
	if err != nil {
		log.Printf("ERROR: incident %s has no report: %v", reportID, err)
		if err := w.Storage.AckIncident(reportID); err != nil {
			log.Printf("ERROR: failed to ack orphan incident %s: %v", reportID, err)
		}
		return
	}

	p := Payload{
		ReportID:   rep.ID,
		ReportedID: rep.ReportedID,
		ReporterID: rep.ReporterID,
		Category:   rep.Category,
		Severity:   rep.Severity,
		Reason:     rep.Reason,
		CreatedAt:  rep.CreatedAt,
	}

	for _, n := range w.Notifiers {
		if err := n.Notify(p); err != nil {
			log.Printf("ERROR: incident %s notification failed, requeueing: %v", reportID, err)
			if err := w.Storage.RequeueIncident(reportID); err != nil {
				log.Printf("ERROR: failed to requeue incident %s: %v", reportID, err)
			}
			return
		}
	}

	if payload, err := json.Marshal(p); err == nil {
		if err := w.Storage.PublishIncident(payload); err != nil {
			log.Printf("ERROR: failed to publish incident %s to feed: %v", reportID, err)
		}
	}

	if err := w.Storage.MarkIncidentNotified(reportID); err != nil {
		log.Printf("ERROR: failed to mark incident %s notified: %v", reportID, err)
	}
	if err := w.Storage.AckIncident(reportID); err != nil {
		log.Printf("ERROR: failed to ack incident %s: %v", reportID, err)
	}
}
