package report_test

import (
	"time"

	"festago/backend/internal/models"
	"festago/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface
// shared by the report service and the trust service it triggers.
type MockStorage struct {
	mock.Mock
	// enqueued receives the report ID pushed by the async fast path so tests
	// can wait for it deterministically.
	enqueued chan string
}

func (m *MockStorage) Transaction(fn func(storage.Storage) error) error {
	return fn(m)
}

func (m *MockStorage) GetActorByID(id string) (*models.Actor, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actor), args.Error(1)
}

func (m *MockStorage) SaveActorIfNotExists(id string, role models.ActorRole) (*models.Actor, error) {
	args := m.Called(id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Actor), args.Error(1)
}

func (m *MockStorage) UpdateActorCAS(actor *models.Actor) error {
	args := m.Called(actor)
	return args.Error(0)
}

func (m *MockStorage) SaveViolation(v *models.Violation) error {
	args := m.Called(v)
	return args.Error(0)
}

func (m *MockStorage) CountRecentViolations(actorID string, category models.ViolationCategory, since time.Time) (int, error) {
	args := m.Called(actorID, category, since)
	return args.Int(0), args.Error(1)
}

func (m *MockStorage) SaveReport(r *models.Report) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStorage) GetReportByID(id string) (*models.Report, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockStorage) UpdateReport(r *models.Report) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockStorage) CountReports(actorID string) (storage.ReportCounts, error) {
	args := m.Called(actorID)
	return args.Get(0).(storage.ReportCounts), args.Error(1)
}

func (m *MockStorage) SaveIncident(i *models.Incident) error {
	args := m.Called(i)
	return args.Error(0)
}

func (m *MockStorage) GetActiveSuspension(actorID string) (*models.Suspension, error) {
	args := m.Called(actorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Suspension), args.Error(1)
}

func (m *MockStorage) SaveSuspension(s *models.Suspension) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockStorage) UpdateSuspension(s *models.Suspension) error {
	args := m.Called(s)
	return args.Error(0)
}

// --- No-op methods outside this package's assertions ---

func (m *MockStorage) SaveScoreHistory(h *models.ScoreHistory) error { return nil }

func (m *MockStorage) GetPendingAppeal(string) (*models.Appeal, error) { return nil, nil }
func (m *MockStorage) SaveAppeal(*models.Appeal) error { return nil }
func (m *MockStorage) UpdateAppeal(*models.Appeal) error { return nil }
func (m *MockStorage) GetAppealByID(string) (*models.Appeal, error) {
	return nil, storage.ErrNotFound
}

func (m *MockStorage) GetBadges(string) ([]models.Badge, error) { return nil, nil }
func (m *MockStorage) AwardBadge(string, models.BadgeType) error { return nil }
func (m *MockStorage) MarkIncidentNotified(string) error { return nil }
func (m *MockStorage) GetUnnotifiedIncidents(int) ([]models.Incident, error) {
	return nil, nil
}

func (m *MockStorage) SetSuspendedFlag(string, bool) error { return nil }
func (m *MockStorage) GetSuspendedFlag(string) (bool, bool, error) { return false, false, nil }

func (m *MockStorage) EnqueueIncident(reportID string) error {
	if m.enqueued != nil {
		m.enqueued <- reportID
	}
	return nil
}

func (m *MockStorage) DequeueIncident(time.Duration) (string, error) { return "", nil }
func (m *MockStorage) AckIncident(string) error                      { return nil }
func (m *MockStorage) RequeueIncident(string) error                  { return nil }
func (m *MockStorage) PublishIncident([]byte) error                  { return nil }
func (m *MockStorage) SubscribeIncidents() *redis.PubSub             { return nil }
