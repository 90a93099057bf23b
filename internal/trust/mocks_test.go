package trust_test

import (
	"time"

	"festago/backend/internal/models"
	"festago/backend/internal/storage"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/mock"
)

// MockStorage is a mock implementation of the storage.Storage interface.
// Methods the trust service asserts on go through testify; the rest are
// harmless no-ops so tests stay focused.
type MockStorage struct {
	mock.Mock
}

// Transaction runs fn against the mock itself; the tests only care about the
// calls made inside.
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

func (m *MockStorage) CountReports(actorID string) (storage.ReportCounts, error) {
	args := m.Called(actorID)
	return args.Get(0).(storage.ReportCounts), args.Error(1)
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

func (m *MockStorage) GetPendingAppeal(suspensionID string) (*models.Appeal, error) {
	args := m.Called(suspensionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appeal), args.Error(1)
}

func (m *MockStorage) GetAppealByID(id string) (*models.Appeal, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appeal), args.Error(1)
}

func (m *MockStorage) SaveAppeal(a *models.Appeal) error {
	args := m.Called(a)
	return args.Error(0)
}

func (m *MockStorage) UpdateAppeal(a *models.Appeal) error {
	args := m.Called(a)
	return args.Error(0)
}

// --- No-op methods outside the trust service's assertions ---

func (m *MockStorage) SaveScoreHistory(h *models.ScoreHistory) error { return nil }

func (m *MockStorage) SaveReport(r *models.Report) error { return nil }
func (m *MockStorage) UpdateReport(r *models.Report) error { return nil }
func (m *MockStorage) GetReportByID(string) (*models.Report, error) {
	return nil, storage.ErrNotFound
}

func (m *MockStorage) GetBadges(string) ([]models.Badge, error) { return nil, nil }
func (m *MockStorage) AwardBadge(string, models.BadgeType) error { return nil }
func (m *MockStorage) SaveIncident(*models.Incident) error { return nil }
func (m *MockStorage) MarkIncidentNotified(string) error { return nil }
func (m *MockStorage) GetUnnotifiedIncidents(int) ([]models.Incident, error) {
	return nil, nil
}

func (m *MockStorage) SetSuspendedFlag(string, bool) error { return nil }
func (m *MockStorage) GetSuspendedFlag(string) (bool, bool, error) { return false, false, nil }
func (m *MockStorage) EnqueueIncident(string) error { return nil }
func (m *MockStorage) DequeueIncident(time.Duration) (string, error) { return "", nil }
func (m *MockStorage) AckIncident(string) error { return nil }
func (m *MockStorage) RequeueIncident(string) error { return nil }
func (m *MockStorage) PublishIncident([]byte) error { return nil }
func (m *MockStorage) SubscribeIncidents() *redis.PubSub { return nil }
