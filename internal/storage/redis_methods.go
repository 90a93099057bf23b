package storage

import (
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	suspendedKeyPrefix = "suspended:"
	incidentMarkPrefix = "incident:"
	incidentQueueKey   = "incidents:queue"
	incidentWorkingKey = "incidents:working"
	incidentChannel    = "incidents:feed"
	incidentMarkExpiry = 7 * 24 * time.Hour
)

// SetSuspendedFlag caches the suspension state in Redis so canMessage checks
// do not hit PostgreSQL.
func (s *Service) SetSuspendedFlag(actorID string, suspended bool) error {
	if s.Redis == nil {
		return nil // admin CLI runs without redis
	}
	key := suspendedKeyPrefix + actorID
	if !suspended {
		return s.Redis.Del(s.Ctx, key).Err()
	}
	return s.Redis.Set(s.Ctx, key, "1", 0).Err()
}

// GetSuspendedFlag checks the cached suspension state. found is false on a
// cache miss; the caller then falls back to the database.
func (s *Service) GetSuspendedFlag(actorID string) (suspended, found bool, err error) {
	if s.Redis == nil {
		return false, false, nil
	}
	status, err := s.Redis.Get(s.Ctx, suspendedKeyPrefix+actorID).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return status != "", true, nil
}

// EnqueueIncident pushes a critical report onto the incident queue exactly
// once: the SETNX marker absorbs duplicate emissions for the same report.
func (s *Service) EnqueueIncident(reportID string) error {
	if s.Redis == nil {
		return nil // the worker's database sweep picks it up
	}
	ok, err := s.Redis.SetNX(s.Ctx, incidentMarkPrefix+reportID, "1", incidentMarkExpiry).Result()
	if err != nil {
		return err
	}
	if !ok {
		return nil // already queued once
	}
	return s.Redis.LPush(s.Ctx, incidentQueueKey, reportID).Err()
}

// DequeueIncident blocks up to timeout for the next incident, moving it onto
// the working list so a crashed worker does not lose it.
func (s *Service) DequeueIncident(timeout time.Duration) (string, error) {
	reportID, err := s.Redis.BLMove(s.Ctx, incidentQueueKey, incidentWorkingKey, "RIGHT", "LEFT", timeout).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	return reportID, err
}

// AckIncident removes a delivered incident from the working list.
func (s *Service) AckIncident(reportID string) error {
	return s.Redis.LRem(s.Ctx, incidentWorkingKey, 1, reportID).Err()
}

// RequeueIncident puts a failed incident back on the queue for another
// delivery attempt.
func (s *Service) RequeueIncident(reportID string) error {
	if err := s.Redis.LRem(s.Ctx, incidentWorkingKey, 1, reportID).Err(); err != nil {
		return err
	}
	return s.Redis.LPush(s.Ctx, incidentQueueKey, reportID).Err()
}

// PublishIncident fans an incident payload out to live feed subscribers.
func (s *Service) PublishIncident(payload []byte) error {
	return s.Redis.Publish(s.Ctx, incidentChannel, payload).Err()
}

// SubscribeIncidents subscribes to the live incident channel.
func (s *Service) SubscribeIncidents() *redis.PubSub {
	return s.Redis.Subscribe(s.Ctx, incidentChannel)
}
