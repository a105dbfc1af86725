package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nosthrillz/follow-the-sun/pkg/config"
	"github.com/nosthrillz/follow-the-sun/pkg/redis"
)

// Storage caches the last valid schedule in Redis so a restarted agent
// renders immediately and a failed provider refresh can fall back to the
// previous good schedule.
type Storage struct {
	redis  redis.Client
	cfg    *config.Config
	logger *slog.Logger
}

// NewStorage creates a new Storage instance
func NewStorage(redisClient redis.Client, cfg *config.Config, logger *slog.Logger) *Storage {
	return &Storage{
		redis:  redisClient,
		cfg:    cfg,
		logger: logger,
	}
}

// scheduleTTL keeps yesterday's entry around long enough to bridge a
// provider outage across midnight.
const scheduleTTL = 48 * time.Hour

// Save persists a validated schedule for a calendar date
func (s *Storage) Save(ctx context.Context, date time.Time, sched *DaySchedule) error {
	payload, err := json.Marshal(sched)
	if err != nil {
		return fmt.Errorf("failed to marshal schedule: %w", err)
	}

	key := redis.ScheduleKey(date.Format("2006-01-02"))
	if err := s.redis.Set(ctx, key, payload, scheduleTTL); err != nil {
		return fmt.Errorf("failed to cache schedule: %w", err)
	}

	s.logger.Debug("Cached day schedule", "key", key)
	return nil
}

// Load retrieves the cached schedule for a calendar date and re-validates
// it before use.
func (s *Storage) Load(ctx context.Context, date time.Time) (*DaySchedule, error) {
	key := redis.ScheduleKey(date.Format("2006-01-02"))

	raw, err := s.redis.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to load cached schedule: %w", err)
	}

	var sched DaySchedule
	if err := json.Unmarshal([]byte(raw), &sched); err != nil {
		return nil, fmt.Errorf("failed to parse cached schedule: %w", err)
	}

	return New(sched)
}
