package sky

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/nosthrillz/follow-the-sun/internal/clock"
	"github.com/nosthrillz/follow-the-sun/internal/moon"
	"github.com/nosthrillz/follow-the-sun/internal/schedule"
	"github.com/nosthrillz/follow-the-sun/pkg/config"
	"github.com/nosthrillz/follow-the-sun/pkg/mqtt"
	"github.com/nosthrillz/follow-the-sun/pkg/redis"
)

// Agent drives the ambient display: an explicit tick loop that
// evaluates the appearance model once per second, a slower loop that
// refreshes the day schedule, and an MQTT command surface for manual
// time overrides (the circular time-picker scrubbing the dial).
type Agent struct {
	mqtt     mqtt.Client
	redis    redis.Client
	cfg      *config.Config
	logger   *slog.Logger
	provider *schedule.Provider
	storage  *schedule.Storage

	// Schedule replacement is atomic: ticks see the old schedule or the
	// new one in full, never a partial update.
	scheduleMux sync.RWMutex
	sched       *schedule.DaySchedule

	overrideMux sync.RWMutex
	override    *float64 // minutes since midnight, nil when live

	// The smoother demands single-writer discipline; both the tick loop
	// and the override handler touch it, so the agent serializes access.
	smootherMux sync.Mutex
	smoother    *Smoother

	tickTicker    *time.Ticker
	refreshTicker *time.Ticker
	stopChan      chan struct{}
}

// NewAgent creates a new sky agent
func NewAgent(mqttClient mqtt.Client, redisClient redis.Client, cfg *config.Config, logger *slog.Logger) *Agent {
	return &Agent{
		mqtt:     mqttClient,
		redis:    redisClient,
		cfg:      cfg,
		logger:   logger,
		provider: schedule.NewProvider(cfg, logger),
		storage:  schedule.NewStorage(redisClient, cfg, logger),
		smoother: NewSmoother(cfg.ContrastSmoothingAlpha),
		stopChan: make(chan struct{}),
	}
}

// Start starts the sky agent and begins publishing appearance state
func (a *Agent) Start(ctx context.Context) error {
	a.logger.Info("Starting sky agent",
		"service_name", a.cfg.ServiceName,
		"latitude", a.cfg.Latitude,
		"longitude", a.cfg.Longitude,
		"tick_interval_sec", a.cfg.TickIntervalSec,
		"schedule_refresh_sec", a.cfg.ScheduleRefreshSec)

	// Connect to MQTT broker
	if err := a.mqtt.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to MQTT: %w", err)
	}

	// Verify Redis connection
	if err := a.redis.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping Redis: %w", err)
	}

	// Seed the schedule from cache or a fresh computation; the model
	// falls back to the neutral appearance until one is available.
	a.seedSchedule(ctx)

	// Subscribe to manual time overrides
	if err := a.mqtt.Subscribe(mqtt.TopicTimeOverride, 0, a.handleOverrideMessage); err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", mqtt.TopicTimeOverride, err)
	}
	a.logger.Info("Subscribed to time override commands", "topic", mqtt.TopicTimeOverride)

	a.startLoops(ctx)

	a.logger.Info("Sky agent started and ready")

	// Block until context is cancelled
	<-ctx.Done()
	a.logger.Info("Sky agent stopping")

	return nil
}

// Stop gracefully stops the sky agent
func (a *Agent) Stop() error {
	a.logger.Info("Stopping sky agent")

	if a.tickTicker != nil {
		a.tickTicker.Stop()
	}
	if a.refreshTicker != nil {
		a.refreshTicker.Stop()
	}
	close(a.stopChan)

	a.mqtt.Disconnect()

	if err := a.redis.Close(); err != nil {
		a.logger.Error("Error closing Redis connection", "error", err)
		return err
	}

	a.logger.Info("Sky agent stopped")
	return nil
}

// seedSchedule loads today's cached schedule, or computes a fresh one
// when the cache is empty or stale.
func (a *Agent) seedSchedule(ctx context.Context) {
	now := time.Now()

	if cached, err := a.storage.Load(ctx, now); err == nil {
		a.setSchedule(cached)
		a.logger.Info("Loaded cached day schedule", "date", now.Format("2006-01-02"))
		return
	}

	a.refreshSchedule(ctx)
}

// startLoops starts the evaluation tick and the schedule refresh loop
func (a *Agent) startLoops(ctx context.Context) {
	a.tickTicker = time.NewTicker(time.Duration(a.cfg.TickIntervalSec) * time.Second)
	a.refreshTicker = time.NewTicker(time.Duration(a.cfg.ScheduleRefreshSec) * time.Second)

	go func() {
		for {
			select {
			case <-a.tickTicker.C:
				a.tick(ctx)
			case <-a.refreshTicker.C:
				a.refreshSchedule(ctx)
			case <-a.stopChan:
				return
			}
		}
	}()
}

// refreshSchedule computes the schedule for the current date and swaps
// it in. On failure the previous valid schedule stays active.
func (a *Agent) refreshSchedule(ctx context.Context) {
	now := time.Now()

	sched, err := a.provider.Fetch(now)
	if err != nil {
		a.logger.Warn("Schedule refresh failed, keeping previous schedule",
			"date", now.Format("2006-01-02"),
			"error", err)
		return
	}

	a.setSchedule(sched)

	if err := a.storage.Save(ctx, now, sched); err != nil {
		a.logger.Warn("Failed to cache schedule", "error", err)
	}

	a.publishSchedule(sched)
	a.publishMoon(now)
}

func (a *Agent) setSchedule(sched *schedule.DaySchedule) {
	a.scheduleMux.Lock()
	a.sched = sched
	a.scheduleMux.Unlock()
}

func (a *Agent) currentSchedule() *schedule.DaySchedule {
	a.scheduleMux.RLock()
	defer a.scheduleMux.RUnlock()
	return a.sched
}

// handleOverrideMessage applies or clears a manual time override. The
// payload is minutes since midnight; an empty payload returns the
// display to live time. A jump resets the contrast smoother so text
// lightness snaps to the new appearance instead of lagging toward it.
func (a *Agent) handleOverrideMessage(msg mqtt.Message) {
	payload := strings.TrimSpace(string(msg.Payload()))

	a.overrideMux.Lock()
	defer a.overrideMux.Unlock()

	if payload == "" {
		if a.override != nil {
			a.logger.Info("Time override cleared")
		}
		a.override = nil
		a.resetSmoother()
		return
	}

	minutes, err := strconv.ParseFloat(payload, 64)
	if err != nil {
		a.logger.Warn("Invalid time override payload", "payload", payload, "error", err)
		return
	}

	m := clock.Normalize(minutes)
	a.override = &m
	a.resetSmoother()

	a.logger.Info("Time override set", "minutes", m, "display_time", clock.FormatTime(m))
}

// currentMinutes returns the evaluation time: the manual override when
// one is active, the wall clock otherwise.
func (a *Agent) currentMinutes(now time.Time) (float64, bool) {
	a.overrideMux.RLock()
	defer a.overrideMux.RUnlock()
	if a.override != nil {
		return *a.override, true
	}
	return clock.FromTime(now), false
}

// tick evaluates the appearance model and publishes the result
func (a *Agent) tick(ctx context.Context) {
	now := time.Now()
	minutes, overridden := a.currentMinutes(now)
	sched := a.currentSchedule()

	// The moon phase follows the calendar date, not the scrubbed time
	m := moon.At(now)

	app := Evaluate(minutes, sched, m)

	// Thread the contrast accumulator forward: smooth the text
	// lightness, then rebuild the sample so the derived stop follows.
	a.smootherMux.Lock()
	smoothed := a.smoother.Apply(app.Text.Lightness)
	a.smootherMux.Unlock()
	app.Text = newColorSample(app.Text.Hue, app.Text.Saturation, smoothed)

	a.publishAppearance(app, minutes, overridden)
	a.cacheState(ctx, app, minutes, overridden)
}

// publishAppearance publishes the color context message
func (a *Agent) publishAppearance(app Appearance, minutes float64, overridden bool) {
	msg := map[string]interface{}{
		"background":   app.Background,
		"text":         app.Text,
		"darkness":     app.Darkness,
		"lux":          app.Lux,
		"segment":      app.Segment,
		"display_time": clock.FormatTime(minutes),
		"overridden":   overridden,
		"timestamp":    time.Now().Format(time.RFC3339),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		a.logger.Error("Failed to marshal color context", "error", err)
		return
	}

	if err := a.mqtt.Publish(mqtt.TopicColorContext, 0, true, payload); err != nil {
		a.logger.Error("Failed to publish color context", "error", err)
		return
	}

	a.logger.Debug("Published color context",
		"segment", app.Segment,
		"darkness", app.Darkness,
		"lux", app.Lux)
}

// publishMoon publishes the moon context message
func (a *Agent) publishMoon(now time.Time) {
	m := moon.At(now)

	msg := map[string]interface{}{
		"phase":        m.Phase,
		"illumination": m.Illumination,
		"lux":          m.Lux,
		"name":         m.Name,
		"timestamp":    now.Format(time.RFC3339),
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		a.logger.Error("Failed to marshal moon context", "error", err)
		return
	}

	if err := a.mqtt.Publish(mqtt.TopicMoonContext, 0, true, payload); err != nil {
		a.logger.Error("Failed to publish moon context", "error", err)
	}
}

// publishSchedule publishes the active schedule after a refresh
func (a *Agent) publishSchedule(sched *schedule.DaySchedule) {
	payload, err := json.Marshal(sched)
	if err != nil {
		a.logger.Error("Failed to marshal schedule context", "error", err)
		return
	}

	if err := a.mqtt.Publish(mqtt.TopicScheduleContext, 0, true, payload); err != nil {
		a.logger.Error("Failed to publish schedule context", "error", err)
	}
}

// cacheState stores the latest appearance in Redis for late joiners
func (a *Agent) cacheState(ctx context.Context, app Appearance, minutes float64, overridden bool) {
	state := map[string]interface{}{
		"appearance":   app,
		"display_time": clock.FormatTime(minutes),
		"overridden":   overridden,
		"updated_at":   time.Now().Format(time.RFC3339),
	}

	payload, err := json.Marshal(state)
	if err != nil {
		a.logger.Error("Failed to marshal sky state", "error", err)
		return
	}

	ttl := time.Duration(a.cfg.StateTTLSec) * time.Second
	if err := a.redis.Set(ctx, redis.StateKey(), payload, ttl); err != nil {
		a.logger.Warn("Failed to cache sky state", "error", err)
	}
}

func (a *Agent) resetSmoother() {
	a.smootherMux.Lock()
	a.smoother.Reset()
	a.smootherMux.Unlock()
}

// HasSchedule reports whether a valid schedule is active (for health
// and diagnostics).
func (a *Agent) HasSchedule() bool {
	return a.currentSchedule() != nil
}
