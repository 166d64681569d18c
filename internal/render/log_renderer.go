package render

import (
	"context"
	"sync"
	"time"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
	"github.com/AuraMage11/Weather-script/internal/logger"
)

// Lifecycle event names emitted by LogRenderer.
const (
	eventLighting     = "lighting_applied"
	eventRainStarted  = "rain_started"
	eventRainStopped  = "rain_stopped"
	eventRainReleased = "rain_released"
	eventThunder      = "thunder_played"
	eventThunderFreed = "thunder_released"
)

// LogRenderer is a Renderer that writes every event to the structured log.
// It stands in for a real lighting/particle/audio subsystem and still
// honors the deferred cleanup contract: rain emission is disabled when the
// storm duration elapses and the resource is released after the grace
// period; thunder resources are released after the linger delay.
type LogRenderer struct {
	// gracePeriod is how long the rain resource lingers after emission stops.
	gracePeriod time.Duration
	// linger is how long a thunder resource is kept before release.
	linger time.Duration

	// mu protects the pending timers and the closed flag.
	mu      sync.Mutex
	pending map[*time.Timer]struct{}
	closed  bool

	// onEvent is an optional hook fired on every lifecycle event, used by tests.
	onEvent func(event string)
}

var _ Renderer = (*LogRenderer)(nil)

// NewLogRenderer creates a logging renderer with the provided cleanup delays.
func NewLogRenderer(rainGracePeriod, thunderLinger time.Duration) *LogRenderer {
	return &LogRenderer{
		gracePeriod: rainGracePeriod,
		linger:      thunderLinger,
		pending:     make(map[*time.Timer]struct{}),
	}
}

// ApplyLightingProfile logs the freshly computed profile.
// Ticks are frequent, so this logs at debug level.
func (r *LogRenderer) ApplyLightingProfile(ctx context.Context, profile environment.LightingProfile) error {
	logger.DebugKV(ctx, "Lighting applied",
		"clock", profile.ClockString,
		"brightness", profile.Brightness,
		"ambient", profile.AmbientColor,
		"outdoor_ambient", profile.OutdoorAmbientColor)
	r.fire(eventLighting)

	return nil
}

// StartRain begins the rain effect and schedules its two-step cleanup:
// emission stops when the duration elapses, the resource is released after
// the additional grace period.
func (r *LogRenderer) StartRain(ctx context.Context, duration time.Duration) error {
	logger.InfoKV(ctx, "Rain started", "duration", duration.String())
	r.fire(eventRainStarted)

	r.schedule(duration, func() {
		logger.InfoKV(ctx, "Rain emission stopped", "grace_period", r.gracePeriod.String())
		r.fire(eventRainStopped)
	})
	r.schedule(duration+r.gracePeriod, func() {
		logger.Info(ctx, "Rain resource released")
		r.fire(eventRainReleased)
	})

	return nil
}

// PlayThunder plays a one-shot thunder effect and schedules its release.
func (r *LogRenderer) PlayThunder(ctx context.Context) error {
	logger.Info(ctx, "Thunder")
	r.fire(eventThunder)

	r.schedule(r.linger, func() {
		logger.Debug(ctx, "Thunder resource released")
		r.fire(eventThunderFreed)
	})

	return nil
}

// Close cancels all pending cleanup timers. Further scheduling is a no-op.
func (r *LogRenderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.closed = true
	for timer := range r.pending {
		timer.Stop()
	}

	r.pending = make(map[*time.Timer]struct{})
}

// schedule runs fn after the delay unless the renderer has been closed.
func (r *LogRenderer) schedule(delay time.Duration, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	var timer *time.Timer
	timer = time.AfterFunc(delay, func() {
		r.mu.Lock()
		delete(r.pending, timer)
		closed := r.closed
		r.mu.Unlock()

		if !closed {
			fn()
		}
	})
	r.pending[timer] = struct{}{}
}

// fire notifies the test hook, if any.
func (r *LogRenderer) fire(event string) {
	if r.onEvent != nil {
		r.onEvent(event)
	}
}
