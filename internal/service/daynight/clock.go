package daynight

import (
	"context"
	"time"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
	"github.com/AuraMage11/Weather-script/internal/logger"
	"github.com/AuraMage11/Weather-script/internal/metrics"
	"github.com/AuraMage11/Weather-script/internal/render"
)

// Clock owns the simulated time of day. It runs forever, alternating day
// and night phases and publishing the clock and the derived lighting
// profile on every tick.
type Clock struct {
	// state is the shared environment state the clock writes to.
	state *environment.State
	// renderer receives the lighting profile of every tick.
	renderer render.Renderer
	// collector records tick and phase metrics.
	collector *metrics.Collector
	// dayLength is the real-time duration of the day phase.
	dayLength time.Duration
	// nightLength is the real-time duration of the night phase.
	nightLength time.Duration
	// timeStep is the interval between ticks.
	timeStep time.Duration
}

// NewClock creates a day/night clock. Durations must already be validated;
// the phase loops divide by them.
func NewClock(
	state *environment.State,
	renderer render.Renderer,
	collector *metrics.Collector,
	dayLength, nightLength, timeStep time.Duration,
) *Clock {
	return &Clock{
		state:       state,
		renderer:    renderer,
		collector:   collector,
		dayLength:   dayLength,
		nightLength: nightLength,
		timeStep:    timeStep,
	}
}

// Run drives the clock until the context is canceled. The day phase maps
// its real-time duration onto simulated hours 0..24; the night phase maps
// onto hours 18..42 (wrapping through 6), reproducing the classic
// "night continues the evening clock" mapping.
func (c *Clock) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "day-night-clock")

	logger.InfoKV(ctx, "Clock started",
		"day_length", c.dayLength.String(),
		"night_length", c.nightLength.String(),
		"time_step", c.timeStep.String())

	phase := environment.PhaseDay

	for {
		if err := c.runPhase(ctx, phase); err != nil {
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		}

		phase = phase.Opposite()
		c.collector.PhaseTransitions.WithLabelValues(string(phase)).Inc()
		logger.InfoKV(ctx, "Phase flipped", "phase", phase)
	}
}

// runPhase executes the full tick loop of one phase. It returns the context
// error when canceled mid-phase and nil once the phase duration elapsed.
func (c *Clock) runPhase(ctx context.Context, phase environment.Phase) error {
	duration := c.dayLength
	if phase == environment.PhaseNight {
		duration = c.nightLength
	}

	hoursPerSecond := environment.HoursPerCycle / duration.Seconds()

	ticker := time.NewTicker(c.timeStep)
	defer ticker.Stop()

	for elapsed := time.Duration(0); elapsed <= duration; elapsed += c.timeStep {
		hours := elapsed.Seconds() * hoursPerSecond
		if phase == environment.PhaseNight {
			hours += environment.NightStartHour
		}

		c.tick(ctx, phase, environment.NormalizeHour(hours))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}

	return nil
}

// tick publishes one clock step: shared state, renderer, metrics.
func (c *Clock) tick(ctx context.Context, phase environment.Phase, timeOfDay float64) {
	c.state.SetClock(phase, timeOfDay)

	profile := environment.ComputeLightingProfile(timeOfDay)

	// A failing renderer must never stop the clock.
	if err := c.renderer.ApplyLightingProfile(ctx, profile); err != nil {
		logger.ErrorKV(ctx, "Apply lighting profile failed", "error", err, "clock", profile.ClockString)
	}

	c.collector.ClockTicks.Inc()
	c.collector.TimeOfDay.Set(timeOfDay)
	c.collector.Brightness.Set(profile.Brightness)

	dayActive := 0.0
	if phase == environment.PhaseDay {
		dayActive = 1
	}

	c.collector.DayActive.Set(dayActive)
}
