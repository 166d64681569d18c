package weather

import (
	"context"
	"math/rand"
	"time"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
	"github.com/AuraMage11/Weather-script/internal/logger"
	"github.com/AuraMage11/Weather-script/internal/metrics"
)

// Scheduler periodically decides whether to start a storm. Storms only
// start during the day and never while another storm is active; the roll
// compares a uniform [0,1) draw against the configured probability.
type Scheduler struct {
	// state is the shared environment state the scheduler polls.
	state *environment.State
	// storm runs a full storm synchronously when a check succeeds.
	storm *StormController
	// collector records check outcomes.
	collector *metrics.Collector
	// rng draws the storm probability rolls.
	rng *rand.Rand
	// checkInterval is the polling period.
	checkInterval time.Duration
	// probability is the chance in [0,1] that an eligible check starts a storm.
	probability float64
}

// NewScheduler creates a weather scheduler around a storm controller.
func NewScheduler(
	state *environment.State,
	storm *StormController,
	collector *metrics.Collector,
	rng *rand.Rand,
	checkInterval time.Duration,
	probability float64,
) *Scheduler {
	return &Scheduler{
		state:         state,
		storm:         storm,
		collector:     collector,
		rng:           rng,
		checkInterval: checkInterval,
		probability:   probability,
	}
}

// Run polls for storm opportunities until the context is canceled. A
// successful roll runs the storm controller to completion before the next
// check, so a single scheduler can never have two storms in flight. The
// day/night clock may flip to night mid-storm; the storm still runs to its
// own natural end.
func (s *Scheduler) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "weather-scheduler")

	logger.InfoKV(ctx, "Scheduler started",
		"check_interval", s.checkInterval.String(),
		"storm_probability", s.probability)

	ticker := time.NewTicker(s.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled, exiting")
			return nil
		case <-ticker.C:
			if err := s.check(ctx); err != nil {
				// Only a canceled mid-storm run reaches here.
				return nil
			}
		}
	}
}

// check performs one weather roll and runs a storm when it succeeds.
func (s *Scheduler) check(ctx context.Context) error {
	snap := s.state.Snapshot()
	if !snap.IsDay() || snap.IsStorm {
		s.collector.WeatherChecks.WithLabelValues(metrics.CheckOutcomeSkipped).Inc()
		return nil
	}

	if s.rng.Float64() >= s.probability {
		s.collector.WeatherChecks.WithLabelValues(metrics.CheckOutcomeNoStorm).Inc()
		logger.DebugKV(ctx, "Weather check passed without a storm", "clock", environment.FormatClock(snap.TimeOfDay))

		return nil
	}

	s.collector.WeatherChecks.WithLabelValues(metrics.CheckOutcomeTriggered).Inc()

	return s.storm.Run(ctx)
}
