package weather

import (
	"context"
	"math/rand"
	"time"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
	"github.com/AuraMage11/Weather-script/internal/logger"
	"github.com/AuraMage11/Weather-script/internal/metrics"
	"github.com/AuraMage11/Weather-script/internal/render"
)

// StormController owns a single storm's lifetime: the bounded rain signal
// and the randomized thunder emission loop.
type StormController struct {
	// state is the shared environment state carrying the storm flag.
	state *environment.State
	// renderer receives the rain and thunder signals.
	renderer render.Renderer
	// collector records storm and thunder metrics.
	collector *metrics.Collector
	// rng drives the thunder interval jitter. The controller runs on the
	// scheduler's goroutine, so sharing the scheduler's rng is safe.
	rng *rand.Rand
	// duration is the nominal storm length.
	duration time.Duration
	// thunderMin and thunderMax bound the random wait between thunder claps.
	thunderMin time.Duration
	thunderMax time.Duration
}

// NewStormController creates a storm controller. The interval bounds must
// already be validated (positive, min ≤ max).
func NewStormController(
	state *environment.State,
	renderer render.Renderer,
	collector *metrics.Collector,
	rng *rand.Rand,
	duration, thunderMin, thunderMax time.Duration,
) *StormController {
	return &StormController{
		state:      state,
		renderer:   renderer,
		collector:  collector,
		rng:        rng,
		duration:   duration,
		thunderMin: thunderMin,
		thunderMax: thunderMax,
	}
}

// Run executes one full storm and blocks until it ends. The storm flag is
// set for the entire span between the start and end notifications, and is
// cleared even when the context is canceled mid-storm.
//
// The random wait before each thunder clap is deliberately not clamped to
// the time remaining, so the last clap may land up to thunderMax past the
// nominal end.
func (s *StormController) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "storm")

	endsAt := time.Now().Add(s.duration)
	s.state.SetStorm(endsAt)
	s.collector.StormsStarted.Inc()
	s.collector.StormActive.Set(1)

	logger.InfoKV(ctx, "Storm started", "duration", s.duration.String(), "ends_at", endsAt.Format(time.RFC3339))

	defer func() {
		s.state.ClearStorm()
		s.collector.StormActive.Set(0)
	}()

	// The renderer owns the rain cleanup: it disables emission when the
	// duration elapses and releases the resource after its grace period.
	if err := s.renderer.StartRain(ctx, s.duration); err != nil {
		logger.ErrorKV(ctx, "Start rain failed", "error", err)
	}

	for time.Now().Before(endsAt) {
		wait := s.thunderInterval()

		select {
		case <-ctx.Done():
			logger.Info(ctx, "Context canceled mid-storm, exiting")
			return ctx.Err()
		case <-time.After(wait):
		}

		if err := s.renderer.PlayThunder(ctx); err != nil {
			logger.ErrorKV(ctx, "Play thunder failed", "error", err)
		}

		s.collector.ThunderEvents.Inc()
	}

	logger.Info(ctx, "Storm ended")
	s.collector.StormsCompleted.Inc()

	return nil
}

// thunderInterval draws a uniform random wait in [thunderMin, thunderMax].
func (s *StormController) thunderInterval() time.Duration {
	if s.thunderMax <= s.thunderMin {
		return s.thunderMin
	}

	span := s.thunderMax - s.thunderMin

	return s.thunderMin + time.Duration(s.rng.Float64()*float64(span))
}
