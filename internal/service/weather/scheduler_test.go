package weather

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
	"github.com/AuraMage11/Weather-script/internal/metrics"
)

// TestSchedulerCertainProbability verifies that probability 1.0 starts a
// storm on the next eligible check, and that consecutive storms never
// overlap because the scheduler blocks on the running storm.
func TestSchedulerCertainProbability(t *testing.T) {
	t.Parallel()

	const stormDuration = 15 * time.Millisecond

	state := environment.NewState()
	renderer := new(stormRenderer)
	collector := newTestCollector()
	rng := rand.New(rand.NewSource(1))

	controller := NewStormController(state, renderer, collector, rng,
		stormDuration, 5*time.Millisecond, 5*time.Millisecond)
	scheduler := NewScheduler(state, controller, collector, rng, 5*time.Millisecond, 1.0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- scheduler.Run(ctx)
	}()

	// At least two full storms run, proving the scheduler resumes its
	// checks after a storm completes.
	assert.Eventually(t, func() bool {
		return len(renderer.rainStartTimes()) >= 2
	}, 5*time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	// Storms are strictly sequential: each rain start comes after the
	// previous storm's nominal end.
	starts := renderer.rainStartTimes()
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		require.GreaterOrEqual(t, gap, stormDuration-time.Millisecond)
	}
}

// TestSchedulerZeroProbability verifies that probability 0.0 never starts
// a storm no matter how many checks run.
func TestSchedulerZeroProbability(t *testing.T) {
	t.Parallel()

	state := environment.NewState()
	renderer := new(stormRenderer)
	collector := newTestCollector()
	rng := rand.New(rand.NewSource(1))

	controller := NewStormController(state, renderer, collector, rng,
		time.Minute, time.Second, time.Second)
	scheduler := NewScheduler(state, controller, collector, rng, 2*time.Millisecond, 0.0)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- scheduler.Run(ctx)
	}()

	// Wait until a fair number of checks have rolled.
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(collector.WeatherChecks.WithLabelValues(metrics.CheckOutcomeNoStorm)) >= 10
	}, 5*time.Second, time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	require.Empty(t, renderer.rainStartTimes())
	require.Zero(t, testutil.ToFloat64(collector.StormsStarted))
}

// TestSchedulerGating verifies that night and an active storm both suppress
// the roll entirely.
func TestSchedulerGating(t *testing.T) {
	t.Parallel()

	for name, prepare := range map[string]func(*environment.State){
		"night": func(s *environment.State) {
			s.SetClock(environment.PhaseNight, 22)
		},
		"active storm": func(s *environment.State) {
			s.SetClock(environment.PhaseDay, 12)
			s.SetStorm(time.Now().Add(time.Hour))
		},
	} {
		prepare := prepare

		t.Run(name, func(t *testing.T) {
			t.Parallel()

			state := environment.NewState()
			prepare(state)

			renderer := new(stormRenderer)
			collector := newTestCollector()
			rng := rand.New(rand.NewSource(1))

			controller := NewStormController(state, renderer, collector, rng,
				time.Minute, time.Second, time.Second)
			scheduler := NewScheduler(state, controller, collector, rng, 2*time.Millisecond, 1.0)

			ctx, cancel := context.WithCancel(context.Background())
			done := make(chan error, 1)

			go func() {
				done <- scheduler.Run(ctx)
			}()

			assert.Eventually(t, func() bool {
				return testutil.ToFloat64(collector.WeatherChecks.WithLabelValues(metrics.CheckOutcomeSkipped)) >= 5
			}, 5*time.Second, time.Millisecond)

			cancel()
			require.NoError(t, <-done)
			require.Empty(t, renderer.rainStartTimes())
		})
	}
}
