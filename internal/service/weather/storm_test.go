package weather

import (
	"context"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
	"github.com/AuraMage11/Weather-script/internal/metrics"
)

// stormRenderer records rain and thunder signals.
type stormRenderer struct {
	mu            sync.Mutex
	rainStarts    []time.Time
	rainDurations []time.Duration
	thunder       int
	onThunder     func()
}

func (r *stormRenderer) ApplyLightingProfile(context.Context, environment.LightingProfile) error {
	return nil
}

func (r *stormRenderer) StartRain(_ context.Context, duration time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rainStarts = append(r.rainStarts, time.Now())
	r.rainDurations = append(r.rainDurations, duration)

	return nil
}

func (r *stormRenderer) PlayThunder(context.Context) error {
	r.mu.Lock()
	hook := r.onThunder
	r.thunder++
	r.mu.Unlock()

	if hook != nil {
		hook()
	}

	return nil
}

func (r *stormRenderer) thunderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.thunder
}

func (r *stormRenderer) rainStartTimes() []time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]time.Time(nil), r.rainStarts...)
}

func newTestCollector() *metrics.Collector {
	return metrics.NewCollector("test", prometheus.NewRegistry())
}

// TestStormControllerLifecycle runs one storm with a fixed thunder interval
// and verifies the rain signal, the thunder cadence and the storm flag span.
func TestStormControllerLifecycle(t *testing.T) {
	t.Parallel()

	const (
		duration = 60 * time.Millisecond
		interval = 20 * time.Millisecond
	)

	state := environment.NewState()
	renderer := new(stormRenderer)

	// Every thunder clap must land inside the storm flag's span.
	renderer.onThunder = func() {
		assert.True(t, state.Snapshot().IsStorm)
	}

	controller := NewStormController(state, renderer, newTestCollector(),
		rand.New(rand.NewSource(1)), duration, interval, interval)

	require.False(t, state.Snapshot().IsStorm)
	require.NoError(t, controller.Run(context.Background()))
	require.False(t, state.Snapshot().IsStorm)

	// Rain starts exactly once, carrying the nominal storm duration.
	require.Len(t, renderer.rainStartTimes(), 1)
	require.Equal(t, []time.Duration{duration}, renderer.rainDurations)

	// With a fixed interval k the clap count is duration/k, give or take
	// one for scheduling jitter and the allowed final overshoot.
	require.InDelta(t, 3, renderer.thunderCount(), 1)
}

// TestStormControllerCancellation ensures a canceled context exits the
// thunder loop at the suspension point and still clears the storm flag.
func TestStormControllerCancellation(t *testing.T) {
	t.Parallel()

	state := environment.NewState()
	renderer := new(stormRenderer)
	controller := NewStormController(state, renderer, newTestCollector(),
		rand.New(rand.NewSource(1)), time.Hour, time.Hour, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)

	go func() {
		done <- controller.Run(ctx)
	}()

	assert.Eventually(t, func() bool {
		return state.Snapshot().IsStorm
	}, 2*time.Second, time.Millisecond)

	cancel()

	require.ErrorIs(t, <-done, context.Canceled)
	require.False(t, state.Snapshot().IsStorm)
	require.Zero(t, renderer.thunderCount())
}

// TestThunderIntervalBounds checks the random wait stays inside the
// configured bounds.
func TestThunderIntervalBounds(t *testing.T) {
	t.Parallel()

	controller := NewStormController(environment.NewState(), new(stormRenderer), newTestCollector(),
		rand.New(rand.NewSource(7)), time.Minute, 5*time.Second, 15*time.Second)

	for i := 0; i < 1000; i++ {
		wait := controller.thunderInterval()
		require.GreaterOrEqual(t, wait, 5*time.Second)
		require.LessOrEqual(t, wait, 15*time.Second)
	}

	// Equal bounds collapse to a fixed interval.
	fixed := NewStormController(environment.NewState(), new(stormRenderer), newTestCollector(),
		rand.New(rand.NewSource(7)), time.Minute, time.Second, time.Second)
	require.Equal(t, time.Second, fixed.thunderInterval())
}
