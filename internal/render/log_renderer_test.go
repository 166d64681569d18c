package render

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
)

// eventRecorder collects lifecycle events from a LogRenderer test hook.
type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) record(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.events = append(r.events, event)
}

func (r *eventRecorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string(nil), r.events...)
}

// TestLogRendererRainLifecycle verifies the two-step rain cleanup:
// emission stops at the storm duration, the resource is released after the
// grace period, in that order.
func TestLogRendererRainLifecycle(t *testing.T) {
	t.Parallel()

	recorder := new(eventRecorder)
	renderer := NewLogRenderer(30*time.Millisecond, time.Millisecond)
	renderer.onEvent = recorder.record

	defer renderer.Close()

	require.NoError(t, renderer.StartRain(context.Background(), 30*time.Millisecond))

	assert.Eventually(t, func() bool {
		events := recorder.snapshot()
		return len(events) == 3 &&
			events[0] == eventRainStarted &&
			events[1] == eventRainStopped &&
			events[2] == eventRainReleased
	}, time.Second, 5*time.Millisecond)
}

// TestLogRendererThunderRelease verifies the thunder resource is released
// after the linger delay.
func TestLogRendererThunderRelease(t *testing.T) {
	t.Parallel()

	recorder := new(eventRecorder)
	renderer := NewLogRenderer(time.Millisecond, 20*time.Millisecond)
	renderer.onEvent = recorder.record

	defer renderer.Close()

	require.NoError(t, renderer.PlayThunder(context.Background()))
	require.Equal(t, []string{eventThunder}, recorder.snapshot())

	assert.Eventually(t, func() bool {
		events := recorder.snapshot()
		return len(events) == 2 && events[1] == eventThunderFreed
	}, time.Second, 5*time.Millisecond)
}

// TestLogRendererCloseCancelsCleanup ensures pending timers never fire
// after Close.
func TestLogRendererCloseCancelsCleanup(t *testing.T) {
	t.Parallel()

	recorder := new(eventRecorder)
	renderer := NewLogRenderer(time.Hour, time.Hour)
	renderer.onEvent = recorder.record

	require.NoError(t, renderer.StartRain(context.Background(), time.Hour))
	require.NoError(t, renderer.PlayThunder(context.Background()))
	renderer.Close()

	time.Sleep(20 * time.Millisecond)
	require.Equal(t, []string{eventRainStarted, eventThunder}, recorder.snapshot())

	// Scheduling after Close is a no-op.
	require.NoError(t, renderer.PlayThunder(context.Background()))
}

// TestLogRendererApplyLightingProfile ensures lighting application reports
// no error and fires the hook.
func TestLogRendererApplyLightingProfile(t *testing.T) {
	t.Parallel()

	recorder := new(eventRecorder)
	renderer := NewLogRenderer(time.Millisecond, time.Millisecond)
	renderer.onEvent = recorder.record

	defer renderer.Close()

	profile := environment.ComputeLightingProfile(12)
	require.NoError(t, renderer.ApplyLightingProfile(context.Background(), profile))
	require.Equal(t, []string{eventLighting}, recorder.snapshot())
}
