package render

import (
	"context"
	"time"

	"github.com/AuraMage11/Weather-script/internal/domain/environment"
)

// Renderer receives the outputs of the simulation core.
//
// Implementations own the lifecycle of whatever they create: rain emission
// must stop when the storm duration elapses and the resource must be
// released after an additional grace period, and a thunder effect must be
// released after a fixed linger delay. Errors are reported back so call
// sites can log them, but a failing renderer never stops the simulation.
type Renderer interface {
	// ApplyLightingProfile is invoked on every clock tick with the freshly
	// computed profile.
	ApplyLightingProfile(ctx context.Context, profile environment.LightingProfile) error
	// StartRain is invoked once per storm with the nominal storm duration.
	StartRain(ctx context.Context, duration time.Duration) error
	// PlayThunder is invoked once per thunder event.
	PlayThunder(ctx context.Context) error
}
