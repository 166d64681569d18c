package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	httpapi "github.com/AuraMage11/Weather-script/internal/api/http"
	"github.com/AuraMage11/Weather-script/internal/config"
	"github.com/AuraMage11/Weather-script/internal/domain/environment"
	"github.com/AuraMage11/Weather-script/internal/logger"
	"github.com/AuraMage11/Weather-script/internal/metrics"
	"github.com/AuraMage11/Weather-script/internal/render"
	"github.com/AuraMage11/Weather-script/internal/service/daynight"
	"github.com/AuraMage11/Weather-script/internal/service/weather"
)

// Options controls the weather-sim process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// ListenAddress provides an optional listen address override for the
	// HTTP observation endpoint.
	ListenAddress string
}

// Run starts the simulation and blocks until the context is canceled.
// Configuration problems are fatal before any loop starts; once running,
// only a failing HTTP listener can abort the process.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "weather-sim")

	// Load settings from configuration file. Validation rejects the
	// non-positive durations and out-of-range probabilities the loops
	// cannot tolerate.
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	// Determine listen address: command line argument overrides config.
	listenAddress := cfg.ListenAddress
	if opts.ListenAddress != "" {
		listenAddress = opts.ListenAddress
	}

	// A configured seed makes the weather reproducible.
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	rng := rand.New(rand.NewSource(seed)) //nolint:gosec // Simulation jitter, not cryptography.

	state := environment.NewState()
	collector := metrics.NewCollector("weather_sim", prometheus.DefaultRegisterer)

	renderer := render.NewLogRenderer(cfg.RainGracePeriod, cfg.ThunderLinger)
	defer renderer.Close()

	clock := daynight.NewClock(state, renderer, collector,
		cfg.DayLength, cfg.NightLength, cfg.TimeStep)

	controller := weather.NewStormController(state, renderer, collector, rng,
		cfg.StormDuration, cfg.ThunderIntervalMin, cfg.ThunderIntervalMax)
	scheduler := weather.NewScheduler(state, controller, collector, rng,
		cfg.WeatherCheckInterval, cfg.StormProbability)

	logger.InfoKV(ctx, "Simulation starting",
		"listen_address", listenAddress,
		"storm_probability", cfg.StormProbability,
		"seed", seed)

	// The loops stop together: a failing HTTP listener cancels them, and
	// an outside signal cancels everything through the parent context.
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var wg sync.WaitGroup

	wg.Add(2)

	go func() {
		defer wg.Done()

		if err := clock.Run(runCtx); err != nil {
			logger.ErrorKV(runCtx, "Clock stopped with error", "error", err)
		}
	}()

	go func() {
		defer wg.Done()

		if err := scheduler.Run(runCtx); err != nil {
			logger.ErrorKV(runCtx, "Scheduler stopped with error", "error", err)
		}
	}()

	apiErr := httpapi.NewServer(listenAddress, state).Run(runCtx)

	cancel()
	wg.Wait()

	if apiErr != nil {
		return fmt.Errorf("observation endpoint: %w", apiErr)
	}

	logger.Info(ctx, "Simulation stopped")

	return nil
}
