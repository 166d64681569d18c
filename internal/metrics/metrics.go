package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Collector holds the prometheus instruments of the simulation.
type Collector struct {
	// ClockTicks counts day/night clock ticks.
	ClockTicks prometheus.Counter
	// PhaseTransitions counts phase flips by the phase being entered.
	PhaseTransitions *prometheus.CounterVec
	// WeatherChecks counts scheduler polls by outcome.
	WeatherChecks *prometheus.CounterVec
	// StormsStarted counts storms that began.
	StormsStarted prometheus.Counter
	// StormsCompleted counts storms that ran to their natural end.
	StormsCompleted prometheus.Counter
	// ThunderEvents counts thunder claps emitted.
	ThunderEvents prometheus.Counter

	// TimeOfDay is the current simulated clock value in hours.
	TimeOfDay prometheus.Gauge
	// Brightness is the brightness of the latest lighting profile.
	Brightness prometheus.Gauge
	// DayActive is 1 during the day phase and 0 at night.
	DayActive prometheus.Gauge
	// StormActive is 1 while a storm is running.
	StormActive prometheus.Gauge
}

// Weather check outcomes used as the label of WeatherChecks.
const (
	CheckOutcomeSkipped   = "skipped"
	CheckOutcomeNoStorm   = "no_storm"
	CheckOutcomeTriggered = "triggered"
)

// NewCollector registers the simulation instruments on the provided
// registerer. Tests pass a fresh registry to avoid duplicate registration.
func NewCollector(namespace string, reg prometheus.Registerer) *Collector {
	factory := promauto.With(reg)

	return &Collector{
		ClockTicks: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "clock_ticks_total",
			Help:      "Total number of day/night clock ticks",
		}),

		PhaseTransitions: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "phase_transitions_total",
			Help:      "Total number of day/night phase flips by entered phase",
		}, []string{"phase"}),

		WeatherChecks: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "weather_checks_total",
			Help:      "Total number of weather scheduler polls by outcome",
		}, []string{"outcome"}),

		StormsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storms_started_total",
			Help:      "Total number of storms started",
		}),

		StormsCompleted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "storms_completed_total",
			Help:      "Total number of storms that ran to completion",
		}),

		ThunderEvents: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "thunder_events_total",
			Help:      "Total number of thunder events emitted",
		}),

		TimeOfDay: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "time_of_day_hours",
			Help:      "Current simulated time of day in hours",
		}),

		Brightness: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "brightness",
			Help:      "Brightness of the latest lighting profile",
		}),

		DayActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "day_active",
			Help:      "Whether the simulation is currently in the day phase",
		}),

		StormActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "storm_active",
			Help:      "Whether a storm is currently running",
		}),
	}
}
