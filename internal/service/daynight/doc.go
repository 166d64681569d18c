// Package daynight runs the day/night clock of the simulation: it advances
// the simulated time of day on a fixed tick, alternates day and night
// phases of configurable real-time length, and hands a freshly computed
// lighting profile to the renderer on every tick.
package daynight
