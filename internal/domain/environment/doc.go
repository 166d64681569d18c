// Package environment contains the core domain types of the simulation.
//
// It defines the time-of-day model (Phase, clock formatting), the pure
// lighting profile computation, and the shared State read by the weather
// scheduler and written by the day/night clock and the storm controller.
package environment
