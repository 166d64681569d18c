// Package weather runs the probabilistic weather of the simulation.
//
// The Scheduler polls the shared environment state on a fixed interval
// and, when it is day and no storm is active, rolls against the configured
// storm probability. On success it runs the StormController synchronously:
// the controller starts the rain effect, emits thunder at randomized
// intervals for the storm duration, and clears the storm flag when done.
// Because the scheduler blocks on the controller, storms can never overlap.
package weather
