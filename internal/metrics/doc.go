// Package metrics provides the prometheus collectors of the simulation:
// counters for clock ticks, phase transitions, weather checks, storms and
// thunder events, and gauges for the current time of day, brightness and
// the shared day/storm flags.
package metrics
