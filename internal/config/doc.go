// Package config defines the simulation settings used by the weather-sim
// binaries and provides helpers to load, validate and save them in YAML
// format.
//
// The Config type holds the day/night cycle timing, the weather scheduler
// parameters and the HTTP listen address. All durations and the storm
// probability are validated before any simulation loop starts.
package config
