// Package simulator is the composition root of the weather-sim binary.
//
// It loads and validates the configuration, builds the shared state, the
// renderer, the metrics collector and the two simulation loops, starts the
// HTTP observation endpoint, and blocks until the context is canceled.
package simulator
