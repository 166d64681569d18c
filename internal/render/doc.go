// Package render defines the collaborator boundary of the simulation.
//
// The core loops hand numeric lighting values and storm signals to a
// Renderer; an implementation applies them to an actual lighting, particle
// and audio subsystem. The package ships LogRenderer, which records every
// event to the structured log and models the deferred resource cleanup the
// contract requires (stop emitting, wait a grace period, release).
package render
