package environment

import (
	"sync"
	"time"
)

// State is the shared coordination surface of the simulation.
// The day/night clock writes the phase and the time of day, the storm
// controller writes the storm flag, and the weather scheduler and the
// status endpoint read all of it. The loops run on separate goroutines,
// so access is guarded by a mutex.
type State struct {
	// mu protects concurrent access to the environment state.
	mu sync.RWMutex
	// phase is the current half of the day/night cycle.
	phase Phase
	// timeOfDay is the simulated clock value in [0, HoursPerCycle).
	timeOfDay float64
	// isStorm reports whether a storm is currently active.
	isStorm bool
	// stormEndsAt is the nominal end of the active storm, zero otherwise.
	stormEndsAt time.Time
}

// Snapshot is a point-in-time copy of the shared state.
type Snapshot struct {
	// Phase is the current half of the day/night cycle.
	Phase Phase
	// TimeOfDay is the simulated clock value in [0, HoursPerCycle).
	TimeOfDay float64
	// IsStorm reports whether a storm is currently active.
	IsStorm bool
	// StormEndsAt is the nominal end of the active storm, zero otherwise.
	StormEndsAt time.Time
}

// IsDay reports whether the snapshot was taken during the day phase.
func (s Snapshot) IsDay() bool {
	return s.Phase == PhaseDay
}

// NewState returns the initial shared state: day phase, midnight clock,
// no storm.
func NewState() *State {
	return &State{
		phase: PhaseDay,
	}
}

// SetClock records the phase and the time of day of the latest clock tick.
func (s *State) SetClock(phase Phase, timeOfDay float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = phase
	s.timeOfDay = NormalizeHour(timeOfDay)
}

// SetStorm marks a storm as active until the provided nominal end time.
func (s *State) SetStorm(endsAt time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isStorm = true
	s.stormEndsAt = endsAt
}

// ClearStorm marks the storm as over.
func (s *State) ClearStorm() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.isStorm = false
	s.stormEndsAt = time.Time{}
}

// Snapshot returns a copy of the current state to avoid leaking internal
// references.
func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return Snapshot{
		Phase:       s.phase,
		TimeOfDay:   s.timeOfDay,
		IsStorm:     s.isStorm,
		StormEndsAt: s.stormEndsAt,
	}
}
