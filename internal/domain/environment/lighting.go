package environment

import (
	"fmt"
	"math"
)

// Phase is the day or night half of the cycle.
type Phase string

const (
	// PhaseDay is the daylight half of the cycle.
	PhaseDay Phase = "day"
	// PhaseNight is the dark half of the cycle.
	PhaseNight Phase = "night"
)

// Opposite returns the other phase.
func (p Phase) Opposite() Phase {
	if p == PhaseDay {
		return PhaseNight
	}

	return PhaseDay
}

// HoursPerCycle is the span of the simulated clock. Time-of-day values
// live in [0, HoursPerCycle) and wrap modulo this constant.
const HoursPerCycle = 24.0

// Brightness bounds of a lighting profile.
const (
	MinBrightness = 1.0
	MaxBrightness = 4.0
)

// NightStartHour is where the night phase picks up the simulated clock.
// Night continues from 18:00 through the wrap-around regardless of how
// long the night phase lasts in real time.
const NightStartHour = 18.0

// RGB is a color triple with channels in [0,255].
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// LightingProfile is an immutable snapshot of the derived lighting
// parameters for one time-of-day value. It is recomputed every clock tick
// and never mutated in place.
type LightingProfile struct {
	// Brightness is the light level, clamped to [MinBrightness, MaxBrightness].
	Brightness float64 `json:"brightness"`
	// AmbientColor is the indoor ambient color.
	AmbientColor RGB `json:"ambientColor"`
	// OutdoorAmbientColor is the outdoor ambient color.
	OutdoorAmbientColor RGB `json:"outdoorAmbientColor"`
	// ClockString is the time of day formatted as HH:MM:00.
	ClockString string `json:"clockString"`
}

// NormalizeHour wraps an hour value into [0, HoursPerCycle).
func NormalizeHour(hour float64) float64 {
	hour = math.Mod(hour, HoursPerCycle)
	if hour < 0 {
		hour += HoursPerCycle
	}

	return hour
}

// FormatClock renders a time-of-day value as HH:MM:00.
// Seconds are always zero: the clock only has hour/minute resolution.
func FormatClock(timeOfDay float64) string {
	t := NormalizeHour(timeOfDay)
	hour := int(t)
	minute := int((t - float64(hour)) * 60)

	return fmt.Sprintf("%02d:%02d:00", hour, minute)
}

// ComputeLightingProfile maps a time-of-day value to a lighting profile.
// It is a pure function defined piecewise over five intervals: night,
// a two-hour dawn ramp, day, a two-hour dusk ramp, and night again.
func ComputeLightingProfile(timeOfDay float64) LightingProfile {
	t := NormalizeHour(timeOfDay)

	var (
		brightness float64
		ambient    RGB
		outdoor    RGB
	)

	switch {
	case t < 6:
		brightness = MinBrightness
		ambient = RGB{R: 20, G: 20, B: 40}
		outdoor = RGB{R: 20, G: 20, B: 40}
	case t < 8:
		// Dawn: ramp from 1 up to 4 over two hours.
		brightness = clampBrightness((t - 6) / 2 * MaxBrightness)
		ambient = RGB{R: 40, G: 40, B: 60}
		outdoor = RGB{R: 40, G: 40, B: 60}
	case t < 18:
		brightness = MaxBrightness
		ambient = RGB{R: 100, G: 100, B: 120}
		outdoor = RGB{R: 120, G: 120, B: 140}
	case t < 20:
		// Dusk: ramp from 4 down to 1 over two hours.
		brightness = clampBrightness(MaxBrightness - (t-18)/2*(MaxBrightness-MinBrightness))
		ambient = RGB{R: 80, G: 60, B: 80}
		outdoor = RGB{R: 80, G: 60, B: 80}
	default:
		brightness = MinBrightness
		ambient = RGB{R: 20, G: 20, B: 40}
		outdoor = RGB{R: 20, G: 20, B: 40}
	}

	return LightingProfile{
		Brightness:          brightness,
		AmbientColor:        ambient,
		OutdoorAmbientColor: outdoor,
		ClockString:         FormatClock(t),
	}
}

// clampBrightness limits a brightness value to [MinBrightness, MaxBrightness].
func clampBrightness(v float64) float64 {
	if v < MinBrightness {
		return MinBrightness
	}

	if v > MaxBrightness {
		return MaxBrightness
	}

	return v
}
