// Package simtime models the clock and weather inputs the town core
// consumes from its host: hours/minutes/phase/turn counter, and a weather
// snapshot carrying a rain intensity in [0,1].
package simtime

// ClockPhase is the coarse day/night class the host reports.
type ClockPhase string

const (
	Dawn  ClockPhase = "dawn"
	Day   ClockPhase = "day"
	Dusk  ClockPhase = "dusk"
	Night ClockPhase = "night"
)

// Behavior is the coarse behavioral phase role handlers branch on, derived
// from ClockPhase.
type Behavior string

const (
	Morning Behavior = "morning"
	BDay    Behavior = "day"
	Evening Behavior = "evening"
)

// Clock is the host-supplied time snapshot for one tick.
type Clock struct {
	Hours       int
	Minutes     int
	Phase       ClockPhase
	TurnCounter int
}

// MinuteOfDay returns minutes since midnight, [0, 1440).
func (c Clock) MinuteOfDay() int {
	m := c.Hours*60 + c.Minutes
	return ((m % 1440) + 1440) % 1440
}

// Behavior derives the coarse behavioral phase from ClockPhase: dawn
// becomes morning, dusk and night both become evening, everything else is
// treated as plain day.
func (c Clock) Behavior() Behavior {
	switch c.Phase {
	case Dawn:
		return Morning
	case Dusk, Night:
		return Evening
	default:
		return BDay
	}
}

// InLateWindow reports whether the clock falls in [02:00, 05:00), the dead
// of night when actors prefer to be indoors rather than out wandering.
func (c Clock) InLateWindow() bool {
	m := c.MinuteOfDay()
	return m >= 2*60 && m < 5*60
}

// InEveningReturnWindow reports whether the clock falls in [18:00, 21:00),
// the evening rush when everyone is heading home and the path budget gets
// a boost to keep up.
func (c Clock) InEveningReturnWindow() bool {
	m := c.MinuteOfDay()
	return m >= 18*60 && m < 21*60
}

// Weather is the host-supplied weather snapshot.
type Weather struct {
	Intensity float64 // [0,1]
}

// IsRainy reports intensity >= 0.35.
func (w Weather) IsRainy() bool { return w.Intensity >= 0.35 }

// IsHeavyRain reports intensity >= 0.75.
func (w Weather) IsHeavyRain() bool { return w.Intensity >= 0.75 }
