package models

// RitualPhase selects the guided mode for the time of day.
type RitualPhase int

const (
	PhaseNone RitualPhase = iota
	PhaseMorning
	PhaseEvening
)

// PhaseForHour maps an hour (0-23) to its ritual phase: mornings set
// intentions, evenings reflect.
func PhaseForHour(hour int) RitualPhase {
	switch {
	case hour >= 5 && hour <= 11:
		return PhaseMorning
	case hour >= 17 && hour <= 22:
		return PhaseEvening
	default:
		return PhaseNone
	}
}

// Greeting returns the header message for the phase.
func (p RitualPhase) Greeting() string {
	switch p {
	case PhaseMorning:
		return "Good morning — set today's intentions"
	case PhaseEvening:
		return "Evening review — reflect on your day"
	default:
		return "Daily goal tracker"
	}
}
