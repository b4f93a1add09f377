package conversation

// Phase identifies one of the five ordered onboarding stages. Within a
// session the phase only moves forward, one stage at a time.
type Phase int

const (
	PhaseEducation Phase = iota + 1
	PhaseExperience
	PhasePreferences
	PhaseLocation
	PhaseConfirmation
)

const (
	MinPhase = PhaseEducation
	MaxPhase = PhaseConfirmation
)

var phaseLabels = map[Phase]string{
	PhaseEducation:    "Background & Education",
	PhaseExperience:   "Work Experience",
	PhasePreferences:  "Job Preferences",
	PhaseLocation:     "Location & Salary",
	PhaseConfirmation: "Final Details",
}

// Clamp forces the phase into the valid 1..5 range.
func (p Phase) Clamp() Phase {
	if p < MinPhase {
		return MinPhase
	}
	if p > MaxPhase {
		return MaxPhase
	}
	return p
}

func (p Phase) Valid() bool {
	return p >= MinPhase && p <= MaxPhase
}

// Label returns the human-readable stage name shown in progress UIs.
func (p Phase) Label() string {
	return phaseLabels[p.Clamp()]
}

// Tracker resolves which phase the next assistant turn should address. The
// session owns the phase across turns and supplies it explicitly; the tracker
// validates it and reconciles it with what the model reports. Out-of-range
// input is clamped rather than rejected.
type Tracker struct{}

// Next returns the phase the next assistant turn should question the user
// about, given the session's current phase.
func (Tracker) Next(current Phase) Phase {
	return current.Clamp()
}

// Advance reconciles the session phase with the phase marker the model
// reported. The result never moves backward and never skips ahead by more
// than one stage, so a stray or malformed marker cannot regress or
// fast-forward the conversation.
func (Tracker) Advance(current, reported Phase) Phase {
	current = current.Clamp()
	if reported.Clamp() <= current {
		return current
	}
	return (current + 1).Clamp()
}
