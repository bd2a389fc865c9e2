package gen

// Phase is a step of the per-class emission sequence
// Idle → Header → Implementation → Binding → Done.
type Phase uint8

// Emission phases.
const (
	PhaseIdle Phase = iota
	PhaseHeader
	PhaseImplementation
	PhaseBinding
	PhaseDone
)

var phaseNames = [...]string{
	PhaseIdle:           "idle",
	PhaseHeader:         "header",
	PhaseImplementation: "implementation",
	PhaseBinding:        "binding",
	PhaseDone:           "done",
}

// String implements the fmt.Stringer interface.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

// next returns the phase following p. Done is terminal.
func (p Phase) next() Phase {
	if p >= PhaseDone {
		return PhaseDone
	}
	return p + 1
}
