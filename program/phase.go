package program

import "fmt"

// phase is a step in the life of a single Process call.
type phase uint32

const (
	// phaseDecoding: instruction data is being parsed. No account has
	// been looked at.
	phaseDecoding phase = iota
	// phaseValidating: the handler is checking accounts and building
	// its write plan. Account data is read only.
	phaseValidating
	// phaseMutating: the dispatcher is applying the write plan.
	phaseMutating
	// phaseDone: the call has returned, with or without an error.
	phaseDone
)

func (p phase) String() string {
	switch p {
	case phaseDecoding:
		return "Decoding"
	case phaseValidating:
		return "Validating"
	case phaseMutating:
		return "Mutating"
	case phaseDone:
		return "Done"
	default:
		return fmt.Sprintf("unknown(%d)", p)
	}
}

// transitions lists the phases each phase may move to. Failure at
// Decoding or Validating skips Mutating entirely.
var transitions = map[phase][]phase{
	phaseDecoding:   {phaseValidating, phaseDone},
	phaseValidating: {phaseMutating, phaseDone},
	phaseMutating:   {phaseDone},
}

// call tracks the phase of one Process invocation.
type call struct {
	phase phase
}

func (c *call) canAdvance(to phase) bool {
	for _, next := range transitions[c.phase] {
		if next == to {
			return true
		}
	}
	return false
}

// advance moves the call to the next phase. Panics on a transition not
// in the table; Process recovers it.
func (c *call) advance(to phase) {
	if !c.canAdvance(to) {
		panic(fmt.Sprintf("mediarecord/program: phase %s -> %s not allowed", c.phase, to))
	}
	c.phase = to
}
