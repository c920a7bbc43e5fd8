// Package program implements the media record program: it decodes an
// instruction, validates the accounts it names, and applies at most one
// write to the target account.
//
// Every call moves through Decoding, Validating, Mutating and Done.
// No account byte changes before Mutating, so any failure leaves every
// buffer exactly as the host supplied it.
package program

import (
	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/instruction"
	"github.com/blockberries/mediarecord/types"
)

// Compile-time interface checks.
var (
	_ mediarecord.Program          = (*Program)(nil)
	_ mediarecord.InstructionNamer = (*Program)(nil)
)

// Program is the media record program. The zero value is not usable;
// call New.
type Program struct {
	handlers map[instruction.Opcode]handler
}

// New returns a Program with its dispatch table built.
func New() *Program {
	return &Program{handlers: dispatchTable()}
}

// Process executes one instruction. The returned error is always nil
// or a *mediarecord.Error.
func (p *Program) Process(programID types.Pubkey, accounts []*types.AccountInfo, data []byte) (err error) {
	c := &call{phase: phaseDecoding}
	defer func() {
		if r := recover(); r != nil {
			err = mediarecord.Errorf(mediarecord.InvalidAccountData, "panic in phase %s: %v", c.phase, r)
		}
	}()

	ix, err := instruction.Decode(data)
	if err != nil {
		c.advance(phaseDone)
		return err
	}

	c.advance(phaseValidating)
	h, ok := p.handlers[ix.Opcode()]
	if !ok {
		c.advance(phaseDone)
		return mediarecord.Errorf(mediarecord.InvalidInstructionData, "no handler for %s", ix.Opcode())
	}
	w, err := h(programID, accounts, ix)
	if err != nil {
		c.advance(phaseDone)
		return err
	}

	c.advance(phaseMutating)
	if err := w.apply(accounts); err != nil {
		c.advance(phaseDone)
		return err
	}
	c.advance(phaseDone)
	return nil
}

// InstructionName returns the opcode name of data.
func (p *Program) InstructionName(data []byte) string {
	return instruction.Name(data)
}

// ProcessInstruction runs data through a freshly built Program.
func ProcessInstruction(programID types.Pubkey, accounts []*types.AccountInfo, data []byte) error {
	return New().Process(programID, accounts, data)
}
