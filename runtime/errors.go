package runtime

import (
	"errors"

	"github.com/blockberries/mediarecord"
)

// Runtime rejections. A transaction failing with one of these reports
// the matching outcome code.
var (
	// ErrLifecycle is returned when a call arrives in the wrong
	// lifecycle state (e.g. Commit before ExecuteBlock).
	ErrLifecycle = errors.New("runtime: lifecycle violation")

	ErrInvalidTransaction  = errors.New("runtime: invalid transaction")
	ErrInvalidSignature    = errors.New("runtime: invalid signature")
	ErrMissingSignature    = errors.New("runtime: missing signature")
	ErrUnknownProgram      = errors.New("runtime: unknown program")
	ErrIllegalModification = errors.New("runtime: illegal account modification")
	ErrProgramFailed       = errors.New("runtime: program failed")

	ErrInvalidBlock   = errors.New("runtime: invalid block")
	ErrAccountExists  = errors.New("runtime: account already exists")
	ErrInvalidRequest = errors.New("runtime: invalid request")
)

// Outcome codes. 0 is success and 1..99 carry a mediarecord.ErrorKind.
const (
	CodeOK                  uint32 = 0
	CodeInvalidTransaction  uint32 = 100
	CodeInvalidSignature    uint32 = 101
	CodeMissingSignature    uint32 = 102
	CodeUnknownProgram      uint32 = 103
	CodeIllegalModification uint32 = 104
	CodeProgramFailed       uint32 = 105
)

// OutcomeCode maps a transaction error to the code reported in its
// TxOutcome.
func OutcomeCode(err error) uint32 {
	if err == nil {
		return CodeOK
	}
	if kind, ok := mediarecord.KindOf(err); ok {
		return uint32(kind)
	}
	switch {
	case errors.Is(err, ErrInvalidSignature):
		return CodeInvalidSignature
	case errors.Is(err, ErrMissingSignature):
		return CodeMissingSignature
	case errors.Is(err, ErrUnknownProgram):
		return CodeUnknownProgram
	case errors.Is(err, ErrIllegalModification):
		return CodeIllegalModification
	case errors.Is(err, ErrInvalidTransaction):
		return CodeInvalidTransaction
	default:
		return CodeProgramFailed
	}
}
