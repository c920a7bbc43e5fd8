package mediarecord

import (
	"errors"
	"fmt"
)

// ErrorKind is a stable category for a failed instruction. The numeric
// value is reported as the outcome code by hosts, so values must never
// be renumbered.
type ErrorKind uint32

const (
	InvalidInstructionData    ErrorKind = 1
	MalformedRecord           ErrorKind = 2
	FieldTooLarge             ErrorKind = 3
	AccountAlreadyInitialized ErrorKind = 4
	BufferTooSmall            ErrorKind = 5
	InsufficientFunds         ErrorKind = 6
	Unauthorized              ErrorKind = 7
	InvalidAccountData        ErrorKind = 8
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidInstructionData:
		return "InvalidInstructionData"
	case MalformedRecord:
		return "MalformedRecord"
	case FieldTooLarge:
		return "FieldTooLarge"
	case AccountAlreadyInitialized:
		return "AccountAlreadyInitialized"
	case BufferTooSmall:
		return "BufferTooSmall"
	case InsufficientFunds:
		return "InsufficientFunds"
	case Unauthorized:
		return "Unauthorized"
	case InvalidAccountData:
		return "InvalidAccountData"
	default:
		return fmt.Sprintf("unknown(%d)", uint32(k))
	}
}

// Error is the structured error returned by every failing instruction.
//
// Callers should branch on Kind; Message is for humans and may change.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Message == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

// Errorf creates an *Error of the given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error of the given kind around cause.
func Wrap(kind ErrorKind, cause error, msg string) *Error {
	return &Error{Kind: kind, Message: msg, Cause: cause}
}

// KindOf extracts the ErrorKind from err. It returns false when err is
// nil or does not wrap an *Error.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind ErrorKind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}
