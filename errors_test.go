package mediarecord

import (
	"errors"
	"fmt"
	"testing"
)

func TestError(t *testing.T) {
	err := Errorf(BufferTooSmall, "need %d bytes, have %d", 82, 64)
	if err.Kind != BufferTooSmall {
		t.Errorf("expected kind BufferTooSmall, got %s", err.Kind)
	}

	expected := "BufferTooSmall: need 82 bytes, have 64"
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}

	bare := &Error{Kind: Unauthorized}
	if bare.Error() != "Unauthorized" {
		t.Errorf("expected bare kind name, got %q", bare.Error())
	}
}

func TestKindOf(t *testing.T) {
	err := Errorf(Unauthorized, "signer is not the record owner")

	// Direct.
	k, ok := KindOf(err)
	if !ok {
		t.Fatal("expected KindOf to return true")
	}
	if k != Unauthorized {
		t.Errorf("expected Unauthorized, got %s", k)
	}

	// Wrapped.
	wrapped := fmt.Errorf("instruction 0: %w", err)
	if !IsKind(wrapped, Unauthorized) {
		t.Fatal("expected IsKind to unwrap wrapped error")
	}
	if IsKind(wrapped, InvalidAccountData) {
		t.Fatal("expected IsKind to reject a different kind")
	}

	// Non-program error.
	if _, ok := KindOf(errors.New("just a regular error")); ok {
		t.Fatal("expected KindOf to return false for a plain error")
	}

	// Nil.
	if _, ok := KindOf(nil); ok {
		t.Fatal("expected KindOf to return false for nil")
	}
}

func TestWrap_Unwrap(t *testing.T) {
	cause := errors.New("length prefix overruns buffer")
	err := Wrap(MalformedRecord, cause, "decode record")

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the cause")
	}
	if err.Error() != "MalformedRecord: decode record" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestErrorKind_String(t *testing.T) {
	kinds := map[ErrorKind]string{
		InvalidInstructionData:    "InvalidInstructionData",
		MalformedRecord:           "MalformedRecord",
		FieldTooLarge:             "FieldTooLarge",
		AccountAlreadyInitialized: "AccountAlreadyInitialized",
		BufferTooSmall:            "BufferTooSmall",
		InsufficientFunds:         "InsufficientFunds",
		Unauthorized:              "Unauthorized",
		InvalidAccountData:        "InvalidAccountData",
		ErrorKind(99):             "unknown(99)",
	}
	for k, want := range kinds {
		if got := k.String(); got != want {
			t.Errorf("ErrorKind(%d).String() = %q, want %q", uint32(k), got, want)
		}
	}
}
