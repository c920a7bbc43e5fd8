// Package types defines the data types shared by the media record
// program, its host runtime and the transports.
//
// These are plain Go structs with cramberry struct tags for
// deterministic binary serialization. Transport concerns
// (gRPC codec registration) are handled in the transport packages.
package types

import (
	"fmt"

	"github.com/mr-tron/base58"
)

// PubkeySize is the length of a public-key identifier in bytes.
const PubkeySize = 32

// Pubkey is a 32-byte public-key identifier. Accounts, programs and
// record owners are all addressed by a Pubkey.
type Pubkey [PubkeySize]byte

// Hash is a 32-byte cryptographic hash.
type Hash [32]byte

// String renders the key in base58, the conventional text form.
func (k Pubkey) String() string {
	return base58.Encode(k[:])
}

// IsZero reports whether every byte of the key is zero.
func (k Pubkey) IsZero() bool {
	return k == Pubkey{}
}

// ParsePubkey decodes a base58 string into a Pubkey.
func ParsePubkey(s string) (Pubkey, error) {
	var k Pubkey
	b, err := base58.Decode(s)
	if err != nil {
		return k, fmt.Errorf("parse pubkey %q: %w", s, err)
	}
	if len(b) != PubkeySize {
		return k, fmt.Errorf("parse pubkey %q: decoded %d bytes, want %d", s, len(b), PubkeySize)
	}
	copy(k[:], b)
	return k, nil
}

// MustParsePubkey is ParsePubkey for compile-time constants.
// It panics on malformed input.
func MustParsePubkey(s string) Pubkey {
	k, err := ParsePubkey(s)
	if err != nil {
		panic(err)
	}
	return k
}

// PubkeyFromBytes copies b into a Pubkey. It fails unless b is
// exactly PubkeySize bytes long.
func PubkeyFromBytes(b []byte) (Pubkey, error) {
	var k Pubkey
	if len(b) != PubkeySize {
		return k, fmt.Errorf("pubkey must be %d bytes, got %d", PubkeySize, len(b))
	}
	copy(k[:], b)
	return k, nil
}

// Well-known identifiers.
var (
	// SystemProgramID owns accounts that no program has claimed.
	SystemProgramID = MustParsePubkey("11111111111111111111111111111111")
	// SysvarOwnerID owns runtime-maintained sysvar accounts.
	SysvarOwnerID = MustParsePubkey("Sysvar1111111111111111111111111111111111111")
	// RentSysvarID is the address of the rent oracle account.
	RentSysvarID = MustParsePubkey("SysvarRent111111111111111111111111111111111")
)
