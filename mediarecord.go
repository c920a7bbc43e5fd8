// Package mediarecord stores media records inside fixed-capacity
// accounts owned by a host runtime, and transfers them between owners.
//
// The core [Program] interface is what a host invokes once per
// instruction. Hosts are reached through a [Connection], which is
// implemented both in-process (package local) and over gRPC (package
// mediagrpc).
//
// Optional program capabilities such as [InstructionNamer] are
// discovered via Go type assertion when a program is registered.
package mediarecord

import (
	"context"

	"github.com/blockberries/mediarecord/types"
)

// Program processes a single instruction against an ordered list of
// accounts supplied by the host.
//
// The host guarantees the following:
//  1. accounts is a fresh, call-scoped copy; the program may mutate
//     Data in place and the host decides afterwards whether to keep it.
//  2. Process is never called concurrently on the same account set.
//
// A Program must not retain accounts past the call and must not
// resize any Data buffer. On error the host discards every mutation.
type Program interface {
	Process(programID types.Pubkey, accounts []*types.AccountInfo, data []byte) error
}

// InstructionNamer lets a host label the events it emits for an
// instruction. Programs that do not implement it get a generic label.
type InstructionNamer interface {
	// InstructionName returns a short snake_case name for data, or ""
	// if data does not decode.
	InstructionName(data []byte) string
}

// ProgramFunc adapts an ordinary function to the Program interface.
type ProgramFunc func(programID types.Pubkey, accounts []*types.AccountInfo, data []byte) error

// Process calls f.
func (f ProgramFunc) Process(programID types.Pubkey, accounts []*types.AccountInfo, data []byte) error {
	return f(programID, accounts, data)
}

// Connection represents a transport-agnostic connection to a host
// runtime. Both gRPC clients and in-process adapters implement this.
//
// The host guarantees the following call order:
//  1. Genesis is called exactly once, before anything else.
//  2. Commit is called exactly once after each ExecuteBlock.
//  3. Simulate, Account and OpenAccount may be called concurrently at
//     any time after Genesis.
type Connection interface {
	// Genesis loads the initial ledger and returns its fingerprint.
	Genesis(ctx context.Context, doc types.GenesisDoc) (types.GenesisResult, error)

	// ExecuteBlock runs every transaction in order against a staged
	// copy of the ledger. Each transaction is atomic: a failing
	// instruction discards every write made by the same transaction.
	//
	// Nothing becomes visible to Account or Simulate until Commit.
	ExecuteBlock(ctx context.Context, block types.Block) (types.BlockOutcome, error)

	// Commit makes the staged ledger from the last ExecuteBlock visible.
	Commit(ctx context.Context) (types.CommitResult, error)

	// Simulate dry-runs a transaction against the committed ledger
	// without persisting any changes.
	//
	// This method MUST be safe for concurrent use.
	Simulate(ctx context.Context, tx types.Transaction) (types.TxOutcome, error)

	// Account reads one committed account.
	//
	// This method MUST be safe for concurrent use.
	Account(ctx context.Context, key types.Pubkey) (types.AccountQueryResult, error)

	// OpenAccount creates a zeroed account with a fixed data capacity.
	// The capacity never changes afterwards.
	OpenAccount(ctx context.Context, req types.OpenAccountRequest) error

	// Close terminates the connection.
	Close() error
}
