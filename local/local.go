// Package local provides an in-process mediarecord connection.
//
// For hosts compiled into the same binary as the runtime, this adapter
// exposes a *runtime.Runtime through the mediarecord.Connection
// interface with no serialization overhead.
package local

import (
	"context"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/program"
	"github.com/blockberries/mediarecord/runtime"
	"github.com/blockberries/mediarecord/types"
)

// Compile-time interface check.
var _ mediarecord.Connection = (*Connection)(nil)

// Connection wraps a local runtime.
type Connection struct {
	rt *runtime.Runtime
}

// NewConnection creates an in-process connection to rt.
func NewConnection(rt *runtime.Runtime) *Connection {
	return &Connection{rt: rt}
}

// NewMediaRecord creates a runtime hosting the media record program at
// programID and returns a connection to it.
func NewMediaRecord(programID types.Pubkey, opts ...runtime.Option) *Connection {
	opts = append([]runtime.Option{runtime.WithProgram(programID, program.New())}, opts...)
	return NewConnection(runtime.New(opts...))
}

func (c *Connection) Genesis(ctx context.Context, doc types.GenesisDoc) (types.GenesisResult, error) {
	return c.rt.Genesis(ctx, doc)
}

func (c *Connection) ExecuteBlock(ctx context.Context, block types.Block) (types.BlockOutcome, error) {
	return c.rt.ExecuteBlock(ctx, block)
}

func (c *Connection) Commit(ctx context.Context) (types.CommitResult, error) {
	return c.rt.Commit(ctx)
}

func (c *Connection) Simulate(ctx context.Context, tx types.Transaction) (types.TxOutcome, error) {
	return c.rt.Simulate(ctx, tx)
}

func (c *Connection) Account(ctx context.Context, key types.Pubkey) (types.AccountQueryResult, error) {
	return c.rt.Account(ctx, key)
}

func (c *Connection) OpenAccount(ctx context.Context, req types.OpenAccountRequest) error {
	return c.rt.OpenAccount(ctx, req)
}

func (c *Connection) Close() error { return c.rt.Close() }

// Runtime returns the underlying runtime for advanced use cases.
func (c *Connection) Runtime() *runtime.Runtime {
	return c.rt
}
