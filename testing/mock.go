// Package mediatest provides test utilities for mediarecord hosts and
// programs, including a configurable mock program, a test harness and
// a compliance suite for connections.
package mediatest

import (
	"sync/atomic"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"
)

// Compile-time check that MockProgram satisfies all interfaces.
var (
	_ mediarecord.Program          = (*MockProgram)(nil)
	_ mediarecord.InstructionNamer = (*MockProgram)(nil)
)

// MockProgram is a configurable program for host testing. Unconfigured
// methods succeed without touching any account.
type MockProgram struct {
	// Configurable handlers. If nil, defaults are used.
	ProcessFn func(programID types.Pubkey, accounts []*types.AccountInfo, data []byte) error
	NameFn    func(data []byte) string

	// Call counters (atomic for concurrent access).
	ProcessCalls atomic.Int64
	NameCalls    atomic.Int64
}

func (m *MockProgram) Process(programID types.Pubkey, accounts []*types.AccountInfo, data []byte) error {
	m.ProcessCalls.Add(1)
	if m.ProcessFn != nil {
		return m.ProcessFn(programID, accounts, data)
	}
	return nil
}

func (m *MockProgram) InstructionName(data []byte) string {
	m.NameCalls.Add(1)
	if m.NameFn != nil {
		return m.NameFn(data)
	}
	return "mock"
}

// WriteFirstByte returns a ProcessFn that stores data[0] at offset 0 of
// the first account, or fails with InvalidInstructionData when data is
// empty.
func WriteFirstByte() func(types.Pubkey, []*types.AccountInfo, []byte) error {
	return func(_ types.Pubkey, accounts []*types.AccountInfo, data []byte) error {
		if len(data) == 0 {
			return mediarecord.Errorf(mediarecord.InvalidInstructionData, "empty")
		}
		if len(accounts) == 0 || len(accounts[0].Data) == 0 {
			return mediarecord.Errorf(mediarecord.InvalidAccountData, "no writable buffer")
		}
		accounts[0].Data[0] = data[0]
		return nil
	}
}
