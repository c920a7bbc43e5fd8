package program

import (
	"fmt"

	"github.com/blockberries/mediarecord/instruction"
	"github.com/blockberries/mediarecord/types"
)

// handler validates one decoded instruction and returns the write that
// carries it out. Handlers never mutate accounts.
type handler func(programID types.Pubkey, accounts []*types.AccountInfo, ix instruction.Instruction) (write, error)

func dispatchTable() map[instruction.Opcode]handler {
	return map[instruction.Opcode]handler{
		instruction.OpCreateRecord:   handleCreate,
		instruction.OpTransferRecord: handleTransfer,
	}
}

func handleCreate(programID types.Pubkey, accounts []*types.AccountInfo, ix instruction.Instruction) (write, error) {
	create, ok := ix.(instruction.CreateRecord)
	if !ok {
		panic(fmt.Sprintf("mediarecord/program: create handler got %T", ix))
	}
	target, rent, err := createAccounts(programID, accounts)
	if err != nil {
		return write{}, err
	}
	return planCreate(target, rent, create)
}

func handleTransfer(programID types.Pubkey, accounts []*types.AccountInfo, ix instruction.Instruction) (write, error) {
	transfer, ok := ix.(instruction.TransferRecord)
	if !ok {
		panic(fmt.Sprintf("mediarecord/program: transfer handler got %T", ix))
	}
	target, signer, err := transferAccounts(programID, accounts)
	if err != nil {
		return write{}, err
	}
	return planTransfer(target, signer, transfer)
}
