package instruction

import (
	"fmt"

	"github.com/blockberries/mediarecord/record"
	"github.com/blockberries/mediarecord/types"
)

// EncodeCreateRecord returns the instruction data for c.
func EncodeCreateRecord(c CreateRecord) ([]byte, error) {
	body, err := record.EncodeBody(c.Record(types.Pubkey{}))
	if err != nil {
		return nil, err
	}
	data := make([]byte, 1+len(body))
	data[0] = byte(OpCreateRecord)
	copy(data[1:], body)
	return data, nil
}

// EncodeTransferRecord returns the instruction data for t.
func EncodeTransferRecord(t TransferRecord) []byte {
	data := make([]byte, 1+TransferPayloadSize)
	data[0] = byte(OpTransferRecord)
	copy(data[1:], t.NewOwner[:])
	return data
}

// Encode returns the instruction data for any decoded instruction.
func Encode(ix Instruction) ([]byte, error) {
	switch v := ix.(type) {
	case CreateRecord:
		return EncodeCreateRecord(v)
	case TransferRecord:
		return EncodeTransferRecord(v), nil
	default:
		return nil, fmt.Errorf("instruction: cannot encode %T", ix)
	}
}

// NewCreateRecordInstruction builds a create_record call. The target
// account signs and is written; the rent sysvar is passed read-only.
func NewCreateRecordInstruction(programID, target types.Pubkey, args CreateRecord) (types.Instruction, error) {
	data, err := EncodeCreateRecord(args)
	if err != nil {
		return types.Instruction{}, err
	}
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			{Key: target, IsSigner: true, IsWritable: true},
			{Key: types.RentSysvarID},
		},
		Data: data,
	}, nil
}

// NewTransferRecordInstruction builds a transfer_record call signed by
// the record's current owner.
func NewTransferRecordInstruction(programID, target, signer, newOwner types.Pubkey) types.Instruction {
	return types.Instruction{
		ProgramID: programID,
		Accounts: []types.AccountMeta{
			{Key: target, IsWritable: true},
			{Key: signer, IsSigner: true},
		},
		Data: EncodeTransferRecord(TransferRecord{NewOwner: newOwner}),
	}
}
