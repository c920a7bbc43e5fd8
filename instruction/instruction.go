// Package instruction decodes and builds the instruction data consumed
// by the media record program.
//
// Instruction format: a single opcode byte selects the variant:
//
//	0x00 = create_record:   [1]opcode [8]price [4+N]url [4+N]name [4+N]description [4+N]blob
//	0x01 = transfer_record: [1]opcode [32]new_owner
//
// Integers are little-endian. The create payload uses the same field
// encoding as the stored record body and must be consumed exactly.
package instruction

import (
	"fmt"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/record"
	"github.com/blockberries/mediarecord/types"
)

// Opcode is the leading byte of instruction data.
type Opcode byte

const (
	OpCreateRecord   Opcode = 0x00
	OpTransferRecord Opcode = 0x01
)

func (o Opcode) String() string {
	switch o {
	case OpCreateRecord:
		return "create_record"
	case OpTransferRecord:
		return "transfer_record"
	default:
		return fmt.Sprintf("unknown(0x%02x)", byte(o))
	}
}

// TransferPayloadSize is the exact payload length of a transfer.
const TransferPayloadSize = types.PubkeySize

// Instruction is a decoded command. It is implemented only by
// CreateRecord and TransferRecord.
type Instruction interface {
	Opcode() Opcode
	isInstruction()
}

// CreateRecord stores a new record in an uninitialized account. The
// owner is the target account's key and is not part of the payload.
type CreateRecord struct {
	Price       uint64
	URL         string
	Name        string
	Description string
	Blob        []byte
}

func (CreateRecord) Opcode() Opcode { return OpCreateRecord }
func (CreateRecord) isInstruction() {}

// Record returns the initialized record this instruction stores for
// owner.
func (c CreateRecord) Record(owner types.Pubkey) record.Record {
	return record.Record{
		Owner:       owner,
		Initialized: true,
		Price:       c.Price,
		URL:         c.URL,
		Name:        c.Name,
		Description: c.Description,
		Blob:        c.Blob,
	}
}

// TransferRecord hands an existing record to NewOwner.
type TransferRecord struct {
	NewOwner types.Pubkey
}

func (TransferRecord) Opcode() Opcode { return OpTransferRecord }
func (TransferRecord) isInstruction() {}

// Decode parses raw instruction data. Every failure is reported as
// InvalidInstructionData.
func Decode(data []byte) (Instruction, error) {
	if len(data) == 0 {
		return nil, mediarecord.Errorf(mediarecord.InvalidInstructionData, "empty instruction data")
	}
	op, payload := Opcode(data[0]), data[1:]
	switch op {
	case OpCreateRecord:
		return decodeCreate(payload)
	case OpTransferRecord:
		return decodeTransfer(payload)
	default:
		return nil, mediarecord.Errorf(mediarecord.InvalidInstructionData, "unknown opcode 0x%02x", data[0])
	}
}

func decodeCreate(payload []byte) (Instruction, error) {
	r, err := record.DecodeBody(payload)
	if err != nil {
		return nil, mediarecord.Wrap(mediarecord.InvalidInstructionData, err, fmt.Sprintf("create_record payload: %v", err))
	}
	return CreateRecord{
		Price:       r.Price,
		URL:         r.URL,
		Name:        r.Name,
		Description: r.Description,
		Blob:        r.Blob,
	}, nil
}

func decodeTransfer(payload []byte) (Instruction, error) {
	if len(payload) != TransferPayloadSize {
		return nil, mediarecord.Errorf(mediarecord.InvalidInstructionData,
			"transfer_record payload is %d bytes, want %d", len(payload), TransferPayloadSize)
	}
	var t TransferRecord
	copy(t.NewOwner[:], payload)
	return t, nil
}

// Name returns the opcode name of data, or "" when data is empty or
// carries an unknown opcode.
func Name(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	switch op := Opcode(data[0]); op {
	case OpCreateRecord, OpTransferRecord:
		return op.String()
	default:
		return ""
	}
}
