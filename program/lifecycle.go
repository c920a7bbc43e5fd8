package program

import (
	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/instruction"
	"github.com/blockberries/mediarecord/record"
	"github.com/blockberries/mediarecord/types"
)

// RentOracle computes the balance an account of a given data length
// needs to be rent exempt. types.Rent implements it.
type RentOracle interface {
	MinimumBalance(dataLen int) uint64
}

var _ RentOracle = types.Rent{}

// planCreate checks that target can hold a new record and returns the
// write that stores it. Checks run in a fixed order: initialization,
// size, rent, capacity. target is never modified.
func planCreate(target *types.AccountInfo, oracle RentOracle, ix instruction.CreateRecord) (write, error) {
	if record.IsInitialized(target.Data) {
		return write{}, mediarecord.Errorf(mediarecord.AccountAlreadyInitialized, "account %s already holds a record", target.Key)
	}

	rec := ix.Record(target.Key)
	required, err := record.Size(rec)
	if err != nil {
		return write{}, err
	}

	if need := oracle.MinimumBalance(required); target.Lamports < need {
		return write{}, mediarecord.Errorf(mediarecord.InsufficientFunds,
			"account %s has %d lamports, %d bytes need %d", target.Key, target.Lamports, required, need)
	}

	if len(target.Data) < required {
		return write{}, mediarecord.Errorf(mediarecord.BufferTooSmall,
			"record needs %d bytes, account %s holds %d", required, target.Key, len(target.Data))
	}

	data, err := record.Encode(rec)
	if err != nil {
		return write{}, err
	}
	return write{account: targetIndex, offset: record.OwnerOffset, data: data}, nil
}
