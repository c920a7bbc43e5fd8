package program

import (
	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/instruction"
	"github.com/blockberries/mediarecord/record"
	"github.com/blockberries/mediarecord/types"
)

// planTransfer authorizes signer against the owner stored in the
// record and returns the write that re-encodes it with the new owner.
// The re-encoded record occupies exactly the bytes of the old one.
func planTransfer(target, signer *types.AccountInfo, ix instruction.TransferRecord) (write, error) {
	if !record.IsInitialized(target.Data) {
		return write{}, mediarecord.Errorf(mediarecord.InvalidAccountData, "account %s holds no record", target.Key)
	}
	rec, n, err := record.DecodePrefix(target.Data)
	if err != nil {
		return write{}, err
	}

	if !signer.IsSigner {
		return write{}, mediarecord.Errorf(mediarecord.Unauthorized, "account %s did not sign", signer.Key)
	}
	if signer.Key != rec.Owner {
		return write{}, mediarecord.Errorf(mediarecord.Unauthorized, "%s is not the owner of %s", signer.Key, target.Key)
	}

	rec.Owner = ix.NewOwner
	data, err := record.Encode(rec)
	if err != nil {
		return write{}, err
	}
	if len(data) != n {
		return write{}, mediarecord.Errorf(mediarecord.MalformedRecord, "re-encoded record is %d bytes, stored record is %d", len(data), n)
	}
	return write{account: targetIndex, offset: record.OwnerOffset, data: data}, nil
}
