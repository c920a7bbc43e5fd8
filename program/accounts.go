package program

import (
	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"
)

// Positional account layout of every instruction.
const (
	targetIndex = 0
	// rentIndex is the rent oracle for create_record.
	rentIndex = 1
	// signerIndex is the authorizing account for transfer_record.
	signerIndex = 1

	accountCount = 2
)

func invalidAccounts(format string, args ...any) error {
	return mediarecord.Errorf(mediarecord.InvalidAccountData, format, args...)
}

// account returns accounts[i] after checking it is present.
func account(accounts []*types.AccountInfo, i int, role string) (*types.AccountInfo, error) {
	if i < 0 || i >= len(accounts) || accounts[i] == nil {
		return nil, invalidAccounts("missing %s account at index %d", role, i)
	}
	return accounts[i], nil
}

func checkCount(accounts []*types.AccountInfo) error {
	if len(accounts) != accountCount {
		return invalidAccounts("expected %d accounts, got %d", accountCount, len(accounts))
	}
	return nil
}

// targetAccount validates the account holding the record: it must be
// writable and assigned to this program.
func targetAccount(programID types.Pubkey, accounts []*types.AccountInfo) (*types.AccountInfo, error) {
	target, err := account(accounts, targetIndex, "target")
	if err != nil {
		return nil, err
	}
	if !target.IsWritable {
		return nil, invalidAccounts("target %s is not writable", target.Key)
	}
	if target.Owner != programID {
		return nil, invalidAccounts("target %s is owned by %s, not %s", target.Key, target.Owner, programID)
	}
	return target, nil
}

// createAccounts resolves [target, rent oracle] for create_record.
func createAccounts(programID types.Pubkey, accounts []*types.AccountInfo) (*types.AccountInfo, types.Rent, error) {
	if err := checkCount(accounts); err != nil {
		return nil, types.Rent{}, err
	}
	target, err := targetAccount(programID, accounts)
	if err != nil {
		return nil, types.Rent{}, err
	}
	if !target.IsSigner {
		return nil, types.Rent{}, invalidAccounts("target %s did not sign", target.Key)
	}
	oracle, err := account(accounts, rentIndex, "rent oracle")
	if err != nil {
		return nil, types.Rent{}, err
	}
	if oracle.Key != types.RentSysvarID {
		return nil, types.Rent{}, invalidAccounts("account %s is not the rent oracle", oracle.Key)
	}
	if oracle.Owner != types.SysvarOwnerID {
		return nil, types.Rent{}, invalidAccounts("rent oracle is owned by %s", oracle.Owner)
	}
	rent, err := types.DecodeRent(oracle.Data)
	if err != nil {
		return nil, types.Rent{}, mediarecord.Wrap(mediarecord.InvalidAccountData, err, "rent oracle: "+err.Error())
	}
	return target, rent, nil
}

// transferAccounts resolves [target, signer] for transfer_record. The
// signer's signature is checked against the record, not here.
func transferAccounts(programID types.Pubkey, accounts []*types.AccountInfo) (*types.AccountInfo, *types.AccountInfo, error) {
	if err := checkCount(accounts); err != nil {
		return nil, nil, err
	}
	target, err := targetAccount(programID, accounts)
	if err != nil {
		return nil, nil, err
	}
	signer, err := account(accounts, signerIndex, "signer")
	if err != nil {
		return nil, nil, err
	}
	return target, signer, nil
}
