package runtime

import (
	"bytes"
	"fmt"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"
)

// executeTx runs tx against base. On success the returned overlay
// holds the transaction's writes; on failure it is nil and the outcome
// carries the error.
func (rt *Runtime) executeTx(base ledger, index uint32, tx types.Transaction) (types.TxOutcome, *overlay) {
	outcome := types.TxOutcome{Index: index}
	o, events, err := rt.runTx(base, tx)
	if err != nil {
		outcome.Code = OutcomeCode(err)
		outcome.Info = err.Error()
		return outcome, nil
	}
	outcome.Events = events
	return outcome, o
}

func (rt *Runtime) runTx(base ledger, tx types.Transaction) (*overlay, []types.Event, error) {
	if len(tx.Message.Instructions) == 0 {
		return nil, nil, fmt.Errorf("%w: no instructions", ErrInvalidTransaction)
	}
	signers, err := tx.VerifiedSigners()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	o := newOverlay(base)
	events := make([]types.Event, 0, len(tx.Message.Instructions))
	for i, ix := range tx.Message.Instructions {
		ev, err := rt.invoke(o, signers, ix)
		if err != nil {
			return nil, nil, fmt.Errorf("instruction %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return o, events, nil
}

// invoke runs one instruction and records its writes in o. A key that
// appears more than once in the account list is handed to the program
// as a single shared view with the union of its roles.
func (rt *Runtime) invoke(o *overlay, signers map[types.Pubkey]bool, ix types.Instruction) (types.Event, error) {
	prog, ok := rt.programs[ix.ProgramID]
	if !ok {
		return types.Event{}, fmt.Errorf("%w: %s", ErrUnknownProgram, ix.ProgramID)
	}

	views := make(map[types.Pubkey]*types.AccountInfo, len(ix.Accounts))
	before := make(map[types.Pubkey]types.Account, len(ix.Accounts))
	order := make([]types.Pubkey, 0, len(ix.Accounts))
	infos := make([]*types.AccountInfo, len(ix.Accounts))
	for i, meta := range ix.Accounts {
		if meta.IsSigner && !signers[meta.Key] {
			return types.Event{}, fmt.Errorf("%w: account %s", ErrMissingSignature, meta.Key)
		}
		if v, ok := views[meta.Key]; ok {
			v.IsSigner = v.IsSigner || meta.IsSigner
			v.IsWritable = v.IsWritable || meta.IsWritable
			infos[i] = v
			continue
		}
		acct, ok := o.get(meta.Key)
		if !ok {
			// Unknown keys are empty system accounts, e.g. a wallet
			// that only signs.
			acct = types.Account{Owner: types.SystemProgramID}
		}
		v := types.NewAccountInfo(meta, acct)
		views[meta.Key] = v
		before[meta.Key] = acct
		infos[i] = v
		order = append(order, meta.Key)
	}

	if err := callProgram(prog, ix.ProgramID, infos, ix.Data); err != nil {
		return types.Event{}, err
	}

	var modified []types.Pubkey
	for _, k := range order {
		v, old := views[k], before[k]
		changed, err := checkModification(ix.ProgramID, v, old)
		if err != nil {
			return types.Event{}, err
		}
		if !changed {
			continue
		}
		updated := old
		updated.Data = v.Data
		o.put(k, updated)
		modified = append(modified, k)
	}
	return rt.event(ix, modified), nil
}

func callProgram(p mediarecord.Program, programID types.Pubkey, accounts []*types.AccountInfo, data []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrProgramFailed, r)
		}
	}()
	return p.Process(programID, accounts, data)
}

// checkModification reports whether the program changed v's data, and
// fails if it changed anything it is not allowed to: lamports, owner,
// capacity, or data of an account that is read-only or owned by
// another program.
func checkModification(programID types.Pubkey, v *types.AccountInfo, old types.Account) (bool, error) {
	switch {
	case v.Lamports != old.Lamports:
		return false, fmt.Errorf("%w: lamports of %s changed", ErrIllegalModification, v.Key)
	case v.Owner != old.Owner:
		return false, fmt.Errorf("%w: owner of %s changed", ErrIllegalModification, v.Key)
	case len(v.Data) != len(old.Data):
		return false, fmt.Errorf("%w: %s resized from %d to %d bytes", ErrIllegalModification, v.Key, len(old.Data), len(v.Data))
	}
	if bytes.Equal(v.Data, old.Data) {
		return false, nil
	}
	if !v.IsWritable {
		return false, fmt.Errorf("%w: read-only account %s written", ErrIllegalModification, v.Key)
	}
	if old.Owner != programID {
		return false, fmt.Errorf("%w: %s is owned by %s", ErrIllegalModification, v.Key, old.Owner)
	}
	return true, nil
}

func (rt *Runtime) event(ix types.Instruction, modified []types.Pubkey) types.Event {
	kind := "invoke"
	if n, ok := rt.namers[ix.ProgramID]; ok {
		if name := n.InstructionName(ix.Data); name != "" {
			kind = name
		}
	}
	attrs := make([]types.EventAttribute, 0, len(modified))
	for _, k := range modified {
		attrs = append(attrs, types.EventAttribute{Key: "modified", Value: k.String()})
	}
	return types.Event{Kind: kind, Program: ix.ProgramID, Attributes: attrs}
}
