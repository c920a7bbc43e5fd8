// Package runtime is a development host for mediarecord programs.
//
// It keeps an in-memory account ledger, verifies transaction
// signatures, hands programs call-scoped account views and applies
// their writes atomically per transaction. The lifecycle mirrors a
// block-based chain: Genesis once, then ExecuteBlock followed by Commit
// for every height.
package runtime

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"
)

// MaxAccountSpace is the largest data capacity OpenAccount accepts.
const MaxAccountSpace = types.MaxAccountDataLen

// Compile-time interface check.
var _ mediarecord.Connection = (*Runtime)(nil)

// Option configures a Runtime.
type Option func(*Runtime)

// WithProgram registers p under id. Registering the same id twice
// keeps the last program.
func WithProgram(id types.Pubkey, p mediarecord.Program) Option {
	return func(rt *Runtime) {
		rt.programs[id] = p
		if n, ok := p.(mediarecord.InstructionNamer); ok {
			rt.namers[id] = n
		} else {
			delete(rt.namers, id)
		}
	}
}

// WithRent sets the rent parameters written to the rent oracle account
// when the genesis document does not provide one.
func WithRent(r types.Rent) Option {
	return func(rt *Runtime) { rt.rent = r }
}

// WithLogger sets the logger. The default is the standard logger.
func WithLogger(l *log.Logger) Option {
	return func(rt *Runtime) { rt.logger = l }
}

// Runtime hosts programs over an in-memory ledger.
type Runtime struct {
	guard    *lifecycleGuard
	programs map[types.Pubkey]mediarecord.Program
	namers   map[types.Pubkey]mediarecord.InstructionNamer
	rent     types.Rent
	logger   *log.Logger

	mu        sync.RWMutex
	chainID   string
	committed ledger
	height    uint64
	stateHash types.Hash

	// Held between ExecuteBlock and Commit.
	staged       ledger
	stagedHeight uint64
	stagedHash   types.Hash
}

// New creates a Runtime in the Init state.
func New(opts ...Option) *Runtime {
	rt := &Runtime{
		guard:     newLifecycleGuard(),
		programs:  make(map[types.Pubkey]mediarecord.Program),
		namers:    make(map[types.Pubkey]mediarecord.InstructionNamer),
		rent:      types.DefaultRent(),
		logger:    log.Default(),
		committed: make(ledger),
	}
	for _, opt := range opts {
		opt(rt)
	}
	return rt
}

// Genesis loads the initial ledger. The rent oracle account is added
// when doc does not contain one; Genesis fails if the configured rent
// parameters cannot be decoded from it.
func (rt *Runtime) Genesis(_ context.Context, doc types.GenesisDoc) (types.GenesisResult, error) {
	if err := rt.guard.acquireGenesis(); err != nil {
		return types.GenesisResult{}, err
	}

	l := make(ledger, len(doc.Accounts)+1)
	for _, ga := range doc.Accounts {
		if _, dup := l[ga.Key]; dup {
			rt.guard.failGenesis()
			return types.GenesisResult{}, fmt.Errorf("%w: genesis lists account %s twice", ErrInvalidRequest, ga.Key)
		}
		l[ga.Key] = ga.Account.Clone()
	}
	if _, ok := l[types.RentSysvarID]; !ok {
		oracle := types.NewRentAccount(rt.rent)
		if _, err := types.DecodeRent(oracle.Data); err != nil {
			rt.guard.failGenesis()
			return types.GenesisResult{}, fmt.Errorf("%w: rent parameters: %v", ErrInvalidRequest, err)
		}
		l[types.RentSysvarID] = oracle
	} else if _, err := types.DecodeRent(l[types.RentSysvarID].Data); err != nil {
		rt.logger.Printf("mediarecord/runtime: WARNING: genesis rent oracle does not decode: %v", err)
	}

	h, err := l.hash()
	if err != nil {
		rt.guard.failGenesis()
		return types.GenesisResult{}, err
	}

	rt.mu.Lock()
	rt.chainID = doc.ChainID
	rt.committed = l
	rt.height = 0
	rt.stateHash = h
	rt.mu.Unlock()

	for id := range rt.programs {
		if _, ok := l[id]; !ok {
			rt.logger.Printf("mediarecord/runtime: program %s has no account in genesis", id)
		}
	}
	rt.logger.Printf("mediarecord/runtime: genesis chain=%s accounts=%d programs=%d", doc.ChainID, len(l), len(rt.programs))

	rt.guard.completeGenesis()
	return types.GenesisResult{StateHash: h}, nil
}

// ExecuteBlock runs every transaction of block, in order, against a
// staged copy of the committed ledger. Failed transactions leave no
// trace in the stage.
func (rt *Runtime) ExecuteBlock(ctx context.Context, block types.Block) (types.BlockOutcome, error) {
	if err := rt.guard.acquireExecute(); err != nil {
		return types.BlockOutcome{}, err
	}

	rt.mu.RLock()
	stage := rt.committed.clone()
	lastHeight := rt.height
	rt.mu.RUnlock()

	if block.Height != lastHeight+1 {
		rt.guard.failExecute()
		return types.BlockOutcome{}, fmt.Errorf("%w: height %d, expected %d", ErrInvalidBlock, block.Height, lastHeight+1)
	}

	outcomes := make([]types.TxOutcome, len(block.Txs))
	for i, tx := range block.Txs {
		if err := ctx.Err(); err != nil {
			rt.guard.failExecute()
			return types.BlockOutcome{}, err
		}
		outcome, o := rt.executeTx(stage, uint32(i), tx)
		if o != nil {
			o.mergeInto(stage)
		}
		outcomes[i] = outcome
	}

	h, err := stage.hash()
	if err != nil {
		rt.guard.failExecute()
		return types.BlockOutcome{}, err
	}

	rt.mu.Lock()
	rt.staged = stage
	rt.stagedHeight = block.Height
	rt.stagedHash = h
	rt.mu.Unlock()

	rt.guard.completeExecute()
	return types.BlockOutcome{TxOutcomes: outcomes, StateHash: h}, nil
}

// Commit makes the ledger staged by the last ExecuteBlock visible.
func (rt *Runtime) Commit(_ context.Context) (types.CommitResult, error) {
	if err := rt.guard.acquireCommit(); err != nil {
		return types.CommitResult{}, err
	}

	rt.mu.Lock()
	rt.committed = rt.staged
	rt.height = rt.stagedHeight
	rt.stateHash = rt.stagedHash
	rt.staged = nil
	result := types.CommitResult{Height: rt.height, StateHash: rt.stateHash}
	rt.mu.Unlock()

	rt.guard.completeCommit()
	return result, nil
}

// Simulate runs tx against the committed ledger and discards its
// writes. Safe for concurrent use.
func (rt *Runtime) Simulate(_ context.Context, tx types.Transaction) (types.TxOutcome, error) {
	if err := rt.guard.checkConcurrent("Simulate"); err != nil {
		return types.TxOutcome{}, err
	}
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	outcome, _ := rt.executeTx(rt.committed, 0, tx)
	return outcome, nil
}

// Account returns a copy of the committed account stored under key.
// Safe for concurrent use.
func (rt *Runtime) Account(_ context.Context, key types.Pubkey) (types.AccountQueryResult, error) {
	if err := rt.guard.checkConcurrent("Account"); err != nil {
		return types.AccountQueryResult{}, err
	}
	rt.mu.RLock()
	defer rt.mu.RUnlock()

	acct, ok := rt.committed[key]
	if !ok {
		return types.AccountQueryResult{Height: rt.height}, nil
	}
	return types.AccountQueryResult{Found: true, Account: acct.Clone(), Height: rt.height}, nil
}

// OpenAccount creates a zeroed account of req.Space bytes owned by
// req.Owner and funded with req.Lamports. It is only allowed while no
// block is waiting for Commit.
func (rt *Runtime) OpenAccount(_ context.Context, req types.OpenAccountRequest) error {
	if req.Space > MaxAccountSpace {
		return fmt.Errorf("%w: space %d exceeds %d", ErrInvalidRequest, req.Space, MaxAccountSpace)
	}
	if req.Owner == types.SysvarOwnerID {
		return fmt.Errorf("%w: sysvar accounts cannot be opened", ErrInvalidRequest)
	}
	if err := rt.guard.acquireReady("OpenAccount"); err != nil {
		return err
	}
	defer rt.guard.releaseReady()

	rt.mu.Lock()
	defer rt.mu.Unlock()

	if _, ok := rt.committed[req.Key]; ok {
		return fmt.Errorf("%w: %s", ErrAccountExists, req.Key)
	}
	next := rt.committed.clone()
	next[req.Key] = types.Account{
		Lamports: req.Lamports,
		Owner:    req.Owner,
		Data:     make([]byte, req.Space),
	}
	h, err := next.hash()
	if err != nil {
		return err
	}
	rt.committed = next
	rt.stateHash = h
	return nil
}

// StateHash returns the fingerprint and height of the committed ledger.
func (rt *Runtime) StateHash() (types.Hash, uint64) {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.stateHash, rt.height
}

// ChainID returns the chain id given at genesis.
func (rt *Runtime) ChainID() string {
	rt.mu.RLock()
	defer rt.mu.RUnlock()
	return rt.chainID
}

// State returns the current lifecycle state name.
func (rt *Runtime) State() string {
	return rt.guard.current().String()
}

// Close is a no-op for the in-memory runtime.
func (rt *Runtime) Close() error { return nil }
