package runtime

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// lifecycleState represents a state in the runtime lifecycle.
type lifecycleState uint32

const (
	// stateInit: waiting for Genesis. No other calls allowed.
	stateInit lifecycleState = iota
	// stateReady: Genesis complete. Concurrent calls allowed:
	// Account, Simulate. Sequential calls allowed: ExecuteBlock,
	// OpenAccount.
	stateReady
	// stateExecuting: ExecuteBlock is running.
	stateExecuting
	// stateExecuted: ExecuteBlock returned. Commit is the only valid
	// next sequential call.
	stateExecuted
	// stateCommitting: Commit is running.
	stateCommitting
)

func (s lifecycleState) String() string {
	switch s {
	case stateInit:
		return "Init"
	case stateReady:
		return "Ready"
	case stateExecuting:
		return "Executing"
	case stateExecuted:
		return "Executed"
	case stateCommitting:
		return "Committing"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// lifecycleGuard enforces call ordering. Misuse is reported as an
// error wrapping ErrLifecycle rather than a panic, since calls may
// arrive from remote clients.
type lifecycleGuard struct {
	state atomic.Uint32
	// seqMu serializes ExecuteBlock, Commit and OpenAccount.
	seqMu       sync.Mutex
	genesisDone atomic.Bool
}

func newLifecycleGuard() *lifecycleGuard {
	g := &lifecycleGuard{}
	g.state.Store(uint32(stateInit))
	return g
}

func (g *lifecycleGuard) current() lifecycleState {
	return lifecycleState(g.state.Load())
}

func (g *lifecycleGuard) misuse(call string, want lifecycleState) error {
	return fmt.Errorf("%w: %s called in state %s (expected %s)", ErrLifecycle, call, g.current(), want)
}

// acquireGenesis transitions Init → Ready.
func (g *lifecycleGuard) acquireGenesis() error {
	if !g.state.CompareAndSwap(uint32(stateInit), uint32(stateReady)) {
		return g.misuse("Genesis", stateInit)
	}
	return nil
}

func (g *lifecycleGuard) completeGenesis() {
	g.genesisDone.Store(true)
}

// failGenesis rolls back to Init so Genesis can be retried.
func (g *lifecycleGuard) failGenesis() {
	g.state.Store(uint32(stateInit))
}

// acquireExecute transitions Ready → Executing. It blocks while
// another sequential call is in progress.
func (g *lifecycleGuard) acquireExecute() error {
	g.seqMu.Lock()
	if state := g.current(); state != stateReady || !g.genesisDone.Load() {
		g.seqMu.Unlock()
		return g.misuse("ExecuteBlock", stateReady)
	}
	g.state.Store(uint32(stateExecuting))
	return nil
}

// completeExecute transitions Executing → Executed.
func (g *lifecycleGuard) completeExecute() {
	g.state.Store(uint32(stateExecuted))
	g.seqMu.Unlock()
}

// failExecute transitions Executing → Ready, allowing retry.
func (g *lifecycleGuard) failExecute() {
	g.state.Store(uint32(stateReady))
	g.seqMu.Unlock()
}

// acquireCommit transitions Executed → Committing.
func (g *lifecycleGuard) acquireCommit() error {
	g.seqMu.Lock()
	if state := g.current(); state != stateExecuted {
		g.seqMu.Unlock()
		return g.misuse("Commit", stateExecuted)
	}
	g.state.Store(uint32(stateCommitting))
	return nil
}

// completeCommit transitions Committing → Ready.
func (g *lifecycleGuard) completeCommit() {
	g.state.Store(uint32(stateReady))
	g.seqMu.Unlock()
}

// acquireReady holds the sequential lock while the guard is Ready,
// for calls that change committed state outside a block.
func (g *lifecycleGuard) acquireReady(call string) error {
	g.seqMu.Lock()
	if state := g.current(); state != stateReady || !g.genesisDone.Load() {
		g.seqMu.Unlock()
		return g.misuse(call, stateReady)
	}
	return nil
}

func (g *lifecycleGuard) releaseReady() {
	g.seqMu.Unlock()
}

// checkConcurrent verifies that concurrent calls are allowed (any
// state after Genesis).
func (g *lifecycleGuard) checkConcurrent(call string) error {
	if !g.genesisDone.Load() {
		return fmt.Errorf("%w: %s called before Genesis completed", ErrLifecycle, call)
	}
	return nil
}
