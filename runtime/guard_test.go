package runtime

import (
	"errors"
	"testing"
)

func readyGuard(t *testing.T) *lifecycleGuard {
	t.Helper()
	g := newLifecycleGuard()
	if err := g.acquireGenesis(); err != nil {
		t.Fatal(err)
	}
	g.completeGenesis()
	return g
}

func TestLifecycleGuard_HappyPath(t *testing.T) {
	g := readyGuard(t)

	for i := 0; i < 2; i++ {
		if err := g.acquireExecute(); err != nil {
			t.Fatalf("cycle %d: acquireExecute: %v", i, err)
		}
		g.completeExecute()
		if err := g.acquireCommit(); err != nil {
			t.Fatalf("cycle %d: acquireCommit: %v", i, err)
		}
		g.completeCommit()

		if g.current() != stateReady {
			t.Fatalf("cycle %d: expected Ready, got %s", i, g.current())
		}
	}
}

func TestLifecycleGuard_Misuse(t *testing.T) {
	testCases := []struct {
		name string
		run  func(g *lifecycleGuard) error
	}{
		{"double genesis", func(g *lifecycleGuard) error { return g.acquireGenesis() }},
		{"commit without execute", func(g *lifecycleGuard) error { return g.acquireCommit() }},
		{"execute twice", func(g *lifecycleGuard) error {
			if err := g.acquireExecute(); err != nil {
				return nil
			}
			g.completeExecute()
			return g.acquireExecute()
		}},
		{"open account while executed", func(g *lifecycleGuard) error {
			if err := g.acquireExecute(); err != nil {
				return nil
			}
			g.completeExecute()
			return g.acquireReady("OpenAccount")
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.run(readyGuard(t))
			if !errors.Is(err, ErrLifecycle) {
				t.Fatalf("expected ErrLifecycle, got %v", err)
			}
		})
	}
}

func TestLifecycleGuard_BeforeGenesis(t *testing.T) {
	g := newLifecycleGuard()
	if err := g.checkConcurrent("Account"); !errors.Is(err, ErrLifecycle) {
		t.Errorf("checkConcurrent: got %v", err)
	}
	if err := g.acquireExecute(); !errors.Is(err, ErrLifecycle) {
		t.Errorf("acquireExecute: got %v", err)
	}
	if err := g.acquireReady("OpenAccount"); !errors.Is(err, ErrLifecycle) {
		t.Errorf("acquireReady: got %v", err)
	}
}

func TestLifecycleGuard_FailExecute(t *testing.T) {
	g := readyGuard(t)

	if err := g.acquireExecute(); err != nil {
		t.Fatal(err)
	}
	g.failExecute()
	if g.current() != stateReady {
		t.Fatalf("expected Ready after failed execute, got %s", g.current())
	}

	// Should be able to execute again.
	if err := g.acquireExecute(); err != nil {
		t.Fatal(err)
	}
	g.completeExecute()
	if err := g.acquireCommit(); err != nil {
		t.Fatal(err)
	}
	g.completeCommit()
}

func TestLifecycleGuard_FailGenesis(t *testing.T) {
	g := newLifecycleGuard()
	if err := g.acquireGenesis(); err != nil {
		t.Fatal(err)
	}
	g.failGenesis()

	// Should be back in Init and able to retry.
	if err := g.acquireGenesis(); err != nil {
		t.Fatalf("retry: %v", err)
	}
	g.completeGenesis()
	if err := g.checkConcurrent("Account"); err != nil {
		t.Fatal(err)
	}
}

func TestLifecycleState_String(t *testing.T) {
	if got := lifecycleState(42).String(); got != "unknown(42)" {
		t.Errorf("got %q", got)
	}
	if got := stateCommitting.String(); got != "Committing" {
		t.Errorf("got %q", got)
	}
}
