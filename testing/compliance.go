package mediatest

import (
	"context"
	"crypto/ed25519"
	"errors"
	"sync"
	"testing"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/runtime"
	"github.com/blockberries/mediarecord/types"
)

// clipRent is the rent-exempt minimum for the clip record under the
// default rent parameters.
const clipRent = 1_461_600

// RunComplianceSuite runs the standard behavior suite against a
// connection whose runtime hosts the media record program at
// programID.
//
// The factory function should return a fresh connection for each test.
func RunComplianceSuite(t *testing.T, factory func() mediarecord.Connection, programID types.Pubkey) {
	t.Helper()

	// setup returns a harness past genesis with an empty 200-byte
	// account for the key derived from seed 1.
	setup := func(t *testing.T) (*Harness, ed25519.PrivateKey, types.Pubkey) {
		t.Helper()
		h := NewHarness(t, factory())
		t.Cleanup(func() { h.Conn().Close() })
		h.GenesisDefault()
		owner := Keypair(1)
		h.OpenAccount(PubkeyOf(owner), programID, 200, clipRent)
		return h, owner, PubkeyOf(owner)
	}

	t.Run("genesis_returns_state_hash", func(t *testing.T) {
		h := NewHarness(t, factory())
		defer h.Conn().Close()
		res := h.GenesisDefault()
		if res.StateHash == (types.Hash{}) {
			t.Error("genesis should return a non-zero state hash")
		}
	})

	t.Run("create_then_read", func(t *testing.T) {
		h, owner, key := setup(t)
		h.MustSucceed(h.ExecuteAndCommit(h.CreateTx(programID, owner, ClipArgs())))

		rec := h.Record(key)
		if rec.Owner != key || !rec.Initialized || rec.Price != 100 || rec.URL != "https://cdn/x.mp4" {
			t.Fatalf("stored record %+v", rec)
		}
		if len(h.Account(key).Data) != 200 {
			t.Error("account capacity changed")
		}
	})

	t.Run("create_twice_rejected", func(t *testing.T) {
		h, owner, key := setup(t)
		h.MustSucceed(h.ExecuteAndCommit(h.CreateTx(programID, owner, ClipArgs())))
		before := h.Account(key).Data

		again := ClipArgs()
		again.Price = 1
		o := h.ExecuteAndCommit(h.CreateTx(programID, owner, again))
		h.MustFailWith(o, 0, mediarecord.AccountAlreadyInitialized)
		if string(h.Account(key).Data) != string(before) {
			t.Fatal("rejected create changed the account")
		}
	})

	t.Run("transfer_by_owner", func(t *testing.T) {
		h, owner, key := setup(t)
		next := PubkeyOf(Keypair(2))
		h.MustSucceed(h.ExecuteAndCommit(
			h.CreateTx(programID, owner, ClipArgs()),
			h.TransferTx(programID, key, owner, next),
		))
		rec := h.Record(key)
		if rec.Owner != next || rec.Price != 100 || rec.Name != "Clip" {
			t.Fatalf("after transfer: %+v", rec)
		}
	})

	t.Run("transfer_unauthorized", func(t *testing.T) {
		h, owner, key := setup(t)
		stranger := Keypair(3)
		o := h.ExecuteAndCommit(
			h.CreateTx(programID, owner, ClipArgs()),
			h.TransferTx(programID, key, stranger, PubkeyOf(stranger)),
		)
		h.MustFailWith(o, 1, mediarecord.Unauthorized)
		if h.Record(key).Owner != key {
			t.Fatal("unauthorized transfer changed the owner")
		}
	})

	t.Run("failed_tx_is_atomic", func(t *testing.T) {
		h, owner, key := setup(t)
		stranger := Keypair(3)
		createTx := h.CreateTx(programID, owner, ClipArgs())
		transfer := h.TransferTx(programID, key, stranger, PubkeyOf(stranger))
		tx := h.Tx([]ed25519.PrivateKey{owner, stranger},
			append(createTx.Message.Instructions, transfer.Message.Instructions...)...)

		o := h.ExecuteAndCommit(tx)
		h.MustFailWith(o, 0, mediarecord.Unauthorized)
		if string(h.Account(key).Data) != string(make([]byte, 200)) {
			t.Fatal("partial transaction was committed")
		}
	})

	t.Run("insufficient_funds", func(t *testing.T) {
		h := NewHarness(t, factory())
		defer h.Conn().Close()
		h.GenesisDefault()
		owner := Keypair(4)
		h.OpenAccount(PubkeyOf(owner), programID, 200, clipRent-1)

		o := h.ExecuteAndCommit(h.CreateTx(programID, owner, ClipArgs()))
		h.MustFailWith(o, 0, mediarecord.InsufficientFunds)
	})

	t.Run("buffer_too_small", func(t *testing.T) {
		h := NewHarness(t, factory())
		defer h.Conn().Close()
		h.GenesisDefault()
		owner := Keypair(5)
		h.OpenAccount(PubkeyOf(owner), programID, 81, clipRent)

		o := h.ExecuteAndCommit(h.CreateTx(programID, owner, ClipArgs()))
		h.MustFailWith(o, 0, mediarecord.BufferTooSmall)
	})

	t.Run("deterministic_with_txs", func(t *testing.T) {
		h1, owner, key := setup(t)
		h2, _, _ := setup(t)

		next := PubkeyOf(Keypair(2))
		for _, h := range []*Harness{h1, h2} {
			h.ExecuteAndCommit(h.CreateTx(programID, owner, ClipArgs()))
		}
		o1 := h1.ExecuteAndCommit(h1.TransferTx(programID, key, owner, next))
		o2 := h2.ExecuteAndCommit(h2.TransferTx(programID, key, owner, next))
		if o1.StateHash != o2.StateHash {
			t.Errorf("non-deterministic: %x != %x", o1.StateHash, o2.StateHash)
		}
	})

	t.Run("empty_blocks_deterministic", func(t *testing.T) {
		h1 := NewHarness(t, factory())
		defer h1.Conn().Close()
		h1.GenesisDefault()
		h2 := NewHarness(t, factory())
		defer h2.Conn().Close()
		h2.GenesisDefault()

		for i := 0; i < 3; i++ {
			o1 := h1.ExecuteAndCommit()
			o2 := h2.ExecuteAndCommit()
			if o1.StateHash != o2.StateHash {
				t.Errorf("height %d: non-deterministic: %x != %x", i+1, o1.StateHash, o2.StateHash)
			}
		}
		if h1.Height() != 3 {
			t.Errorf("height = %d, want 3", h1.Height())
		}
	})

	t.Run("simulate_does_not_persist", func(t *testing.T) {
		h, owner, key := setup(t)
		outcome, err := h.Conn().Simulate(context.Background(), h.CreateTx(programID, owner, ClipArgs()))
		if err != nil {
			t.Fatalf("Simulate: %v", err)
		}
		if !outcome.OK() {
			t.Fatalf("simulated create failed: %s", outcome.Info)
		}
		if string(h.Account(key).Data) != string(make([]byte, 200)) {
			t.Fatal("Simulate persisted its writes")
		}
	})

	t.Run("concurrent_reads", func(t *testing.T) {
		h, owner, key := setup(t)
		h.ExecuteAndCommit(h.CreateTx(programID, owner, ClipArgs()))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				res, err := h.Conn().Account(context.Background(), key)
				if err != nil {
					t.Errorf("concurrent Account failed: %v", err)
					return
				}
				if !res.Found || res.Height != 1 {
					t.Errorf("unexpected result: found=%v height=%d", res.Found, res.Height)
				}
			}()
		}
		wg.Wait()
	})

	t.Run("commit_without_execute", func(t *testing.T) {
		h := NewHarness(t, factory())
		defer h.Conn().Close()
		h.GenesisDefault()
		if _, err := h.Conn().Commit(context.Background()); !errors.Is(err, runtime.ErrLifecycle) {
			t.Fatalf("expected lifecycle error, got %v", err)
		}
	})

	t.Run("tx_outcome_indices", func(t *testing.T) {
		h, owner, _ := setup(t)
		txs := []types.Transaction{
			h.CreateTx(programID, owner, ClipArgs()),
			h.CreateTx(programID, owner, ClipArgs()),
			h.Tx(nil, types.Instruction{ProgramID: programID, Data: []byte{0x09}}),
		}
		o := h.ExecuteAndCommit(txs...)
		for i, out := range o.TxOutcomes {
			if out.Index != uint32(i) {
				t.Errorf("tx %d: expected index %d, got %d", i, i, out.Index)
			}
		}
		h.MustFailWith(o, 1, mediarecord.AccountAlreadyInitialized)
		h.MustFailWith(o, 2, mediarecord.InvalidInstructionData)
	})
}
