package mediatest

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"testing"
	"time"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/instruction"
	"github.com/blockberries/mediarecord/record"
	"github.com/blockberries/mediarecord/types"
)

// Harness drives a mediarecord connection through the block
// lifecycle, failing the test on any transport or lifecycle error.
// It numbers blocks and transaction nonces itself.
type Harness struct {
	t      *testing.T
	conn   mediarecord.Connection
	height uint64
	nonce  uint64
}

// NewHarness creates a test harness around conn.
func NewHarness(t *testing.T, conn mediarecord.Connection) *Harness {
	t.Helper()
	return &Harness{t: t, conn: conn}
}

// Conn returns the underlying connection for direct access.
func (h *Harness) Conn() mediarecord.Connection {
	return h.conn
}

// Height returns the height of the last committed block.
func (h *Harness) Height() uint64 {
	return h.height
}

// Genesis loads doc.
func (h *Harness) Genesis(doc types.GenesisDoc) types.GenesisResult {
	h.t.Helper()
	res, err := h.conn.Genesis(context.Background(), doc)
	if err != nil {
		h.t.Fatalf("Genesis failed: %v", err)
	}
	return res
}

// GenesisDefault loads DefaultGenesis.
func (h *Harness) GenesisDefault() types.GenesisResult {
	h.t.Helper()
	return h.Genesis(DefaultGenesis())
}

// ExecuteBlock executes the next block without committing.
func (h *Harness) ExecuteBlock(txs ...types.Transaction) types.BlockOutcome {
	h.t.Helper()
	block := MakeBlock(h.height+1, txs...)
	outcome, err := h.conn.ExecuteBlock(context.Background(), block)
	if err != nil {
		h.t.Fatalf("ExecuteBlock (height=%d) failed: %v", block.Height, err)
	}
	if len(outcome.TxOutcomes) != len(txs) {
		h.t.Fatalf("ExecuteBlock (height=%d): %d outcomes for %d txs", block.Height, len(outcome.TxOutcomes), len(txs))
	}
	return outcome
}

// Commit commits the last executed block.
func (h *Harness) Commit() types.CommitResult {
	h.t.Helper()
	result, err := h.conn.Commit(context.Background())
	if err != nil {
		h.t.Fatalf("Commit failed: %v", err)
	}
	h.height = result.Height
	return result
}

// ExecuteAndCommit executes the next block and commits it.
func (h *Harness) ExecuteAndCommit(txs ...types.Transaction) types.BlockOutcome {
	h.t.Helper()
	outcome := h.ExecuteBlock(txs...)
	h.Commit()
	return outcome
}

// OpenAccount opens a zeroed account of space bytes owned by owner.
func (h *Harness) OpenAccount(key, owner types.Pubkey, space uint32, lamports uint64) {
	h.t.Helper()
	err := h.conn.OpenAccount(context.Background(), types.OpenAccountRequest{
		Key:      key,
		Owner:    owner,
		Space:    space,
		Lamports: lamports,
	})
	if err != nil {
		h.t.Fatalf("OpenAccount %s failed: %v", key, err)
	}
}

// Account returns the committed account under key. It fails the test
// if the account does not exist.
func (h *Harness) Account(key types.Pubkey) types.Account {
	h.t.Helper()
	res, err := h.conn.Account(context.Background(), key)
	if err != nil {
		h.t.Fatalf("Account %s failed: %v", key, err)
	}
	if !res.Found {
		h.t.Fatalf("account %s not found", key)
	}
	return res.Account
}

// Record decodes the record stored in the account under key.
func (h *Harness) Record(key types.Pubkey) record.Record {
	h.t.Helper()
	data := h.Account(key).Data
	if !record.IsInitialized(data) {
		h.t.Fatalf("account %s holds no record", key)
	}
	rec, _, err := record.DecodePrefix(data)
	if err != nil {
		h.t.Fatalf("decode record in %s: %v", key, err)
	}
	return rec
}

// Tx signs a transaction carrying ixs with a fresh nonce.
func (h *Harness) Tx(signers []ed25519.PrivateKey, ixs ...types.Instruction) types.Transaction {
	h.t.Helper()
	h.nonce++
	tx, err := types.NewTransaction(types.Message{Instructions: ixs, Nonce: h.nonce}, signers...)
	if err != nil {
		h.t.Fatalf("NewTransaction failed: %v", err)
	}
	return tx
}

// CreateTx builds a create_record transaction signed by the target key.
func (h *Harness) CreateTx(programID types.Pubkey, target ed25519.PrivateKey, args instruction.CreateRecord) types.Transaction {
	h.t.Helper()
	key := PubkeyOf(target)
	ix, err := instruction.NewCreateRecordInstruction(programID, key, args)
	if err != nil {
		h.t.Fatalf("NewCreateRecordInstruction failed: %v", err)
	}
	return h.Tx([]ed25519.PrivateKey{target}, ix)
}

// TransferTx builds a transfer_record transaction signed by signer.
func (h *Harness) TransferTx(programID, target types.Pubkey, signer ed25519.PrivateKey, newOwner types.Pubkey) types.Transaction {
	h.t.Helper()
	ix := instruction.NewTransferRecordInstruction(programID, target, PubkeyOf(signer), newOwner)
	return h.Tx([]ed25519.PrivateKey{signer}, ix)
}

// MustSucceed asserts that every outcome in o has code 0.
func (h *Harness) MustSucceed(o types.BlockOutcome) {
	h.t.Helper()
	for _, tx := range o.TxOutcomes {
		if !tx.OK() {
			h.t.Fatalf("tx %d failed: code=%d info=%q", tx.Index, tx.Code, tx.Info)
		}
	}
}

// MustFailWith asserts that the outcome of tx index i carries kind.
func (h *Harness) MustFailWith(o types.BlockOutcome, i int, kind mediarecord.ErrorKind) {
	h.t.Helper()
	if got := o.TxOutcomes[i].Code; got != uint32(kind) {
		h.t.Fatalf("tx %d: code=%d, want %s (%d); info=%q", i, got, kind, kind, o.TxOutcomes[i].Info)
	}
}

// --- Helper Factories ---

// DefaultGenesis returns a minimal genesis document suitable for
// testing. The runtime adds the rent oracle.
func DefaultGenesis() types.GenesisDoc {
	return types.GenesisDoc{
		ChainID:     "test-chain",
		GenesisTime: types.TimeToTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)),
	}
}

// MakeBlock creates a Block at the given height with the provided
// transactions.
func MakeBlock(height uint64, txs ...types.Transaction) types.Block {
	t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(height) * 5 * time.Second)
	return types.Block{
		Height: height,
		Time:   types.TimeToTimestamp(t),
		Txs:    txs,
	}
}

// Keypair derives a deterministic ed25519 key from seed.
func Keypair(seed byte) ed25519.PrivateKey {
	return ed25519.NewKeyFromSeed(bytes.Repeat([]byte{seed}, ed25519.SeedSize))
}

// PubkeyOf returns the public key of priv.
func PubkeyOf(priv ed25519.PrivateKey) types.Pubkey {
	var k types.Pubkey
	copy(k[:], priv.Public().(ed25519.PublicKey))
	return k
}

// ClipArgs returns the record used throughout the tests.
func ClipArgs() instruction.CreateRecord {
	return instruction.CreateRecord{
		Price:       100,
		URL:         "https://cdn/x.mp4",
		Name:        "Clip",
		Description: "demo",
	}
}
