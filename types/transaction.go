package types

import (
	"crypto/ed25519"
	"fmt"

	"github.com/blockberries/cramberry/pkg/cramberry"
)

// Instruction is a single program invocation: the program to run, the
// ordered accounts it may touch and its opaque instruction data.
type Instruction struct {
	ProgramID Pubkey        `cramberry:"1"`
	Accounts  []AccountMeta `cramberry:"2"`
	Data      []byte        `cramberry:"3"`
}

// Message is the signed portion of a transaction. Its instructions are
// applied atomically: either all of them land or none do.
type Message struct {
	Instructions []Instruction `cramberry:"1"`
	// Nonce distinguishes otherwise identical messages.
	Nonce uint64 `cramberry:"2"`
}

// Bytes returns the deterministic encoding that signers sign.
func (m Message) Bytes() ([]byte, error) {
	data, err := cramberry.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("encode message: %w", err)
	}
	return data, nil
}

// Signature is an ed25519 signature over Message.Bytes by Signer.
type Signature struct {
	Signer Pubkey `cramberry:"1"`
	Sig    []byte `cramberry:"2"`
}

// Transaction is a signed message submitted to the runtime.
type Transaction struct {
	Message    Message     `cramberry:"1"`
	Signatures []Signature `cramberry:"2"`
}

// NewTransaction signs msg with every key in signers.
func NewTransaction(msg Message, signers ...ed25519.PrivateKey) (Transaction, error) {
	data, err := msg.Bytes()
	if err != nil {
		return Transaction{}, err
	}
	tx := Transaction{Message: msg}
	for _, priv := range signers {
		pub, err := PubkeyFromBytes(priv.Public().(ed25519.PublicKey))
		if err != nil {
			return Transaction{}, fmt.Errorf("signer key: %w", err)
		}
		tx.Signatures = append(tx.Signatures, Signature{
			Signer: pub,
			Sig:    ed25519.Sign(priv, data),
		})
	}
	return tx, nil
}

// VerifiedSigners checks every signature against the message and
// returns the set of keys that signed it. Any invalid signature fails
// the whole transaction.
func (tx Transaction) VerifiedSigners() (map[Pubkey]bool, error) {
	data, err := tx.Message.Bytes()
	if err != nil {
		return nil, err
	}
	signers := make(map[Pubkey]bool, len(tx.Signatures))
	for i, s := range tx.Signatures {
		if !ed25519.Verify(ed25519.PublicKey(s.Signer[:]), data, s.Sig) {
			return nil, fmt.Errorf("signature %d by %s does not verify", i, s.Signer)
		}
		signers[s.Signer] = true
	}
	return signers, nil
}

// TxOutcome is the result of executing a single transaction.
type TxOutcome struct {
	// Position of this tx in the block (0-indexed).
	Index uint32 `cramberry:"1"`
	// Result code. 0 = success, 1..99 = program error kind,
	// >= 100 = runtime rejection.
	Code uint32 `cramberry:"2"`
	// Human-readable result info (for debugging).
	Info string `cramberry:"3"`
	// Events emitted while executing this transaction.
	Events []Event `cramberry:"4"`
}

// OK returns true if the transaction executed successfully.
func (t TxOutcome) OK() bool { return t.Code == 0 }

// Block is an ordered batch of transactions delivered to the runtime.
type Block struct {
	Height uint64        `cramberry:"1"`
	Time   Timestamp     `cramberry:"2"`
	Txs    []Transaction `cramberry:"3"`
}

// BlockOutcome is the output of executing a block.
type BlockOutcome struct {
	// Per-transaction results, in block order.
	TxOutcomes []TxOutcome `cramberry:"1"`
	// Fingerprint of the ledger after this block.
	StateHash Hash `cramberry:"2"`
}

// CommitResult is returned after the runtime makes a block's
// changes visible.
type CommitResult struct {
	Height    uint64 `cramberry:"1"`
	StateHash Hash   `cramberry:"2"`
}
