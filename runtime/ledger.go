package runtime

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/blockberries/cramberry/pkg/cramberry"

	"github.com/blockberries/mediarecord/types"
)

// ledger maps account keys to accounts. Account values stored in a
// ledger are never mutated in place; writers replace the entry.
type ledger map[types.Pubkey]types.Account

// clone returns a ledger that can be written without affecting l.
func (l ledger) clone() ledger {
	c := make(ledger, len(l))
	for k, v := range l {
		c[k] = v
	}
	return c
}

func (l ledger) sortedKeys() []types.Pubkey {
	keys := make([]types.Pubkey, 0, len(l))
	for k := range l {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		return bytes.Compare(keys[i][:], keys[j][:]) < 0
	})
	return keys
}

// hash computes a deterministic SHA-256 over every account in key
// order.
func (l ledger) hash() (types.Hash, error) {
	h := sha256.New()
	for _, k := range l.sortedKeys() {
		data, err := cramberry.Marshal(types.GenesisAccount{Key: k, Account: l[k]})
		if err != nil {
			return types.Hash{}, fmt.Errorf("hash account %s: %w", k, err)
		}
		h.Write(data)
	}
	var out types.Hash
	copy(out[:], h.Sum(nil))
	return out, nil
}

// overlay buffers the writes of one transaction on top of a base
// ledger. The base is only touched by mergeInto.
type overlay struct {
	base   ledger
	writes map[types.Pubkey]types.Account
}

func newOverlay(base ledger) *overlay {
	return &overlay{base: base, writes: make(map[types.Pubkey]types.Account)}
}

func (o *overlay) get(k types.Pubkey) (types.Account, bool) {
	if a, ok := o.writes[k]; ok {
		return a, true
	}
	a, ok := o.base[k]
	return a, ok
}

func (o *overlay) put(k types.Pubkey, a types.Account) {
	o.writes[k] = a
}

// mergeInto applies every buffered write to dst.
func (o *overlay) mergeInto(dst ledger) {
	for k, a := range o.writes {
		dst[k] = a
	}
}
