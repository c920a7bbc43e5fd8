package program

import (
	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"
)

// write is the single mutation a handler asks the dispatcher to make:
// copy data into accounts[account].Data at offset.
type write struct {
	account int
	offset  int
	data    []byte
}

// apply performs w. All bounds are checked before the first byte is
// copied.
func (w write) apply(accounts []*types.AccountInfo) error {
	if w.account < 0 || w.account >= len(accounts) || accounts[w.account] == nil {
		return mediarecord.Errorf(mediarecord.InvalidAccountData, "write targets missing account %d", w.account)
	}
	dst := accounts[w.account]
	if !dst.IsWritable {
		return mediarecord.Errorf(mediarecord.InvalidAccountData, "write targets read-only account %s", dst.Key)
	}
	if w.offset < 0 || w.offset > len(dst.Data) || len(w.data) > len(dst.Data)-w.offset {
		return mediarecord.Errorf(mediarecord.BufferTooSmall,
			"write of %d bytes at offset %d exceeds %d-byte account", len(w.data), w.offset, len(dst.Data))
	}
	copy(dst.Data[w.offset:], w.data)
	return nil
}
