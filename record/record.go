package record

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/types"
)

// Record is a media asset stored inside an account buffer.
type Record struct {
	Owner       types.Pubkey
	Initialized bool
	Price       uint64
	URL         string
	Name        string
	Description string
	Blob        []byte
}

// Equal reports whether two records hold the same values. A nil and an
// empty Blob are equal.
func (r Record) Equal(o Record) bool {
	return r.Owner == o.Owner &&
		r.Initialized == o.Initialized &&
		r.Price == o.Price &&
		r.URL == o.URL &&
		r.Name == o.Name &&
		r.Description == o.Description &&
		bytes.Equal(r.Blob, o.Blob)
}

// Size returns the encoded length of r. It fails with FieldTooLarge
// when a variable field cannot be described by a u32 prefix.
func Size(r Record) (int, error) {
	body, err := bodySize(r)
	if err != nil {
		return 0, err
	}
	return PriceOffset + body, nil
}

func bodySize(r Record) (int, error) {
	return fieldsSize(uint64(len(r.URL)), uint64(len(r.Name)), uint64(len(r.Description)), uint64(len(r.Blob)))
}

// fieldsSize returns the encoded body length for variable fields of the
// given lengths, or FieldTooLarge if a length does not fit its prefix.
func fieldsSize(url, name, description, blob uint64) (int, error) {
	n := uint64(8)
	for _, f := range []struct {
		name string
		len  uint64
	}{
		{"url", url},
		{"name", name},
		{"description", description},
		{"blob", blob},
	} {
		if f.len > MaxFieldLen {
			return 0, mediarecord.Errorf(mediarecord.FieldTooLarge, "%s is %d bytes, limit %d", f.name, f.len, uint64(MaxFieldLen))
		}
		n += LengthPrefixSize + f.len
	}
	return int(n), nil
}

// Encode serializes r in the account layout.
func Encode(r Record) ([]byte, error) {
	n, err := Size(r)
	if err != nil {
		return nil, err
	}
	w := &writer{buf: make([]byte, n)}
	if err := w.put(r.Owner[:]); err != nil {
		return nil, internalError(err)
	}
	var flag byte
	if r.Initialized {
		flag = 1
	}
	if err := w.u8(flag); err != nil {
		return nil, internalError(err)
	}
	if err := writeBody(w, r); err != nil {
		return nil, internalError(err)
	}
	return w.buf, nil
}

// EncodeBody serializes the fields that follow the owner and
// initialized flag: price, url, name, description and blob. This is
// the payload clients send when creating a record.
func EncodeBody(r Record) ([]byte, error) {
	n, err := bodySize(r)
	if err != nil {
		return nil, err
	}
	w := &writer{buf: make([]byte, n)}
	if err := writeBody(w, r); err != nil {
		return nil, internalError(err)
	}
	return w.buf, nil
}

func writeBody(w *writer, r Record) error {
	if err := w.u64(r.Price); err != nil {
		return err
	}
	for _, f := range [][]byte{[]byte(r.URL), []byte(r.Name), []byte(r.Description), r.Blob} {
		if err := w.prefixed(f); err != nil {
			return err
		}
	}
	return nil
}

// Decode parses a buffer holding exactly one record. Trailing bytes are
// a MalformedRecord error.
func Decode(b []byte) (Record, error) {
	r, n, err := DecodePrefix(b)
	if err != nil {
		return Record{}, err
	}
	if n != len(b) {
		return Record{}, mediarecord.Errorf(mediarecord.MalformedRecord, "record occupies %d of %d bytes", n, len(b))
	}
	return r, nil
}

// DecodePrefix parses the record at the start of b and returns the
// number of bytes it occupies. Bytes after the record are ignored.
func DecodePrefix(b []byte) (Record, int, error) {
	rd := &reader{buf: b}
	owner, err := rd.take(types.PubkeySize)
	if err != nil {
		return Record{}, 0, malformed("owner", err)
	}
	flag, err := rd.u8()
	if err != nil {
		return Record{}, 0, malformed("initialized", err)
	}
	if flag > 1 {
		return Record{}, 0, mediarecord.Errorf(mediarecord.MalformedRecord, "initialized flag is %d", flag)
	}
	r, err := readBody(rd)
	if err != nil {
		return Record{}, 0, err
	}
	copy(r.Owner[:], owner)
	r.Initialized = flag == 1
	return r, rd.off, nil
}

// DecodeBody parses a buffer holding exactly the body fields written by
// EncodeBody. Owner and Initialized are left zero.
func DecodeBody(b []byte) (Record, error) {
	rd := &reader{buf: b}
	r, err := readBody(rd)
	if err != nil {
		return Record{}, err
	}
	if rd.remaining() != 0 {
		return Record{}, mediarecord.Errorf(mediarecord.MalformedRecord, "%d trailing bytes after record fields", rd.remaining())
	}
	return r, nil
}

func readBody(rd *reader) (Record, error) {
	var r Record
	var err error
	if r.Price, err = rd.u64(); err != nil {
		return Record{}, malformed("price", err)
	}
	strs := []struct {
		name string
		dst  *string
	}{
		{"url", &r.URL},
		{"name", &r.Name},
		{"description", &r.Description},
	}
	for _, s := range strs {
		b, err := rd.prefixed()
		if err != nil {
			return Record{}, malformed(s.name, err)
		}
		if !utf8.Valid(b) {
			return Record{}, mediarecord.Errorf(mediarecord.MalformedRecord, "%s is not valid UTF-8", s.name)
		}
		*s.dst = string(b)
	}
	if r.Blob, err = rd.prefixed(); err != nil {
		return Record{}, malformed("blob", err)
	}
	return r, nil
}

// IsInitialized reports whether buf carries a non-zero initialized
// flag. A buffer too short to hold the flag does not encode a record.
func IsInitialized(buf []byte) bool {
	if len(buf) <= InitializedOffset {
		return false
	}
	return buf[InitializedOffset] != 0
}

func malformed(field string, err error) error {
	return mediarecord.Wrap(mediarecord.MalformedRecord, err, fmt.Sprintf("%s: %v", field, err))
}

// internalError reports a writer overrun on a buffer Size already
// accounted for.
func internalError(err error) error {
	return mediarecord.Wrap(mediarecord.MalformedRecord, err, fmt.Sprintf("encode: %v", err))
}
