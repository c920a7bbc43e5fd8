// Package record implements the fixed binary layout of a media record
// as stored inside an account buffer.
//
// # Layout
//
//	offset  size   field
//	0       32     owner (raw public key)
//	32      1      initialized (0 = false, 1 = true)
//	33      8      price (little-endian u64)
//	41      4+N    url (u32 LE length + UTF-8)
//	...     4+N    name (u32 LE length + UTF-8)
//	...     4+N    description (u32 LE length + UTF-8)
//	...     4+N    blob (u32 LE length + raw bytes)
//
// Every read and write goes through a bounds-checked cursor; account
// memory is never reinterpreted as a Go struct.
//
// # Sub-ranges
//
// An account buffer is usually larger than the record it holds. Decode
// requires the input to be exactly one record; DecodePrefix decodes the
// record at the start of a larger buffer and reports how many bytes it
// occupies, so callers can address that sub-range when rewriting it.
package record
