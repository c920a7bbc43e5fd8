package types

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/bits"
)

// RentDataSize is the encoded size of Rent inside the rent oracle
// account: [8]lamports_per_byte_year [8]exemption_threshold(f64) [1]burn_percent.
const RentDataSize = 17

// AccountStorageOverhead is the number of bytes charged for every
// account on top of its data.
const AccountStorageOverhead = 128

// MaxAccountDataLen is the largest account data length a runtime
// allocates. Rent parameters must price it without overflow.
const MaxAccountDataLen = 10 * 1024 * 1024

// maxBalance is 2^64, the first float64 not representable as uint64.
const maxBalance = 0x1p64

// Rent holds the parameters the rent oracle uses to compute the balance
// an account needs to be exempt from rent collection.
type Rent struct {
	LamportsPerByteYear uint64
	ExemptionThreshold  float64
	BurnPercent         uint8
}

// DefaultRent returns the standard rent parameters.
func DefaultRent() Rent {
	return Rent{
		LamportsPerByteYear: 3480,
		ExemptionThreshold:  2.0,
		BurnPercent:         50,
	}
}

// MinimumBalance returns the lamports an account holding dataLen bytes
// needs to be rent exempt. Results that do not fit in a uint64, and
// invalid thresholds, saturate to math.MaxUint64 so no balance
// satisfies them.
func (r Rent) MinimumBalance(dataLen int) uint64 {
	n, _ := r.minimumBalance(dataLen)
	return n
}

// minimumBalance is MinimumBalance plus whether the result is exact.
func (r Rent) minimumBalance(dataLen int) (uint64, bool) {
	if dataLen < 0 {
		dataLen = 0
	}
	hi, lo := bits.Mul64(uint64(AccountStorageOverhead)+uint64(dataLen), r.LamportsPerByteYear)
	if hi != 0 {
		return math.MaxUint64, false
	}
	f := float64(lo) * r.ExemptionThreshold
	if math.IsNaN(f) || f < 0 || f >= maxBalance {
		return math.MaxUint64, false
	}
	return uint64(f), true
}

// Encode serializes r into the rent oracle account layout.
func (r Rent) Encode() []byte {
	buf := make([]byte, RentDataSize)
	binary.LittleEndian.PutUint64(buf[0:8], r.LamportsPerByteYear)
	binary.LittleEndian.PutUint64(buf[8:16], math.Float64bits(r.ExemptionThreshold))
	buf[16] = r.BurnPercent
	return buf
}

// DecodeRent parses the rent oracle account layout. Trailing bytes are
// not allowed.
func DecodeRent(data []byte) (Rent, error) {
	if len(data) != RentDataSize {
		return Rent{}, fmt.Errorf("rent data must be %d bytes, got %d", RentDataSize, len(data))
	}
	r := Rent{
		LamportsPerByteYear: binary.LittleEndian.Uint64(data[0:8]),
		ExemptionThreshold:  math.Float64frombits(binary.LittleEndian.Uint64(data[8:16])),
		BurnPercent:         data[16],
	}
	if math.IsNaN(r.ExemptionThreshold) || math.IsInf(r.ExemptionThreshold, 0) || r.ExemptionThreshold < 0 {
		return Rent{}, fmt.Errorf("invalid exemption threshold %v", r.ExemptionThreshold)
	}
	if r.BurnPercent > 100 {
		return Rent{}, fmt.Errorf("burn percent %d exceeds 100", r.BurnPercent)
	}
	if _, ok := r.minimumBalance(MaxAccountDataLen); !ok {
		return Rent{}, fmt.Errorf("rent of %d bytes overflows: %d lamports per byte-year, threshold %v",
			MaxAccountDataLen, r.LamportsPerByteYear, r.ExemptionThreshold)
	}
	return r, nil
}

// NewRentAccount builds the rent oracle account for r.
func NewRentAccount(r Rent) Account {
	data := r.Encode()
	return Account{
		Lamports: r.MinimumBalance(len(data)),
		Owner:    SysvarOwnerID,
		Data:     data,
	}
}
