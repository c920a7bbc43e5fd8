package record_test

import (
	"fmt"

	"github.com/blockberries/mediarecord/record"
	"github.com/blockberries/mediarecord/types"
)

func ExampleEncode() {
	r := record.Record{
		Owner:       types.Pubkey{0x01},
		Initialized: true,
		Price:       100,
		URL:         "https://cdn/x.mp4",
		Name:        "Clip",
		Description: "demo",
	}

	encoded, err := record.Encode(r)
	if err != nil {
		panic(err)
	}
	fmt.Println(len(encoded))

	// An account buffer is usually larger than the record.
	account := make([]byte, 200)
	copy(account, encoded)

	decoded, n, err := record.DecodePrefix(account)
	if err != nil {
		panic(err)
	}
	fmt.Println(n, decoded.Name, decoded.Price)
	// Output:
	// 82
	// 82 Clip 100
}
