package types

// AccountQuery asks for the committed state of one account.
type AccountQuery struct {
	Key Pubkey `cramberry:"1"`
}

// AccountQueryResult is the runtime's answer to an AccountQuery.
type AccountQueryResult struct {
	Found   bool    `cramberry:"1"`
	Account Account `cramberry:"2"`
	// Height of the last committed block.
	Height uint64 `cramberry:"3"`
}

// OpenAccountRequest asks the runtime to open a zeroed account with a
// fixed data capacity, assigned to Owner and funded with Lamports.
type OpenAccountRequest struct {
	Key      Pubkey `cramberry:"1"`
	Owner    Pubkey `cramberry:"2"`
	Space    uint32 `cramberry:"3"`
	Lamports uint64 `cramberry:"4"`
}
