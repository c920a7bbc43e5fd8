package types

// GenesisAccount is an account present in the ledger at genesis.
type GenesisAccount struct {
	Key     Pubkey  `cramberry:"1"`
	Account Account `cramberry:"2"`
}

// GenesisDoc describes the initial ledger.
type GenesisDoc struct {
	ChainID     string           `cramberry:"1"`
	GenesisTime Timestamp        `cramberry:"2"`
	Accounts    []GenesisAccount `cramberry:"3"`
}

// GenesisResult reports the ledger fingerprint after genesis.
type GenesisResult struct {
	StateHash Hash `cramberry:"1"`
}
