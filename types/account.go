package types

// Account is a ledger entry held by the host runtime: a fixed-capacity
// data buffer, a lamport balance and the program that owns it.
//
// The capacity (len(Data)) is fixed when the account is opened.
type Account struct {
	Lamports   uint64 `cramberry:"1"`
	Owner      Pubkey `cramberry:"2"`
	Data       []byte `cramberry:"3"`
	Executable bool   `cramberry:"4"`
}

// Clone returns a deep copy of the account.
func (a Account) Clone() Account {
	c := a
	if a.Data != nil {
		c.Data = make([]byte, len(a.Data))
		copy(c.Data, a.Data)
	}
	return c
}

// AccountMeta names an account an instruction touches, and the role
// it plays in that instruction.
type AccountMeta struct {
	Key        Pubkey `cramberry:"1"`
	IsSigner   bool   `cramberry:"2"`
	IsWritable bool   `cramberry:"3"`
}

// AccountInfo is the call-scoped view of an account handed to a
// program. The host builds a fresh AccountInfo for each invocation and
// inspects Data after the program returns; programs must not retain it.
type AccountInfo struct {
	Key        Pubkey
	IsSigner   bool
	IsWritable bool
	Lamports   uint64
	Owner      Pubkey
	Data       []byte
}

// NewAccountInfo builds a program view of acct addressed by meta. The
// data buffer is copied.
func NewAccountInfo(meta AccountMeta, acct Account) *AccountInfo {
	data := make([]byte, len(acct.Data))
	copy(data, acct.Data)
	return &AccountInfo{
		Key:        meta.Key,
		IsSigner:   meta.IsSigner,
		IsWritable: meta.IsWritable,
		Lamports:   acct.Lamports,
		Owner:      acct.Owner,
		Data:       data,
	}
}
