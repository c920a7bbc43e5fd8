package program_test

import (
	"bytes"
	"testing"

	"github.com/blockberries/mediarecord"
	"github.com/blockberries/mediarecord/instruction"
	"github.com/blockberries/mediarecord/program"
	"github.com/blockberries/mediarecord/record"
	"github.com/blockberries/mediarecord/types"
)

var (
	programID = types.Pubkey{0xAA, 0xBB}
	ownerKey  = types.Pubkey{0x01}
	otherKey  = types.Pubkey{0x02}
)

// clipRent is the rent-exempt minimum for the 82-byte clip record.
const clipRent = 1_461_600

func clipArgs() instruction.CreateRecord {
	return instruction.CreateRecord{
		Price:       100,
		URL:         "https://cdn/x.mp4",
		Name:        "Clip",
		Description: "demo",
	}
}

func newTarget(key types.Pubkey, space int, lamports uint64) *types.AccountInfo {
	return &types.AccountInfo{
		Key:        key,
		IsSigner:   true,
		IsWritable: true,
		Lamports:   lamports,
		Owner:      programID,
		Data:       make([]byte, space),
	}
}

func rentInfo() *types.AccountInfo {
	return types.NewAccountInfo(types.AccountMeta{Key: types.RentSysvarID}, types.NewRentAccount(types.DefaultRent()))
}

func signerInfo(key types.Pubkey, signed bool) *types.AccountInfo {
	return &types.AccountInfo{Key: key, IsSigner: signed, Owner: types.SystemProgramID}
}

func createData(t *testing.T, args instruction.CreateRecord) []byte {
	t.Helper()
	data, err := instruction.EncodeCreateRecord(args)
	if err != nil {
		t.Fatalf("EncodeCreateRecord: %v", err)
	}
	return data
}

func transferData(newOwner types.Pubkey) []byte {
	return instruction.EncodeTransferRecord(instruction.TransferRecord{NewOwner: newOwner})
}

// createClip stores the clip record in a fresh 200-byte account.
func createClip(t *testing.T) *types.AccountInfo {
	t.Helper()
	target := newTarget(ownerKey, 200, clipRent)
	if err := program.New().Process(programID, []*types.AccountInfo{target, rentInfo()}, createData(t, clipArgs())); err != nil {
		t.Fatalf("create: %v", err)
	}
	return target
}

func requireKind(t *testing.T, err error, kind mediarecord.ErrorKind) {
	t.Helper()
	if !mediarecord.IsKind(err, kind) {
		t.Fatalf("expected %s, got %v", kind, err)
	}
}

func TestProcess_EndToEnd(t *testing.T) {
	p := program.New()
	target := createClip(t)

	rec, n, err := record.DecodePrefix(target.Data)
	if err != nil {
		t.Fatalf("DecodePrefix: %v", err)
	}
	if n != 82 {
		t.Errorf("record occupies %d bytes, want 82", n)
	}
	want := record.Record{
		Owner:       ownerKey,
		Initialized: true,
		Price:       100,
		URL:         "https://cdn/x.mp4",
		Name:        "Clip",
		Description: "demo",
	}
	if !rec.Equal(want) {
		t.Fatalf("stored record mismatch:\n got  %+v\n want %+v", rec, want)
	}
	if !bytes.Equal(target.Data[n:], make([]byte, 200-n)) {
		t.Error("bytes past the record were touched")
	}

	err = p.Process(programID, []*types.AccountInfo{target, signerInfo(ownerKey, true)}, transferData(otherKey))
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	rec, _, err = record.DecodePrefix(target.Data)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Owner != otherKey {
		t.Errorf("owner = %s, want %s", rec.Owner, otherKey)
	}
	if rec.Price != 100 || rec.URL != want.URL || !rec.Initialized {
		t.Errorf("transfer changed more than the owner: %+v", rec)
	}
}

func TestProcess_CreateTwice(t *testing.T) {
	target := createClip(t)
	before := append([]byte(nil), target.Data...)

	args := clipArgs()
	args.Price = 999
	err := program.New().Process(programID, []*types.AccountInfo{target, rentInfo()}, createData(t, args))
	requireKind(t, err, mediarecord.AccountAlreadyInitialized)
	if !bytes.Equal(target.Data, before) {
		t.Fatal("rejected create modified the account")
	}
}

func TestProcess_CreateCheckOrder(t *testing.T) {
	initialized := make([]byte, 200)
	initialized[record.InitializedOffset] = 1

	testCases := []struct {
		name     string
		space    int
		data     []byte
		lamports uint64
		want     mediarecord.ErrorKind
	}{
		{"initialized beats rent", 200, initialized, 0, mediarecord.AccountAlreadyInitialized},
		{"empty buffer is uninitialized", 0, nil, clipRent, mediarecord.BufferTooSmall},
		{"rent beats capacity", 10, nil, clipRent - 1, mediarecord.InsufficientFunds},
		{"rent one short", 200, nil, clipRent - 1, mediarecord.InsufficientFunds},
		{"buffer shorter than flag", 10, nil, clipRent, mediarecord.BufferTooSmall},
		{"capacity one short", 81, nil, clipRent, mediarecord.BufferTooSmall},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := newTarget(ownerKey, tc.space, tc.lamports)
			if tc.data != nil {
				target.Data = append([]byte(nil), tc.data...)
			}
			before := append([]byte(nil), target.Data...)

			err := program.New().Process(programID, []*types.AccountInfo{target, rentInfo()}, createData(t, clipArgs()))
			requireKind(t, err, tc.want)
			if !bytes.Equal(target.Data, before) {
				t.Fatal("failed create modified the account")
			}
		})
	}
}

func TestProcess_CapacityBoundary(t *testing.T) {
	target := newTarget(ownerKey, 82, clipRent)
	if err := program.New().Process(programID, []*types.AccountInfo{target, rentInfo()}, createData(t, clipArgs())); err != nil {
		t.Fatalf("record exactly filling the account should succeed: %v", err)
	}
	rec, err := record.Decode(target.Data)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if rec.Name != "Clip" {
		t.Errorf("name = %q", rec.Name)
	}
}

func TestProcess_RentUsesOracleParameters(t *testing.T) {
	cheap := types.Rent{LamportsPerByteYear: 1, ExemptionThreshold: 1.0}
	oracle := types.NewAccountInfo(types.AccountMeta{Key: types.RentSysvarID}, types.NewRentAccount(cheap))

	// (128 + 82) * 1 * 1.0
	target := newTarget(ownerKey, 200, 210)
	if err := program.New().Process(programID, []*types.AccountInfo{target, oracle}, createData(t, clipArgs())); err != nil {
		t.Fatalf("create with cheap rent: %v", err)
	}

	target = newTarget(ownerKey, 200, 209)
	err := program.New().Process(programID, []*types.AccountInfo{target, oracle}, createData(t, clipArgs()))
	requireKind(t, err, mediarecord.InsufficientFunds)
}

func TestProcess_RentOracleOverflowRejected(t *testing.T) {
	huge := types.Rent{LamportsPerByteYear: 1 << 63, ExemptionThreshold: 1}
	oracle := types.NewAccountInfo(types.AccountMeta{Key: types.RentSysvarID}, types.NewRentAccount(huge))

	target := newTarget(ownerKey, 200, 0)
	err := program.New().Process(programID, []*types.AccountInfo{target, oracle}, createData(t, clipArgs()))
	requireKind(t, err, mediarecord.InvalidAccountData)
	if !bytes.Equal(target.Data, make([]byte, 200)) {
		t.Fatal("rejected create wrote to the account")
	}
}

func TestProcess_CreateAccountRoles(t *testing.T) {
	badRent := rentInfo()
	badRent.Data = badRent.Data[:16]

	foreignRent := rentInfo()
	foreignRent.Owner = programID

	testCases := []struct {
		name     string
		accounts func() []*types.AccountInfo
	}{
		{"no accounts", func() []*types.AccountInfo { return nil }},
		{"target only", func() []*types.AccountInfo {
			return []*types.AccountInfo{newTarget(ownerKey, 200, clipRent)}
		}},
		{"extra account", func() []*types.AccountInfo {
			return []*types.AccountInfo{newTarget(ownerKey, 200, clipRent), rentInfo(), rentInfo()}
		}},
		{"nil target", func() []*types.AccountInfo {
			return []*types.AccountInfo{nil, rentInfo()}
		}},
		{"target read-only", func() []*types.AccountInfo {
			a := newTarget(ownerKey, 200, clipRent)
			a.IsWritable = false
			return []*types.AccountInfo{a, rentInfo()}
		}},
		{"target owned by another program", func() []*types.AccountInfo {
			a := newTarget(ownerKey, 200, clipRent)
			a.Owner = types.SystemProgramID
			return []*types.AccountInfo{a, rentInfo()}
		}},
		{"target did not sign", func() []*types.AccountInfo {
			a := newTarget(ownerKey, 200, clipRent)
			a.IsSigner = false
			return []*types.AccountInfo{a, rentInfo()}
		}},
		{"rent oracle wrong key", func() []*types.AccountInfo {
			r := rentInfo()
			r.Key = otherKey
			return []*types.AccountInfo{newTarget(ownerKey, 200, clipRent), r}
		}},
		{"rent oracle wrong owner", func() []*types.AccountInfo {
			return []*types.AccountInfo{newTarget(ownerKey, 200, clipRent), foreignRent}
		}},
		{"rent oracle bad data", func() []*types.AccountInfo {
			return []*types.AccountInfo{newTarget(ownerKey, 200, clipRent), badRent}
		}},
		{"accounts swapped", func() []*types.AccountInfo {
			return []*types.AccountInfo{rentInfo(), newTarget(ownerKey, 200, clipRent)}
		}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			accounts := tc.accounts()
			err := program.New().Process(programID, accounts, createData(t, clipArgs()))
			requireKind(t, err, mediarecord.InvalidAccountData)
			for _, a := range accounts {
				if a != nil && a.Key == ownerKey && !bytes.Equal(a.Data, make([]byte, len(a.Data))) {
					t.Fatal("rejected create wrote account data")
				}
			}
		})
	}
}

func TestProcess_TransferAuthorization(t *testing.T) {
	testCases := []struct {
		name   string
		signer *types.AccountInfo
		want   mediarecord.ErrorKind
	}{
		{"wrong key", signerInfo(otherKey, true), mediarecord.Unauthorized},
		{"owner did not sign", signerInfo(ownerKey, false), mediarecord.Unauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			target := createClip(t)
			before := append([]byte(nil), target.Data...)

			err := program.New().Process(programID, []*types.AccountInfo{target, tc.signer}, transferData(otherKey))
			requireKind(t, err, tc.want)
			if !bytes.Equal(target.Data, before) {
				t.Fatal("rejected transfer modified the record")
			}
		})
	}
}

func TestProcess_TransferOnlyChangesOwner(t *testing.T) {
	target := createClip(t)
	before := append([]byte(nil), target.Data...)

	if err := program.New().Process(programID, []*types.AccountInfo{target, signerInfo(ownerKey, true)}, transferData(otherKey)); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(target.Data[:record.InitializedOffset], otherKey[:]) {
		t.Error("owner bytes not rewritten")
	}
	if !bytes.Equal(target.Data[record.InitializedOffset:], before[record.InitializedOffset:]) {
		t.Error("transfer changed bytes other than the owner")
	}

	// The previous owner has lost authority; the new one has it.
	err := program.New().Process(programID, []*types.AccountInfo{target, signerInfo(ownerKey, true)}, transferData(ownerKey))
	requireKind(t, err, mediarecord.Unauthorized)
	if err := program.New().Process(programID, []*types.AccountInfo{target, signerInfo(otherKey, true)}, transferData(ownerKey)); err != nil {
		t.Fatalf("new owner transfer: %v", err)
	}
}

func TestProcess_TransferSignerIsTarget(t *testing.T) {
	target := createClip(t)
	// The host passes one shared view when a key appears twice.
	if err := program.New().Process(programID, []*types.AccountInfo{target, target}, transferData(otherKey)); err != nil {
		t.Fatalf("transfer: %v", err)
	}
	rec, _, err := record.DecodePrefix(target.Data)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Owner != otherKey {
		t.Errorf("owner = %s", rec.Owner)
	}
}

func TestProcess_TransferInvalidTarget(t *testing.T) {
	corrupt := createClip(t)
	// Announce a url longer than the account.
	corrupt.Data[record.URLOffset+3] = 0x7F

	testCases := []struct {
		name     string
		accounts []*types.AccountInfo
		want     mediarecord.ErrorKind
	}{
		{"uninitialized", []*types.AccountInfo{newTarget(ownerKey, 200, clipRent), signerInfo(ownerKey, true)}, mediarecord.InvalidAccountData},
		{"empty buffer", []*types.AccountInfo{newTarget(ownerKey, 0, clipRent), signerInfo(ownerKey, true)}, mediarecord.InvalidAccountData},
		{"corrupt record", []*types.AccountInfo{corrupt, signerInfo(ownerKey, true)}, mediarecord.MalformedRecord},
		{"one account", []*types.AccountInfo{createClip(t)}, mediarecord.InvalidAccountData},
		{"nil signer", []*types.AccountInfo{createClip(t), nil}, mediarecord.InvalidAccountData},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := program.New().Process(programID, tc.accounts, transferData(otherKey))
			requireKind(t, err, tc.want)
		})
	}
}

func TestProcess_TransferTargetRoles(t *testing.T) {
	readOnly := createClip(t)
	readOnly.IsWritable = false
	foreign := createClip(t)
	foreign.Owner = types.SystemProgramID

	for name, target := range map[string]*types.AccountInfo{"read-only": readOnly, "foreign owner": foreign} {
		t.Run(name, func(t *testing.T) {
			err := program.New().Process(programID, []*types.AccountInfo{target, signerInfo(ownerKey, true)}, transferData(otherKey))
			requireKind(t, err, mediarecord.InvalidAccountData)
		})
	}
}

func TestProcess_InvalidInstruction(t *testing.T) {
	target := newTarget(ownerKey, 200, clipRent)
	for _, data := range [][]byte{nil, {0x02}, {0xFF, 0x00}, {0x01, 0x01}} {
		err := program.New().Process(programID, []*types.AccountInfo{target, rentInfo()}, data)
		requireKind(t, err, mediarecord.InvalidInstructionData)
	}
	if !bytes.Equal(target.Data, make([]byte, 200)) {
		t.Fatal("invalid instruction modified the account")
	}
}

func TestProcessInstruction(t *testing.T) {
	target := newTarget(ownerKey, 200, clipRent)
	if err := program.ProcessInstruction(programID, []*types.AccountInfo{target, rentInfo()}, createData(t, clipArgs())); err != nil {
		t.Fatal(err)
	}
	if !record.IsInitialized(target.Data) {
		t.Fatal("record not stored")
	}
}

func TestProgram_InstructionName(t *testing.T) {
	p := program.New()
	if got := p.InstructionName(createData(t, clipArgs())); got != "create_record" {
		t.Errorf("got %q", got)
	}
	if got := p.InstructionName(transferData(otherKey)); got != "transfer_record" {
		t.Errorf("got %q", got)
	}
}
