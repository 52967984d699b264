package protocol

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseSerializeRoundTripAcrossRegistry(t *testing.T) {
	for _, vendor := range []Vendor{VendorTrezor, VendorKeepKey} {
		for _, e := range sharedEntries {
			msg := e.New()
			tag, body, err := Serialize(vendor, e.Label, msg)
			require.NoErrorf(t, err, "label=%s vendor=%v", e.Label, vendor)
			require.Equal(t, e.TypeTag, tag)

			gotLabel, gotMsg, err := Parse(vendor, tag, body)
			require.NoErrorf(t, err, "label=%s vendor=%v", e.Label, vendor)
			require.Equal(t, e.Label, gotLabel)
			require.IsType(t, msg, gotMsg)
		}
	}
}

func TestParseUnknownTypeTag(t *testing.T) {
	_, _, err := Parse(VendorTrezor, 0xFFFF, nil)
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestSerializeUnknownLabel(t *testing.T) {
	_, _, err := Serialize(VendorTrezor, Label("NOT_A_LABEL"), &RawMessage{})
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestFeaturesRoundTrip(t *testing.T) {
	want := &Features{
		Vendor:               "trezor.io",
		MajorVersion:         2,
		MinorVersion:         5,
		PatchVersion:         3,
		BootloaderMode:       false,
		DeviceID:             "ABCDEF",
		PinProtection:        true,
		PassphraseProtection: true,
		Label:                "My Trezor",
		Initialized:          true,
	}
	body, err := want.MarshalProto()
	require.NoError(t, err)

	got := &Features{}
	require.NoError(t, got.UnmarshalProto(body))
	require.Equal(t, want, got)
}

func TestTxAckRoundTripWithNestedInput(t *testing.T) {
	want := &TxAck{Tx: &TransactionType{
		Inputs: []*TxInputType{{
			AddressN:   []uint32{44 | 0x80000000, 0, 0, 0, 1},
			PrevHash:   []byte{1, 2, 3, 4},
			PrevIndex:  1,
			ScriptSig:  []byte{0xAB},
			Sequence:   0xFFFFFFFF,
			ScriptType: InputScriptSpendAddress,
		}},
	}}
	body, err := want.MarshalProto()
	require.NoError(t, err)

	got := &TxAck{}
	require.NoError(t, got.UnmarshalProto(body))
	require.Equal(t, want, got)
}

func TestGetPublicKeyPackedAddressN(t *testing.T) {
	want := &GetPublicKey{AddressN: []uint32{44 | 0x80000000, 0 | 0x80000000, 0 | 0x80000000}, ShowDisplay: true}
	body, err := want.MarshalProto()
	require.NoError(t, err)

	got := &GetPublicKey{}
	require.NoError(t, got.UnmarshalProto(body))
	require.Equal(t, want, got)
}
