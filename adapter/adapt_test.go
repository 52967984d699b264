package adapter

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julienbureau/multibit-hardware/protocol"
)

func TestAdaptFeatures(t *testing.T) {
	msg := &protocol.Features{Label: "My Trezor", Initialized: true, MajorVersion: 2}
	info, ok := Adapt(protocol.VendorTrezor, protocol.LabelFeatures, msg)
	require.True(t, ok)
	fi := info.(FeaturesInfo)
	require.Equal(t, "My Trezor", fi.Label)
	require.True(t, fi.Initialized)
	require.Equal(t, uint32(2), fi.MajorVersion)
}

func TestAdaptPublicKeyWithNode(t *testing.T) {
	msg := &protocol.PublicKey{
		Node: &protocol.HDNodeType{Depth: 3, ChainCode: []byte{1, 2}, PublicKey: []byte{3, 4}},
		Xpub: "xpub6...",
	}
	info, ok := Adapt(protocol.VendorKeepKey, protocol.LabelPublicKey, msg)
	require.True(t, ok)
	pki := info.(PublicKeyInfo)
	require.Equal(t, uint32(3), pki.Depth)
	require.Equal(t, []byte{1, 2}, pki.ChainCode)
	require.Equal(t, "xpub6...", pki.Xpub)
}

func TestAdaptTxRequestCurrentVsAncestor(t *testing.T) {
	current := &protocol.TxRequest{
		RequestType: protocol.TxRequestTxInput,
		Details:     &protocol.TxRequestDetailsType{RequestIndex: 2},
	}
	info, ok := Adapt(protocol.VendorTrezor, protocol.LabelTxRequest, current)
	require.True(t, ok)
	ti := info.(TxRequestInfo)
	require.False(t, ti.HasTxHash)
	require.Equal(t, uint32(2), ti.RequestIndex)

	ancestor := &protocol.TxRequest{
		RequestType: protocol.TxRequestTxMeta,
		Details:     &protocol.TxRequestDetailsType{TxHash: []byte{0xde, 0xad}},
	}
	info, ok = Adapt(protocol.VendorTrezor, protocol.LabelTxRequest, ancestor)
	require.True(t, ok)
	ti = info.(TxRequestInfo)
	require.True(t, ti.HasTxHash)
	require.Equal(t, []byte{0xde, 0xad}, ti.TxHash)
}

func TestAdaptControlLabelsNotOK(t *testing.T) {
	_, ok := Adapt(protocol.VendorTrezor, protocol.LabelButtonAck, &protocol.ButtonAck{})
	require.False(t, ok)
}

func TestAdaptPinMatrixAndButtonCodesAgreeBetweenVendors(t *testing.T) {
	pin := &protocol.PinMatrixRequest{Type: 2}
	trezorInfo, _ := Adapt(protocol.VendorTrezor, protocol.LabelPinMatrixRequest, pin)
	keepkeyInfo, _ := Adapt(protocol.VendorKeepKey, protocol.LabelPinMatrixRequest, pin)
	require.Equal(t, trezorInfo.(PinMatrixRequestInfo).Type, keepkeyInfo.(PinMatrixRequestInfo).Type)
}
