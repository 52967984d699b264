package adapter

import (
	"github.com/btcsuite/btcd/btcec/v2"

	"github.com/julienbureau/multibit-hardware/protocol"
)

// Adapt projects a decoded wire record into its vendor-neutral internal
// form. Only the labels enumerated in the component design carry semantic
// payload; everything else (acks, cancels, clear-session, and the
// placeholder RawMessage labels) returns ok=false, since the raw label
// itself is sufficient for the Session Client's dispatch.
func Adapt(v protocol.Vendor, label protocol.Label, msg protocol.Message) (info interface{}, ok bool) {
	switch label {
	case protocol.LabelFeatures:
		m := msg.(*protocol.Features)
		return FeaturesInfo{
			Vendor:               m.Vendor,
			MajorVersion:         m.MajorVersion,
			MinorVersion:         m.MinorVersion,
			PatchVersion:         m.PatchVersion,
			BootloaderMode:       m.BootloaderMode,
			DeviceID:             m.DeviceID,
			PINProtection:        m.PinProtection,
			PassphraseProtection: m.PassphraseProtection,
			Label:                m.Label,
			Initialized:          m.Initialized,
		}, true

	case protocol.LabelPublicKey:
		m := msg.(*protocol.PublicKey)
		info := PublicKeyInfo{Xpub: m.Xpub}
		if m.Node != nil {
			info.Depth = m.Node.Depth
			info.Fingerprint = m.Node.Fingerprint
			info.ChildNum = m.Node.ChildNum
			info.ChainCode = m.Node.ChainCode
			info.PublicKey = m.Node.PublicKey
			// Decompress and recompress the device's curve point so a
			// malformed or non-canonical encoding never reaches the cached
			// Session Context; a point that doesn't parse is left as-is for
			// the caller to reject downstream.
			if pub, err := btcec.ParsePubKey(m.Node.PublicKey); err == nil {
				info.PublicKey = pub.SerializeCompressed()
			}
		}
		return info, true

	case protocol.LabelAddress:
		m := msg.(*protocol.Address)
		return AddressInfo{Address: m.Address}, true

	case protocol.LabelPinMatrixRequest:
		m := msg.(*protocol.PinMatrixRequest)
		return PinMatrixRequestInfo{Type: normalizePinMatrixType(v, m.Type)}, true

	case protocol.LabelButtonRequest:
		m := msg.(*protocol.ButtonRequest)
		return ButtonRequestInfo{Code: normalizeButtonCode(v, m.Code)}, true

	case protocol.LabelTxRequest:
		m := msg.(*protocol.TxRequest)
		info := TxRequestInfo{RequestType: uint32(m.RequestType)}
		if m.Details != nil {
			info.RequestIndex = m.Details.RequestIndex
			if len(m.Details.TxHash) > 0 {
				info.HasTxHash = true
				info.TxHash = m.Details.TxHash
			}
		}
		if m.Serialized != nil {
			info.HasSerialized = true
			info.SignatureIndex = m.Serialized.SignatureIndex
			info.Signature = m.Serialized.Signature
			info.SerializedTx = m.Serialized.SerializedTx
		}
		return info, true

	case protocol.LabelSuccess:
		m := msg.(*protocol.Success)
		return SuccessInfo{Message: m.Message}, true

	case protocol.LabelFailure:
		m := msg.(*protocol.Failure)
		return FailureInfo{Code: m.Code, Message: m.Message}, true

	case protocol.LabelMessageSignature:
		m := msg.(*protocol.MessageSignature)
		return MessageSignatureInfo{Address: m.Address, Signature: m.Signature}, true

	case protocol.LabelCipheredKeyValue:
		m := msg.(*protocol.CipheredKeyValue)
		return CipheredKeyValueInfo{Value: m.Value}, true

	case protocol.LabelSignedIdentity:
		m := msg.(*protocol.SignedIdentity)
		return SignedIdentityInfo{Address: m.Address, PublicKey: m.PublicKey, Signature: m.Signature}, true

	default:
		return nil, false
	}
}

func normalizePinMatrixType(v protocol.Vendor, t uint32) uint32 {
	if v == protocol.VendorKeepKey {
		return keepkeyPinMatrixType(t)
	}
	return trezorPinMatrixType(t)
}

func normalizeButtonCode(v protocol.Vendor, c uint32) uint32 {
	if v == protocol.VendorKeepKey {
		return keepkeyButtonCode(c)
	}
	return trezorButtonCode(c)
}
