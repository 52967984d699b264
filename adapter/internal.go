// Package adapter implements the Vendor Adapter (C3): a set of pure
// functions projecting vendor protobuf records into one internal,
// vendor-neutral message vocabulary. Downstream consumers (the Session
// Client and Signing Coordinator) read projected fields through the types
// in this package, but they still dispatch on protocol.Label values and
// type-assert the decoded protocol messages themselves.
package adapter

// FeaturesInfo is the vendor-neutral projection of protocol.Features.
type FeaturesInfo struct {
	Vendor                string
	MajorVersion          uint32
	MinorVersion          uint32
	PatchVersion          uint32
	BootloaderMode        bool
	DeviceID              string
	PINProtection         bool
	PassphraseProtection  bool
	Label                 string
	Initialized           bool
}

// PublicKeyInfo is the vendor-neutral projection of protocol.PublicKey.
type PublicKeyInfo struct {
	Depth       uint32
	Fingerprint uint32
	ChildNum    uint32
	ChainCode   []byte
	PublicKey   []byte
	Xpub        string
}

// AddressInfo is the vendor-neutral projection of protocol.Address.
type AddressInfo struct {
	Address string
}

// PinMatrixRequestInfo is the vendor-neutral projection of
// protocol.PinMatrixRequest.
type PinMatrixRequestInfo struct {
	Type uint32
}

// ButtonRequestInfo is the vendor-neutral projection of
// protocol.ButtonRequest.
type ButtonRequestInfo struct {
	Code uint32
}

// TxRequestInfo is the vendor-neutral projection of protocol.TxRequest.
type TxRequestInfo struct {
	RequestType    uint32
	HasTxHash      bool
	TxHash         []byte
	RequestIndex   uint32
	HasSerialized  bool
	SignatureIndex uint32
	Signature      []byte
	SerializedTx   []byte
}

// SuccessInfo is the vendor-neutral projection of protocol.Success.
type SuccessInfo struct {
	Message string
}

// FailureInfo is the vendor-neutral projection of protocol.Failure.
type FailureInfo struct {
	Code    uint32
	Message string
}

// MessageSignatureInfo is the vendor-neutral projection of
// protocol.MessageSignature.
type MessageSignatureInfo struct {
	Address   string
	Signature []byte
}

// CipheredKeyValueInfo is the vendor-neutral projection of
// protocol.CipheredKeyValue.
type CipheredKeyValueInfo struct {
	Value []byte
}

// SignedIdentityInfo is the vendor-neutral projection of
// protocol.SignedIdentity.
type SignedIdentityInfo struct {
	Address   string
	PublicKey []byte
	Signature []byte
}
