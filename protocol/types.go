// Package protocol implements the codec registry (C2): it maps a vendor and
// wire type tag to a concrete message schema and parses/serializes message
// bodies using the low-level protobuf wire primitives in
// google.golang.org/protobuf/encoding/protowire, since this module cannot
// run protoc to generate full bindings from the upstream .proto schemas.
package protocol

import "github.com/julienbureau/multibit-hardware/transport"

// Vendor re-exports transport.Vendor so callers can thread a single vendor
// value from discovery through framing into the codec registry.
type Vendor = transport.Vendor

const (
	VendorTrezor  = transport.VendorTrezor
	VendorKeepKey = transport.VendorKeepKey
)

// Label is the closed union of message kinds across both vendor schemas,
// named exactly as the upstream trezor-common / keepkey messages.proto
// MessageType enum names them.
type Label string

const (
	LabelInitialize         Label = "Initialize"
	LabelPing               Label = "Ping"
	LabelSuccess            Label = "Success"
	LabelFailure            Label = "Failure"
	LabelChangePin          Label = "ChangePin"
	LabelWipeDevice         Label = "WipeDevice"
	LabelFirmwareErase      Label = "FirmwareErase"
	LabelFirmwareUpload     Label = "FirmwareUpload"
	LabelGetEntropy         Label = "GetEntropy"
	LabelEntropy            Label = "Entropy"
	LabelGetPublicKey       Label = "GetPublicKey"
	LabelPublicKey          Label = "PublicKey"
	LabelLoadDevice         Label = "LoadDevice"
	LabelResetDevice        Label = "ResetDevice"
	LabelSignTx             Label = "SignTx"
	LabelSimpleSignTx       Label = "SimpleSignTx"
	LabelFeatures           Label = "Features"
	LabelGetFeatures        Label = "GetFeatures"
	LabelPinMatrixRequest   Label = "PinMatrixRequest"
	LabelPinMatrixAck       Label = "PinMatrixAck"
	LabelCancel             Label = "Cancel"
	LabelTxRequest          Label = "TxRequest"
	LabelTxAck              Label = "TxAck"
	LabelCipherKeyValue     Label = "CipherKeyValue"
	LabelClearSession       Label = "ClearSession"
	LabelApplySettings      Label = "ApplySettings"
	LabelButtonRequest      Label = "ButtonRequest"
	LabelButtonAck          Label = "ButtonAck"
	LabelGetAddress         Label = "GetAddress"
	LabelAddress            Label = "Address"
	LabelEntropyRequest     Label = "EntropyRequest"
	LabelEntropyAck         Label = "EntropyAck"
	LabelSignMessage        Label = "SignMessage"
	LabelVerifyMessage      Label = "VerifyMessage"
	LabelMessageSignature   Label = "MessageSignature"
	LabelPassphraseRequest  Label = "PassphraseRequest"
	LabelPassphraseAck      Label = "PassphraseAck"
	LabelEstimateTxSize     Label = "EstimateTxSize"
	LabelTxSize             Label = "TxSize"
	LabelRecoveryDevice     Label = "RecoveryDevice"
	LabelWordRequest        Label = "WordRequest"
	LabelWordAck            Label = "WordAck"
	LabelCipheredKeyValue   Label = "CipheredKeyValue"
	LabelEncryptMessage     Label = "EncryptMessage"
	LabelEncryptedMessage   Label = "EncryptedMessage"
	LabelDecryptMessage     Label = "DecryptMessage"
	LabelDecryptedMessage   Label = "DecryptedMessage"
	LabelSignIdentity       Label = "SignIdentity"
	LabelSignedIdentity     Label = "SignedIdentity"
	LabelDebugLinkDecision  Label = "DebugLinkDecision"
	LabelDebugLinkGetState  Label = "DebugLinkGetState"
	LabelDebugLinkState     Label = "DebugLinkState"
	LabelDebugLinkStop      Label = "DebugLinkStop"
	LabelDebugLinkLog       Label = "DebugLinkLog"
)

// Message is implemented by every concrete schema the registry knows how to
// parse and serialize.
type Message interface {
	MarshalProto() ([]byte, error)
	UnmarshalProto([]byte) error
}
