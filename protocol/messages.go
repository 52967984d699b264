package protocol

// The messages below give full field fidelity to the labels that carry
// semantic payload through the Session Client and Signing Coordinator (C4,
// C5). Field numbers follow the shape of the upstream trezor-common /
// keepkey messages.proto schemas closely enough to round-trip this module's
// own Marshal/Unmarshal pair; they are not meant to be read by, or to read
// bytes produced by, an unrelated protoc-generated implementation.

// Initialize requests the device's Features. Empty body.
type Initialize struct{}

func (m *Initialize) MarshalProto() ([]byte, error)    { return nil, nil }
func (m *Initialize) UnmarshalProto(data []byte) error { return nil }

// GetFeatures requests the device's Features outside of the initial
// handshake. Empty body.
type GetFeatures struct{}

func (m *GetFeatures) MarshalProto() ([]byte, error)    { return nil, nil }
func (m *GetFeatures) UnmarshalProto(data []byte) error { return nil }

// Ping round-trips Message, optionally demanding a reprompt.
type Ping struct {
	Message              string
	ButtonProtection     bool
	PinProtection        bool
	PassphraseProtection bool
}

func (m *Ping) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Message)
	b = appendBool(b, 2, m.ButtonProtection)
	b = appendBool(b, 3, m.PinProtection)
	b = appendBool(b, 4, m.PassphraseProtection)
	return b, nil
}

func (m *Ping) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Message = string(raw)
		case 2:
			m.ButtonProtection = u64 != 0
		case 3:
			m.PinProtection = u64 != 0
		case 4:
			m.PassphraseProtection = u64 != 0
		}
	}
	return it.err
}

// Success carries an optional human-readable message.
type Success struct {
	Message string
}

func (m *Success) MarshalProto() ([]byte, error) {
	return appendString(nil, 1, m.Message), nil
}

func (m *Success) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			m.Message = string(raw)
		}
	}
	return it.err
}

// Failure is the device's error report for the current operation.
type Failure struct {
	Code    uint32
	Message string
}

func (m *Failure) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendUint32(b, 1, m.Code)
	b = appendString(b, 2, m.Message)
	return b, nil
}

func (m *Failure) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Code = uint32(u64)
		case 2:
			m.Message = string(raw)
		}
	}
	return it.err
}

// Features describes the attached device.
type Features struct {
	Vendor                string
	MajorVersion          uint32
	MinorVersion          uint32
	PatchVersion          uint32
	BootloaderMode        bool
	DeviceID              string
	PinProtection         bool
	PassphraseProtection  bool
	Label                 string
	Initialized           bool
}

func (m *Features) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Vendor)
	b = appendUint32(b, 2, m.MajorVersion)
	b = appendUint32(b, 3, m.MinorVersion)
	b = appendUint32(b, 4, m.PatchVersion)
	b = appendBool(b, 5, m.BootloaderMode)
	b = appendString(b, 6, m.DeviceID)
	b = appendBool(b, 7, m.PinProtection)
	b = appendBool(b, 8, m.PassphraseProtection)
	b = appendString(b, 9, m.Label)
	b = appendBool(b, 10, m.Initialized)
	return b, nil
}

func (m *Features) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Vendor = string(raw)
		case 2:
			m.MajorVersion = uint32(u64)
		case 3:
			m.MinorVersion = uint32(u64)
		case 4:
			m.PatchVersion = uint32(u64)
		case 5:
			m.BootloaderMode = u64 != 0
		case 6:
			m.DeviceID = string(raw)
		case 7:
			m.PinProtection = u64 != 0
		case 8:
			m.PassphraseProtection = u64 != 0
		case 9:
			m.Label = string(raw)
		case 10:
			m.Initialized = u64 != 0
		}
	}
	return it.err
}

// GetPublicKey requests the extended public key at AddressN.
type GetPublicKey struct {
	AddressN    []uint32
	ShowDisplay bool
}

func (m *GetPublicKey) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendPackedVarints(b, 1, m.AddressN)
	b = appendBool(b, 2, m.ShowDisplay)
	return b, nil
}

func (m *GetPublicKey) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			vs, err := unpackVarints(raw)
			if err != nil {
				return err
			}
			m.AddressN = vs
		case 2:
			m.ShowDisplay = u64 != 0
		}
	}
	return it.err
}

// HDNodeType is the BIP-32 node descriptor embedded in PublicKey responses.
type HDNodeType struct {
	Depth       uint32
	Fingerprint uint32
	ChildNum    uint32
	ChainCode   []byte
	PublicKey   []byte
}

func (m *HDNodeType) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendUint32(b, 1, m.Depth)
	b = appendUint32(b, 2, m.Fingerprint)
	b = appendUint32(b, 3, m.ChildNum)
	b = appendBytes(b, 4, m.ChainCode)
	b = appendBytes(b, 5, m.PublicKey)
	return b, nil
}

func (m *HDNodeType) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Depth = uint32(u64)
		case 2:
			m.Fingerprint = uint32(u64)
		case 3:
			m.ChildNum = uint32(u64)
		case 4:
			m.ChainCode = append([]byte(nil), raw...)
		case 5:
			m.PublicKey = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// PublicKey is the device's response to GetPublicKey.
type PublicKey struct {
	Node *HDNodeType
	Xpub string
}

func (m *PublicKey) MarshalProto() ([]byte, error) {
	var b []byte
	var err error
	b, err = appendMessage(b, 1, m.Node)
	if err != nil {
		return nil, err
	}
	b = appendString(b, 2, m.Xpub)
	return b, nil
}

func (m *PublicKey) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			node := &HDNodeType{}
			if err := node.UnmarshalProto(raw); err != nil {
				return err
			}
			m.Node = node
		case 2:
			m.Xpub = string(raw)
		}
	}
	return it.err
}

// GetAddress requests the device-computed address for AddressN.
type GetAddress struct {
	AddressN    []uint32
	ShowDisplay bool
}

func (m *GetAddress) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendPackedVarints(b, 1, m.AddressN)
	b = appendBool(b, 2, m.ShowDisplay)
	return b, nil
}

func (m *GetAddress) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			vs, err := unpackVarints(raw)
			if err != nil {
				return err
			}
			m.AddressN = vs
		case 2:
			m.ShowDisplay = u64 != 0
		}
	}
	return it.err
}

// Address is the device's response to GetAddress.
type Address struct {
	Address string
}

func (m *Address) MarshalProto() ([]byte, error) {
	return appendString(nil, 1, m.Address), nil
}

func (m *Address) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			m.Address = string(raw)
		}
	}
	return it.err
}

// PinMatrixRequest asks the host to show a PIN matrix prompt of Type.
type PinMatrixRequest struct {
	Type uint32
}

func (m *PinMatrixRequest) MarshalProto() ([]byte, error) {
	return appendUint32(nil, 1, m.Type), nil
}

func (m *PinMatrixRequest) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, _, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			m.Type = uint32(u64)
		}
	}
	return it.err
}

// PinMatrixAck carries the host's PIN-matrix-encoded PIN.
type PinMatrixAck struct {
	Pin string
}

func (m *PinMatrixAck) MarshalProto() ([]byte, error) {
	return appendString(nil, 1, m.Pin), nil
}

func (m *PinMatrixAck) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			m.Pin = string(raw)
		}
	}
	return it.err
}

// PassphraseRequest asks the host to supply the wallet passphrase.
type PassphraseRequest struct{}

func (m *PassphraseRequest) MarshalProto() ([]byte, error)    { return nil, nil }
func (m *PassphraseRequest) UnmarshalProto(data []byte) error { return nil }

// PassphraseAck carries the host-supplied passphrase.
type PassphraseAck struct {
	Passphrase string
}

func (m *PassphraseAck) MarshalProto() ([]byte, error) {
	return appendString(nil, 1, m.Passphrase), nil
}

func (m *PassphraseAck) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			m.Passphrase = string(raw)
		}
	}
	return it.err
}

// ButtonRequest asks the host to show a physical-confirmation prompt.
type ButtonRequest struct {
	Code uint32
}

func (m *ButtonRequest) MarshalProto() ([]byte, error) {
	return appendUint32(nil, 1, m.Code), nil
}

func (m *ButtonRequest) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, _, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			m.Code = uint32(u64)
		}
	}
	return it.err
}

// ButtonAck acknowledges a ButtonRequest. Empty body.
type ButtonAck struct{}

func (m *ButtonAck) MarshalProto() ([]byte, error)    { return nil, nil }
func (m *ButtonAck) UnmarshalProto(data []byte) error { return nil }

// Cancel aborts the in-flight operation. Empty body.
type Cancel struct{}

func (m *Cancel) MarshalProto() ([]byte, error)    { return nil, nil }
func (m *Cancel) UnmarshalProto(data []byte) error { return nil }

// ClearSession discards any cached PIN/passphrase on the device. Empty body.
type ClearSession struct{}

func (m *ClearSession) MarshalProto() ([]byte, error)    { return nil, nil }
func (m *ClearSession) UnmarshalProto(data []byte) error { return nil }

// WipeDevice factory-resets the device. Empty body.
type WipeDevice struct{}

func (m *WipeDevice) MarshalProto() ([]byte, error)    { return nil, nil }
func (m *WipeDevice) UnmarshalProto(data []byte) error { return nil }

// ChangePin sets or removes the device PIN.
type ChangePin struct {
	Remove bool
}

func (m *ChangePin) MarshalProto() ([]byte, error) {
	return appendBool(nil, 1, m.Remove), nil
}

func (m *ChangePin) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, _, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			m.Remove = u64 != 0
		}
	}
	return it.err
}

// CipherKeyValue drives the device's symmetric cipher-by-key-path facility.
type CipherKeyValue struct {
	AddressN     []uint32
	Key          string
	Value        []byte
	Encrypt      bool
	AskOnEncrypt bool
	AskOnDecrypt bool
	IV           []byte
}

func (m *CipherKeyValue) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendPackedVarints(b, 1, m.AddressN)
	b = appendString(b, 2, m.Key)
	b = appendBytes(b, 3, m.Value)
	b = appendBool(b, 4, m.Encrypt)
	b = appendBool(b, 5, m.AskOnEncrypt)
	b = appendBool(b, 6, m.AskOnDecrypt)
	b = appendBytes(b, 7, m.IV)
	return b, nil
}

func (m *CipherKeyValue) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			vs, err := unpackVarints(raw)
			if err != nil {
				return err
			}
			m.AddressN = vs
		case 2:
			m.Key = string(raw)
		case 3:
			m.Value = append([]byte(nil), raw...)
		case 4:
			m.Encrypt = u64 != 0
		case 5:
			m.AskOnEncrypt = u64 != 0
		case 6:
			m.AskOnDecrypt = u64 != 0
		case 7:
			m.IV = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// CipheredKeyValue is the device's response to CipherKeyValue.
type CipheredKeyValue struct {
	Value []byte
}

func (m *CipheredKeyValue) MarshalProto() ([]byte, error) {
	return appendBytes(nil, 1, m.Value), nil
}

func (m *CipheredKeyValue) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			m.Value = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// SignIdentity requests a SLIP-0013 identity signature.
type SignIdentity struct {
	AddressN        []uint32
	ChallengeHidden []byte
	ChallengeVisual string
}

func (m *SignIdentity) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendPackedVarints(b, 1, m.AddressN)
	b = appendBytes(b, 2, m.ChallengeHidden)
	b = appendString(b, 3, m.ChallengeVisual)
	return b, nil
}

func (m *SignIdentity) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			vs, err := unpackVarints(raw)
			if err != nil {
				return err
			}
			m.AddressN = vs
		case 2:
			m.ChallengeHidden = append([]byte(nil), raw...)
		case 3:
			m.ChallengeVisual = string(raw)
		}
	}
	return it.err
}

// SignedIdentity is the device's response to SignIdentity.
type SignedIdentity struct {
	Address   string
	PublicKey []byte
	Signature []byte
}

func (m *SignedIdentity) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Address)
	b = appendBytes(b, 2, m.PublicKey)
	b = appendBytes(b, 3, m.Signature)
	return b, nil
}

func (m *SignedIdentity) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Address = string(raw)
		case 2:
			m.PublicKey = append([]byte(nil), raw...)
		case 3:
			m.Signature = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// SignTx kicks off the transaction-signing dialog.
type SignTx struct {
	OutputsCount uint32
	InputsCount  uint32
	CoinName     string
	Version      uint32
	LockTime     uint32
}

func (m *SignTx) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendUint32(b, 1, m.OutputsCount)
	b = appendUint32(b, 2, m.InputsCount)
	b = appendString(b, 3, m.CoinName)
	b = appendUint32(b, 4, m.Version)
	b = appendUint32(b, 5, m.LockTime)
	return b, nil
}

func (m *SignTx) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.OutputsCount = uint32(u64)
		case 2:
			m.InputsCount = uint32(u64)
		case 3:
			m.CoinName = string(raw)
		case 4:
			m.Version = uint32(u64)
		case 5:
			m.LockTime = uint32(u64)
		}
	}
	return it.err
}

// TxRequestType enumerates the device-initiated probe kinds.
type TxRequestType uint32

const (
	TxRequestTxMeta     TxRequestType = 0
	TxRequestTxInput    TxRequestType = 1
	TxRequestTxOutput   TxRequestType = 2
	TxRequestTxFinished TxRequestType = 3
)

// TxRequestDetailsType names which index (and, for ancestors, which
// transaction hash) a TxRequest refers to.
type TxRequestDetailsType struct {
	RequestIndex uint32
	TxHash       []byte
}

func (m *TxRequestDetailsType) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendUint32(b, 1, m.RequestIndex)
	b = appendBytes(b, 2, m.TxHash)
	return b, nil
}

func (m *TxRequestDetailsType) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.RequestIndex = uint32(u64)
		case 2:
			m.TxHash = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// TxRequestSerializedType carries signature/serialized-tx bytes accumulated
// as the signing dialog progresses.
type TxRequestSerializedType struct {
	SignatureIndex uint32
	Signature      []byte
	SerializedTx   []byte
}

func (m *TxRequestSerializedType) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendUint32(b, 1, m.SignatureIndex)
	b = appendBytes(b, 2, m.Signature)
	b = appendBytes(b, 3, m.SerializedTx)
	return b, nil
}

func (m *TxRequestSerializedType) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.SignatureIndex = uint32(u64)
		case 2:
			m.Signature = append([]byte(nil), raw...)
		case 3:
			m.SerializedTx = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// TxRequest is the device's probe driving the signing dialog (C5).
type TxRequest struct {
	RequestType TxRequestType
	Details     *TxRequestDetailsType
	Serialized  *TxRequestSerializedType
}

func (m *TxRequest) MarshalProto() ([]byte, error) {
	var b []byte
	var err error
	b = appendUint32(b, 1, uint32(m.RequestType))
	b, err = appendMessage(b, 2, m.Details)
	if err != nil {
		return nil, err
	}
	b, err = appendMessage(b, 3, m.Serialized)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (m *TxRequest) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.RequestType = TxRequestType(u64)
		case 2:
			d := &TxRequestDetailsType{}
			if err := d.UnmarshalProto(raw); err != nil {
				return err
			}
			m.Details = d
		case 3:
			s := &TxRequestSerializedType{}
			if err := s.UnmarshalProto(raw); err != nil {
				return err
			}
			m.Serialized = s
		}
	}
	return it.err
}

// TxInputType describes one input of a TxAck response.
type TxInputType struct {
	AddressN   []uint32
	PrevHash   []byte
	PrevIndex  uint32
	ScriptSig  []byte
	Sequence   uint32
	ScriptType uint32
	Amount     uint64
}

func (m *TxInputType) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendPackedVarints(b, 1, m.AddressN)
	b = appendBytes(b, 2, m.PrevHash)
	b = appendUint32(b, 3, m.PrevIndex)
	b = appendBytes(b, 4, m.ScriptSig)
	b = appendUint32(b, 5, m.Sequence)
	b = appendUint32(b, 6, m.ScriptType)
	b = appendUint64(b, 7, m.Amount)
	return b, nil
}

func (m *TxInputType) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			vs, err := unpackVarints(raw)
			if err != nil {
				return err
			}
			m.AddressN = vs
		case 2:
			m.PrevHash = append([]byte(nil), raw...)
		case 3:
			m.PrevIndex = uint32(u64)
		case 4:
			m.ScriptSig = append([]byte(nil), raw...)
		case 5:
			m.Sequence = uint32(u64)
		case 6:
			m.ScriptType = uint32(u64)
		case 7:
			m.Amount = u64
		}
	}
	return it.err
}

// TxOutputType describes one output of the current transaction in a TxAck
// response.
type TxOutputType struct {
	Address    string
	AddressN   []uint32
	Amount     uint64
	ScriptType uint32
}

func (m *TxOutputType) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Address)
	b = appendPackedVarints(b, 2, m.AddressN)
	b = appendUint64(b, 3, m.Amount)
	b = appendUint32(b, 4, m.ScriptType)
	return b, nil
}

func (m *TxOutputType) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Address = string(raw)
		case 2:
			vs, err := unpackVarints(raw)
			if err != nil {
				return err
			}
			m.AddressN = vs
		case 3:
			m.Amount = u64
		case 4:
			m.ScriptType = uint32(u64)
		}
	}
	return it.err
}

// TxOutputBinType describes one output of an ancestor transaction: the raw
// amount and scriptPubkey, with no path information.
type TxOutputBinType struct {
	Amount       uint64
	ScriptPubkey []byte
}

func (m *TxOutputBinType) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendUint64(b, 1, m.Amount)
	b = appendBytes(b, 2, m.ScriptPubkey)
	return b, nil
}

func (m *TxOutputBinType) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Amount = u64
		case 2:
			m.ScriptPubkey = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// TransactionType is the TxAck response body: either a metadata-only record
// or a single input/output/bin-output, depending on what the TxRequest
// asked for.
type TransactionType struct {
	Version    uint32
	LockTime   uint32
	InputsCnt  uint32
	OutputsCnt uint32
	Inputs     []*TxInputType
	Outputs    []*TxOutputType
	BinOutputs []*TxOutputBinType
	ExtraData  []byte
}

func (m *TransactionType) MarshalProto() ([]byte, error) {
	var b []byte
	var err error
	b = appendUint32(b, 1, m.Version)
	b = appendUint32(b, 2, m.LockTime)
	b = appendUint32(b, 3, m.InputsCnt)
	b = appendUint32(b, 4, m.OutputsCnt)
	for _, in := range m.Inputs {
		b, err = appendMessage(b, 5, in)
		if err != nil {
			return nil, err
		}
	}
	for _, out := range m.Outputs {
		b, err = appendMessage(b, 6, out)
		if err != nil {
			return nil, err
		}
	}
	for _, bo := range m.BinOutputs {
		b, err = appendMessage(b, 7, bo)
		if err != nil {
			return nil, err
		}
	}
	b = appendBytes(b, 8, m.ExtraData)
	return b, nil
}

func (m *TransactionType) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, u64, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Version = uint32(u64)
		case 2:
			m.LockTime = uint32(u64)
		case 3:
			m.InputsCnt = uint32(u64)
		case 4:
			m.OutputsCnt = uint32(u64)
		case 5:
			in := &TxInputType{}
			if err := in.UnmarshalProto(raw); err != nil {
				return err
			}
			m.Inputs = append(m.Inputs, in)
		case 6:
			out := &TxOutputType{}
			if err := out.UnmarshalProto(raw); err != nil {
				return err
			}
			m.Outputs = append(m.Outputs, out)
		case 7:
			bo := &TxOutputBinType{}
			if err := bo.UnmarshalProto(raw); err != nil {
				return err
			}
			m.BinOutputs = append(m.BinOutputs, bo)
		case 8:
			m.ExtraData = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// MessageSignature is the device's response to SignMessage: a signature over
// an arbitrary message, bound to the address at the requested path.
type MessageSignature struct {
	Address   string
	Signature []byte
}

func (m *MessageSignature) MarshalProto() ([]byte, error) {
	var b []byte
	b = appendString(b, 1, m.Address)
	b = appendBytes(b, 2, m.Signature)
	return b, nil
}

func (m *MessageSignature) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		switch num {
		case 1:
			m.Address = string(raw)
		case 2:
			m.Signature = append([]byte(nil), raw...)
		}
	}
	return it.err
}

// TxAck is the host's response to a TxRequest.
type TxAck struct {
	Tx *TransactionType
}

func (m *TxAck) MarshalProto() ([]byte, error) {
	return appendMessage(nil, 1, m.Tx)
}

func (m *TxAck) UnmarshalProto(data []byte) error {
	it := newFieldIter(data)
	for {
		num, _, _, raw, ok := it.next()
		if !ok {
			break
		}
		if num == 1 {
			tx := &TransactionType{}
			if err := tx.UnmarshalProto(raw); err != nil {
				return err
			}
			m.Tx = tx
		}
	}
	return it.err
}
