package protocol

// RawMessage is the placeholder schema for closed-union labels that carry no
// semantic payload consumed anywhere in this module (for example device
// provisioning, firmware upload, debug-link, and the encrypt/decrypt
// family). It passes
// the wire body through unexamined rather than duplicating field-level
// parsing the Session Client and Signing Coordinator never need — see
// DESIGN.md for the registry-completeness rationale.
type RawMessage struct {
	Data []byte
}

func (m *RawMessage) MarshalProto() ([]byte, error) {
	return m.Data, nil
}

func (m *RawMessage) UnmarshalProto(data []byte) error {
	m.Data = append([]byte(nil), data...)
	return nil
}
