package protocol

import (
	"errors"
	"reflect"

	"google.golang.org/protobuf/encoding/protowire"
)

var errUnsupportedWireType = errors.New("protocol: unsupported wire type")

// fieldIter walks the top-level fields of a serialized protobuf message,
// decoding each field's raw value according to its wire type. It is the
// shared decode primitive every message's UnmarshalProto is built on, since
// this module hand-assembles schemas with protowire rather than generated
// bindings.
type fieldIter struct {
	data []byte
	err  error
}

func newFieldIter(data []byte) *fieldIter {
	return &fieldIter{data: data}
}

// next returns the next field's number, wire type, and decoded value. For
// VarintType and the fixed-width types, u64 holds the value. For BytesType,
// raw holds the (unescaped) byte string, which may itself be a nested
// message, a packed repeated varint field, or a plain string/bytes field.
// ok is false once the iterator is exhausted; check err afterward.
func (it *fieldIter) next() (num protowire.Number, typ protowire.Type, u64 uint64, raw []byte, ok bool) {
	if it.err != nil || len(it.data) == 0 {
		return 0, 0, 0, nil, false
	}
	num, typ, n := protowire.ConsumeTag(it.data)
	if n < 0 {
		it.err = protowire.ParseError(n)
		return 0, 0, 0, nil, false
	}
	it.data = it.data[n:]

	switch typ {
	case protowire.VarintType:
		v, n := protowire.ConsumeVarint(it.data)
		if n < 0 {
			it.err = protowire.ParseError(n)
			return 0, 0, 0, nil, false
		}
		u64 = v
		it.data = it.data[n:]
	case protowire.BytesType:
		b, n := protowire.ConsumeBytes(it.data)
		if n < 0 {
			it.err = protowire.ParseError(n)
			return 0, 0, 0, nil, false
		}
		raw = b
		it.data = it.data[n:]
	case protowire.Fixed32Type:
		v, n := protowire.ConsumeFixed32(it.data)
		if n < 0 {
			it.err = protowire.ParseError(n)
			return 0, 0, 0, nil, false
		}
		u64 = uint64(v)
		it.data = it.data[n:]
	case protowire.Fixed64Type:
		v, n := protowire.ConsumeFixed64(it.data)
		if n < 0 {
			it.err = protowire.ParseError(n)
			return 0, 0, 0, nil, false
		}
		u64 = v
		it.data = it.data[n:]
	default:
		it.err = errUnsupportedWireType
		return 0, 0, 0, nil, false
	}
	return num, typ, u64, raw, true
}

// unpackVarints decodes a packed repeated varint field (e.g. AddressN's
// address_n) into a []uint32.
func unpackVarints(b []byte) ([]uint32, error) {
	var out []uint32
	for len(b) > 0 {
		v, n := protowire.ConsumeVarint(b)
		if n < 0 {
			return nil, protowire.ParseError(n)
		}
		out = append(out, uint32(v))
		b = b[n:]
	}
	return out, nil
}

func appendPackedVarints(b []byte, num protowire.Number, vs []uint32) []byte {
	if len(vs) == 0 {
		return b
	}
	var packed []byte
	for _, v := range vs {
		packed = protowire.AppendVarint(packed, uint64(v))
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, packed)
}

func appendUint32(b []byte, num protowire.Number, v uint32) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, uint64(v))
}

func appendUint64(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

func appendBool(b []byte, num protowire.Number, v bool) []byte {
	if !v {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, 1)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendString(b []byte, num protowire.Number, v string) []byte {
	if v == "" {
		return b
	}
	return appendBytes(b, num, []byte(v))
}

func appendMessage(b []byte, num protowire.Number, m Message) ([]byte, error) {
	if m == nil {
		return b, nil
	}
	// A typed nil pointer (an absent optional submessage) is skipped too.
	if v := reflect.ValueOf(m); v.Kind() == reflect.Ptr && v.IsNil() {
		return b, nil
	}
	body, err := m.MarshalProto()
	if err != nil {
		return nil, err
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, body), nil
}
