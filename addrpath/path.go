// Package addrpath builds BIP-32 AddressN derivation paths: the ordered
// sequence of 32-bit integers, hardened-bit set where required, that the
// Session Client and Signing Coordinator attach to GetPublicKey, GetAddress,
// and TxInputType records.
package addrpath

import (
	"crypto/sha256"
	"encoding/binary"
)

// Hardened is the bit a BIP-32 path level sets to mark hardened
// derivation.
const Hardened = 0x80000000

// Purpose selects the leaf branch of a BIP-44 account path.
type Purpose int

const (
	ReceiveFunds Purpose = iota
	Refund
	Change
	Authentication
)

func (p Purpose) leaf() uint32 {
	switch p {
	case Change, Authentication:
		return 1
	default:
		return 0
	}
}

// ForBip44 builds the standard [44', coin_type', account', p, index] path.
// p is 0 for ReceiveFunds/Refund and 1 for Change/Authentication; the two
// leaf levels are unhardened.
func ForBip44(account uint32, purpose Purpose, index uint32) []uint32 {
	return []uint32{
		44 | Hardened,
		0 | Hardened,
		account | Hardened,
		purpose.leaf(),
		index,
	}
}

// FromDeterministicPath forwards a caller-supplied path unchanged; hardened
// bits are assumed already set where the caller intends them.
func FromDeterministicPath(path []uint32) []uint32 {
	out := make([]uint32, len(path))
	copy(out, path)
	return out
}

// ForIdentity implements SLIP-0013 deterministic identity key derivation:
// concatenate index as little-endian u32 with the UTF-8 URI bytes, hash
// with SHA-256, and read exactly the first 16 bytes (128 bits) as four
// big-endian u32 values A,B,C,D. The upstream reference implementation
// allocates a 32-byte buffer and is widely copied with that off-by-factor-
// of-two; per SLIP-0013 the spec reads only the first 128 bits, and this
// implementation does exactly that rather than mirroring the bug.
func ForIdentity(uri string, index uint32) []uint32 {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], index)

	h := sha256.New()
	h.Write(buf[:])
	h.Write([]byte(uri))
	sum := h.Sum(nil)

	first16 := sum[:16]
	a := binary.BigEndian.Uint32(first16[0:4])
	b := binary.BigEndian.Uint32(first16[4:8])
	c := binary.BigEndian.Uint32(first16[8:12])
	d := binary.BigEndian.Uint32(first16[12:16])

	return []uint32{
		13 | Hardened,
		a | Hardened,
		b | Hardened,
		c | Hardened,
		d | Hardened,
	}
}
