package addrpath

import (
	"crypto/sha256"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestForBip44ReceiveVsChange(t *testing.T) {
	recv := ForBip44(0, ReceiveFunds, 5)
	require.Equal(t, []uint32{44 | Hardened, 0 | Hardened, 0 | Hardened, 0, 5}, recv)

	change := ForBip44(0, Change, 5)
	require.Equal(t, []uint32{44 | Hardened, 0 | Hardened, 0 | Hardened, 1, 5}, change)
}

func TestFromDeterministicPathForwardsUnchanged(t *testing.T) {
	in := []uint32{44 | Hardened, 0, 0 | Hardened}
	out := FromDeterministicPath(in)
	require.Equal(t, in, out)

	// returned slice must not alias the input.
	out[0] = 0
	require.Equal(t, uint32(44|Hardened), in[0])
}

// TestForIdentitySlip13Vector is the literal vector from §8: forIdentity
// with the satoshi login URI and index 0.
func TestForIdentitySlip13Vector(t *testing.T) {
	uri := "https://satoshi@bitcoin.org/login"

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], 0)
	h := sha256.New()
	h.Write(buf[:])
	h.Write([]byte(uri))
	sum := h.Sum(nil)

	want := []uint32{
		13 | Hardened,
		binary.BigEndian.Uint32(sum[0:4]) | Hardened,
		binary.BigEndian.Uint32(sum[4:8]) | Hardened,
		binary.BigEndian.Uint32(sum[8:12]) | Hardened,
		binary.BigEndian.Uint32(sum[12:16]) | Hardened,
	}

	got := ForIdentity(uri, 0)
	require.Equal(t, want, got)
}
