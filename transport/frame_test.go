package transport

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// fakeHID is an in-memory stand-in for an open HID device handle: writes
// append whole reports, reads consume them in order.
type fakeHID struct {
	bytes.Buffer
}

func reportCount(buf *bytes.Buffer) int {
	return buf.Len() / ReportSize
}

func TestWriteReadRoundTrip(t *testing.T) {
	dev := &fakeHID{}
	f := NewFramer(dev, Options{})

	body := []byte("satoshi nakamoto wrote a whitepaper about electronic cash")
	require.NoError(t, f.Write(0x1234, body))

	gotTag, gotBody, err := f.Read()
	require.NoError(t, err)
	require.Equal(t, uint16(0x1234), gotTag)
	require.Equal(t, body, gotBody)
}

func TestReportCountFormula(t *testing.T) {
	cases := []int{0, 1, 54, 55, 56, 63, 130, 1000}
	for _, n := range cases {
		dev := &fakeHID{}
		f := NewFramer(dev, Options{})
		body := bytes.Repeat([]byte{0xAB}, n)
		require.NoError(t, f.Write(1, body))

		want := (headerSize + n + payloadSize - 1) / payloadSize
		require.Equalf(t, want, reportCount(&dev.Buffer), "n=%d", n)

		_, got, err := f.Read()
		require.NoError(t, err)
		require.Equal(t, body, got)
	}
}

func TestBodySize0FitsOneReport(t *testing.T) {
	dev := &fakeHID{}
	f := NewFramer(dev, Options{})
	require.NoError(t, f.Write(1, nil))
	require.Equal(t, 1, reportCount(&dev.Buffer))
}

func TestBodySize55FitsOneReport(t *testing.T) {
	dev := &fakeHID{}
	f := NewFramer(dev, Options{})
	require.NoError(t, f.Write(1, bytes.Repeat([]byte{1}, 55)))
	require.Equal(t, 1, reportCount(&dev.Buffer))
}

func TestBodySize56NeedsTwoReports(t *testing.T) {
	dev := &fakeHID{}
	f := NewFramer(dev, Options{})
	require.NoError(t, f.Write(1, bytes.Repeat([]byte{1}, 56)))
	require.Equal(t, 2, reportCount(&dev.Buffer))
}

func TestReadSkipsPreSentinelNoise(t *testing.T) {
	dev := &fakeHID{}

	// Two reports of arbitrary noise ahead of a real message.
	noise := make([]byte, ReportSize*2)
	for i := range noise {
		noise[i] = byte(i)
	}
	dev.Write(noise)

	f := NewFramer(dev, Options{})
	require.NoError(t, f.Write(7, []byte("hello")))

	tag, body, err := f.Read()
	require.NoError(t, err)
	require.Equal(t, uint16(7), tag)
	require.Equal(t, []byte("hello"), body)
}

func TestReadTruncatedStreamReturnsTransportClosed(t *testing.T) {
	dev := &fakeHID{}
	f := NewFramer(dev, Options{})
	require.NoError(t, f.Write(1, bytes.Repeat([]byte{1}, 200)))

	truncated := dev.Bytes()[:ReportSize] // only the first report survives
	short := &fakeHID{}
	short.Write(truncated)

	f2 := NewFramer(short, Options{})
	_, _, err := f2.Read()
	require.ErrorIs(t, err, ErrTransportClosed)
}

func TestLengthPrefixFirstReportOnlyAffectsByteZero(t *testing.T) {
	dev := &fakeHID{}
	f := NewFramer(dev, Options{LengthPrefixFirstReport: true})
	require.NoError(t, f.Write(1, []byte("x")))

	first := dev.Bytes()[:ReportSize]
	require.Equal(t, byte(payloadSize), first[0])
	require.Equal(t, byte('#'), first[1])
	require.Equal(t, byte('#'), first[2])

	tag, body, err := f.Read()
	require.NoError(t, err)
	require.Equal(t, uint16(1), tag)
	require.Equal(t, []byte("x"), body)
}
