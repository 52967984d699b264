// Package transport implements the HID report framing used to exchange
// protobuf messages with Trezor- and KeepKey-family devices: packing a
// variable-length message into a sequence of fixed 64-byte HID reports on
// the way out, and reassembling one back out of the report stream on the
// way in.
package transport

import (
	"encoding/binary"
	"io"
)

const (
	// ReportSize is the fixed size of a single HID report exchanged with the
	// device, report-id byte included.
	ReportSize = 64
	// payloadSize is the number of body bytes a single report carries once
	// its leading report-id byte is accounted for.
	payloadSize = ReportSize - 1

	reportID = 0x3f // '?'

	sentinelByte0 = '#'
	sentinelByte1 = '#'

	headerSize = 2 /* sentinel */ + 2 /* type tag */ + 4 /* body size */

	// maxFrameSize is the reassembly safety cap; a message whose declared
	// body size would require accumulating more than this many bytes aborts
	// with ErrMalformedFrame instead of reading forever.
	maxFrameSize = 32 * 1024
)

// Options configures platform-specific quirks of the HID backend a Framer is
// layered over.
type Options struct {
	// LengthPrefixFirstReport indicates that byte 0 of the first outbound
	// report must carry the explicit payload length (63) instead of the
	// report-id byte 0x3F. Some HID backends (older Windows hidapi builds)
	// expect this; others strip or ignore it. Decoding is unaffected: a
	// report is recognised as the first report of a message by byte 0 being
	// 0x3F followed by the sentinel bytes at offsets 1-2, and the length
	// prefix 63 is that same byte value.
	LengthPrefixFirstReport bool
}

// Framer packs and unpacks protobuf messages across 64-byte HID reports over
// rw. It has no notion of message schemas; callers hand it a type tag and an
// already-serialized body.
type Framer struct {
	rw   io.ReadWriter
	opts Options
}

// NewFramer wraps rw, an open HID device handle (or a fake standing in for
// one in tests), with the report framing described in the external
// interface.
func NewFramer(rw io.ReadWriter, opts Options) *Framer {
	return &Framer{rw: rw, opts: opts}
}

// Write frames (typeTag, body) as the sentinel block described by the wire
// format and emits it as a sequence of 64-byte HID reports.
func (f *Framer) Write(typeTag uint16, body []byte) error {
	block := make([]byte, 0, headerSize+len(body))
	block = append(block, sentinelByte0, sentinelByte1)
	var tagBuf [2]byte
	binary.BigEndian.PutUint16(tagBuf[:], typeTag)
	block = append(block, tagBuf[:]...)
	var sizeBuf [4]byte
	binary.BigEndian.PutUint32(sizeBuf[:], uint32(len(body)))
	block = append(block, sizeBuf[:]...)
	block = append(block, body...)

	if pad := len(block) % payloadSize; pad != 0 {
		block = append(block, make([]byte, payloadSize-pad)...)
	}

	report := make([]byte, ReportSize)
	for i := 0; i < len(block); i += payloadSize {
		report[0] = reportID
		if i == 0 && f.opts.LengthPrefixFirstReport {
			report[0] = payloadSize
		}
		copy(report[1:], block[i:i+payloadSize])
		if _, err := f.rw.Write(report); err != nil {
			if err == io.EOF {
				return ErrTransportClosed
			}
			return err
		}
	}
	return nil
}

// Read reassembles the next framed message from the report stream, skipping
// any pre-sentinel noise and any reports that fail the continuation check.
func (f *Framer) Read() (typeTag uint16, body []byte, err error) {
	report := make([]byte, ReportSize)

	// Skip reports until one starts with the sentinel block.
	for {
		if err := f.readReport(report); err != nil {
			return 0, nil, err
		}
		if report[0] == reportID && report[1] == sentinelByte0 && report[2] == sentinelByte1 {
			break
		}
		log.Debugf("transport: discarding pre-sentinel report")
	}

	typeTag = binary.BigEndian.Uint16(report[3:5])
	bodySize := binary.BigEndian.Uint32(report[5:9])
	if bodySize > maxFrameSize {
		return 0, nil, ErrMalformedFrame
	}

	buf := make([]byte, 0, bodySize)
	buf = append(buf, report[9:ReportSize]...)

	for uint32(len(buf)) < bodySize {
		if len(buf) > maxFrameSize {
			return 0, nil, ErrMalformedFrame
		}
		if err := f.readReport(report); err != nil {
			return 0, nil, err
		}
		if report[0] != reportID {
			log.Debugf("transport: skipping non-continuation report")
			continue
		}
		buf = append(buf, report[1:ReportSize]...)
	}
	return typeTag, buf[:bodySize], nil
}

func (f *Framer) readReport(into []byte) error {
	n, err := io.ReadFull(f.rw, into)
	if err != nil {
		if err == io.EOF || err == io.ErrUnexpectedEOF {
			return ErrTransportClosed
		}
		return err
	}
	if n != ReportSize {
		return ErrMalformedFrame
	}
	return nil
}
