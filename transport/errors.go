package transport

import "errors"

// ErrTransportClosed is returned when the underlying HID source yields EOF
// during a Read (before or in the middle of a frame), or when a Write to it
// reports EOF.
var ErrTransportClosed = errors.New("transport: closed")

// ErrMalformedFrame is returned when a frame's declared body size exceeds
// maxFrameSize. Reports that fail the sentinel or continuation checks are
// skipped, not reported with this error.
var ErrMalformedFrame = errors.New("transport: malformed frame")
