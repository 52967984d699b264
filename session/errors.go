package session

import "errors"

// ErrNoPendingPrompt reports that the device isn't waiting on a PIN or
// passphrase prompt. ProvidePIN and ProvidePassphrase do not return it: they
// block until a pending prompt takes the value or Stop is called.
var ErrNoPendingPrompt = errors.New("session: no prompt is pending")

// ErrClosed is returned by ProvidePIN/ProvidePassphrase, and by a round-trip
// waiting on a PIN or passphrase prompt, once Stop has been called.
var ErrClosed = errors.New("session: client is stopped")

// ErrUnexpectedResponse is returned when a round-trip's terminal message
// doesn't match the schema the initiating request expects.
var ErrUnexpectedResponse = errors.New("session: unexpected response")
