package adapter

// Trezor's PinMatrixRequestType and ButtonRequestType enumerations are
// carried through unchanged: this module treats Trezor's numbering as the
// canonical baseline that KeepKey's fork is checked against in
// adapt_keepkey.go.

func trezorPinMatrixType(t uint32) uint32 {
	return t
}

func trezorButtonCode(c uint32) uint32 {
	return c
}
