package adapter

// KeepKey forked PinMatrixRequestType and ButtonRequestType verbatim from
// Trezor's schema, so no renumbering happens here. The two stay separate
// functions rather than aliasing trezor's, because KeepKey's schema diverges
// for the fields that matter to the Signing Coordinator (script type,
// key-purpose) and a future divergence here is expected, not accidental.

func keepkeyPinMatrixType(t uint32) uint32 {
	return t
}

func keepkeyButtonCode(c uint32) uint32 {
	return c
}
