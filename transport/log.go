package transport

import "github.com/btcsuite/btclog"

// Subsystem is the logging tag reported by callers that aggregate logs from
// multiple packages of this module (e.g. "BTWL"-style subsystem prefixes).
const Subsystem = "XPRT"

var log btclog.Logger

func init() {
	DisableLog()
}

// DisableLog disables all library log output.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger uses a specified Logger to output package logging info.
func UseLogger(logger btclog.Logger) {
	log = logger
}
