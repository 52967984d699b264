package session

import "github.com/btcsuite/btclog"

// Subsystem is the logging tag this package registers under.
const Subsystem = "SESS"

var log btclog.Logger

func init() {
	DisableLog()
}

// DisableLog disables all library log output.
func DisableLog() {
	log = btclog.Disabled
}

// UseLogger sets the package-wide logger used by the Session Client.
func UseLogger(logger btclog.Logger) {
	log = logger
}
