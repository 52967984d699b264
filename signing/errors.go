package signing

import "errors"

// ErrBusy is returned synchronously, with no wire traffic, when SignTx is
// called while a job is already in-flight on the Session Context.
var ErrBusy = errors.New("signing: a signing job is already in progress")

// ErrMissingInputPath is raised when the device asks for an input index the
// caller's input-path map has no entry for. The job sends Cancel and fails.
var ErrMissingInputPath = errors.New("signing: no derivation path for requested input")

// ErrMissingAncestor is raised when the device asks for an ancestor
// transaction the caller's AncestorStore doesn't hold. The job sends Cancel
// and fails.
var ErrMissingAncestor = errors.New("signing: ancestor transaction not supplied")

// ErrIllegalOutputScript is raised when an output's scriptPubkey is neither
// P2PKH nor P2SH. Multisig and witness scripts are out of scope.
var ErrIllegalOutputScript = errors.New("signing: output script is neither P2PKH nor P2SH")

// ErrUnknownTxRequestType is raised when a TxRequest's request_type falls
// outside {TXMETA, TXINPUT, TXOUTPUT, TXFINISHED}.
var ErrUnknownTxRequestType = errors.New("signing: unrecognised tx request type")
