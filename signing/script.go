package signing

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"

	"github.com/julienbureau/multibit-hardware/protocol"
)

// resolveOutputAddress classifies pkScript and returns the encoded address
// it pays along with the wire script-type value to attach to a
// TxOutputType. P2PKH is tried first; P2SH second; anything else
// (multisig, witness, OP_RETURN) fails with ErrIllegalOutputScript, since
// those shapes are out of scope for this dialog.
func resolveOutputAddress(pkScript []byte, params *chaincfg.Params) (btcutil.Address, uint32, error) {
	class, addrs, _, err := txscript.ExtractPkScriptAddrs(pkScript, params)
	if err != nil || len(addrs) == 0 {
		return nil, 0, ErrIllegalOutputScript
	}
	switch class {
	case txscript.PubKeyHashTy:
		return addrs[0], protocol.OutputScriptPayToAddress, nil
	case txscript.ScriptHashTy:
		return addrs[0], protocol.OutputScriptPayToScriptHash, nil
	default:
		return nil, 0, ErrIllegalOutputScript
	}
}
