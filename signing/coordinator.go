// Package signing implements the Signing Coordinator (C5): the
// device-initiated TxRequest/TxAck dialog that drives multi-round Bitcoin
// transaction signing.
package signing

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"

	"github.com/julienbureau/multibit-hardware/adapter"
	"github.com/julienbureau/multibit-hardware/bus"
	"github.com/julienbureau/multibit-hardware/protocol"
	"github.com/julienbureau/multibit-hardware/transport"
)

// InputPathMap maps a current-transaction input index to its hardened
// BIP-32 path under the active account.
type InputPathMap map[uint32][]uint32

// ChangeAddressMap maps an encoded output address to its hardened BIP-32
// path, for outputs the caller knows are change.
type ChangeAddressMap map[string][]uint32

// AncestorStore supplies the full previous transaction for every outpoint
// an input of the current transaction spends, keyed by the transaction's
// chainhash.Hash.String() (the usual reversed-hex txid).
type AncestorStore map[string]*wire.MsgTx

// SigningJob bundles everything the Signing Coordinator needs to answer the
// device's TxRequest dialog for one transaction.
type SigningJob struct {
	Tx          *wire.MsgTx
	InputPaths  InputPathMap
	ChangeAddrs ChangeAddressMap
	Ancestors   AncestorStore
	CoinName    string
	Params      *chaincfg.Params
}

func (j *SigningJob) txFor(hasHash bool, hash []byte) (*wire.MsgTx, bool) {
	if !hasHash {
		return j.Tx, true
	}
	h, err := chainhash.NewHash(hash)
	if err != nil {
		return nil, false
	}
	tx, ok := j.Ancestors[h.String()]
	return tx, ok
}

// Device is the minimal half-duplex transport the Signing Coordinator
// drives: send one message, receive the device's next one. The Session
// Client implements this over the HID Framer and Codec Registry.
type Device interface {
	Send(label protocol.Label, msg protocol.Message) error
	Recv() (protocol.Label, protocol.Message, error)
}

// Coordinator runs one SigningJob against a Device, publishing lifecycle
// events on the Event Bus and recording accumulated state on the shared
// Session Context.
type Coordinator struct {
	dev    Device
	ctx    *bus.Context
	events *bus.Bus
	vendor protocol.Vendor
}

// NewCoordinator returns a Coordinator for one device session.
func NewCoordinator(dev Device, ctx *bus.Context, events *bus.Bus, vendor protocol.Vendor) *Coordinator {
	return &Coordinator{dev: dev, ctx: ctx, events: events, vendor: vendor}
}

// SignTx drives job to completion or failure. Only one job may be in-flight
// per Session Context; a second call while one is active fails synchronously
// with ErrBusy and sends nothing on the wire.
func (c *Coordinator) SignTx(job *SigningJob) error {
	if !c.ctx.BeginSigning() {
		return ErrBusy
	}
	defer c.ctx.EndSigning()

	start := &protocol.SignTx{
		OutputsCount: uint32(len(job.Tx.TxOut)),
		InputsCount:  uint32(len(job.Tx.TxIn)),
		CoinName:     job.CoinName,
		Version:      uint32(job.Tx.Version),
		LockTime:     job.Tx.LockTime,
	}
	if err := c.dev.Send(protocol.LabelSignTx, start); err != nil {
		return err
	}

	for {
		label, msg, err := c.dev.Recv()
		if err != nil {
			if errors.Is(err, transport.ErrTransportClosed) {
				c.ctx.Reset()
				c.events.Publish(bus.Event{Type: bus.DeviceDetached})
				return err
			}
			// Unknown type or schema error: per the error taxonomy, log and
			// keep waiting for a message we understand.
			log.Warnf("signing: dropping undecodable message: %v", err)
			continue
		}

		switch label {
		case protocol.LabelFailure:
			f := msg.(*protocol.Failure)
			c.events.Publish(bus.Event{Type: bus.OperationFailed, Payload: adapter.FailureInfo{Code: f.Code, Message: f.Message}})
			return fmt.Errorf("signing: device reported failure: %s", f.Message)

		case protocol.LabelTxRequest:
			req := msg.(*protocol.TxRequest)
			info, _ := adapter.Adapt(c.vendor, label, req)
			txReq := info.(adapter.TxRequestInfo)

			recordSerialized(c.ctx, txReq)

			if protocol.TxRequestType(txReq.RequestType) == protocol.TxRequestTxFinished {
				c.events.Publish(bus.Event{Type: bus.OperationSucceeded})
				return nil
			}

			ack, err := c.respond(job, txReq)
			if err != nil {
				c.dev.Send(protocol.LabelCancel, &protocol.Cancel{})
				c.events.Publish(bus.Event{Type: bus.OperationFailed, Payload: err})
				return err
			}
			if err := c.dev.Send(protocol.LabelTxAck, ack); err != nil {
				return err
			}

		default:
			log.Debugf("signing: ignoring unexpected message %s mid-dialog", label)
		}
	}
}

func recordSerialized(ctx *bus.Context, info adapter.TxRequestInfo) {
	if !info.HasSerialized {
		return
	}
	if len(info.Signature) > 0 {
		ctx.AppendSignature(info.Signature)
	}
	if len(info.SerializedTx) > 0 {
		ctx.AppendSerializedTx(info.SerializedTx)
	}
}

// respond builds the TxAck body for one TxRequest per the response
// construction table: TXMETA, TXINPUT, and TXOUTPUT each draw from either
// the current transaction or, when tx_hash is present, from the
// AncestorStore.
func (c *Coordinator) respond(job *SigningJob, req adapter.TxRequestInfo) (*protocol.TxAck, error) {
	switch protocol.TxRequestType(req.RequestType) {
	case protocol.TxRequestTxMeta:
		return c.respondMeta(job, req)
	case protocol.TxRequestTxInput:
		return c.respondInput(job, req)
	case protocol.TxRequestTxOutput:
		return c.respondOutput(job, req)
	default:
		return nil, ErrUnknownTxRequestType
	}
}

func (c *Coordinator) respondMeta(job *SigningJob, req adapter.TxRequestInfo) (*protocol.TxAck, error) {
	tx, ok := job.txFor(req.HasTxHash, req.TxHash)
	if !ok {
		return nil, ErrMissingAncestor
	}
	return &protocol.TxAck{Tx: &protocol.TransactionType{
		Version:    uint32(tx.Version),
		LockTime:   tx.LockTime,
		InputsCnt:  uint32(len(tx.TxIn)),
		OutputsCnt: uint32(len(tx.TxOut)),
	}}, nil
}

func (c *Coordinator) respondInput(job *SigningJob, req adapter.TxRequestInfo) (*protocol.TxAck, error) {
	tx, ok := job.txFor(req.HasTxHash, req.TxHash)
	if !ok {
		return nil, ErrMissingAncestor
	}
	if int(req.RequestIndex) >= len(tx.TxIn) {
		return nil, ErrMissingInputPath
	}
	in := tx.TxIn[req.RequestIndex]

	input := &protocol.TxInputType{
		PrevHash:  in.PreviousOutPoint.Hash[:],
		PrevIndex: in.PreviousOutPoint.Index,
		ScriptSig: in.SignatureScript,
		Sequence:  in.Sequence,
	}
	if !req.HasTxHash {
		path, ok := job.InputPaths[req.RequestIndex]
		if !ok {
			return nil, ErrMissingInputPath
		}
		input.AddressN = path
		input.ScriptType = protocol.InputScriptSpendAddress
	}
	return &protocol.TxAck{Tx: &protocol.TransactionType{Inputs: []*protocol.TxInputType{input}}}, nil
}

func (c *Coordinator) respondOutput(job *SigningJob, req adapter.TxRequestInfo) (*protocol.TxAck, error) {
	tx, ok := job.txFor(req.HasTxHash, req.TxHash)
	if !ok {
		return nil, ErrMissingAncestor
	}
	if int(req.RequestIndex) >= len(tx.TxOut) {
		return nil, ErrIllegalOutputScript
	}
	out := tx.TxOut[req.RequestIndex]

	if req.HasTxHash {
		return &protocol.TxAck{Tx: &protocol.TransactionType{
			BinOutputs: []*protocol.TxOutputBinType{{
				Amount:       uint64(out.Value),
				ScriptPubkey: out.PkScript,
			}},
		}}, nil
	}

	addr, scriptType, err := resolveOutputAddress(out.PkScript, job.Params)
	if err != nil {
		return nil, err
	}
	encoded := addr.EncodeAddress()

	otype := &protocol.TxOutputType{Amount: uint64(out.Value), ScriptType: scriptType}
	if path, isChange := job.ChangeAddrs[encoded]; isChange {
		otype.AddressN = path
	} else {
		otype.Address = encoded
	}
	return &protocol.TxAck{Tx: &protocol.TransactionType{Outputs: []*protocol.TxOutputType{otype}}}, nil
}
