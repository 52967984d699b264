package signing

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"

	"github.com/julienbureau/multibit-hardware/bus"
	"github.com/julienbureau/multibit-hardware/protocol"
)

// scriptedDevice replays a fixed sequence of device-initiated messages and
// records every message the coordinator sends, standing in for the real
// HID-backed Session Client transport.
type scriptedDevice struct {
	t      *testing.T
	toRecv []recvItem
	idx    int
	sent   []sentItem
}

type recvItem struct {
	label protocol.Label
	msg   protocol.Message
}

type sentItem struct {
	label protocol.Label
	msg   protocol.Message
}

func (d *scriptedDevice) Send(label protocol.Label, msg protocol.Message) error {
	d.sent = append(d.sent, sentItem{label, msg})
	return nil
}

func (d *scriptedDevice) Recv() (protocol.Label, protocol.Message, error) {
	require.Lessf(d.t, d.idx, len(d.toRecv), "device script exhausted")
	item := d.toRecv[d.idx]
	d.idx++
	return item.label, item.msg, nil
}

func p2pkhScriptFor(t *testing.T, hash160 [20]byte, params *chaincfg.Params) ([]byte, string) {
	addr, err := btcutil.NewAddressPubKeyHash(hash160[:], params)
	require.NoError(t, err)
	script, err := txscript.PayToAddrScript(addr)
	require.NoError(t, err)
	return script, addr.EncodeAddress()
}

func TestSignTxOneInputOneOutputHappyPath(t *testing.T) {
	params := &chaincfg.MainNetParams

	var ancestorPayHash [20]byte
	ancestorPayHash[0] = 0xAA
	ancestorScript, _ := p2pkhScriptFor(t, ancestorPayHash, params)

	ancestorTx := wire.NewMsgTx(1)
	ancestorTx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0xFFFFFFFF}})
	ancestorTx.AddTxOut(wire.NewTxOut(100000, ancestorScript))

	ancestorHash := ancestorTx.TxHash()

	var changeHash160 [20]byte
	changeHash160[0] = 0xBB
	changeScript, changeAddr := p2pkhScriptFor(t, changeHash160, params)

	currentTx := wire.NewMsgTx(1)
	currentTx.AddTxIn(&wire.TxIn{
		PreviousOutPoint: wire.OutPoint{Hash: ancestorHash, Index: 0},
		Sequence:         wire.MaxTxInSequenceNum,
	})
	currentTx.AddTxOut(wire.NewTxOut(99000, changeScript))

	job := &SigningJob{
		Tx:          currentTx,
		InputPaths:  InputPathMap{0: {44 | 0x80000000, 0, 0, 0, 0}},
		ChangeAddrs: ChangeAddressMap{changeAddr: {44 | 0x80000000, 0, 0, 1, 0}},
		Ancestors:   AncestorStore{ancestorHash.String(): ancestorTx},
		CoinName:    "Bitcoin",
		Params:      params,
	}

	dev := &scriptedDevice{t: t, toRecv: []recvItem{
		{protocol.LabelTxRequest, &protocol.TxRequest{RequestType: protocol.TxRequestTxMeta}},
		{protocol.LabelTxRequest, &protocol.TxRequest{RequestType: protocol.TxRequestTxInput, Details: &protocol.TxRequestDetailsType{RequestIndex: 0}}},
		{protocol.LabelTxRequest, &protocol.TxRequest{RequestType: protocol.TxRequestTxMeta, Details: &protocol.TxRequestDetailsType{TxHash: ancestorHash[:]}}},
		{protocol.LabelTxRequest, &protocol.TxRequest{RequestType: protocol.TxRequestTxInput, Details: &protocol.TxRequestDetailsType{RequestIndex: 0, TxHash: ancestorHash[:]}}},
		{protocol.LabelTxRequest, &protocol.TxRequest{RequestType: protocol.TxRequestTxOutput, Details: &protocol.TxRequestDetailsType{RequestIndex: 0, TxHash: ancestorHash[:]}}},
		{protocol.LabelTxRequest, &protocol.TxRequest{RequestType: protocol.TxRequestTxOutput, Details: &protocol.TxRequestDetailsType{RequestIndex: 0}}},
		{protocol.LabelTxRequest, &protocol.TxRequest{RequestType: protocol.TxRequestTxFinished}},
	}}

	ctx := bus.NewContext(protocol.VendorTrezor)
	events := bus.New()
	evCh := make(chan bus.Event, 8)
	events.Subscribe(evCh)

	coord := NewCoordinator(dev, ctx, events, protocol.VendorTrezor)
	require.NoError(t, coord.SignTx(job))
	require.False(t, ctx.SigningActive())

	require.Len(t, dev.sent, 7) // SignTx + 6 TxAcks (no ack for TXFINISHED)
	require.Equal(t, protocol.LabelSignTx, dev.sent[0].label)

	inputAck := dev.sent[2].msg.(*protocol.TxAck)
	require.Equal(t, protocol.InputScriptSpendAddress, inputAck.Tx.Inputs[0].ScriptType)
	require.Equal(t, []uint32{44 | 0x80000000, 0, 0, 0, 0}, inputAck.Tx.Inputs[0].AddressN)

	ancestorInputAck := dev.sent[4].msg.(*protocol.TxAck)
	require.Empty(t, ancestorInputAck.Tx.Inputs[0].AddressN)

	ancestorOutputAck := dev.sent[5].msg.(*protocol.TxAck)
	require.Equal(t, uint64(100000), ancestorOutputAck.Tx.BinOutputs[0].Amount)

	changeOutputAck := dev.sent[6].msg.(*protocol.TxAck)
	require.Equal(t, []uint32{44 | 0x80000000, 0, 0, 1, 0}, changeOutputAck.Tx.Outputs[0].AddressN)
	require.Empty(t, changeOutputAck.Tx.Outputs[0].Address)

	select {
	case ev := <-evCh:
		require.Equal(t, bus.OperationSucceeded, ev.Type)
	default:
		t.Fatal("expected OPERATION_SUCCEEDED to be published")
	}
}

func TestSignTxMissingAncestorFailsJob(t *testing.T) {
	params := &chaincfg.MainNetParams
	currentTx := wire.NewMsgTx(1)
	currentTx.AddTxIn(&wire.TxIn{PreviousOutPoint: wire.OutPoint{Index: 0}})
	currentTx.AddTxOut(wire.NewTxOut(1000, nil))

	job := &SigningJob{
		Tx:          currentTx,
		InputPaths:  InputPathMap{0: {44 | 0x80000000}},
		ChangeAddrs: ChangeAddressMap{},
		Ancestors:   AncestorStore{},
		CoinName:    "Bitcoin",
		Params:      params,
	}

	missingHash := chainhash.Hash{0x01}
	dev := &scriptedDevice{t: t, toRecv: []recvItem{
		{protocol.LabelTxRequest, &protocol.TxRequest{RequestType: protocol.TxRequestTxMeta, Details: &protocol.TxRequestDetailsType{TxHash: missingHash[:]}}},
	}}

	ctx := bus.NewContext(protocol.VendorTrezor)
	events := bus.New()

	coord := NewCoordinator(dev, ctx, events, protocol.VendorTrezor)
	err := coord.SignTx(job)
	require.ErrorIs(t, err, ErrMissingAncestor)
	require.False(t, ctx.SigningActive())

	// a Cancel must have been sent after SignTx.
	require.Len(t, dev.sent, 2)
	require.Equal(t, protocol.LabelCancel, dev.sent[1].label)
}

func TestSignTxBusyWhileJobInFlight(t *testing.T) {
	ctx := bus.NewContext(protocol.VendorTrezor)
	require.True(t, ctx.BeginSigning())

	dev := &scriptedDevice{t: t}
	events := bus.New()
	coord := NewCoordinator(dev, ctx, events, protocol.VendorTrezor)

	err := coord.SignTx(&SigningJob{Tx: wire.NewMsgTx(1)})
	require.ErrorIs(t, err, ErrBusy)
	require.Empty(t, dev.sent)
}
