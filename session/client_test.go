package session

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/julienbureau/multibit-hardware/addrpath"
	"github.com/julienbureau/multibit-hardware/bus"
	"github.com/julienbureau/multibit-hardware/protocol"
	"github.com/julienbureau/multibit-hardware/transport"
)

// fakeDevice drives the device side of a net.Pipe connection using the same
// Framer and Codec Registry the Session Client uses, so these tests
// exercise the real wire format end to end rather than a mocked Client.
type fakeDevice struct {
	framer *transport.Framer
	vendor protocol.Vendor
}

func newFakeDevice(conn net.Conn, vendor protocol.Vendor) *fakeDevice {
	return &fakeDevice{framer: transport.NewFramer(conn, transport.Options{}), vendor: vendor}
}

func (d *fakeDevice) recv() (protocol.Label, protocol.Message, error) {
	tag, body, err := d.framer.Read()
	if err != nil {
		return "", nil, err
	}
	return protocol.Parse(d.vendor, tag, body)
}

func (d *fakeDevice) send(label protocol.Label, msg protocol.Message) error {
	tag, body, err := protocol.Serialize(d.vendor, label, msg)
	if err != nil {
		return err
	}
	return d.framer.Write(tag, body)
}

func TestStartPublishesDeviceReady(t *testing.T) {
	clientConn, deviceConn := net.Pipe()
	defer clientConn.Close()
	defer deviceConn.Close()

	go func() {
		dev := newFakeDevice(deviceConn, protocol.VendorTrezor)
		label, _, err := dev.recv()
		if err != nil || label != protocol.LabelInitialize {
			return
		}
		dev.send(protocol.LabelFeatures, &protocol.Features{Label: "My Trezor", Initialized: true})
	}()

	c := New(clientConn, protocol.VendorTrezor, transport.Options{})
	evCh := make(chan bus.Event, 4)
	c.Events().Subscribe(evCh)

	require.NoError(t, c.Start())
	require.True(t, c.IsWalletPresent())

	select {
	case ev := <-evCh:
		require.Equal(t, bus.DeviceReady, ev.Type)
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for DEVICE_READY")
	}
}

func TestRequestAddressPinGated(t *testing.T) {
	clientConn, deviceConn := net.Pipe()
	defer clientConn.Close()
	defer deviceConn.Close()

	const wantAddress = "1BoatSLRHtKNngkdXEeobR76b53LETtpyT"

	go func() {
		dev := newFakeDevice(deviceConn, protocol.VendorTrezor)

		label, _, err := dev.recv()
		if err != nil || label != protocol.LabelGetAddress {
			return
		}
		if err := dev.send(protocol.LabelPinMatrixRequest, &protocol.PinMatrixRequest{Type: 1}); err != nil {
			return
		}

		label, msg, err := dev.recv()
		if err != nil || label != protocol.LabelPinMatrixAck {
			return
		}
		ack := msg.(*protocol.PinMatrixAck)
		if ack.Pin != "5" {
			return
		}
		dev.send(protocol.LabelAddress, &protocol.Address{Address: wantAddress})
	}()

	c := New(clientConn, protocol.VendorTrezor, transport.Options{})

	evCh := make(chan bus.Event, 4)
	c.Events().Subscribe(evCh)
	go func() {
		for ev := range evCh {
			if ev.Type == bus.ShowPinEntry {
				c.ProvidePIN("5")
				return
			}
		}
	}()

	addr, err := c.RequestAddress(0, addrpath.ReceiveFunds, 0, false)
	require.NoError(t, err)
	require.Equal(t, wantAddress, addr.Address)
}
