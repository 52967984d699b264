package bus

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/julienbureau/multibit-hardware/adapter"
	"github.com/julienbureau/multibit-hardware/protocol"
)

func TestBusPublishDeliversToSubscriber(t *testing.T) {
	b := New()
	ch := make(chan Event, 1)
	sub := b.Subscribe(ch)
	defer sub.Unsubscribe()

	n := b.Publish(Event{Type: DeviceReady, Payload: adapter.FeaturesInfo{Label: "trezor"}})
	require.Equal(t, 1, n)

	evt := <-ch
	require.Equal(t, DeviceReady, evt.Type)
	require.Equal(t, "trezor", evt.Payload.(adapter.FeaturesInfo).Label)
}

func TestBusCloseUnsubscribesAll(t *testing.T) {
	b := New()
	ch := make(chan Event, 1)
	b.Subscribe(ch)
	b.Close()
	require.Equal(t, 0, b.Publish(Event{Type: DeviceDetached}))
}

func TestContextSigningBusy(t *testing.T) {
	c := NewContext(protocol.VendorTrezor)
	require.True(t, c.BeginSigning())
	require.False(t, c.BeginSigning())
	c.EndSigning()
	require.True(t, c.BeginSigning())
}

func TestContextResetClearsState(t *testing.T) {
	c := NewContext(protocol.VendorKeepKey)
	c.SetFeatures(adapter.FeaturesInfo{Label: "keepkey"})
	c.AppendSignature([]byte{1, 2, 3})
	c.Reset()

	_, ok := c.Features()
	require.False(t, ok)
	require.Empty(t, c.Signatures())
}
