// Package bus implements the Event Bus & Context (C7): a synchronous
// publish/subscribe dispatch plus the single mutable Session Context shared
// by reference between the goroutine running a request and subscribers.
//
// Dispatch is adapted from go-ethereum's event.Feed: reflect-based,
// one-to-many, synchronous Send. Subscribers must not block the dispatch
// path; long-running work belongs on a goroutine the subscriber starts
// itself.
package bus

import "github.com/julienbureau/multibit-hardware/event"

// EventType is the public event-type vocabulary a Session Client publishes.
type EventType string

const (
	DeviceReady            EventType = "DEVICE_READY"
	DeviceDetached         EventType = "DEVICE_DETACHED"
	DeviceFailed           EventType = "DEVICE_FAILED"
	ShowPinEntry           EventType = "SHOW_PIN_ENTRY"
	ShowPassphraseEntry    EventType = "SHOW_PASSPHRASE_ENTRY"
	ShowButtonPress        EventType = "SHOW_BUTTON_PRESS"
	DeterministicHierarchy EventType = "DETERMINISTIC_HIERARCHY"
	AddressReady           EventType = "ADDRESS"
	PublicKeyReady         EventType = "PUBLIC_KEY"
	OperationSucceeded     EventType = "OPERATION_SUCCEEDED"
	OperationFailed        EventType = "OPERATION_FAILED"
)

// Event is the value delivered to every subscriber. Payload carries the
// event-specific data (an adapter.FeaturesInfo, an adapter.AddressInfo, an
// error, or nil for pure lifecycle transitions); subscribers type-assert on
// the combination of Type and Payload they care about.
type Event struct {
	Type    EventType
	Payload interface{}
}

// Bus is a single-process publish/subscribe dispatcher for Events. The zero
// value is not usable; construct with New.
type Bus struct {
	feed  event.Feed
	scope event.SubscriptionScope
}

// New returns a ready-to-use Bus.
func New() *Bus {
	return &Bus{}
}

// Subscribe registers ch to receive every future Publish. The returned
// Subscription's Err channel closes when Close is called on the Bus or
// Unsubscribe is called directly.
func (b *Bus) Subscribe(ch chan<- Event) event.Subscription {
	sub := b.feed.Subscribe(ch)
	if tracked := b.scope.Track(sub); tracked != nil {
		return tracked
	}
	// The Bus is already closed: drop the feed subscription again.
	sub.Unsubscribe()
	return nil
}

// Publish delivers evt to every current subscriber synchronously, returning
// the number of subscribers it was delivered to. Publish waits until every
// subscriber has accepted the value, so a subscriber whose channel buffer is
// full and that isn't receiving stalls it; go-ethereum's Feed semantics
// apply unchanged (see event.Feed.Send).
func (b *Bus) Publish(evt Event) int {
	return b.feed.Send(evt)
}

// Close unsubscribes every tracked subscriber. Further Publish calls are
// safe but reach nobody.
func (b *Bus) Close() {
	b.scope.Close()
}
