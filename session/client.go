// Package session implements the Session Client (C4): half-duplex
// request/response against a Trezor- or KeepKey-family device, plus the
// device-initiated reprompt loop (PIN, passphrase, button) every operation
// may trigger before it completes.
//
// Grounded on go-ethereum's accounts/usbwallet wallet: a state lock
// protects Session Context reads from long-running hardware communication,
// while the communication itself is serialized by its own lock so that
// listing cached state never blocks behind a pending PIN prompt.
package session

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/julienbureau/multibit-hardware/addrpath"
	"github.com/julienbureau/multibit-hardware/adapter"
	"github.com/julienbureau/multibit-hardware/bus"
	"github.com/julienbureau/multibit-hardware/protocol"
	"github.com/julienbureau/multibit-hardware/signing"
	"github.com/julienbureau/multibit-hardware/transport"
)

// Client is the Session Client (C4). The zero value is not usable;
// construct with New.
type Client struct {
	// commsLock serializes the top-level operations in this file: Start,
	// RequestFeatures, RequestPublicKey, RequestDeterministicHierarchy,
	// RequestAddress and CipherKeyValue all hold it for the duration of
	// their round-trip (SignTx and Cancel do not take it),
	// matching the half-duplex discipline the device itself enforces.
	commsLock sync.Mutex

	framer *transport.Framer
	vendor protocol.Vendor

	events *bus.Bus
	ctx    *bus.Context

	pinCh        chan string
	passphraseCh chan string

	closeOnce sync.Once
	done      chan struct{}
}

// New returns a Client communicating over rw, framed per opts, for the
// given vendor.
func New(rw io.ReadWriter, vendor protocol.Vendor, opts transport.Options) *Client {
	return &Client{
		framer:       transport.NewFramer(rw, opts),
		vendor:       vendor,
		events:       bus.New(),
		ctx:          bus.NewContext(vendor),
		pinCh:        make(chan string),
		passphraseCh: make(chan string),
		done:         make(chan struct{}),
	}
}

// Events returns the Event Bus subscribers attach to.
func (c *Client) Events() *bus.Bus { return c.events }

// Context returns the shared Session Context.
func (c *Client) Context() *bus.Context { return c.ctx }

// Send implements signing.Device: it serializes msg under label and writes
// one framed message. Exported so the Signing Coordinator can drive the
// same transport without the Session Client serializing the signing
// dialog's internal traffic through its own reprompt loop.
func (c *Client) Send(label protocol.Label, msg protocol.Message) error {
	tag, body, err := protocol.Serialize(c.vendor, label, msg)
	if err != nil {
		return err
	}
	return c.framer.Write(tag, body)
}

// Recv implements signing.Device: it reads one framed message and decodes
// it, silently skipping type tags or bodies the registry can't parse per
// the UnknownType/SchemaError taxonomy (those never abort a session).
func (c *Client) Recv() (protocol.Label, protocol.Message, error) {
	for {
		tag, body, err := c.framer.Read()
		if err != nil {
			return "", nil, err
		}
		label, msg, err := protocol.Parse(c.vendor, tag, body)
		if err != nil {
			if errors.Is(err, protocol.ErrUnknownType) || errors.Is(err, protocol.ErrSchemaError) {
				log.Warnf("session: dropping message: %v", err)
				continue
			}
			return "", nil, err
		}
		return label, msg, nil
	}
}

// roundTrip sends one request and drives the reprompt loop until a terminal
// message arrives.
func (c *Client) roundTrip(label protocol.Label, msg protocol.Message) (protocol.Label, protocol.Message, error) {
	if err := c.Send(label, msg); err != nil {
		return "", nil, err
	}
	return c.repromptLoop()
}

// repromptLoop implements the half-duplex reprompt discipline from §4.4:
// PinMatrixRequest, PassphraseRequest and ButtonRequest are all answered
// without returning control to the caller; Success/Failure and any other
// label end the loop.
func (c *Client) repromptLoop() (protocol.Label, protocol.Message, error) {
	for {
		label, msg, err := c.Recv()
		if err != nil {
			if errors.Is(err, transport.ErrTransportClosed) {
				c.ctx.Reset()
				c.events.Publish(bus.Event{Type: bus.DeviceDetached})
			}
			return "", nil, err
		}

		switch label {
		case protocol.LabelPinMatrixRequest:
			info, _ := adapter.Adapt(c.vendor, label, msg)
			c.events.Publish(bus.Event{Type: bus.ShowPinEntry, Payload: info})
			pin, err := c.awaitPIN()
			if err != nil {
				return "", nil, err
			}
			if err := c.Send(protocol.LabelPinMatrixAck, &protocol.PinMatrixAck{Pin: pin}); err != nil {
				return "", nil, err
			}

		case protocol.LabelPassphraseRequest:
			c.events.Publish(bus.Event{Type: bus.ShowPassphraseEntry})
			pass, err := c.awaitPassphrase()
			if err != nil {
				return "", nil, err
			}
			if err := c.Send(protocol.LabelPassphraseAck, &protocol.PassphraseAck{Passphrase: pass}); err != nil {
				return "", nil, err
			}

		case protocol.LabelButtonRequest:
			info, _ := adapter.Adapt(c.vendor, label, msg)
			c.events.Publish(bus.Event{Type: bus.ShowButtonPress, Payload: info})
			if err := c.Send(protocol.LabelButtonAck, &protocol.ButtonAck{}); err != nil {
				return "", nil, err
			}

		case protocol.LabelFailure:
			f := msg.(*protocol.Failure)
			c.events.Publish(bus.Event{Type: bus.OperationFailed, Payload: adapter.FailureInfo{Code: f.Code, Message: f.Message}})
			return label, msg, fmt.Errorf("session: device reported failure: %s", f.Message)

		default:
			return label, msg, nil
		}
	}
}

func (c *Client) awaitPIN() (string, error) {
	select {
	case pin := <-c.pinCh:
		return pin, nil
	case <-c.done:
		return "", ErrClosed
	}
}

func (c *Client) awaitPassphrase() (string, error) {
	select {
	case p := <-c.passphraseCh:
		return p, nil
	case <-c.done:
		return "", ErrClosed
	}
}

// Start sends Initialize and waits for Features, publishing DEVICE_READY.
func (c *Client) Start() error {
	c.commsLock.Lock()
	defer c.commsLock.Unlock()

	label, msg, err := c.roundTrip(protocol.LabelInitialize, &protocol.Initialize{})
	if err != nil {
		return err
	}
	f, ok := msg.(*protocol.Features)
	if !ok || label != protocol.LabelFeatures {
		return fmt.Errorf("%w: Initialize answered with %s", ErrUnexpectedResponse, label)
	}
	info, _ := adapter.Adapt(c.vendor, label, f)
	fi := info.(adapter.FeaturesInfo)
	c.ctx.SetFeatures(fi)
	c.events.Publish(bus.Event{Type: bus.DeviceReady, Payload: fi})
	return nil
}

// Stop ends the session. Any goroutine blocked in ProvidePIN/
// ProvidePassphrase is released with ErrClosed.
func (c *Client) Stop() error {
	c.closeOnce.Do(func() { close(c.done) })
	return nil
}

// IsWalletPresent reports whether Start has completed successfully and the
// device hasn't since detached.
func (c *Client) IsWalletPresent() bool {
	_, ok := c.ctx.Features()
	return ok
}

// ProvidePIN answers a pending SHOW_PIN_ENTRY prompt.
func (c *Client) ProvidePIN(pin string) error {
	select {
	case c.pinCh <- pin:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// ProvidePassphrase answers a pending SHOW_PASSPHRASE_ENTRY prompt.
func (c *Client) ProvidePassphrase(passphrase string) error {
	select {
	case c.passphraseCh <- passphrase:
		return nil
	case <-c.done:
		return ErrClosed
	}
}

// RequestFeatures re-queries the device's Features without reinitializing
// the session.
func (c *Client) RequestFeatures() (adapter.FeaturesInfo, error) {
	c.commsLock.Lock()
	defer c.commsLock.Unlock()

	label, msg, err := c.roundTrip(protocol.LabelGetFeatures, &protocol.GetFeatures{})
	if err != nil {
		return adapter.FeaturesInfo{}, err
	}
	f, ok := msg.(*protocol.Features)
	if !ok {
		return adapter.FeaturesInfo{}, fmt.Errorf("%w: GetFeatures answered with %s", ErrUnexpectedResponse, label)
	}
	info, _ := adapter.Adapt(c.vendor, label, f)
	fi := info.(adapter.FeaturesInfo)
	c.ctx.SetFeatures(fi)
	return fi, nil
}

// RequestPublicKey fetches the extended public key at path, publishing
// PUBLIC_KEY.
func (c *Client) RequestPublicKey(path []uint32) (adapter.PublicKeyInfo, error) {
	c.commsLock.Lock()
	defer c.commsLock.Unlock()
	return c.requestPublicKeyLocked(path)
}

func (c *Client) requestPublicKeyLocked(path []uint32) (adapter.PublicKeyInfo, error) {
	label, msg, err := c.roundTrip(protocol.LabelGetPublicKey, &protocol.GetPublicKey{AddressN: path})
	if err != nil {
		return adapter.PublicKeyInfo{}, err
	}
	pk, ok := msg.(*protocol.PublicKey)
	if !ok {
		return adapter.PublicKeyInfo{}, fmt.Errorf("%w: GetPublicKey answered with %s", ErrUnexpectedResponse, label)
	}
	info, _ := adapter.Adapt(c.vendor, label, pk)
	pki := info.(adapter.PublicKeyInfo)
	c.ctx.SetPublicKey(pki)
	c.events.Publish(bus.Event{Type: bus.PublicKeyReady, Payload: pki})
	return pki, nil
}

// RequestDeterministicHierarchy issues GetPublicKey for accountPath and
// reconstructs a Hierarchy from the resulting xpub, caching it on the
// Session Context and publishing DETERMINISTIC_HIERARCHY.
func (c *Client) RequestDeterministicHierarchy(accountPath []uint32) (bus.Hierarchy, error) {
	c.commsLock.Lock()
	defer c.commsLock.Unlock()

	pk, err := c.requestPublicKeyLocked(accountPath)
	if err != nil {
		return bus.Hierarchy{}, err
	}
	h := bus.Hierarchy{
		Path:      accountPath,
		ChainCode: pk.ChainCode,
		PublicKey: pk.PublicKey,
		Xpub:      pk.Xpub,
	}
	c.ctx.SetHierarchy(h)
	c.events.Publish(bus.Event{Type: bus.DeterministicHierarchy, Payload: h})
	return h, nil
}

// RequestAddress computes the BIP-44 path for (account, purpose, index) and
// asks the device for the corresponding address, publishing ADDRESS.
func (c *Client) RequestAddress(account uint32, purpose addrpath.Purpose, index uint32, showOnDevice bool) (adapter.AddressInfo, error) {
	c.commsLock.Lock()
	defer c.commsLock.Unlock()

	path := addrpath.ForBip44(account, purpose, index)
	label, msg, err := c.roundTrip(protocol.LabelGetAddress, &protocol.GetAddress{AddressN: path, ShowDisplay: showOnDevice})
	if err != nil {
		return adapter.AddressInfo{}, err
	}
	addr, ok := msg.(*protocol.Address)
	if !ok {
		return adapter.AddressInfo{}, fmt.Errorf("%w: GetAddress answered with %s", ErrUnexpectedResponse, label)
	}
	info, _ := adapter.Adapt(c.vendor, label, addr)
	ai := info.(adapter.AddressInfo)
	c.events.Publish(bus.Event{Type: bus.AddressReady, Payload: ai})
	return ai, nil
}

// SignTx drives the multi-round transaction-signing dialog for job via the
// Signing Coordinator (C5), reusing this Client's transport and Session
// Context. It does not take commsLock: Busy is reported by the Session
// Context itself (only one SigningJob may be in-flight), and holding
// commsLock for the whole dialog would also block unrelated reads of
// cached state such as IsWalletPresent.
func (c *Client) SignTx(job *signing.SigningJob) error {
	coord := signing.NewCoordinator(c, c.ctx, c.events, c.vendor)
	return coord.SignTx(job)
}

// CipherKeyValue drives the device's symmetric cipher-by-key-path
// facility.
func (c *Client) CipherKeyValue(path []uint32, key string, value, iv []byte, encrypt, askOnEncrypt, askOnDecrypt bool) (adapter.CipheredKeyValueInfo, error) {
	c.commsLock.Lock()
	defer c.commsLock.Unlock()

	req := &protocol.CipherKeyValue{
		AddressN:     path,
		Key:          key,
		Value:        value,
		Encrypt:      encrypt,
		AskOnEncrypt: askOnEncrypt,
		AskOnDecrypt: askOnDecrypt,
		IV:           iv,
	}
	label, msg, err := c.roundTrip(protocol.LabelCipherKeyValue, req)
	if err != nil {
		return adapter.CipheredKeyValueInfo{}, err
	}
	ckv, ok := msg.(*protocol.CipheredKeyValue)
	if !ok {
		return adapter.CipheredKeyValueInfo{}, fmt.Errorf("%w: CipherKeyValue answered with %s", ErrUnexpectedResponse, label)
	}
	info, _ := adapter.Adapt(c.vendor, label, ckv)
	return info.(adapter.CipheredKeyValueInfo), nil
}

// Cancel sends a Cancel message and destroys any in-flight SigningJob.
// Per §5, an in-flight round-trip's reprompt loop observes the device's own
// response to Cancel (typically Failure) and terminates through the normal
// Failure path; Cancel itself never blocks on commsLock so it can interrupt
// a round-trip already in progress.
func (c *Client) Cancel() error {
	c.ctx.EndSigning()
	return c.Send(protocol.LabelCancel, &protocol.Cancel{})
}
