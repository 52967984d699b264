package bus

import (
	"sync"

	"github.com/julienbureau/multibit-hardware/adapter"
	"github.com/julienbureau/multibit-hardware/protocol"
)

// Hierarchy is the cached (chaincode, pubkey, path) triple a
// requestDeterministicHierarchy call reconstructs from a PublicKey
// response. Deriving child keys from it is the host Bitcoin library's job;
// this module only caches the root.
type Hierarchy struct {
	Path      []uint32
	ChainCode []byte
	PublicKey []byte
	Xpub      string
}

// Context is the single mutable Session Context record described by C7. It
// is shared by reference across subscribers; the Session Client and the
// Signing Coordinator it runs are its only writers, and they write on the
// goroutine running the request, after reading a device message and before
// publishing the corresponding Event, so a subscriber reading Context from
// its own Event handler sees the state that Event reflects. Guarded by a
// mutex because subscribers and other callers may read Context from a
// different goroutine than the one running the request.
type Context struct {
	mu sync.RWMutex

	vendor    protocol.Vendor
	features  *adapter.FeaturesInfo
	publicKey *adapter.PublicKeyInfo
	hierarchy *Hierarchy

	signingActive bool
	signatures    [][]byte
	serializedTx  []byte
}

// NewContext returns a Context for the given vendor, ready for use. The
// vendor is fixed for the Context's lifetime; a new Context is created on
// every device attach.
func NewContext(v protocol.Vendor) *Context {
	return &Context{vendor: v}
}

// Vendor returns the vendor this Context was created for.
func (c *Context) Vendor() protocol.Vendor {
	return c.vendor
}

// Reset clears all accumulated state. Called when a read observes the device
// detaching.
func (c *Context) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.features = nil
	c.publicKey = nil
	c.hierarchy = nil
	c.signingActive = false
	c.signatures = nil
	c.serializedTx = nil
}

// SetFeatures records the most recently observed device Features.
func (c *Context) SetFeatures(f adapter.FeaturesInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.features = &f
}

// Features returns the cached Features, if any.
func (c *Context) Features() (adapter.FeaturesInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.features == nil {
		return adapter.FeaturesInfo{}, false
	}
	return *c.features, true
}

// SetPublicKey records the most recently requested account's PublicKey.
func (c *Context) SetPublicKey(pk adapter.PublicKeyInfo) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.publicKey = &pk
}

// PublicKey returns the cached PublicKey, if any.
func (c *Context) PublicKey() (adapter.PublicKeyInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.publicKey == nil {
		return adapter.PublicKeyInfo{}, false
	}
	return *c.publicKey, true
}

// SetHierarchy records a reconstructed Hierarchy.
func (c *Context) SetHierarchy(h Hierarchy) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hierarchy = &h
}

// Hierarchy returns the cached Hierarchy, if any.
func (c *Context) Hierarchy() (Hierarchy, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.hierarchy == nil {
		return Hierarchy{}, false
	}
	return *c.hierarchy, true
}

// BeginSigning marks a SigningJob as in-flight. It returns false if one is
// already active, which the Signing Coordinator must surface as Busy
// without any wire traffic.
func (c *Context) BeginSigning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.signingActive {
		return false
	}
	c.signingActive = true
	c.signatures = nil
	c.serializedTx = nil
	return true
}

// EndSigning destroys the in-flight SigningJob unconditionally. Called on
// success, failure, cancel, or detach.
func (c *Context) EndSigning() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signingActive = false
}

// SigningActive reports whether a SigningJob currently occupies the
// Context.
func (c *Context) SigningActive() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.signingActive
}

// AppendSignature appends one device-returned signature; the signature
// index the device reported with it is not recorded.
func (c *Context) AppendSignature(sig []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.signatures = append(c.signatures, sig)
}

// AppendSerializedTx appends the next slice of the device's canonical
// serialized signed transaction.
func (c *Context) AppendSerializedTx(b []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.serializedTx = append(c.serializedTx, b...)
}

// Signatures returns the signatures accumulated during the most recently
// completed or in-flight signing job.
func (c *Context) Signatures() [][]byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([][]byte, len(c.signatures))
	copy(out, c.signatures)
	return out
}

// SerializedTx returns the accumulated serialized transaction bytes.
func (c *Context) SerializedTx() []byte {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]byte, len(c.serializedTx))
	copy(out, c.serializedTx)
	return out
}
