package transport

import (
	"errors"
	"io"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/karalabe/hid"
)

// Vendor identifies which of the two supported protobuf schemas a discovered
// device speaks.
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorTrezor
	VendorKeepKey
)

func (v Vendor) String() string {
	switch v {
	case VendorTrezor:
		return "trezor"
	case VendorKeepKey:
		return "keepkey"
	default:
		return "unknown"
	}
}

// usbIdentity is a vendor/product ID pair this package knows how to classify.
type usbIdentity struct {
	vendor    Vendor
	vendorID  uint16
	productID uint16
	usageID   uint16
	endpoint  int
}

// known USB identities, informative per the external interfaces section:
// Trezor V1 uses 534c:0001, KeepKey uses 2b24:0001 for its primary HID
// interface.
var knownIdentities = []usbIdentity{
	{VendorTrezor, 0x534c, 0x0001, 0xff00, 0},
	{VendorKeepKey, 0x2b24, 0x0001, 0xff00, 0},
}

// DeviceInfo describes one HID device discovered on the bus that matches a
// known Trezor/KeepKey identity.
type DeviceInfo struct {
	Vendor Vendor
	Path   string
	info   hid.DeviceInfo
}

var (
	// commsLock and commsPend exist for the same reason as in the teacher's
	// Hub: hidapi on Linux opens the device during enumeration to read
	// extra metadata, which can collide with opening a device. Discover
	// returns no devices while an Open call is in progress (see Open); since
	// this package has no long-lived polling loop, it does not retry.
	commsLock sync.Mutex
	commsPend atomic.Int32
)

// Discover enumerates attached devices matching a known Trezor/KeepKey USB
// identity. It does not open any device.
func Discover() ([]DeviceInfo, error) {
	if !hid.Supported() {
		return nil, errors.New("transport: hid unsupported on this platform")
	}

	if runtime.GOOS == "linux" {
		commsLock.Lock()
		if commsPend.Load() > 0 {
			commsLock.Unlock()
			return nil, nil
		}
		defer commsLock.Unlock()
	}

	var found []DeviceInfo
	for _, ident := range knownIdentities {
		infos, err := hid.Enumerate(ident.vendorID, ident.productID)
		if err != nil {
			log.Errorf("transport: enumerate vendor=%#x product=%#x: %v", ident.vendorID, ident.productID, err)
			continue
		}
		for _, info := range infos {
			if info.UsagePage == ident.usageID || info.Interface == ident.endpoint {
				found = append(found, DeviceInfo{Vendor: ident.vendor, Path: info.Path, info: info})
			}
		}
	}
	return found, nil
}

// Open opens the HID device described by info and returns it wrapped as an
// io.ReadWriter suitable for NewFramer. The caller owns the returned
// io.Closer's lifetime.
func Open(info DeviceInfo) (io.ReadWriteCloser, error) {
	// Guard against the enumeration race described above for the duration
	// of the open handshake.
	if runtime.GOOS == "linux" {
		commsPend.Add(1)
		defer commsPend.Add(-1)
	}
	dev, err := info.info.Open()
	if err != nil {
		return nil, err
	}
	return dev, nil
}
