package identity

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// AddressLen is the length of a device address in bytes.
const AddressLen = 6

// Identity errors.
var (
	ErrInvalidAddress = errors.New("invalid device address")
	ErrInvalidKind    = errors.New("invalid address kind")
)

// AddressKind distinguishes the address types reported by the BLE host.
// Values follow the host stack numbering.
type AddressKind uint8

const (
	// KindPublic is a public device address.
	KindPublic AddressKind = 0

	// KindRandom is a random device address (static or private).
	KindRandom AddressKind = 1

	// KindPublicID is a public identity address, or a resolvable private
	// address that was resolved to its public identity.
	KindPublicID AddressKind = 2

	// KindRandomID is a random static identity address, or a resolvable
	// private address that was resolved to its static identity.
	KindRandomID AddressKind = 3
)

// String returns the kind name.
func (k AddressKind) String() string {
	switch k {
	case KindPublic:
		return "PUBLIC"
	case KindRandom:
		return "RANDOM"
	case KindPublicID:
		return "PUBLIC_ID"
	case KindRandomID:
		return "RANDOM_ID"
	default:
		return "UNKNOWN"
	}
}

// Valid reports whether k is a known address kind.
func (k AddressKind) Valid() bool {
	return k <= KindRandomID
}

// IsIdentity reports whether the kind is a resolved identity form.
func (k AddressKind) IsIdentity() bool {
	return k == KindPublicID || k == KindRandomID
}

// ParseKind parses a kind name as returned by AddressKind.String.
// Matching is case-insensitive.
func ParseKind(s string) (AddressKind, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "PUBLIC":
		return KindPublic, nil
	case "RANDOM":
		return KindRandom, nil
	case "PUBLIC_ID":
		return KindPublicID, nil
	case "RANDOM_ID":
		return KindRandomID, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// DeviceIdentity identifies a BLE peer across reconnections.
// Two identities are equal iff both address bytes and kind match.
// The type is comparable, so == has the same meaning as Equal.
type DeviceIdentity struct {
	// Address holds the address in little-endian byte order.
	Address [AddressLen]byte

	// Kind is the address kind.
	Kind AddressKind
}

// FromLEBytes builds an identity from little-endian address bytes.
func FromLEBytes(b [AddressLen]byte, kind AddressKind) DeviceIdentity {
	return DeviceIdentity{Address: b, Kind: kind}
}

// FromSlice builds an identity from a little-endian byte slice.
// The slice must be exactly AddressLen bytes long.
func FromSlice(b []byte, kind AddressKind) (DeviceIdentity, error) {
	if len(b) != AddressLen {
		return DeviceIdentity{}, fmt.Errorf("%w: length %d, want %d", ErrInvalidAddress, len(b), AddressLen)
	}
	var addr [AddressLen]byte
	copy(addr[:], b)
	return DeviceIdentity{Address: addr, Kind: kind}, nil
}

// Parse parses the colon-separated display form ("AA:BB:CC:DD:EE:FF",
// most significant byte first). Dashes are accepted as separators.
func Parse(s string, kind AddressKind) (DeviceIdentity, error) {
	if !kind.Valid() {
		return DeviceIdentity{}, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}

	s = strings.ReplaceAll(strings.TrimSpace(s), "-", ":")
	parts := strings.Split(s, ":")
	if len(parts) != AddressLen {
		return DeviceIdentity{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
	}

	var addr [AddressLen]byte
	for i, p := range parts {
		if len(p) != 2 {
			return DeviceIdentity{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		b, err := hex.DecodeString(p)
		if err != nil {
			return DeviceIdentity{}, fmt.Errorf("%w: %q", ErrInvalidAddress, s)
		}
		// Display order is reversed relative to storage order.
		addr[AddressLen-1-i] = b[0]
	}

	return DeviceIdentity{Address: addr, Kind: kind}, nil
}

// MustParse is like Parse but panics on error. Intended for constants and tests.
func MustParse(s string, kind AddressKind) DeviceIdentity {
	id, err := Parse(s, kind)
	if err != nil {
		panic(err)
	}
	return id
}

// LEBytes returns the address in little-endian byte order.
func (d DeviceIdentity) LEBytes() [AddressLen]byte {
	return d.Address
}

// Equal reports whether d and other have the same address bytes and kind.
func (d DeviceIdentity) Equal(other DeviceIdentity) bool {
	return d == other
}

// IsZero reports whether the address bytes are all zero.
func (d DeviceIdentity) IsZero() bool {
	return d.Address == [AddressLen]byte{}
}

// WithKind returns a copy of d with the kind replaced.
func (d DeviceIdentity) WithKind(kind AddressKind) DeviceIdentity {
	d.Kind = kind
	return d
}

// IsResolvablePrivate reports whether d is a random address of the
// resolvable private sub-type (top bits 01). Such addresses rotate and
// cannot identify a peer on their own.
func (d DeviceIdentity) IsResolvablePrivate() bool {
	return d.Kind == KindRandom && d.Address[AddressLen-1]>>6 == 0b01
}

// IsStaticRandom reports whether d is a random static address (top bits 11).
func (d DeviceIdentity) IsStaticRandom() bool {
	return (d.Kind == KindRandom || d.Kind == KindRandomID) && d.Address[AddressLen-1]>>6 == 0b11
}

// String returns the display form, most significant byte first.
func (d DeviceIdentity) String() string {
	var sb strings.Builder
	sb.Grow(3*AddressLen - 1)
	for i := AddressLen - 1; i >= 0; i-- {
		fmt.Fprintf(&sb, "%02X", d.Address[i])
		if i > 0 {
			sb.WriteByte(':')
		}
	}
	return sb.String()
}

// Describe returns the display form with the kind, e.g. "11:22:33:44:55:66/PUBLIC_ID".
func (d DeviceIdentity) Describe() string {
	return d.String() + "/" + d.Kind.String()
}
