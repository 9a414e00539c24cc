// Package identity defines the Bluetooth LE peer identity used for pairing.
//
// A DeviceIdentity is the 48-bit device address together with its address
// kind. Only the identity form of an address (public, or random static after
// resolution by the controller) is stable across reconnections, so only
// KindPublicID identities are persisted as the device owner.
//
// Address bytes are held in little-endian order, the order in which they
// travel over the air and the order used for the persisted blob. String and
// Parse use the conventional most-significant-byte-first display form:
//
//	id := identity.FromLEBytes([6]byte{0x66, 0x55, 0x44, 0x33, 0x22, 0x11}, identity.KindPublicID)
//	id.String() // "11:22:33:44:55:66"
package identity
