package pairing

import (
	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/transport"
	"github.com/weightaware/bag-go/pkg/truststore"
)

// Link is the part of the transport the authority drives.
type Link interface {
	// Disconnect terminates the connection with the given reason.
	Disconnect(handle ble.ConnHandle, reason ble.DisconnectReason) error

	// UpdateConnParams requests new connection parameters.
	UpdateConnParams(handle ble.ConnHandle, params ble.ConnParams) error
}

// OwnerStore is the part of the trust store the authority reads and writes.
type OwnerStore interface {
	// OwnerIdentity returns the owner on record.
	OwnerIdentity() (identity.DeviceIdentity, bool, error)

	// ClaimOwner records candidate unless an owner exists, in one critical
	// section, and returns the owner on record afterwards.
	ClaimOwner(candidate identity.DeviceIdentity) (identity.DeviceIdentity, bool, error)
}

// Compile-time interface satisfaction checks.
var (
	_ Link       = (*transport.Server)(nil)
	_ OwnerStore = (*truststore.Store)(nil)
)
