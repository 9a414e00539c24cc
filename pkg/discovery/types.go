package discovery

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Service type constants for mDNS.
const (
	// ServiceType is the DNS-SD service type of the link simulator.
	ServiceType = "_bag-ble._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// DefaultPort is the default link simulator port.
	DefaultPort = 7430
)

// TXT record key constants.
const (
	TXTKeyName     = "name"
	TXTKeyService  = "svc"
	TXTKeyPaired   = "paired"
	TXTKeyVersion  = "ver"
	TXTKeyFirmware = "fw"
)

// Limits.
const (
	// MaxInstanceNameLen is the DNS label limit.
	MaxInstanceNameLen = 63

	// MaxTXTRecordSize is the maximum total TXT record size.
	MaxTXTRecordSize = 400
)

// Discovery errors.
var (
	ErrInvalidTXTRecord    = errors.New("invalid TXT record format")
	ErrMissingRequired     = errors.New("missing required field")
	ErrInstanceNameTooLong = errors.New("instance name exceeds 63 characters")
	ErrNotFound            = errors.New("service not found")
	ErrNotAdvertising      = errors.New("not advertising")
)

// DeviceInfo is the advertising payload of a bag.
type DeviceInfo struct {
	// Instance is the DNS-SD instance name.
	Instance string

	// Name is the GAP device name.
	Name string

	// ServiceUUID is the primary GATT service.
	ServiceUUID uuid.UUID

	// Paired reports whether an owner is on record.
	Paired bool

	// Version is the link protocol version (optional).
	Version string

	// Firmware is the firmware version (optional).
	Firmware string

	// Port is the link simulator port.
	Port uint16
}

// Validate checks the fields required for advertising.
func (d *DeviceInfo) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyName)
	}
	if d.ServiceUUID == uuid.Nil {
		return fmt.Errorf("%w: %s", ErrMissingRequired, TXTKeyService)
	}
	return ValidateInstanceName(d.InstanceName())
}

// InstanceName returns the instance name, falling back to Name.
func (d *DeviceInfo) InstanceName() string {
	if d.Instance != "" {
		return d.Instance
	}
	return d.Name
}

// Service is a bag found while browsing.
type Service struct {
	// InstanceName is the DNS-SD instance name.
	InstanceName string

	// Host is the advertised host name.
	Host string

	// Port is the link simulator port.
	Port uint16

	// Addresses are the resolved IP addresses, merged across interfaces.
	Addresses []string

	// Info is the decoded TXT payload.
	Info DeviceInfo
}

// LinkAddress returns a host:port for dialing the first resolved address.
func (s *Service) LinkAddress() (string, bool) {
	if len(s.Addresses) == 0 {
		return "", false
	}
	return joinHostPort(s.Addresses[0], s.Port), true
}
