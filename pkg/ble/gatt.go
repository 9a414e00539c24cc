package ble

import "github.com/google/uuid"

// DeviceName is the advertised GAP device name.
const DeviceName = "Weight Aware Bag"

// GATT layout of the bag.
var (
	// ServiceUUID is the primary service.
	ServiceUUID = uuid.MustParse("15274059-8c2f-4a3f-8130-0c240179d72f")

	// SetupCharUUID receives provisioning writes from the owner.
	SetupCharUUID = uuid.MustParse("3dc80940-699f-4666-8dc7-a150d328eb27")

	// DataCharUUID carries weight readings (read and notify).
	DataCharUUID = uuid.MustParse("6b0d555e-d962-4219-89ae-d7c32efa7dcf")
)

// CharProps are GATT characteristic property flags.
type CharProps uint8

// Characteristic properties.
const (
	PropRead   CharProps = 0x02
	PropWrite  CharProps = 0x08
	PropNotify CharProps = 0x10
)

// Has reports whether all bits of p are set.
func (c CharProps) Has(p CharProps) bool {
	return c&p == p
}

// Characteristic describes one characteristic of the service.
type Characteristic struct {
	UUID  uuid.UUID
	Name  string
	Props CharProps
}

// Service describes a primary GATT service.
type Service struct {
	UUID            uuid.UUID
	Characteristics []Characteristic
}

// Characteristic returns the characteristic with the given UUID.
func (s Service) Characteristic(id uuid.UUID) (Characteristic, bool) {
	for _, c := range s.Characteristics {
		if c.UUID == id {
			return c, true
		}
	}
	return Characteristic{}, false
}

// BagService returns the GATT service exposed by the bag.
func BagService() Service {
	return Service{
		UUID: ServiceUUID,
		Characteristics: []Characteristic{
			{UUID: SetupCharUUID, Name: "setup", Props: PropWrite},
			{UUID: DataCharUUID, Name: "data", Props: PropRead | PropNotify},
		},
	}
}

// Advertisement is the payload broadcast while the device is connectable.
type Advertisement struct {
	Name        string
	ServiceUUID uuid.UUID
	Connectable bool
}

// DefaultAdvertisement returns the advertisement of the bag.
func DefaultAdvertisement() Advertisement {
	return Advertisement{
		Name:        DeviceName,
		ServiceUUID: ServiceUUID,
		Connectable: true,
	}
}
