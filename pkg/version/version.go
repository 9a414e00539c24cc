// Package version provides the link protocol version and the firmware
// version string reported by the binaries.
package version

import (
	"fmt"
	"strconv"
	"strings"
)

// Current is the link protocol version spoken by this firmware.
const Current = "1.0"

// Firmware is the firmware version. Release builds set it with
// -ldflags "-X github.com/weightaware/bag-go/pkg/version.Firmware=..."
var Firmware = "0.1.0-dev"

// LinkVersion represents a parsed "major.minor" protocol version.
type LinkVersion struct {
	Major uint16
	Minor uint16
}

// Parse parses a "major.minor" version string.
func Parse(s string) (LinkVersion, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 2 {
		return LinkVersion{}, fmt.Errorf("invalid version %q: expected major.minor", s)
	}

	major, err := strconv.ParseUint(parts[0], 10, 16)
	if err != nil || parts[0] == "" {
		return LinkVersion{}, fmt.Errorf("invalid version %q: bad major component", s)
	}

	minor, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil || parts[1] == "" {
		return LinkVersion{}, fmt.Errorf("invalid version %q: bad minor component", s)
	}

	return LinkVersion{Major: uint16(major), Minor: uint16(minor)}, nil
}

// String returns the version as "major.minor".
func (v LinkVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Compatible returns true if the other version has the same major version.
func (v LinkVersion) Compatible(other LinkVersion) bool {
	return v.Major == other.Major
}

// CheckPeer parses a version announced by a peer and reports whether it can
// talk to Current.
func CheckPeer(announced string) error {
	peer, err := Parse(announced)
	if err != nil {
		return err
	}
	current, _ := Parse(Current)
	if !current.Compatible(peer) {
		return fmt.Errorf("incompatible link protocol %s (want %d.x)", peer, current.Major)
	}
	return nil
}
