package persistence

import (
	"fmt"
	"hash/crc32"

	"github.com/fxamacker/cbor/v2"
)

// FormatVersion is the current version of the namespace file format.
const FormatVersion = 1

// encMode is the CBOR encoder mode for namespace documents.
// Canonical sorting keeps identical content byte-identical on flash.
var encMode cbor.EncMode

// decMode is the CBOR decoder mode for namespace documents.
var decMode cbor.DecMode

func init() {
	var err error

	encOpts := cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsEmpty,
	}
	encMode, err = encOpts.EncMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create namespace CBOR encoder mode: %v", err))
	}

	decOpts := cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyEnforcedAPF,
		IndefLength: cbor.IndefLengthForbidden,
	}
	decMode, err = decOpts.DecMode()
	if err != nil {
		panic(fmt.Sprintf("failed to create namespace CBOR decoder mode: %v", err))
	}
}

// document is the on-flash envelope of a namespace.
// Checksum is the CRC-32 (IEEE) of Payload.
type document struct {
	Version  int    `cbor:"1,keyasint"`
	Payload  []byte `cbor:"2,keyasint"`
	Checksum uint32 `cbor:"3,keyasint"`
}

// encodeEntries serializes a namespace into its envelope.
func encodeEntries(entries map[string]entry) ([]byte, error) {
	payload, err := encMode.Marshal(entries)
	if err != nil {
		return nil, err
	}
	return encMode.Marshal(document{
		Version:  FormatVersion,
		Payload:  payload,
		Checksum: crc32.ChecksumIEEE(payload),
	})
}

// decodeEntries parses an envelope, verifying version and checksum.
func decodeEntries(data []byte) (map[string]entry, error) {
	var doc document
	if err := decMode.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if doc.Version != FormatVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, doc.Version)
	}
	if crc32.ChecksumIEEE(doc.Payload) != doc.Checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	entries := make(map[string]entry)
	if err := decMode.Unmarshal(doc.Payload, &entries); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	for key, e := range entries {
		if validateKey(key) != nil || (e.Type != TypeU8 && e.Type != TypeBlob) {
			return nil, fmt.Errorf("%w: bad entry %q", ErrCorrupt, key)
		}
	}
	return entries, nil
}
