// Package discovery advertises the link simulator over mDNS/DNS-SD.
//
// On hardware the bag is found through BLE advertising. During development
// the link simulator listens on TCP instead, so the same advertising
// payload is published as a DNS-SD service:
//
// # Service type (_bag-ble._tcp)
//
// Instance name format: "<device name>-<suffix>", where the suffix is a short
// hex tag chosen at boot so that several simulators on one network can be
// told apart.
//
// TXT records:
//   - name: advertised GAP device name (required)
//   - svc: primary GATT service UUID (required)
//   - paired: "1" once an owner is on record, "0" otherwise (required)
//   - ver: link protocol version (optional)
//   - fw: firmware version (optional)
//
// The paired flag is refreshed with Update when the pairing state changes,
// so centrals browsing the network can skip a bag that is already owned.
package discovery
