// Package truststore persists the device's trust record: the identity of
// its single owner and the provisioning-complete flag.
//
// The Store exclusively owns a namespace handle on the flash partition. Every
// operation runs as one critical section under the store mutex, released on
// every exit path; no caller ever sees the handle itself. Values are kept
// under two independent keys so that flipping the flag never rewrites the
// identity:
//
//	namespace "config"
//	  paired_id_address  6-byte blob, little-endian owner address
//	  setup_finished     u8, 0 or 1
//
// Failures are reported as *StorageFault, which matches ErrStorage with
// errors.Is. A missing value is not a failure.
package truststore
