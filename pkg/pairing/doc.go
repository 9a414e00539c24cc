// Package pairing enforces single-owner access control on the bag.
//
// The Authority receives every connection lifecycle event raised by the
// transport. The first peer that ever connects is recorded as the owner.
// Afterwards the owner may reconnect freely and any other peer is
// disconnected before it can touch a characteristic:
//
//	Unpaired --connect(A)--> Paired(owner=A)
//	Paired --connect(A)--> Paired   (connection parameters applied)
//	Paired --connect(B)--> Paired   (B disconnected, nothing stored)
//
// There is no way back to Unpaired short of erasing the storage partition.
//
// Storage faults never escape a handler. A failed owner read leaves the
// connection alone and does nothing further. A failed owner write on the
// first connection is reported but the connection is still allowed, so a
// flaky flash write cannot lock the rightful owner out.
package pairing
