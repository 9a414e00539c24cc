// Package wire defines the CBOR frames exchanged over the simulated link.
//
// The link simulator stands in for the radio during development: a central
// opens a stream, announces its identity and protocol version in a hello
// frame, and the peripheral answers with the connection handle it assigned.
// After that either side may send link-control frames (connection parameter
// requests, supervision pings and pongs, termination).
//
// # CBOR Integer Keys
//
// All maps use integer keys for compactness. Fields that do not apply to a
// frame type are absent.
//
//	1  type       frame type
//	2  seq        ping/pong sequence number
//	3  peer       central identity (hello)
//	4  handle     assigned connection handle (connected)
//	5  params     connection parameters (conn_params)
//	6  reason     HCI reason (terminate)
//	7  version    link protocol version "major.minor" (hello)
package wire
