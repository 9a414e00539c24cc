// Package transport implements a TCP link simulator that stands in for the
// Bluetooth LE radio during development and tests.
//
// The Server plays the peripheral. Each accepted stream is one link: the
// central announces its identity in a hello frame, the server assigns a
// connection handle and posts a ble.ConnectEvent to its event sink. When the
// stream ends the server posts a ble.DisconnectEvent. The server implements
// the link operations the pairing authority needs (terminate a link, request
// connection parameters), so it can be wired wherever a host stack would be.
//
// Dial plays the central.
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│   CBOR link frames (wire)      │
//	├────────────────────────────────┤
//	│   Length-Prefix Framing (4B)   │
//	├────────────────────────────────┤
//	│           TCP                  │
//	└────────────────────────────────┘
//
// # Link Supervision
//
// A silent central is detected with ping/pong frames. After MaxMissed
// unanswered pings the link is dropped with reason SUPERVISION_TIMEOUT,
// like a radio link whose supervision timer expired.
package transport
