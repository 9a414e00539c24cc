// Package ble defines the boundary between the device core and the
// Bluetooth LE host stack.
//
// The host stack reports link activity as messages: a ConnectEvent when a
// central connects and a DisconnectEvent when the link drops. A Dispatcher
// delivers these messages to handlers registered at startup, one message at
// a time by default, mirroring the single host task of an embedded stack.
//
// The package also holds the connection parameter model with its HCI range
// checks, the HCI disconnect reasons used by the device, and the fixed GATT
// layout advertised by the bag (service and characteristic UUIDs, device
// name).
//
// The package carries no transport of its own. The TCP link simulator in
// package transport implements the radio side for development and tests.
package ble
