package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/weightaware/bag-go/pkg/ble"
	"github.com/weightaware/bag-go/pkg/identity"
	"github.com/weightaware/bag-go/pkg/log"
	"github.com/weightaware/bag-go/pkg/wire"
)

var ownerID = identity.MustParse("11:22:33:44:55:66", identity.KindPublicID)

// createTestLogFile writes events to a temporary log file and returns its path.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test"+log.FileExt)
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("failed to close logger: %v", err)
	}
	return path
}

// sessionEvents is a short session: an owner pairs, an impostor is thrown off.
func sessionEvents(t *testing.T, base time.Time) []log.Event {
	t.Helper()
	hello, err := wire.EncodeFrame(wire.Hello(ownerID, "1.0"))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}
	terminate, err := wire.EncodeFrame(wire.Terminate(ble.ReasonRemoteUserTerminated))
	if err != nil {
		t.Fatalf("EncodeFrame failed: %v", err)
	}

	return []log.Event{
		{Timestamp: base, ConnectionID: "11111111-aaaa", Handle: 1, Peer: ownerID.String(),
			Direction: log.DirectionIn, Layer: log.LayerLink, Category: log.CategoryFrame,
			Frame: &log.FrameEvent{Size: len(hello) + 4, Data: hello}},
		{Timestamp: base.Add(time.Millisecond), ConnectionID: "11111111-aaaa", Handle: 1, Peer: ownerID.String(),
			Layer: log.LayerPairing, Category: log.CategoryDecision,
			Decision: &log.DecisionEvent{Outcome: "PAIRED", Owner: ownerID.String(), Allowed: true}},
		{Timestamp: base.Add(2 * time.Second), ConnectionID: "22222222-bbbb", Handle: 2, Peer: "AA:BB:CC:DD:EE:FF",
			Layer: log.LayerPairing, Category: log.CategoryDecision,
			Decision: &log.DecisionEvent{Outcome: "REJECTED", Owner: ownerID.String()}},
		{Timestamp: base.Add(2*time.Second + time.Millisecond), ConnectionID: "22222222-bbbb", Handle: 2, Peer: "AA:BB:CC:DD:EE:FF",
			Direction: log.DirectionOut, Layer: log.LayerLink, Category: log.CategoryFrame,
			Frame: &log.FrameEvent{Size: len(terminate) + 4, Data: terminate}},
		{Timestamp: base.Add(3 * time.Second), ConnectionID: "22222222-bbbb", Handle: 2,
			Layer: log.LayerLink, Category: log.CategoryState,
			StateChange: &log.StateChangeEvent{Entity: log.StateEntityConnection, OldState: "CONNECTED", NewState: "DISCONNECTED", Reason: "REMOTE_USER_TERMINATED"}},
		{Timestamp: base.Add(4 * time.Second), Layer: log.LayerPairing, Category: log.CategoryError,
			Error: &log.ErrorEventData{Layer: log.LayerStorage, Message: "flash read error", Context: "get owner"}},
	}
}
