package log

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeEvents(t *testing.T, events ...Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events"+FileExt)
	logger, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	if err := logger.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	var out []Event
	for {
		e, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, e)
	}
}

func sampleEvents(base time.Time) []Event {
	return []Event{
		{Timestamp: base, ConnectionID: "a", Handle: 1, Peer: "P1", Layer: LayerLink, Category: CategoryState},
		{Timestamp: base.Add(time.Second), ConnectionID: "a", Handle: 1, Peer: "P1", Layer: LayerPairing, Category: CategoryDecision,
			Decision: &DecisionEvent{Outcome: "PAIRED", Allowed: true}},
		{Timestamp: base.Add(2 * time.Second), ConnectionID: "b", Handle: 2, Peer: "P2", Layer: LayerPairing, Category: CategoryDecision,
			Decision: &DecisionEvent{Outcome: "REJECTED"}},
		{Timestamp: base.Add(3 * time.Second), ConnectionID: "b", Handle: 2, Peer: "P2", Layer: LayerStorage, Category: CategoryError,
			Error: &ErrorEventData{Layer: LayerStorage, Message: "read failed"}},
	}
}

func TestReaderReadsAll(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 6, time.UTC)
	path := writeEvents(t, sampleEvents(base)...)

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	events := readAll(t, r)
	if len(events) != 4 {
		t.Fatalf("got %d events, want 4", len(events))
	}
	if !events[0].Timestamp.Equal(base) {
		t.Errorf("Timestamp = %v, want %v", events[0].Timestamp, base)
	}
}

func TestReaderFilters(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path := writeEvents(t, sampleEvents(base)...)

	handle := uint16(2)
	pairing := LayerPairing
	decision := CategoryDecision
	out := DirectionOut
	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)

	tests := []struct {
		name   string
		filter Filter
		want   int
	}{
		{"empty", Filter{}, 4},
		{"connection", Filter{ConnectionID: "a"}, 2},
		{"handle", Filter{Handle: &handle}, 2},
		{"peer", Filter{Peer: "P1"}, 2},
		{"layer", Filter{Layer: &pairing}, 2},
		{"category", Filter{Category: &decision}, 2},
		{"direction", Filter{Direction: &out}, 0},
		{"time window", Filter{TimeStart: &start, TimeEnd: &end}, 2},
		{"combined", Filter{Layer: &pairing, Handle: &handle}, 1},
		{"no match", Filter{ConnectionID: "zzz"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewFilteredReader(path, tt.filter)
			if err != nil {
				t.Fatalf("NewFilteredReader failed: %v", err)
			}
			defer r.Close()

			if got := len(readAll(t, r)); got != tt.want {
				t.Errorf("got %d events, want %d", got, tt.want)
			}
		})
	}
}

func TestReaderTruncatedTail(t *testing.T) {
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	path := writeEvents(t, sampleEvents(base)[:2]...)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data[:len(data)-3], 0644); err != nil {
		t.Fatal(err)
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer r.Close()

	if got := len(readAll(t, r)); got != 1 {
		t.Errorf("got %d events, want 1", got)
	}
}

func TestReaderMissingFile(t *testing.T) {
	if _, err := NewReader(filepath.Join(t.TempDir(), "nope"+FileExt)); err == nil {
		t.Error("expected error for missing file")
	}
}
