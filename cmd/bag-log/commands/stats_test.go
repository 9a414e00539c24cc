package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/weightaware/bag-go/pkg/log"
)

func TestCollectStats(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionEvents(t, base))

	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	stats, err := CollectStats(reader)
	if err != nil {
		t.Fatalf("CollectStats failed: %v", err)
	}

	if stats.TotalEvents != 6 {
		t.Errorf("TotalEvents = %d, want 6", stats.TotalEvents)
	}
	if stats.EventsByLayer[log.LayerLink] != 3 || stats.EventsByLayer[log.LayerPairing] != 3 {
		t.Errorf("EventsByLayer = %v", stats.EventsByLayer)
	}
	if stats.EventsByDirection[log.DirectionIn] != 1 || stats.EventsByDirection[log.DirectionOut] != 1 {
		t.Errorf("EventsByDirection = %v", stats.EventsByDirection)
	}
	if stats.Decisions["PAIRED"] != 1 || stats.Decisions["REJECTED"] != 1 {
		t.Errorf("Decisions = %v", stats.Decisions)
	}
	if stats.Errors != 1 {
		t.Errorf("Errors = %d, want 1", stats.Errors)
	}
	if len(stats.Connections) != 2 {
		t.Fatalf("Connections = %d, want 2", len(stats.Connections))
	}
	impostor := stats.Connections["22222222-bbbb"]
	if impostor.Handle != 2 || impostor.Decision != "REJECTED" || impostor.Events != 3 {
		t.Errorf("impostor stats = %+v", impostor)
	}
	if got := stats.TimeRange.End.Sub(stats.TimeRange.Start); got != 4*time.Second {
		t.Errorf("time range = %v, want 4s", got)
	}
}

func TestRunStatsOutput(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionEvents(t, base))

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 6",
		"LINK:",
		"PAIRING:",
		"DECISION:",
		"PAIRED:",
		"REJECTED:",
		"Connections: 2",
		"[11111111] h=1",
		"Peer: 11:22:33:44:55:66",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("output missing %q\n%s", want, output)
		}
	}
}

func TestRunStatsEmpty(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
