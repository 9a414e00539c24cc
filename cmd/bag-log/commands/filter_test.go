package commands

import (
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/weightaware/bag-go/pkg/log"
)

func TestFilterWritesMatchingEvents(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionEvents(t, base))
	out := filepath.Join(t.TempDir(), "filtered"+log.FileExt)

	filter, err := BuildFilter(FilterOptions{ConnID: "22222222-bbbb"})
	if err != nil {
		t.Fatalf("BuildFilter failed: %v", err)
	}
	count, err := RunFilter(path, out, filter)
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("failed to open output: %v", err)
	}
	defer reader.Close()

	n := 0
	for {
		event, err := reader.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			t.Fatalf("failed to read event: %v", err)
		}
		if event.ConnectionID != "22222222-bbbb" {
			t.Errorf("unexpected connection %s", event.ConnectionID)
		}
		n++
	}
	if n != 3 {
		t.Errorf("read back %d events, want 3", n)
	}
}

func TestFilterByTimeRange(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionEvents(t, base))
	out := filepath.Join(t.TempDir(), "window"+log.FileExt)

	start := base.Add(time.Second)
	end := base.Add(3 * time.Second)
	count, err := RunFilter(path, out, log.Filter{TimeStart: &start, TimeEnd: &end})
	if err != nil {
		t.Fatalf("RunFilter failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
}

func TestFilterMissingInput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "out"+log.FileExt)
	if _, err := RunFilter("/nonexistent/file.blog", out, log.Filter{}); err == nil {
		t.Error("expected error for missing input")
	}
}
