package commands

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/weightaware/bag-go/pkg/log"
)

func openReader(t *testing.T, path string) *log.Reader {
	t.Helper()
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	t.Cleanup(func() { reader.Close() })
	return reader
}

func TestExportJSONL(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionEvents(t, base))

	var buf bytes.Buffer
	if err := export(openReader(t, path), "jsonl", &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	lines := 0
	scanner := bufio.NewScanner(&buf)
	for scanner.Scan() {
		var m map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &m); err != nil {
			t.Fatalf("line %d is not JSON: %v", lines, err)
		}
		lines++
	}
	if lines != 6 {
		t.Errorf("got %d lines, want 6", lines)
	}
}

func TestExportCSV(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionEvents(t, base))

	var buf bytes.Buffer
	if err := export(openReader(t, path), "csv", &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}
	if len(records) != 7 {
		t.Fatalf("got %d records, want 7 (header + 6)", len(records))
	}
	if records[0][2] != "handle" {
		t.Errorf("header = %v", records[0])
	}
	decision := records[2]
	if decision[7] != "decision" || decision[8] != "PAIRED" {
		t.Errorf("decision row = %v", decision)
	}
	if records[6][7] != "error" || records[6][8] != "flash read error" {
		t.Errorf("error row = %v", records[6])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, nil)
	if err := RunExport(path, "xml", filepath.Join(t.TempDir(), "out")); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestRunExportToFile(t *testing.T) {
	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	path := createTestLogFile(t, sessionEvents(t, base))
	out := filepath.Join(t.TempDir(), "out.csv")

	if err := RunExport(path, "csv", out); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("timestamp,connection_id,handle")) {
		t.Errorf("unexpected CSV header: %q", data[:40])
	}
}
