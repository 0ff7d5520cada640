package logging_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/msomdec/imageshare/internal/logging"
)

func TestNewWritesBothSinks(t *testing.T) {
	var console, structured bytes.Buffer
	logger := logging.New(&console, &structured, false)

	logger.Info("post created", "id", 7)
	logger.Debug("hidden")

	if !strings.Contains(console.String(), "post created") {
		t.Fatalf("expected console output, got %q", console.String())
	}

	lines := strings.Split(strings.TrimSpace(structured.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 JSON line, got %d: %q", len(lines), structured.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("decode JSON record: %v", err)
	}
	if rec["msg"] != "post created" || rec["id"] != float64(7) {
		t.Fatalf("unexpected record %v", rec)
	}
	if strings.Contains(console.String(), "hidden") {
		t.Fatal("debug record should be dropped when not verbose")
	}
}

func TestNewVerbose(t *testing.T) {
	var console, structured bytes.Buffer
	logger := logging.New(&console, &structured, true)

	logger.Debug("details")

	if !strings.Contains(console.String(), "details") || !strings.Contains(structured.String(), "details") {
		t.Fatal("expected debug record in both sinks when verbose")
	}
}
