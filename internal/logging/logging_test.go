package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestSetOutputWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(&bytes.Buffer{})

	Info().Str("window", "notes-1").Msg("launched")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log line is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "launched" {
		t.Errorf("msg = %v, want launched", entry["msg"])
	}
	if entry["window"] != "notes-1" {
		t.Errorf("window = %v, want notes-1", entry["window"])
	}
	if _, ok := entry["ts"]; !ok {
		t.Error("expected ts field from timestamp hook")
	}
}

func TestSetDebug(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetDebug(false)

	Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug should be filtered at info level, got %q", buf.String())
	}

	SetDebug(true)
	Debug().Msg("shown")
	if buf.Len() == 0 {
		t.Error("debug should be written after SetDebug(true)")
	}
}

func TestInitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "etherwm.log")
	if err := InitFile(path); err != nil {
		t.Fatalf("InitFile: %v", err)
	}
	defer Close()

	Warn().Msg("to file")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !bytes.Contains(data, []byte("to file")) {
		t.Errorf("log file missing message: %q", data)
	}
}
