package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestNewWithWriter_ProdIsJSONWithoutDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	log := NewWithWriter("prod", buf)

	log.Debug("hidden")
	log.Info("advice sent", "code", "M1")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected a single line, got %d: %q", len(lines), buf.String())
	}
	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("not JSON: %v", err)
	}
	if rec["msg"] != "advice sent" || rec["code"] != "M1" || rec["service"] != "attendance-bot" {
		t.Errorf("unexpected record: %v", rec)
	}
}

func TestNewWithWriter_DevLogsDebug(t *testing.T) {
	buf := &bytes.Buffer{}
	NewWithWriter("dev", buf).Debug("visible")

	if !strings.Contains(buf.String(), "msg=visible") {
		t.Errorf("debug record missing: %q", buf.String())
	}
}
