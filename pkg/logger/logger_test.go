package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_JSONFields(t *testing.T) {
	var buf bytes.Buffer
	log, err := New(Config{Level: "debug", Service: "planner", Output: &buf})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	log.Debug("hello", zap.Int("n", 1))
	_ = log.Sync()

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %q", buf.String())
	}
	if entry["msg"] != "hello" || entry["service"] != "planner" || entry["timestamp"] == nil {
		t.Errorf("entry = %v", entry)
	}
}

func TestNew_BadLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	log, _ := New(Config{Level: "loud", Output: &buf})
	log.Debug("hidden")
	_ = log.Sync()
	if buf.Len() != 0 {
		t.Errorf("debug entry written at info level: %q", buf.String())
	}
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := ContextWithOwnerID(ContextWithRequestID(context.Background(), "req-1"), "owner-1")
	WithRequestID(ctx, base).Info("scoped")
	WithRequestID(context.Background(), base).Info("bare")

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("got %d entries", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["request_id"] != "req-1" || fields["owner_id"] != "owner-1" {
		t.Errorf("scoped fields = %v", fields)
	}
	if len(entries[1].Context) != 0 {
		t.Errorf("bare fields = %v", entries[1].ContextMap())
	}
	if OwnerID(ctx) != "owner-1" {
		t.Errorf("OwnerID = %q", OwnerID(ctx))
	}
}
