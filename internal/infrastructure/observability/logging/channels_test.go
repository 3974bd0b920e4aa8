package logging

import (
	"log/slog"
	"testing"
)

func newQuietLogger(t *testing.T) *ChanneledLogger {
	t.Helper()
	cfg := DefaultLoggerConfig()
	cfg.OutputToFile = false
	cfg.OutputToConsole = false
	cl, err := NewChanneledLogger(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return cl
}

func TestSetChannelLevel(t *testing.T) {
	cl := newQuietLogger(t)

	if err := cl.SetChannelLevel(ChannelShare, slog.LevelDebug); err != nil {
		t.Fatalf("known channel: %v", err)
	}
	if err := cl.SetChannelLevel(Channel("no-such-channel"), slog.LevelDebug); err == nil {
		t.Error("unknown channel should be rejected")
	}
}

func TestSanitizeSessionID(t *testing.T) {
	if got := SanitizeSessionID("abcd1234efgh5678"); got != "abcd****5678" {
		t.Errorf("got %q", got)
	}
	if got := SanitizeSessionID("short"); got != "********" {
		t.Errorf("short ids must be fully masked, got %q", got)
	}
}
