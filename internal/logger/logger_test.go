package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"info":    slog.LevelInfo,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q): got %v want %v", in, got, want)
		}
	}
}

func TestPrettyHandlerOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo)
	log.Info("decoded section", "kind", "Height", "samples", 4)

	out := buf.String()
	if !strings.Contains(out, "decoded section") {
		t.Fatalf("missing message: %q", out)
	}
	if !strings.Contains(out, "kind=Height") || !strings.Contains(out, "samples=4") {
		t.Fatalf("missing attrs: %q", out)
	}
}

func TestPrettyHandlerLevelFilter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelWarn)
	log.Info("quiet")
	if buf.Len() != 0 {
		t.Fatalf("info should be filtered: %q", buf.String())
	}
	log.Error("loud")
	if !strings.Contains(buf.String(), "loud") {
		t.Fatalf("error should pass: %q", buf.String())
	}
}

func TestWith(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Pretty(&buf, slog.LevelInfo).With("file", "a.vk4")
	log.Info("opened")
	if !strings.Contains(buf.String(), "file=a.vk4") {
		t.Fatalf("bound attr missing: %q", buf.String())
	}
}

func TestContextRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := Text(&buf, slog.LevelInfo)
	ctx := WithContext(context.Background(), log)
	if got := FromContext(ctx); got != log {
		t.Fatalf("context round trip returned a different logger")
	}
	if got := FromContext(context.Background()); got == nil {
		t.Fatalf("missing logger should fall back to default")
	}
}
