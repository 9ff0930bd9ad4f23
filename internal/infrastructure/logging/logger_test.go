package logging

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"ERROR", slog.LevelError},
		{"nonsense", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.input); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestWithContextAddsRequestFields(t *testing.T) {
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-9")
	ctx = context.WithValue(ctx, UserIDKey, "admin-1")

	out := captureStdout(t, func() {
		New(slog.LevelInfo, "json").InfoCtx(ctx, "refund recorded")
	})

	for _, want := range []string{`"request_id":"req-9"`, `"user_id":"admin-1"`, "refund recorded"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q: %s", want, out)
		}
	}
}

func TestWithContextIgnoresMissingFields(t *testing.T) {
	out := captureStdout(t, func() {
		New(slog.LevelInfo, "json").InfoCtx(context.Background(), "plain")
	})

	if strings.Contains(out, "request_id") || strings.Contains(out, "user_id") {
		t.Fatalf("unexpected context fields in output: %s", out)
	}
}

func TestLoggerFormats(t *testing.T) {
	for _, format := range []string{"json", "text", ""} {
		out := captureStdout(t, func() {
			New(slog.LevelInfo, format).Info("formatted output")
		})
		if out == "" {
			t.Fatalf("format %q produced no output", format)
		}
	}
}

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()

	orig := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	fn()
	_ = w.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		t.Fatalf("read captured stdout: %v", err)
	}
	return buf.String()
}
