package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"sync"
	"testing"
)

func decode(t *testing.T, line []byte) map[string]any {
	t.Helper()

	var m map[string]any
	if err := json.Unmarshal(line, &m); err != nil {
		t.Fatalf("invalid JSON %q: %v", line, err)
	}

	return m
}

func TestLogger_Make_DefaultConfiguration(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf)

	if logger.Level() != LevelInfo {
		t.Errorf("expected default level info, got %v", logger.Level())
	}

	if logger.Format() != FormatJSON {
		t.Errorf("expected default format json, got %v", logger.Format())
	}

	if logger.config.caller {
		t.Error("expected caller disabled by default")
	}
}

func TestLogger_Make_WithLevel_FiltersMessages(t *testing.T) {
	tests := []struct {
		name  string
		level Level
		log   func(Logger)
		want  bool
	}{
		{"trace at trace", LevelTrace, func(l Logger) { l.Trace("msg") }, true},
		{"trace at debug", LevelDebug, func(l Logger) { l.Trace("msg") }, false},
		{"debug at debug", LevelDebug, func(l Logger) { l.Debug("msg") }, true},
		{"info at error", LevelError, func(l Logger) { l.Info("msg") }, false},
		{"warn at warn", LevelWarn, func(l Logger) { l.Warn("msg") }, true},
		{"error at error", LevelError, func(l Logger) { l.Error("msg") }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer

			tt.log(Make(&buf, WithLevel(tt.level)))

			if got := buf.Len() > 0; got != tt.want {
				t.Errorf("logged = %v, want %v (output %q)", got, tt.want, buf.String())
			}
		})
	}
}

func TestLogger_TraceLevelName(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithLevel(LevelTrace)).Trace("deep")

	if got := decode(t, buf.Bytes())[slog.LevelKey]; got != "TRACE" {
		t.Errorf("level = %v, want TRACE", got)
	}
}

func TestLogger_WithAttrs_AppearInOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf).With(slog.String("file", "tnsnames.ora"))
	logger.Info("parsed", slog.Int("entries", 3))

	m := decode(t, buf.Bytes())

	if m["file"] != "tnsnames.ora" {
		t.Errorf("file = %v", m["file"])
	}

	if m["entries"] != float64(3) {
		t.Errorf("entries = %v", m["entries"])
	}
}

func TestLogger_Wrap_KeepsOutput(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithLevel(LevelError)).Wrap(WithLevel(LevelDebug))
	logger.Debug("now visible")

	if !strings.Contains(buf.String(), "now visible") {
		t.Errorf("wrapped logger lost output: %q", buf.String())
	}
}

func TestLogger_WithCaller_IncludesSource(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithCaller(true)).Info("here")

	src, ok := decode(t, buf.Bytes())[slog.SourceKey].(map[string]any)
	if !ok {
		t.Fatalf("missing source in %q", buf.String())
	}

	if file, _ := src["file"].(string); !strings.HasSuffix(file, "log_test.go") {
		t.Errorf("source file = %q, want caller's file", file)
	}
}

func TestLogger_ZeroValue_Discards(t *testing.T) {
	var logger Logger

	logger.Error("nowhere")
	logger.TraceContext(context.Background(), "nowhere")
	logger = logger.With(slog.Bool("x", true))

	if logger.Enabled(context.Background(), LevelError) {
		t.Error("zero Logger reports enabled")
	}
}

func TestLogger_FormatText(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatText), WithTimeLayout("none")).
		Info("hello", slog.String("service", "SALES"))

	want := "level=INFO msg=hello service=SALES\n"
	if buf.String() != want {
		t.Errorf("got %q, want %q", buf.String(), want)
	}
}

func TestLogger_Pretty_Colorizes(t *testing.T) {
	var buf bytes.Buffer

	Make(&buf, WithFormat(FormatText), WithPretty(true), WithTimeLayout("")).
		With(slog.String("scope", "test")).
		Warn("careful", slog.Int("n", 7))

	out := buf.String()

	for _, want := range []string{colorYellow + "WARN", "careful", "scope", "test", "7"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q missing %q", out, want)
		}
	}

	if strings.Contains(out, slog.TimeKey+"=") {
		t.Errorf("timestamp not disabled: %q", out)
	}

	if !strings.HasSuffix(out, "\n") {
		t.Errorf("missing newline: %q", out)
	}
}

func TestLogger_ConcurrentUse(t *testing.T) {
	var buf bytes.Buffer

	logger := Make(&buf, WithFormat(FormatText), WithPretty(true))

	var wg sync.WaitGroup

	for range 16 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			logger.Info("line")
		}()
	}

	wg.Wait()

	if n := strings.Count(buf.String(), "\n"); n != 16 {
		t.Errorf("got %d lines, want 16", n)
	}
}
