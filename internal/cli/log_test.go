package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("placed") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("placed") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("placed") }, true},
		{"warn at info level", log.InfoLevel, func(l *log.Logger) { l.Warn("sunk") }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.logFunc(newLogger(&buf, tt.level))
			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	prog := newProgress(newLogger(&buf, log.InfoLevel))
	time.Sleep(5 * time.Millisecond)
	prog.done("Computed random layout")

	out := buf.String()
	if !strings.Contains(out, "Computed random layout (") || !strings.Contains(out, "ms)") {
		t.Errorf("progress output = %q", out)
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) != log.Default() {
		t.Error("empty context should yield log.Default()")
	}

	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	got := loggerFromContext(ctx)
	if got != custom {
		t.Fatal("loggerFromContext returned a different logger")
	}
	got.Info("request")
	if buf.Len() == 0 {
		t.Error("attached logger did not write")
	}
}
