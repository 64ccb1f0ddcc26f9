package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"info at warn level", log.WarnLevel, func(l *log.Logger) { l.Info("test") }, false},
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

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, log.InfoLevel)).done("Laid out 2 scene(s)")

	out := buf.String()
	if !strings.Contains(out, "Laid out 2 scene(s) (") {
		t.Errorf("progress output = %q, want message with elapsed time", out)
	}
}

func TestProgressSteps(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		want  bool
	}{
		{"hidden at info", log.InfoLevel, false},
		{"shown at debug", log.DebugLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			newProgress(newLogger(&buf, tt.level)).step("read scenes", "count", 2)
			out := buf.String()
			if got := strings.Contains(out, "read scenes") && strings.Contains(out, "count=2") && strings.Contains(out, "took="); got != tt.want {
				t.Errorf("step output = %q, want logged %v", out, tt.want)
			}
		})
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext() without a logger returned nil")
	}

	custom := newLogger(&bytes.Buffer{}, log.InfoLevel)
	ctx := withLogger(context.Background(), custom)
	if got := loggerFromContext(ctx); got != custom {
		t.Error("loggerFromContext() did not return the attached logger")
	}
}
