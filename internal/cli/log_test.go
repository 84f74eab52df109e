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
		{"info at info level", log.InfoLevel, func(l *log.Logger) { l.Info("test") }, true},
		{"debug at info level", log.InfoLevel, func(l *log.Logger) { l.Debug("test") }, false},
		{"debug at debug level", log.DebugLevel, func(l *log.Logger) { l.Debug("test") }, true},
		{"warn at error level", log.ErrorLevel, func(l *log.Logger) { l.Warn("test") }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			if gotLog := buf.Len() > 0; gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestStageTimerDone(t *testing.T) {
	var buf bytes.Buffer
	timer := startStage(newLogger(&buf, log.DebugLevel), "convert")
	time.Sleep(10 * time.Millisecond)
	timer.done("converted", "edges", 6)

	out := buf.String()
	for _, want := range []string{"graphstat", "stage started", "converted", "stage=convert", "elapsed=", "edges=6"} {
		if !strings.Contains(out, want) {
			t.Errorf("stage output = %q, want it to contain %q", out, want)
		}
	}
}

func TestLoggerFrom(t *testing.T) {
	var buf bytes.Buffer
	custom := newLogger(&buf, log.InfoLevel)

	if loggerFrom(context.Background()) == nil {
		t.Error("loggerFrom should fall back to the default logger")
	}

	ctx := contextWithLogger(context.Background(), custom)
	got := loggerFrom(ctx)
	if got != custom {
		t.Fatal("loggerFrom should return the attached logger")
	}
	got.Info("test")
	if buf.Len() == 0 {
		t.Error("attached logger should write to its buffer")
	}
}

func TestLogProgressThrottles(t *testing.T) {
	var buf bytes.Buffer
	p := logProgress(newLogger(&buf, log.DebugLevel))

	for i := 1; i <= 100; i++ {
		p.Report(searchEvent(i, 1000))
	}
	if n := strings.Count(buf.String(), "progress"); n != 1 {
		t.Errorf("logged %d progress lines, want 1 within the interval", n)
	}
}
