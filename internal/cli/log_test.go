package cli

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	if logger == nil {
		t.Fatal("newLogger() returned nil")
	}

	// Test that it can log
	logger.Info("test message")

	if buf.Len() == 0 {
		t.Error("logger should have written output")
	}
}

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		logFunc func(*log.Logger)
		wantLog bool
	}{
		{
			name:    "info at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Info("test") },
			wantLog: true,
		},
		{
			name:    "debug at info level",
			level:   log.InfoLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: false,
		},
		{
			name:    "debug at debug level",
			level:   log.DebugLevel,
			logFunc: func(l *log.Logger) { l.Debug("test") },
			wantLog: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			tt.logFunc(logger)

			gotLog := buf.Len() > 0
			if gotLog != tt.wantLog {
				t.Errorf("got log output = %v, want %v", gotLog, tt.wantLog)
			}
		})
	}
}

func TestGenerateLogsProgress(t *testing.T) {
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	c.out = &out
	root := c.RootCommand()
	dir := t.TempDir()
	saved := filepath.Join(dir, "path.grphc")
	root.SetArgs([]string{"--config", filepath.Join(dir, "config.toml"),
		"generate", "path", "-n", "3", "-o", saved, "--no-cache"})
	root.SetOut(&out)
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	got := logs.String()
	if !strings.Contains(got, "Generated Path (") {
		t.Errorf("log = %q, want a Generated Path line with elapsed time", got)
	}
}

func TestGenerateQuietAtErrorLevel(t *testing.T) {
	var logs bytes.Buffer
	c := New(&logs, log.ErrorLevel)
	c.out = &bytes.Buffer{}
	root := c.RootCommand()
	dir := t.TempDir()
	root.SetArgs([]string{"--config", filepath.Join(dir, "config.toml"),
		"generate", "cycle", "-n", "4", "-o", filepath.Join(dir, "c.grphc"), "--no-cache"})
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	if err := root.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("error-level logger wrote %q", logs.String())
	}
}
