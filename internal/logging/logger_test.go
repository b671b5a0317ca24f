package logging_test

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"splicer/internal/config"
	"splicer/internal/logging"
)

func readLog(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	return string(content)
}

func TestNewFromConfigWritesLogFile(t *testing.T) {
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(t.TempDir(), "logs")

	logger, err := logging.NewFromConfig(&cfg)
	if err != nil {
		t.Fatalf("NewFromConfig returned error: %v", err)
	}
	logger.Info("hello from config")

	out := readLog(t, filepath.Join(cfg.Paths.LogDir, "splicer.log"))
	if !strings.Contains(out, "hello from config") {
		t.Fatalf("expected message in log file, got %q", out)
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("expected no colour codes in log file, got %q", out)
	}
}

func TestConsoleFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "console.log")
	logger, err := logging.New(logging.Options{Format: "console", Level: "info", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	jobLogger := logging.WithJob(logging.NewComponentLogger(logger, "render"),
		"batch-1", "1a2b3c4d-0000-4000-8000-000000000000", "out.mp4")
	jobLogger.Info("job finished", logging.Error(errors.New("exit status 1")))
	logger.Debug("hidden")

	out := readLog(t, logPath)
	if !strings.Contains(out, "INFO [render] job 1a2b3c4d – job finished") {
		t.Fatalf("unexpected header: %q", out)
	}
	for _, want := range []string{"    - batch_id: batch-1\n", "    - output: out.mp4\n", "    - error: exit status 1\n"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in %q", want, out)
		}
	}
	if strings.Contains(out, "hidden") || strings.Contains(out, ".go:") {
		t.Fatalf("debug output or caller leaked into info log: %q", out)
	}
}

func TestConsoleColor(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "color.log")
	logger, err := logging.New(logging.Options{OutputPaths: []string{logPath}, Color: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("careful")
	if out := readLog(t, logPath); !strings.Contains(out, "\x1b[33mWARN\x1b[0m") {
		t.Fatalf("expected coloured level, got %q", out)
	}
}

func TestJSONFormat(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "json.log")
	logger, err := logging.New(logging.Options{Format: "json", Level: "debug", OutputPaths: []string{logPath}})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logging.NewComponentLogger(logger, "compiler").Debug("compiled", "filters", 3)

	var record map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(readLog(t, logPath))), &record); err != nil {
		t.Fatalf("decode log line: %v", err)
	}
	if record["level"] != "debug" || record["msg"] != "compiled" || record["component"] != "compiler" {
		t.Fatalf("unexpected record %v", record)
	}
	if _, ok := record["ts"]; !ok {
		t.Fatalf("expected ts key, got %v", record)
	}
	if src, _ := record["source"].(string); !strings.Contains(src, "logger_test.go:") {
		t.Fatalf("expected short source at debug level, got %v", record["source"])
	}
}

func TestUnsupportedFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "xml"}); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestNopLogger(t *testing.T) {
	logging.NewComponentLogger(nil, "x").Error("dropped")
	logging.WithJob(nil, "b", "j", "o").Info("dropped")
}

func TestProgressSampler(t *testing.T) {
	s := logging.NewProgressSampler(25)
	var logged []int
	for done := 0; done <= 8; done++ {
		if s.ShouldLog(done, 8) {
			logged = append(logged, done)
		}
	}
	want := []int{0, 2, 4, 6, 8}
	if len(logged) != len(want) {
		t.Fatalf("logged %v, want %v", logged, want)
	}
	for i := range want {
		if logged[i] != want[i] {
			t.Fatalf("logged %v, want %v", logged, want)
		}
	}
	s.Reset()
	if !s.ShouldLog(0, 8) {
		t.Fatal("expected log after reset")
	}
}
