package deps

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func writeStub(t *testing.T, dir, name, script string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}
	return path
}

func TestCheckBinaries(t *testing.T) {
	present := writeStub(t, t.TempDir(), "present", "#!/bin/sh\nexit 0\n")
	reqs := []Requirement{
		{Name: "Present", Command: present},
		{Name: "Missing", Command: "clearly-not-present-binary"},
		{Name: "Optional", Command: "also-not-present", Optional: true},
		{Name: "Blank"},
	}

	results := CheckBinaries(reqs)
	if len(results) != len(reqs) {
		t.Fatalf("expected %d results, got %d", len(reqs), len(results))
	}
	if !results[0].Available || results[0].Path != present || results[0].Detail != "" {
		t.Fatalf("unexpected status for present binary: %#v", results[0])
	}
	if results[1].Available || results[1].Detail == "" {
		t.Fatalf("expected missing binary to be unavailable with detail: %#v", results[1])
	}
	if results[3].Detail != "command not configured" {
		t.Fatalf("unexpected detail for blank command: %q", results[3].Detail)
	}

	missing := Missing(results)
	if len(missing) != 2 || missing[0].Name != "Missing" || missing[1].Name != "Blank" {
		t.Fatalf("unexpected missing list: %#v", missing)
	}
}

func TestCheckFFmpegReadsVersion(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a POSIX shell")
	}
	dir := t.TempDir()
	ffmpeg := writeStub(t, dir, "ffmpeg", "#!/bin/sh\necho 'ffmpeg version 6.1.1 Copyright (c) 2000-2023'\n")
	ffprobe := writeStub(t, dir, "ffprobe", "#!/bin/sh\nexit 1\n")

	statuses := CheckFFmpeg(context.Background(), ffmpeg, ffprobe)
	if len(statuses) != 2 {
		t.Fatalf("expected two statuses, got %d", len(statuses))
	}
	if !statuses[0].Available || statuses[0].Version != "6.1.1" {
		t.Fatalf("unexpected ffmpeg status: %#v", statuses[0])
	}
	if !statuses[1].Optional || statuses[1].Version != "" || statuses[1].Detail == "" {
		t.Fatalf("expected failed version probe to be reported: %#v", statuses[1])
	}
}

func TestParseVersion(t *testing.T) {
	tests := map[string]string{
		"ffprobe version n7.0 Copyright\nmore": "n7.0",
		"custom build\n":                       "custom build",
		"":                                     "",
	}
	for in, want := range tests {
		if got := parseVersion([]byte(in)); got != want {
			t.Errorf("parseVersion(%q) = %q, want %q", in, got, want)
		}
	}
}
