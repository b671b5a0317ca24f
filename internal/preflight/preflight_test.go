package preflight

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"splicer/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("test", dir)
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckOutputPath(t *testing.T) {
	dir := t.TempDir()
	if r := CheckOutputPath(filepath.Join(dir, "new.mp4")); !r.Passed {
		t.Fatalf("expected new output to pass: %s", r.Detail)
	}
	existing := filepath.Join(dir, "old.mp4")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if r := CheckOutputPath(existing); !r.Passed || r.Detail == existing {
		t.Fatalf("expected overwrite note, got %+v", r)
	}
	if r := CheckOutputPath(filepath.Join(dir, "missing", "out.mp4")); r.Passed {
		t.Fatal("expected failure for missing directory")
	}
}

func TestRunAll(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("shell stubs need a POSIX shell")
	}
	base := t.TempDir()
	bin := filepath.Join(base, "ffmpeg")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\necho 'ffmpeg version 7.0'\n"), 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := config.Default()
	cfg.Paths.OutputDir = base
	cfg.Paths.StateDir = filepath.Join(base, "state")
	cfg.Paths.CacheDir = filepath.Join(base, "cache")
	cfg.FFmpeg.Binary = bin
	cfg.FFmpeg.FFprobeBinary = "clearly-not-present-ffprobe"

	results := RunAll(context.Background(), &cfg)
	byName := make(map[string]Result, len(results))
	for _, r := range results {
		byName[r.Name] = r
	}
	if _, ok := byName["Asset cache"]; ok {
		t.Fatal("expected missing cache dir to be skipped")
	}
	if !byName["Output directory"].Passed {
		t.Fatalf("output dir failed: %+v", byName["Output directory"])
	}
	if byName["State directory"].Passed {
		t.Fatal("expected missing state dir to fail")
	}
	if r := byName["FFmpeg"]; !r.Passed || r.Detail != bin+" (7.0)" {
		t.Fatalf("unexpected ffmpeg result %+v", r)
	}
	if r := byName["FFprobe"]; !r.Passed {
		t.Fatalf("optional ffprobe should not fail the check: %+v", r)
	}
	failed := Failed(results)
	if len(failed) != 1 || failed[0].Name != "State directory" {
		t.Fatalf("unexpected failures %+v", failed)
	}
}
