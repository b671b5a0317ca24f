package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"splicer/internal/config"
	"splicer/internal/testsupport"
)

type cliTestEnv struct {
	cfg        *config.Config
	configPath string
	baseDir    string
}

func setupCLITestEnv(t *testing.T, opts ...testsupport.ConfigOption) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	t.Setenv("SPLICER_FFMPEG", "")
	t.Setenv("SPLICER_FFPROBE", "")

	cfg := testsupport.NewConfig(t, append([]testsupport.ConfigOption{testsupport.WithStubbedBinaries()}, opts...)...)
	configPath := filepath.Join(base, "splicer.toml")
	writeTestConfig(t, configPath, cfg)

	return &cliTestEnv{cfg: cfg, configPath: configPath, baseDir: base}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	data, err := toml.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

// writeProject writes a JSON project with one video layer and a caption.
func writeProject(t *testing.T, dir, name, source string) string {
	t.Helper()
	content := `{
  "settings": {"resolution": "720p", "duration": 4},
  "layers": [
    {"type": "video", "source": "` + source + `", "duration": 4},
    {"type": "text", "text": "` + strings.TrimSuffix(name, filepath.Ext(name)) + `", "position": "bottom"}
  ]
}`
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write project: %v", err)
	}
	return path
}

// writeFailingFFmpeg installs an ffmpeg stand-in that prints msg to stderr
// and exits 1.
func writeFailingFFmpeg(t *testing.T, env *cliTestEnv, msg string) {
	t.Helper()
	bin := filepath.Join(env.baseDir, "failing-ffmpeg")
	script := "#!/bin/sh\necho 'frame=0' >&2\necho '" + msg + "' >&2\nexit 1\n"
	if err := os.WriteFile(bin, []byte(script), 0o755); err != nil {
		t.Fatalf("write failing ffmpeg: %v", err)
	}
	env.cfg.FFmpeg.Binary = bin
	writeTestConfig(t, env.configPath, env.cfg)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
