package deps

import (
	"bufio"
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"
)

const versionTimeout = 5 * time.Second

// FFmpegRequirements lists the binaries a render needs. ffprobe is optional:
// only duration checks use it.
func FFmpegRequirements(ffmpegBinary, ffprobeBinary string) []Requirement {
	return []Requirement{
		{Name: "FFmpeg", Command: ffmpegBinary, Description: "Executes generated commands"},
		{Name: "FFprobe", Command: ffprobeBinary, Description: "Inspects rendered outputs", Optional: true},
	}
}

// CheckFFmpeg resolves both binaries and records the version line each one
// reports for -version.
func CheckFFmpeg(ctx context.Context, ffmpegBinary, ffprobeBinary string) []Status {
	statuses := CheckBinaries(FFmpegRequirements(ffmpegBinary, ffprobeBinary))
	for i := range statuses {
		if !statuses[i].Available {
			continue
		}
		version, err := probeVersion(ctx, statuses[i].Path)
		if err != nil {
			statuses[i].Detail = "version check failed: " + err.Error()
			continue
		}
		statuses[i].Version = version
	}
	return statuses
}

// probeVersion returns the version token from the first line of
// "<binary> -version", e.g. "6.1.1" from
// "ffmpeg version 6.1.1 Copyright (c) 2000-2023".
func probeVersion(ctx context.Context, binary string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, versionTimeout)
	defer cancel()
	out, err := exec.CommandContext(ctx, binary, "-version").Output() //nolint:gosec
	if err != nil {
		return "", err
	}
	return parseVersion(out), nil
}

func parseVersion(out []byte) string {
	scanner := bufio.NewScanner(bytes.NewReader(out))
	if !scanner.Scan() {
		return ""
	}
	fields := strings.Fields(scanner.Text())
	for i := 0; i+1 < len(fields); i++ {
		if fields[i] == "version" {
			return fields[i+1]
		}
	}
	return strings.TrimSpace(scanner.Text())
}
