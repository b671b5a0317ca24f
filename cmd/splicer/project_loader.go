package main

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"splicer/internal/assets"
	"splicer/internal/command"
	"splicer/internal/config"
	"splicer/internal/project"
	"splicer/internal/render"
	"splicer/internal/timeline"
)

const defaultOutputExt = ".mp4"

type loadedProject struct {
	Path     string
	Timeline timeline.Timeline
	Output   string
}

// loadProject reads a project file, fills empty settings from the config
// defaults, and resolves layer sources relative to the project file. The
// output comes from outputFlag, then the document, then the project name.
func loadProject(ctx context.Context, cfg *config.Config, path, outputFlag string) (loadedProject, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return loadedProject{}, fmt.Errorf("resolve project path: %w", err)
	}
	doc, err := project.Load(abs)
	if err != nil {
		return loadedProject{}, err
	}
	applyDefaults(&doc.Settings, cfg.Defaults)

	t, err := doc.Timeline()
	if err != nil {
		return loadedProject{}, fmt.Errorf("build %s: %w", filepath.Base(abs), err)
	}
	resolver := assets.CacheResolver{
		Dir:   cfg.Paths.CacheDir,
		Local: assets.LocalResolver{Base: filepath.Dir(abs)},
	}
	if t, err = t.ResolveSources(ctx, resolver); err != nil {
		return loadedProject{}, err
	}

	output := strings.TrimSpace(outputFlag)
	if output == "" {
		output = strings.TrimSpace(doc.Output)
	}
	if output == "" {
		output = strings.TrimSuffix(filepath.Base(abs), filepath.Ext(abs)) + defaultOutputExt
	}
	return loadedProject{Path: abs, Timeline: t, Output: cfg.OutputPath(output)}, nil
}

func applyDefaults(s *project.Settings, d config.Defaults) {
	if s.Quality == "" && s.Platform == "" {
		s.Quality = d.Quality
	}
	if s.VideoCodec == "" && s.CodecPreset == "" {
		s.VideoCodec = d.VideoCodec
	}
	if s.AudioCodec == "" && s.CodecPreset == "" {
		s.AudioCodec = d.AudioCodec
	}
	if s.FrameRate == 0 {
		s.FrameRate = d.FrameRate
	}
	if s.AspectRatio == "" && s.Resolution == "" && s.Width == 0 && s.Height == 0 {
		s.AspectRatio = d.AspectRatio
	}
}

func commandOptions(cfg *config.Config) command.Options {
	return command.Options{
		Binary:     cfg.FFmpeg.Binary,
		Overwrite:  cfg.FFmpeg.Overwrite,
		HideBanner: cfg.FFmpeg.HideBanner,
		LogLevel:   cfg.FFmpeg.LogLevel,
		Threads:    cfg.FFmpeg.Threads,
	}
}

func (p loadedProject) job(cfg *config.Config) render.Job {
	return render.NewJob(p.Timeline, p.Output, commandOptions(cfg))
}
