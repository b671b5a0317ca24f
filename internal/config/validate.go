package config

import (
	"errors"
	"fmt"

	"splicer/internal/presets"
	"splicer/internal/validation"
)

var ffmpegLogLevels = map[string]struct{}{
	"": {}, "quiet": {}, "panic": {}, "fatal": {}, "error": {}, "warning": {},
	"info": {}, "verbose": {}, "debug": {}, "trace": {},
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateFFmpeg(); err != nil {
		return err
	}
	if err := c.validateRender(); err != nil {
		return err
	}
	if err := c.validateDefaults(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validateFFmpeg() error {
	if _, ok := ffmpegLogLevels[c.FFmpeg.LogLevel]; !ok {
		return fmt.Errorf("ffmpeg.loglevel: unsupported value %q", c.FFmpeg.LogLevel)
	}
	if c.FFmpeg.Threads < 0 {
		return errors.New("ffmpeg.threads must be >= 0")
	}
	return nil
}

func (c *Config) validateRender() error {
	if c.Render.Concurrency < 1 || c.Render.Concurrency > validation.MaxConcurrency {
		return fmt.Errorf("render.concurrency must be between 1 and %d", validation.MaxConcurrency)
	}
	if c.Render.TimeoutSeconds < 0 {
		return errors.New("render.timeout_seconds must be >= 0")
	}
	if c.Render.Retries < 0 || c.Render.Retries > validation.MaxRetries {
		return fmt.Errorf("render.retries must be between 0 and %d", validation.MaxRetries)
	}
	if c.Render.RetryDelaySeconds < 0 {
		return errors.New("render.retry_delay_seconds must be >= 0")
	}
	return nil
}

func (c *Config) validateDefaults() error {
	if c.Defaults.Quality != "" {
		if _, ok := presets.LookupQuality(c.Defaults.Quality); !ok {
			return fmt.Errorf("defaults.quality: unknown quality preset %q", c.Defaults.Quality)
		}
	}
	if c.Defaults.FrameRate < 0 {
		return errors.New("defaults.frame_rate must be >= 0")
	}
	if c.Defaults.AspectRatio != "" {
		if _, _, ok := presets.ParseAspect(c.Defaults.AspectRatio); !ok {
			return fmt.Errorf("defaults.aspect_ratio: cannot parse %q", c.Defaults.AspectRatio)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
