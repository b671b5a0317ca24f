package config

const (
	defaultConfigPath    = "~/.config/splicer/config.toml"
	defaultOutputDir     = "."
	defaultLogFormat     = "console"
	defaultLogLevel      = "info"
	defaultFFmpegBinary  = "ffmpeg"
	defaultFFprobeBinary = "ffprobe"
	defaultConcurrency   = 2
	defaultRetryDelay    = 2
	defaultQuality       = "medium"
)

// Default returns a Config populated with defaults. Cache and state
// directories follow XDG_CACHE_HOME and XDG_STATE_HOME when set.
func Default() Config {
	return Config{
		Paths: Paths{
			OutputDir: defaultOutputDir,
			CacheDir:  xdgDir("XDG_CACHE_HOME", "~/.cache", "assets"),
			StateDir:  xdgDir("XDG_STATE_HOME", "~/.local/state"),
			LogDir:    xdgDir("XDG_STATE_HOME", "~/.local/state", "logs"),
		},
		FFmpeg: FFmpeg{
			Binary:        defaultFFmpegBinary,
			FFprobeBinary: defaultFFprobeBinary,
			Overwrite:     true,
			HideBanner:    true,
		},
		Render: Render{
			Concurrency:       defaultConcurrency,
			RetryDelaySeconds: defaultRetryDelay,
		},
		Defaults: Defaults{
			Quality: defaultQuality,
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
