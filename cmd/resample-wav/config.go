package main

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tphakala/waveform-resampler/internal/logger"
)

// cliConfig is the merged configuration from defaults, an optional
// config file, RESAMPLE_* environment variables and flags.
type cliConfig struct {
	Rate     float64       `mapstructure:"rate"`
	Mode     string        `mapstructure:"mode"`
	Quality  string        `mapstructure:"quality"`
	BitDepth int           `mapstructure:"bit_depth"`
	Parallel bool          `mapstructure:"parallel"`
	Workers  int           `mapstructure:"workers"`
	Log      logger.Config `mapstructure:"log"`
}

// newFlagSet defines the command-line flags.
func newFlagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.String("config", "", "Config file (yaml, json or toml)")
	fs.Float64("rate", defaultRateKHz, "Target sample rate in Hz, or in kHz when below 1000 (e.g. 16, 44.1, 48000)")
	fs.String("mode", "sinc", "Resampling mode: sinc, lanczos, linear, cubic, fft")
	fs.String("quality", "high", "Sinc quality preset: low, medium, high, veryhigh")
	fs.Int("bit-depth", 0, "Output bit depth: 16, 24 or 32 (0 keeps the input depth)")
	fs.Bool("parallel", true, "Enable parallel channel processing")
	fs.Int("workers", 0, "Maximum concurrent channels (0 uses all CPUs)")
	fs.String("log-level", "info", "Log level: debug, info, warn, error")
	fs.String("log-format", "console", "Log format: console or json")
	fs.String("log-file", "", "Also write logs to this rotating file")
	return fs
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"rate":       "rate",
	"mode":       "mode",
	"quality":    "quality",
	"bit-depth":  "bit_depth",
	"parallel":   "parallel",
	"workers":    "workers",
	"log-level":  "log.level",
	"log-format": "log.format",
	"log-file":   "log.file.path",
}

// loadConfig merges configuration sources for a parsed flag set. Flags
// set on the command line win over the environment, which wins over the
// config file, which wins over defaults.
func loadConfig(fs *pflag.FlagSet) (cliConfig, error) {
	v := viper.New()

	v.SetDefault("log.stderr", true)
	v.SetDefault("log.file.max_size_mb", defaultLogMaxSizeMB)
	v.SetDefault("log.file.max_backups", defaultLogMaxBackups)
	v.SetDefault("log.file.max_age_days", defaultLogMaxAgeDays)
	v.SetDefault("log.file.compress", true)

	for name, key := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return cliConfig{}, fmt.Errorf("bind flag %s: %w", name, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path, _ := fs.GetString("config"); strings.TrimSpace(path) != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return cliConfig{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg cliConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cliConfig{}, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// targetRateHz converts the --rate value to Hz. Values below 1000 are
// taken as kHz.
func targetRateHz(rate float64) (uint32, error) {
	if math.IsNaN(rate) || rate <= 0 {
		return 0, fmt.Errorf("invalid target rate %g", rate)
	}
	if rate < kHzThreshold {
		rate *= kHzToHz
	}
	if rate+roundHalf > maxRateHz {
		return 0, fmt.Errorf("target rate %g Hz too large", rate)
	}
	hz := uint32(rate + roundHalf)
	if hz == 0 {
		return 0, fmt.Errorf("invalid target rate %g", rate)
	}
	return hz, nil
}
