// Package config provides configuration types and defaults for playcheck.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	pcerrors "github.com/five82/playcheck/internal/errors"
)

//go:embed sample_config.toml
var sampleConfig string

// Default constants
const (
	// DefaultIntegrityWindowSecs is the length of the decode-validation
	// window.
	DefaultIntegrityWindowSecs = 60

	// DefaultFrameSampleCount bounds the GOP estimation sample per stream.
	DefaultFrameSampleCount = 1000

	// DefaultProbeTimeoutSecs bounds a single probe invocation.
	DefaultProbeTimeoutSecs = 30

	// DefaultIntegrityTimeoutSecs bounds the decode-validation pass.
	DefaultIntegrityTimeoutSecs = 120

	// DefaultWorkers is the number of files analyzed concurrently in batch
	// mode.
	DefaultWorkers = 2

	// MaxFrameSampleCount caps the GOP sample window.
	MaxFrameSampleCount = 10000
)

// Sentinel errors for configuration validation.
var (
	// ErrInvalidWindow indicates a non-positive integrity window.
	ErrInvalidWindow = errors.New("integrity window out of range")

	// ErrInvalidSampleCount indicates a frame sample count outside 1-10000.
	ErrInvalidSampleCount = errors.New("frame sample count out of range")

	// ErrInvalidWorkers indicates a non-positive worker count.
	ErrInvalidWorkers = errors.New("worker count out of range")
)

// Config holds all analysis settings.
type Config struct {
	// IntegrityWindowSecs is how many seconds of the file the decode
	// validation pass covers.
	IntegrityWindowSecs int `toml:"integrity_window_secs"`

	// IntegrityTimeoutSecs bounds the decode-validation invocation.
	IntegrityTimeoutSecs int `toml:"integrity_timeout_secs"`

	// ProbeTimeoutSecs bounds each probe invocation.
	ProbeTimeoutSecs int `toml:"probe_timeout_secs"`

	// FrameSampleCount bounds the GOP estimation sample per video stream.
	FrameSampleCount int `toml:"frame_sample_count"`

	// SkipIntegrity disables the decode-validation pass.
	SkipIntegrity bool `toml:"skip_integrity"`

	// Workers is the number of files analyzed concurrently in batch mode.
	Workers int `toml:"workers"`

	// LogDir is where run logs are written. Empty uses the user cache
	// directory.
	LogDir string `toml:"log_dir"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`

	// NoLog disables run log file creation.
	NoLog bool `toml:"no_log"`
}

// Default returns a Config populated with default values.
func Default() *Config {
	return &Config{
		IntegrityWindowSecs:  DefaultIntegrityWindowSecs,
		IntegrityTimeoutSecs: DefaultIntegrityTimeoutSecs,
		ProbeTimeoutSecs:     DefaultProbeTimeoutSecs,
		FrameSampleCount:     DefaultFrameSampleCount,
		Workers:              DefaultWorkers,
	}
}

// Load reads a TOML config file over the defaults. A missing file at the
// default location is not an error; an explicitly requested file must exist.
func Load(path string, required bool) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !required {
			return cfg, nil
		}
		return nil, pcerrors.NewConfigError(fmt.Sprintf("cannot read config file %s: %v", path, err))
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, pcerrors.NewConfigError(fmt.Sprintf("cannot parse config file %s: %v", path, err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.IntegrityWindowSecs <= 0 {
		return pcerrors.NewConfigError(fmt.Sprintf("%v: %d", ErrInvalidWindow, c.IntegrityWindowSecs))
	}
	if c.FrameSampleCount <= 0 || c.FrameSampleCount > MaxFrameSampleCount {
		return pcerrors.NewConfigError(fmt.Sprintf("%v: %d", ErrInvalidSampleCount, c.FrameSampleCount))
	}
	if c.Workers <= 0 {
		return pcerrors.NewConfigError(fmt.Sprintf("%v: %d", ErrInvalidWorkers, c.Workers))
	}
	if c.ProbeTimeoutSecs <= 0 {
		return pcerrors.NewConfigError(fmt.Sprintf("probe timeout out of range: %d", c.ProbeTimeoutSecs))
	}
	if c.IntegrityTimeoutSecs <= 0 {
		return pcerrors.NewConfigError(fmt.Sprintf("integrity timeout out of range: %d", c.IntegrityTimeoutSecs))
	}
	return nil
}

// ProbeTimeout returns the probe invocation deadline.
func (c *Config) ProbeTimeout() time.Duration {
	return time.Duration(c.ProbeTimeoutSecs) * time.Second
}

// IntegrityTimeout returns the decode-validation deadline.
func (c *Config) IntegrityTimeout() time.Duration {
	return time.Duration(c.IntegrityTimeoutSecs) * time.Second
}

// SampleConfig returns the annotated sample configuration file contents.
func SampleConfig() string {
	return sampleConfig
}

// DefaultConfigPath returns the default configuration file location.
func DefaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", pcerrors.NewConfigError(fmt.Sprintf("cannot determine config directory: %v", err))
	}
	return filepath.Join(base, "playcheck", "config.toml"), nil
}

// CreateSample writes the annotated sample configuration to path.
func CreateSample(path string) error {
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return pcerrors.NewConfigError(fmt.Sprintf("cannot write sample config: %v", err))
	}
	return nil
}
