// Package config resolves the settings of a run.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// WORDCLASS_* environment variables. Command-line flags are applied last by
// the caller, and only for flags the user actually set.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/dendrascience/wordclass/chunk"
	"github.com/dendrascience/wordclass/fifo"
	"github.com/dendrascience/wordclass/pipeline"
	"github.com/dendrascience/wordclass/segment"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Config is the full set of run settings.
type Config struct {
	Workers     int    `yaml:"workers" validate:"min=1,max=4096"`
	Queue       int    `yaml:"queue" validate:"min=1"`
	Policy      string `yaml:"policy" validate:"oneof=word strict"`
	TargetSize  int    `yaml:"target_size" validate:"min=1"`
	MaxSize     int    `yaml:"max_size" validate:"gtfield=TargetSize"`
	MetricsFile string `yaml:"metrics_file"`
	NoColor     bool   `yaml:"no_color"`
	Log         Log    `yaml:"log"`
}

// Log holds the logging settings.
type Log struct {
	Level  string `yaml:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" validate:"oneof=text json"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Workers:    pipeline.DefaultWorkers,
		Queue:      fifo.DefaultCapacity,
		Policy:     segment.WordAware.String(),
		TargetSize: chunk.DefaultTargetSize,
		MaxSize:    chunk.DefaultMaxSize,
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path, if any,
// and with the environment. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := decode(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if err := applyEnv(&cfg, os.LookupEnv); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	ints := []struct {
		key string
		dst *int
	}{
		{"WORDCLASS_WORKERS", &cfg.Workers},
		{"WORDCLASS_QUEUE", &cfg.Queue},
		{"WORDCLASS_TARGET_SIZE", &cfg.TargetSize},
		{"WORDCLASS_MAX_SIZE", &cfg.MaxSize},
	}
	for _, e := range ints {
		v, ok := lookup(e.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidConfig, e.key, err)
		}
		*e.dst = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{"WORDCLASS_POLICY", &cfg.Policy},
		{"WORDCLASS_METRICS_FILE", &cfg.MetricsFile},
		{"WORDCLASS_LOG_LEVEL", &cfg.Log.Level},
		{"WORDCLASS_LOG_FORMAT", &cfg.Log.Format},
	}
	for _, e := range strs {
		if v, ok := lookup(e.key); ok && v != "" {
			*e.dst = v
		}
	}

	if _, ok := lookup("NO_COLOR"); ok {
		cfg.NoColor = true
	}
	return nil
}

// Validate checks every field.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// SegmentOptions converts the chunking settings.
func (c Config) SegmentOptions() ([]segment.Option, error) {
	p, err := segment.ParsePolicy(c.Policy)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return []segment.Option{
		segment.WithTargetSize(c.TargetSize),
		segment.WithMaxSize(c.MaxSize),
		segment.WithPolicy(p),
	}, nil
}
