package tasklist

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/markhazleton/TaskListProcessor-sub003/core"
)

// FileConfig is the on-disk scheduler configuration.
type FileConfig struct {
	// MaxConcurrency caps simultaneously running tasks. Required.
	MaxConcurrency int `yaml:"max_concurrency"`

	// Strategy names the dispatch ordering: fifo, lifo, priority,
	// shortest_job or random. Defaults to fifo.
	Strategy string `yaml:"strategy"`

	// TickInterval is the dispatch tick period, e.g. "100ms".
	TickInterval string `yaml:"tick_interval"`

	// RandomSeed seeds the random strategy; 0 means time-seeded.
	RandomSeed int64 `yaml:"random_seed"`
}

// LoadConfig reads a YAML scheduler configuration from path.
func LoadConfig(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *FileConfig) validate() error {
	if c.MaxConcurrency < 1 {
		return fmt.Errorf("config: max_concurrency must be at least 1, got %d", c.MaxConcurrency)
	}
	if _, ok := core.ParseStrategy(c.Strategy); !ok {
		return fmt.Errorf("config: unknown strategy %q", c.Strategy)
	}
	if c.TickInterval != "" {
		if _, err := time.ParseDuration(c.TickInterval); err != nil {
			return fmt.Errorf("config: bad tick_interval: %w", err)
		}
	}
	return nil
}

// SchedulerConfig converts the file configuration into a runtime config.
// Validation is LoadConfig's job: a FileConfig built directly with an
// unknown strategy or a malformed tick interval maps to the FIFO and
// tick defaults rather than failing here.
func (c *FileConfig) SchedulerConfig() *core.SchedulerConfig {
	cfg := core.DefaultSchedulerConfig(c.MaxConcurrency)
	cfg.Strategy, _ = core.ParseStrategy(c.Strategy)
	if c.TickInterval != "" {
		if tick, err := time.ParseDuration(c.TickInterval); err == nil {
			cfg.TickInterval = tick
		}
	}
	if c.RandomSeed != 0 {
		cfg.Rand = rand.New(rand.NewSource(c.RandomSeed))
	}
	return cfg
}
