// Package eight parses eight command flags and starts the puzzle runtime.
package eight

import (
	"context"
	"flag"
	"fmt"
	"time"

	entrypoint "github.com/nicklatkovich/ktane-eight/internal/platform/cmd"
	"github.com/nicklatkovich/ktane-eight/internal/services/eight/app"
)

// Config holds eight command configuration.
type Config struct {
	DBPath       string        `env:"EIGHT_DB_PATH" envDefault:"data/eight.db"`
	BombPath     string        `env:"EIGHT_BOMB_PATH"`
	PollInterval time.Duration `env:"EIGHT_POLL_INTERVAL" envDefault:"100ms"`
	Seed         int64         `env:"EIGHT_SEED"`
	ModuleNumber int           `env:"EIGHT_MODULE_NUMBER" envDefault:"1"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite path for diagnostics and round history")
	fs.StringVar(&cfg.BombPath, "bomb", cfg.BombPath, "YAML bomb scenario (default bomb when empty)")
	fs.DurationVar(&cfg.PollInterval, "poll", cfg.PollInterval, "Interval between timer and solve-count polls")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Generation seed (random when 0)")
	fs.IntVar(&cfg.ModuleNumber, "module", cfg.ModuleNumber, "Module number shown in diagnostic lines")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	if cfg.PollInterval <= 0 {
		return Config{}, fmt.Errorf("poll interval must be positive, got %v", cfg.PollInterval)
	}
	if cfg.ModuleNumber <= 0 {
		return Config{}, fmt.Errorf("module number must be positive, got %d", cfg.ModuleNumber)
	}
	return cfg, nil
}

// Run starts the console puzzle runtime.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceEight, func(ctx context.Context) error {
		return app.Run(ctx, app.RuntimeConfig{
			DBPath:       cfg.DBPath,
			BombPath:     cfg.BombPath,
			PollInterval: cfg.PollInterval,
			Seed:         cfg.Seed,
			ModuleNumber: cfg.ModuleNumber,
		})
	})
}
