// Package cli implements the motion subcommands: download builds the dataset
// CSV, render plays a scene into PNG frames, watch keeps the dataset fresh on
// a cron schedule.
package cli

import (
	"flag"
	"fmt"

	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"MarketMotion/internal/collector"
	"MarketMotion/internal/config"
	"MarketMotion/internal/scene"
	"MarketMotion/internal/store"
)

// Commands lists every motion subcommand for registration.
var Commands = []subcommands.Command{
	&downloadCmd{},
	&renderCmd{},
	&watchCmd{},
}

// common holds the flags and wiring every subcommand shares.
type common struct {
	configPath string
	debug      bool

	log *zap.Logger
}

func (c *common) setFlags(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", "configs/config.yaml", "path to the YAML config file")
	f.BoolVar(&c.debug, "debug", false, "verbose development logging")
}

// init loads .env, the config file and builds the logger. The returned config
// is validated.
func (c *common) init() (*config.Config, error) {
	// Missing .env is fine, the config file and environment cover it.
	_ = godotenv.Load()

	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	if c.debug {
		c.log, err = zap.NewDevelopment()
	} else {
		c.log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return cfg, nil
}

// fetcher selects the data backend configured in cfg.
func (c *common) fetcher(cfg *config.Config) collector.Fetcher {
	switch cfg.DataSource.Provider {
	case "alpaca":
		return collector.NewAlpacaFetcher(cfg.DataSource.AlpacaKey, cfg.DataSource.AlpacaSecret)
	case "mock":
		return &collector.MockFetcher{Price: 100}
	default:
		return collector.NewYahooFetcher(cfg.Proxy)
	}
}

// openStore opens the SQLite bar cache, falling back to a no-op store when it
// cannot be opened.
func (c *common) openStore(cfg *config.Config) store.Store {
	if cfg.Database.SQLitePath == "" {
		return store.NewNoopStore()
	}
	st, err := store.NewSQLiteStore(cfg.Database.SQLitePath, c.log)
	if err != nil {
		c.log.Warn("open sqlite store failed, using noop", zap.Error(err))
		return store.NewNoopStore()
	}
	return st
}

// collector wires the configured fetcher, store and date range together.
func (c *common) collector(cfg *config.Config, st store.Store) (*collector.Collector, error) {
	start, err := cfg.StartDate()
	if err != nil {
		return nil, err
	}
	end, err := cfg.EndDate()
	if err != nil {
		return nil, err
	}
	return collector.New(c.fetcher(cfg), st, cfg.DataSource.Tickers, start, end, cfg.DataSource.Rounding, c.log)
}

// sceneOptions maps the scene config onto scene.Options, keeping the defaults
// for anything left unset.
func sceneOptions(cfg *config.Config) scene.Options {
	opts := scene.DefaultOptions()
	sc := cfg.Scene
	if sc.Title != "" {
		opts.Title = sc.Title
	}
	if sc.XLabel != "" {
		opts.XLabel = sc.XLabel
	}
	if sc.YLabel != "" {
		opts.YLabel = sc.YLabel
	}
	if sc.BackgroundRunTime != 0 {
		opts.BackgroundRunTime = sc.BackgroundRunTime
	}
	if sc.AnimationRunTime != 0 {
		opts.AnimationRunTime = sc.AnimationRunTime
	}
	if sc.WaitRunTime != 0 {
		opts.WaitRunTime = sc.WaitRunTime
	}
	if sc.CameraScale != 0 {
		opts.CameraScale = sc.CameraScale
	}
	if len(sc.Colors) > 0 {
		opts.Colors = sc.Colors
	}
	if sc.NumTicks != 0 {
		opts.NumTicks = sc.NumTicks
	}
	if sc.NumSamples != 0 {
		opts.NumSamples = sc.NumSamples
	}
	if len(sc.BarNames) > 0 {
		opts.BarNames = sc.BarNames
	}
	if sc.BarWidth != 0 {
		opts.BarWidth = sc.BarWidth
	}
	if sc.BarFillOpacity != 0 {
		opts.BarFillOpacity = sc.BarFillOpacity
	}
	if sc.BarStrokeWidth != 0 {
		opts.BarStrokeWidth = sc.BarStrokeWidth
	}
	opts.RoundYLabels = sc.RoundYLabels
	return opts
}
