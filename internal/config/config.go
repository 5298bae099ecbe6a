package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"MarketMotion/internal/model"
)

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		Provider     string   `yaml:"provider"` // yahoo, alpaca or mock
		Tickers      []string `yaml:"tickers"`
		Start        string   `yaml:"start"`
		End          string   `yaml:"end"`
		Field        string   `yaml:"field"`
		Rounding     bool     `yaml:"rounding"`
		InitCash     float64  `yaml:"init_cash"`
		AlpacaKey    string   `yaml:"alpaca_key"`
		AlpacaSecret string   `yaml:"alpaca_secret"`
	} `yaml:"data_source"`
	Output struct {
		Dir     string  `yaml:"dir"`
		Width   int     `yaml:"width"`
		Height  int     `yaml:"height"`
		FPS     float64 `yaml:"fps"`
		CSVPath string  `yaml:"csv_path"`
	} `yaml:"output"`
	Scene struct {
		Kind              string   `yaml:"kind"`
		Title             string   `yaml:"title"`
		XLabel            string   `yaml:"x_label"`
		YLabel            string   `yaml:"y_label"`
		BackgroundRunTime float64  `yaml:"background_run_time"`
		AnimationRunTime  float64  `yaml:"animation_run_time"`
		WaitRunTime       float64  `yaml:"wait_run_time"`
		CameraScale       float64  `yaml:"camera_scale"`
		Colors            []string `yaml:"colors"`
		NumTicks          int      `yaml:"num_ticks"`
		NumSamples        int      `yaml:"num_samples"`
		BarNames          []string `yaml:"bar_names"`
		BarWidth          float64  `yaml:"bar_width"`
		BarFillOpacity    float64  `yaml:"bar_fill_opacity"`
		BarStrokeWidth    float64  `yaml:"bar_stroke_width"`
		RoundYLabels      bool     `yaml:"round_y_labels"`
	} `yaml:"scene"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ALPACA_API_KEY"); v != "" {
		cfg.DataSource.AlpacaKey = v
	}
	if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
		cfg.DataSource.AlpacaSecret = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}

	// Defaults
	if cfg.DataSource.Provider == "" {
		cfg.DataSource.Provider = "yahoo"
	}
	if cfg.DataSource.Start == "" {
		cfg.DataSource.Start = "1900-01-01"
	}
	if cfg.DataSource.End == "" {
		cfg.DataSource.End = "2100-01-01"
	}
	if cfg.DataSource.Field == "" {
		cfg.DataSource.Field = string(model.FieldHigh)
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "out"
	}
	if cfg.Output.Width == 0 {
		cfg.Output.Width = 1920
	}
	if cfg.Output.Height == 0 {
		cfg.Output.Height = 1080
	}
	if cfg.Output.FPS == 0 {
		cfg.Output.FPS = 30
	}
	if cfg.Output.CSVPath == "" {
		cfg.Output.CSVPath = "data/prices.csv"
	}
	if cfg.Scene.Kind == "" {
		cfg.Scene.Kind = "lineplot"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/market_motion.db"
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 0 8 * * 1"
	}

	return cfg, nil
}

// Validate checks field values that Load cannot default.
func (c *Config) Validate() error {
	switch c.DataSource.Provider {
	case "yahoo", "alpaca", "mock":
	default:
		return fmt.Errorf("data_source.provider must be yahoo, alpaca or mock, got %q", c.DataSource.Provider)
	}
	if c.DataSource.Provider == "alpaca" && (c.DataSource.AlpacaKey == "" || c.DataSource.AlpacaSecret == "") {
		return fmt.Errorf("alpaca provider needs ALPACA_API_KEY and ALPACA_SECRET_KEY")
	}
	if len(c.DataSource.Tickers) == 0 {
		return fmt.Errorf("data_source.tickers is required")
	}
	if !model.Field(c.DataSource.Field).Valid() {
		return fmt.Errorf("data_source.field must be one of Open, High, Low, Close, Volume, got %q", c.DataSource.Field)
	}
	if c.DataSource.InitCash < 0 {
		return fmt.Errorf("data_source.init_cash must not be negative")
	}
	start, err := c.StartDate()
	if err != nil {
		return err
	}
	end, err := c.EndDate()
	if err != nil {
		return err
	}
	if !start.Before(end) {
		return fmt.Errorf("data_source.start must be before data_source.end")
	}
	if c.Output.Width <= 0 || c.Output.Height <= 0 {
		return fmt.Errorf("output dimensions must be positive")
	}
	if c.Output.FPS <= 0 {
		return fmt.Errorf("output.fps must be positive")
	}
	if !strings.HasSuffix(c.Output.CSVPath, ".csv") {
		return fmt.Errorf("output.csv_path must end in .csv")
	}
	switch c.Scene.Kind {
	case "lineplot", "growing-lineplot", "barplot", "growing-barplot", "single-stock-price":
	default:
		return fmt.Errorf("unknown scene kind %q", c.Scene.Kind)
	}
	return nil
}

// StartDate parses the configured range start.
func (c *Config) StartDate() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, c.DataSource.Start)
	if err != nil {
		return time.Time{}, fmt.Errorf("data_source.start: %w", err)
	}
	return t, nil
}

// EndDate parses the configured range end.
func (c *Config) EndDate() (time.Time, error) {
	t, err := time.Parse(time.DateOnly, c.DataSource.End)
	if err != nil {
		return time.Time{}, fmt.Errorf("data_source.end: %w", err)
	}
	return t, nil
}

// Field returns the configured OHLCV field.
func (c *Config) Field() model.Field {
	return model.Field(c.DataSource.Field)
}
