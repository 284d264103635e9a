package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"studydesk/internal/planner"
)

type Config struct {
	Server struct {
		Port int `yaml:"port"`
	} `yaml:"server"`

	Database struct {
		Path string `yaml:"path"`
	} `yaml:"database"`

	Backup struct {
		Enabled       bool   `yaml:"enabled"`
		IntervalHours int    `yaml:"interval_hours"`
		Path          string `yaml:"path"`
		RetentionDays int    `yaml:"retention_days"`
	} `yaml:"backup"`

	Redis struct {
		Address         string `yaml:"address"`
		Password        string `yaml:"password"`
		DB              int    `yaml:"db"`
		CacheTTLSeconds int    `yaml:"cache_ttl_seconds"`
	} `yaml:"redis"`

	Monitoring struct {
		PrometheusEnabled bool `yaml:"prometheus_enabled"`
		PrometheusPort    int  `yaml:"prometheus_port"`
	} `yaml:"monitoring"`

	Planner struct {
		WeekdayWindowStart string  `yaml:"weekday_window_start"`
		WeekdayWindowEnd   string  `yaml:"weekday_window_end"`
		WeekendWindowStart string  `yaml:"weekend_window_start"`
		WeekendWindowEnd   string  `yaml:"weekend_window_end"`
		GenerateRatePerSec float64 `yaml:"generate_rate_per_sec"`
		GenerateBurst      int     `yaml:"generate_burst"`
	} `yaml:"planner"`
}

func Load(path string) (*Config, error) {
	if path == "" {
		path = "configs/config.yaml"
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Support ${ENV_VAR} placeholders in YAML config.
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/studydesk.db"
	}

	if err = os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// StudyWindows returns the configured study windows; unset bounds fall back
// to the planner defaults.
func (c *Config) StudyWindows() planner.Windows {
	return planner.Windows{
		Weekday: planner.Window{Start: c.Planner.WeekdayWindowStart, End: c.Planner.WeekdayWindowEnd},
		Weekend: planner.Window{Start: c.Planner.WeekendWindowStart, End: c.Planner.WeekendWindowEnd},
	}
}

// GenerateRate returns the rate limit for schedule generation requests.
func (c *Config) GenerateRate() (perSec float64, burst int) {
	perSec = c.Planner.GenerateRatePerSec
	if perSec <= 0 {
		perSec = 0.5
	}
	burst = c.Planner.GenerateBurst
	if burst <= 0 {
		burst = 3
	}
	return perSec, burst
}
