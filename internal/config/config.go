package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"SectorFlow/internal/collector"
	"SectorFlow/internal/store"
	"SectorFlow/internal/universe"
)

// Price providers.
const (
	ProviderYahoo     = "yahoo"
	ProviderFinanceGo = "finance-go"
)

// Instrument is one configured symbol.
type Instrument struct {
	Symbol string `yaml:"symbol"`
	Name   string `yaml:"name"`
}

// Group is an ordered block of instruments sharing a display group.
type Group struct {
	Group       string       `yaml:"group"`
	Instruments []Instrument `yaml:"instruments"`
}

// Config holds all application configuration.
type Config struct {
	DataDir     string `yaml:"data_dir"`
	Benchmark   string `yaml:"benchmark"`
	PriceSource struct {
		Provider         string        `yaml:"provider"`
		BaseURL          string        `yaml:"base_url"`
		UserAgent        string        `yaml:"user_agent"`
		Timeout          time.Duration `yaml:"timeout"`
		ColdRange        string        `yaml:"cold_range"`
		IncrementalRange string        `yaml:"incremental_range"`
	} `yaml:"price_source"`
	Cache struct {
		Format string `yaml:"format"`
	} `yaml:"cache"`
	Macro struct {
		APIKey  string        `yaml:"api_key"`
		BaseURL string        `yaml:"base_url"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"macro"`
	Universe []Group `yaml:"universe"`
	Server   struct {
		Addr      string `yaml:"addr"`
		StaticDir string `yaml:"static_dir"`
	} `yaml:"server"`
	Schedule struct {
		Cron       string `yaml:"cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"logging"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, loads .env if present, then applies
// environment variable overrides and defaults. A missing file is not an error.
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

	_ = godotenv.Load()
	cfg.loadFromEnv()
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) loadFromEnv() {
	if v := os.Getenv("DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		c.Macro.APIKey = v
	}
	if v := os.Getenv("BENCHMARK"); v != "" {
		c.Benchmark = v
	}
	if v := os.Getenv("PRICE_PROVIDER"); v != "" {
		c.PriceSource.Provider = v
	}
	if v := os.Getenv("CACHE_FORMAT"); v != "" {
		c.Cache.Format = v
	}
	if v := os.Getenv("SERVER_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("CRON_SCHEDULE"); v != "" {
		c.Schedule.Cron = v
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Schedule.RunOnStart = b
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		c.Proxy = v
	}
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	c.Benchmark = strings.ToUpper(strings.TrimSpace(c.Benchmark))
	if c.Benchmark == "" {
		c.Benchmark = "SPY"
	}
	if c.PriceSource.Provider == "" {
		c.PriceSource.Provider = ProviderYahoo
	}
	if c.PriceSource.Timeout == 0 {
		c.PriceSource.Timeout = 10 * time.Second
	}
	if c.PriceSource.ColdRange == "" {
		c.PriceSource.ColdRange = string(collector.Range1y)
	}
	if c.PriceSource.IncrementalRange == "" {
		c.PriceSource.IncrementalRange = string(collector.Range5d)
	}
	if c.Cache.Format == "" {
		c.Cache.Format = string(store.FormatCSV)
	}
	if c.Macro.Timeout == 0 {
		c.Macro.Timeout = 5 * time.Second
	}
	if len(c.Universe) == 0 {
		c.Universe = defaultUniverse()
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":8000"
	}
	if c.Server.StaticDir == "" {
		c.Server.StaticDir = "static"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func defaultUniverse() []Group {
	var out []Group
	for _, g := range universe.DefaultGroups() {
		grp := Group{Group: g.Name}
		for _, inst := range g.Instruments {
			grp.Instruments = append(grp.Instruments, Instrument{Symbol: inst.Symbol, Name: inst.Name})
		}
		out = append(out, grp)
	}
	return out
}

// Validate checks that all fields are usable.
func (c *Config) Validate() error {
	if c.Benchmark == "" {
		return fmt.Errorf("benchmark is required")
	}
	switch c.PriceSource.Provider {
	case ProviderYahoo, ProviderFinanceGo:
	default:
		return fmt.Errorf("price_source.provider %q is not one of %s, %s", c.PriceSource.Provider, ProviderYahoo, ProviderFinanceGo)
	}
	switch store.Format(c.Cache.Format) {
	case store.FormatCSV, store.FormatParquet:
	default:
		return fmt.Errorf("cache.format %q is not one of %s, %s", c.Cache.Format, store.FormatCSV, store.FormatParquet)
	}
	if c.PriceSource.Timeout <= 0 {
		return fmt.Errorf("price_source.timeout must be positive")
	}
	if c.Macro.Timeout <= 0 {
		return fmt.Errorf("macro.timeout must be positive")
	}
	if err := collector.Range(c.PriceSource.ColdRange).Validate(); err != nil {
		return fmt.Errorf("price_source.cold_range: %w", err)
	}
	if err := collector.Range(c.PriceSource.IncrementalRange).Validate(); err != nil {
		return fmt.Errorf("price_source.incremental_range: %w", err)
	}
	if _, err := c.Registry(); err != nil {
		return fmt.Errorf("universe: %w", err)
	}
	return nil
}

// Registry builds the immutable instrument universe.
func (c *Config) Registry() (*universe.Registry, error) {
	groups := make([]universe.Group, 0, len(c.Universe))
	for _, g := range c.Universe {
		grp := universe.Group{Name: g.Group}
		for _, inst := range g.Instruments {
			grp.Instruments = append(grp.Instruments, universe.Instrument{Symbol: inst.Symbol, Name: inst.Name})
		}
		groups = append(groups, grp)
	}
	return universe.New(groups)
}
