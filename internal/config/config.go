package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/ledgerrecon/internal/filter"
	"github.com/cleared-dev/ledgerrecon/internal/report"
)

// FileName is the config file written by init and read by run and filter.
const FileName = "ledgerrecon.yaml"

// Config represents the top-level ledgerrecon.yaml configuration.
type Config struct {
	HostLabel string        `yaml:"host_label,omitempty"`
	Sources   SourcesConfig `yaml:"sources"`
	Storage   StorageConfig `yaml:"storage"`
	Report    ReportConfig  `yaml:"report"`
	Filter    FilterConfig  `yaml:"filter"`
	Logs      LogsConfig    `yaml:"logs"`
}

// SourcesConfig names the two input series. The format follows the extension
// (.csv, .txt, .xlsx).
type SourcesConfig struct {
	Income   string `yaml:"income"`
	Expenses string `yaml:"expenses"`
}

// StorageConfig selects the persistence sink.
type StorageConfig struct {
	Driver string `yaml:"driver"`         // "sqlite" or "postgres"
	Path   string `yaml:"path,omitempty"` // sqlite database file
	DSN    string `yaml:"dsn,omitempty"`  // postgres connection string
	Table  string `yaml:"table"`
}

// ReportConfig controls the markdown report.
type ReportConfig struct {
	Path     string `yaml:"path"`
	Currency string `yaml:"currency"`
	Style    string `yaml:"style,omitempty"` // glamour style for --print
	Width    int    `yaml:"width"`
}

// FilterConfig holds the filter command's defaults. Thresholds are decimal
// strings so they round-trip exactly.
type FilterConfig struct {
	Input      string `yaml:"input"`
	Output     string `yaml:"output"`
	MinIncome  string `yaml:"min_income"`
	MinSavings string `yaml:"min_savings"`
}

// LogsConfig controls where the run log is written.
type LogsConfig struct {
	Dir string `yaml:"dir"`
}

// Load reads a ledgerrecon.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new project.
func Default() *Config {
	return &Config{
		Sources: SourcesConfig{
			Income:   filepath.Join("data", "income.csv"),
			Expenses: filepath.Join("data", "expenses.txt"),
		},
		Storage: StorageConfig{
			Driver: "sqlite",
			Path:   "finance.db",
			Table:  "FinanceData",
		},
		Report: ReportConfig{
			Path:     filepath.Join("reports", "finance-report.md"),
			Currency: "USD",
			Width:    80,
		},
		Filter: FilterConfig{
			Input:      filepath.Join("data", "data.csv"),
			Output:     filepath.Join("data", "filtered_data.csv"),
			MinIncome:  "7000",
			MinSavings: "400",
		},
		Logs: LogsConfig{
			Dir: DefaultLogsDir,
		},
	}
}

// DefaultLogsDir is used when a config leaves logs.dir empty.
const DefaultLogsDir = "logs"

// Resolve makes every relative path in cfg relative to dir, normally the
// directory holding the config file. An empty logs.dir becomes DefaultLogsDir.
func (c *Config) Resolve(dir string) {
	if c.Logs.Dir == "" {
		c.Logs.Dir = DefaultLogsDir
	}
	for _, p := range []*string{
		&c.Sources.Income,
		&c.Sources.Expenses,
		&c.Storage.Path,
		&c.Report.Path,
		&c.Filter.Input,
		&c.Filter.Output,
		&c.Logs.Dir,
	} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(dir, *p)
		}
	}
}

// Validate reports every problem found, joined into one error.
func (c *Config) Validate() error {
	var errs []error
	if c.Sources.Income == "" {
		errs = append(errs, errors.New("sources.income is required"))
	}
	if c.Sources.Expenses == "" {
		errs = append(errs, errors.New("sources.expenses is required"))
	}
	switch c.Storage.Driver {
	case "sqlite", "":
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for sqlite"))
		}
	case "postgres":
		if c.Storage.DSN == "" {
			errs = append(errs, errors.New("storage.dsn is required for postgres"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.driver %q is not supported", c.Storage.Driver))
	}
	if c.Report.Width < 0 {
		errs = append(errs, fmt.Errorf("report.width must not be negative, got %d", c.Report.Width))
	}
	if c.Report.Currency != "" && !report.KnownCurrency(c.Report.Currency) {
		errs = append(errs, fmt.Errorf("report.currency %q is not an ISO 4217 code", c.Report.Currency))
	}
	if _, err := c.Thresholds(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Thresholds parses the filter thresholds. Empty values take the defaults.
func (c *Config) Thresholds() (filter.Thresholds, error) {
	def := filter.DefaultThresholds()
	minIncome, minSavings := c.Filter.MinIncome, c.Filter.MinSavings
	if minIncome == "" {
		minIncome = def.MinIncome.String()
	}
	if minSavings == "" {
		minSavings = def.MinSavings.String()
	}
	th, err := filter.ParseThresholds(minIncome, minSavings)
	if err != nil {
		return filter.Thresholds{}, fmt.Errorf("filter thresholds: %w", err)
	}
	return th, nil
}
