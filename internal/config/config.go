package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/verifikat-dev/verifikat/internal/logger"
	"github.com/verifikat-dev/verifikat/internal/money"
	"github.com/verifikat-dev/verifikat/internal/rotrut"
)

// FileName is the config file at the ledger root.
const FileName = "verifikat.yaml"

// Config represents the top-level verifikat.yaml configuration.
type Config struct {
	Business BusinessConfig `yaml:"business"`
	Fiscal   FiscalConfig   `yaml:"fiscal"`
	Rounding RoundingConfig `yaml:"rounding"`
	RotRut   RotRutConfig   `yaml:"rotrut"`
	Vat      VatConfig      `yaml:"vat"`
	Git      GitConfig      `yaml:"git"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// BusinessConfig identifies the business entity.
type BusinessConfig struct {
	Name        string `yaml:"name"`
	OrgNumber   string `yaml:"org_number,omitempty"`
	CompanyForm string `yaml:"company_form"` // aktiebolag, enskild_firma
}

// FiscalConfig defines the fiscal year boundaries.
type FiscalConfig struct {
	YearStart string `yaml:"year_start"` // "MM-DD" format, e.g. "01-01"
}

// RoundingConfig selects the rounding policy for derived amounts.
type RoundingConfig struct {
	Mode   string `yaml:"mode"` // half_up, half_even, truncate
	Places int32  `yaml:"places"`
}

// RotRutConfig holds the deduction rate. A missing rate means
// rotrut.DefaultRate; an explicit zero is rejected.
type RotRutConfig struct {
	Rate *decimal.Decimal `yaml:"rate,omitempty"`
}

// VatConfig controls the VAT report.
type VatConfig struct {
	// Tolerance is the allowed gap between derived and recorded box 49.
	Tolerance decimal.Decimal `yaml:"tolerance"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// LoggingConfig mirrors logger.LogConfig.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output,omitempty"`
}

// Load reads a verifikat.yaml file from disk and applies environment
// overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if _, err := cfg.RotRutOptions(); err != nil {
		return nil, err
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

// Default returns a Config with sensible defaults for a new ledger.
func Default(businessName, companyForm string) *Config {
	rate := rotrut.DefaultRate()
	return &Config{
		Business: BusinessConfig{
			Name:        businessName,
			CompanyForm: companyForm,
		},
		Fiscal: FiscalConfig{
			YearStart: "01-01",
		},
		Rounding: RoundingConfig{
			Mode:   money.HalfUp.String(),
			Places: 2,
		},
		RotRut: RotRutConfig{
			Rate: &rate,
		},
		Vat: VatConfig{
			Tolerance: money.Tolerance,
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "verifikat",
			AuthorEmail: "bokforing@verifikat.local",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// Policy returns the configured rounding policy.
func (c *Config) Policy() (money.Policy, error) {
	m, err := money.ParseRoundingMode(c.Rounding.Mode)
	if err != nil {
		return money.Policy{}, fmt.Errorf("rounding.mode: %w", err)
	}
	places := c.Rounding.Places
	if places == 0 {
		places = 2
	}
	if places < 0 || places > 4 {
		return money.Policy{}, fmt.Errorf("rounding.places: %d out of range", places)
	}
	return money.Policy{Mode: m, Places: places}, nil
}

// RotRutOptions returns the deduction options.
func (c *Config) RotRutOptions() (rotrut.Options, error) {
	p, err := c.Policy()
	if err != nil {
		return rotrut.Options{}, err
	}
	rate := rotrut.DefaultRate()
	if c.RotRut.Rate != nil {
		if err := rotrut.ValidateRate(*c.RotRut.Rate); err != nil {
			return rotrut.Options{}, fmt.Errorf("rotrut.rate: %w", err)
		}
		rate = *c.RotRut.Rate
	}
	return rotrut.Options{Rate: rate, Policy: p}, nil
}

// VatTolerance returns the box 49 reconciliation tolerance.
func (c *Config) VatTolerance() decimal.Decimal {
	if c.Vat.Tolerance.IsPositive() {
		return c.Vat.Tolerance
	}
	return money.Tolerance
}

// LogConfig converts the logging section, filling gaps from the defaults.
func (c *Config) LogConfig() logger.LogConfig {
	lc := logger.DefaultConfig()
	if c.Logging.Level != "" {
		lc.Level = c.Logging.Level
	}
	if c.Logging.Format != "" {
		lc.Format = c.Logging.Format
	}
	if c.Logging.Output != "" {
		lc.Output = c.Logging.Output
	}
	return lc
}

// applyEnv lets VERIFIKAT_* variables override the file.
func (c *Config) applyEnv() error {
	if v := os.Getenv("VERIFIKAT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("VERIFIKAT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("VERIFIKAT_ROUNDING_MODE"); v != "" {
		c.Rounding.Mode = v
	}
	if v := os.Getenv("VERIFIKAT_GIT_AUTO_COMMIT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("VERIFIKAT_GIT_AUTO_COMMIT: %w", err)
		}
		c.Git.AutoCommit = b
	}
	return nil
}
