package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// DefaultFile is read when present, relative to the working directory.
const DefaultFile = "config/default.yaml"

// ErrNoInput is returned by Validate when no input file is configured.
var ErrNoInput = errors.New("no input file configured")

// Config represents the complete configuration for an export run
type Config struct {
	Input    string         `yaml:"input"`
	Output   OutputConfig   `yaml:"output"`
	Manifest ManifestConfig `yaml:"manifest"`
	Audit    AuditConfig    `yaml:"audit"`
	Log      LogConfig      `yaml:"log"`
}

// OutputConfig holds table output settings
type OutputConfig struct {
	Dir           string `yaml:"dir"`
	CellsFile     string `yaml:"cellsFile"`
	RelationsFile string `yaml:"relationsFile"`
	Delimiter     string `yaml:"delimiter"`
}

// ManifestConfig holds run manifest settings
type ManifestConfig struct {
	Enabled    bool   `yaml:"enabled"`
	SigningKey string `yaml:"signingKey"` // HS256 key; empty skips manifest.jwt
}

// RotationConfig holds lumberjack rotation limits
type RotationConfig struct {
	MaxSizeMB  int  `yaml:"maxSizeMB"`
	MaxBackups int  `yaml:"maxBackups"`
	MaxAgeDays int  `yaml:"maxAgeDays"`
	Compress   bool `yaml:"compress"`
}

// AuditConfig holds run audit log settings
type AuditConfig struct {
	Enabled        bool   `yaml:"enabled"`
	Dir            string `yaml:"dir"`
	RotationConfig `yaml:",inline"`
}

// LogConfig holds process log settings. An empty File logs to stderr only.
type LogConfig struct {
	File           string `yaml:"file"`
	RotationConfig `yaml:",inline"`
}

// DelimiterRune returns the configured field delimiter.
func (o OutputConfig) DelimiterRune() rune {
	r, _ := utf8.DecodeRuneInString(o.Delimiter)
	return r
}

// Load loads configuration from files and environment variables. The input path is
// not required here; call Validate once every source has been applied.
func Load() (*Config, error) {
	// Load default configuration
	cfg := getDefaultConfig()

	// Load from default config file
	if err := loadFromFile(cfg, DefaultFile); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load default config: %w", err)
		}
	}

	// Existing environment variables win over .env entries
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Could not load .env: %v", err)
	}

	// Load from config file if CMEXPORT_CONFIG is set
	if path := os.Getenv("CMEXPORT_CONFIG"); path != "" {
		if err := loadFromFile(cfg, path); err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
		}
	}

	// Override with environment variables
	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	// Validate configuration
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks the full configuration, including the input path.
func (c *Config) Validate() error {
	if c.Input == "" {
		return ErrNoInput
	}
	return validateConfig(c)
}

// getDefaultConfig returns the default configuration
func getDefaultConfig() *Config {
	return &Config{
		Output: OutputConfig{
			Dir:           ".",
			CellsFile:     "5g_cells_extracted.csv",
			RelationsFile: "5g_neighbor_cells.csv",
			Delimiter:     ",",
		},
		Manifest: ManifestConfig{
			Enabled: false,
		},
		Audit: AuditConfig{
			Enabled: true,
			Dir:     "logs",
			RotationConfig: RotationConfig{
				MaxSizeMB:  10,
				MaxBackups: 5,
				MaxAgeDays: 90,
			},
		},
		Log: LogConfig{
			RotationConfig: RotationConfig{
				MaxSizeMB:  10,
				MaxBackups: 3,
				MaxAgeDays: 30,
			},
		},
	}
}

// loadFromFile loads configuration from a YAML file
func loadFromFile(cfg *Config, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) error {
	if input := os.Getenv("CMEXPORT_INPUT"); input != "" {
		cfg.Input = input
	}

	if dir := os.Getenv("CMEXPORT_OUTPUT_DIR"); dir != "" {
		cfg.Output.Dir = dir
	}

	if delim := os.Getenv("CMEXPORT_DELIMITER"); delim != "" {
		cfg.Output.Delimiter = delim
	}

	if key := os.Getenv("CMEXPORT_MANIFEST_KEY"); key != "" {
		cfg.Manifest.SigningKey = key
	}

	if enabled := os.Getenv("CMEXPORT_WRITE_MANIFEST"); enabled != "" {
		v, err := strconv.ParseBool(enabled)
		if err != nil {
			return fmt.Errorf("invalid CMEXPORT_WRITE_MANIFEST %q: %w", enabled, err)
		}
		cfg.Manifest.Enabled = v
	}

	if dir := os.Getenv("CMEXPORT_AUDIT_DIR"); dir != "" {
		cfg.Audit.Dir = dir
	}

	if file := os.Getenv("CMEXPORT_LOG_FILE"); file != "" {
		cfg.Log.File = file
	}

	return nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	// Validate table settings
	if cfg.Output.Dir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if cfg.Output.CellsFile == "" || cfg.Output.RelationsFile == "" {
		return fmt.Errorf("output file names cannot be empty")
	}
	if cfg.Output.CellsFile == cfg.Output.RelationsFile {
		return fmt.Errorf("cells and relations files must differ, both are %s", cfg.Output.CellsFile)
	}

	// Validate delimiter: one rune that encoding/csv accepts
	invalidDelimiters := []string{"\"", "\r", "\n", "\uFFFD"}
	if utf8.RuneCountInString(cfg.Output.Delimiter) != 1 || contains(invalidDelimiters, cfg.Output.Delimiter) {
		return fmt.Errorf("invalid delimiter %q, must be a single character other than quote or newline", cfg.Output.Delimiter)
	}

	// Validate audit settings
	if cfg.Audit.Enabled && cfg.Audit.Dir == "" {
		return fmt.Errorf("audit directory cannot be empty when audit is enabled")
	}

	// Validate rotation limits
	for name, r := range map[string]RotationConfig{"audit": cfg.Audit.RotationConfig, "log": cfg.Log.RotationConfig} {
		if r.MaxSizeMB < 0 || r.MaxBackups < 0 || r.MaxAgeDays < 0 {
			return fmt.Errorf("%s rotation limits cannot be negative", name)
		}
	}

	return nil
}

// contains checks if a string slice contains a specific string
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
