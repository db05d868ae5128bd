package config

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/sibexico/pagesim/paging"
)

// Config holds simulator configuration
type Config struct {
	// Simulation
	Frames     int      `json:"frames"`     // Physical frame count
	Algorithms []string `json:"algorithms"` // Replacement policies to compare

	// Reference stream validation
	MaxPage       int `json:"max_page"`       // Largest valid page id
	MaxReferences int `json:"max_references"` // Longest accepted stream (0 = unbounded)

	// Trace files
	TraceCompression string `json:"trace_compression"` // none, lz4 or snappy

	// Execution
	Workers int `json:"workers"` // Concurrent runs for studies (0 = NumCPU)

	// Output
	EnableMetrics bool   `json:"enable_metrics"` // Log simulator metrics on exit
	Color         bool   `json:"color"`          // Colour hit/miss marks
	LogLevel      string `json:"log_level"`      // Log level (debug, info, warn, error)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Frames:           3,
		Algorithms:       []string{string(paging.AlgorithmOptimal), string(paging.AlgorithmLRU)},
		MaxPage:          5,
		MaxReferences:    30,
		TraceCompression: "snappy",
		Workers:          0,
		EnableMetrics:    true,
		Color:            true,
		LogLevel:         "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file on top of the defaults
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv loads configuration from environment variables
// Falls back to default values if environment variables are not set
func LoadConfigFromEnv() *Config {
	return DefaultConfig().ApplyEnv()
}

// ApplyEnv overrides fields with PAGESIM_* environment variables that are set
func (c *Config) ApplyEnv() *Config {
	if val := os.Getenv("PAGESIM_FRAMES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Frames = n
		}
	}

	if val := os.Getenv("PAGESIM_ALGORITHMS"); val != "" {
		c.Algorithms = splitList(val)
	}

	if val := os.Getenv("PAGESIM_MAX_PAGE"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.MaxPage = n
		}
	}

	if val := os.Getenv("PAGESIM_MAX_REFERENCES"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.MaxReferences = n
		}
	}

	if val := os.Getenv("PAGESIM_TRACE_COMPRESSION"); val != "" {
		c.TraceCompression = val
	}

	if val := os.Getenv("PAGESIM_WORKERS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			c.Workers = n
		}
	}

	if val := os.Getenv("PAGESIM_ENABLE_METRICS"); val != "" {
		c.EnableMetrics = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_COLOR"); val != "" {
		c.Color = val == "true" || val == "1"
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	return c
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Frames <= 0 {
		return fmt.Errorf("frames must be greater than 0")
	}

	if c.MaxPage <= 0 {
		return fmt.Errorf("max page must be greater than 0")
	}

	if uint64(c.MaxPage) > math.MaxUint32 {
		return fmt.Errorf("max page must not exceed %d, got %d", uint64(math.MaxUint32), c.MaxPage)
	}

	if c.MaxReferences < 0 {
		return fmt.Errorf("max references must not be negative")
	}

	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}

	if _, err := paging.ParseAlgorithms(c.Algorithms); err != nil {
		return err
	}

	switch c.TraceCompression {
	case "none", "lz4", "snappy":
	default:
		return fmt.Errorf("invalid trace compression: %s (must be none, lz4, or snappy)", c.TraceCompression)
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	return nil
}

// PageDomain returns MaxPage as a page id. Validate guarantees it fits.
func (c *Config) PageDomain() paging.PageID {
	return paging.PageID(c.MaxPage)
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	clone.Algorithms = append([]string(nil), c.Algorithms...)
	return &clone
}

func splitList(val string) []string {
	var out []string
	for _, part := range strings.Split(val, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
