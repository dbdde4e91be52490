// Package config loads addimports settings from a YAML file, ADDIMPORTS_*
// environment variables and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/hannajonsd/addimports/printer"
)

// Default values.
const (
	DefaultQuote       = string(printer.QuoteDouble)
	DefaultSemicolons  = true
	DefaultMaxFileSize = "1MB"
	DefaultLogLevel    = "info"
	DefaultLogFormat   = "text"
)

// DefaultExtensions are the file extensions the batch runner rewrites.
var DefaultExtensions = []string{".js", ".jsx", ".mjs", ".cjs", ".ts", ".tsx", ".mts", ".cts"}

// DefaultSkipDirs are directory names the batch runner never enters.
var DefaultSkipDirs = []string{"node_modules", "vendor", "build", "dist", "coverage"}

// Sentinel errors for configuration validation.
var (
	// ErrInvalidMaxFileSize indicates batch.max_file_size is not a byte size.
	ErrInvalidMaxFileSize = errors.New("invalid max file size")
	// ErrInvalidExtension indicates a batch extension without a leading dot.
	ErrInvalidExtension = errors.New("invalid extension")
	// ErrInvalidLogLevel indicates an unknown logging.level.
	ErrInvalidLogLevel = errors.New("invalid log level")
	// ErrInvalidLogFormat indicates an unknown logging.format.
	ErrInvalidLogFormat = errors.New("invalid log format")
)

// Config is the full addimports configuration.
type Config struct {
	Printer PrinterConfig `mapstructure:"printer"`
	Batch   BatchConfig   `mapstructure:"batch"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// PrinterConfig controls how inserted and rewritten statements are printed.
type PrinterConfig struct {
	Quote      string `mapstructure:"quote"`
	Semicolons bool   `mapstructure:"semicolons"`
}

// BatchConfig controls which files the batch runner visits.
type BatchConfig struct {
	Extensions  []string `mapstructure:"extensions"`
	SkipDirs    []string `mapstructure:"skip_dirs"`
	MaxFileSize string   `mapstructure:"max_file_size"`
}

// LoggingConfig selects the slog handler.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Validate checks all sections. Empty values are accepted and mean default.
func (c *Config) Validate() error {
	if err := c.validatePrinter(); err != nil {
		return err
	}

	if err := c.validateBatch(); err != nil {
		return err
	}

	return c.validateLogging()
}

func (c *Config) validatePrinter() error {
	if c.Printer.Quote == "" {
		return nil
	}

	return c.PrinterConfig().Validate()
}

func (c *Config) validateBatch() error {
	for _, ext := range c.Batch.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			return fmt.Errorf("%w: %q", ErrInvalidExtension, ext)
		}
	}

	if c.Batch.MaxFileSize == "" {
		return nil
	}

	if _, err := humanize.ParseBytes(c.Batch.MaxFileSize); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, c.Batch.MaxFileSize)
	}

	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.Logging.Level)
	}

	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogFormat, c.Logging.Format)
	}
}

// PrinterConfig converts the printer section for printer.New.
func (c *Config) PrinterConfig() printer.Config {
	return printer.Config{
		Quote:      printer.Quote(strings.ToLower(c.Printer.Quote)),
		Semicolons: c.Printer.Semicolons,
	}
}

// MaxFileSizeBytes returns the parsed size limit, zero meaning unlimited.
func (c *Config) MaxFileSizeBytes() (uint64, error) {
	if c.Batch.MaxFileSize == "" {
		return 0, nil
	}

	size, err := humanize.ParseBytes(c.Batch.MaxFileSize)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMaxFileSize, c.Batch.MaxFileSize)
	}

	return size, nil
}
