package domain

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"
)

//go:embed config_template.toml
var configTemplateContent string

// Config represents the application configuration.
// Fields are ordered to minimize memory padding.
type Config struct {
	Warnings []string      `toml:"-"`
	Store    StoreConfig   `toml:"store"`
	Server   ServerConfig  `toml:"server"`
	Log      LogConfig     `toml:"log"`
	History  HistoryConfig `toml:"history"`
}

// HistoryConfig holds settings for the recently-viewed list from [history] section.
type HistoryConfig struct {
	MaxSize int `toml:"max_size"` // Maximum entries kept (0 = unbounded)
}

// StoreConfig holds persistence settings from [store] section.
type StoreConfig struct {
	File   string `toml:"file,omitempty"`   // Data file name, relative to the kanban directory
	Format string `toml:"format,omitempty"` // Store format: "csv" (default), "json" or "yaml"
}

// ServerConfig holds HTTP server settings from [server] section.
type ServerConfig struct {
	Addr string `toml:"addr,omitempty"` // Listen address
}

// LogConfig holds logging settings from [log] section.
type LogConfig struct {
	Level string `toml:"level,omitempty"` // Log level: debug, info, warn, error
}

// Supported store formats.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Default configuration values.
const (
	DefaultHistoryMaxSize = 0
	DefaultStoreFormat    = FormatCSV
	DefaultServerAddr     = ":8080"
	DefaultLogLevel       = "info"
)

// NewDefaultConfig returns a Config with default values.
func NewDefaultConfig() *Config {
	return &Config{
		History: HistoryConfig{MaxSize: DefaultHistoryMaxSize},
		Store: StoreConfig{
			File:   DefaultStoreFileName(DefaultStoreFormat),
			Format: DefaultStoreFormat,
		},
		Server: ServerConfig{Addr: DefaultServerAddr},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// IsValidFormat returns true if format names a supported store format.
func IsValidFormat(format string) bool {
	switch format {
	case FormatCSV, FormatJSON, FormatYAML:
		return true
	default:
		return false
	}
}

// DefaultStoreFileName returns the data file name used for a store format.
func DefaultStoreFileName(format string) string {
	return "tasks." + format
}

// RenderConfigTemplate renders the commented config file written by 'kanban init'.
func RenderConfigTemplate(cfg *Config) string {
	tmpl, err := template.New("config").Delims("<<", ">>").Parse(configTemplateContent)
	if err != nil {
		// Should never happen with embedded template
		panic(fmt.Sprintf("failed to parse config template: %v", err))
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, cfg); err != nil {
		panic(fmt.Sprintf("failed to execute config template: %v", err))
	}
	return buf.String()
}

// ConfigInfo describes a configuration file on disk.
type ConfigInfo struct {
	Path    string
	Content string
	Exists  bool
}
