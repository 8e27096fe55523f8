// Package config handles configuration loading for the gene expression server.
package config

import (
	"fmt"
	"os"

	"github.com/bmaharathi/zombiegene/internal/data/dataset"
	"gopkg.in/yaml.v3"
)

// Config represents the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Data     DataConfig     `yaml:"data"`
	Defaults DefaultsConfig `yaml:"defaults"`
	Render   RenderConfig   `yaml:"render"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
	Title       string   `yaml:"title"`
}

// DataConfig contains data source settings.
type DataConfig struct {
	CSVPath          string          `yaml:"csv_path"`
	LogoPath         string          `yaml:"logo_path"`
	DownloadFilename string          `yaml:"download_filename"`
	Delimiter        string          `yaml:"delimiter"`
	Columns          dataset.Columns `yaml:"columns"`
}

// DefaultsConfig is the selection shown before the user picks anything.
type DefaultsConfig struct {
	Genes []int  `yaml:"genes"`
	Mode  string `yaml:"mode"`
}

// RenderConfig contains rendering settings.
type RenderConfig struct {
	ChartWidth     int     `yaml:"chart_width"`
	ChartHeight    int     `yaml:"chart_height"`
	LineWidth      float64 `yaml:"line_width"`
	TableWidth     int     `yaml:"table_width"`
	TableRowHeight int     `yaml:"table_row_height"`
	TableMaxRows   int     `yaml:"table_max_rows"`
	Palette        string  `yaml:"palette"`
}

// Load reads configuration from a YAML file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return default config if file doesn't exist
		return DefaultConfig(), nil
	}

	cfg := Config{Data: DataConfig{Columns: dataset.DefaultColumns()}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	// Apply defaults for missing values
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return &cfg, nil
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:        8050,
			CORSOrigins: []string{"http://localhost:8050"},
			Title:       "Postmortem human cortex gene calculator",
		},
		Data: DataConfig{
			CSVPath:          "./data4.csv",
			LogoPath:         "./UINeurorepository.jpg",
			DownloadFilename: dataset.DownloadFilename,
			Columns:          dataset.DefaultColumns(),
		},
		Defaults: DefaultsConfig{
			Genes: []int{1},
			Mode:  "GET",
		},
		Render: RenderConfig{
			ChartWidth:     1024,
			ChartHeight:    512,
			LineWidth:      5,
			TableWidth:     1024,
			TableRowHeight: 24,
			TableMaxRows:   50,
			Palette:        "plotly",
		},
	}
}

// DelimiterRune returns the configured delimiter, or 0 to request detection.
func (d DataConfig) DelimiterRune() (rune, error) {
	switch d.Delimiter {
	case "":
		return 0, nil
	case `\t`, "tab":
		return '\t', nil
	}
	r := []rune(d.Delimiter)
	if len(r) != 1 {
		return 0, fmt.Errorf("delimiter must be a single character, got %q", d.Delimiter)
	}
	return r[0], nil
}

// Validate reports configuration values that cannot be defaulted.
func (c *Config) Validate() error {
	if err := c.Data.Columns.Validate(); err != nil {
		return err
	}
	if _, err := c.Data.DelimiterRune(); err != nil {
		return err
	}
	for _, id := range c.Defaults.Genes {
		if id < 1 {
			return fmt.Errorf("default gene id must be positive, got %d", id)
		}
	}
	return nil
}

func applyDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaults.Server.Port
	}
	if len(cfg.Server.CORSOrigins) == 0 {
		cfg.Server.CORSOrigins = defaults.Server.CORSOrigins
	}
	if cfg.Server.Title == "" {
		cfg.Server.Title = defaults.Server.Title
	}
	if cfg.Data.CSVPath == "" {
		cfg.Data.CSVPath = defaults.Data.CSVPath
	}
	if cfg.Data.LogoPath == "" {
		cfg.Data.LogoPath = defaults.Data.LogoPath
	}
	if cfg.Data.DownloadFilename == "" {
		cfg.Data.DownloadFilename = defaults.Data.DownloadFilename
	}
	if cfg.Defaults.Genes == nil {
		cfg.Defaults.Genes = defaults.Defaults.Genes
	}
	if cfg.Defaults.Mode == "" {
		cfg.Defaults.Mode = defaults.Defaults.Mode
	}
	if cfg.Render.ChartWidth == 0 {
		cfg.Render.ChartWidth = defaults.Render.ChartWidth
	}
	if cfg.Render.ChartHeight == 0 {
		cfg.Render.ChartHeight = defaults.Render.ChartHeight
	}
	if cfg.Render.LineWidth == 0 {
		cfg.Render.LineWidth = defaults.Render.LineWidth
	}
	if cfg.Render.TableWidth == 0 {
		cfg.Render.TableWidth = cfg.Render.ChartWidth
	}
	if cfg.Render.TableRowHeight == 0 {
		cfg.Render.TableRowHeight = defaults.Render.TableRowHeight
	}
	if cfg.Render.TableMaxRows == 0 {
		cfg.Render.TableMaxRows = defaults.Render.TableMaxRows
	}
	if cfg.Render.Palette == "" {
		cfg.Render.Palette = defaults.Render.Palette
	}
}
