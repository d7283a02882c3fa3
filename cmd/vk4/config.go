package main

import (
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

// Config represents the vk4 configuration file (~/.config/vk4/config.yaml).
// Pointer fields distinguish "not set" from zero values.
type Config struct {
	OutputDir   string `yaml:"output_dir"`
	Format      string `yaml:"format"`
	JPEGQuality *int   `yaml:"jpeg_quality"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	ServerAddress string `yaml:"server_address"`
}

func configPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "vk4", "config.yaml")
}

// LoadConfig reads the config file. Returns a zero Config if the file
// doesn't exist or fails to parse.
func LoadConfig() Config {
	path := configPath()
	if path == "" {
		return Config{}
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}
	}
	return parseConfig(data)
}

func parseConfig(data []byte) Config {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}
	}
	return cfg
}

// applyExtractConfig applies config file defaults to extract command
// variables when the corresponding CLI flag was not explicitly set.
func applyExtractConfig(c *cli.Command, cfg Config, outDir, format *string, quality *int) {
	if cfg.OutputDir != "" && !c.IsSet("output-dir") {
		*outDir = cfg.OutputDir
	}
	if cfg.Format != "" && !c.IsSet("type") {
		*format = cfg.Format
	}
	if cfg.JPEGQuality != nil && !c.IsSet("quality") {
		*quality = *cfg.JPEGQuality
	}
	applyLoggingConfig(c, cfg)
}

// applyServeConfig applies config file defaults to serve command variables.
func applyServeConfig(c *cli.Command, cfg Config, addr *string) {
	if cfg.ServerAddress != "" && !c.IsSet("addr") {
		*addr = cfg.ServerAddress
	}
	applyLoggingConfig(c, cfg)
}

func applyLoggingConfig(c *cli.Command, cfg Config) {
	if cfg.LogLevel != "" && !c.IsSet("log-level") {
		logLevel = cfg.LogLevel
	}
	if cfg.LogFormat != "" && !c.IsSet("log-format") {
		logFormat = cfg.LogFormat
	}
}
