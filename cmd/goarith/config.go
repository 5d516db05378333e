package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/sandrolain/goarith/pkg/parser"
)

// Config holds CLI settings. Values from the config file are overridden by
// flags given on the command line.
type Config struct {
	ShowTree   bool   `yaml:"show_tree"`
	ShowTokens bool   `yaml:"show_tokens"`
	Color      bool   `yaml:"color"`
	CacheSize  int    `yaml:"cache_size"`
	LogLevel   string `yaml:"log_level"`
	Jobs       int    `yaml:"jobs"`
	MaxDepth   int    `yaml:"max_depth"`
}

// DefaultConfig returns the settings used when no config file is given.
func DefaultConfig() Config {
	return Config{
		Color:     true,
		CacheSize: 256,
		LogLevel:  "warn",
		Jobs:      runtime.NumCPU(),
		MaxDepth:  parser.DefaultMaxDepth,
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
// Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// applyFlags overrides cfg with the flags set on cmd.
func applyFlags(cfg *Config, cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("tree") {
		cfg.ShowTree = showTree
	}
	if flags.Changed("tokens") {
		cfg.ShowTokens = showTokens
	}
	if flags.Changed("no-color") {
		cfg.Color = !noColor
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("jobs") {
		cfg.Jobs = jobs
	}
	if flags.Changed("max-depth") {
		cfg.MaxDepth = maxDepth
	}
	if cfg.Jobs <= 0 {
		cfg.Jobs = runtime.NumCPU()
	}
}

// newLogger builds a text logger on stderr at the given level.
func newLogger(level string) (*slog.Logger, error) {
	var lvl slog.Level
	if level != "" {
		if err := lvl.UnmarshalText([]byte(strings.ToUpper(level))); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", level, err)
		}
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})), nil
}
