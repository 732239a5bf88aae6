// Package config loads settings for the lambda driver. Values are layered:
// defaults, then an optional YAML file, then LAMBDA_* environment variables
// (optionally read from a .env file first).
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"lambda/internal/context"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

const (
	DefaultPrompt      = "> "
	DefaultHistoryFile = ".lambda_history"
	DefaultConfigFile  = "lambda.yaml"
)

// Config is the driver configuration
type Config struct {
	Debug       bool   `yaml:"debug"`
	Color       string `yaml:"color"`
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	ShowTokens  bool   `yaml:"show_tokens"`
	ShowAST     bool   `yaml:"show_ast"`
	DumpAST     bool   `yaml:"dump_ast"`
	FailFast    bool   `yaml:"fail_fast"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Color:       ColorAuto,
		Prompt:      DefaultPrompt,
		HistoryFile: DefaultHistoryFile,
		ShowTokens:  true,
		ShowAST:     true,
	}
}

// Decode overlays YAML read from r onto cfg
func (cfg *Config) Decode(r io.Reader) error {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

// Load builds the configuration. path may be empty, in which case
// lambda.yaml in the working directory is used if present. A missing
// default file is not an error; a missing explicit file is.
func Load(path string) (*Config, error) {
	cfg := Default()

	loadDotEnv()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	file, err := os.Open(path)
	switch {
	case err == nil:
		defer file.Close()
		if err := cfg.Decode(file); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		slog.Debug("loaded config file", "path", path)
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("open config: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadDotEnv loads a .env file named by ENV_PATH, or ./.env. Existing
// environment variables win.
func loadDotEnv() {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		envPath = ".env"
	}
	if err := godotenv.Load(envPath); err != nil {
		slog.Debug("skipping .env", "path", envPath, "error", err)
	}
}

func (cfg *Config) applyEnv(lookup func(string) (string, bool)) error {
	bools := map[string]*bool{
		"LAMBDA_DEBUG":       &cfg.Debug,
		"LAMBDA_SHOW_TOKENS": &cfg.ShowTokens,
		"LAMBDA_SHOW_AST":    &cfg.ShowAST,
		"LAMBDA_DUMP_AST":    &cfg.DumpAST,
		"LAMBDA_FAIL_FAST":   &cfg.FailFast,
	}
	for key, dst := range bools {
		v, ok := lookup(key)
		if !ok {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		*dst = b
	}

	strs := map[string]*string{
		"LAMBDA_COLOR":   &cfg.Color,
		"LAMBDA_PROMPT":  &cfg.Prompt,
		"LAMBDA_HISTORY": &cfg.HistoryFile,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok {
			*dst = v
		}
	}
	return nil
}

// Validate checks enumerated fields
func (cfg *Config) Validate() error {
	switch strings.ToLower(cfg.Color) {
	case ColorAuto, ColorAlways, ColorNever:
		cfg.Color = strings.ToLower(cfg.Color)
	case "":
		cfg.Color = ColorAuto
	default:
		return fmt.Errorf("invalid color mode %q (want auto, always or never)", cfg.Color)
	}
	return nil
}

// HistoryPath resolves the history file. Relative paths live in the home
// directory.
func (cfg *Config) HistoryPath() string {
	if cfg.HistoryFile == "" || filepath.IsAbs(cfg.HistoryFile) {
		return cfg.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return cfg.HistoryFile
	}
	return filepath.Join(home, cfg.HistoryFile)
}

// UseColor resolves the color mode against whether the output is a terminal
func (cfg *Config) UseColor(isTerminal bool) bool {
	switch cfg.Color {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		return isTerminal
	}
}

// LogLevel is Debug when debugging is on, Info otherwise
func (cfg *Config) LogLevel() slog.Level {
	if cfg.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Options converts the configuration into front-end options
func (cfg *Config) Options() *context.CompilerOptions {
	return &context.CompilerOptions{
		Debug:    cfg.Debug,
		FailFast: cfg.FailFast,
	}
}
