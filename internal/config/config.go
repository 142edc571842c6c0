package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
)

const (
	APP_NAME             = "witness"
	CONFIG_FILE_NAME     = "config.yaml"
	CONFIG_FILE_RELPATH  = APP_NAME + "/" + CONFIG_FILE_NAME
	DEFAULT_MAX_DEPTH    = 256
	DEFAULT_LOG_LEVEL    = zerolog.InfoLevel
	MAX_CONFIG_FILE_SIZE = 1 << 16
)

var (
	ErrInvalidMaxDepth    = errors.New("max-depth should be greater than zero")
	ErrConfigFileTooLarge = errors.New("config file is too large")
)

// Config configures an execution context and the concretization done in it.
type Config struct {
	// Maximum nesting depth of the abstract values being concretized.
	MaxDepth int

	LogLevel zerolog.Level

	// If true a diagnostic identical to a previous one is not reported again.
	DeduplicateDiagnostics bool

	// If not empty only the log events of these sources (src field) are written,
	// events without a source are always written.
	LogSources []string
}

func Default() Config {
	return Config{
		MaxDepth: DEFAULT_MAX_DEPTH,
		LogLevel: DEFAULT_LOG_LEVEL,
	}
}

func (c Config) Validate() error {
	if c.MaxDepth <= 0 {
		return fmt.Errorf("%w, got %d", ErrInvalidMaxDepth, c.MaxDepth)
	}
	return nil
}

// fileConfig is the content of a configuration file, absent keys keep their default value.
type fileConfig struct {
	MaxDepth               *int     `yaml:"max-depth"`
	LogLevel               *string  `yaml:"log-level"`
	DeduplicateDiagnostics *bool    `yaml:"deduplicate-diagnostics"`
	LogSources             []string `yaml:"log-sources"`
}

// Parse parses the YAML content of a configuration file.
func Parse(content []byte) (Config, error) {
	config := Default()

	var file fileConfig
	if err := yaml.UnmarshalWithOptions(content, &file, yaml.DisallowUnknownField()); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}

	if file.MaxDepth != nil {
		config.MaxDepth = *file.MaxDepth
	}

	if file.LogLevel != nil {
		level, err := zerolog.ParseLevel(*file.LogLevel)
		if err != nil {
			return Config{}, fmt.Errorf("invalid configuration: %w", err)
		}
		config.LogLevel = level
	}

	if file.DeduplicateDiagnostics != nil {
		config.DeduplicateDiagnostics = *file.DeduplicateDiagnostics
	}

	if len(file.LogSources) != 0 {
		config.LogSources = file.LogSources
	}

	if err := config.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return config, nil
}

// Load reads and parses the configuration file at path.
func Load(path string) (Config, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Config{}, err
	}
	if info.Size() > MAX_CONFIG_FILE_SIZE {
		return Config{}, fmt.Errorf("%w: %s", ErrConfigFileTooLarge, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	return Parse(content)
}

// Find searches for the configuration file in the XDG configuration directories, the default
// configuration is returned if there is no such file. Environment overrides are applied in both cases.
func Find() (Config, error) {
	config := Default()

	path, err := xdg.SearchConfigFile(CONFIG_FILE_RELPATH)
	if err == nil {
		config, err = Load(path)
		if err != nil {
			return Config{}, err
		}
	}

	return ApplyEnvironment(config, os.LookupEnv)
}
