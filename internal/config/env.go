package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/inoxlang/witness/internal/utils"
	"github.com/rs/zerolog"
)

const (
	MAX_DEPTH_ENV_VAR   = "WITNESS_MAX_DEPTH"
	LOG_LEVEL_ENV_VAR   = "WITNESS_LOG_LEVEL"
	DEDUP_ENV_VAR       = "WITNESS_DEDUPLICATE_DIAGNOSTICS"
	LOG_SOURCES_ENV_VAR = "WITNESS_LOG_SOURCES" //comma-separated
)

// ApplyEnvironment overrides the fields of config for which an environment variable is set.
// lookup is usually os.LookupEnv.
func ApplyEnvironment(config Config, lookup func(string) (string, bool)) (Config, error) {
	if s, ok := lookup(MAX_DEPTH_ENV_VAR); ok {
		depth, err := strconv.Atoi(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", MAX_DEPTH_ENV_VAR, err)
		}
		config.MaxDepth = depth
	}

	if s, ok := lookup(LOG_LEVEL_ENV_VAR); ok {
		level, err := zerolog.ParseLevel(s)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", LOG_LEVEL_ENV_VAR, err)
		}
		config.LogLevel = level
	}

	if s, ok := lookup(DEDUP_ENV_VAR); ok {
		config.DeduplicateDiagnostics = len(s) != 0 && s != "false" && s != "0"
	}

	if s, ok := lookup(LOG_SOURCES_ENV_VAR); ok {
		sources := utils.MapSlice(strings.Split(s, ","), strings.TrimSpace)
		config.LogSources = utils.FilterSlice(sources, func(src string) bool {
			return src != ""
		})
	}

	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}
