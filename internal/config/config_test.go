package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Run("empty file", func(t *testing.T) {
		config, err := Parse(nil)
		require.NoError(t, err)
		assert.Equal(t, Default(), config)
	})

	t.Run("all keys", func(t *testing.T) {
		config, err := Parse([]byte("max-depth: 10\nlog-level: debug\ndeduplicate-diagnostics: true\nlog-sources: [concretize]\n"))
		require.NoError(t, err)
		assert.Equal(t, Config{
			MaxDepth:               10,
			LogLevel:               zerolog.DebugLevel,
			DeduplicateDiagnostics: true,
			LogSources:             []string{"concretize"},
		}, config)
	})

	t.Run("missing keys keep their default value", func(t *testing.T) {
		config, err := Parse([]byte("log-level: warn\n"))
		require.NoError(t, err)
		assert.Equal(t, DEFAULT_MAX_DEPTH, config.MaxDepth)
		assert.Equal(t, zerolog.WarnLevel, config.LogLevel)
		assert.False(t, config.DeduplicateDiagnostics)
	})

	t.Run("invalid log level", func(t *testing.T) {
		_, err := Parse([]byte("log-level: loud\n"))
		assert.Error(t, err)
	})

	t.Run("invalid max depth", func(t *testing.T) {
		_, err := Parse([]byte("max-depth: 0\n"))
		assert.ErrorIs(t, err, ErrInvalidMaxDepth)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := Parse([]byte("max-dept: 3\n"))
		assert.Error(t, err)
	})
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	t.Run("existing file", func(t *testing.T) {
		path := filepath.Join(dir, CONFIG_FILE_NAME)
		require.NoError(t, os.WriteFile(path, []byte("max-depth: 3\n"), 0o600))

		config, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 3, config.MaxDepth)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(dir, "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("file too large", func(t *testing.T) {
		path := filepath.Join(dir, "large.yaml")
		content := "#" + strings.Repeat("a", MAX_CONFIG_FILE_SIZE) + "\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		_, err := Load(path)
		assert.ErrorIs(t, err, ErrConfigFileTooLarge)
	})
}

func TestApplyEnvironment(t *testing.T) {
	env := func(vars map[string]string) func(string) (string, bool) {
		return func(name string) (string, bool) {
			v, ok := vars[name]
			return v, ok
		}
	}

	t.Run("no variables", func(t *testing.T) {
		config, err := ApplyEnvironment(Default(), env(nil))
		require.NoError(t, err)
		assert.Equal(t, Default(), config)
	})

	t.Run("overrides", func(t *testing.T) {
		config, err := ApplyEnvironment(Default(), env(map[string]string{
			MAX_DEPTH_ENV_VAR:   "12",
			LOG_LEVEL_ENV_VAR:   "error",
			DEDUP_ENV_VAR:       "1",
			LOG_SOURCES_ENV_VAR: "concretize, diagnostics,",
		}))
		require.NoError(t, err)
		assert.Equal(t, Config{
			MaxDepth:               12,
			LogLevel:               zerolog.ErrorLevel,
			DeduplicateDiagnostics: true,
			LogSources:             []string{"concretize", "diagnostics"},
		}, config)
	})

	t.Run("empty source list", func(t *testing.T) {
		config := Default()
		config.LogSources = []string{"concretize"}

		config, err := ApplyEnvironment(config, env(map[string]string{LOG_SOURCES_ENV_VAR: ""}))
		require.NoError(t, err)
		assert.Empty(t, config.LogSources)
	})

	t.Run("disabled deduplication", func(t *testing.T) {
		config := Default()
		config.DeduplicateDiagnostics = true

		config, err := ApplyEnvironment(config, env(map[string]string{DEDUP_ENV_VAR: "false"}))
		require.NoError(t, err)
		assert.False(t, config.DeduplicateDiagnostics)
	})

	t.Run("invalid depth", func(t *testing.T) {
		_, err := ApplyEnvironment(Default(), env(map[string]string{MAX_DEPTH_ENV_VAR: "x"}))
		assert.Error(t, err)

		_, err = ApplyEnvironment(Default(), env(map[string]string{MAX_DEPTH_ENV_VAR: "-1"}))
		assert.ErrorIs(t, err, ErrInvalidMaxDepth)
	})
}

func TestFind(t *testing.T) {
	//reload the XDG directories once the environment is restored
	t.Cleanup(xdg.Reload)

	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_CONFIG_DIRS", t.TempDir())
	xdg.Reload()

	t.Run("no file", func(t *testing.T) {
		config, err := Find()
		require.NoError(t, err)
		assert.Equal(t, DEFAULT_MAX_DEPTH, config.MaxDepth)
	})

	t.Run("file in config home", func(t *testing.T) {
		require.NoError(t, os.MkdirAll(filepath.Join(configHome, APP_NAME), 0o700))
		path := filepath.Join(configHome, CONFIG_FILE_RELPATH)
		require.NoError(t, os.WriteFile(path, []byte("max-depth: 7\n"), 0o600))

		config, err := Find()
		require.NoError(t, err)
		assert.Equal(t, 7, config.MaxDepth)
	})
}
