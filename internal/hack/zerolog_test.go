package hack

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestSetLoggerStringField(t *testing.T) {
	t.Run("replace the value of an existing field", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		logger := zerolog.New(buf).With().Str("src", "realm").Logger()
		logger = SetLoggerStringField(logger, "src", "concretize")

		logger.Info().Msg("synthesized function")
		assert.Equal(t, `{"level":"info","src":"concretize","message":"synthesized function"}`+"\n", buf.String())

		buf.Reset()
		child := logger.With().Int("depth", 2).Logger()
		child.Info().Send()
		assert.Equal(t, `{"level":"info","src":"concretize","depth":2}`+"\n", buf.String())
	})

	t.Run("add a missing field", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		logger := zerolog.New(buf).With().Str("realm", "r1").Logger()
		logger = SetLoggerStringField(logger, "src", "concretize")

		logger.Info().Send()
		assert.Equal(t, `{"level":"info","realm":"r1","src":"concretize"}`+"\n", buf.String())
	})

	t.Run("a value equal to the key is not mistaken for the key", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		logger := zerolog.New(buf).With().Str("x", "src").Str("src", "realm").Logger()
		logger = SetLoggerStringField(logger, "src", "concretize")

		logger.Info().Send()
		assert.Equal(t, `{"level":"info","x":"src","src":"concretize"}`+"\n", buf.String())
	})

	t.Run("escaped quotes", func(t *testing.T) {
		buf := bytes.NewBuffer(nil)
		logger := zerolog.New(buf).With().Str(`"src"`, `a"b`).Logger()
		logger = SetLoggerStringField(logger, `"src"`, `c"d`)

		logger.Info().Send()
		assert.Equal(t, `{"level":"info","\"src\"":"c\"d"}`+"\n", buf.String())
	})

	t.Run("non-string value", func(t *testing.T) {
		logger := zerolog.New(bytes.NewBuffer(nil)).With().Int("src", 1).Logger()
		assert.Panics(t, func() {
			SetLoggerStringField(logger, "src", "concretize")
		})
	})
}

func TestLogEventStringField(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	var sources []string

	logger := zerolog.New(buf).Hook(zerolog.HookFunc(func(e *zerolog.Event, level zerolog.Level, message string) {
		src, ok := LogEventStringField(e, "src")
		if ok {
			sources = append(sources, src)
		}
	}))

	logger.Debug().Str("src", "concretize").Send()
	logger.Debug().Str("x", "src").Str("src", "realm").Msg("hello")
	logger.Debug().Str("x", "src").Msg("hello")

	assert.Equal(t, []string{"concretize", "realm"}, sources)
}
