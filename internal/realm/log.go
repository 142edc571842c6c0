package realm

import (
	"time"

	"github.com/inoxlang/witness/internal/hack"
	"github.com/rs/zerolog"
)

const (
	SOURCE_LOG_FIELD_NAME = "src"
	REALM_LOG_FIELD_NAME  = "realm"
)

func init() {
	zerolog.DurationFieldInteger = false
	zerolog.DurationFieldUnit = time.Millisecond
	zerolog.MessageFieldName = "msg"
	zerolog.LevelFieldName = "lvl"
	zerolog.TimestampFieldName = "tm"
}

// ChildLoggerForSource returns a copy of logger whose src field is src.
func ChildLoggerForSource(logger zerolog.Logger, src string) zerolog.Logger {
	logger = logger.With().Logger() //copy the logger
	return hack.SetLoggerStringField(logger, SOURCE_LOG_FIELD_NAME, src)
}

// sourceFilter is a hook discarding the events whose src field is not an enabled source,
// events without a src field are kept.
type sourceFilter struct {
	enabled map[string]struct{}
}

func newSourceFilter(sources []string) sourceFilter {
	filter := sourceFilter{enabled: make(map[string]struct{}, len(sources))}
	for _, src := range sources {
		filter.enabled[src] = struct{}{}
	}
	return filter
}

func (f sourceFilter) Run(e *zerolog.Event, level zerolog.Level, msg string) {
	src, ok := hack.LogEventStringField(e, SOURCE_LOG_FIELD_NAME)
	if !ok {
		return
	}
	if _, enabled := f.enabled[src]; !enabled {
		e.Discard()
	}
}
