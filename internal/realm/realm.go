package realm

import (
	"fmt"

	"github.com/inoxlang/witness/internal/config"
	"github.com/inoxlang/witness/internal/diagnostic"
	"github.com/inoxlang/witness/internal/ordertag"
	"github.com/inoxlang/witness/internal/sourcecode"
	"github.com/inoxlang/witness/internal/utils"
	"github.com/inoxlang/witness/internal/value"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
)

// A Realm is the execution context of a compilation: it owns the intrinsic values, the diagnostic
// sink and the ordering-tag source. A Realm is not meant to be used by several goroutines at once
// except for reporting diagnostics and drawing tags.
type Realm struct {
	id         ulid.ULID
	intrinsics Intrinsics
	sink       diagnostic.Sink
	tags       *ordertag.Source
	logger     zerolog.Logger
	config     config.Config
}

// Intrinsics are the values that exist once per realm.
type Intrinsics struct {
	Undefined         *value.Undefined
	Null              *value.Null
	ObjectPrototype   *value.Object
	FunctionPrototype *value.Object
	ArrayPrototype    *value.Object
}

type Options struct {
	// Defaults to a diagnostic.Collector configured from Config.
	Sink diagnostic.Sink

	// Defaults to a disabled logger. The level of the logger is set from Config.
	Logger *zerolog.Logger

	// Defaults to config.Default(), or to the result of config.Find() if FindConfig is true.
	Config *config.Config

	// If true and Config is nil, the configuration file is searched in the XDG configuration
	// directories and the WITNESS_* environment variables are applied.
	FindConfig bool

	// Defaults to a new source, a source can be shared by several realms.
	TagSource *ordertag.Source
}

func New(opts Options) (*Realm, error) {
	cfg := config.Default()
	switch {
	case opts.Config != nil:
		cfg = *opts.Config
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	case opts.FindConfig:
		found, err := config.Find()
		if err != nil {
			return nil, fmt.Errorf("failed to find the configuration: %w", err)
		}
		cfg = found
	}

	id := ulid.Make()

	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = opts.Logger.Level(cfg.LogLevel)
		if len(cfg.LogSources) != 0 {
			logger = logger.Hook(newSourceFilter(cfg.LogSources))
		}
		logger = logger.With().Str(REALM_LOG_FIELD_NAME, id.String()).Logger()
	}

	sink := opts.Sink
	if sink == nil {
		collectorLogger := ChildLoggerForSource(logger, "diagnostics")
		sink = diagnostic.NewCollector(diagnostic.CollectorConfig{
			Deduplicate: cfg.DeduplicateDiagnostics,
			Logger:      &collectorLogger,
		})
	}

	tags := opts.TagSource
	if tags == nil {
		tags = ordertag.NewSource()
	}

	objectPrototype := value.NewObject(nil)

	return &Realm{
		id: id,
		intrinsics: Intrinsics{
			Undefined:         value.NewUndefined(),
			Null:              value.NewNull(),
			ObjectPrototype:   objectPrototype,
			FunctionPrototype: value.NewObject(objectPrototype),
			ArrayPrototype:    value.NewObject(objectPrototype),
		},
		sink:   sink,
		tags:   tags,
		logger: logger,
		config: cfg,
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(opts Options) *Realm {
	return utils.Must(New(opts))
}

func (r *Realm) ID() ulid.ULID {
	return r.id
}

func (r *Realm) Intrinsics() Intrinsics {
	return r.intrinsics
}

func (r *Realm) Undefined() *value.Undefined {
	return r.intrinsics.Undefined
}

func (r *Realm) Null() *value.Null {
	return r.intrinsics.Null
}

func (r *Realm) Config() config.Config {
	return r.config
}

func (r *Realm) Logger() zerolog.Logger {
	return r.logger
}

func (r *Realm) Sink() diagnostic.Sink {
	return r.sink
}

// Collector returns the sink of the realm if it is a diagnostic.Collector.
func (r *Realm) Collector() (*diagnostic.Collector, bool) {
	collector, ok := r.sink.(*diagnostic.Collector)
	return collector, ok
}

func (r *Realm) TagSource() *ordertag.Source {
	return r.tags
}

// NextFunctionBodyTag draws a new tag from the ordering-tag source, it should be called
// once per synthesized function body.
func (r *Realm) NextFunctionBodyTag() int64 {
	return r.tags.Next()
}

// ReportCompileError reports a recoverable diagnostic and returns immediately, loc can be nil.
func (r *Realm) ReportCompileError(code diagnostic.Code, message string, loc *sourcecode.PositionRange) {
	r.sink.ReportCompileError(diagnostic.NewRecoverable(code, message, loc))
}

func (r *Realm) NewBoolean(b bool) *value.Boolean {
	return value.NewBoolean(b)
}

func (r *Realm) NewNumber(f float64) *value.Number {
	return value.NewNumber(f)
}

func (r *Realm) NewString(s string) *value.String {
	return value.NewString(s)
}

func (r *Realm) NewSymbol(description *value.String) *value.Symbol {
	return value.NewSymbol(description)
}

// NewObject creates an object with no own properties, the prototype defaults to the
// Object prototype of the realm if proto is nil.
func (r *Realm) NewObject(proto *value.Object) *value.Object {
	if proto == nil {
		proto = r.intrinsics.ObjectPrototype
	}
	return value.NewObject(proto)
}

// NewObjectWithPrototype creates an object with no own properties and exactly the given
// prototype, nil included.
func (r *Realm) NewObjectWithPrototype(proto *value.Object) *value.Object {
	return value.NewObject(proto)
}

func (r *Realm) NewArray() *value.Array {
	return value.NewArray(r.intrinsics.ArrayPrototype)
}

func (r *Realm) NewFunction(parameters []string, body *value.FunctionBody) *value.Function {
	return value.NewFunction(r.intrinsics.FunctionPrototype, parameters, body)
}
