package diagnostic

import (
	"fmt"
	"io"
	"sync"

	json "github.com/goccy/go-json"
	"github.com/inoxlang/witness/internal/utils"
	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/rs/zerolog"
)

const (
	COMPILATION_FAILED_MSG = "compilation failed"
)

var (
	_ = []Sink{(*Collector)(nil), SinkFunc(nil)}
)

// A Sink records diagnostics. ReportCompileError returns immediately: it never panics
// and never unwinds the caller.
type Sink interface {
	ReportCompileError(d Diagnostic)
}

type SinkFunc func(d Diagnostic)

func (f SinkFunc) ReportCompileError(d Diagnostic) {
	f(d)
}

// A Collector is a Sink that stores the diagnostics in the order they are reported,
// it is safe for concurrent use.
type Collector struct {
	lock        sync.Mutex
	diagnostics []Diagnostic

	deduplicate bool
	seen        cmap.ConcurrentMap[string, struct{}] //located messages, only used if deduplicate is true

	logger zerolog.Logger
}

type CollectorConfig struct {
	// If true a diagnostic with the same located message as a previous one is ignored.
	Deduplicate bool

	// Defaults to a disabled logger.
	Logger *zerolog.Logger
}

func NewCollector(config CollectorConfig) *Collector {
	logger := zerolog.Nop()
	if config.Logger != nil {
		logger = *config.Logger
	}

	return &Collector{
		deduplicate: config.Deduplicate,
		seen:        cmap.New[struct{}](),
		logger:      logger,
	}
}

func (c *Collector) ReportCompileError(d Diagnostic) {
	if c.deduplicate && !c.seen.SetIfAbsent(d.LocatedMessage(), struct{}{}) {
		return
	}

	c.lock.Lock()
	c.diagnostics = append(c.diagnostics, d)
	c.lock.Unlock()

	c.logger.Debug().
		Str("code", string(d.Code)).
		Stringer("severity", d.Severity).
		Msg(d.LocatedMessage())
}

// Diagnostics returns a copy of the collected diagnostics.
func (c *Collector) Diagnostics() []Diagnostic {
	c.lock.Lock()
	defer c.lock.Unlock()

	return utils.CopySlice(c.diagnostics)
}

func (c *Collector) Len() int {
	c.lock.Lock()
	defer c.lock.Unlock()

	return len(c.diagnostics)
}

func (c *Collector) HasErrors() bool {
	c.lock.Lock()
	defer c.lock.Unlock()

	for _, d := range c.diagnostics {
		if d.Severity.IsError() {
			return true
		}
	}
	return false
}

func (c *Collector) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.diagnostics = nil
	c.seen.Clear()
}

// Err returns an error combining the messages of the error diagnostics, nil is returned
// if there are no such diagnostics.
func (c *Collector) Err() error {
	errDiagnostics := utils.FilterSlice(c.Diagnostics(), func(d Diagnostic) bool {
		return d.Severity.IsError()
	})

	errs := utils.MapSlice(errDiagnostics, func(d Diagnostic) error {
		return d
	})
	return utils.CombineErrorsWithPrefixMessage(COMPILATION_FAILED_MSG, errs...)
}

type jsonReport struct {
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// WriteJSON writes {"diagnostics": [...]} to w.
func (c *Collector) WriteJSON(w io.Writer) error {
	diagnostics := c.Diagnostics()
	if diagnostics == nil {
		diagnostics = []Diagnostic{}
	}

	if err := json.NewEncoder(w).Encode(jsonReport{Diagnostics: diagnostics}); err != nil {
		return fmt.Errorf("failed to write diagnostics: %w", err)
	}
	return nil
}
