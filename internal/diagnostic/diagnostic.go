package diagnostic

import (
	"errors"
	"fmt"
	"strings"

	"github.com/inoxlang/witness/internal/sourcecode"
)

const (
	// UNSUPPORTED_CONCRETE_MODEL is reported when no concrete model can be emitted for an abstract value.
	UNSUPPORTED_CONCRETE_MODEL Code = "PP0034"
)

var (
	ErrUnknownSeverity = errors.New("unknown severity")

	_ sourcecode.LocatedError = Diagnostic{}
)

// A Code identifies a kind of diagnostic, it stays the same across releases.
type Code string

type Severity uint8

const (
	Information Severity = iota + 1
	Warning
	// RecoverableError is the severity of errors that do not abort the compilation.
	RecoverableError
	FatalError
)

var severityNames = map[Severity]string{
	Information:      "information",
	Warning:          "warning",
	RecoverableError: "recoverable-error",
	FatalError:       "fatal-error",
}

func (s Severity) String() string {
	name, ok := severityNames[s]
	if !ok {
		return fmt.Sprintf("severity(%d)", s)
	}
	return name
}

func (s Severity) IsError() bool {
	return s == RecoverableError || s == FatalError
}

func (s Severity) MarshalText() ([]byte, error) {
	name, ok := severityNames[s]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSeverity, s)
	}
	return []byte(name), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	for severity, name := range severityNames {
		if name == string(text) {
			*s = severity
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrUnknownSeverity, text)
}

// A Diagnostic is a compilation issue reported against a compilation context.
type Diagnostic struct {
	Code     Code                      `json:"code"`
	Severity Severity                  `json:"severity"`
	Message  string                    `json:"message"`
	Location *sourcecode.PositionRange `json:"location,omitempty"`
}

// NewRecoverable creates a diagnostic with the RecoverableError severity, loc can be nil.
func NewRecoverable(code Code, message string, loc *sourcecode.PositionRange) Diagnostic {
	return Diagnostic{
		Code:     code,
		Severity: RecoverableError,
		Message:  message,
		Location: loc,
	}
}

func (d Diagnostic) Error() string {
	return d.LocatedMessage()
}

// LocatedMessage returns the message prefixed by the location and suffixed by the code,
// e.g. "/main.js:1:5: message (PP0034)".
func (d Diagnostic) LocatedMessage() string {
	buf := &strings.Builder{}
	if d.Location != nil {
		buf.WriteString(d.Location.String())
		buf.WriteByte(' ')
	}
	buf.WriteString(d.Message)
	if d.Code != "" {
		buf.WriteString(" (")
		buf.WriteString(string(d.Code))
		buf.WriteByte(')')
	}
	return buf.String()
}

func (d Diagnostic) MessageWithoutLocation() string {
	return d.Message
}

func (d Diagnostic) LocationRange() (sourcecode.PositionRange, bool) {
	if d.Location == nil {
		return sourcecode.PositionRange{}, false
	}
	return *d.Location, true
}
