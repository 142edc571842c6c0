package sourcecode

import "fmt"

// A NodeSpan is a rune range in a source chunk.
type NodeSpan struct {
	Start int32 `json:"start"` //0-indexed
	End   int32 `json:"end"`   //exclusive end, 0-indexed
}

// A PositionRange locates an expression in a named source, abstract values carry one
// when the engine that produced them knows where they come from.
type PositionRange struct {
	SourceName  string   `json:"sourceName"`
	StartLine   int32    `json:"line"`      //1-indexed
	StartColumn int32    `json:"column"`    //1-indexed
	EndLine     int32    `json:"endLine"`   //1-indexed
	EndColumn   int32    `json:"endColumn"` //1-indexed
	Span        NodeSpan `json:"span"`
}

func (pos PositionRange) String() string {
	return fmt.Sprintf("%s:%d:%d:", pos.SourceName, pos.StartLine, pos.StartColumn)
}

type LocatedError interface {
	error
	MessageWithoutLocation() string
	LocationRange() (PositionRange, bool)
}
