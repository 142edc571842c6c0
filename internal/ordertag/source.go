package ordertag

import "sync/atomic"

// A Source hands out strictly increasing tags, it is used to give the function bodies
// synthesized during compilation a stable position in the generated code.
// A Source is safe for concurrent use, its zero value starts at 0.
type Source struct {
	next atomic.Int64
}

func NewSource() *Source {
	return &Source{}
}

// NewSourceStartingAt creates a source whose first tag is first.
func NewSourceStartingAt(first int64) *Source {
	s := &Source{}
	s.next.Store(first)
	return s
}

// Next returns a new tag, it is greater than all tags previously returned by the source.
func (s *Source) Next() int64 {
	return s.next.Add(1) - 1
}

// Peek returns the tag the next call to Next will return.
func (s *Source) Peek() int64 {
	return s.next.Load()
}
