package authoring

import (
	"strconv"
	"sync/atomic"
)

// IDGenerator hands out identifiers for blanks, options, inputs and
// group questions. Integer ids must increase monotonically.
type IDGenerator interface {
	NextInt() int64
	NextString() string
}

// Counter is a monotonic IDGenerator. A draft persists Current() so ids
// stay unique across requests.
type Counter struct {
	last atomic.Int64
}

// NewCounter returns a counter whose first id is start+1.
func NewCounter(start int64) *Counter {
	c := &Counter{}
	c.last.Store(start)
	return c
}

func (c *Counter) NextInt() int64 {
	return c.last.Add(1)
}

func (c *Counter) NextString() string {
	return strconv.FormatInt(c.NextInt(), 10)
}

// Current returns the last id handed out.
func (c *Counter) Current() int64 {
	return c.last.Load()
}
