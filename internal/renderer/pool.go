package renderer

import (
	"bytes"
	"sync"
)

// Buffer retention threshold - builders that grew past this while drawing an
// unusually wide table are dropped instead of being returned to the pool
const maxRetainLineBuffer = 4096

// lineBuilderPool manages the builders used to assemble output lines.
//
// A conversion of a large document draws many tables, each emitting a border
// and one or more physical lines per row; reusing builders keeps line
// assembly from allocating a fresh buffer per line.
var lineBuilderPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, 128))
	},
}

// acquireBuilder gets an empty buffer from the pool.
func acquireBuilder() *bytes.Buffer {
	b := lineBuilderPool.Get().(*bytes.Buffer)
	b.Reset()
	return b
}

// releaseBuilder returns a builder to the pool.
// Builders that grew past maxRetainLineBuffer are left for the garbage collector.
func releaseBuilder(b *bytes.Buffer) {
	if b == nil || b.Cap() > maxRetainLineBuffer {
		return
	}
	lineBuilderPool.Put(b)
}
