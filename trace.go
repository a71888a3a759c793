package mdgrid

import (
	"io"

	"github.com/ryanlewis/mdgrid/internal/debug"
)

// Tracer writes debug events from one or more conversions to a single
// destination. A Tracer may be shared by concurrent Convert calls; events
// from different documents carry their own session id.
type Tracer struct {
	sink debug.Sink
}

// NewTracer returns a Tracer writing JSON Lines to w, or a human-readable
// listing when pretty is set. Creating a Tracer switches debug mode on for
// the process.
func NewTracer(w io.Writer, pretty bool) *Tracer {
	debug.SetEnabled(true)

	var sink debug.Sink
	if pretty {
		sink = debug.NewPrettySink(w)
	} else {
		sink = debug.NewJSONSink(w)
	}
	return &Tracer{sink: debug.NewSharedSink(sink)}
}

// Close flushes buffered events. It does not close the underlying writer.
func (t *Tracer) Close() error {
	if t == nil {
		return nil
	}
	return t.sink.Close()
}

func (t *Tracer) session(document string) *debug.Session {
	if t == nil {
		return nil
	}
	return debug.NewSession(t.sink, document)
}

// WithTracer traces the conversion into t, labelling its events with
// document. A nil Tracer disables tracing.
func WithTracer(t *Tracer, document string) Option {
	return func(opts *options) {
		opts.tracer = t
		opts.document = document
	}
}
