package debug

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Sink is the interface for debug output destinations.
type Sink interface {
	Write(event Event) error
	Flush() error
	Close() error
}

// JSONSink writes events in JSON Lines format.
type JSONSink struct {
	w       *bufio.Writer
	encoder *json.Encoder
}

// NewJSONSink creates a new JSON Lines sink writing to w.
func NewJSONSink(w io.Writer) *JSONSink {
	bw := bufio.NewWriter(w)
	enc := json.NewEncoder(bw)
	// Cell text and indents are easier to read unescaped
	enc.SetEscapeHTML(false)
	return &JSONSink{
		w:       bw,
		encoder: enc,
	}
}

// Write encodes and writes an event as a JSON line.
func (s *JSONSink) Write(event Event) error {
	return s.encoder.Encode(event)
}

// Flush writes any buffered data to the underlying writer.
func (s *JSONSink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *JSONSink) Close() error {
	return s.Flush()
}

// PrettySink writes events in human-readable format.
type PrettySink struct {
	w *bufio.Writer
}

// NewPrettySink creates a new pretty-format sink writing to w.
func NewPrettySink(w io.Writer) *PrettySink {
	return &PrettySink{
		w: bufio.NewWriter(w),
	}
}

// Write formats and writes an event in human-readable format.
func (s *PrettySink) Write(event Event) error {
	// Format: [timestamp] [phase/event] session=id document
	fmt.Fprintf(s.w, "[%s] [%s/%s] session=%s", event.Timestamp, event.Phase, event.Event, event.SessionID)
	if event.Document != "" {
		fmt.Fprintf(s.w, " document=%s", event.Document)
	}
	fmt.Fprintln(s.w)

	switch d := event.Data.(type) {
	case ScanStartData:
		fmt.Fprintf(s.w, "  lines: %d, crlf: %t, trailing_newline: %t\n", d.Lines, d.CRLF, d.TrailingNewline)
	case ScanEndData:
		fmt.Fprintf(s.w, "  tables: %d, changed: %t, elapsed_us: %d\n", d.Tables, d.Changed, d.ElapsedUs)
	case FenceData:
		fmt.Fprintf(s.w, "  line: %d, marker: %s x%d\n", d.Line+1, d.Marker, d.Length)
	case GridData:
		fmt.Fprintf(s.w, "  line: %d, lines: %d\n", d.Line+1, d.Lines)
	case TableDetectedData:
		s.writeTableDetected(d)
	case AllocData:
		s.writeAlloc(d)
	case TableRenderedData:
		fmt.Fprintf(s.w, "  line: %d, lines: %d → %d, changed: %t\n",
			d.Line+1, d.SourceLines, d.OutputLines, d.Changed)
	case map[string]interface{}:
		s.writeMap(d)
	case map[string]int64:
		for k, v := range d {
			fmt.Fprintf(s.w, "  %s: %d\n", k, v)
		}
	default:
		fmt.Fprintf(s.w, "  data: %+v\n", d)
	}

	return nil
}

func (s *PrettySink) writeTableDetected(d TableDetectedData) {
	fmt.Fprintf(s.w, "  line: %d, columns: %d, body_rows: %d\n", d.Line+1, d.Columns, d.BodyRows)
	if d.Indent != "" {
		fmt.Fprintf(s.w, "  indent: %q\n", d.Indent)
	}
	fmt.Fprintf(s.w, "  columns: %s\n", strings.Join(ClassifyColumns(d.Weights), " "))
}

func (s *PrettySink) writeAlloc(d AllocData) {
	fmt.Fprintf(s.w, "  target: %d (effective %d, flexible %d), margin: %d\n",
		d.TargetWidth, d.EffectiveTarget, d.FlexTarget, d.FixedMargin)
	for i := range d.Inner {
		fmt.Fprintf(s.w, "  col %d: %-8s content=%d header=%d → inner=%d\n",
			i, d.Classes[i], d.ContentMins[i], d.HeaderMins[i], d.Inner[i])
	}
}

// writeMap prints map payloads with sorted keys so output is stable.
func (s *PrettySink) writeMap(d map[string]interface{}) {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(s.w, "  %s: %v\n", k, d[k])
	}
}

// Flush writes any buffered data to the underlying writer.
func (s *PrettySink) Flush() error {
	return s.w.Flush()
}

// Close flushes the buffer.
func (s *PrettySink) Close() error {
	return s.Flush()
}
