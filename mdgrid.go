// Package mdgrid rewrites Markdown pipe tables as grid tables.
//
// Grid tables draw every cell in a box:
//
//	+------+------------------+
//	| ID   | Name             |
//	+======+==================+
//	| A1   | 山田太郎         |
//	+------+------------------+
//
// Column widths are measured in terminal display cells, so East Asian wide
// and fullwidth characters count as two. The dash count of each alignment
// cell doubles as a width weight: a single dash marks a fixed column sized to
// its content, two or more dashes mark a flexible column that shares the
// remaining width in proportion to its dash count.
//
// Text inside fenced code blocks is never touched, and a document without
// any pipe tables comes back unchanged.
package mdgrid

import (
	"github.com/ryanlewis/mdgrid/internal/debug"
	"github.com/ryanlewis/mdgrid/internal/layout"
	"github.com/ryanlewis/mdgrid/internal/scanner"
	"github.com/ryanlewis/mdgrid/internal/width"
)

// Result is the outcome of converting one document.
type Result struct {
	// Content is the converted document. When Changed is false it is the
	// input, byte for byte.
	Content string

	// Changed reports whether any table rendered differently from its source
	Changed bool

	// Tables is the number of pipe-table blocks found outside code fences
	Tables int
}

// Convert rewrites every pipe table in content as a grid table.
// It is safe for concurrent use; conversions share no state.
//
// Example:
//
//	res := mdgrid.Convert(doc, mdgrid.WithTargetWidth(80))
//	if res.Changed {
//	    os.WriteFile("README.md", []byte(res.Content), 0o644)
//	}
func Convert(content string, opts ...Option) Result {
	options := defaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	session := options.tracer.session(options.document)
	defer session.End()

	doc := scanner.SplitDocument(content)
	session.Emit("scan", "Start", debug.ScanStartData{
		Lines:           len(doc.Lines),
		CRLF:            doc.CRLF,
		TrailingNewline: doc.TrailingNewline,
	})

	res := scanner.Scan(doc.Lines, scanner.Options{
		Params: options.config.params(),
		Debug:  session,
	})

	if !res.Changed {
		return Result{Content: content, Tables: res.Tables}
	}
	return Result{
		Content: doc.Join(res.Lines),
		Changed: true,
		Tables:  res.Tables,
	}
}

// DisplayWidth returns the number of terminal cells s occupies, counting East
// Asian wide and fullwidth characters as two.
func DisplayWidth(s string) int {
	return width.String(s)
}

// Option configures a single Convert call.
type Option func(*options)

type options struct {
	config   Config
	tracer   *Tracer
	document string
}

func defaultOptions() *options {
	return &options{config: DefaultConfig()}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(opts *options) {
		opts.config = cfg
	}
}

// WithTargetWidth sets the total inner width tables grow to.
// Values of 0 or below fall back to the default of 90.
func WithTargetWidth(w int) Option {
	return func(opts *options) {
		if w <= 0 {
			w = DefaultTargetWidth
		}
		opts.config.TargetWidth = w
	}
}

// WithFixedMargin sets the extra width given to single-dash columns.
// Negative values fall back to the default of 2.
func WithFixedMargin(m int) Option {
	return func(opts *options) {
		if m < 0 {
			m = DefaultFixedMargin
		}
		opts.config.FixedMargin = m
	}
}

func (c Config) params() layout.Params {
	cfg := c.normalized()
	return layout.Params{
		TargetWidth: cfg.TargetWidth,
		FixedMargin: cfg.FixedMargin,
	}
}
