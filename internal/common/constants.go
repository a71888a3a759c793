// Package common provides shared constants and errors for internal packages.
// These values must match the public API in the mdgrid package.
package common

import "errors"

// Configuration defaults
const (
	// DefaultTargetWidth is the total inner width a table grows to when
	// nothing else is configured
	DefaultTargetWidth = 90
	// DefaultFixedMargin is the extra room given to each fixed column on top
	// of its widest single-line content
	DefaultFixedMargin = 2
)

// Grid geometry
const (
	// CellPadding is the number of spaces around cell content (one each side)
	CellPadding = 2
	// MinColumnWidth is the narrowest rendered column: one character plus padding
	MinColumnWidth = 3
	// MinFenceLength is the shortest run of backticks or tildes that opens a fence
	MinFenceLength = 3
)

// Common errors (must match public API in mdgrid package)
var (
	// ErrInvalidConfig is returned when a configuration value is out of range
	ErrInvalidConfig = errors.New("invalid config")
	// ErrNotMarkdown is returned when a path does not name a Markdown file
	ErrNotMarkdown = errors.New("not a markdown file")
)
