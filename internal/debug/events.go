package debug

// ScanStartData describes a document at the start of a conversion.
type ScanStartData struct {
	Lines           int  `json:"lines"`
	CRLF            bool `json:"crlf"`
	TrailingNewline bool `json:"trailing_newline"`
}

// ScanEndData summarizes a finished conversion.
type ScanEndData struct {
	Tables    int   `json:"tables"`
	Changed   bool  `json:"changed"`
	ElapsedUs int64 `json:"elapsed_us"`
}

// FenceData records a code fence opening or closing.
type FenceData struct {
	Line   int    `json:"line"`
	Marker string `json:"marker"`
	Length int    `json:"length"`
}

// TableDetectedData describes a pipe table found by the scanner.
type TableDetectedData struct {
	Line     int    `json:"line"`
	Columns  int    `json:"columns"`
	BodyRows int    `json:"body_rows"`
	Indent   string `json:"indent,omitempty"`
	Weights  []int  `json:"weights"`
}

// AllocData contains the column sizing decision for one table.
type AllocData struct {
	Line            int      `json:"line"`
	Weights         []int    `json:"weights"`
	Classes         []string `json:"classes"`
	ContentMins     []int    `json:"content_mins"`
	HeaderMins      []int    `json:"header_mins"`
	Inner           []int    `json:"inner"`
	TargetWidth     int      `json:"target_width"`
	FixedMargin     int      `json:"fixed_margin"`
	EffectiveTarget int      `json:"effective_target"`
	FlexTarget      int      `json:"flex_target"`
}

// TableRenderedData reports the grid table written for a pipe table.
type TableRenderedData struct {
	Line        int  `json:"line"`
	SourceLines int  `json:"source_lines"`
	OutputLines int  `json:"output_lines"`
	Changed     bool `json:"changed"`
}

// GridData records a grid table that was copied through unchanged.
type GridData struct {
	Line  int `json:"line"`
	Lines int `json:"lines"`
}
