package scanner

import "strings"

// Document is a text split into lines, remembering how to put it back together.
type Document struct {
	// Lines holds the document lines without terminators
	Lines []string

	// CRLF is set when the document uses \r\n line endings anywhere
	CRLF bool

	// TrailingNewline is set when the document ends with a line terminator
	TrailingNewline bool
}

// SplitDocument breaks content into lines.
// A document containing any \r\n is treated as CRLF throughout.
func SplitDocument(content string) Document {
	doc := Document{
		CRLF:            strings.Contains(content, "\r\n"),
		TrailingNewline: strings.HasSuffix(content, "\n"),
	}

	body := content
	if doc.TrailingNewline {
		body = strings.TrimSuffix(body, "\n")
		if doc.CRLF {
			body = strings.TrimSuffix(body, "\r")
		}
	}

	doc.Lines = strings.Split(body, "\n")
	if doc.CRLF {
		for i, line := range doc.Lines {
			doc.Lines[i] = strings.TrimSuffix(line, "\r")
		}
	}
	return doc
}

// EOL returns the line terminator of the document.
func (d Document) EOL() string {
	if d.CRLF {
		return "\r\n"
	}
	return "\n"
}

// Join assembles lines using the document's line ending and trailing newline.
func (d Document) Join(lines []string) string {
	eol := d.EOL()
	out := strings.Join(lines, eol)
	if d.TrailingNewline {
		out += eol
	}
	return out
}
