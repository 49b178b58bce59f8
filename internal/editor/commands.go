package editor

import (
	"fmt"
	"strings"
)

// Command is an instruction the core sends to the editing surface.
// The core only ever inserts text and sets block formatting.
type Command interface {
	fmt.Stringer
	apply(d *Document) error
}

// InsertText inserts Text at Index
type InsertText struct {
	Index int
	Text  string
}

func (c InsertText) apply(d *Document) error { return d.insert(c.Index, c.Text) }

func (c InsertText) String() string { return fmt.Sprintf("insert %d %q", c.Index, c.Text) }

// DeleteText removes Length characters starting at Index
type DeleteText struct {
	Index  int
	Length int
}

func (c DeleteText) apply(d *Document) error { return d.delete(c.Index, c.Length) }

func (c DeleteText) String() string { return fmt.Sprintf("delete %d+%d", c.Index, c.Length) }

// FormatLine sets the heading level (0 clears it) on every line touched by
// the range
type FormatLine struct {
	Index  int
	Length int
	Header int
}

func (c FormatLine) apply(d *Document) error { return d.formatLines(c.Index, c.Length, c.Header) }

func (c FormatLine) String() string {
	return fmt.Sprintf("format %d+%d header=%d", c.Index, c.Length, c.Header)
}

// InsertionPoint returns where inserted content goes: the selection start,
// or the end of the document (before the final newline) when unfocused
func InsertionPoint(c Content) int {
	if sel, ok := c.Selection(); ok {
		return sel.Index
	}
	return c.Length() - 1
}

// CitationMarker formats an inline citation marker for a source id
func CitationMarker(sourceID int) string {
	return fmt.Sprintf("[%d]", sourceID)
}

// InsertStatementCommands inserts a source statement followed by its
// citation marker and a line break
func InsertStatementCommands(text string, sourceID, at int) []Command {
	return []Command{
		InsertText{Index: at, Text: text + " " + CitationMarker(sourceID) + "\n"},
	}
}

// InsertCitationCommands inserts an inline citation marker
func InsertCitationCommands(sourceID, at int) []Command {
	return []Command{
		InsertText{Index: at, Text: " " + CitationMarker(sourceID)},
	}
}

// SectionPlaceholder is the prompt line inserted below a new section heading
func SectionPlaceholder(title string) string {
	return "Start adding " + strings.ToLower(title) + "…"
}

// InsertSectionCommands appends a level-2 heading and a placeholder line.
// If a line with the same title already exists, no commands are returned and
// caret is the start of the line below it (or the end of the document when
// it is the last line).
func InsertSectionCommands(d *Document, title string) (cmds []Command, caret int) {
	title = strings.TrimSpace(title)
	if title == "" {
		title = "New section"
	}

	if start := FindLine(d, title); start >= 0 {
		if next := d.LineStart(d.lineAt(start) + 1); next >= 0 {
			return nil, next
		}
		return nil, d.Length() - 1
	}

	index := d.Length() - 1
	if index > 0 && d.text[index-1] != '\n' {
		cmds = append(cmds, InsertText{Index: index, Text: "\n"})
		index++
	}

	placeholder := SectionPlaceholder(title)
	cmds = append(cmds,
		InsertText{Index: index, Text: title + "\n"},
		FormatLine{Index: index, Length: 0, Header: 2},
		InsertText{Index: index + len([]rune(title)) + 1, Text: placeholder},
	)
	caret = index + len([]rune(title)) + 1 + len([]rune(placeholder))
	return cmds, caret
}

// FindLine returns the start index of the first line whose trimmed text
// equals title (case-insensitive), or -1
func FindLine(c Content, title string) int {
	want := strings.ToLower(strings.TrimSpace(title))
	acc := 0
	for _, line := range strings.Split(c.Text(), "\n") {
		if strings.ToLower(strings.TrimSpace(line)) == want {
			return acc
		}
		acc += len([]rune(line)) + 1
	}
	return -1
}
