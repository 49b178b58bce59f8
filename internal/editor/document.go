// Package editor models the rich-text editing surface the preflight core
// talks to: it exposes plain text, heading structure and selection, and
// accepts insert/format commands.
package editor

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// ErrOutOfRange is returned when a command addresses text outside the document
var ErrOutOfRange = errors.New("index out of range")

// Content is the read side of the editing surface consumed by the core
type Content interface {
	// Text returns the plain-text content, including the trailing newline.
	Text() string
	// HeadingCount returns the number of lines carrying a heading level.
	HeadingCount() int
	// Selection returns the current selection, if the editor has focus.
	Selection() (Range, bool)
	// Length returns the document length in characters.
	Length() int
}

// Range is a selection or formatting range, in characters
type Range struct {
	Index  int `json:"index" yaml:"index"`
	Length int `json:"length" yaml:"length"`
}

// Change describes one applied command. Listeners receive it after the
// document has been updated.
type Change struct {
	Command Command
	Length  int
}

// Document is an in-memory, line-oriented rich-text document.
//
// Like Quill, the text always ends with "\n" and block formats (the heading
// level) live on each line's terminating newline. A Document is owned by a
// single event loop and is not safe for concurrent use.
type Document struct {
	text      []rune
	headers   []int // heading level per line; len == number of "\n" in text
	selection *Range
	listeners []func(Change)
}

// NewDocument creates an empty document
func NewDocument() *Document {
	return &Document{
		text:    []rune{'\n'},
		headers: []int{0},
	}
}

// Line is a single line of the document, used to build or inspect documents
type Line struct {
	Text   string `json:"text" yaml:"text"`
	Header int    `json:"header,omitempty" yaml:"header,omitempty"`
}

// FromLines builds a document from lines. Newlines inside a line's text
// start new (unformatted) lines before it.
func FromLines(lines []Line) *Document {
	d := NewDocument()
	if len(lines) == 0 {
		return d
	}

	d.text = d.text[:0]
	d.headers = d.headers[:0]
	for _, l := range lines {
		parts := strings.Split(l.Text, "\n")
		for i, p := range parts {
			d.text = append(d.text, []rune(p)...)
			d.text = append(d.text, '\n')
			if i == len(parts)-1 {
				d.headers = append(d.headers, l.Header)
			} else {
				d.headers = append(d.headers, 0)
			}
		}
	}
	return d
}

// Text returns the plain-text content
func (d *Document) Text() string {
	return string(d.text)
}

// Length returns the document length in characters, including the final newline
func (d *Document) Length() int {
	return len(d.text)
}

// HeadingCount returns the number of heading lines
func (d *Document) HeadingCount() int {
	count := 0
	for _, h := range d.headers {
		if h > 0 {
			count++
		}
	}
	return count
}

// Lines returns a snapshot of the document lines
func (d *Document) Lines() []Line {
	lines := make([]Line, 0, len(d.headers))
	start := 0
	for i, r := range d.text {
		if r == '\n' {
			lines = append(lines, Line{Text: string(d.text[start:i]), Header: d.headers[len(lines)]})
			start = i + 1
		}
	}
	return lines
}

// Selection returns the current selection
func (d *Document) Selection() (Range, bool) {
	if d.selection == nil {
		return Range{}, false
	}
	return *d.selection, true
}

// SetSelection moves the caret or selection. It is clamped to the document.
func (d *Document) SetSelection(r Range) {
	r.Index = clamp(r.Index, 0, len(d.text)-1)
	r.Length = clamp(r.Length, 0, len(d.text)-1-r.Index)
	d.selection = &r
}

// Blur clears the selection, as when the editor loses focus
func (d *Document) Blur() {
	d.selection = nil
}

// OnChange registers a listener called after every applied command
func (d *Document) OnChange(fn func(Change)) {
	d.listeners = append(d.listeners, fn)
}

// Apply applies commands in order. It stops at the first invalid command;
// commands applied before it remain applied.
func (d *Document) Apply(cmds ...Command) error {
	for i, cmd := range cmds {
		if err := cmd.apply(d); err != nil {
			return fmt.Errorf("command %d (%s): %w", i, cmd, err)
		}
		change := Change{Command: cmd, Length: len(d.text)}
		for _, fn := range d.listeners {
			fn(change)
		}
	}
	return nil
}

// lineAt returns the line number containing index
func (d *Document) lineAt(index int) int {
	line := 0
	for _, r := range d.text[:index] {
		if r == '\n' {
			line++
		}
	}
	return line
}

// LineStart returns the index of the first character of the given line, or -1
func (d *Document) LineStart(line int) int {
	if line < 0 || line >= len(d.headers) {
		return -1
	}
	if line == 0 {
		return 0
	}
	seen := 0
	for i, r := range d.text {
		if r == '\n' {
			seen++
			if seen == line {
				return i + 1
			}
		}
	}
	return -1
}

func (d *Document) insert(index int, s string) error {
	// Inserting after the final newline is not allowed: the document must end with "\n"
	if index < 0 || index >= len(d.text) {
		return fmt.Errorf("%w: insert at %d (length %d)", ErrOutOfRange, index, len(d.text))
	}
	if s == "" {
		return nil
	}

	ins := []rune(s)
	line := d.lineAt(index)
	added := strings.Count(s, "\n")

	text := make([]rune, 0, len(d.text)+len(ins))
	text = append(text, d.text[:index]...)
	text = append(text, ins...)
	text = append(text, d.text[index:]...)
	d.text = text

	// New terminators are unformatted; the split line keeps its own terminator
	if added > 0 {
		headers := make([]int, 0, len(d.headers)+added)
		headers = append(headers, d.headers[:line]...)
		headers = append(headers, make([]int, added)...)
		headers = append(headers, d.headers[line:]...)
		d.headers = headers
	}

	d.shiftSelection(index, utf8.RuneCountInString(s))
	return nil
}

func (d *Document) delete(index, length int) error {
	// The final newline cannot be deleted
	if index < 0 || length < 0 || index+length > len(d.text)-1 {
		return fmt.Errorf("%w: delete %d+%d (length %d)", ErrOutOfRange, index, length, len(d.text))
	}
	if length == 0 {
		return nil
	}

	line := d.lineAt(index)
	removed := 0
	for _, r := range d.text[index : index+length] {
		if r == '\n' {
			removed++
		}
	}

	d.text = append(d.text[:index:index], d.text[index+length:]...)

	// Merged lines keep the format of the last terminator
	if removed > 0 {
		d.headers = append(d.headers[:line:line], d.headers[line+removed:]...)
	}

	d.shiftSelection(index, -length)
	return nil
}

func (d *Document) formatLines(index, length, header int) error {
	if index < 0 || length < 0 || index+length > len(d.text)-1 {
		return fmt.Errorf("%w: format %d+%d (length %d)", ErrOutOfRange, index, length, len(d.text))
	}
	if header < 0 || header > 6 {
		return fmt.Errorf("%w: heading level %d", ErrOutOfRange, header)
	}

	first := d.lineAt(index)
	last := d.lineAt(index + length)
	for line := first; line <= last && line < len(d.headers); line++ {
		d.headers[line] = header
	}
	return nil
}

func (d *Document) shiftSelection(at, delta int) {
	if d.selection == nil || d.selection.Index < at {
		return
	}
	d.selection.Index = clamp(d.selection.Index+delta, at, len(d.text)-1)
	d.selection.Length = clamp(d.selection.Length, 0, len(d.text)-1-d.selection.Index)
}

func clamp(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
