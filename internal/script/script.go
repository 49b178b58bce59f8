// Package script describes editing sessions as YAML event lists and replays
// them against a workspace.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidScript is returned for scripts that cannot be replayed
var ErrInvalidScript = errors.New("invalid script")

// Script is a recorded editing session
type Script struct {
	Name   string       `yaml:"name"`
	Expect *Expectation `yaml:"expect,omitempty"`
	Events []Event      `yaml:"events"`
}

// Expectation is the outcome a batch run checks the script against
type Expectation struct {
	MainEligible *bool `yaml:"main_eligible,omitempty" json:"main_eligible,omitempty"`
	Publishable  *bool `yaml:"publishable,omitempty" json:"publishable,omitempty"` // Publish enabled for the final destination
}

// Event is one UI action. Exactly one field is set.
type Event struct {
	AddSource       *string         `yaml:"add_source,omitempty"`
	Type            *string         `yaml:"type,omitempty"`
	Heading         *string         `yaml:"heading,omitempty"`
	Select          *Selection      `yaml:"select,omitempty"`
	Blur            bool            `yaml:"blur,omitempty"`
	InsertStatement *StatementEvent `yaml:"insert_statement,omitempty"`
	Cite            *int            `yaml:"cite,omitempty"`
	Title           *string         `yaml:"title,omitempty"`
	Destination     *string         `yaml:"destination,omitempty"`
	HTML            *string         `yaml:"html,omitempty"`
}

// Selection places the caret (Length 0) or selects a range
type Selection struct {
	Index  int `yaml:"index"`
	Length int `yaml:"length,omitempty"`
}

// StatementEvent inserts a statement for a source: either one of the
// suggestions (by index) or literal text
type StatementEvent struct {
	Source     int     `yaml:"source"`
	Suggestion *int    `yaml:"suggestion,omitempty"`
	Text       *string `yaml:"text,omitempty"`
}

// Action returns the name of the action the event performs, or "" when the
// event sets no field or more than one
func (e Event) Action() string {
	var actions []string
	if e.AddSource != nil {
		actions = append(actions, "add_source")
	}
	if e.Type != nil {
		actions = append(actions, "type")
	}
	if e.Heading != nil {
		actions = append(actions, "heading")
	}
	if e.Select != nil {
		actions = append(actions, "select")
	}
	if e.Blur {
		actions = append(actions, "blur")
	}
	if e.InsertStatement != nil {
		actions = append(actions, "insert_statement")
	}
	if e.Cite != nil {
		actions = append(actions, "cite")
	}
	if e.Title != nil {
		actions = append(actions, "title")
	}
	if e.Destination != nil {
		actions = append(actions, "destination")
	}
	if e.HTML != nil {
		actions = append(actions, "html")
	}

	if len(actions) != 1 {
		return ""
	}
	return actions[0]
}

// Validate checks that every event names exactly one action
func (s *Script) Validate() error {
	for i, e := range s.Events {
		if e.Action() == "" {
			return fmt.Errorf("%w: event %d must set exactly one action", ErrInvalidScript, i)
		}
		if st := e.InsertStatement; st != nil && (st.Suggestion == nil) == (st.Text == nil) {
			return fmt.Errorf("%w: event %d: insert_statement needs either suggestion or text", ErrInvalidScript, i)
		}
	}
	return nil
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var s Script
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScript, err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Load reads a script file. The file name is used when the script has no name.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}

	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if strings.TrimSpace(s.Name) == "" {
		s.Name = path
	}
	return s, nil
}
