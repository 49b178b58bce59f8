package extract

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ppiankov/draftgate/internal/model"
)

// StatementSuggester proposes statements a source could support.
// Suggestions are deterministic placeholders derived from the source domain;
// no content is fetched.
type StatementSuggester struct {
	templates []string
}

// NewStatementSuggester creates a suggester with the built-in templates
func NewStatementSuggester() *StatementSuggester {
	return &StatementSuggester{
		templates: []string{
			"%[1]s reports key biographical details.",
			"Notable contribution described by %[2]s.",
			"Timeline and context summarized in %[2]s.",
		},
	}
}

// Suggest returns the statements for a source, in a stable order
func (e *StatementSuggester) Suggest(source model.Source) []model.Statement {
	base := domainBase(source.Domain)
	if base == "" {
		return nil
	}

	statements := make([]model.Statement, 0, len(e.templates))
	for _, tmpl := range e.templates {
		text := strings.ReplaceAll(tmpl, "%[1]s", capitalize(base))
		text = strings.ReplaceAll(text, "%[2]s", base)
		statements = append(statements, model.Statement{SourceID: source.ID, Text: text})
	}
	return statements
}

// domainBase returns the first label of a domain ("nytimes" for nytimes.com)
func domainBase(domain string) string {
	if idx := strings.Index(domain, "."); idx >= 0 {
		return domain[:idx]
	}
	return domain
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

// SuggestStatements returns the built-in suggestions for a source
func SuggestStatements(source model.Source) []model.Statement {
	return NewStatementSuggester().Suggest(source)
}
