// Package registry holds the per-session state of the article-creation
// wizard: the append-only source list and the history of auto-inserted
// source statements.
package registry

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/ppiankov/draftgate/internal/classify"
	"github.com/ppiankov/draftgate/internal/logging"
	"github.com/ppiankov/draftgate/internal/model"
)

// ErrInvalidURL is returned by AddSource when the URL cannot be parsed
var ErrInvalidURL = classify.ErrInvalidURL

// Session owns the sources and inserted statements of one editing session.
// Nothing is persisted. A Session is not safe for concurrent use.
type Session struct {
	id         string
	classifier *classify.Classifier
	sources    []model.Source
	statements []model.Statement
	lastID     int
	logger     logging.Logger
}

// NewSession creates an empty session. A nil classifier uses the default lists.
func NewSession(classifier *classify.Classifier, logger logging.Logger) *Session {
	if classifier == nil {
		classifier = classify.New(nil)
	}

	id := uuid.NewString()
	return &Session{
		id:         id,
		classifier: classifier,
		logger:     logging.OrNop(logger).With(logging.String("session_id", id)),
	}
}

// ID returns the session identifier
func (s *Session) ID() string {
	return s.id
}

// AddSource normalizes, titles, classifies and appends a source.
// Duplicate URLs are accepted and get their own id.
func (s *Session) AddSource(rawURL string) (model.Source, error) {
	parsed, err := classify.ParseURL(rawURL)
	if err != nil {
		s.logger.Debug("Source rejected", logging.String("url", rawURL), logging.Err(err))
		return model.Source{}, err
	}

	id := s.lastID + 1
	domain := classify.NormalizeHost(parsed.Hostname())
	verdict := s.classifier.ClassifyHost(domain)

	title := GuessTitle(parsed)
	if title == "" {
		title = fmt.Sprintf("Source %d", id)
	}

	source := model.Source{
		ID:          id,
		URL:         strings.TrimSpace(rawURL),
		Title:       title,
		Domain:      domain,
		Kind:        verdict.Kind,
		Independent: verdict.Independent,
		Tier:        verdict.Tier,
	}

	s.lastID = id
	s.sources = append(s.sources, source)

	s.logger.Debug("Source added",
		logging.Int("source_id", id),
		logging.String("domain", domain),
		logging.String("tier", string(source.Tier)),
		logging.String("rule", verdict.Rule),
	)

	return source, nil
}

// Sources returns a snapshot of the sources in insertion order
func (s *Session) Sources() []model.Source {
	out := make([]model.Source, len(s.sources))
	copy(out, s.sources)
	return out
}

// Source looks up a source by id
func (s *Session) Source(id int) (model.Source, bool) {
	for _, src := range s.sources {
		if src.ID == id {
			return src, true
		}
	}
	return model.Source{}, false
}

// RecordStatement appends an auto-inserted statement to the history
func (s *Session) RecordStatement(statement model.Statement) {
	s.statements = append(s.statements, statement)
}

// Statements returns a snapshot of the inserted-statement history
func (s *Session) Statements() []model.Statement {
	out := make([]model.Statement, len(s.statements))
	copy(out, s.statements)
	return out
}

// InsertedTexts returns the text of every inserted statement
func (s *Session) InsertedTexts() []string {
	return model.StatementTexts(s.statements)
}

// GuessTitle derives a human-readable title from the last non-empty path
// segment. It returns "" when the URL has no path.
func GuessTitle(u *url.URL) string {
	segments := strings.Split(u.EscapedPath(), "/")

	last := ""
	for i := len(segments) - 1; i >= 0; i-- {
		if strings.TrimSpace(segments[i]) != "" {
			last = segments[i]
			break
		}
	}
	if last == "" {
		return ""
	}

	// De-slugify before decoding so encoded dashes survive
	last = strings.NewReplacer("_", " ", "-", " ").Replace(last)
	if decoded, err := url.PathUnescape(last); err == nil {
		last = decoded
	}

	return strings.TrimSpace(last)
}
