// Package workspace is the function-call boundary between UI events and the
// preflight core. A Workspace owns one session, one document and the current
// report, and recomputes the report after every change.
package workspace

import (
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/ppiankov/draftgate/internal/classify"
	"github.com/ppiankov/draftgate/internal/editor"
	"github.com/ppiankov/draftgate/internal/extract"
	"github.com/ppiankov/draftgate/internal/gate"
	"github.com/ppiankov/draftgate/internal/logging"
	"github.com/ppiankov/draftgate/internal/model"
	"github.com/ppiankov/draftgate/internal/preflight"
	"github.com/ppiankov/draftgate/internal/registry"
)

var (
	// ErrFeatureDisabled is returned when an operation needs an affordance the
	// session does not have. The operation leaves the state unchanged.
	ErrFeatureDisabled = errors.New("feature disabled")

	// ErrUnknownSource is returned when a statement or citation refers to a
	// source id that was never added
	ErrUnknownSource = errors.New("unknown source")
)

// Workspace is one editing session. It is not safe for concurrent use.
type Workspace struct {
	session     *registry.Session
	doc         *editor.Document
	evaluator   *preflight.Evaluator
	suggester   *extract.StatementSuggester
	features    Features
	title       string
	destination model.Destination
	report      model.PreflightReport
	listeners   []func(model.PreflightReport)
	batching    bool
	logger      logging.Logger
}

// New creates a workspace from configuration. A nil config uses the defaults.
func New(cfg *model.Config, logger logging.Logger) (*Workspace, error) {
	if cfg == nil {
		cfg = model.DefaultConfig()
	}

	features, err := ResolveFeatures(cfg.Features)
	if err != nil {
		return nil, fmt.Errorf("resolve features: %w", err)
	}

	session := registry.NewSession(classify.New(&cfg.Classifier), logger)

	w := &Workspace{
		session:     session,
		doc:         editor.NewDocument(),
		evaluator:   preflight.New(&cfg.Preflight),
		suggester:   extract.NewStatementSuggester(),
		features:    features,
		destination: model.DestinationDraft,
		logger:      logging.OrNop(logger).With(logging.String("session_id", session.ID())),
	}

	w.doc.OnChange(func(editor.Change) {
		if !w.batching {
			w.recompute()
		}
	})
	w.recompute()

	return w, nil
}

// Session returns the underlying source registry
func (w *Workspace) Session() *registry.Session { return w.session }

// Document returns the editing surface. Commands applied to it directly
// also trigger recomputation.
func (w *Workspace) Document() *editor.Document { return w.doc }

// Features returns the resolved affordances
func (w *Workspace) Features() Features { return w.features }

// Title returns the proposed article title ("" without a title field)
func (w *Workspace) Title() string { return w.title }

// Destination returns the selected destination
func (w *Workspace) Destination() model.Destination { return w.destination }

// Report returns the most recent preflight report
func (w *Workspace) Report() model.PreflightReport { return w.report }

// OnReport registers a subscriber called with every recomputed report
func (w *Workspace) OnReport(fn func(model.PreflightReport)) {
	w.listeners = append(w.listeners, fn)
}

// AddSource adds a source from a raw URL. Invalid URLs and a missing source
// input leave the session unchanged and return an error the caller may ignore.
func (w *Workspace) AddSource(rawURL string) (model.Source, error) {
	if !w.features.Has(model.FeatureSourceInput) {
		return model.Source{}, fmt.Errorf("add source: %w: %s", ErrFeatureDisabled, model.FeatureSourceInput)
	}

	src, err := w.session.AddSource(rawURL)
	if err != nil {
		return model.Source{}, fmt.Errorf("add source: %w", err)
	}

	w.recompute()
	return src, nil
}

// Suggestions returns candidate statements for a source
func (w *Workspace) Suggestions(sourceID int) ([]model.Statement, error) {
	src, ok := w.session.Source(sourceID)
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownSource, sourceID)
	}
	return w.suggester.Suggest(src), nil
}

// Type inserts text at the caret, or at the end when the editor is unfocused
func (w *Workspace) Type(text string) error {
	if text == "" {
		return nil
	}
	at := editor.InsertionPoint(w.doc)
	return w.apply(editor.InsertText{Index: at, Text: text})
}

// Select moves the caret or selection
func (w *Workspace) Select(index, length int) {
	w.doc.SetSelection(editor.Range{Index: index, Length: length})
}

// Blur removes focus from the editor
func (w *Workspace) Blur() {
	w.doc.Blur()
}

// InsertStatement inserts a statement with its citation marker and records
// it in the statement history
func (w *Workspace) InsertStatement(sourceID int, text string) error {
	if _, ok := w.session.Source(sourceID); !ok {
		return fmt.Errorf("insert statement: %w: %d", ErrUnknownSource, sourceID)
	}

	at := editor.InsertionPoint(w.doc)
	err := w.batch(func() error {
		if err := w.doc.Apply(editor.InsertStatementCommands(text, sourceID, at)...); err != nil {
			return err
		}
		w.session.RecordStatement(model.Statement{SourceID: sourceID, Text: text})
		return nil
	})
	if err != nil {
		return fmt.Errorf("insert statement: %w", err)
	}

	w.logger.Debug("Statement inserted", logging.Int("source_id", sourceID), logging.Int("at", at))
	return nil
}

// InsertCitation inserts an inline citation marker for a source
func (w *Workspace) InsertCitation(sourceID int) error {
	if _, ok := w.session.Source(sourceID); !ok {
		return fmt.Errorf("insert citation: %w: %d", ErrUnknownSource, sourceID)
	}

	at := editor.InsertionPoint(w.doc)
	if err := w.apply(editor.InsertCitationCommands(sourceID, at)...); err != nil {
		return fmt.Errorf("insert citation: %w", err)
	}
	return nil
}

// InsertSection appends a section heading with a placeholder line and moves
// the caret after it. An existing section with the same title is reused.
func (w *Workspace) InsertSection(title string) error {
	cmds, caret := editor.InsertSectionCommands(w.doc, title)
	if err := w.apply(cmds...); err != nil {
		return fmt.Errorf("insert section: %w", err)
	}
	w.doc.SetSelection(editor.Range{Index: caret})
	return nil
}

// ImportHTML inserts pasted HTML at the caret, keeping headings
func (w *Workspace) ImportHTML(markup string) error {
	imported, err := extract.FromHTML(markup)
	if err != nil {
		return fmt.Errorf("import html: %w", err)
	}

	at := editor.InsertionPoint(w.doc)
	var cmds []editor.Command
	for _, line := range imported.Lines() {
		if line.Text == "" {
			continue
		}
		cmds = append(cmds, editor.InsertText{Index: at, Text: line.Text + "\n"})
		if line.Header > 0 {
			cmds = append(cmds, editor.FormatLine{Index: at, Header: line.Header})
		}
		at += utf8.RuneCountInString(line.Text) + 1
	}

	if err := w.apply(cmds...); err != nil {
		return fmt.Errorf("import html: %w", err)
	}
	return nil
}

// SetTitle sets the proposed article title
func (w *Workspace) SetTitle(title string) error {
	if !w.features.Has(model.FeatureTitleField) {
		return fmt.Errorf("set title: %w: %s", ErrFeatureDisabled, model.FeatureTitleField)
	}
	w.title = title
	w.recompute()
	return nil
}

// SetDestination parses and sets the destination selector value
func (w *Workspace) SetDestination(value string) error {
	if !w.features.Has(model.FeatureDestinationSelector) {
		return fmt.Errorf("set destination: %w: %s", ErrFeatureDisabled, model.FeatureDestinationSelector)
	}

	dest, err := gate.ParseDestination(value)
	if err != nil {
		return fmt.Errorf("set destination: %w", err)
	}
	w.destination = dest
	return nil
}

// Checklist returns the per-check records for rendering
func (w *Workspace) Checklist() ([]model.Check, error) {
	if !w.features.Has(model.FeatureChecklist) {
		return nil, fmt.Errorf("checklist: %w: %s", ErrFeatureDisabled, model.FeatureChecklist)
	}
	return w.report.Checks, nil
}

// Decision returns the publish affordance state for the current destination
func (w *Workspace) Decision() (gate.Decision, error) {
	if !w.features.Has(model.FeaturePublishButton) {
		return gate.Decision{}, fmt.Errorf("decision: %w: %s", ErrFeatureDisabled, model.FeaturePublishButton)
	}
	return gate.Decide(w.report.Result, w.destination)
}

// apply runs editor commands as one change
func (w *Workspace) apply(cmds ...editor.Command) error {
	if len(cmds) == 0 {
		return nil
	}
	return w.batch(func() error {
		return w.doc.Apply(cmds...)
	})
}

// batch suppresses per-command recomputation and recomputes once at the end,
// even when fn fails part way
func (w *Workspace) batch(fn func() error) error {
	w.batching = true
	defer func() {
		w.batching = false
		w.recompute()
	}()
	return fn()
}

func (w *Workspace) recompute() {
	w.report = w.evaluator.Evaluate(preflight.Input{
		Sources:              w.session.Sources(),
		Text:                 w.doc.Text(),
		HasStructuralHeading: w.doc.HeadingCount() > 0,
		InsertedStatements:   w.session.InsertedTexts(),
		ProposedTitle:        w.title,
	})

	w.logger.Debug("Preflight recomputed",
		logging.Bool("main_eligible", w.report.Result.MainEligible),
		logging.Int("text_length", w.report.Result.TextLength),
		logging.Int("sources", len(w.session.Sources())),
	)

	for _, fn := range w.listeners {
		fn(w.report)
	}
}
