package script

import (
	"context"
	"errors"
	"fmt"

	"github.com/ppiankov/draftgate/internal/gate"
	"github.com/ppiankov/draftgate/internal/logging"
	"github.com/ppiankov/draftgate/internal/model"
	"github.com/ppiankov/draftgate/internal/registry"
	"github.com/ppiankov/draftgate/internal/workspace"
)

// Result is the final state of a replayed session
type Result struct {
	Name        string                `json:"name"`
	SessionID   string                `json:"session_id"`
	Title       string                `json:"title,omitempty"`
	Destination model.Destination     `json:"destination"`
	Sources     []model.Source        `json:"sources"`
	Report      model.PreflightReport `json:"report"`
	Decision    *gate.Decision        `json:"decision,omitempty"` // nil without a publish button
	Skipped     []string              `json:"skipped,omitempty"`  // Events that were silent no-ops
	Text        string                `json:"text"`
	Expect      *Expectation          `json:"expect,omitempty"`
}

// Publishable reports whether the publish action is enabled
func (r *Result) Publishable() bool {
	return r.Decision != nil && r.Decision.Enabled
}

// Failures compares the result with the script's own expectation
func (r *Result) Failures() []string {
	return r.Mismatches(r.Expect)
}

// Passed reports whether the result meets the script's expectation
func (r *Result) Passed() bool {
	return len(r.Failures()) == 0
}

// Mismatches compares the result with an expectation. Without an
// expectation the session is expected to be publishable.
func (r *Result) Mismatches(expect *Expectation) []string {
	var out []string
	if expect == nil {
		if !r.Publishable() {
			out = append(out, fmt.Sprintf("publish to %s is disabled", r.Destination))
		}
		return out
	}

	if expect.MainEligible != nil && *expect.MainEligible != r.Report.Result.MainEligible {
		out = append(out, fmt.Sprintf("main_eligible: expected %v, got %v", *expect.MainEligible, r.Report.Result.MainEligible))
	}
	if expect.Publishable != nil && *expect.Publishable != r.Publishable() {
		out = append(out, fmt.Sprintf("publishable: expected %v, got %v", *expect.Publishable, r.Publishable()))
	}
	return out
}

// Run replays a script in a fresh workspace
func Run(ctx context.Context, s *Script, cfg *model.Config, logger logging.Logger) (*Result, error) {
	logger = logging.OrNop(logger).With(logging.String("script", s.Name))

	w, err := workspace.New(cfg, logger)
	if err != nil {
		return nil, err
	}

	return Replay(ctx, w, s, logger)
}

// Replay applies the script's events to an existing workspace.
// Invalid URLs and missing affordances are skipped; any other failure stops
// the replay.
func Replay(ctx context.Context, w *workspace.Workspace, s *Script, logger logging.Logger) (*Result, error) {
	logger = logging.OrNop(logger)

	var skipped []string
	for i, e := range s.Events {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		action := e.Action()
		if err := apply(w, e); err != nil {
			if errors.Is(err, registry.ErrInvalidURL) || errors.Is(err, workspace.ErrFeatureDisabled) {
				logger.Debug("Event skipped",
					logging.Int("event", i),
					logging.String("action", action),
					logging.Err(err),
				)
				skipped = append(skipped, fmt.Sprintf("event %d (%s): %v", i, action, err))
				continue
			}
			return nil, fmt.Errorf("event %d (%s): %w", i, action, err)
		}
	}

	result := &Result{
		Name:        s.Name,
		SessionID:   w.Session().ID(),
		Title:       w.Title(),
		Destination: w.Destination(),
		Sources:     w.Session().Sources(),
		Report:      w.Report(),
		Skipped:     skipped,
		Text:        w.Document().Text(),
		Expect:      s.Expect,
	}

	decision, err := w.Decision()
	switch {
	case err == nil:
		result.Decision = &decision
	case !errors.Is(err, workspace.ErrFeatureDisabled):
		return nil, err
	}

	logger.Info("Session replayed",
		logging.String("session_id", result.SessionID),
		logging.Int("events", len(s.Events)),
		logging.Bool("main_eligible", result.Report.Result.MainEligible),
		logging.Bool("publishable", result.Publishable()),
	)

	return result, nil
}

func apply(w *workspace.Workspace, e Event) error {
	switch {
	case e.AddSource != nil:
		_, err := w.AddSource(*e.AddSource)
		return err
	case e.Type != nil:
		return w.Type(*e.Type)
	case e.Heading != nil:
		return w.InsertSection(*e.Heading)
	case e.Select != nil:
		w.Select(e.Select.Index, e.Select.Length)
		return nil
	case e.Blur:
		w.Blur()
		return nil
	case e.InsertStatement != nil:
		return insertStatement(w, e.InsertStatement)
	case e.Cite != nil:
		return w.InsertCitation(*e.Cite)
	case e.Title != nil:
		return w.SetTitle(*e.Title)
	case e.Destination != nil:
		return w.SetDestination(*e.Destination)
	case e.HTML != nil:
		return w.ImportHTML(*e.HTML)
	}
	return fmt.Errorf("%w: empty event", ErrInvalidScript)
}

func insertStatement(w *workspace.Workspace, st *StatementEvent) error {
	if st.Text != nil {
		return w.InsertStatement(st.Source, *st.Text)
	}

	suggestions, err := w.Suggestions(st.Source)
	if err != nil {
		return err
	}
	idx := *st.Suggestion
	if idx < 0 || idx >= len(suggestions) {
		return fmt.Errorf("%w: suggestion %d (source %d has %d)", ErrInvalidScript, idx, st.Source, len(suggestions))
	}
	return w.InsertStatement(st.Source, suggestions[idx].Text)
}
