package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/draftgate/internal/model"
)

// Reviewer produces the optional reviewer note. A Reviewer with no provider
// is disabled and returns nil notes.
type Reviewer struct {
	provider Provider
	config   Config
}

// NewReviewer creates a reviewer from configuration
func NewReviewer(config Config) (*Reviewer, error) {
	provider, err := NewProvider(config)
	if err != nil {
		return nil, err
	}
	return &Reviewer{provider: provider, config: config}, nil
}

// IsEnabled reports whether a provider is configured
func (r *Reviewer) IsEnabled() bool {
	return r != nil && r.provider != nil
}

// ProviderName returns the configured provider name, or "" when disabled
func (r *Reviewer) ProviderName() string {
	if !r.IsEnabled() {
		return ""
	}
	return r.provider.Name()
}

// Review writes a note for the report. Provider failures degrade to a note
// carrying warnings so that a broken provider never fails a check run.
func (r *Reviewer) Review(ctx context.Context, title string, report model.PreflightReport, sources []model.Source) (*model.ReviewNote, error) {
	if !r.IsEnabled() {
		return nil, nil
	}

	note := &model.ReviewNote{
		Enabled:        true,
		Provider:       r.provider.Name(),
		Model:          r.config.Model,
		StrictEvidence: r.config.StrictEvidence,
	}

	if !r.provider.IsAvailable(ctx) {
		note.Enabled = false
		note.Warnings = append(note.Warnings, fmt.Sprintf("LLM provider %s is not available", note.Provider))
		return note, nil
	}

	urls := make([]string, 0, len(sources))
	for _, s := range sources {
		urls = append(urls, s.URL)
	}

	resp, err := r.provider.Review(ctx, ReviewRequest{
		Title:      title,
		Report:     report,
		SourceURLs: urls,
		Model:      r.config.Model,
		MaxTokens:  r.config.MaxTokens,
	})
	if err != nil {
		note.Warnings = append(note.Warnings, fmt.Sprintf("Reviewer note failed: %v", err))
		return note, nil
	}

	note.NoteMD = resp.Note
	note.CitedURLs = resp.CitedURLs
	if resp.Model != "" {
		note.Model = resp.Model
	}
	note.Warnings = append(note.Warnings,
		fmt.Sprintf("Tokens used: %d", resp.TokensUsed),
		fmt.Sprintf("Verified %d citations against session sources", len(resp.CitedURLs)),
	)
	return note, nil
}

// RenderMarkdown renders the note as a standalone markdown block, clearly
// separated from the checklist
func RenderMarkdown(note *model.ReviewNote) string {
	if note == nil || !note.Enabled {
		return ""
	}

	var b strings.Builder
	b.WriteString("# Reviewer Note\n\n")
	b.WriteString("> **GENERATED CONTENT** - This note is advisory. Eligibility was determined independently by the preflight checks.\n\n")
	fmt.Fprintf(&b, "- **Provider**: %s\n", note.Provider)
	if note.Model != "" {
		fmt.Fprintf(&b, "- **Model**: %s\n", note.Model)
	}
	fmt.Fprintf(&b, "- **Strict Evidence Mode**: %t\n\n", note.StrictEvidence)

	if note.NoteMD == "" {
		b.WriteString("_No note generated._\n")
	} else {
		b.WriteString(note.NoteMD)
		b.WriteString("\n")
	}

	if len(note.Warnings) > 0 {
		b.WriteString("\n## Notes\n\n")
		for _, w := range note.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}
