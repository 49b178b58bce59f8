package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/draftgate/internal/model"
)

// Provider defines the interface for LLM providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Review writes a reviewer note for the preflight report
	Review(ctx context.Context, req ReviewRequest) (*ReviewResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// ReviewRequest contains the input for a reviewer note
type ReviewRequest struct {
	// Title is the proposed article title, may be empty
	Title string

	// Report is the preflight report to comment on
	Report model.PreflightReport

	// SourceURLs is the strict allowlist of URLs the note may cite.
	// These are the URLs of the sources added in the session.
	SourceURLs []string

	// Prompt is an optional custom prompt (if empty, use default)
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// ReviewResponse contains the generated note
type ReviewResponse struct {
	Note       string
	CitedURLs  []string // URLs the note actually cited
	Model      string
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	Model   string
	APIKey  string
	BaseURL string // OpenAI-compatible endpoint (Ollama serves one under /v1)
	Timeout int    // seconds

	// StrictEvidence rejects notes citing URLs outside the allowlist
	StrictEvidence bool

	MaxTokens int

	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:       "", // Disabled by default
		Model:          "",
		Timeout:        30,
		StrictEvidence: true,
		MaxTokens:      600,
	}
}

// BuildPrompt constructs the default reviewer prompt
func BuildPrompt(title string, report model.PreflightReport, sourceURLs []string) string {
	if strings.TrimSpace(title) == "" {
		title = "(untitled)"
	}

	r := report.Result
	var b strings.Builder
	fmt.Fprintf(&b, `You are a volunteer reviewer looking at a new encyclopedia draft before submission. The automated preflight checklist below has already decided eligibility. Your note is ADVISORY ONLY and cannot change any check.

CRITICAL RULES:
1. You MUST ONLY cite URLs from this allowed list:
%s

2. DO NOT infer, speculate, or cite external sources beyond this list.
3. Do not judge whether the subject is true or important; comment only on the draft's sourcing and structure.
4. If a check failed, suggest one concrete edit that would address it.

Draft:
- Title: %s
- Length: %d characters
- Sources: %d (%d independent and reliable)
- Copyvio risk: %.0f%%
- Eligible for mainspace: %t

Checks:
`, joinURLs(sourceURLs), title, r.TextLength, len(sourceURLs), r.IndependentReliableCount, r.CopyvioRiskRatio*100, r.MainEligible)

	for _, check := range report.Checks {
		status := "FAIL"
		if check.Pass {
			status = "pass"
		}
		fmt.Fprintf(&b, "- [%s] %s: %s\n", status, check.Name, check.Description)
	}

	if len(report.Warnings) > 0 {
		b.WriteString("\nWarnings:\n")
		for _, w := range report.Warnings {
			fmt.Fprintf(&b, "- %s: %s\n", w.Title, w.Text)
		}
	}

	b.WriteString("\nWrite a 3-4 sentence note to the author.")
	return b.String()
}

func joinURLs(urls []string) string {
	if len(urls) == 0 {
		return "(No source URLs available)"
	}
	var b strings.Builder
	for i, url := range urls {
		if i >= 20 { // Limit to first 20 to avoid token bloat
			fmt.Fprintf(&b, "\n... and %d more URLs", len(urls)-20)
			break
		}
		fmt.Fprintf(&b, "\n- %s", url)
	}
	return b.String()
}
