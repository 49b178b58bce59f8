package model

// ReviewNote is the optional LLM-generated reviewer note.
// It is kept apart from the report and never affects any check or the gate.
type ReviewNote struct {
	Enabled        bool     `json:"enabled"`
	Provider       string   `json:"provider,omitempty"` // openai, ollama
	Model          string   `json:"model,omitempty"`
	StrictEvidence bool     `json:"strict_evidence"` // Whether citation enforcement was enabled
	NoteMD         string   `json:"note_md,omitempty"`
	CitedURLs      []string `json:"cited_urls,omitempty"`
	Warnings       []string `json:"warnings,omitempty"`
}
