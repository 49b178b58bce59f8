package model

// Statement is a source-derived sentence that was auto-inserted into the draft
type Statement struct {
	SourceID int    `json:"source_id"`
	Text     string `json:"text"`
}

// StatementTexts returns the text of each statement in insertion order
func StatementTexts(statements []Statement) []string {
	texts := make([]string, 0, len(statements))
	for _, s := range statements {
		texts = append(texts, s.Text)
	}
	return texts
}
