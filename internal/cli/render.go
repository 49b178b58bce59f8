package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ppiankov/draftgate/internal/model"
	"github.com/ppiankov/draftgate/internal/script"
)

// checkOutput is the JSON document written by "check --json"
type checkOutput struct {
	*script.Result
	Review *model.ReviewNote `json:"review,omitempty"` // Advisory only
}

// renderChecklist prints the checklist, warnings and gate decision
func renderChecklist(w io.Writer, res *script.Result) {
	r := res.Report.Result

	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n")
	if res.Title != "" {
		fmt.Fprintf(w, "  %s\n", res.Title)
	} else {
		fmt.Fprintf(w, "  %s\n", res.Name)
	}
	fmt.Fprintf(w, "═══════════════════════════════════════════════════════════\n\n")

	fmt.Fprintf(w, "  Sources:      %d (%d independent and reliable)\n", len(res.Sources), r.IndependentReliableCount)
	fmt.Fprintf(w, "  Length:       %d characters\n", r.TextLength)
	fmt.Fprintf(w, "  Copyvio risk: %.0f%%\n\n", r.CopyvioRiskRatio*100)

	for _, check := range res.Report.Checks {
		mark := "✗"
		if check.Pass {
			mark = "✓"
		}
		fmt.Fprintf(w, "  %s %-22s %s\n", mark, check.Name, check.Description)
	}

	if len(res.Report.Warnings) > 0 {
		fmt.Fprintln(w)
		for _, warning := range res.Report.Warnings {
			fmt.Fprintf(w, "  ⚠️  %s: %s\n", warning.Title, warning.Text)
		}
	}

	fmt.Fprintln(w)
	if r.MainEligible {
		fmt.Fprintf(w, "  Mainspace: eligible\n")
	} else {
		fmt.Fprintf(w, "  Mainspace: not eligible\n")
	}

	if d := res.Decision; d != nil {
		state := "disabled"
		if d.Enabled {
			state = "enabled"
		}
		fmt.Fprintf(w, "  %s: %s\n", d.Label, state)
	}
	if len(res.Skipped) > 0 {
		fmt.Fprintf(w, "  Skipped events: %d\n", len(res.Skipped))
	}
	fmt.Fprintln(w)
}

// writeJSON writes v as indented JSON to path
func writeJSON(path string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal JSON: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
