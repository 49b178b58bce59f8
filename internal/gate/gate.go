// Package gate decides whether the publish action is available for the
// chosen destination.
package gate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ppiankov/draftgate/internal/model"
)

// ErrUnknownDestination is returned for destination values other than draft or mainspace
var ErrUnknownDestination = errors.New("unknown destination")

// Publish button labels
const (
	LabelDraft     = "Publish draft"
	LabelMainspace = "Publish to mainspace"
)

// Decision is the state of the publish affordance
type Decision struct {
	Destination model.Destination `json:"destination"`
	Enabled     bool              `json:"enabled"`
	Label       string            `json:"label"`
	Blockers    []string          `json:"blockers,omitempty"` // Failing conditions, empty when enabled
}

// ParseDestination parses a destination selector value.
// Matching ignores case and surrounding whitespace.
func ParseDestination(value string) (model.Destination, error) {
	switch model.Destination(strings.ToLower(strings.TrimSpace(value))) {
	case model.DestinationDraft:
		return model.DestinationDraft, nil
	case model.DestinationMainspace:
		return model.DestinationMainspace, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDestination, value)
}

// Decide applies the publication policy: drafts only need some text,
// mainspace requires every check to pass.
func Decide(result model.DraftCheckResult, dest model.Destination) (Decision, error) {
	switch dest {
	case model.DestinationDraft:
		d := Decision{Destination: dest, Label: LabelDraft, Enabled: result.TextLength > 0}
		if !d.Enabled {
			d.Blockers = []string{"empty_draft"}
		}
		return d, nil

	case model.DestinationMainspace:
		d := Decision{Destination: dest, Label: LabelMainspace, Enabled: result.MainEligible}
		if !d.Enabled {
			for _, b := range result.Blockers() {
				d.Blockers = append(d.Blockers, string(b))
			}
		}
		return d, nil
	}

	return Decision{}, fmt.Errorf("%w: %q", ErrUnknownDestination, dest)
}
