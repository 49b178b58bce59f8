package model

// DraftCheckResult is the outcome of one preflight evaluation.
// It is recomputed from scratch on every change and never mutated.
type DraftCheckResult struct {
	HasSource                bool    `json:"has_source"`
	IndependentReliableCount int     `json:"independent_reliable_count"`
	NotabilityPass           bool    `json:"notability_pass"`
	HasLead                  bool    `json:"has_lead"`
	HasHeader                bool    `json:"has_header"`
	HasCite                  bool    `json:"has_cite"`
	CopyvioRiskRatio         float64 `json:"copyvio_risk_ratio"` // 0..1
	CopyvioLow               bool    `json:"copyvio_low"`
	PromoHit                 bool    `json:"promo_hit"`
	TitleClash               bool    `json:"title_clash"`
	MainEligible             bool    `json:"main_eligible"`
	TextLength               int     `json:"text_length"` // Trimmed length in characters
}

// Blockers lists the mainspace conditions that currently fail, in a stable order
func (r DraftCheckResult) Blockers() []CheckName {
	var blockers []CheckName
	if !r.NotabilityPass {
		blockers = append(blockers, CheckNotability)
	}
	if !r.HasLead {
		blockers = append(blockers, CheckLead)
	}
	if !r.HasHeader {
		blockers = append(blockers, CheckHeader)
	}
	if !r.HasCite {
		blockers = append(blockers, CheckCite)
	}
	if !r.CopyvioLow {
		blockers = append(blockers, CheckCopyvio)
	}
	if r.PromoHit {
		blockers = append(blockers, CheckPromo)
	}
	if r.TitleClash {
		blockers = append(blockers, CheckTitle)
	}
	return blockers
}

// CheckName identifies one line of the preflight checklist
type CheckName string

const (
	CheckSource     CheckName = "has_source"
	CheckNotability CheckName = "notability"
	CheckLead       CheckName = "lead"
	CheckHeader     CheckName = "header"
	CheckCite       CheckName = "inline_citation"
	CheckCopyvio    CheckName = "copyvio"
	CheckPromo      CheckName = "promotional_language"
	CheckTitle      CheckName = "title_clash"
)

// Check is a transparent record of a single check: its verdict plus the inputs
// and formula that produced it
type Check struct {
	Name        CheckName              `json:"name"`
	Pass        bool                   `json:"pass"`
	Description string                 `json:"description"`
	Data        map[string]interface{} `json:"data,omitempty"`
}

// WarningType classifies advisory review notes
type WarningType string

const (
	WarningUncitedContent WarningType = "uncited_content"
	WarningNoSources      WarningType = "no_sources"
)

// Warning is an advisory note shown next to the checklist.
// Warnings never influence eligibility.
type Warning struct {
	Type  WarningType `json:"type"`
	Title string      `json:"title"`
	Text  string      `json:"text"`
}

// PreflightReport bundles the result with its explanation
type PreflightReport struct {
	Result   DraftCheckResult `json:"result"`
	Checks   []Check          `json:"checks"`
	Warnings []Warning        `json:"warnings,omitempty"`
}

// Check returns the named check, if present
func (r PreflightReport) Check(name CheckName) (Check, bool) {
	for _, c := range r.Checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

// Destination is where the author wants to publish
type Destination string

const (
	DestinationDraft     Destination = "draft"
	DestinationMainspace Destination = "mainspace"
)
