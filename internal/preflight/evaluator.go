// Package preflight evaluates a draft against the mainspace publication checks.
package preflight

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/cloudflare/ahocorasick"

	"github.com/ppiankov/draftgate/internal/model"
)

var (
	citePattern        = regexp.MustCompile(`\[[0-9]+\]`)
	looseHeaderPattern = regexp.MustCompile(`\n#|\n==|\n.{0,100}\n`)
)

// Input is everything the evaluator looks at. It is a plain value; the
// evaluator never reaches back into the session or the editor.
type Input struct {
	Sources              []model.Source
	Text                 string
	HasStructuralHeading bool
	InsertedStatements   []string // Auto-inserted statement texts, in insertion order
	ProposedTitle        string
	KnownTitles          []string // nil means the configured list
}

// Evaluator computes DraftCheckResult values. It holds only immutable
// configuration and is safe for concurrent use.
type Evaluator struct {
	config      model.PreflightConfig
	promoTerms  []string
	promoWords  []*regexp.Regexp
	promoFilter *ahocorasick.Matcher
}

// New creates an evaluator. A nil config uses the defaults.
func New(config *model.PreflightConfig) *Evaluator {
	if config == nil {
		config = &model.DefaultConfig().Preflight
	}

	e := &Evaluator{config: *config}
	for _, term := range config.PromoTerms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		e.promoTerms = append(e.promoTerms, term)
		e.promoWords = append(e.promoWords, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(term)+`\b`))
	}
	if len(e.promoTerms) > 0 {
		e.promoFilter = ahocorasick.NewStringMatcher(e.promoTerms)
	}

	return e
}

// Evaluate runs every check and returns the report.
// The same input always produces the same report.
func (e *Evaluator) Evaluate(in Input) model.PreflightReport {
	var (
		result model.DraftCheckResult
		checks []model.Check
	)

	trimmed := strings.TrimSpace(in.Text)
	result.TextLength = utf8.RuneCountInString(trimmed)

	// 1. Sources
	result.HasSource = len(in.Sources) > 0
	checks = append(checks, model.Check{
		Name:        model.CheckSource,
		Pass:        result.HasSource,
		Description: fmt.Sprintf("%d source(s) added", len(in.Sources)),
		Data: map[string]interface{}{
			"sources": len(in.Sources),
			"formula": "sources > 0",
		},
	})

	// 2. Notability
	check := e.checkNotability(in.Sources, &result)
	checks = append(checks, check)

	// 3. Lead
	result.HasLead = result.TextLength >= e.config.LeadMinChars
	checks = append(checks, model.Check{
		Name:        model.CheckLead,
		Pass:        result.HasLead,
		Description: fmt.Sprintf("Lead length: %d/%d characters", result.TextLength, e.config.LeadMinChars),
		Data: map[string]interface{}{
			"length":  result.TextLength,
			"minimum": e.config.LeadMinChars,
			"formula": "len(trim(text)) >= lead_min_chars",
		},
	})

	// 4. Headings
	checks = append(checks, e.checkHeader(in, &result))

	// 5. Inline citations
	markers := citePattern.FindAllString(in.Text, -1)
	result.HasCite = len(markers) > 0
	checks = append(checks, model.Check{
		Name:        model.CheckCite,
		Pass:        result.HasCite,
		Description: fmt.Sprintf("%d inline citation marker(s)", len(markers)),
		Data: map[string]interface{}{
			"markers": len(markers),
			"pattern": citePattern.String(),
		},
	})

	// 6. Copied statements
	checks = append(checks, e.checkCopyvio(trimmed, in.InsertedStatements, &result))

	// 7. Promotional language
	checks = append(checks, e.checkPromo(in.Text, &result))

	// 8. Title
	checks = append(checks, e.checkTitle(in, &result))

	result.MainEligible = result.NotabilityPass &&
		result.HasLead &&
		result.HasHeader &&
		result.HasCite &&
		result.CopyvioLow &&
		!result.PromoHit &&
		!result.TitleClash

	return model.PreflightReport{
		Result:   result,
		Checks:   checks,
		Warnings: reviewWarnings(result),
	}
}

// Result is a shorthand for Evaluate(in).Result
func (e *Evaluator) Result(in Input) model.DraftCheckResult {
	return e.Evaluate(in).Result
}

func (e *Evaluator) checkNotability(sources []model.Source, result *model.DraftCheckResult) model.Check {
	tiers := make(map[string]int)
	for _, src := range sources {
		if src.Qualifies() {
			result.IndependentReliableCount++
			tiers[src.Tier.String()]++
		}
	}
	result.NotabilityPass = result.IndependentReliableCount >= e.config.NotabilityMin

	return model.Check{
		Name: model.CheckNotability,
		Pass: result.NotabilityPass,
		Description: fmt.Sprintf("Independent reliable sources: %d/%d",
			result.IndependentReliableCount, e.config.NotabilityMin),
		Data: map[string]interface{}{
			"qualifying": result.IndependentReliableCount,
			"total":      len(sources),
			"by_tier":    tiers,
			"minimum":    e.config.NotabilityMin,
			"formula":    "count(independent && secondary && tier in {gov, edu, good}) >= notability_min",
		},
	}
}

func (e *Evaluator) checkHeader(in Input, result *model.DraftCheckResult) model.Check {
	loose := false
	if !in.HasStructuralHeading && e.config.HeaderMode == model.HeaderModeLoose {
		loose = looseHeaderPattern.MatchString(in.Text)
	}
	result.HasHeader = in.HasStructuralHeading || loose

	description := "No section heading"
	switch {
	case in.HasStructuralHeading:
		description = "Section heading present"
	case loose:
		description = "Headline-like line break found"
	}

	return model.Check{
		Name:        model.CheckHeader,
		Pass:        result.HasHeader,
		Description: description,
		Data: map[string]interface{}{
			"structural": in.HasStructuralHeading,
			"mode":       e.config.HeaderMode,
			"loose":      loose,
		},
	}
}

func (e *Evaluator) checkCopyvio(trimmed string, statements []string, result *model.DraftCheckResult) model.Check {
	copied := 0
	matched := 0
	for _, st := range statements {
		if st != "" && strings.Contains(trimmed, st) {
			copied += utf8.RuneCountInString(st)
			matched++
		}
	}

	if result.TextLength > 0 {
		result.CopyvioRiskRatio = math.Min(float64(copied)/float64(result.TextLength), 1)
	}
	result.CopyvioLow = result.CopyvioRiskRatio < e.config.CopyvioMaxRatio

	return model.Check{
		Name:        model.CheckCopyvio,
		Pass:        result.CopyvioLow,
		Description: fmt.Sprintf("Copied statement ratio: %.0f%%", result.CopyvioRiskRatio*100),
		Data: map[string]interface{}{
			"copied_chars": copied,
			"matched":      matched,
			"statements":   len(statements),
			"text_length":  result.TextLength,
			"ratio":        result.CopyvioRiskRatio,
			"maximum":      e.config.CopyvioMaxRatio,
			"formula":      "min(sum(len(s) for s in statements if s in text) / len(trim(text)), 1) < copyvio_max_ratio",
		},
	}
}

func (e *Evaluator) checkPromo(text string, result *model.DraftCheckResult) model.Check {
	hits := e.promoHits(text)
	result.PromoHit = len(hits) > 0

	description := "No promotional language"
	if result.PromoHit {
		description = fmt.Sprintf("Promotional language: %s", strings.Join(hits, ", "))
	}

	return model.Check{
		Name:        model.CheckPromo,
		Pass:        !result.PromoHit,
		Description: description,
		Data: map[string]interface{}{
			"terms": hits,
		},
	}
}

// promoHits returns matched promotional terms in word-list order.
// Substring hits (e.g. "leading" in "misleading") are discarded by the
// whole-word confirmation.
func (e *Evaluator) promoHits(text string) []string {
	if e.promoFilter == nil || text == "" {
		return nil
	}

	candidates := make(map[int]bool)
	for _, idx := range e.promoFilter.Match([]byte(strings.ToLower(text))) {
		candidates[idx] = true
	}

	var hits []string
	for idx, term := range e.promoTerms {
		if candidates[idx] && e.promoWords[idx].MatchString(text) {
			hits = append(hits, term)
		}
	}
	return hits
}

func (e *Evaluator) checkTitle(in Input, result *model.DraftCheckResult) model.Check {
	known := in.KnownTitles
	if known == nil {
		known = e.config.KnownTitles
	}

	title := strings.TrimSpace(in.ProposedTitle)
	match := ""
	if title != "" {
		for _, k := range known {
			if strings.EqualFold(title, strings.TrimSpace(k)) {
				match = k
				break
			}
		}
	}
	result.TitleClash = match != ""

	description := "Title is available"
	switch {
	case title == "":
		description = "No title proposed"
	case result.TitleClash:
		description = fmt.Sprintf("An article titled %q already exists", match)
	}

	return model.Check{
		Name:        model.CheckTitle,
		Pass:        !result.TitleClash,
		Description: description,
		Data: map[string]interface{}{
			"title":        title,
			"match":        match,
			"known_titles": len(known),
		},
	}
}

// reviewWarnings produces the advisory notes shown during review
func reviewWarnings(result model.DraftCheckResult) []model.Warning {
	var warnings []model.Warning

	if result.TextLength > 0 && !result.HasSource {
		warnings = append(warnings, model.Warning{
			Type:  model.WarningUncitedContent,
			Title: "Uncited content",
			Text:  "This content appears to lack citations. For living persons (BLP), all content must be cited.",
		})
	}

	if !result.HasSource {
		warnings = append(warnings, model.Warning{
			Type:  model.WarningNoSources,
			Title: "No sources provided",
			Text:  "Consider adding reliable sources to support your content.",
		})
	}

	return warnings
}
