package preflight

import (
	"reflect"
	"strings"
	"testing"

	"github.com/ppiankov/draftgate/internal/model"
)

var (
	govSource  = model.Source{ID: 1, URL: "https://www.nasa.gov/people/bouman", Domain: "nasa.gov", Kind: model.KindSecondary, Independent: true, Tier: model.TierGov}
	newsSource = model.Source{ID: 2, URL: "https://www.nytimes.com/2019/04/10/science/black-hole.html", Domain: "nytimes.com", Kind: model.KindSecondary, Independent: true, Tier: model.TierGood}
	eduSource  = model.Source{ID: 3, URL: "https://news.mit.edu/2019/bouman", Domain: "news.mit.edu", Kind: model.KindSecondary, Independent: true, Tier: model.TierEdu}
	blogSource = model.Source{ID: 4, URL: "https://someone.medium.com/post", Domain: "someone.medium.com", Kind: model.KindPrimary, Independent: false, Tier: model.TierWarn}
	wikiSource = model.Source{ID: 5, URL: "https://en.wikipedia.org/wiki/Black_hole", Domain: "en.wikipedia.org", Kind: model.KindPrimary, Independent: false, Tier: model.TierBad}
	webSource  = model.Source{ID: 6, URL: "https://example.org/about", Domain: "example.org", Kind: model.KindSecondary, Independent: true, Tier: model.TierWarn}
)

// padTo returns s padded with neutral filler to exactly n characters
func padTo(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat("z", n-len(s))
}

func passingInput() Input {
	return Input{
		Sources:              []model.Source{govSource, newsSource},
		Text:                 padTo("Zzyzx is a former settlement in the Mojave Desert, see [1] for the survey history. ", 150),
		HasStructuralHeading: true,
		ProposedTitle:        "Zzyzx Test Article",
	}
}

func TestEvaluate_EmptyDraft(t *testing.T) {
	e := New(nil)

	report := e.Evaluate(Input{})
	r := report.Result

	if r.HasSource {
		t.Error("Expected hasSource=false")
	}
	if r.HasLead {
		t.Error("Expected hasLead=false")
	}
	if r.HasCite {
		t.Error("Expected hasCite=false")
	}
	if r.MainEligible {
		t.Error("Expected mainEligible=false")
	}
	if r.TextLength != 0 {
		t.Errorf("Expected text length 0, got %d", r.TextLength)
	}
	if r.CopyvioRiskRatio != 0 {
		t.Errorf("Expected copyvio ratio 0 for empty text, got %f", r.CopyvioRiskRatio)
	}
	if !r.CopyvioLow {
		t.Error("Expected copyvioLow=true for empty text")
	}

	if len(report.Warnings) != 1 || report.Warnings[0].Type != model.WarningNoSources {
		t.Errorf("Expected only the no-sources warning, got %+v", report.Warnings)
	}
}

func TestEvaluate_AllChecksPass(t *testing.T) {
	e := New(nil)

	in := passingInput()
	if got := len([]rune(strings.TrimSpace(in.Text))); got != 150 {
		t.Fatalf("Test text should be 150 characters, got %d", got)
	}

	report := e.Evaluate(in)
	r := report.Result

	if !r.HasSource || !r.NotabilityPass || !r.HasLead || !r.HasHeader || !r.HasCite || !r.CopyvioLow {
		t.Errorf("Expected all positive checks to pass, got %+v", r)
	}
	if r.PromoHit || r.TitleClash {
		t.Errorf("Expected no promo or title clash, got %+v", r)
	}
	if !r.MainEligible {
		t.Error("Expected mainEligible=true")
	}
	if r.IndependentReliableCount != 2 {
		t.Errorf("Expected 2 qualifying sources, got %d", r.IndependentReliableCount)
	}
	if len(r.Blockers()) != 0 {
		t.Errorf("Expected no blockers, got %v", r.Blockers())
	}
	if len(report.Warnings) != 0 {
		t.Errorf("Expected no warnings, got %+v", report.Warnings)
	}
	if len(report.Checks) != 8 {
		t.Errorf("Expected 8 checks, got %d", len(report.Checks))
	}
	for _, c := range report.Checks {
		if !c.Pass {
			t.Errorf("Expected check %s to pass: %s", c.Name, c.Description)
		}
	}
}

func TestEvaluate_CopiedStatementRepeated(t *testing.T) {
	e := New(nil)

	statement := "Nasa reports key biographical details."
	in := passingInput()
	in.Text = statement + " [1]\n" + statement + " [1]\n" + in.Text
	in.InsertedStatements = []string{statement, statement}

	report := e.Evaluate(in)
	r := report.Result

	if r.CopyvioRiskRatio < 0.2 {
		t.Fatalf("Expected copied ratio >= 0.2, got %f", r.CopyvioRiskRatio)
	}
	if r.CopyvioLow {
		t.Error("Expected copyvioLow=false")
	}
	if r.MainEligible {
		t.Error("Expected mainEligible=false")
	}

	check, ok := report.Check(model.CheckCopyvio)
	if !ok {
		t.Fatal("Expected copyvio check in report")
	}
	if check.Data["copied_chars"] != 2*len(statement) {
		t.Errorf("Expected %d copied chars, got %v", 2*len(statement), check.Data["copied_chars"])
	}
}

func TestEvaluate_CopyvioRatio(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name       string
		text       string
		statements []string
		wantRatio  float64
		wantLow    bool
	}{
		{"no history", "some text", nil, 0, true},
		{"statement removed", "rewritten in own words", []string{"copied sentence"}, 0, true},
		{"half copied", "abcde12345", []string{"abcde"}, 0.5, false},
		{"duplicate history entries count twice", "abcde1234567890123456789", []string{"abcde", "abcde"}, 10.0 / 24.0, false},
		{"clamped to one", "abc", []string{"abc", "abc", "ab"}, 1, false},
		{"below threshold", padTo("abc", 100), []string{"abc"}, 0.03, true},
		{"whitespace ignored", "   abc   ", []string{"abc"}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Result(Input{Text: tt.text, InsertedStatements: tt.statements})
			if diff := r.CopyvioRiskRatio - tt.wantRatio; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("Expected ratio %f, got %f", tt.wantRatio, r.CopyvioRiskRatio)
			}
			if r.CopyvioLow != tt.wantLow {
				t.Errorf("Expected copyvioLow=%v, got %v", tt.wantLow, r.CopyvioLow)
			}
		})
	}
}

func TestEvaluate_TitleClash(t *testing.T) {
	e := New(nil)

	tests := []struct {
		title string
		known []string
		want  bool
	}{
		{"ada lovelace", nil, true},
		{"  KATHERINE BOUMAN ", nil, true},
		{"Ada Lovelace (mathematician)", nil, false},
		{"", nil, false},
		{"   ", nil, false},
		{"Zzyzx Test Article", []string{"zzyzx test article"}, true},
		{"Ada Lovelace", []string{}, false},
	}

	for _, tt := range tests {
		in := passingInput()
		in.ProposedTitle = tt.title
		in.KnownTitles = tt.known

		r := e.Result(in)
		if r.TitleClash != tt.want {
			t.Errorf("Title %q: expected titleClash=%v, got %v", tt.title, tt.want, r.TitleClash)
		}
		if tt.want && r.MainEligible {
			t.Errorf("Title %q: expected mainEligible=false on clash", tt.title)
		}
	}
}

func TestEvaluate_PromotionalLanguage(t *testing.T) {
	e := New(nil)

	tests := []struct {
		text string
		want bool
	}{
		{"She made pioneering contributions to imaging.", true},
		{"A LEADING researcher.", true},
		{"An award-winning documentary.", true},
		{"The headline was misleading.", false},
		{"The pioneers of the west.", false},
		{"Iconic", true},
		{"Plain factual prose.", false},
	}

	for _, tt := range tests {
		in := passingInput()
		in.Text = in.Text + " " + tt.text

		r := e.Result(in)
		if r.PromoHit != tt.want {
			t.Errorf("Text %q: expected promoHit=%v, got %v", tt.text, tt.want, r.PromoHit)
		}
		if r.MainEligible == tt.want {
			t.Errorf("Text %q: expected mainEligible=%v, got %v", tt.text, !tt.want, r.MainEligible)
		}
	}
}

func TestEvaluate_PromoCheckListsTerms(t *testing.T) {
	e := New(nil)

	report := e.Evaluate(Input{Text: "A visionary and innovative, pioneering leader."})
	check, _ := report.Check(model.CheckPromo)

	terms, ok := check.Data["terms"].([]string)
	if !ok {
		t.Fatalf("Expected terms to be []string, got %T", check.Data["terms"])
	}
	expected := []string{"pioneering", "visionary", "innovative"}
	if !reflect.DeepEqual(terms, expected) {
		t.Errorf("Expected terms %v, got %v", expected, terms)
	}
}

func TestEvaluate_Notability(t *testing.T) {
	e := New(nil)

	tests := []struct {
		name    string
		sources []model.Source
		count   int
		pass    bool
	}{
		{"none", nil, 0, false},
		{"one reliable", []model.Source{govSource}, 1, false},
		{"two reliable", []model.Source{govSource, eduSource}, 2, true},
		{"unreliable do not count", []model.Source{blogSource, wikiSource, webSource}, 0, false},
		{"mixed", []model.Source{blogSource, newsSource, wikiSource, eduSource}, 2, true},
		{"duplicates count", []model.Source{newsSource, newsSource}, 2, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := e.Result(Input{Sources: tt.sources})
			if r.IndependentReliableCount != tt.count {
				t.Errorf("Expected count %d, got %d", tt.count, r.IndependentReliableCount)
			}
			if r.NotabilityPass != tt.pass {
				t.Errorf("Expected notabilityPass=%v, got %v", tt.pass, r.NotabilityPass)
			}
		})
	}
}

func TestEvaluate_LeadThreshold(t *testing.T) {
	tests := []struct {
		minChars int
		length   int
		want     bool
	}{
		{120, 119, false},
		{120, 120, true},
		{80, 80, true},
		{80, 79, false},
	}

	for _, tt := range tests {
		cfg := model.DefaultConfig().Preflight
		cfg.LeadMinChars = tt.minChars
		e := New(&cfg)

		text := "  " + strings.Repeat("é", tt.length) + "\n\n"
		if got := e.Result(Input{Text: text}).HasLead; got != tt.want {
			t.Errorf("min=%d length=%d: expected hasLead=%v, got %v", tt.minChars, tt.length, tt.want, got)
		}
	}
}

func TestEvaluate_HeaderModes(t *testing.T) {
	structural := New(nil)

	loose := model.DefaultConfig().Preflight
	loose.HeaderMode = model.HeaderModeLoose
	looseEval := New(&loose)

	tests := []struct {
		name           string
		text           string
		heading        bool
		wantStructural bool
		wantLoose      bool
	}{
		{"heading applied", "Lead\n", true, true, true},
		{"markdown heading", "Lead\n# Career\n", false, false, true},
		{"wikitext heading", "Lead\n== Career ==\n", false, false, true},
		{"short line", "Lead paragraph\nCareer\nBody\n", false, false, true},
		{"single line", "Just one line of text\n", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Input{Text: tt.text, HasStructuralHeading: tt.heading}
			if got := structural.Result(in).HasHeader; got != tt.wantStructural {
				t.Errorf("structural: expected %v, got %v", tt.wantStructural, got)
			}
			if got := looseEval.Result(in).HasHeader; got != tt.wantLoose {
				t.Errorf("loose: expected %v, got %v", tt.wantLoose, got)
			}
		})
	}
}

func TestEvaluate_CitationMarker(t *testing.T) {
	e := New(nil)

	tests := map[string]bool{
		"see [1] here":         true,
		"see [42]":             true,
		"see [a]":              false,
		"see []":               false,
		"see [1a]":             false,
		"no markers at all":    false,
		"[citation needed]":    false,
		"multiple [1] and [2]": true,
	}

	for text, want := range tests {
		if got := e.Result(Input{Text: text}).HasCite; got != want {
			t.Errorf("Text %q: expected hasCite=%v, got %v", text, want, got)
		}
	}
}

func TestEvaluate_UncitedContentWarning(t *testing.T) {
	e := New(nil)

	report := e.Evaluate(Input{Text: "Some content without sources."})
	if len(report.Warnings) != 2 {
		t.Fatalf("Expected 2 warnings, got %d", len(report.Warnings))
	}
	if report.Warnings[0].Type != model.WarningUncitedContent {
		t.Errorf("Expected uncited content warning first, got %s", report.Warnings[0].Type)
	}

	// Warnings never change eligibility
	in := passingInput()
	in.Sources = nil
	r := e.Evaluate(in)
	if len(r.Warnings) == 0 {
		t.Error("Expected warnings when sources are missing")
	}
	if r.Result.NotabilityPass {
		t.Error("Expected notability to fail without sources")
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	e := New(nil)
	in := passingInput()
	in.InsertedStatements = []string{"Zzyzx is a former settlement"}

	first := e.Evaluate(in)
	second := e.Evaluate(in)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Expected identical reports, got %+v and %+v", first, second)
	}
}

func TestEvaluate_ChecksCarryFormula(t *testing.T) {
	report := New(nil).Evaluate(passingInput())

	for _, name := range []model.CheckName{model.CheckSource, model.CheckNotability, model.CheckLead, model.CheckCopyvio} {
		check, ok := report.Check(name)
		if !ok {
			t.Errorf("Missing check %s", name)
			continue
		}
		if _, ok := check.Data["formula"]; !ok {
			t.Errorf("Check %s should carry its formula", name)
		}
	}
}

func TestNew_EmptyPromoList(t *testing.T) {
	cfg := model.DefaultConfig().Preflight
	cfg.PromoTerms = []string{"", "  "}
	e := New(&cfg)

	if e.Result(Input{Text: "pioneering leading visionary"}).PromoHit {
		t.Error("Expected no promo hits with an empty word list")
	}
}
