package preflight

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/ppiankov/draftgate/internal/model"
)

var sourcePool = []model.Source{govSource, newsSource, eduSource, blogSource, wikiSource, webSource}

func pickSources(picks []int) []model.Source {
	sources := make([]model.Source, 0, len(picks))
	for _, p := range picks {
		sources = append(sources, sourcePool[p])
	}
	return sources
}

// TestEvaluateDeterminism verifies identical inputs produce identical reports.
// Property: Evaluate(in) == Evaluate(in)
func TestEvaluateDeterminism(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	e := New(nil)

	properties.Property("evaluation is deterministic", prop.ForAll(
		func(picks []int, words []string, heading bool, title string) bool {
			text := strings.Join(words, " ")
			in := Input{
				Sources:              pickSources(picks),
				Text:                 text,
				HasStructuralHeading: heading,
				InsertedStatements:   words,
				ProposedTitle:        title,
			}
			return reflect.DeepEqual(e.Evaluate(in), e.Evaluate(in))
		},
		gen.SliceOf(gen.IntRange(0, len(sourcePool)-1)),
		gen.SliceOf(gen.AlphaString()),
		gen.Bool(),
		gen.AlphaString(),
	))

	properties.TestingRun(t)
}

// TestNotabilityMonotonic verifies adding a qualifying source never flips
// notability from pass to fail, and the pass is exactly count >= 2.
func TestNotabilityMonotonic(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	e := New(nil)
	qualifying := []model.Source{govSource, newsSource, eduSource}

	properties.Property("adding a source never breaks notability", prop.ForAll(
		func(picks []int, extra int) bool {
			sources := pickSources(picks)
			before := e.Result(Input{Sources: sources})

			count := 0
			for _, s := range sources {
				if s.Qualifies() {
					count++
				}
			}
			if before.NotabilityPass != (count >= 2) {
				return false
			}

			after := e.Result(Input{Sources: append(sources, qualifying[extra])})
			if before.NotabilityPass && !after.NotabilityPass {
				return false
			}
			return after.IndependentReliableCount == before.IndependentReliableCount+1
		},
		gen.SliceOf(gen.IntRange(0, len(sourcePool)-1)),
		gen.IntRange(0, len(qualifying)-1),
	))

	properties.TestingRun(t)
}

// Conjunct indexes for TestMainEligibleConjunction
const (
	breakNotability = iota
	breakLead
	breakHeader
	breakCite
	breakCopyvio
	breakPromo
	breakTitle
	conjuncts
)

// brokenInput starts from a passing draft and breaks the selected conjuncts
func brokenInput(broken []bool) Input {
	in := Input{
		Sources:              []model.Source{govSource, newsSource},
		HasStructuralHeading: true,
		ProposedTitle:        "Zzyzx Test Article",
	}

	text := padTo("Zzyzx is a former settlement in the Mojave Desert, see [1] for the survey history. ", 150)
	if broken[breakLead] {
		text = "Zzyzx, see [1]."
	}
	if broken[breakCite] {
		text = strings.ReplaceAll(text, "[1]", "the archive")
	}
	if broken[breakPromo] {
		text += " It was a pioneering resort."
	}
	in.Text = text

	if broken[breakNotability] {
		in.Sources = []model.Source{govSource, blogSource, wikiSource}
	}
	if broken[breakHeader] {
		in.HasStructuralHeading = false
	}
	if broken[breakCopyvio] {
		in.InsertedStatements = []string{strings.TrimSpace(text)}
	}
	if broken[breakTitle] {
		in.ProposedTitle = "ada LOVELACE"
	}

	return in
}

// TestMainEligibleConjunction verifies each conjunct independently gates eligibility.
// Property: mainEligible == no conjunct broken
func TestMainEligibleConjunction(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	e := New(nil)

	properties.Property("mainEligible is the conjunction of all checks", prop.ForAll(
		func(broken []bool) bool {
			r := e.Result(brokenInput(broken))

			anyBroken := false
			for _, b := range broken {
				anyBroken = anyBroken || b
			}
			if r.MainEligible == anyBroken {
				return false
			}

			return r.NotabilityPass == !broken[breakNotability] &&
				r.HasLead == !broken[breakLead] &&
				r.HasHeader == !broken[breakHeader] &&
				r.HasCite == !broken[breakCite] &&
				r.CopyvioLow == !broken[breakCopyvio] &&
				r.PromoHit == broken[breakPromo] &&
				r.TitleClash == broken[breakTitle]
		},
		gen.SliceOfN(conjuncts, gen.Bool()),
	))

	properties.TestingRun(t)
}

// TestEachConjunctTogglesEligibility breaks exactly one conjunct at a time
func TestEachConjunctTogglesEligibility(t *testing.T) {
	e := New(nil)

	if !e.Result(brokenInput(make([]bool, conjuncts))).MainEligible {
		t.Fatal("Expected baseline draft to be eligible")
	}

	for i := 0; i < conjuncts; i++ {
		broken := make([]bool, conjuncts)
		broken[i] = true

		r := e.Result(brokenInput(broken))
		if r.MainEligible {
			t.Errorf("Conjunct %d: expected mainEligible=false", i)
		}
		if len(r.Blockers()) != 1 {
			t.Errorf("Conjunct %d: expected exactly one blocker, got %v", i, r.Blockers())
		}
	}
}
