package workspace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ppiankov/draftgate/internal/model"
)

// Features is the resolved set of UI affordances present in a session.
// It is computed once and never re-probed.
type Features struct {
	enabled map[string]bool
}

// ResolveFeatures validates the configured affordance names
func ResolveFeatures(names []string) (Features, error) {
	known := make(map[string]bool, len(model.KnownFeatures))
	for _, name := range model.KnownFeatures {
		known[name] = true
	}

	f := Features{enabled: make(map[string]bool, len(names))}
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}
		if !known[name] {
			return Features{}, fmt.Errorf("unknown feature %q (known: %s)", name, strings.Join(model.KnownFeatures, ", "))
		}
		f.enabled[name] = true
	}
	return f, nil
}

// AllFeatures enables every known affordance
func AllFeatures() Features {
	f, _ := ResolveFeatures(model.KnownFeatures)
	return f
}

// Has reports whether an affordance is present
func (f Features) Has(name string) bool {
	return f.enabled[name]
}

// List returns the enabled affordances, sorted
func (f Features) List() []string {
	names := make([]string, 0, len(f.enabled))
	for name := range f.enabled {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
