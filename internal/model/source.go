package model

// Source is a reference the author added to the draft
type Source struct {
	ID          int        `json:"id"`          // Session-unique, strictly increasing
	URL         string     `json:"url"`         // URL as submitted
	Title       string     `json:"title"`       // Best-effort title derived from the URL path
	Domain      string     `json:"domain"`      // Lowercased host, "www." stripped
	Kind        SourceKind `json:"kind"`        // primary or secondary
	Independent bool       `json:"independent"` // Not controlled by the article subject
	Tier        Tier       `json:"tier"`        // Reliability bucket
}

// Qualifies reports whether the source counts toward notability
func (s Source) Qualifies() bool {
	return s.Independent && s.Kind == KindSecondary && s.Tier.Reliable()
}

// SourceKind distinguishes primary from secondary coverage
type SourceKind string

const (
	KindPrimary   SourceKind = "primary"   // Self-published, press releases, social media
	KindSecondary SourceKind = "secondary" // Independent reporting or scholarship
)

// Tier is the classifier-assigned reliability bucket
type Tier string

const (
	TierNone Tier = ""     // Not classified
	TierGov  Tier = "gov"  // Government domains
	TierEdu  Tier = "edu"  // Academic domains
	TierGood Tier = "good" // Known news outlets
	TierWarn Tier = "warn" // Press releases, blogs, unclassified
	TierBad  Tier = "bad"  // Encyclopedias, social media
)

// Reliable reports whether the tier is one of gov, edu or good
func (t Tier) Reliable() bool {
	switch t {
	case TierGov, TierEdu, TierGood:
		return true
	default:
		return false
	}
}

func (t Tier) String() string {
	if t == TierNone {
		return "unclassified"
	}
	return string(t)
}

// Classification is the verdict of the source classifier for one host
type Classification struct {
	Kind        SourceKind `json:"kind"`
	Independent bool       `json:"independent"`
	Tier        Tier       `json:"tier"`
	Rule        string     `json:"rule,omitempty"` // Which precedence rule matched (e.g., "gov", "default")
}
