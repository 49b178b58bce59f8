package classify

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/ppiankov/draftgate/internal/model"
)

// ErrInvalidURL is returned when a URL cannot be parsed even after normalization
var ErrInvalidURL = errors.New("invalid URL")

var (
	govPattern      = regexp.MustCompile(`(^|\.)gov(\.[a-z]{2})?$`)
	academicPattern = regexp.MustCompile(`(^|\.)(edu|ac\.[a-z]{2})$`)
	schemePattern   = regexp.MustCompile(`(?i)^https?://`)
)

// Precedence rule names reported in model.Classification.Rule
const (
	RuleGov          = "gov"
	RuleAcademic     = "academic"
	RuleNews         = "news"
	RulePressRelease = "press_release"
	RuleReference    = "reference"
	RuleBlog         = "blog"
	RuleDefault      = "default"
)

// Classifier maps hosts to reliability and independence verdicts.
// Rules are evaluated in a fixed precedence order and the first match wins.
type Classifier struct {
	news         domainSet
	pressRelease domainSet
	reference    domainSet
	blog         domainSet
}

// New creates a classifier from the configured domain lists
func New(config *model.ClassifierConfig) *Classifier {
	if config == nil {
		config = &model.DefaultConfig().Classifier
	}

	return &Classifier{
		news:         newDomainSet(config.NewsDomains),
		pressRelease: newDomainSet(config.PressReleaseDomains),
		reference:    newDomainSet(config.ReferenceDomains),
		blog:         newDomainSet(config.BlogDomains),
	}
}

// ClassifyHost classifies a hostname. The host is normalized the same way
// as source domains (lowercased, port and "www." removed).
func (c *Classifier) ClassifyHost(host string) model.Classification {
	host = NormalizeHost(host)

	switch {
	case govPattern.MatchString(host):
		return model.Classification{Kind: model.KindSecondary, Independent: true, Tier: model.TierGov, Rule: RuleGov}
	case academicPattern.MatchString(host):
		return model.Classification{Kind: model.KindSecondary, Independent: true, Tier: model.TierEdu, Rule: RuleAcademic}
	case c.news.matches(host):
		return model.Classification{Kind: model.KindSecondary, Independent: true, Tier: model.TierGood, Rule: RuleNews}
	case c.pressRelease.matches(host):
		return model.Classification{Kind: model.KindPrimary, Independent: false, Tier: model.TierWarn, Rule: RulePressRelease}
	case c.reference.matches(host):
		return model.Classification{Kind: model.KindPrimary, Independent: false, Tier: model.TierBad, Rule: RuleReference}
	case c.blog.matches(host):
		return model.Classification{Kind: model.KindPrimary, Independent: false, Tier: model.TierWarn, Rule: RuleBlog}
	}

	// Unclassified hosts are treated optimistically
	return model.Classification{Kind: model.KindSecondary, Independent: true, Tier: model.TierWarn, Rule: RuleDefault}
}

// Classify parses a raw URL and classifies its host
func (c *Classifier) Classify(rawURL string) (model.Classification, error) {
	parsed, err := ParseURL(rawURL)
	if err != nil {
		return model.Classification{}, err
	}
	return c.ClassifyHost(parsed.Hostname()), nil
}

// EnsureScheme prefixes https:// to URLs that lack an http(s) scheme
func EnsureScheme(rawURL string) string {
	rawURL = strings.TrimSpace(rawURL)
	if schemePattern.MatchString(rawURL) {
		return rawURL
	}
	return "https://" + rawURL
}

// ParseURL normalizes the scheme and parses the URL.
// A URL without a host is rejected.
func ParseURL(rawURL string) (*url.URL, error) {
	if strings.TrimSpace(rawURL) == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidURL)
	}

	parsed, err := url.Parse(EnsureScheme(rawURL))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("%w: missing host in %q", ErrInvalidURL, rawURL)
	}

	return parsed, nil
}

// NormalizeHost lowercases a host and strips the port and a leading "www."
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))

	// Remove port from host (IPv6 literals have more than one colon)
	if strings.Count(host, ":") == 1 {
		host = host[:strings.Index(host, ":")]
	}

	host = strings.TrimSuffix(host, ".")
	return strings.TrimPrefix(host, "www.")
}

// domainSet matches a host against a list of registrable domains,
// including any of their subdomains
type domainSet map[string]bool

func newDomainSet(domains []string) domainSet {
	set := make(domainSet, len(domains))
	for _, d := range domains {
		d = NormalizeHost(d)
		if d != "" {
			set[d] = true
		}
	}
	return set
}

func (s domainSet) matches(host string) bool {
	if s[host] {
		return true
	}

	// Walk parent domains: news.bbc.co.uk -> bbc.co.uk -> co.uk
	for idx := strings.Index(host, "."); idx >= 0; idx = strings.Index(host, ".") {
		host = host[idx+1:]
		if s[host] {
			return true
		}
	}
	return false
}
